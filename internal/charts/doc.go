// Package charts renders the dashboard figures as inline SVG.
//
// Every renderer returns template.HTML that can be placed directly into the
// page template. Output depends only on the input data, so the same
// aggregates always produce byte-identical markup. All text is escaped.
package charts
