// Package report renders dashboard summaries for the terminal: a styled
// text report, JSON output, and the interactive level picker and report
// browser used by `jobreport browse`.
package report
