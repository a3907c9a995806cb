// Package exporter writes dashboard aggregates to CSV and Excel.
//
// CSVWriter is the low level writer with optional UTF-8 BOM for Excel
// compatibility. ViewTable flattens one aggregate view (words, skills,
// salary or sentiment) into rows, and WorkbookExporter writes every view of
// a selection to its own worksheet.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths)
//	headers, rows, err := exporter.ViewTable(agg, exporter.ViewSkills)
//	err = w.WriteFile("reports/skills.csv", exporter.WriteOptions{
//		Headers:   headers,
//		Records:   rows,
//		BOMPrefix: true,
//	})
package exporter
