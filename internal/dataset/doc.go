// Package dataset loads the job postings file into an in-memory table.
//
// CSV and XLSX files are supported. Columns whose header starts with the
// placeholder prefix ("Unnamed" by default) are dropped, the six required
// columns are checked, and each row's tokenized description is parsed from its
// list literal form into a string slice. Rows whose token cell cannot be parsed
// are kept with no tokens and reported as row issues.
//
// Cache memoizes loaded tables per path and reloads a file when its
// modification time or size changes.
package dataset
