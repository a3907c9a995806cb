// Package shared holds code used by more than one jobinsight package that
// has no domain logic of its own.
//
// The testutil subpackage provides the sample job postings dataset used across
// the test suites and a buffered slog handler for asserting on log output:
//
//	path := testutil.WriteSampleDataset(t)
//	logger, records := testutil.NewTestLogger(t)
package shared
