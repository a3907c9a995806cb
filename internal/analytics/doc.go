// Package analytics filters a job table by experience level and computes the
// dashboard aggregates: token and skill frequencies, the experience by salary
// cross-tab and the sentiment distribution.
//
// Every function here is pure. Tables are never modified, and an empty table
// yields empty results rather than an error.
package analytics
