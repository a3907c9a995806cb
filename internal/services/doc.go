// Package services implements the business logic layer of jobinsight.
// It sits between the HTTP handlers and the dataset, analytics and exporter
// packages so that handlers never touch files or aggregates directly.
//
// # Available Services
//
//	- DashboardService: loads the dataset through the cache, filters it by
//	  experience level and computes aggregates, previews and exports
//	- HealthService: health, readiness, liveness and version information
//
// # Error Handling
//
// Services return *errors.AppError values that the HTTP layer maps to
// RFC 7807 problem details. A dataset that cannot be read surfaces as a
// DATA_LOAD error; an unknown experience level is not an error and yields
// empty aggregates.
package services
