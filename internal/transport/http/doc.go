// Package http implements the HTTP handlers of the job market dashboard.
// Handlers stay thin: they validate query parameters, call the dashboard
// service and format the response.
//
// # Routes
//
//	GET  /                       dashboard page (?experience=)
//	GET  /api/data/summary       aggregates as JSON (?experience=)
//	GET  /api/data/options       selectable experience levels
//	GET  /api/data/preview       leading dataset rows (?limit=1..100)
//	GET  /api/data/export.csv    one aggregate view (?view=&experience=)
//	GET  /api/data/export.xlsx   every aggregate view as a workbook
//	POST /api/data/reload        drop the cached dataset and read it again
//	GET  /api/health[/ready|/live], /api/version
//
// # Error Handling
//
// API errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Request validation failed",
//	    "instance": "/api/data/export.csv"
//	}
//
// The dashboard page shows failures inline with the status code of the
// corresponding problem.
package http
