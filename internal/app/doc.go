// Package app wires the job market dashboard together: configuration,
// logging, OpenTelemetry providers, the dataset cache, services, the chi
// router with its middleware chain, and the HTTP server lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from environment and config.yaml
//	2. Initialize logging and observability
//	3. Build the dataset loader and cache
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests,
// flushes telemetry and closes the log file. Initialization errors are
// returned to the caller; the package never calls os.Exit.
package app
