// Package app wires the comparison service into an HTTP server and owns
// its lifecycle.
//
// # Initialization Flow
//
//  1. Load configuration from environment and config files
//  2. Initialize logging and OpenTelemetry
//  3. Resolve and create the data, reports and logs directories
//  4. Build services, handlers and the middleware chain
//  5. Serve until SIGINT or SIGTERM, then shut down gracefully
//
// # Usage
//
//	application, err := app.New()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Initialization errors are returned to the caller; the package never
// calls os.Exit.
package app
