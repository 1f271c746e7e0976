// Package services implements the business logic layer of the comparable
// matcher. HTTP handlers and the CLI call into it; it owns the wiring
// between dataset loading, the comparables engine, report rendering and
// business metrics.
//
// # Available Services
//
//   - ComparisonService: loads datasets, runs comparisons, writes reports
//   - HealthService: health, readiness and liveness checks
//
// # Error Handling
//
// Invalid run parameters surface as *comparables.ConfigurationError, bad
// input as *errors.AppError of type validation, and rendering failures as
// storage errors. Handlers map these to problem details.
package services
