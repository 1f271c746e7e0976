// Package http implements the HTTP handlers of the comparison service.
// Handlers stay thin: they decode and validate the request, call into
// internal/services and render JSON or a report download. Every failure
// goes through errors.ErrorHandler so clients always receive RFC 7807
// problem details.
//
// # Routes
//
//	POST /api/v1/comparisons                    JSON dataset, JSON results
//	POST /api/v1/comparisons/workbook           uploaded dataset, xlsx or csv report
//	POST /api/v1/properties/search              fuzzy address lookup
//	GET  /api/v1/reference/state-tax-rates      state rate table
//	GET  /api/v1/reference/hotel-classes        class vocabulary and adjacency
//	GET  /api/health, /api/health/ready, /api/health/live, /api/version
//	GET  /metrics, /metrics/runtime
package http
