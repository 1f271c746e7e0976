// Package config provides centralized configuration management for the
// comparison service and CLI.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources in increasing order
// of precedence:
//
//  1. Default values (Default)
//  2. A YAML file: $HOTELCOMP_CONFIG, config.yaml or configs/config.yaml
//  3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern HOTELCOMP_<SECTION>_<FIELD>:
//
//	HOTELCOMP_SERVER_PORT=8080
//	HOTELCOMP_LOGGING_LEVEL=debug
//	HOTELCOMP_COMPARISON_TOLERANCE=0.25
//	HOTELCOMP_COMPARISON_MAX_RESULTS=5
//	HOTELCOMP_SECURITY_RATE_LIMIT_RPS=20
//
// # Validation
//
// Load validates the assembled configuration. Comparison defaults must lie in
// the same domains the engine enforces on every run.
//
// # Paths
//
// Relative directories are resolved against the executable directory by
// GetPaths, so the binaries behave the same whatever the working directory.
package config
