package comparables

import (
	"math"
)

// ValidateTolerance checks the market value tolerance fraction
func ValidateTolerance(tolerance float64) error {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) {
		return &ConfigurationError{
			Field:   "tolerance",
			Message: "tolerance must be a finite number",
			Value:   tolerance,
		}
	}

	if tolerance < MinTolerance || tolerance > MaxTolerance {
		return &ConfigurationError{
			Field:   "tolerance",
			Message: "tolerance must be between 0 and 5.0",
			Value:   tolerance,
		}
	}

	return nil
}

// ValidateMaxResults checks the per-subject result cap
func ValidateMaxResults(maxResults int) error {
	if maxResults < MinMaxResults || maxResults > MaxMaxResults {
		return &ConfigurationError{
			Field:   "max_results",
			Message: "max results must be between 1 and 10",
			Value:   maxResults,
		}
	}
	return nil
}

// ValidateOptions validates run options before any computation happens
func ValidateOptions(opts Options) error {
	if err := ValidateTolerance(opts.Tolerance); err != nil {
		return err
	}
	return ValidateMaxResults(opts.MaxResults)
}
