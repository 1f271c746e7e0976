package comparables

import (
	"errors"
	"fmt"

	"hotelcomp/pkg/contracts/domain"
)

// Constants for configuration domains and defaults
const (
	// DefaultTolerance is the default market value band (20%)
	DefaultTolerance = 0.20
	MinTolerance     = 0.0
	MaxTolerance     = 5.0

	DefaultMaxResults = 5
	MinMaxResults     = 1
	MaxMaxResults     = 10

	DefaultWorkers = 4

	// Selection stage sizes
	NearestCount = 3
	LeastCount   = 1
	TopCount     = 1

	// MaxSelection is the longest selection the three stages can produce
	MaxSelection = NearestCount + LeastCount + TopCount
)

// ErrInvalidConfiguration is matched by every ConfigurationError
var ErrInvalidConfiguration = errors.New("invalid comparison configuration")

// ConfigurationError reports a run parameter outside its domain
type ConfigurationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// Is lets errors.Is match ErrInvalidConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Scope selects the subjects of a run. A nil Keys slice means the entire
// dataset; an empty non-nil slice selects nothing.
type Scope struct {
	Keys []domain.IdentityKey `json:"keys,omitempty"`
}

// AllSubjects returns a scope covering the whole dataset
func AllSubjects() Scope {
	return Scope{}
}

// SubjectsWithKeys returns a scope restricted to the given identity keys
func SubjectsWithKeys(keys ...domain.IdentityKey) Scope {
	if keys == nil {
		keys = []domain.IdentityKey{}
	}
	return Scope{Keys: keys}
}

// IsAll reports whether the scope covers the entire dataset
func (s Scope) IsAll() bool {
	return s.Keys == nil
}

// Options configures a comparison run
type Options struct {
	Tolerance  float64 `json:"tolerance" yaml:"tolerance"`
	MaxResults int     `json:"max_results" yaml:"max_results"`
	Scope      Scope   `json:"scope"`
	// Workers bounds the per-subject fan-out; values < 1 fall back to DefaultWorkers
	Workers int `json:"workers,omitempty" yaml:"workers"`
}

// DefaultOptions returns the options used when none are supplied
func DefaultOptions() Options {
	return Options{
		Tolerance:  DefaultTolerance,
		MaxResults: DefaultMaxResults,
		Scope:      AllSubjects(),
		Workers:    DefaultWorkers,
	}
}

// Run is the structured outcome of a comparison run
type Run struct {
	Summary domain.RunSummary         `json:"summary"`
	Results []domain.ComparisonResult `json:"results"`
}
