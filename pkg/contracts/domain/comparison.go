package domain

import (
	"fmt"
	"time"
)

// SelectionStage identifies which pass of the selector picked a comparable
type SelectionStage string

const (
	StageNearest SelectionStage = "nearest"
	StageLeast   SelectionStage = "least"
	StageTop     SelectionStage = "top"
)

// StatusNoMatch is the status of a subject without admissible candidates
const StatusNoMatch = "no match"

// Comparable is a selected comparable property
type Comparable struct {
	PropertyRecord
	Stage SelectionStage `json:"stage"`
	// Distance is populated for nearest picks only
	Distance float64 `json:"distance,omitempty"`
}

// Estimate holds the valuation derived from a selection
type Estimate struct {
	MedianVPR     float64 `json:"median_vpr"`
	StateRate     float64 `json:"state_rate"`
	AssessedValue float64 `json:"assessed_value"`
	SubjectTax    float64 `json:"subject_tax"`
	Overpaid      float64 `json:"overpaid"`
}

// ComparisonResult is the outcome of matching one subject
type ComparisonResult struct {
	Subject        PropertyRecord `json:"subject"`
	Status         string         `json:"status"`
	CandidateCount int            `json:"candidate_count"`
	Selection      []Comparable   `json:"selection"`
	Estimate       *Estimate      `json:"estimate,omitempty"`
}

// Matched reports whether at least one admissible candidate existed
func (r ComparisonResult) Matched() bool {
	return r.CandidateCount > 0
}

// Overpaid returns the overpaid estimate, or nil when none was produced
func (r ComparisonResult) Overpaid() *float64 {
	if r.Estimate == nil {
		return nil
	}
	v := r.Estimate.Overpaid
	return &v
}

// MatchStatus formats the status string for a subject
func MatchStatus(candidates, selected int) string {
	if candidates == 0 {
		return StatusNoMatch
	}
	return fmt.Sprintf("match: %d candidates, %d selected", candidates, selected)
}

// RunSummary carries the run-level counters and parameters
type RunSummary struct {
	RunID          string        `json:"run_id"`
	Tolerance      float64       `json:"tolerance"`
	MaxResults     int           `json:"max_results"`
	TotalProcessed int           `json:"total_processed"`
	MatchedCount   int           `json:"matched_count"`
	NoMatchCount   int           `json:"no_match_count"`
	Duration       time.Duration `json:"duration"`
}
