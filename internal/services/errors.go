package services

import "errors"

// Comparison service errors
var (
	// ErrEmptyDataset is returned when a run or search has no records to work on
	ErrEmptyDataset = errors.New("dataset contains no records")

	// ErrNilRun is returned when an export is asked for without a run
	ErrNilRun = errors.New("no comparison run to export")
)
