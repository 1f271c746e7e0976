// Package api contains the HTTP contract of the comparison service.
// Version v1 represents the current stable API version.
package api

import (
	"hotelcomp/pkg/contracts/domain"
)

// ComparisonRequest runs the engine over an inline dataset.
// Tolerance and MaxResults fall back to the server defaults when omitted;
// their ranges are enforced by the engine so that out-of-domain values
// surface as configuration errors.
type ComparisonRequest struct {
	Records    []domain.PropertyRecord `json:"records" validate:"required,min=1,dive"`
	Tolerance  *float64                `json:"tolerance,omitempty"`
	MaxResults *int                    `json:"max_results,omitempty"`
	// Addresses limits the subjects; empty or "[SELECT ALL]" means every record
	Addresses []string `json:"addresses,omitempty" validate:"omitempty,dive,required"`
}

// WorkbookUploadForm documents the multipart fields of a workbook upload
type WorkbookUploadForm struct {
	FileName   string   `json:"file" validate:"required,dataset_file"`
	Sheet      string   `json:"sheet,omitempty"`
	Tolerance  *float64 `json:"tolerance,omitempty"`
	MaxResults *int     `json:"max_results,omitempty"`
	Addresses  []string `json:"address,omitempty" validate:"omitempty,dive,required"`
}

// AddressSearchRequest looks up subject candidates by fuzzy address match
type AddressSearchRequest struct {
	Records   []domain.PropertyRecord `json:"records" validate:"required,min=1"`
	Query     string                  `json:"query" validate:"required"`
	Threshold *float64                `json:"threshold,omitempty" validate:"omitempty,min=0,max=100"`
}
