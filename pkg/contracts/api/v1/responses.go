package api

import (
	"time"

	"hotelcomp/pkg/contracts/domain"
)

// ComparisonResponse is the outcome of a JSON comparison run
type ComparisonResponse struct {
	RunID   string                    `json:"run_id"`
	Summary domain.RunSummary         `json:"summary"`
	Results []domain.ComparisonResult `json:"results"`
	// UnknownAddresses lists requested subject addresses absent from the dataset
	UnknownAddresses []string `json:"unknown_addresses,omitempty"`
}

// AddressMatch is one fuzzy search hit
type AddressMatch struct {
	Address     string  `json:"address"`
	State       string  `json:"state"`
	County      string  `json:"county"`
	ProjectName string  `json:"project_name"`
	OwnerName   string  `json:"owner_name"`
	Score       float64 `json:"score"`
}

// AddressSearchResponse lists matches ordered by descending score
type AddressSearchResponse struct {
	Query     string         `json:"query"`
	Threshold float64        `json:"threshold"`
	Matches   []AddressMatch `json:"matches"`
}

// StateTaxRate is one entry of the rate table
type StateTaxRate struct {
	State string  `json:"state"`
	Rate  float64 `json:"rate"`
}

// StateTaxRatesResponse lists every mapped jurisdiction
type StateTaxRatesResponse struct {
	Rates []StateTaxRate `json:"rates"`
	Count int            `json:"count"`
}

// HotelClassInfo describes one rank of the class vocabulary
type HotelClassInfo struct {
	Rank     int    `json:"rank"`
	Label    string `json:"label"`
	Adjacent []int  `json:"adjacent"`
}

// HotelClassesResponse lists the class vocabulary in rank order
type HotelClassesResponse struct {
	Classes []HotelClassInfo `json:"classes"`
}

// HealthResponse is returned by the health endpoints
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}
