package comparables

import (
	"sort"
)

// stateTaxRates holds the effective property tax rate per jurisdiction.
// Names match the State column of the source workbooks verbatim.
var stateTaxRates = map[string]float64{
	"Alabama":        0.0039,
	"Arkansas":       0.0062,
	"Arizona":        0.0066,
	"California":     0.0076,
	"Colorado":       0.0051,
	"Connecticut":    0.0214,
	"Florida":        0.0089,
	"Georgia":        0.0083,
	"Iowa":           0.0157,
	"Idaho":          0.0069,
	"Illinois":       0.0210,
	"Indiana":        0.0085,
	"Kansas":         0.0133,
	"Kentucky":       0.0080,
	"Louisiana":      0.0000,
	"Massachusetts":  0.0112,
	"Maryland":       0.0109,
	"Michigan":       0.0154,
	"Missouri":       0.0097,
	"Mississippi":    0.0075,
	"Montana":        0.0084,
	"North Carolina": 0.0077,
	"Nebraska":       0.0173,
	"New Jersey":     0.0249,
	"New Mexico":     0.0080,
	"Nevada":         0.0060,
	"Newyork":        0.0172,
	"Ohio":           0.0157,
	"Oklahoma":       0.0090,
	"Oregon":         0.0097,
	"Pennsylvania":   0.0158,
	"South Carolina": 0.0057,
	"Tennessee":      0.0071,
	"Texas":          0.0250,
	"Utah":           0.0057,
	"Virginia":       0.0082,
	"Washington":     0.0098,
}

// StateTaxRate returns the rate for a state, or 0 when the state is unmapped
func StateTaxRate(state string) float64 {
	return stateTaxRates[state]
}

// HasStateTaxRate reports whether the state appears in the table
func HasStateTaxRate(state string) bool {
	_, ok := stateTaxRates[state]
	return ok
}

// StateTaxRateEntry is one row of the rate table
type StateTaxRateEntry struct {
	State string  `json:"state"`
	Rate  float64 `json:"rate"`
}

// StateTaxRates returns a copy of the table sorted by state name
func StateTaxRates() []StateTaxRateEntry {
	entries := make([]StateTaxRateEntry, 0, len(stateTaxRates))
	for state, rate := range stateTaxRates {
		entries = append(entries, StateTaxRateEntry{State: state, Rate: rate})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].State < entries[j].State
	})
	return entries
}
