package testutil

import (
	"hotelcomp/pkg/contracts/domain"
)

// Property builds a Harris County, Texas hotel record keyed by name
func Property(name string, rooms int, marketValue, vpr float64, class domain.HotelClass) domain.PropertyRecord {
	return domain.PropertyRecord{
		Address:     name + " Main St",
		State:       "Texas",
		County:      "Harris",
		ProjectName: name,
		OwnerName:   name + " LLC",
		Rooms:       rooms,
		MarketValue: marketValue,
		VPR:         vpr,
		ClassLabel:  class.Label(),
		Class:       class,
	}
}

// WorkedExample is a subject with two admissible comparables. Only the
// subject has a selection; A and B have no smaller admissible peers.
func WorkedExample() []domain.PropertyRecord {
	return []domain.PropertyRecord{
		Property("Subject", 200, 5_000_000, 25_000, domain.ClassUpperMidscale),
		Property("A", 150, 5_500_000, 20_000, domain.ClassUpperMidscale),
		Property("B", 100, 4_200_000, 15_000, domain.ClassUpscale),
	}
}
