package comparables

import (
	"hotelcomp/pkg/contracts/domain"
)

// hotel builds a Texas / Harris County record for tests
func hotel(name string, rooms int, marketValue, vpr float64, class domain.HotelClass) domain.PropertyRecord {
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

func names(records []domain.PropertyRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ProjectName
	}
	return out
}

func selectedNames(selection []domain.Comparable) []string {
	out := make([]string, len(selection))
	for i, c := range selection {
		out[i] = c.ProjectName
	}
	return out
}

// e2eDataset is the worked example: one subject and two admissible candidates
func e2eDataset() []domain.PropertyRecord {
	return []domain.PropertyRecord{
		hotel("Subject", 200, 5_000_000, 25_000, domain.ClassUpperMidscale),
		hotel("A", 150, 5_500_000, 20_000, domain.ClassUpperMidscale),
		hotel("B", 100, 4_200_000, 15_000, domain.ClassUpscale),
	}
}
