package exporter

import (
	"math"
	"time"

	"hotelcomp/internal/comparables"
	"hotelcomp/pkg/contracts/domain"
)

func property(name string, rooms int, mv, vpr float64, class domain.HotelClass) domain.PropertyRecord {
	return domain.PropertyRecord{
		Address:     name + " Main St",
		State:       "Texas",
		County:      "Harris",
		ProjectName: name,
		OwnerName:   name + " LLC",
		Rooms:       rooms,
		MarketValue: mv,
		VPR:         vpr,
		ClassLabel:  class.Label(),
		Class:       class,
	}
}

// sampleRun mirrors the worked example: one matched subject, two without matches
func sampleRun() *comparables.Run {
	subject := property("Subject", 200, 5_000_000, 25_000, domain.ClassUpperMidscale)
	a := property("A", 150, 5_500_000, 20_000, domain.ClassUpperMidscale)
	b := property("B", 100, 4_200_000, 15_000, domain.ClassUpscale)

	return &comparables.Run{
		Summary: domain.RunSummary{
			RunID:          "0f8fad5b-d9cb-469f-a165-70867728950e",
			Tolerance:      0.2,
			MaxResults:     5,
			TotalProcessed: 3,
			MatchedCount:   1,
			NoMatchCount:   2,
			Duration:       12 * time.Millisecond,
		},
		Results: []domain.ComparisonResult{
			{
				Subject:        subject,
				Status:         domain.MatchStatus(2, 2),
				CandidateCount: 2,
				Selection: []domain.Comparable{
					{PropertyRecord: a, Stage: domain.StageNearest, Distance: 500_025},
					{PropertyRecord: b, Stage: domain.StageNearest, Distance: 800_062.5},
				},
				Estimate: &domain.Estimate{
					MedianVPR:     17_500,
					StateRate:     0.025,
					AssessedValue: 87_500,
					SubjectTax:    125_000,
					Overpaid:      37_500,
				},
			},
			{Subject: a, Status: domain.StatusNoMatch, Selection: []domain.Comparable{}},
			{Subject: b, Status: domain.StatusNoMatch, Selection: []domain.Comparable{}},
		},
	}
}

func nanRun() *comparables.Run {
	run := sampleRun()
	run.Results[0].Estimate.Overpaid = math.NaN()
	return run
}
