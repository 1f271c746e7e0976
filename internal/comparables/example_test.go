package comparables_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"hotelcomp/internal/comparables"
	"hotelcomp/pkg/contracts/domain"
)

func ExampleEngine_Run() {
	records := []domain.PropertyRecord{
		{Address: "1 Main St", State: "Texas", County: "Harris", ProjectName: "Subject", OwnerName: "S LLC",
			Rooms: 200, MarketValue: 5_000_000, VPR: 25_000, Class: domain.ClassUpperMidscale},
		{Address: "2 Main St", State: "Texas", County: "Harris", ProjectName: "A", OwnerName: "A LLC",
			Rooms: 150, MarketValue: 5_500_000, VPR: 20_000, Class: domain.ClassUpperMidscale},
		{Address: "3 Main St", State: "Texas", County: "Harris", ProjectName: "B", OwnerName: "B LLC",
			Rooms: 100, MarketValue: 4_200_000, VPR: 15_000, Class: domain.ClassUpscale},
	}

	engine := comparables.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	run, err := engine.Run(context.Background(), records, comparables.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, r := range run.Results {
		if overpaid := r.Overpaid(); overpaid != nil {
			fmt.Printf("%s: %s, overpaid %.0f\n", r.Subject.ProjectName, r.Status, *overpaid)
			continue
		}
		fmt.Printf("%s: %s\n", r.Subject.ProjectName, r.Status)
	}
	// Output:
	// Subject: match: 2 candidates, 2 selected, overpaid 37500
	// A: no match
	// B: no match
}

func ExampleValidateTolerance() {
	err := comparables.ValidateTolerance(7)
	fmt.Println(err)
	// Output:
	// tolerance: tolerance must be between 0 and 5.0 (got 7)
}
