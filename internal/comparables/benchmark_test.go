package comparables

import (
	"context"
	"fmt"
	"testing"

	"hotelcomp/pkg/contracts/domain"
)

func benchmarkDataset(n int) []domain.PropertyRecord {
	dataset := make([]domain.PropertyRecord, n)
	for i := range dataset {
		dataset[i] = hotel(fmt.Sprintf("H%04d", i),
			50+i%250,
			1_000_000+float64(i*37_171%4_000_000),
			5_000+float64(i*911%30_000),
			domain.HotelClass(1+i%8),
		)
	}
	return dataset
}

func BenchmarkCompare(b *testing.B) {
	dataset := benchmarkDataset(1_000)
	subject := dataset[len(dataset)/2]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare(subject, dataset, DefaultTolerance, DefaultMaxResults)
	}
}

func BenchmarkEngineRun(b *testing.B) {
	engine := newTestEngine()

	for _, size := range []int{100, 500} {
		dataset := benchmarkDataset(size)
		b.Run(fmt.Sprintf("records_%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := engine.Run(context.Background(), dataset, DefaultOptions()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
