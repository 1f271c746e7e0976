package comparables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelcomp/pkg/contracts/domain"
)

func TestAdmissible(t *testing.T) {
	subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassUpperMidscale)

	tests := []struct {
		name      string
		candidate func() domain.PropertyRecord
		want      bool
	}{
		{
			name:      "fully admissible",
			candidate: func() domain.PropertyRecord { return hotel("C", 100, 1_000_000, 9_000, domain.ClassUpscale) },
			want:      true,
		},
		{
			name: "different state",
			candidate: func() domain.PropertyRecord {
				c := hotel("C", 100, 1_000_000, 9_000, domain.ClassUpscale)
				c.State = "Ohio"
				return c
			},
		},
		{
			name: "different county",
			candidate: func() domain.PropertyRecord {
				c := hotel("C", 100, 1_000_000, 9_000, domain.ClassUpscale)
				c.County = "Dallas"
				return c
			},
		},
		{
			name:      "equal room count",
			candidate: func() domain.PropertyRecord { return hotel("C", 200, 1_000_000, 9_000, domain.ClassUpscale) },
		},
		{
			name:      "more rooms",
			candidate: func() domain.PropertyRecord { return hotel("C", 250, 1_000_000, 9_000, domain.ClassUpscale) },
		},
		{
			name:      "equal VPR",
			candidate: func() domain.PropertyRecord { return hotel("C", 100, 1_000_000, 10_000, domain.ClassUpscale) },
		},
		{
			name:      "lower band edge inclusive",
			candidate: func() domain.PropertyRecord { return hotel("C", 100, 800_000, 9_000, domain.ClassUpscale) },
			want:      true,
		},
		{
			name:      "upper band edge inclusive",
			candidate: func() domain.PropertyRecord { return hotel("C", 100, 1_200_000, 9_000, domain.ClassUpscale) },
			want:      true,
		},
		{
			name:      "below band",
			candidate: func() domain.PropertyRecord { return hotel("C", 100, 799_999, 9_000, domain.ClassUpscale) },
		},
		{
			name:      "above band",
			candidate: func() domain.PropertyRecord { return hotel("C", 100, 1_200_001, 9_000, domain.ClassUpscale) },
		},
		{
			name:      "class too far",
			candidate: func() domain.PropertyRecord { return hotel("C", 100, 1_000_000, 9_000, domain.ClassLuxury) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admissible(subject, tt.candidate(), 0.20))
		})
	}
}

func TestAdmissible_ZeroTolerance(t *testing.T) {
	subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassMidscale)

	assert.True(t, Admissible(subject, hotel("Exact", 100, 1_000_000, 9_000, domain.ClassMidscale), 0))
	assert.False(t, Admissible(subject, hotel("Above", 100, 1_000_000.01, 9_000, domain.ClassMidscale), 0))
	assert.False(t, Admissible(subject, hotel("Below", 100, 999_999.99, 9_000, domain.ClassMidscale), 0))
}

func TestAdmissible_BandEdgesExact(t *testing.T) {
	subject := hotel("Subject", 200, 100, 10_000, domain.ClassMidscale)

	tests := []struct {
		name        string
		marketValue float64
		tolerance   float64
	}{
		{"lower edge at 0.7", 30, 0.7},
		{"upper edge at 0.7", 170, 0.7},
		{"lower edge at 0.1", 90, 0.1},
		{"upper edge at 0.3", 130, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := hotel("Edge", 100, tt.marketValue, 9_000, domain.ClassMidscale)
			assert.True(t, Admissible(subject, candidate, tt.tolerance))
		})
	}
}

func TestClassAdjacencyMatrix(t *testing.T) {
	expected := map[domain.HotelClass][]domain.HotelClass{
		1: {1, 2, 3},
		2: {1, 2, 3, 4},
		3: {2, 3, 4, 5},
		4: {3, 4, 5, 6},
		5: {4, 5, 6, 7},
		6: {5, 6, 7, 8},
		7: {6, 7, 8},
		8: {7, 8},
	}

	for subjectRank := domain.HotelClass(1); subjectRank <= 8; subjectRank++ {
		allowed := make(map[domain.HotelClass]bool)
		for _, c := range expected[subjectRank] {
			allowed[c] = true
		}

		for candidateRank := domain.HotelClass(1); candidateRank <= 8; candidateRank++ {
			subject := hotel("Subject", 200, 1_000_000, 10_000, subjectRank)
			candidate := hotel("C", 100, 1_000_000, 9_000, candidateRank)

			assert.Equal(t, allowed[candidateRank], Admissible(subject, candidate, 0.2),
				"subject rank %d, candidate rank %d", subjectRank, candidateRank)
		}
	}
}

func TestAdmissible_UnknownClassAdmitsNothing(t *testing.T) {
	subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassUnknown)
	for _, c := range domain.AllHotelClasses() {
		assert.False(t, Admissible(subject, hotel("C", 100, 1_000_000, 9_000, c), 0.2))
	}
}

func TestFilter(t *testing.T) {
	t.Run("excludes subject by identity key", func(t *testing.T) {
		subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassMidscale)
		// A second row with the subject's key but smaller numbers would pass
		// every attribute check; identity exclusion must still drop it.
		twin := subject
		twin.Rooms = 50
		twin.VPR = 5_000

		got := Filter(subject, []domain.PropertyRecord{subject, twin}, 0.2)
		assert.Empty(t, got)
	})

	t.Run("deduplicates by identity key keeping first", func(t *testing.T) {
		subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassMidscale)
		first := hotel("C", 100, 1_000_000, 9_000, domain.ClassMidscale)
		second := first
		second.MarketValue = 1_100_000

		got := Filter(subject, []domain.PropertyRecord{subject, first, second}, 0.2)
		require.Len(t, got, 1)
		assert.Equal(t, 1_000_000.0, got[0].MarketValue)
	})

	t.Run("duplicate admitted when first occurrence is not", func(t *testing.T) {
		subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassMidscale)
		rejected := hotel("C", 300, 1_000_000, 9_000, domain.ClassMidscale)
		admitted := rejected
		admitted.Rooms = 100

		got := Filter(subject, []domain.PropertyRecord{rejected, admitted}, 0.2)
		require.Len(t, got, 1)
		assert.Equal(t, 100, got[0].Rooms)
	})

	t.Run("preserves dataset order", func(t *testing.T) {
		subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassMidscale)
		dataset := []domain.PropertyRecord{
			hotel("Z", 100, 1_100_000, 9_000, domain.ClassMidscale),
			subject,
			hotel("A", 150, 900_000, 8_000, domain.ClassEconomy),
			hotel("M", 120, 1_000_000, 9_500, domain.ClassUpscale),
		}

		got := Filter(subject, dataset, 0.2)
		assert.Equal(t, []string{"Z", "A", "M"}, names(got))
	})

	t.Run("empty dataset", func(t *testing.T) {
		subject := hotel("Subject", 200, 1_000_000, 10_000, domain.ClassMidscale)
		assert.Empty(t, Filter(subject, nil, 0.2))
	})

	t.Run("worked example admits both candidates", func(t *testing.T) {
		dataset := e2eDataset()
		got := Filter(dataset[0], dataset, 0.20)
		assert.Equal(t, []string{"A", "B"}, names(got))
	})
}

func TestMarketValueBand(t *testing.T) {
	lo, hi := MarketValueBand(1_000_000, 0.2)
	assert.InDelta(t, 800_000, lo, 1e-6)
	assert.InDelta(t, 1_200_000, hi, 1e-6)

	lo, hi = MarketValueBand(1_000_000, 0)
	assert.Equal(t, 1_000_000.0, lo)
	assert.Equal(t, 1_000_000.0, hi)
}
