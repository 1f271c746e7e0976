package comparables

import (
	"hotelcomp/pkg/contracts/domain"
)

// MarketValueBand returns the inclusive market value range admitted for a
// subject at the given tolerance
func MarketValueBand(marketValue, tolerance float64) (lo, hi float64) {
	delta := marketValue * tolerance
	return marketValue - delta, marketValue + delta
}

// Admissible reports whether candidate may serve as a comparable for subject.
// Identity exclusion is handled by Filter, not here.
func Admissible(subject, candidate domain.PropertyRecord, tolerance float64) bool {
	if !subject.SameJurisdiction(candidate) {
		return false
	}
	if candidate.Rooms >= subject.Rooms {
		return false
	}
	lo, hi := MarketValueBand(subject.MarketValue, tolerance)
	if candidate.MarketValue < lo || candidate.MarketValue > hi {
		return false
	}
	if candidate.VPR >= subject.VPR {
		return false
	}
	return subject.Class.Admits(candidate.Class)
}

// Filter reduces the dataset to the admissible candidates for subject.
//
// Records sharing the subject's identity key are never candidates, and
// admitted candidates are deduplicated by identity key keeping the first
// admitted occurrence.
// The returned slice preserves dataset order, which the selector relies on
// for stable tie-breaking.
func Filter(subject domain.PropertyRecord, dataset []domain.PropertyRecord, tolerance float64) []domain.PropertyRecord {
	self := subject.Key()
	seen := make(map[domain.IdentityKey]struct{})
	var out []domain.PropertyRecord

	for _, candidate := range dataset {
		key := candidate.Key()
		if key == self {
			continue
		}
		if !Admissible(subject, candidate, tolerance) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate)
	}

	return out
}
