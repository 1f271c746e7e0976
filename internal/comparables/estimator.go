package comparables

import (
	"sort"

	"hotelcomp/pkg/contracts/domain"
)

// Median returns the median of values and false when values is empty.
// An even count yields the mean of the two middle values.
func Median(values []float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// NearestVPRs returns the VPRs of the nearest-three slice of a selection,
// i.e. its first min(3, len) entries
func NearestVPRs(selection []domain.Comparable) []float64 {
	n := len(selection)
	if n > NearestCount {
		n = NearestCount
	}
	vprs := make([]float64, n)
	for i := 0; i < n; i++ {
		vprs[i] = selection[i].VPR
	}
	return vprs
}

// Estimate derives the overpaid tax estimate for subject from its selection.
// It returns nil when the selection is empty.
func Estimate(selection []domain.Comparable, subject domain.PropertyRecord) *domain.Estimate {
	medianVPR, ok := Median(NearestVPRs(selection))
	if !ok {
		return nil
	}

	rate := StateTaxRate(subject.State)
	assessed := medianVPR * float64(subject.Rooms) * rate
	subjectTax := subject.MarketValue * rate

	return &domain.Estimate{
		MedianVPR:     medianVPR,
		StateRate:     rate,
		AssessedValue: assessed,
		SubjectTax:    subjectTax,
		Overpaid:      subjectTax - assessed,
	}
}
