package comparables

import (
	"math"
	"sort"

	"hotelcomp/pkg/contracts/domain"
)

// Distance is the Euclidean distance between two properties in
// (market value, VPR) space
func Distance(a, b domain.PropertyRecord) float64 {
	dmv := a.MarketValue - b.MarketValue
	dvpr := a.VPR - b.VPR
	return math.Sqrt(dmv*dmv + dvpr*dvpr)
}

// Select samples up to maxResults comparables from the filtered candidates.
//
// Three passes run over a shrinking pool: the nearest three to the subject,
// then the single least valuable, then the single most valuable of what
// remains. The passes are concatenated in that order and only then truncated
// to maxResults, so a small cap always keeps the nearest picks. Ties keep the
// candidates' input order.
func Select(candidates []domain.PropertyRecord, subject domain.PropertyRecord, maxResults int) []domain.Comparable {
	if len(candidates) == 0 || maxResults <= 0 {
		return nil
	}

	nearest, pool := NearestThree(candidates, subject)
	least, pool := LeastOne(pool)
	top, _ := TopOne(pool)

	selection := make([]domain.Comparable, 0, len(nearest)+len(least)+len(top))
	selection = append(selection, nearest...)
	selection = append(selection, least...)
	selection = append(selection, top...)

	if len(selection) > maxResults {
		selection = selection[:maxResults]
	}
	return selection
}

// NearestThree picks the three candidates closest to the subject and returns
// them with the remaining pool
func NearestThree(pool []domain.PropertyRecord, subject domain.PropertyRecord) ([]domain.Comparable, []domain.PropertyRecord) {
	distances := make([]float64, len(pool))
	for i, p := range pool {
		distances[i] = Distance(p, subject)
	}

	order := rank(len(pool), func(a, b int) bool {
		return distances[a] < distances[b]
	})

	picked, rest := take(pool, order, NearestCount, domain.StageNearest)
	for i := range picked {
		picked[i].Distance = distances[order[i]]
	}
	return picked, rest
}

// LeastOne picks the candidate with the lowest market value, breaking ties on
// the lowest VPR
func LeastOne(pool []domain.PropertyRecord) ([]domain.Comparable, []domain.PropertyRecord) {
	order := rank(len(pool), func(a, b int) bool {
		if pool[a].MarketValue != pool[b].MarketValue {
			return pool[a].MarketValue < pool[b].MarketValue
		}
		return pool[a].VPR < pool[b].VPR
	})
	return take(pool, order, LeastCount, domain.StageLeast)
}

// TopOne picks the candidate with the highest market value, breaking ties on
// the highest VPR
func TopOne(pool []domain.PropertyRecord) ([]domain.Comparable, []domain.PropertyRecord) {
	order := rank(len(pool), func(a, b int) bool {
		if pool[a].MarketValue != pool[b].MarketValue {
			return pool[a].MarketValue > pool[b].MarketValue
		}
		return pool[a].VPR > pool[b].VPR
	})
	return take(pool, order, TopCount, domain.StageTop)
}

// rank returns pool indices stably sorted by less
func rank(n int, less func(a, b int) bool) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return less(order[i], order[j])
	})
	return order
}

// take moves the first n ranked entries out of pool. The remaining pool keeps
// its original order.
func take(pool []domain.PropertyRecord, order []int, n int, stage domain.SelectionStage) ([]domain.Comparable, []domain.PropertyRecord) {
	if n > len(order) {
		n = len(order)
	}

	picked := make([]domain.Comparable, 0, n)
	chosen := make(map[int]struct{}, n)
	for _, idx := range order[:n] {
		picked = append(picked, domain.Comparable{PropertyRecord: pool[idx], Stage: stage})
		chosen[idx] = struct{}{}
	}

	rest := make([]domain.PropertyRecord, 0, len(pool)-n)
	for i, p := range pool {
		if _, ok := chosen[i]; !ok {
			rest = append(rest, p)
		}
	}
	return picked, rest
}
