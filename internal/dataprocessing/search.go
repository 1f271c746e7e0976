package dataprocessing

import (
	"sort"
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"hotelcomp/internal/comparables"
	"hotelcomp/pkg/contracts/domain"
)

// DefaultSearchThreshold is the minimum partial ratio for an address match
const DefaultSearchThreshold float64 = 90

// SelectAll is the address choice that selects every subject
const SelectAll = "[SELECT ALL]"

// AddressMatch is a record whose address matched a search query
type AddressMatch struct {
	Record domain.PropertyRecord `json:"record"`
	Score  float64               `json:"score"`
}

// NormalizeString lower-cases s and keeps only letters and digits
func NormalizeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SearchAddresses returns records whose address fuzzy-matches query with a
// partial ratio of at least threshold, best score first. An exact match of
// the normalized forms always scores 100. A threshold <= 0 uses
// DefaultSearchThreshold. Records sharing an identity key appear once.
func SearchAddresses(records []domain.PropertyRecord, query string, threshold float64) []AddressMatch {
	if threshold <= 0 {
		threshold = DefaultSearchThreshold
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	normalizedQuery := NormalizeString(q)

	var matches []AddressMatch
	for _, rec := range domain.DedupeByKey(records) {
		score := float64(fuzzy.PartialRatio(strings.ToLower(rec.Address), q))
		if normalizedQuery != "" && NormalizeString(rec.Address) == normalizedQuery {
			score = 100
		}
		if score >= threshold {
			matches = append(matches, AddressMatch{Record: rec, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// ScopeByAddress resolves property addresses to a comparison scope.
//
// Addresses are compared after trimming surrounding whitespace. Every record
// at a chosen address becomes a subject. An empty list, or one containing
// SelectAll, selects the whole dataset. Addresses that match no record are
// returned separately.
func ScopeByAddress(records []domain.PropertyRecord, addresses []string) (comparables.Scope, []string) {
	if len(addresses) == 0 {
		return comparables.AllSubjects(), nil
	}

	wanted := make(map[string]bool, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == SelectAll {
			return comparables.AllSubjects(), nil
		}
		wanted[a] = false
	}

	keys := make([]domain.IdentityKey, 0)
	seen := make(map[domain.IdentityKey]struct{})
	for _, rec := range records {
		addr := strings.TrimSpace(rec.Address)
		if _, ok := wanted[addr]; !ok {
			continue
		}
		wanted[addr] = true

		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	var unknown []string
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if found, ok := wanted[a]; ok && !found {
			unknown = append(unknown, a)
			delete(wanted, a)
		}
	}
	return comparables.SubjectsWithKeys(keys...), unknown
}

// Addresses lists the distinct trimmed addresses of a dataset in order
func Addresses(records []domain.PropertyRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, rec := range records {
		a := strings.TrimSpace(rec.Address)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
