package domain

import (
	"fmt"
	"strings"
)

// PropertyRecord represents a normalized hotel property row.
// Rooms, MarketValue and VPR have already been coerced by the loader;
// Class is derived from ClassLabel through the fixed vocabulary.
type PropertyRecord struct {
	Address     string     `json:"address" validate:"required"`
	State       string     `json:"state" validate:"required"`
	County      string     `json:"county" validate:"required"`
	ProjectName string     `json:"project_name"`
	OwnerName   string     `json:"owner_name"`
	Rooms       int        `json:"rooms" validate:"min=1"`
	MarketValue float64    `json:"market_value" validate:"min=0"`
	VPR         float64    `json:"vpr" validate:"min=0"`
	ClassLabel  string     `json:"hotel_class"`
	Class       HotelClass `json:"hotel_class_rank" validate:"min=1,max=8"`
}

// IdentityKey is the composite key used for self-exclusion and deduplication
type IdentityKey struct {
	ProjectName string `json:"project_name"`
	Address     string `json:"address"`
	OwnerName   string `json:"owner_name"`
}

// String returns a printable form of the key
func (k IdentityKey) String() string {
	return fmt.Sprintf("%s | %s | %s", k.ProjectName, k.Address, k.OwnerName)
}

// Key returns the record's composite identity key
func (p PropertyRecord) Key() IdentityKey {
	return IdentityKey{
		ProjectName: p.ProjectName,
		Address:     p.Address,
		OwnerName:   p.OwnerName,
	}
}

// IsValid reports whether the record satisfies the normalizer's invariants
func (p PropertyRecord) IsValid() bool {
	return strings.TrimSpace(p.Address) != "" &&
		p.Rooms > 0 && p.MarketValue >= 0 && p.VPR >= 0 &&
		p.Class.IsValid()
}

// SameJurisdiction reports whether both records share state and county
func (p PropertyRecord) SameJurisdiction(other PropertyRecord) bool {
	return p.State == other.State && p.County == other.County
}

// DedupeByKey collapses records sharing an identity key, keeping the first
// occurrence and preserving input order.
func DedupeByKey(records []PropertyRecord) []PropertyRecord {
	seen := make(map[IdentityKey]struct{}, len(records))
	out := make([]PropertyRecord, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ResolveClass fills in whichever of Class and ClassLabel is missing.
// A valid Class takes precedence over a conflicting label. It reports
// whether the record ends up with a valid class.
func (p *PropertyRecord) ResolveClass() bool {
	if p.Class.IsValid() {
		if p.ClassLabel == "" {
			p.ClassLabel = p.Class.Label()
		}
		return true
	}
	if c, ok := ParseHotelClass(p.ClassLabel); ok {
		p.Class = c
		p.ClassLabel = c.Label()
		return true
	}
	return false
}
