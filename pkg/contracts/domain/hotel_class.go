package domain

import (
	"strings"
)

// HotelClass is the ordinal hotel tier, 1 (Budget) through 8 (Independent)
type HotelClass int

const (
	ClassUnknown       HotelClass = 0
	ClassBudget        HotelClass = 1
	ClassEconomy       HotelClass = 2
	ClassMidscale      HotelClass = 3
	ClassUpperMidscale HotelClass = 4
	ClassUpscale       HotelClass = 5
	ClassUpperUpscale  HotelClass = 6
	ClassLuxury        HotelClass = 7
	ClassIndependent   HotelClass = 8
)

// hotelClassLabels is the fixed label vocabulary used in source workbooks
var hotelClassLabels = map[HotelClass]string{
	ClassBudget:        "Budget (Low End)",
	ClassEconomy:       "Economy (Name Brand)",
	ClassMidscale:      "Midscale",
	ClassUpperMidscale: "Upper Midscale",
	ClassUpscale:       "Upscale",
	ClassUpperUpscale:  "Upper Upscale First Class",
	ClassLuxury:        "Luxury Class",
	ClassIndependent:   "Independent Hotel",
}

var hotelClassByLabel = func() map[string]HotelClass {
	m := make(map[string]HotelClass, len(hotelClassLabels))
	for c, label := range hotelClassLabels {
		m[label] = c
	}
	return m
}()

// classAdjacency lists the candidate ranks comparable to each subject rank
var classAdjacency = map[HotelClass][]HotelClass{
	ClassBudget:        {ClassBudget, ClassEconomy, ClassMidscale},
	ClassEconomy:       {ClassBudget, ClassEconomy, ClassMidscale, ClassUpperMidscale},
	ClassMidscale:      {ClassEconomy, ClassMidscale, ClassUpperMidscale, ClassUpscale},
	ClassUpperMidscale: {ClassMidscale, ClassUpperMidscale, ClassUpscale, ClassUpperUpscale},
	ClassUpscale:       {ClassUpperMidscale, ClassUpscale, ClassUpperUpscale, ClassLuxury},
	ClassUpperUpscale:  {ClassUpscale, ClassUpperUpscale, ClassLuxury, ClassIndependent},
	ClassLuxury:        {ClassUpperUpscale, ClassLuxury, ClassIndependent},
	ClassIndependent:   {ClassLuxury, ClassIndependent},
}

// AllHotelClasses returns the vocabulary in rank order
func AllHotelClasses() []HotelClass {
	return []HotelClass{
		ClassBudget, ClassEconomy, ClassMidscale, ClassUpperMidscale,
		ClassUpscale, ClassUpperUpscale, ClassLuxury, ClassIndependent,
	}
}

// ParseHotelClass maps a workbook label to its rank. Surrounding whitespace
// is ignored; anything else must match the vocabulary exactly.
func ParseHotelClass(label string) (HotelClass, bool) {
	c, ok := hotelClassByLabel[strings.TrimSpace(label)]
	return c, ok
}

// IsValid reports whether c is one of the eight ranks
func (c HotelClass) IsValid() bool {
	_, ok := hotelClassLabels[c]
	return ok
}

// Label returns the workbook label for the class
func (c HotelClass) Label() string {
	if label, ok := hotelClassLabels[c]; ok {
		return label
	}
	return ""
}

// String returns the label, or "unknown"
func (c HotelClass) String() string {
	if label := c.Label(); label != "" {
		return label
	}
	return "unknown"
}

// Adjacent returns the ranks a subject of class c may be compared against.
// Unknown ranks have no adjacent classes.
func (c HotelClass) Adjacent() []HotelClass {
	adj := classAdjacency[c]
	out := make([]HotelClass, len(adj))
	copy(out, adj)
	return out
}

// Admits reports whether a candidate of class other is comparable to c
func (c HotelClass) Admits(other HotelClass) bool {
	for _, a := range classAdjacency[c] {
		if a == other {
			return true
		}
	}
	return false
}
