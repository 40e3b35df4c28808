package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// QualityTier is the display band a quality rating falls into.
type QualityTier string

const (
	TierExcellent QualityTier = "excellent"
	TierGood      QualityTier = "good"
	TierFair      QualityTier = "fair"
	TierPoor      QualityTier = "poor"
)

// Tiers lists every band, best first.
var Tiers = []QualityTier{TierExcellent, TierGood, TierFair, TierPoor}

// TierColors maps each tier to a hex color.
var TierColors = map[QualityTier]string{
	TierExcellent: "#10b981", // Green
	TierGood:      "#3b82f6", // Blue
	TierFair:      "#f59e0b", // Amber
	TierPoor:      "#ef4444", // Red
}

var titleCaser = cases.Title(language.English)

// Tier returns the band for a 1-10 quality rating.
func Tier(quality int) QualityTier {
	switch {
	case quality >= 8:
		return TierExcellent
	case quality >= 6:
		return TierGood
	case quality >= 4:
		return TierFair
	default:
		return TierPoor
	}
}

// Color returns the tier color, with a fallback.
func (t QualityTier) Color() string {
	if c, ok := TierColors[t]; ok {
		return c
	}
	return "#9ca3af"
}

// Label returns the tier name for display ("Excellent").
func (t QualityTier) Label() string {
	return titleCaser.String(string(t))
}

// QualityColor is a shortcut for Tier(quality).Color().
func QualityColor(quality int) string {
	return Tier(quality).Color()
}
