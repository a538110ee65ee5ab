package utils

import (
	"strconv"
	"strings"

	"nutrilog/models"
)

// NormalizeValue turns a raw logged field into a single comparable number.
//
// Ranges ("1200〜1500") become the mean of their parsed sides. Anything
// unparsable — including the 不明 sentinel — becomes 0.0 rather than an
// error, so aggregation stays defined for every logged row and meal/day
// counts stay accurate even when nutrient parsing failed.
func NormalizeValue(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = rangeGlyphs.Replace(s)
	if s == "" {
		return 0
	}

	if i := strings.Index(s, "〜"); i >= 0 {
		var sum float64
		var n int
		for _, side := range []string{s[:i], s[i+len("〜"):]} {
			if side == "" {
				continue
			}
			if v, err := strconv.ParseFloat(side, 64); err == nil {
				sum += v
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ClassifyMealSlot maps a record's "HH:MM:SS" time to a meal slot using the
// hour only: [5,10) breakfast, [10,15) lunch, [15,22) dinner, else late
// night. Anything that does not yield an hour is SlotUnknown, never an error.
func ClassifyMealSlot(t string) models.MealSlot {
	hh, _, _ := strings.Cut(t, ":")
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || h < 0 || h > 23 {
		return models.SlotUnknown
	}
	switch {
	case h >= 5 && h < 10:
		return models.SlotBreakfast
	case h >= 10 && h < 15:
		return models.SlotLunch
	case h >= 15 && h < 22:
		return models.SlotDinner
	default:
		return models.SlotLateNight
	}
}
