package utils_test

import (
	"testing"

	"nutrilog/models"
	"nutrilog/utils"
)

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"1500", 1500},
		{"1,500", 1500},
		{" 25 ", 25},
		{"18.5", 18.5},
		{"1200〜1500", 1350},
		{"800~1000", 900},
		{"800～1000", 900},
		{"〜500", 500},  // open-ended range: mean of the one parsed side
		{"800〜", 800},
		{utils.ValueUnknown, 0},
		{"", 0},
		{"abc", 0},
		{"350/400", 0}, // only 〜-delimited ranges average; other delimiters fail to 0
		{"不明〜不明", 0},
	}
	for _, tc := range cases {
		if got := utils.NormalizeValue(tc.raw); got != tc.want {
			t.Errorf("NormalizeValue(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestClassifyMealSlot(t *testing.T) {
	cases := []struct {
		time string
		want models.MealSlot
	}{
		{"05:00:00", models.SlotBreakfast},
		{"07:30:00", models.SlotBreakfast},
		{"09:59:59", models.SlotBreakfast},
		{"10:00:00", models.SlotLunch},
		{"12:00:00", models.SlotLunch},
		{"15:00:00", models.SlotDinner},
		{"18:45:00", models.SlotDinner},
		{"21:59:00", models.SlotDinner},
		{"22:00:00", models.SlotLateNight},
		{"02:00:00", models.SlotLateNight},
		{"04:59:59", models.SlotLateNight},
		{"bad", models.SlotUnknown},
		{"", models.SlotUnknown},
		{"25:00:00", models.SlotUnknown},
		{"不明", models.SlotUnknown},
	}
	for _, tc := range cases {
		if got := utils.ClassifyMealSlot(tc.time); got != tc.want {
			t.Errorf("ClassifyMealSlot(%q) = %q, want %q", tc.time, got, tc.want)
		}
	}
}
