package utils_test

import (
	"testing"

	"nutrilog/models"
	"nutrilog/utils"
)

func TestRecordFromSheetRowCurrentLabels(t *testing.T) {
	row := utils.SheetRow{
		"日付":         "2024-06-01",
		"時刻":         "08:00:00",
		"名前":         "田中",
		"料理名":        "納豆ご飯",
		"写真":         "https://cdn.example.com/meal-photos/a.jpg",
		"エネルギー(kcal)": "420",
		"タンパク質(g)":    "14",
		"塩分(g)":       "1.1",
		"カリウム(mg)":    "300",
		"リン(mg)":      "190",
		"水分(ml)":      "60",
	}

	rec := utils.RecordFromSheetRow(row)
	if rec.Date != "2024-06-01" || rec.Time != "08:00:00" || rec.UserName != "田中" {
		t.Errorf("header fields = %q/%q/%q", rec.Date, rec.Time, rec.UserName)
	}
	if rec.DishName != "納豆ご飯" || rec.EnergyKcal != "420" || rec.PhosphorusMg != "190" {
		t.Errorf("value fields = %q/%q/%q", rec.DishName, rec.EnergyKcal, rec.PhosphorusMg)
	}
	if rec.PhotoURL == "" {
		t.Error("PhotoURL should carry over")
	}
}

// Older log versions: no photo column, the user column still named ユーザー名,
// nutrient labels without units.
func TestRecordFromSheetRowLegacyLabels(t *testing.T) {
	row := utils.SheetRow{
		"日付":    "2023-11-20",
		"時間":    "19:30:00",
		"ユーザー名": "佐藤",
		"料理名":   "カレーライス",
		"エネルギー": "780",
		"塩分":    "3.2",
	}

	rec := utils.RecordFromSheetRow(row)
	if rec.UserName != "佐藤" {
		t.Errorf("UserName = %q, want 佐藤 (renamed column)", rec.UserName)
	}
	if rec.Time != "19:30:00" {
		t.Errorf("Time = %q, want 19:30:00 (時間 alias)", rec.Time)
	}
	if rec.EnergyKcal != "780" || rec.SaltG != "3.2" {
		t.Errorf("nutrients = %q/%q", rec.EnergyKcal, rec.SaltG)
	}
	if rec.PhotoURL != "" {
		t.Errorf("PhotoURL = %q, want empty for legacy row", rec.PhotoURL)
	}
	// missing columns come back as the sentinel, not empty
	for name, v := range map[string]string{
		"ProteinG":     rec.ProteinG,
		"PotassiumMg":  rec.PotassiumMg,
		"PhosphorusMg": rec.PhosphorusMg,
		"FluidMl":      rec.FluidMl,
	} {
		if v != utils.ValueUnknown {
			t.Errorf("%s = %q, want sentinel", name, v)
		}
	}
}

func TestSheetRowRoundTrip(t *testing.T) {
	rec := models.MealRecord{
		Date: "2024-06-01", Time: "12:15:00", UserName: "鈴木",
		DishName: "ざるそば", PhotoURL: "https://cdn.example.com/p.jpg",
		EnergyKcal: "350", ProteinG: "12", SaltG: "2.5",
		PotassiumMg: "160", PhosphorusMg: "110", FluidMl: "250",
		FullResponse: "## 料理名: ざるそば",
	}

	got := utils.RecordFromSheetRow(utils.SheetRowFromRecord(rec))
	if got != rec {
		t.Errorf("round trip changed the record:\n got %+v\nwant %+v", got, rec)
	}
}

func TestRecordFromSheetRowEmptyRow(t *testing.T) {
	rec := utils.RecordFromSheetRow(utils.SheetRow{})
	if rec.Date != utils.ValueUnknown || rec.DishName != utils.ValueUnknown {
		t.Errorf("empty row should map to sentinels, got %+v", rec)
	}
}
