package utils

import (
	"strings"

	"nutrilog/models"
)

// SheetRow is one raw log row as the spreadsheet-era exports shaped it:
// a mapping from column label to string value. The column set changed across
// app versions (older rows have no photo column, one version renamed the
// user column), so nothing here may assume a fixed schema.
type SheetRow map[string]string

// Column label aliases, newest label first. Reading goes through these so
// rows written by any log version map onto the same record.
var columnAliases = map[string][]string{
	"date":       {"日付"},
	"time":       {"時刻", "時間"},
	"user":       {"名前", "ユーザー名", "利用者"},
	"dish":       {"料理名"},
	"photo":      {"写真", "写真URL"},
	"energy":     {"エネルギー(kcal)", "エネルギー"},
	"protein":    {"タンパク質(g)", "タンパク質", "たんぱく質"},
	"salt":       {"塩分(g)", "塩分相当量", "塩分"},
	"potassium":  {"カリウム(mg)", "カリウム"},
	"phosphorus": {"リン(mg)", "リン"},
	"fluid":      {"水分(ml)", "水分量"},
	"full":       {"AI回答全文", "回答全文"},
}

// pickColumn returns the first alias present in the row, tolerating
// surrounding whitespace in the stored labels.
func pickColumn(row SheetRow, aliases []string) (string, bool) {
	for _, a := range aliases {
		if v, ok := row[a]; ok {
			return strings.TrimSpace(v), true
		}
	}
	for k, v := range row {
		kk := strings.TrimSpace(k)
		for _, a := range aliases {
			if kk == a {
				return strings.TrimSpace(v), true
			}
		}
	}
	return "", false
}

// RecordFromSheetRow maps a raw row onto a MealRecord. Missing columns come
// back as the 不明 sentinel (empty string for the optional photo), so the
// filter and aggregation stages never see an absent field.
func RecordFromSheetRow(row SheetRow) models.MealRecord {
	get := func(key string) string {
		if v, ok := pickColumn(row, columnAliases[key]); ok && v != "" {
			return v
		}
		return ValueUnknown
	}

	rec := models.MealRecord{
		Date:         get("date"),
		Time:         get("time"),
		UserName:     get("user"),
		DishName:     get("dish"),
		EnergyKcal:   get("energy"),
		ProteinG:     get("protein"),
		SaltG:        get("salt"),
		PotassiumMg:  get("potassium"),
		PhosphorusMg: get("phosphorus"),
		FluidMl:      get("fluid"),
	}
	if v, ok := pickColumn(row, columnAliases["photo"]); ok {
		rec.PhotoURL = v
	}
	if v, ok := pickColumn(row, columnAliases["full"]); ok {
		rec.FullResponse = v
	}
	return rec
}

// SheetRowFromRecord renders a record with the current column labels.
func SheetRowFromRecord(rec models.MealRecord) SheetRow {
	return SheetRow{
		"日付":         rec.Date,
		"時刻":         rec.Time,
		"名前":         rec.UserName,
		"料理名":        rec.DishName,
		"写真":         rec.PhotoURL,
		"エネルギー(kcal)": rec.EnergyKcal,
		"タンパク質(g)":    rec.ProteinG,
		"塩分(g)":       rec.SaltG,
		"カリウム(mg)":    rec.PotassiumMg,
		"リン(mg)":      rec.PhosphorusMg,
		"水分(ml)":      rec.FluidMl,
		"AI回答全文":      rec.FullResponse,
	}
}
