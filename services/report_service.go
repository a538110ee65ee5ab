package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"nutrilog/models"
	"nutrilog/utils"
)

// ReportService builds the dashboard's period reports from the meal log.
// Everything below the query is pure in-memory computation: the full log is
// re-read for every report, filtered, sorted and aggregated from scratch.
type ReportService struct{ log *MealLogService }

func NewReportService(log *MealLogService) *ReportService { return &ReportService{log: log} }

// nutrient keys, in presentation order
var nutrientKeys = []string{"energy", "protein", "salt", "potassium", "phosphorus", "fluid"}

// PeriodSummary aggregates a filtered record set. Per-day averages divide by
// the distinct-day count, not the meal count, so two meals on one day do not
// inflate the denominator. DayCount is the real count — check MealCount to
// tell "no data" from "data with zero values".
type PeriodSummary struct {
	MealCount int                `json:"meal_count"`
	DayCount  int                `json:"day_count"`
	Totals    map[string]float64 `json:"totals"`
	PerMeal   map[string]float64 `json:"per_meal_avg"`
	PerDay    map[string]float64 `json:"per_day_avg"`
}

// DailyTotal is one row of the daily series.
type DailyTotal struct {
	Date   string             `json:"date"`
	Totals map[string]float64 `json:"totals"`
}

// MealView is one record prepared for a detail listing.
type MealView struct {
	Record     models.MealRecord  `json:"record"`
	Slot       models.MealSlot    `json:"slot"`
	Normalized map[string]float64 `json:"normalized"`
	Warnings   []utils.Warning    `json:"warnings,omitempty"`
}

type PeriodReport struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	User    string        `json:"user,omitempty"`
	Summary PeriodSummary `json:"summary"`
	Daily   []DailyTotal  `json:"daily"`
	Meals   []MealView    `json:"meals"`
}

// NutrientValues normalizes every nutrient field of a record.
func NutrientValues(rec models.MealRecord) map[string]float64 {
	return map[string]float64{
		"energy":     utils.NormalizeValue(rec.EnergyKcal),
		"protein":    utils.NormalizeValue(rec.ProteinG),
		"salt":       utils.NormalizeValue(rec.SaltG),
		"potassium":  utils.NormalizeValue(rec.PotassiumMg),
		"phosphorus": utils.NormalizeValue(rec.PhosphorusMg),
		"fluid":      utils.NormalizeValue(rec.FluidMl),
	}
}

// FilterRecords keeps records whose date parses, falls inside [from, to]
// (inclusive both ends) and, unless user is ""/"all", whose display name
// matches exactly. Records with unparsable dates are dropped silently;
// ordering is left to the aggregation stage.
func FilterRecords(records []models.MealRecord, user string, from, to time.Time) []models.MealRecord {
	out := make([]models.MealRecord, 0, len(records))
	for _, r := range records {
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		if user != "" && user != "all" && r.UserName != user {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortRecords orders by (date, time) ascending — the canonical presentation
// order for the daily series and any detail listing.
func SortRecords(records []models.MealRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].Time < records[j].Time
	})
}

// Aggregate computes the period summary over an already-filtered record set.
func Aggregate(records []models.MealRecord) PeriodSummary {
	totals := map[string]float64{}
	for _, k := range nutrientKeys {
		totals[k] = 0
	}
	days := map[string]struct{}{}

	for _, r := range records {
		days[r.Date] = struct{}{}
		for k, v := range NutrientValues(r) {
			totals[k] += v
		}
	}

	mealCount := len(records)
	dayCount := len(days)
	dayDiv := dayCount
	if dayDiv == 0 {
		dayDiv = 1 // empty set: averages are zeros, MealCount says "no data"
	}

	sum := PeriodSummary{
		MealCount: mealCount,
		DayCount:  dayCount,
		Totals:    map[string]float64{},
		PerMeal:   map[string]float64{},
		PerDay:    map[string]float64{},
	}
	for _, k := range nutrientKeys {
		sum.Totals[k] = round2(totals[k])
		sum.PerMeal[k] = avg(totals[k], mealCount)
		sum.PerDay[k] = avg(totals[k], dayDiv)
	}
	return sum
}

// DailySeries groups normalized values by date, one row per distinct date
// present, ascending. Dates with no meals in range are not zero-filled.
func DailySeries(records []models.MealRecord) []DailyTotal {
	byDate := map[string]map[string]float64{}
	for _, r := range records {
		bucket := byDate[r.Date]
		if bucket == nil {
			bucket = map[string]float64{}
			for _, k := range nutrientKeys {
				bucket[k] = 0
			}
			byDate[r.Date] = bucket
		}
		for k, v := range NutrientValues(r) {
			bucket[k] += v
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyTotal, 0, len(dates))
	for _, d := range dates {
		totals := map[string]float64{}
		for _, k := range nutrientKeys {
			totals[k] = round2(byDate[d][k])
		}
		out = append(out, DailyTotal{Date: d, Totals: totals})
	}
	return out
}

// BuildReport queries the full log and assembles summary, daily series and
// the sorted detail listing for one user (or "all") and date range.
func (s *ReportService) BuildReport(ctx context.Context, user string, from, to time.Time) (*PeriodReport, error) {
	rows, err := s.log.QueryAllRows(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.MealRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, utils.RecordFromSheetRow(row))
	}

	filtered := FilterRecords(records, user, from, to)
	SortRecords(filtered)

	out := &PeriodReport{
		Summary: Aggregate(filtered),
		Daily:   DailySeries(filtered),
		Meals:   make([]MealView, 0, len(filtered)),
	}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")
	if user != "" && user != "all" {
		out.User = user
	}

	for _, r := range filtered {
		nv := NutrientValues(r)
		out.Meals = append(out.Meals, MealView{
			Record:     r,
			Slot:       utils.ClassifyMealSlot(r.Time),
			Normalized: nv,
			Warnings:   utils.AssessMealSafety(nv["salt"], nv["potassium"], nv["phosphorus"], nv["fluid"]),
		})
	}
	return out, nil
}

// RenderReportText renders a report as the plain-text body of a shared
// email. Presentation only — nothing here feeds back into the aggregates.
func RenderReportText(r *PeriodReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "栄養レポート %s 〜 %s\n", r.Range.From, r.Range.To)
	if r.User != "" {
		fmt.Fprintf(&sb, "対象: %s\n", r.User)
	}
	fmt.Fprintf(&sb, "食事数: %d件 / %d日\n\n", r.Summary.MealCount, r.Summary.DayCount)

	labels := map[string]string{
		"energy":     "エネルギー(kcal)",
		"protein":    "タンパク質(g)",
		"salt":       "塩分(g)",
		"potassium":  "カリウム(mg)",
		"phosphorus": "リン(mg)",
		"fluid":      "水分(ml)",
	}
	sb.WriteString("【1日平均】\n")
	for _, k := range nutrientKeys {
		fmt.Fprintf(&sb, "  %s: %.1f\n", labels[k], r.Summary.PerDay[k])
	}

	sb.WriteString("\n【日別合計】\n")
	for _, d := range r.Daily {
		fmt.Fprintf(&sb, "  %s  エネルギー %.0f kcal / 塩分 %.1f g / カリウム %.0f mg / リン %.0f mg\n",
			d.Date, d.Totals["energy"], d.Totals["salt"], d.Totals["potassium"], d.Totals["phosphorus"])
	}

	sb.WriteString("\n※AIによる推定値です。厳密な管理は医師・管理栄養士の指導に従ってください。\n")
	return sb.String()
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
