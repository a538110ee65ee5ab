package utils

import (
	"fmt"
	"math"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding you can show in the API / dashboard.
type Warning struct {
	Code           string          `json:"code"`
	Severity       WarningSeverity `json:"severity"`
	Message        string          `json:"message"`
	Metric         string          `json:"metric,omitempty"`
	Value          float64         `json:"value,omitempty"`
	Limit          float64         `json:"limit,omitempty"`
	PercentOfLimit float64         `json:"percent_of_limit,omitempty"`
	Reference      string          `json:"reference,omitempty"`
}

// Daily intake limits for maintenance hemodialysis patients.
// JSDT「慢性腎臓病に対する食事療法基準」の維持血液透析の目安。
const (
	saltDailyLimitG        = 6.0
	potassiumDailyLimitMg  = 2000.0
	phosphorusDailyLimitMg = 900.0
	fluidDailyLimitMl      = 1000.0 // drinking water on top of food moisture
)

// AssessMealSafety flags a single analyzed meal against the dialysis daily
// limits. Values are the already-normalized nutrient numbers; zeros (unknown
// or genuinely zero) simply produce no finding — the engine only speaks up
// when an input is present.
func AssessMealSafety(saltG, potassiumMg, phosphorusMg, fluidMl float64) []Warning {
	warnings := []Warning{}

	check := func(code, metric, jpName, unit string, value, dailyLimit float64) {
		if value <= 0 || dailyLimit <= 0 {
			return
		}
		share := value / dailyLimit
		w := Warning{
			Code:           code,
			Metric:         metric,
			Value:          round2(value),
			Limit:          dailyLimit,
			PercentOfLimit: round2(share * 100),
			Reference:      jsdtRef(),
		}
		switch {
		case share >= 0.5:
			w.Severity = High
			w.Message = fmt.Sprintf("この1食で1日の%s目安(%.0f%s)の約%.0f%%を摂取します。", jpName, dailyLimit, unit, share*100)
		case share >= 0.33:
			w.Severity = Caution
			w.Message = fmt.Sprintf("%sがやや多めです(1日目安の約%.0f%%)。", jpName, share*100)
		default:
			return
		}
		warnings = append(warnings, w)
	}

	check("salt_high", "salt_g", "塩分", "g", saltG, saltDailyLimitG)
	check("potassium_high", "potassium_mg", "カリウム", "mg", potassiumMg, potassiumDailyLimitMg)
	check("phosphorus_high", "phosphorus_mg", "リン", "mg", phosphorusMg, phosphorusDailyLimitMg)
	check("fluid_high", "fluid_ml", "水分", "ml", fluidMl, fluidDailyLimitMl)

	return warnings
}

// AssessMealSafetyMessages keeps a plain-strings variant for log lines.
func AssessMealSafetyMessages(saltG, potassiumMg, phosphorusMg, fluidMl float64) []string {
	ws := AssessMealSafety(saltG, potassiumMg, phosphorusMg, fluidMl)
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Message)
	}
	return out
}

func jsdtRef() string {
	return "慢性腎臓病に対する食事療法基準 2014年版 (JSDT)"
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
