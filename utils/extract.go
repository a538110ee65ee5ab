package utils

import (
	"regexp"
	"strings"
)

// ValueUnknown is the sentinel stored when a field could not be determined.
// It is written out literally (never an empty string), so consumers only ever
// have to check for this one value.
const ValueUnknown = "不明"

// ExtractedMeal holds the raw fields pulled out of one model answer.
// Every field defaults to ValueUnknown; a miss is a normal outcome.
type ExtractedMeal struct {
	DishName     string `json:"dish_name"`
	EnergyKcal   string `json:"energy_kcal"`
	ProteinG     string `json:"protein_g"`
	SaltG        string `json:"salt_g"`
	PotassiumMg  string `json:"potassium_mg"`
	PhosphorusMg string `json:"phosphorus_mg"`
	FluidMl      string `json:"fluid_ml"`

	// Matched records which fields were actually found in the text,
	// for logging/diagnostics only. It never changes aggregate results.
	Matched map[string]bool `json:"-"`
}

// Label synonyms per nutrient, in the wording the prompt asks the model to
// use plus the variants seen in real answers. Keeping this as a table makes
// the synonym lists auditable without touching the matcher.
var nutrientRules = []struct {
	key    string
	labels []string
}{
	{"energy", []string{"エネルギー", "カロリー"}},
	{"protein", []string{"タンパク質", "たんぱく質", "蛋白質"}},
	{"salt", []string{"塩分相当量", "食塩相当量", "塩分"}},
	{"potassium", []string{"カリウム"}},
	{"phosphorus", []string{"リン"}},
	{"fluid", []string{"水分量", "水分"}},
}

var (
	nutrientRes = map[string]*regexp.Regexp{}
	dishNameRe  = regexp.MustCompile(`料理名[^:：\n]*[:：][ \t　]*(.+)`)

	// ～ (fullwidth tilde), ~ (ascii tilde) and ‑ (non-breaking hyphen) all
	// show up as range separators in model answers; 〜 is the canonical one.
	rangeGlyphs = strings.NewReplacer("～", "〜", "~", "〜", "‑", "〜")
)

func init() {
	for _, r := range nutrientRules {
		quoted := make([]string, len(r.labels))
		for i, l := range r.labels {
			quoted[i] = regexp.QuoteMeta(l)
		}
		// label, then anything up to the first numeric-ish run
		nutrientRes[r.key] = regexp.MustCompile(
			`(?i)(?:` + strings.Join(quoted, "|") + `)[^0-9]*?([0-9][0-9.,〜~～‑]*)`)
	}
}

// ExtractMeal parses one free-text model answer into raw meal fields.
// The input has no guaranteed structure; any field whose label is not found
// stays ValueUnknown, and no input can make this fail.
func ExtractMeal(responseText string) ExtractedMeal {
	out := ExtractedMeal{
		DishName:     ValueUnknown,
		EnergyKcal:   ValueUnknown,
		ProteinG:     ValueUnknown,
		SaltG:        ValueUnknown,
		PotassiumMg:  ValueUnknown,
		PhosphorusMg: ValueUnknown,
		FluidMl:      ValueUnknown,
		Matched:      map[string]bool{},
	}
	if responseText == "" {
		return out
	}

	if m := dishNameRe.FindStringSubmatch(responseText); m != nil {
		if name := strings.Trim(m[1], " \t　*[]"); name != "" {
			out.DishName = name
			out.Matched["dish"] = true
		}
	}

	for _, r := range nutrientRules {
		m := nutrientRes[r.key].FindStringSubmatch(responseText)
		if m == nil {
			continue
		}
		v := cleanNumericRun(m[1])
		if v == "" {
			continue
		}
		out.Matched[r.key] = true
		switch r.key {
		case "energy":
			out.EnergyKcal = v
		case "protein":
			out.ProteinG = v
		case "salt":
			out.SaltG = v
		case "potassium":
			out.PotassiumMg = v
		case "phosphorus":
			out.PhosphorusMg = v
		case "fluid":
			out.FluidMl = v
		}
	}
	return out
}

// cleanNumericRun strips thousands separators and canonicalizes range glyphs
// so "1,200～1,500" is stored as "1200〜1500".
func cleanNumericRun(run string) string {
	run = strings.ReplaceAll(run, ",", "")
	run = rangeGlyphs.Replace(run)
	return strings.Trim(run, " 〜")
}
