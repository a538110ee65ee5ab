package utils_test

import (
	"strings"
	"testing"

	"nutrilog/utils"
)

func TestExtractMealFullAnswer(t *testing.T) {
	text := "## 料理名: 肉じゃが\n" +
		"(※参照元: 成分表PDF)\n" +
		"\n" +
		"## 推定栄養素 (1食あたり)\n" +
		"- **エネルギー**: 1,250 kcal\n" +
		"- **タンパク質**: 18.5 g\n" +
		"- **塩分相当量**: 2.3 g\n" +
		"- **カリウム**: 800〜1000 mg\n" +
		"- **リン**: 180 mg\n" +
		"- **水分量**: 150 ml (推定)\n" +
		"\n" +
		"## 透析患者へのアドバイス\n" +
		"カリウムが多めなので注意してください。\n"

	got := utils.ExtractMeal(text)

	if got.DishName != "肉じゃが" {
		t.Errorf("DishName = %q, want 肉じゃが", got.DishName)
	}
	if got.EnergyKcal != "1250" {
		t.Errorf("EnergyKcal = %q, want 1250 (thousands separator stripped)", got.EnergyKcal)
	}
	if got.ProteinG != "18.5" {
		t.Errorf("ProteinG = %q, want 18.5", got.ProteinG)
	}
	if got.SaltG != "2.3" {
		t.Errorf("SaltG = %q, want 2.3", got.SaltG)
	}
	if got.PotassiumMg != "800〜1000" {
		t.Errorf("PotassiumMg = %q, want 800〜1000", got.PotassiumMg)
	}
	if got.PhosphorusMg != "180" {
		t.Errorf("PhosphorusMg = %q, want 180", got.PhosphorusMg)
	}
	if got.FluidMl != "150" {
		t.Errorf("FluidMl = %q, want 150", got.FluidMl)
	}
}

func TestExtractMealPartialAnswer(t *testing.T) {
	text := "## 料理名: 焼き鮭\n- エネルギー: 350 kcal\n- たんぱく質: 25 g"

	got := utils.ExtractMeal(text)

	if got.DishName != "焼き鮭" {
		t.Errorf("DishName = %q, want 焼き鮭", got.DishName)
	}
	if got.EnergyKcal != "350" {
		t.Errorf("EnergyKcal = %q, want 350", got.EnergyKcal)
	}
	if got.ProteinG != "25" {
		t.Errorf("ProteinG = %q, want 25 (たんぱく質 synonym)", got.ProteinG)
	}
	for name, v := range map[string]string{
		"SaltG":        got.SaltG,
		"PotassiumMg":  got.PotassiumMg,
		"PhosphorusMg": got.PhosphorusMg,
		"FluidMl":      got.FluidMl,
	} {
		if v != utils.ValueUnknown {
			t.Errorf("%s = %q, want the %s sentinel", name, v, utils.ValueUnknown)
		}
	}
}

func TestExtractMealNoRecognizableStructure(t *testing.T) {
	for _, text := range []string{
		"",
		"この画像からは食事を特定できませんでした。",
		"lorem ipsum dolor sit amet 12345",
		strings.Repeat("あ", 10000),
	} {
		got := utils.ExtractMeal(text)
		if got.DishName != utils.ValueUnknown {
			t.Errorf("ExtractMeal(%.20q).DishName = %q, want sentinel", text, got.DishName)
		}
		for _, v := range []string{got.EnergyKcal, got.ProteinG, got.SaltG, got.PotassiumMg, got.PhosphorusMg, got.FluidMl} {
			if v != utils.ValueUnknown {
				t.Errorf("ExtractMeal(%.20q) nutrient = %q, want sentinel", text, v)
			}
		}
		if len(got.Matched) != 0 {
			t.Errorf("Matched = %v, want empty", got.Matched)
		}
	}
}

func TestExtractMealFirstMatchWins(t *testing.T) {
	text := "エネルギー: 500 kcal\nご飯を追加した場合のエネルギー: 750 kcal"

	got := utils.ExtractMeal(text)
	if got.EnergyKcal != "500" {
		t.Errorf("EnergyKcal = %q, want the first match 500", got.EnergyKcal)
	}
}

func TestExtractMealRangeGlyphCanonicalized(t *testing.T) {
	cases := map[string]string{
		"カリウム: 800~1000 mg": "800〜1000",
		"カリウム: 800～1000 mg": "800〜1000",
		"カリウム: 800〜1000 mg": "800〜1000",
	}
	for text, want := range cases {
		if got := utils.ExtractMeal(text).PotassiumMg; got != want {
			t.Errorf("ExtractMeal(%q).PotassiumMg = %q, want %q", text, got, want)
		}
	}
}

func TestExtractMealDishNameVariants(t *testing.T) {
	cases := map[string]string{
		"## 料理名: カレーライス":      "カレーライス",
		"**料理名**: 親子丼":        "親子丼",
		"料理名：味噌汁":             "味噌汁", // fullwidth colon
		"料理名: [コンビニのおにぎり(鮭)]": "コンビニのおにぎり(鮭)",
	}
	for text, want := range cases {
		if got := utils.ExtractMeal(text).DishName; got != want {
			t.Errorf("ExtractMeal(%q).DishName = %q, want %q", text, got, want)
		}
	}
}
