package utils_test

import (
	"testing"

	"nutrilog/utils"
)

func TestAssessMealSafetyFlagsHighShares(t *testing.T) {
	// salt 4g of the 6g/day limit, potassium 1200mg of 2000mg/day
	ws := utils.AssessMealSafety(4.0, 1200, 0, 0)
	if len(ws) != 2 {
		t.Fatalf("got %d warnings, want 2: %+v", len(ws), ws)
	}
	for _, w := range ws {
		if w.Severity != utils.High {
			t.Errorf("%s severity = %q, want high", w.Code, w.Severity)
		}
		if w.PercentOfLimit < 50 {
			t.Errorf("%s percent = %v, want >= 50", w.Code, w.PercentOfLimit)
		}
	}
}

func TestAssessMealSafetyCaution(t *testing.T) {
	// phosphorus 350mg of 900mg/day is between one third and one half
	ws := utils.AssessMealSafety(0, 0, 350, 0)
	if len(ws) != 1 {
		t.Fatalf("got %d warnings, want 1: %+v", len(ws), ws)
	}
	if ws[0].Code != "phosphorus_high" || ws[0].Severity != utils.Caution {
		t.Errorf("warning = %+v, want phosphorus caution", ws[0])
	}
}

func TestAssessMealSafetySilentOnUnknowns(t *testing.T) {
	// normalized unknowns are zeros; the engine must stay quiet
	if ws := utils.AssessMealSafety(0, 0, 0, 0); len(ws) != 0 {
		t.Errorf("got %d warnings for all-zero input, want none", len(ws))
	}
	// small values under every threshold
	if ws := utils.AssessMealSafety(1.0, 300, 150, 200); len(ws) != 0 {
		t.Errorf("got %d warnings for modest meal, want none", len(ws))
	}
}
