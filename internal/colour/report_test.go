package colour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssessDefaults(t *testing.T) {
	scale, err := Generate("#6366F1")
	if err != nil {
		t.Fatal(err)
	}
	report := Assess(scale)

	if diff := cmp.Diff([]string{TextLight, TextDark}, report.Texts); diff != "" {
		t.Errorf("Texts mismatch (-want +got):\n%s", diff)
	}
	if len(report.Steps) != StepCount {
		t.Fatalf("len(Steps) = %d, want %d", len(report.Steps), StepCount)
	}

	wantLight := []Level{
		LevelFail, LevelFail, LevelFail, LevelFail, LevelFail, LevelAALarge,
		LevelAA, LevelAAA, LevelAAA, LevelAAA, LevelAAA, LevelAAA,
	}
	wantDark := []Level{
		LevelAAA, LevelAAA, LevelAAA, LevelAAA, LevelAA, LevelAA,
		LevelAALarge, LevelFail, LevelFail, LevelFail, LevelFail, LevelFail,
	}

	var gotLight, gotDark []Level
	for _, sr := range report.Steps {
		if len(sr.Checks) != 2 {
			t.Fatalf("step %d has %d checks", sr.Step.Index, len(sr.Checks))
		}
		gotLight = append(gotLight, sr.Checks[0].Badge.Level)
		gotDark = append(gotDark, sr.Checks[1].Badge.Level)
	}
	if diff := cmp.Diff(wantLight, gotLight); diff != "" {
		t.Errorf("levels on white (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantDark, gotDark); diff != "" {
		t.Errorf("levels on dark (-want +got):\n%s", diff)
	}
}

func TestAssessRatios(t *testing.T) {
	scale, _ := Generate("#6366F1")
	report := Assess(scale)

	tests := []struct {
		step      int
		light     float64
		dark      float64
		bestLight bool
	}{
		{step: 1, light: 1, dark: 19.64459672022079},
		{step: 6, light: 4.176746108384293, dark: 4.703325557851536},
		{step: 7, light: 6.0282286618286145, dark: 3.258767678242278, bestLight: true},
		{step: 12, light: 15.535807926132945, dark: 1.2644721673712511, bestLight: true},
	}

	for _, tt := range tests {
		sr := report.Steps[tt.step-1]
		if !approxEqual(sr.Checks[0].Ratio, tt.light, 1e-9) {
			t.Errorf("step %d on white = %v, want %v", tt.step, sr.Checks[0].Ratio, tt.light)
		}
		if !approxEqual(sr.Checks[1].Ratio, tt.dark, 1e-9) {
			t.Errorf("step %d on dark = %v, want %v", tt.step, sr.Checks[1].Ratio, tt.dark)
		}
		wantBest := TextDark
		if tt.bestLight {
			wantBest = TextLight
		}
		if sr.Best.Text != wantBest {
			t.Errorf("step %d best = %s, want %s", tt.step, sr.Best.Text, wantBest)
		}
	}
}

func TestAssessBestTieKeepsFirst(t *testing.T) {
	scale, _ := Generate("#808080")
	same := MustParseHex("#000000")
	report := Assess(scale, same, same)
	for _, sr := range report.Steps {
		if sr.Best != sr.Checks[0] {
			t.Fatalf("step %d best = %+v, want first check", sr.Step.Index, sr.Best)
		}
	}
}

func TestAssessCustomTexts(t *testing.T) {
	scale, _ := Generate("#FF0000")
	report := Assess(scale, MustParseHex("#000"))
	if diff := cmp.Diff([]string{"#000000"}, report.Texts); diff != "" {
		t.Errorf("Texts mismatch (-want +got):\n%s", diff)
	}
	// Step 9 sits just under AA against both standard text colours.
	if got := report.Steps[8].Checks[0].Badge.Level; got != LevelAA {
		t.Errorf("step 9 on black = %s, want AA", got)
	}
}

func TestStepReportMeets(t *testing.T) {
	scale, _ := Generate("#FF0000")
	report := Assess(scale)

	step9 := report.Steps[8]
	if !step9.Meets(LevelAALarge) {
		t.Error("step 9 should meet AA-Large")
	}
	if step9.Meets(LevelAA) {
		t.Error("step 9 should not meet AA")
	}
}

func TestReportSummary(t *testing.T) {
	scale, _ := Generate("#6366F1")
	summary := Assess(scale).Summary()

	want := map[string]map[Level]int{
		TextLight: {LevelFail: 5, LevelAALarge: 1, LevelAA: 1, LevelAAA: 5},
		TextDark:  {LevelAAA: 4, LevelAA: 2, LevelAALarge: 1, LevelFail: 5},
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
	}
}

func TestReportFailing(t *testing.T) {
	scale, _ := Generate("#FF0000")
	report := Assess(scale)

	var failing []int
	for _, sr := range report.Failing(LevelAA) {
		failing = append(failing, sr.Step.Index)
	}
	if diff := cmp.Diff([]int{9}, failing); diff != "" {
		t.Errorf("Failing(AA) mismatch (-want +got):\n%s", diff)
	}

	if got := report.Failing(LevelFail); len(got) != 0 {
		t.Errorf("Failing(Fail) = %d steps, want 0", len(got))
	}
}
