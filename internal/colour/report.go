package colour

// Standard text colours checked against every step.
const (
	TextLight = "#FFFFFF"
	TextDark  = "#0B0B0F"
)

var (
	textLightRGB = MustParseHex(TextLight)
	textDarkRGB  = MustParseHex(TextDark)
)

// DefaultTextColours returns the light and dark text colours, in that order.
func DefaultTextColours() []RGB {
	return []RGB{textLightRGB, textDarkRGB}
}

// Check is the contrast of a step against one text colour.
type Check struct {
	Text  string  `json:"text"`
	Ratio float64 `json:"ratio"`
	Badge Badge   `json:"badge"`
}

// NewCheck measures the contrast of text on background.
func NewCheck(background, text RGB) Check {
	ratio := ContrastRatio(background, text)
	return Check{
		Text:  text.Hex(),
		Ratio: ratio,
		Badge: Classify(ratio),
	}
}

// StepReport holds the accessibility checks for a single step.
type StepReport struct {
	Step   Step    `json:"step"`
	Checks []Check `json:"checks"`
	// Best is the check with the highest ratio; ties keep the earlier text colour.
	Best Check `json:"best"`
}

// Meets reports whether any text colour reaches the given level on this step.
func (r StepReport) Meets(level Level) bool {
	return r.Best.Badge.Level.AtLeast(level)
}

// Report is the accessibility report for a whole scale.
type Report struct {
	Scale Scale        `json:"scale"`
	Texts []string     `json:"texts"`
	Steps []StepReport `json:"steps"`
}

// Assess checks every step of the scale against every text colour.
// With no text colours, TextLight and TextDark are used.
func Assess(scale Scale, texts ...RGB) Report {
	if len(texts) == 0 {
		texts = DefaultTextColours()
	}

	textHexes := make([]string, len(texts))
	for i, t := range texts {
		textHexes[i] = t.Hex()
	}

	steps := make([]StepReport, len(scale.Steps))
	for i, step := range scale.Steps {
		checks := make([]Check, len(texts))
		best := 0
		for j, text := range texts {
			checks[j] = NewCheck(step.RGB, text)
			if checks[j].Ratio > checks[best].Ratio {
				best = j
			}
		}
		steps[i] = StepReport{Step: step, Checks: checks, Best: checks[best]}
	}

	return Report{Scale: scale, Texts: textHexes, Steps: steps}
}

// Summary counts, per text colour, how many steps reach each level.
// The outer key is the text hex; levels are counted exactly, not cumulatively.
func (r Report) Summary() map[string]map[Level]int {
	summary := make(map[string]map[Level]int, len(r.Texts))
	for _, text := range r.Texts {
		summary[text] = make(map[Level]int)
	}
	for _, step := range r.Steps {
		for _, check := range step.Checks {
			summary[check.Text][check.Badge.Level]++
		}
	}
	return summary
}

// Failing returns the steps where no text colour reaches level.
func (r Report) Failing(level Level) []StepReport {
	var failing []StepReport
	for _, step := range r.Steps {
		if !step.Meets(level) {
			failing = append(failing, step)
		}
	}
	return failing
}
