package colour

import (
	"fmt"
	"strings"
)

// Level is a WCAG 2.x contrast compliance tier.
type Level string

const (
	// LevelAAA meets enhanced contrast for body and large text (7:1).
	LevelAAA Level = "AAA"

	// LevelAA meets minimum contrast for body text (4.5:1).
	LevelAA Level = "AA"

	// LevelAALarge meets minimum contrast for large text only (3:1).
	LevelAALarge Level = "AA-Large"

	// LevelFail is below every WCAG threshold.
	LevelFail Level = "Fail"
)

// Contrast thresholds, inclusive at the lower bound.
const (
	ThresholdAAA     = 7.0
	ThresholdAA      = 4.5
	ThresholdAALarge = 3.0
)

// Badge is the classification of a single contrast ratio.
type Badge struct {
	Level       Level  `json:"level"`
	Description string `json:"description"`
	Pass        bool   `json:"pass"`
}

// Classify maps a contrast ratio to its WCAG level. First match wins.
func Classify(ratio float64) Badge {
	switch {
	case ratio >= ThresholdAAA:
		return Badge{Level: LevelAAA, Description: "AAA (body & large)", Pass: true}
	case ratio >= ThresholdAA:
		return Badge{Level: LevelAA, Description: "AA (body)", Pass: true}
	case ratio >= ThresholdAALarge:
		return Badge{Level: LevelAALarge, Description: "AA (large text)", Pass: true}
	default:
		return Badge{Level: LevelFail, Description: "Below AA", Pass: false}
	}
}

// Rank orders levels from least (0, Fail) to most compliant (3, AAA).
// Unknown levels rank below Fail.
func (l Level) Rank() int {
	switch l {
	case LevelFail:
		return 0
	case LevelAALarge:
		return 1
	case LevelAA:
		return 2
	case LevelAAA:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether l is at least as compliant as target.
func (l Level) AtLeast(target Level) bool {
	return l.Rank() >= target.Rank()
}

// String returns the level name.
func (l Level) String() string {
	return string(l)
}

// ParseLevel parses a level name case-insensitively.
// "AA Large", "aa-large" and "large" all map to LevelAALarge.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aaa":
		return LevelAAA, nil
	case "aa":
		return LevelAA, nil
	case "aa-large", "aa large", "aa_large", "large":
		return LevelAALarge, nil
	case "fail", "none", "":
		return LevelFail, nil
	default:
		return "", fmt.Errorf("unknown WCAG level: %s (valid: AAA, AA, AA-Large, Fail)", s)
	}
}

// FormatRatio formats a contrast ratio with two decimals (e.g., "4.47").
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f", ratio)
}
