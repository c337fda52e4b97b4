package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/colour"
)

// ErrBelowMinLevel is returned by check when the pair misses --min-level.
var ErrBelowMinLevel = errors.New("contrast below required level")

type checkResult struct {
	Foreground string       `json:"foreground"`
	Background string       `json:"background"`
	Ratio      float64      `json:"ratio"`
	Badge      colour.Badge `json:"badge"`
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		minLevel string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "check FOREGROUND BACKGROUND",
		Short: "Check the contrast between two colours",
		Long: `Compute the WCAG 2.x contrast ratio between two hex colours and classify it.

Examples:
  contrastcraft check '#FFFFFF' '#6366F1'
  contrastcraft check fff 0b0b0f --min-level AAA`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := colour.ParseHex(args[0])
			if err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			bg, err := colour.ParseHex(args[1])
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}

			var level colour.Level
			if minLevel != "" {
				if level, err = colour.ParseLevel(minLevel); err != nil {
					return err
				}
			}

			ratio := colour.ContrastRatio(fg, bg)
			result := checkResult{
				Foreground: fg.Hex(),
				Background: bg.Hex(),
				Ratio:      ratio,
				Badge:      colour.Classify(ratio),
			}
			a.logger.Debug("checked contrast", "fg", result.Foreground, "bg", result.Background, "ratio", ratio)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal result: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				fmt.Fprintf(out, "%s on %s\n", result.Foreground, result.Background)
				fmt.Fprintf(out, "  Ratio: %s:1\n", colour.FormatRatio(ratio))
				fmt.Fprintf(out, "  Level: %s (%s)\n", result.Badge.Level, result.Badge.Description)
			}

			if level != "" && !result.Badge.Level.AtLeast(level) {
				return fmt.Errorf("%w: %s is %s, want %s", ErrBelowMinLevel, colour.FormatRatio(ratio), result.Badge.Level, level)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&minLevel, "min-level", "", "fail unless the pair reaches this WCAG level (AAA, AA, AA-Large)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
