package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/colour"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert COLOUR",
		Short: "Show a hex colour as hex, RGB and HSL",
		Long: `Normalise a hex colour and print it in hex, rgb() and hsl() notation.

Examples:
  contrastcraft convert '#6366f1'
  contrastcraft convert fff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rgb, err := colour.ParseHex(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rgb.Hex())
			fmt.Fprintln(out, rgb.String())
			fmt.Fprintln(out, colour.RGBToHSL(rgb).String())
			return nil
		},
	}
}
