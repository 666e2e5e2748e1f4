package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixelart"
)

func (c *CLI) paletteCommand() *cobra.Command {
	var hexOnly bool

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the active palette",
		Long: `Palette prints the palette used for matching: the [palette] table of the
configuration file, or the built-in 64-color palette. Entries past the
configured palette count are dimmed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			p := cfg.Params.Palette
			hexes := p.HexColors()

			w := cmd.OutOrStdout()
			if hexOnly {
				for _, h := range hexes {
					fmt.Fprintln(w, h)
				}
				return nil
			}

			names := paletteNames(&p)
			fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Palette (%d colors, %d active)", p.Len(), cfg.Params.PaletteCount)))
			for i, h := range hexes {
				line := fmt.Sprintf("%s %s %s %s", swatch(h), StyleNumber.Render(fmt.Sprintf("%2d", i)), h, names[i])
				if i >= cfg.Params.PaletteCount {
					line = StyleDim.Render(line)
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&hexOnly, "hex", false, "print hex values only, one per line")
	return cmd
}

// paletteNames returns the built-in names when p is the default palette,
// or blanks otherwise.
func paletteNames(p *pixelart.Palette) []string {
	names := make([]string, p.Len())
	def := pixelart.DefaultPalette()
	if *p != def {
		return names
	}
	for i, e := range pixelart.DefaultPaletteEntries() {
		names[i] = e.Name
	}
	return names
}
