package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixelart"
	"github.com/gogpu/pixelart/frameio"
)

// stylizeOpts holds the command-line flags for the stylize command.
// Flags that are set override the configuration file.
type stylizeOpts struct {
	output       string
	stage        string
	bands        float64
	softness     float64
	paletteCount int
	ditherSpace  string
	tonemap      string
	exposure     float64
	low          string // downsample to WxH before stylizing
	scale        int    // PNG upscale factor
}

func (c *CLI) stylizeCommand() *cobra.Command {
	var opts stylizeOpts

	cmd := &cobra.Command{
		Use:   "stylize <input.exr|input.png>",
		Short: "Stylize a pre-lit frame",
		Long: `Stylize runs toon quantization, palette matching and Bayer dithering over
every pixel of a pre-lit frame. EXR input may carry Z depth, P.X/P.Y/P.Z world
positions for world-space dithering and a holdout mask.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			p := cfg.Params
			tm, exposure := cfg.Tonemap, cfg.Exposure
			if err := opts.apply(cmd, &p, &tm, &exposure); err != nil {
				return err
			}

			in := args[0]
			if opts.output == "" {
				opts.output = strings.TrimSuffix(in, filepath.Ext(in)) + "_pixel.png"
			}

			frame, err := frameio.Read(in)
			if err != nil {
				return err
			}
			if p.DitherSpace == pixelart.DitherWorld && !frame.HasPositions() {
				if cmd.Flags().Changed("dither-space") {
					c.Logger.Warn("input has no world positions, world dither degrades to a constant threshold", "input", in)
				} else {
					c.Logger.Warn("input has no world positions, dithering in screen space", "input", in)
					p.DitherSpace = pixelart.DitherScreen
				}
			}

			acc := c.newAccelerator()
			defer acc.Close()

			start := time.Now()
			ctx := cmd.Context()
			if opts.low != "" {
				w, h, err := parseSize(opts.low)
				if err != nil {
					return err
				}
				if frame, err = acc.Downsample(ctx, frame, w, h); err != nil {
					return err
				}
			}

			out, err := acc.StylizeFrame(ctx, frame, p, tm, exposure)
			if err != nil {
				return err
			}
			if err := frameio.Write(opts.output, out, opts.scale); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Stylized %s %s %s", in, iconArrow, opts.output)
			printDetail(w, "%dx%d, stage %s, %d palette colors, %s",
				out.Width(), out.Height(), p.DebugStage, p.PaletteCount,
				time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (.png or .exr)")
	f.StringVar(&opts.stage, "stage", "", "debug stage: full, pbr, toon, palette, dither")
	f.Float64Var(&opts.bands, "bands", 0, "toon bands")
	f.Float64Var(&opts.softness, "softness", 0, "toon band softness")
	f.IntVar(&opts.paletteCount, "palette-count", 0, "palette entries used (0 disables palette)")
	f.StringVar(&opts.ditherSpace, "dither-space", "", "dither coordinates: world or screen")
	f.StringVar(&opts.tonemap, "tonemap", "", "post-lighting tonemap: none, clamp, reinhard")
	f.Float64Var(&opts.exposure, "exposure", 0, "exposure in stops")
	f.StringVar(&opts.low, "low", "", "downsample to WxH before stylizing, e.g. 320x180")
	f.IntVar(&opts.scale, "scale", 1, "nearest-neighbor upscale factor for PNG output")

	return cmd
}

// apply overrides p, tm and exposure with the flags the user set.
func (o *stylizeOpts) apply(cmd *cobra.Command, p *pixelart.Params, tm *pixelart.Tonemap, exposure *float64) error {
	changed := cmd.Flags().Changed
	var err error
	if changed("stage") {
		if p.DebugStage, err = pixelart.ParseStage(o.stage); err != nil {
			return err
		}
	}
	if changed("bands") {
		p.ToonBands = o.bands
	}
	if changed("softness") {
		p.ToonSoftness = o.softness
	}
	if changed("palette-count") {
		p.PaletteCount = o.paletteCount
	}
	if changed("dither-space") {
		if p.DitherSpace, err = pixelart.ParseDitherSpace(o.ditherSpace); err != nil {
			return err
		}
	}
	if changed("tonemap") {
		if *tm, err = pixelart.ParseTonemap(o.tonemap); err != nil {
			return err
		}
	}
	if changed("exposure") {
		*exposure = o.exposure
	}
	return nil
}

// parseSize parses "WxH".
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	if h, err = strconv.Atoi(hs); err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	return w, h, nil
}
