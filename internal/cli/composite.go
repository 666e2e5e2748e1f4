package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixelart/frameio"
)

func (c *CLI) compositeCommand() *cobra.Command {
	var (
		output    string
		depthBias float64
		scale     int
	)

	cmd := &cobra.Command{
		Use:   "composite <full.exr> <low.exr>",
		Short: "Composite a stylized low-resolution layer over a full render",
		Long: `Composite samples the low-resolution layer at the nearest pixel and keeps it
wherever its alpha passes the cutoff and its reversed-Z depth is within the
depth bias of the full-resolution depth. Both inputs need a Z channel.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			s := cfg.Compositor
			if cmd.Flags().Changed("depth-bias") {
				s.DepthBias = depthBias
			}

			full, err := frameio.Read(args[0])
			if err != nil {
				return err
			}
			low, err := frameio.Read(args[1])
			if err != nil {
				return err
			}

			acc := c.newAccelerator()
			defer acc.Close()

			start := time.Now()
			out, err := acc.Composite(cmd.Context(), full, low, s)
			if err != nil {
				return err
			}
			if err := frameio.Write(output, out, scale); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Composited %s + %s %s %s", args[0], args[1], iconArrow, output)
			printDetail(w, "%dx%d over %dx%d, depth bias %g, %s",
				low.Width(), low.Height(), out.Width(), out.Height(), s.DepthBias,
				time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "composite.exr", "output file (.exr or .png)")
	f.Float64Var(&depthBias, "depth-bias", 0.1, "fraction of full-resolution depth the low layer may sit behind")
	f.IntVar(&scale, "scale", 1, "nearest-neighbor upscale factor for PNG output")

	return cmd
}
