package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/pixelart/gpu"
)

func (c *CLI) shadersCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "shaders",
		Short: "Compile the GPU kernels to SPIR-V",
		Long: `Shaders compiles the WGSL stylize and composite kernels with naga. With
--out, each module is written to <dir>/<kernel>.spv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			compiled, err := gpu.CompileKernels()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o750); err != nil {
					return fmt.Errorf("create %s: %w", outDir, err)
				}
			}
			for _, k := range compiled {
				if outDir == "" {
					printInfo(w, "%s: %s bytes of SPIR-V", k.Name, StyleNumber.Render(fmt.Sprint(len(k.SPIRV))))
					continue
				}
				path := filepath.Join(outDir, k.Name+".spv")
				if err := os.WriteFile(path, k.SPIRV, 0o600); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printSuccess(w, "%s %s %s", k.Name, iconArrow, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for .spv files")
	return cmd
}
