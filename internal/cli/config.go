package cli

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/pixelart/config"
)

func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Encode(cmd.OutOrStdout(), config.Default())
		},
	}
}
