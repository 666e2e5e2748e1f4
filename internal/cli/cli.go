// Package cli implements the pixelart command-line interface.
//
// # Commands
//
//   - stylize: run the per-fragment pipeline over a pre-lit frame
//   - composite: merge a stylized low-resolution layer over a full render
//   - palette: show the active palette as terminal swatches
//   - shaders: compile the GPU kernels and dump SPIR-V
//   - config: print the default configuration as TOML
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// charmbracelet/log logger is installed as the pixelart slog handler, so
// library, frame I/O and GPU logs share one output.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/pixelart"
	"github.com/gogpu/pixelart/config"
	"github.com/gogpu/pixelart/gpu"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cpuOnly    bool
	workers    int
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// newLogger creates a logger with timestamps formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pixelart",
		Short:        "pixelart turns lit renders into palette-quantized pixel art",
		Long:         `pixelart applies toon banding, perceptual palette matching and ordered dithering to rendered frames, and composites stylized low-resolution layers over full-resolution renders by depth.`,
		Version:      pixelart.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			pixelart.SetLogger(slog.New(c.Logger))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")
	flags.BoolVar(&c.cpuOnly, "cpu", false, "skip GPU initialization")
	flags.IntVar(&c.workers, "workers", 0, "CPU worker goroutines (0 = GOMAXPROCS)")

	root.AddCommand(c.stylizeCommand())
	root.AddCommand(c.compositeCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.shadersCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig returns the --config file, or the defaults when unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath == "" {
		return config.Default().Resolve()
	}
	return config.Load(c.configPath)
}

// newAccelerator creates an accelerator, initializing the GPU unless --cpu
// was given. The caller must Close it.
func (c *CLI) newAccelerator() *gpu.Accelerator {
	var opts []pixelart.RendererOption
	if c.workers > 0 {
		opts = append(opts, pixelart.WithWorkers(c.workers))
	}
	acc := gpu.New(opts...)
	if !c.cpuOnly {
		_ = acc.Init() // failures are logged and fall back to CPU
	}
	c.Logger.Debug("accelerator ready", "name", acc.Name(), "gpu", acc.Ready())
	return acc
}
