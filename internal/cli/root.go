// Package cli holds the tictactoe command tree.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaminalder/tictactoe-history/internal/config"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe with a time-travelling move history",
		Long: heredoc.Doc(`
			Tic-tac-toe with a move history you can jump around in.

			Run "tictactoe serve" to play in a browser, or "tictactoe replay"
			to print the game produced by a list of cell clicks.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolP("trace", "t", false, "Log at debug level")

	root.AddCommand(Serve())
	root.AddCommand(Replay())

	return root
}

// setup loads the configuration named by --config and builds the logger.
func setup(cmd *cobra.Command, out io.Writer) (*config.Config, zerolog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	conf, err := config.Load(path)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("config: %w", err)
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		conf.LogLevel = zerolog.LevelDebugValue
	}
	return conf, NewLogger(conf, out), nil
}

// NewLogger builds the process logger from conf. Unknown levels fall back to info.
func NewLogger(conf *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if conf.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
