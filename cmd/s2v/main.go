// Command s2v is an interactive line-oriented shell for the spreadsheet
// engine, reading commands from stdin until Q is issued. It is the
// reference client for the core library in internal/, wiring the S2V
// loader/saver and command dispatch around it.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "s2v",
	Short: "Interactive spreadsheet shell backed by the S2V file format",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		repl := NewREPL(os.Stdin, os.Stdout, logger)
		return repl.Run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
