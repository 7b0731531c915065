// snake is a terminal Snake game with a debug inspector.
//
// Usage:
//
//	snake                    - Play (title screen first)
//	snake play               - Same as above
//	snake constants          - Print grid constants
//	snake config             - Print the resolved configuration
//
// Global flags:
//
//	--config <path>      - Custom config YAML (watched for live colour changes)
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible resource placement (negative: time-based)
//	--log-file <path>    - Log destination (default: ~/.snake/snake.log)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - grid snake in your terminal",
	Long: `Snake is a terminal game: steer the head onto the resource to grow
the tail, and avoid stepping on your own tail.

Available commands:
  play       - Start the game (default)
  constants  - Show grid constants
  config     - Show the resolved configuration

Examples:
  snake
  snake play --seed 42
  snake --config ./configs/snake.yaml --log-level debug
  snake constants`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", core.RandomSeed, "RNG seed, negative for a time-based seed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.snake/snake.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(configCmd)
}
