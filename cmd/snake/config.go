package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Prints the configuration the game would run with, as YAML.

Search order: --config, ~/.snake/configs/snake.yaml, ./configs/snake.yaml,
then the built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.LoadSnakeSource(flagConfig)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path != "" {
		fmt.Fprintf(out, "# source: %s\n", path)
	} else {
		fmt.Fprintln(out, "# source: built-in defaults")
	}
	_, err = out.Write(data)
	return err
}
