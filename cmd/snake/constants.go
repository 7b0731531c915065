package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Show grid constants",
	Long:  `Prints the playable area, tail capacity and comparison precision for the resolved configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runConstants,
}

func runConstants(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	grid := cfg.GridGeometry()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-26s %d\n", "Playable area height:", grid.HalfHeight)
	fmt.Fprintf(out, "  %-26s %d\n", "Playable area length:", grid.HalfLength)
	fmt.Fprintf(out, "  %-26s %dx%d\n", "Tiles:", grid.Width(), grid.Height())
	fmt.Fprintf(out, "  %-26s %d\n", "Player tail length max:", grid.TailCapacity())
	fmt.Fprintf(out, "  %-26s %g\n", "Tile scale:", grid.Scale)
	fmt.Fprintf(out, "  %-26s %g\n", "Floats compare precision:", core.Epsilon)
	return nil
}
