package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game on the title screen.

Controls:
  W/A/S/D, arrows  - Move (menus: up/down select)
  Enter/Space      - Press the selected button
  Esc              - Close settings, else pause/unpause
  P                - Pause/unpause
  O                - Settings
  ` + "`" + `                - Debug inspector ([ and ] pick a tail segment,
                     I/J/K/L move the resource)
  Ctrl+S           - Screenshot (text and PNG)
  Q/Ctrl+C         - Quit

Examples:
  snake play
  snake play --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.LoadSnakeSource(flagConfig)
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Get terminal size early so the first frame is laid out correctly
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger.Info("starting", "config", path, "fps", rc.TickRate, "seed", rc.Seed)

	game := snake.New(cfg, snake.WithLogger(logger))
	if err := tui.Run(tui.Options{
		Game:       game,
		Runtime:    rc,
		Logger:     logger,
		ConfigPath: path,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	logger.Info("exited")
	return nil
}
