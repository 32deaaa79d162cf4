package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui/prefs"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	flagScale float64
	flagMute  bool
)

var guiCmd = &cobra.Command{
	Use:   "gui [variant]",
	Short: "Play a variant in a window",
	Long: `Open a window and play the specified variant (default: flappy).

Controls:
  Space/Up/W/click/touch  - Start, flap, restart after a crash
  P                       - Pause
  R                       - Restart (after game over)
  M                       - Toggle sound (remembered)
  Esc/Q                   - Quit

Without a variant argument the last played variant opens. Scale and mute
default to the remembered settings unless given on the command line.

Examples:
  flappy gui
  flappy gui flappy_edges --scale 1.5
  flappy gui --mute --debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGUI,
}

func init() {
	guiCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the viewport")
	guiCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runGUI(cmd *cobra.Command, args []string) {
	logger, closeLog, err := newLogger("flappy-gui", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	settings, err := prefs.Open()
	if err != nil {
		logger.Warn("settings will not be remembered", "err", err)
	}
	if err := settings.Load(); err != nil {
		logger.Warn("using default settings", "err", err)
	}
	saved := settings.Get()

	if len(args) == 0 && saved.LastVariant != "" && registry.Exists(saved.LastVariant) {
		args = []string{saved.LastVariant}
	}
	gameID := variantArg(args)

	created, err := registry.Create(gameID, gameOptions(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*flappy.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: variant %q has no window frontend\n", gameID)
		os.Exit(1)
	}

	store := openStore(logger.Warn)

	opts := gui.Options{
		TickRate: flagFPS,
		Scale:    saved.Scale,
		Mute:     saved.Muted,
		Volume:   saved.Volume,
		Player:   tui.LocalPlayer(),
		Debug:    flagDebug,
		Prefs:    settings,
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = flagScale
	}
	if cmd.Flags().Changed("mute") {
		opts.Mute = flagMute
	}

	settings.Update(func(s *prefs.Settings) { s.LastVariant = gameID })
	if err := settings.Save(); err != nil {
		logger.Warn("cannot save settings", "err", err)
	}

	runErr := gui.Run(game, store, runtimeConfig(), opts, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
