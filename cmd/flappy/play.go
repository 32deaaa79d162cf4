package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant in the terminal",
	Long: `Start playing the specified variant (default: flappy).

Controls:
  Space/Up/W/click  - Start, flap, restart after a crash
  P                 - Pause
  R                 - Restart (after game over)
  Esc/B             - Back
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  flappy play
  flappy play flappy_floor
  flappy play --difficulty hard
  flappy play --config ./my-flappy.yaml --log-file ./flappy.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, guiCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// variantArg returns the requested variant ID or exits with a hint.
func variantArg(args []string) string {
	gameID := config.VariantDefault
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available variants.")
		os.Exit(1)
	}
	return gameID
}

// gameOptions collects the per-launch factory options from flags.
func gameOptions(logger *log.Logger) registry.Options {
	return registry.Options{ConfigPath: flagConfig, Difficulty: flagDifficulty, Logger: logger}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := variantArg(args)

	logger, closeLog, err := newLogger("flappy", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := registry.Create(gameID, gameOptions(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(func(msg any, keyvals ...any) {
		fmt.Fprintf(os.Stderr, "Warning: %v %v\n", msg, keyvals)
		logger.Warn(msg, keyvals...)
	})

	logger.Info("starting game", "game", gameID, "difficulty", flagDifficulty)
	_, runErr := tui.Run(game, store, runtimeConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
