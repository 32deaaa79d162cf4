package main

import (
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// runtimeConfig builds the runtime config from global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Debug = flagDebug
	return cfg
}

// openStore opens the scores database. Failure is not fatal: the game
// still runs, only without a scoreboard.
func openStore(warn func(msg any, keyvals ...any)) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
