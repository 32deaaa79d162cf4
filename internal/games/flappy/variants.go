package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Variant describes one registered flavour of the game.
type Variant struct {
	ID    string
	Title string
}

// Variants lists every flavour registered by this package.
var Variants = []Variant{
	{ID: config.VariantDefault, Title: "Flappy Bird"},
	{ID: config.VariantFloor, Title: "Flappy Bird (floor only)"},
	{ID: config.VariantEdges, Title: "Flappy Bird (edges, no pipe hits)"},
}

// Load builds a game for a variant, applying the CLI options.
func Load(v Variant, opts registry.Options) (*Game, error) {
	preset, err := config.ParsePreset(opts.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	cfg, err := config.Load(v.ID, opts.ConfigPath, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}
	config.ApplyPreset(&cfg, preset)

	return New(v.ID, v.Title, cfg), nil
}

// Register the variants with the registry
func init() {
	for _, v := range Variants {
		registry.Register(v.ID, v.Title, func(opts registry.Options) (registry.Game, error) {
			g, err := Load(v, opts)
			if err != nil {
				return nil, err
			}
			return g, nil
		})
	}
}
