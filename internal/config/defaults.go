package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Variant IDs shipped with embedded defaults.
const (
	VariantDefault = "flappy"
	VariantFloor   = "flappy_floor"
	VariantEdges   = "flappy_edges"
)

// DefaultFlappyConfig returns the hardcoded default configuration.
// Used when the embedded YAML cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Viewport: ViewportConfig{
			Width:       800,
			Height:      600,
			ScaleMode:   ScaleStretch,
			ScrollSpeed: 90,
		},
		Physics: FlappyPhysics{
			Gravity:      1200,
			JumpImpulse:  -380,
			MaxFallSpeed: 700,
			PipeSpeed:    200,
		},
		Obstacles: FlappyObstacles{
			SpawnIntervalMS: 1500,
			MinIntervalMS:   900,
			PipeWidth:       70,
			GapHeight:       200,
			MinGapHeight:    140,
			GapCenterMin:    150,
			GapCenterMax:    450,
		},
		Player: FlappyPlayer{
			X:           150,
			Width:       34,
			Height:      24,
			HitboxInset: 3,
		},
		Rules: RulesConfig{
			Bounds:    BoundsEdges,
			Collision: true,
			FloorY:    560,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionScore,
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.75,
				GapReduction:      50,
				IntervalReduction: 400,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
