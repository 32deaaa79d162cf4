// Package config provides YAML-based game configuration loading and
// difficulty management for the flappy variants.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned (wrapped) when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Bounds policies decide which vertical limits end a run.
const (
	BoundsFloor = "floor" // only the floor line ends the run
	BoundsEdges = "edges" // floor and the top edge end the run
	BoundsNone  = "none"  // vertical position never ends the run
)

// Progression types say what drives difficulty up.
const (
	ProgressionScore = "score" // max_at is a score
	ProgressionTime  = "time"  // max_at is seconds of play
	ProgressionNone  = "none"
)

// Scale modes control how the logical viewport maps onto the terminal.
const (
	ScaleStretch = "stretch" // independent x/y scale, fills the screen
	ScaleFit     = "fit"     // uniform scale, letterboxed
)

// FlappyConfig contains all configuration for one flappy variant.
// Distances are world units of the logical viewport, speeds are units per
// second and intervals are milliseconds.
type FlappyConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ViewportConfig is the logical playfield size and how it is scaled.
type ViewportConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	ScaleMode string  `yaml:"scale_mode"`
	// ScrollSpeed moves the ground and background while playing, in units
	// per second. 0 keeps them still.
	ScrollSpeed float64 `yaml:"scroll_speed"`
}

// FlappyPhysics defines physics parameters for the bird and pipes.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	PipeSpeed    float64 `yaml:"pipe_speed"`
}

// FlappyObstacles defines obstacle spawning parameters.
type FlappyObstacles struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	MinIntervalMS   int     `yaml:"min_interval_ms"`
	SpawnX          float64 `yaml:"spawn_x"` // 0 = right edge of the viewport
	PipeWidth       float64 `yaml:"pipe_width"`
	GapHeight       float64 `yaml:"gap_height"`
	MinGapHeight    float64 `yaml:"min_gap_height"`
	GapCenterMin    float64 `yaml:"gap_center_min"`
	GapCenterMax    float64 `yaml:"gap_center_max"`
	TrailingBound   float64 `yaml:"trailing_bound"` // pairs whose right edge is left of this are dropped
}

// FlappyPlayer defines player parameters.
type FlappyPlayer struct {
	X           float64 `yaml:"x"`
	StartY      float64 `yaml:"start_y"` // 0 = vertical center
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	HitboxInset float64 `yaml:"hitbox_inset"`
}

// RulesConfig selects the game-over policy.
type RulesConfig struct {
	Bounds    string  `yaml:"bounds"`
	Collision bool    `yaml:"collision"`
	FloorY    float64 `yaml:"floor_y"` // 0 = bottom of the viewport
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // ProgressionScore, ProgressionTime or ProgressionNone
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to pipe speed at max difficulty
	GapReduction      float64 `yaml:"gap_reduction"`      // Gap height reduction at max difficulty
	IntervalReduction int     `yaml:"interval_reduction"` // Spawn interval reduction (ms) at max difficulty
}

// FloorLine returns the y coordinate of the floor.
func (c FlappyConfig) FloorLine() float64 {
	if c.Rules.FloorY > 0 {
		return c.Rules.FloorY
	}
	return c.Viewport.Height
}

// SpawnLine returns the x coordinate new pairs are created at.
func (c FlappyConfig) SpawnLine() float64 {
	if c.Obstacles.SpawnX > 0 {
		return c.Obstacles.SpawnX
	}
	return c.Viewport.Width
}

// Validate checks the config for values the game cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height))
	}
	switch c.Viewport.ScaleMode {
	case "", ScaleStretch, ScaleFit:
	default:
		errs = append(errs, fmt.Errorf("unknown scale_mode %q", c.Viewport.ScaleMode))
	}
	if c.Viewport.ScrollSpeed < 0 {
		errs = append(errs, fmt.Errorf("scroll_speed must not be negative, got %g", c.Viewport.ScrollSpeed))
	}
	if c.Obstacles.SpawnIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("spawn_interval_ms must be positive, got %d", c.Obstacles.SpawnIntervalMS))
	}
	if c.Obstacles.GapCenterMin > c.Obstacles.GapCenterMax {
		errs = append(errs, fmt.Errorf("gap_center_min %g > gap_center_max %g", c.Obstacles.GapCenterMin, c.Obstacles.GapCenterMax))
	}
	// Pairs must travel left from the spawn line past the trailing bound,
	// or they are never pruned.
	if c.Physics.PipeSpeed <= 0 {
		errs = append(errs, fmt.Errorf("pipe_speed must be positive, got %g", c.Physics.PipeSpeed))
	}
	if c.Difficulty.Scaling.SpeedMultiplier < 0 {
		errs = append(errs, fmt.Errorf("speed_multiplier must not be negative, got %g", c.Difficulty.Scaling.SpeedMultiplier))
	}
	if c.SpawnLine() <= c.Obstacles.TrailingBound {
		errs = append(errs, fmt.Errorf("spawn line %g must be right of trailing_bound %g", c.SpawnLine(), c.Obstacles.TrailingBound))
	}
	if c.Obstacles.GapHeight <= 0 || c.Obstacles.PipeWidth <= 0 {
		errs = append(errs, errors.New("gap_height and pipe_width must be positive"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	switch c.Rules.Bounds {
	case BoundsFloor, BoundsEdges, BoundsNone:
	default:
		errs = append(errs, fmt.Errorf("unknown bounds policy %q", c.Rules.Bounds))
	}
	switch c.Difficulty.Progression.Type {
	case ProgressionScore, ProgressionTime, ProgressionNone, "":
	default:
		errs = append(errs, fmt.Errorf("unknown progression type %q", c.Difficulty.Progression.Type))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty input keeps the
// config's own difficulty.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
