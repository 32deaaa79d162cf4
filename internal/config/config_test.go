package config

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestEmbeddedDefaultsValidate(t *testing.T) {
	for _, id := range []string{VariantDefault, VariantFloor, VariantEdges} {
		t.Run(id, func(t *testing.T) {
			if GetDefaultYAML(id) == nil {
				t.Fatalf("no embedded yaml for %s", id)
			}
			cfg, err := Load(id, "", nil)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", id, err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("embedded default is invalid: %v", err)
			}
		})
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown variant should have no embedded yaml")
	}
}

func TestVariantPolicies(t *testing.T) {
	floor, _ := Load(VariantFloor, "", nil)
	if floor.Rules.Bounds != BoundsFloor || !floor.Rules.Collision {
		t.Errorf("floor variant rules = %+v", floor.Rules)
	}
	if floor.FloorLine() != 570 {
		t.Errorf("floor variant floor line = %g, expected 570", floor.FloorLine())
	}

	edges, _ := Load(VariantEdges, "", nil)
	if edges.Rules.Collision {
		t.Error("edges variant should not end on collision")
	}
	if edges.FloorLine() != edges.Viewport.Height {
		t.Errorf("floor_y 0 should fall back to viewport height, got %g", edges.FloorLine())
	}
	if edges.SpawnLine() != edges.Viewport.Width {
		t.Errorf("spawn_x 0 should fall back to viewport width, got %g", edges.SpawnLine())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	data := []byte(`
viewport: {width: 400, height: 300, scale_mode: fit}
physics: {gravity: 10, jump_impulse: -5, max_fall_speed: 20, pipe_speed: 50}
obstacles: {spawn_interval_ms: 1000, pipe_width: 20, gap_height: 80, gap_center_min: 100, gap_center_max: 200}
player: {x: 40, width: 10, height: 10}
rules: {bounds: none, collision: true}
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(VariantDefault, path, nil)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Viewport.Width != 400 || cfg.Rules.Bounds != BoundsNone {
		t.Errorf("custom config not applied: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(VariantDefault, filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules: {bounds: sideways}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(VariantDefault, bad, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero viewport", func(c *FlappyConfig) { c.Viewport.Width = 0 }},
		{"bad scale mode", func(c *FlappyConfig) { c.Viewport.ScaleMode = "zoom" }},
		{"zero interval", func(c *FlappyConfig) { c.Obstacles.SpawnIntervalMS = 0 }},
		{"inverted gap range", func(c *FlappyConfig) { c.Obstacles.GapCenterMin = 500 }},
		{"zero gap", func(c *FlappyConfig) { c.Obstacles.GapHeight = 0 }},
		{"zero player", func(c *FlappyConfig) { c.Player.Height = 0 }},
		{"bad bounds", func(c *FlappyConfig) { c.Rules.Bounds = "" }},
		{"negative scroll", func(c *FlappyConfig) { c.Viewport.ScrollSpeed = -1 }},
		{"zero pipe speed", func(c *FlappyConfig) { c.Physics.PipeSpeed = 0 }},
		{"negative pipe speed", func(c *FlappyConfig) { c.Physics.PipeSpeed = -50 }},
		{"negative speed multiplier", func(c *FlappyConfig) { c.Difficulty.Scaling.SpeedMultiplier = -2 }},
		{"spawn at trailing bound", func(c *FlappyConfig) {
			c.Obstacles.SpawnX = 300
			c.Obstacles.TrailingBound = 300
		}},
	}

	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Fatalf("hardcoded default should validate: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := cfg.Difficulty
	ApplyPreset(&cfg, "")
	if cfg.Difficulty != before {
		t.Error("empty preset should leave config untouched")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("normal"); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(normal) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: ProgressionScore, MaxAt: 10},
		Scaling: ScalingConfig{
			SpeedMultiplier:   1.0,
			GapReduction:      100,
			IntervalReduction: 1000,
		},
	})

	if got := d.Speed(200, Progress{}); got != 200 {
		t.Errorf("Speed at level 0 = %g, expected 200", got)
	}
	if got := d.Speed(200, Progress{Score: 10}); got != 400 {
		t.Errorf("Speed at max = %g, expected 400", got)
	}
	if got := d.GapSize(200, 150, Progress{Score: 5}); got != 150 {
		t.Errorf("GapSize at half = %g, expected 150", got)
	}
	if got := d.GapSize(200, 150, Progress{Score: 100}); got != 150 {
		t.Errorf("GapSize should be floored at min, got %g", got)
	}
	if got := d.Interval(1500, 900, Progress{Score: 5}); got != time.Second {
		t.Errorf("Interval at half = %v, expected 1s", got)
	}
	if got := d.Interval(1500, 900, Progress{Score: 10}); got != 900*time.Millisecond {
		t.Errorf("Interval should be floored at min, got %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: false, InitialLevel: 0.5})
	if d.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if got := d.Level(Progress{Score: 1000, Elapsed: time.Hour}); got != 0.5 {
		t.Errorf("disabled level = %g, expected initial 0.5", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: ProgressionTime, MaxAt: 60},
	})

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0.2},
		{30 * time.Second, 0.6},
		{time.Minute, 1},
		{time.Hour, 1},
	}
	for _, tt := range tests {
		// Score is ignored for time progression.
		got := d.Level(Progress{Score: 999, Elapsed: tt.elapsed})
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%v) = %g, expected %g", tt.elapsed, got, tt.want)
		}
	}
}

func TestValidateRejectsUnknownProgression(t *testing.T) {
	cfg := DefaultFlappyConfig()
	cfg.Difficulty.Progression.Type = "lunar"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadWarnsAboutSkippedFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	// A typo in the speed makes the pipes stand still.
	bad := "physics: {pipe_speed: 0}\n"
	if err := os.WriteFile(filepath.Join("configs", VariantDefault+".yaml"), []byte(bad), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	cfg, err := Load(VariantDefault, "", log.New(&buf))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.PipeSpeed <= 0 {
		t.Errorf("invalid file should fall back to the embedded default, got pipe_speed %g", cfg.Physics.PipeSpeed)
	}
	if out := buf.String(); !strings.Contains(out, "skipping config file") || !strings.Contains(out, "pipe_speed") {
		t.Errorf("expected a warning naming the bad file, got %q", out)
	}

	// Missing files on the search path are not worth a warning.
	buf.Reset()
	if _, err := Load(VariantFloor, "", log.New(&buf)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no warnings for absent files, got %q", buf.String())
	}
}
