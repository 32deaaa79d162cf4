package config

import "time"

// Progress is how far a run has got: the inputs difficulty scales with.
type Progress struct {
	Score   int
	Elapsed time.Duration
}

// DifficultyManager maps run progress to pipe speed, gap height and spawn
// interval. Level 0 is the configured base values, level 1 applies the
// full scaling.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = min(max(cfg.InitialLevel, 0), 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty level in [InitialLevel, 1]. With "score"
// progression MaxAt is a score, with "time" it is seconds of play.
func (d *DifficultyManager) Level(p Progress) float64 {
	base := d.cfg.InitialLevel
	if !d.IsEnabled() {
		return base
	}

	var done float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		done = float64(p.Score)
	case ProgressionTime:
		done = p.Elapsed.Seconds()
	default:
		return base
	}

	frac := done / float64(max(d.cfg.Progression.MaxAt, 1))
	frac = min(max(frac, 0), 1)
	return base + frac*(1-base)
}

// Speed returns the pipe speed for the current progress.
func (d *DifficultyManager) Speed(base float64, p Progress) float64 {
	return base * (1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize returns the gap height for the current progress, never below minGap.
func (d *DifficultyManager) GapSize(base, minGap float64, p Progress) float64 {
	return max(base-d.Level(p)*d.cfg.Scaling.GapReduction, minGap)
}

// Interval returns the spawn interval for the current progress. It never
// drops below minMS when that is positive, nor below one millisecond.
func (d *DifficultyManager) Interval(baseMS, minMS int, p Progress) time.Duration {
	ms := baseMS - int(d.Level(p)*float64(d.cfg.Scaling.IntervalReduction))
	if minMS > 0 {
		ms = max(ms, minMS)
	}
	return time.Duration(max(ms, 1)) * time.Millisecond
}
