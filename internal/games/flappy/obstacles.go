package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ObstaclePair is a top and bottom barrier sharing one horizontal position
// and one gap.
type ObstaclePair struct {
	X         float64 // Left edge
	Width     float64
	GapCenter float64
	GapHeight float64
	VelX      float64 // Units per second, negative moves toward the bird
	Passed    bool    // Credited toward the score
}

// GapTop returns the y coordinate where the gap starts.
func (p ObstaclePair) GapTop() float64 {
	return p.GapCenter - p.GapHeight/2
}

// GapBottom returns the y coordinate where the gap ends.
func (p ObstaclePair) GapBottom() float64 {
	return p.GapCenter + p.GapHeight/2
}

// TopRect returns the collision box of the upper barrier.
func (p ObstaclePair) TopRect() core.RectF {
	return core.RectF{X: p.X, Y: 0, W: p.Width, H: p.GapTop()}
}

// BottomRect returns the collision box of the lower barrier, down to floorY.
func (p ObstaclePair) BottomRect(floorY float64) core.RectF {
	return core.RectF{X: p.X, Y: p.GapBottom(), W: p.Width, H: floorY - p.GapBottom()}
}

// Hits reports whether r touches either barrier.
func (p ObstaclePair) Hits(r core.RectF, floorY float64) bool {
	return r.Intersects(p.TopRect()) || r.Intersects(p.BottomRect(floorY))
}

// Spawner creates obstacle pairs on a fixed, cancellable timer and retires
// them once they scroll past the trailing bound.
type Spawner struct {
	cfg        *config.FlappyConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	timer      *core.Timer
}

// NewSpawner creates a stopped spawner. onFire runs on every timer period;
// it is the caller's job to decide whether the fire is still wanted.
func NewSpawner(cfg *config.FlappyConfig, diff *config.DifficultyManager, rng *rand.Rand, onFire func()) *Spawner {
	interval := time.Duration(cfg.Obstacles.SpawnIntervalMS) * time.Millisecond
	return &Spawner{
		cfg:        cfg,
		difficulty: diff,
		rng:        rng,
		timer:      core.NewTimer(interval, onFire),
	}
}

// Start arms the spawn timer at the base interval.
func (s *Spawner) Start() {
	s.timer.SetInterval(time.Duration(s.cfg.Obstacles.SpawnIntervalMS) * time.Millisecond)
	s.timer.Start()
}

// Stop cancels the spawn timer, including fires still pending this tick.
func (s *Spawner) Stop() {
	s.timer.Stop()
}

// Active reports whether the spawn timer is armed.
func (s *Spawner) Active() bool {
	return s.timer.Active()
}

// Advance feeds simulated time to the spawn timer.
func (s *Spawner) Advance(dt time.Duration) int {
	return s.timer.Advance(dt)
}

// Spawn appends one pair at the spawn line with a random gap centre and
// retunes the timer for the current difficulty.
func (s *Spawner) Spawn(pipes []ObstaclePair, p config.Progress) []ObstaclePair {
	obs := s.cfg.Obstacles
	gap := s.difficulty.GapSize(obs.GapHeight, obs.MinGapHeight, p)
	speed := s.difficulty.Speed(s.cfg.Physics.PipeSpeed, p)

	lo, hi := obs.GapCenterMin, obs.GapCenterMax
	center := lo
	if hi > lo {
		center = lo + s.rng.Float64()*(hi-lo)
	}

	// Keep the whole gap above the floor and below the ceiling
	floor := s.cfg.FloorLine()
	if gap < floor {
		center = core.ClampF(center, gap/2, floor-gap/2)
	}

	pipes = append(pipes, ObstaclePair{
		X:         s.cfg.SpawnLine(),
		Width:     obs.PipeWidth,
		GapCenter: center,
		GapHeight: gap,
		VelX:      -speed,
	})

	s.timer.SetInterval(s.difficulty.Interval(obs.SpawnIntervalMS, obs.MinIntervalMS, p))
	return pipes
}

// movePipes advances every pair at its own constant velocity.
func movePipes(pipes []ObstaclePair, dt time.Duration) {
	secs := dt.Seconds()
	for i := range pipes {
		pipes[i].X += pipes[i].VelX * secs
	}
}

// prunePipes removes pairs whose right edge is left of bound, in place.
// Returns the kept pairs and how many removed pairs had been credited.
func prunePipes(pipes []ObstaclePair, bound float64) ([]ObstaclePair, int) {
	kept := pipes[:0]
	creditedGone := 0
	for _, p := range pipes {
		if p.X+p.Width < bound {
			if p.Passed {
				creditedGone++
			}
			continue
		}
		kept = append(kept, p)
	}
	return kept, creditedGone
}
