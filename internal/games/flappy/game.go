// Package flappy implements a Flappy Bird-style game.
// The player taps to start, taps to flap through gaps in pipes, and taps
// again after a crash to get back to the start screen.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RunState is everything that belongs to one run. It is reset as a unit.
type RunState struct {
	Phase    core.Phase
	Paused   bool
	Score    int
	Bird     Bird
	Pipes    []ObstaclePair
	Elapsed  time.Duration // Time spent in PhasePlaying
	Ticks    int           // Ticks spent in PhasePlaying
	Retired  int           // Credited pairs already pruned off-screen
	EndCause string        // "floor", "ceiling" or "pipe" once the run ended
}

// Game implements the flow controller, spawner and score tracking for one
// variant.
type Game struct {
	id         string
	title      string
	cfg        config.FlappyConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	spawner    *Spawner
	scorer     ScoreTracker
	run        RunState
	best       int // Best score this session
	events     []core.Event
}

// New creates a game for a variant with an already loaded config.
// Call Setup before the first Tick.
func New(id, title string, cfg config.FlappyConfig) *Game {
	return &Game{
		id:    id,
		title: title,
		cfg:   cfg,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Config returns the variant configuration.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Setup builds a fresh run in PhaseWaiting.
func (g *Game) Setup(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.spawner = NewSpawner(&g.cfg, g.difficulty, g.rng, g.onSpawnTimer)
	g.resetRun()
}

// resetRun discards the current run. The spawner keeps its RNG so a
// session stays reproducible from the initial seed.
func (g *Game) resetRun() {
	g.spawner.Stop()
	g.run = RunState{
		Phase: core.PhaseWaiting,
		Bird:  newBird(g.cfg),
		Pipes: make([]ObstaclePair, 0, 8),
	}
}

// OnInput handles one discrete input event.
func (g *Game) OnInput(a core.Action) {
	switch a {
	case core.ActionJump:
		g.tap()
	case core.ActionRestart:
		if g.run.Phase == core.PhaseGameOver {
			g.tap()
		}
	case core.ActionPause:
		if g.run.Phase == core.PhasePlaying {
			g.run.Paused = !g.run.Paused
		}
	}
}

// tap applies the phase-dependent meaning of the primary action.
func (g *Game) tap() {
	switch g.run.Phase {
	case core.PhaseWaiting:
		g.start()
	case core.PhasePlaying:
		if g.run.Paused {
			return
		}
		g.run.Bird.Flap(g.cfg.Physics.JumpImpulse)
		g.emit(core.EventFlap)
	case core.PhaseGameOver:
		g.resetRun()
		g.emit(core.EventRestart)
	}
}

// start moves Waiting -> Playing: gravity on, score cleared, spawner armed.
func (g *Game) start() {
	g.run.Phase = core.PhasePlaying
	g.run.Score = 0
	g.run.Bird.VelY = 0
	g.spawner.Start()
	g.emit(core.EventMusicStart)
}

// onSpawnTimer is the spawn timer callback. Fires that arrive outside
// PhasePlaying belong to a finished run and are dropped.
func (g *Game) onSpawnTimer() {
	if g.run.Phase != core.PhasePlaying {
		return
	}
	g.run.Pipes = g.spawner.Spawn(g.run.Pipes, config.Progress{Score: g.run.Score, Elapsed: g.run.Elapsed})
}

// Tick advances the simulation by dt. Only PhasePlaying moves anything.
func (g *Game) Tick(dt time.Duration) {
	if g.run.Phase != core.PhasePlaying || g.run.Paused {
		return
	}

	g.run.Ticks++
	g.run.Elapsed += dt

	g.run.Bird.integrate(g.cfg.Physics, dt)
	movePipes(g.run.Pipes, dt)
	g.spawner.Advance(dt)

	if n := g.scorer.Update(g.run.Pipes, g.run.Bird.X); n > 0 {
		g.run.Score += n
		for range n {
			g.emit(core.EventScore)
		}
	}

	var retired int
	g.run.Pipes, retired = prunePipes(g.run.Pipes, g.cfg.Obstacles.TrailingBound)
	g.run.Retired += retired

	if cause := g.checkEnd(); cause != "" {
		g.end(cause)
	}
}

// checkEnd applies the bounds and collision policies. Returns the cause of
// the crash or "" if the run continues. The bird is clamped to the
// playfield either way.
func (g *Game) checkEnd() string {
	b := &g.run.Bird
	floor := g.cfg.FloorLine()
	policy := g.cfg.Rules.Bounds

	cause := ""
	if b.Y+b.H >= floor {
		b.Y = floor - b.H
		if policy == config.BoundsFloor || policy == config.BoundsEdges {
			cause = "floor"
		}
		b.VelY = 0
	}
	if b.Y < 0 {
		b.Y = 0
		if policy == config.BoundsEdges {
			cause = "ceiling"
		}
		b.VelY = 0
	}
	if cause != "" {
		return cause
	}

	if g.cfg.Rules.Collision {
		r := b.Rect()
		for _, p := range g.run.Pipes {
			if p.Hits(r, floor) {
				return "pipe"
			}
		}
	}
	return ""
}

// end moves Playing -> GameOver: timer cancelled, physics frozen.
func (g *Game) end(cause string) {
	g.spawner.Stop()
	g.run.Phase = core.PhaseGameOver
	g.run.Paused = false
	g.run.EndCause = cause
	g.run.Bird.VelY = 0
	if g.run.Score > g.best {
		g.best = g.run.Score
	}
	g.emit(core.EventHit)
	g.emit(core.EventMusicStop)
	g.emit(core.EventGameOver)
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// Events drains the side effects raised since the last call.
func (g *Game) Events() []core.Event {
	if len(g.events) == 0 {
		return nil
	}
	out := g.events
	g.events = nil
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.run.Score,
		Phase:  g.run.Phase,
		Paused: g.run.Paused,
	}
}

// Run returns a copy of the current run state.
func (g *Game) Run() RunState {
	rs := g.run
	rs.Pipes = append([]ObstaclePair(nil), g.run.Pipes...)
	return rs
}

// Best returns the best score of this session.
func (g *Game) Best() int {
	return g.best
}

// Scroll returns how far the ground has drifted this run, in world units.
// It only advances while playing, so it freezes on a crash and restarts at
// zero with the next run.
func (g *Game) Scroll() float64 {
	return g.run.Elapsed.Seconds() * g.cfg.Viewport.ScrollSpeed
}

// SpawnerActive reports whether the spawn timer is armed.
func (g *Game) SpawnerActive() bool {
	return g.spawner != nil && g.spawner.Active()
}
