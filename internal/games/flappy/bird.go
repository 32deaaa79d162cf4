package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player-controlled entity. X and Y are the top-left corner of
// its sprite box in world units; VelY is units per second, positive is down.
type Bird struct {
	X, Y  float64
	VelY  float64
	W, H  float64
	Inset float64 // hitbox shrink on every side
}

// newBird places a bird at the configured start position with no velocity.
func newBird(cfg config.FlappyConfig) Bird {
	y := cfg.Player.StartY
	if y == 0 {
		y = (cfg.FloorLine() - cfg.Player.Height) / 2
	}
	return Bird{
		X:     cfg.Player.X,
		Y:     y,
		W:     cfg.Player.Width,
		H:     cfg.Player.Height,
		Inset: cfg.Player.HitboxInset,
	}
}

// Rect returns the collision bounds.
func (b Bird) Rect() core.RectF {
	r := core.RectF{X: b.X, Y: b.Y, W: b.W, H: b.H}
	if b.Inset > 0 && 2*b.Inset < b.W && 2*b.Inset < b.H {
		r = r.Inset(b.Inset, b.Inset)
	}
	return r
}

// Flap replaces the vertical velocity with the jump impulse.
func (b *Bird) Flap(impulse float64) {
	b.VelY = impulse
}

// integrate applies gravity for dt and moves the bird.
func (b *Bird) integrate(p config.FlappyPhysics, dt time.Duration) {
	secs := dt.Seconds()
	b.VelY += p.Gravity * secs
	if p.MaxFallSpeed > 0 && b.VelY > p.MaxFallSpeed {
		b.VelY = p.MaxFallSpeed
	}
	b.Y += b.VelY * secs
}
