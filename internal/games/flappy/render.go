package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	PlayerBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	GroundStripe  = '╪'
)

// groundTile is the world width of one ground stripe.
const groundTile = 40.0

// cellAspect is how many columns match one row in physical size.
const cellAspect = 2.0

// projection maps world units onto screen cells.
type projection struct {
	sx, sy float64 // cells per world unit
	ox, oy float64 // offset of the viewport in cells
}

func newProjection(vp config.ViewportConfig, screenW, screenH int) projection {
	w, h := float64(screenW), float64(screenH)
	if vp.ScaleMode != config.ScaleFit {
		return projection{sx: w / vp.Width, sy: h / vp.Height}
	}
	s := math.Min(w/vp.Width, cellAspect*h/vp.Height)
	p := projection{sx: s, sy: s / cellAspect}
	p.ox = (w - vp.Width*p.sx) / 2
	p.oy = (h - vp.Height*p.sy) / 2
	return p
}

func (p projection) col(x float64) int {
	return int(math.Floor(p.ox + x*p.sx))
}

func (p projection) row(y float64) int {
	return int(math.Floor(p.oy + y*p.sy))
}

// span converts a world interval to a cell interval at least one cell wide.
func span(from, to int) (int, int) {
	if to <= from {
		to = from + 1
	}
	return from, to
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	proj := newProjection(g.cfg.Viewport, dst.Width(), dst.Height())

	bottom := min(proj.row(g.cfg.Viewport.Height)-1, dst.Height()-1)
	groundY := min(proj.row(g.cfg.FloorLine()), bottom)
	left, right := proj.col(0), proj.col(g.cfg.Viewport.Width)
	for y := groundY; y <= bottom; y++ {
		dst.DrawRectColored(core.NewRect(left, y, right-left, 1), GroundChar, core.ColorGreen)
	}
	g.drawGroundStripes(dst, proj, groundY, left, right)

	for _, p := range g.run.Pipes {
		g.drawPipe(dst, proj, p, groundY)
	}

	g.drawBird(dst, proj)

	// Draw HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.run.Score), core.ColorBrightWhite)
	if g.best > 0 {
		best := fmt.Sprintf(" Best: %d ", g.best)
		dst.DrawTextColored(dst.Width()-len(best)-2, 0, best, core.ColorGray)
	}
	if g.runtime.Debug {
		b := g.run.Bird
		dst.DrawTextColored(2, 1, fmt.Sprintf("Bird: (x: %d, y: %d)", int(math.Round(b.X)), int(math.Round(b.Y))), core.ColorRed)
	}

	switch {
	case g.run.Phase == core.PhaseWaiting:
		g.drawCenteredMessage(dst, "TAP TO START", "Space / click to flap")
	case g.run.Paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.run.Phase == core.PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Tap or R to restart", g.run.Score))
	}
}

// drawGroundStripes marks the top ground row every other tile, shifted by
// the scroll offset so the ground appears to move with the pipes.
func (g *Game) drawGroundStripes(dst *core.Screen, proj projection, y, left, right int) {
	if proj.sx <= 0 {
		return
	}
	scroll := g.Scroll()
	for x := left; x < right; x++ {
		wx := (float64(x)-proj.ox)/proj.sx + scroll
		if int(math.Floor(wx/groundTile))&1 == 1 {
			dst.SetColored(x, y, GroundStripe, core.ColorBrightGreen)
		}
	}
}

// drawBird renders the player box, red after a crash.
func (g *Game) drawBird(dst *core.Screen, proj projection) {
	b := g.run.Bird
	color := core.ColorBrightYellow
	if g.run.Phase == core.PhaseGameOver {
		color = core.ColorBrightRed
	}
	x0, x1 := span(proj.col(b.X), proj.col(b.X+b.W))
	y0, y1 := span(proj.row(b.Y), proj.row(b.Y+b.H))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			ch := PlayerBody
			if x == x1-1 && y == y0 {
				ch = PlayerChar
			}
			dst.SetColored(x, y, ch, color)
		}
	}
}

// drawPipe renders a single obstacle pair to the screen.
func (g *Game) drawPipe(dst *core.Screen, proj projection, p ObstaclePair, groundY int) {
	x0, x1 := span(proj.col(p.X), proj.col(p.X+p.Width))
	gapTop := proj.row(p.GapTop())
	gapBottom := proj.row(p.GapBottom())

	// Top section, capped at the gap
	for y := 0; y < gapTop; y++ {
		ch := PipeChar
		if y == gapTop-1 {
			ch = PipeCapTop
		}
		dst.DrawRectColored(core.NewRect(x0, y, x1-x0, 1), ch, core.ColorBrightGreen)
	}

	// Bottom section down to the ground
	for y := gapBottom; y < groundY; y++ {
		ch := PipeChar
		if y == gapBottom {
			ch = PipeCapBottom
		}
		dst.DrawRectColored(core.NewRect(x0, y, x1-x0, 1), ch, core.ColorBrightGreen)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
