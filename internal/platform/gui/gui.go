// Package gui provides the Ebitengine window frontend for the flappy variants.
// The logical screen is the variant's viewport, so world units are pixels and
// Ebitengine handles scaling to the window.
package gui

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui/prefs"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	skyColor    = color.RGBA{0x4e, 0xc0, 0xca, 0xff}
	groundColor = color.RGBA{0xde, 0xd8, 0x95, 0xff}
	grassColor  = color.RGBA{0x5e, 0xb2, 0x3a, 0xff}
	stripeColor = color.RGBA{0x4a, 0x94, 0x2c, 0xff}
	cloudColor  = color.RGBA{0xea, 0xf6, 0xf7, 0xff}
	pipeColor   = color.RGBA{0x1e, 0xc8, 0x0f, 0xff}
	pipeEdge    = color.RGBA{0x0b, 0x55, 0x05, 0xff}
	birdColor   = color.RGBA{0xf8, 0xd8, 0x20, 0xff}
	deadColor   = color.RGBA{0xe0, 0x40, 0x30, 0xff}
	shadeColor  = color.RGBA{0, 0, 0, 0x80}
)

// Options configures the window.
type Options struct {
	TickRate int     // Updates per second, 0 for 60
	Scale    float64 // Initial window size relative to the viewport, 0 for 1
	Mute     bool
	Volume   float64 // 0.0 ~ 1.0
	Player   string  // Name recorded with saved scores
	Debug    bool
	Prefs    *prefs.Store // Receives mute toggles, may be nil
}

// App implements ebiten.Game around one flappy run loop.
type App struct {
	game   *flappy.Game
	store  *storage.Store
	logger *log.Logger
	opts   Options
	dt     time.Duration
	sounds *sounds
	muted  bool
	font   *text.GoTextFaceSource

	state  core.GameState
	played time.Duration
	saved  bool
}

// NewApp sets up the game for a fresh session.
func NewApp(game *flappy.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options, logger *log.Logger) (*App, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.TickRate
	}
	// SetTPS and the step size must agree
	opts.TickRate = core.NormalizeTickRate(opts.TickRate)
	if logger == nil {
		logger = log.Default()
	}
	if opts.Volume <= 0 {
		opts.Volume = prefs.Defaults().Volume
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.TickRate = opts.TickRate
	cfg.Debug = cfg.Debug || opts.Debug
	opts.Debug = cfg.Debug

	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("gui: cannot load font: %w", err)
	}

	game.Setup(cfg)

	a := &App{
		game:   game,
		store:  store,
		logger: logger,
		opts:   opts,
		dt:     core.TickDuration(opts.TickRate),
		font:   src,
		muted:  opts.Mute,
		state:  game.State(),
	}

	if a.sounds, err = newSounds(opts.Volume); err != nil {
		logger.Warn("audio disabled", "err", err)
	}

	return a, nil
}

// Update reads input and advances the simulation by one fixed step.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.toggleMute()
	}

	for _, action := range a.actions() {
		a.game.OnInput(action)
		a.observe()
	}

	if a.state.Phase == core.PhasePlaying && !a.state.Paused {
		a.played += a.dt
	}
	a.game.Tick(a.dt)
	a.observe()

	return nil
}

// actions collects this frame's discrete inputs.
func (a *App) actions() []core.Action {
	var out []core.Action

	tapped := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	if tapped {
		out = append(out, core.ActionJump)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		out = append(out, core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		out = append(out, core.ActionRestart)
	}
	return out
}

// observe drains game events and reacts to phase changes.
func (a *App) observe() {
	for _, e := range a.game.Events() {
		a.logger.Debug("game event", "game", a.game.ID(), "event", e)
		if a.sounds != nil && !a.muted {
			a.sounds.play(e)
		}
	}

	prev := a.state
	a.state = a.game.State()
	if prev.Phase == a.state.Phase {
		return
	}
	a.logger.Debug("phase change", "game", a.game.ID(), "from", prev.Phase, "to", a.state.Phase)

	switch a.state.Phase {
	case core.PhaseWaiting:
		a.played = 0
		a.saved = false
	case core.PhaseGameOver:
		a.saveScore()
	}
}

// toggleMute flips sound on or off and remembers the choice.
func (a *App) toggleMute() {
	a.muted = !a.muted
	if a.sounds != nil {
		if a.muted {
			a.sounds.silence()
		} else if a.state.Phase == core.PhasePlaying {
			a.sounds.play(core.EventMusicStart)
		}
	}

	if a.opts.Prefs == nil {
		return
	}
	a.opts.Prefs.Update(func(s *prefs.Settings) { s.Muted = a.muted })
	if err := a.opts.Prefs.Save(); err != nil {
		a.logger.Warn("cannot save settings", "err", err)
	}
}

// saveScore stores the finished run once. Zero scores are not recorded.
func (a *App) saveScore() {
	if a.saved || a.state.Score <= 0 {
		return
	}
	a.saved = true
	if a.store == nil {
		return
	}

	entry := storage.ScoreEntry{
		GameID:   a.game.ID(),
		Player:   a.opts.Player,
		Score:    a.state.Score,
		Duration: a.played,
	}
	if _, err := a.store.SaveScore(entry); err != nil {
		a.logger.Warn("cannot save score", "game", entry.GameID, "err", err)
		return
	}
	a.logger.Info("score saved", "game", entry.GameID, "score", entry.Score, "duration", entry.Duration)
}

// Draw renders the world in viewport units.
func (a *App) Draw(screen *ebiten.Image) {
	cfg := a.game.Config()
	run := a.game.Run()
	vw, vh := float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)
	floor := cfg.FloorLine()

	screen.Fill(skyColor)
	scroll := a.game.Scroll()
	drawClouds(screen, vw, float32(floor), float32(scroll*cloudParallax))

	for _, p := range run.Pipes {
		drawPipe(screen, p, floor)
	}

	// Ground
	fy := float32(floor)
	vector.DrawFilledRect(screen, 0, fy, vw, vh-fy, groundColor, false)
	vector.DrawFilledRect(screen, 0, fy, vw, 6, grassColor, false)
	drawGroundStripes(screen, vw, fy, float32(scroll))

	// Bird
	b := run.Bird
	body := birdColor
	if run.Phase == core.PhaseGameOver {
		body = deadColor
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), body, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, color.Black, true)
	vector.DrawFilledCircle(screen, float32(b.X+b.W*0.75), float32(b.Y+b.H*0.3), float32(b.H*0.12), color.Black, true)

	a.drawText(screen, fmt.Sprintf("%d", run.Score), float64(vw)/2, 24, 32)
	if best := a.game.Best(); best > 0 {
		a.drawText(screen, fmt.Sprintf("BEST %d", best), float64(vw)-90, 16, 12)
	}

	switch {
	case run.Phase == core.PhaseWaiting:
		a.drawBanner(screen, "TAP TO START", "Space / click to flap")
	case run.Paused:
		a.drawBanner(screen, "PAUSED", "Press P to resume")
	case run.Phase == core.PhaseGameOver:
		a.drawBanner(screen, "GAME OVER", fmt.Sprintf("Score %d - tap or R to restart", run.Score))
	}

	if a.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Bird: (x: %.0f, y: %.0f)\nTPS: %0.1f", b.X, b.Y, ebiten.ActualTPS()))
	}
}

const (
	cloudParallax = 0.25 // clouds drift slower than the ground
	stripeWidth   = 24
)

// drawGroundStripes draws diagonal-looking grass stripes shifted by scroll.
func drawGroundStripes(screen *ebiten.Image, vw, fy, scroll float32) {
	period := float32(2 * stripeWidth)
	shift := float32(math.Mod(float64(scroll), float64(period)))
	for x := -shift; x < vw; x += period {
		vector.DrawFilledRect(screen, x, fy, stripeWidth, 6, stripeColor, false)
	}
}

// drawClouds draws a row of puffs that wraps around the viewport width.
func drawClouds(screen *ebiten.Image, vw, floor, scroll float32) {
	span := vw + 160
	for i, base := range []float32{60, 290, 520, 700} {
		x := float32(math.Mod(float64(base-scroll), float64(span)))
		if x < 0 {
			x += span
		}
		x -= 80
		y := floor*0.12 + float32(i%2)*floor*0.1
		vector.DrawFilledCircle(screen, x, y, 22, cloudColor, true)
		vector.DrawFilledCircle(screen, x+26, y-8, 26, cloudColor, true)
		vector.DrawFilledCircle(screen, x+54, y, 20, cloudColor, true)
	}
}

// drawPipe draws both halves of a pair with a darker outline.
func drawPipe(screen *ebiten.Image, p flappy.ObstaclePair, floor float64) {
	for _, r := range []core.RectF{p.TopRect(), p.BottomRect(floor)} {
		if r.Empty() {
			continue
		}
		x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
		vector.DrawFilledRect(screen, x, y, w, h, pipeColor, false)
		vector.StrokeRect(screen, x, y, w, h, 3, pipeEdge, false)
	}
}

// drawBanner shades the screen and draws a two-line message.
func (a *App) drawBanner(screen *ebiten.Image, title, subtitle string) {
	cfg := a.game.Config()
	w, h := cfg.Viewport.Width, cfg.Viewport.Height

	vector.DrawFilledRect(screen, 0, float32(h/2-60), float32(w), 110, shadeColor, false)
	a.drawText(screen, title, w/2, h/2-40, 28)
	a.drawText(screen, subtitle, w/2, h/2+10, 12)
}

// drawText draws centered white text with its top at y.
func (a *App) drawText(screen *ebiten.Image, s string, x, y, size float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, &text.GoTextFace{Source: a.font, Size: size}, op)
}

// Layout fixes the logical screen to the viewport.
func (a *App) Layout(_, _ int) (int, int) {
	cfg := a.game.Config()
	return int(cfg.Viewport.Width), int(cfg.Viewport.Height)
}

// Run opens the window and blocks until it is closed.
func Run(game *flappy.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options, logger *log.Logger) error {
	app, err := NewApp(game, store, cfg, opts, logger)
	if err != nil {
		return err
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	vp := game.Config().Viewport
	ebiten.SetWindowSize(int(vp.Width*scale), int(vp.Height*scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(app.opts.TickRate)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
