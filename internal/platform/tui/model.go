package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Model is the Bubble Tea model for running one flappy variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	player     string
	tickGen    int
	gameState  core.GameState
	played     time.Duration // Unpaused time in PhasePlaying for the current run
	quitting   bool
	back       bool // User asked to return to the menu
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// Games are set up here rather than in Init: Init has a value receiver
	// and the first View must already see a valid run.
	game.Setup(cfg)

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		logger:    log.Default(),
		keys:      NewKeyMapper(),
		config:    cfg,
		gameState: game.State(),
	}
}

// WithLogger returns a copy of the model that logs to l.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithPlayer returns a copy of the model that records scores under name.
func (m Model) WithPlayer(name string) Model {
	m.player = name
	return m
}

// withTickGen returns a copy of the model that only accepts ticks of gen.
func (m Model) withTickGen(gen int) Model {
	m.tickGen = gen
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keys.MapMouse(msg); action != core.ActionNone {
			m.game.OnInput(action)
			m.observe()
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		return m, tea.Quit
	default:
		m.game.OnInput(action)
		m.observe()
	}

	return m, nil
}

// handleResize processes window resize events.
// The world is in logical units, so the run survives a resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := core.TickDuration(m.config.TickRate)
	if m.gameState.Phase == core.PhasePlaying && !m.gameState.Paused {
		m.played += dt
	}

	m.game.Tick(dt)
	m.observe()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// observe drains game events and reacts to phase changes.
func (m *Model) observe() {
	for _, e := range m.game.Events() {
		m.logger.Debug("game event", "game", m.game.ID(), "event", e)
	}

	prev := m.gameState
	m.gameState = m.game.State()
	if prev.Phase == m.gameState.Phase {
		return
	}

	m.logger.Debug("phase change", "game", m.game.ID(), "from", prev.Phase, "to", m.gameState.Phase)

	switch m.gameState.Phase {
	case core.PhaseWaiting:
		m.played = 0
		m.scoreSaved = false
	case core.PhaseGameOver:
		m.saveScore()
	}
}

// saveScore stores the finished run once. Zero scores are not recorded.
func (m *Model) saveScore() {
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true

	if m.store == nil {
		return
	}

	entry := storage.ScoreEntry{
		GameID:   m.game.ID(),
		Player:   m.player,
		Score:    m.gameState.Score,
		Duration: m.played,
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("cannot save score", "game", entry.GameID, "err", err)
		return
	}
	m.logger.Info("score saved", "game", entry.GameID, "player", entry.Player, "score", entry.Score, "duration", entry.Duration)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// WantsBack reports whether the user left the game for the menu.
func (m Model) WantsBack() bool {
	return m.back
}

// Run starts the Bubble Tea program with the given model.
// It reports whether the user asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	model := NewModel(game, store, cfg).WithLogger(logger).WithPlayer(LocalPlayer())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks flap like Space
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}

	if m, ok := finalModel.(Model); ok {
		return m.WantsBack(), nil
	}
	return false, nil
}

// LocalPlayer names the local user for the scoreboard.
func LocalPlayer() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}
