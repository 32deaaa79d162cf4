package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// MenuItem represents a selectable variant in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Stored high score across all players
	Mine   int // Best score of the menu's player
}

// MenuModel is the Bubble Tea model for the variant picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	store     *storage.Store
	player    string
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	quitting   bool
	selected   *MenuItem
	scoreboard bool
}

// NewMenuModel creates a menu listing every registered variant.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	m := MenuModel{
		items:     make([]MenuItem, len(games)),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, g := range games {
		m.items[i] = MenuItem{GameID: g.ID, Title: g.Title}
	}
	m.loadBest()
	return m
}

// WithPlayer returns a copy of the menu that also shows player's own best.
func (m MenuModel) WithPlayer(player string) MenuModel {
	m.player = player
	m.loadBest()
	return m
}

// loadBest fills in stored scores. Without a store the columns stay empty.
func (m *MenuModel) loadBest() {
	if m.store == nil {
		return
	}
	for i := range m.items {
		id := m.items[i].GameID
		if best, err := m.store.HighScore(id); err == nil {
			m.items[i].Best = best
		}
		if m.player == "" {
			continue
		}
		if mine, err := m.store.PlayerBest(id, m.player); err == nil {
			m.items[i].Mine = mine
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// handleKey moves the cursor, wrapping at both ends, or leaves the menu.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case MenuActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case MenuActionSelect:
		if n > 0 {
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuBirdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuItemStyle   = lipgloss.NewStyle().PaddingLeft(2)
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuScoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu centred in the terminal.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		menuBirdStyle.Render(">o)"),
		menuTitleStyle.Render("F L A P P Y"),
		"",
	}

	for i, item := range m.items {
		line := menuItemStyle.Render(item.Title)
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		if scores := m.scoreLine(item); scores != "" {
			line += "  " + menuScoreStyle.Render(scores)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", menuHelpStyle.Render("↑/↓ move • enter play • tab scores • q quit"))

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return body
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

// scoreLine describes the stored scores for an item, or "" when none exist.
func (m MenuModel) scoreLine(item MenuItem) string {
	switch {
	case item.Best == 0:
		return ""
	case item.Mine == 0 || item.Mine == item.Best:
		return fmt.Sprintf("best %d", item.Best)
	default:
		return fmt.Sprintf("best %d, yours %d", item.Best, item.Mine)
	}
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the runtime config, updated by any resize.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, player string) (MenuResult, error) {
	model := NewMenuModel(store, cfg).WithPlayer(player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, fmt.Errorf("tui: menu: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result summarizes what the user chose.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}

	return result
}
