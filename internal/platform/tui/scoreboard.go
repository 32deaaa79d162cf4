package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const scoreboardLimit = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Mine key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Mine, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Mine},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next variant")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev variant")),
		Mine: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "my runs")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardStatLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardStatValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// ScoreboardModel lists stored runs for one variant at a time, with a
// summary line built from the variant's statistics.
type ScoreboardModel struct {
	store    *storage.Store
	player   string
	variants []registry.GameInfo
	current  int
	mineOnly bool

	entries []storage.ScoreEntry
	stats   *storage.GameStats
	loadErr error

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard. Rows recorded by player are
// marked, and the "my runs" filter shows only those.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		player:   player,
		variants: registry.List(),
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.table = newScoreTable(width, height)
	m.reload()
	return m
}

// newScoreTable sizes the table to the terminal. The player column takes
// whatever width is left over.
func newScoreTable(width, height int) table.Model {
	playerW := width - 6 - 8 - 7 - 14 - 16
	switch {
	case playerW < 8:
		playerW = 8
	case playerW > 24:
		playerW = 24
	}

	rows := height - 12
	if rows < 3 {
		rows = 3
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Player", Width: playerW},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// variantID returns the variant currently shown, or "" when none exist.
func (m ScoreboardModel) variantID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.current].ID
}

// reload refetches entries and stats for the current variant.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats, m.loadErr = nil, nil, nil

	id := m.variantID()
	if m.store != nil && id != "" {
		if m.mineOnly {
			var all []storage.ScoreEntry
			all, m.loadErr = m.store.AllScores(id)
			for _, e := range all {
				if e.Player == m.player {
					m.entries = append(m.entries, e)
				}
			}
		} else {
			m.entries, m.loadErr = m.store.TopScores(id, scoreboardLimit)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rank := "#" + strconv.Itoa(i+1)
		if !m.mineOnly && m.player != "" && e.Player == m.player {
			rank += "*"
		}
		rows = append(rows, table.Row{
			rank,
			strconv.Itoa(e.Score),
			playerName(e.Player),
			formatDuration(e.Duration),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves to the variant delta steps away, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.reload()
}

// playerName substitutes a placeholder for runs saved without a name.
func playerName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mine):
			m.mineOnly = !m.mineOnly
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	heading := "HIGH SCORES"
	if m.mineOnly {
		heading = "MY RUNS"
	}

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		center(boardTitleStyle.Render(heading)),
		"",
		center(m.renderTabs()),
		"",
		center(m.renderStats()),
		"",
		center(boardFrameStyle.Render(m.renderBody())),
		boardDimStyle.Render(m.help.View(m.keys)),
	)
}

// renderTabs draws one tab per variant, or just the current one with
// arrows when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.variants) == 0 {
		return boardDimStyle.Render("no variants registered")
	}

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(v.Title)
		} else {
			tabs[i] = boardTabStyle.Render(v.Title)
		}
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-2 {
		line = boardActiveTab.Render("< " + m.variants[m.current].Title + " >")
	}
	return line
}

// renderStats summarizes the variant: runs, best, average and last played.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return boardDimStyle.Render("no runs yet")
	}

	stat := func(label, value string) string {
		return boardStatLabel.Render(label+" ") + boardStatValue.Render(value)
	}

	last := "-"
	if !m.stats.LastPlayed.IsZero() {
		last = m.stats.LastPlayed.Local().Format("Jan 02 15:04")
	}

	return strings.Join([]string{
		stat("runs", strconv.Itoa(m.stats.GamesCount)),
		stat("best", strconv.Itoa(m.stats.HighScore)),
		stat("avg", fmt.Sprintf("%.1f", m.stats.AvgScore)),
		stat("last", last),
	}, "   ")
}

// renderBody renders the table, or a placeholder when there is nothing to show.
func (m ScoreboardModel) renderBody() string {
	empty := boardDimStyle.Italic(true).Padding(1, 4)

	switch {
	case m.store == nil:
		return empty.Render("Scores are not being recorded.")
	case m.loadErr != nil:
		return empty.Render("Could not load scores: " + m.loadErr.Error())
	case len(m.entries) == 0 && m.mineOnly:
		return empty.Render("You have no runs on this variant yet.")
	case len(m.entries) == 0:
		return empty.Render("No scores recorded yet.\nFly through a few pipes to set one!")
	}
	return m.table.View()
}

// Rows returns the number of rows currently listed.
func (m ScoreboardModel) Rows() int {
	return len(m.entries)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, player, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: scoreboard: %w", err)
	}

	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
