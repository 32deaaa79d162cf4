package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// stubGame starts on a tap and ends with a fixed score on the next tick.
type stubGame struct {
	phase   core.Phase
	score   int
	ticks   int
	actions []core.Action
	pending []core.Event
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Setup(core.RuntimeConfig) { g.phase = core.PhaseWaiting }
func (g *stubGame) Render(dst *core.Screen)  { dst.Clear() }
func (g *stubGame) State() core.GameState    { return core.GameState{Score: g.score, Phase: g.phase} }
func (g *stubGame) Events() []core.Event     { e := g.pending; g.pending = nil; return e }
func (g *stubGame) OnInput(a core.Action) {
	g.actions = append(g.actions, a)
	if a != core.ActionJump {
		return
	}
	switch g.phase {
	case core.PhaseWaiting:
		g.phase = core.PhasePlaying
		g.pending = append(g.pending, core.EventMusicStart)
	case core.PhaseGameOver:
		g.phase = core.PhaseWaiting
		g.score = 0
	}
}

func (g *stubGame) Tick(time.Duration) {
	g.ticks++
	if g.phase == core.PhasePlaying {
		g.phase = core.PhaseGameOver
		g.score = 3
		g.pending = append(g.pending, core.EventHit, core.EventGameOver)
	}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestKeyMapperGameKeys(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key  string
		want core.Action
	}{
		{" ", core.ActionJump},
		{"w", core.ActionJump},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"esc", core.ActionBack},
		{"b", core.ActionBack},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"x", core.ActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKey(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}

func TestKeyMapperMouse(t *testing.T) {
	km := NewKeyMapper()

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(press); got != core.ActionJump {
		t.Errorf("Left press = %v, expected Jump", got)
	}

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(release); got != core.ActionNone {
		t.Errorf("Release = %v, expected None", got)
	}
}

func TestKeyMapperMenu(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key  string
		want MenuAction
	}{
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{"tab", MenuActionScoreboard},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &stubGame{}
	m := NewModel(game, store, testConfig()).WithLogger(quietLogger()).WithPlayer("ann")

	m = update(t, m, keyMsg(" "))
	if m.State().Phase != core.PhasePlaying {
		t.Fatalf("Phase = %v after tap, expected Playing", m.State().Phase)
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	if !m.State().GameOver() {
		t.Fatal("Expected game over after tick")
	}

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected exactly one saved run, got %d", len(scores))
	}
	if scores[0].Score != 3 || scores[0].Player != "ann" || scores[0].Duration <= 0 {
		t.Errorf("Unexpected saved run: %+v", scores[0])
	}

	// A restarted run can be saved again
	m = update(t, m, keyMsg(" "))
	m = update(t, m, keyMsg(" "))
	update(t, m, TickMsg{})

	scores, _ = store.TopScores("stub", 10)
	if len(scores) != 2 {
		t.Errorf("Expected two saved runs after restart, got %d", len(scores))
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, testConfig()).WithLogger(quietLogger()).withTickGen(2)

	update(t, m, TickMsg{Gen: 1})
	if game.ticks != 0 {
		t.Errorf("Tick from another loop was applied")
	}

	update(t, m, TickMsg{Gen: 2})
	if game.ticks != 1 {
		t.Errorf("Expected one tick, got %d", game.ticks)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig()).WithLogger(quietLogger())

	back := update(t, m, keyMsg("esc"))
	if !back.WantsBack() || back.IsQuitting() {
		t.Error("Esc should request the menu")
	}
	if back.View() != "" {
		t.Error("View should be empty after leaving")
	}

	quit := update(t, m, keyMsg("q"))
	if !quit.IsQuitting() {
		t.Error("Q should quit")
	}
}

func TestModelMouseFlaps(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, nil, testConfig()).WithLogger(quietLogger())

	m = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.State().Phase != core.PhasePlaying {
		t.Errorf("Click should start the run, phase = %v", m.State().Phase)
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, testConfig(), "ann")
	s.logger = quietLogger()

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		var ok bool
		if s, ok = next.(SessionModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}

	if s.SessionID() == "" {
		t.Fatal("Session should have an id")
	}

	step(keyMsg("enter"))
	if s.screen != screenGame {
		t.Fatalf("Enter should start a game, screen = %v", s.screen)
	}
	if s.game.tickGen != 1 {
		t.Errorf("First game should use tick generation 1, got %d", s.game.tickGen)
	}

	step(keyMsg("esc"))
	if s.screen != screenMenu || s.quitting {
		t.Fatalf("Esc should return to the menu, screen = %v", s.screen)
	}

	// A tick from the finished game is dropped by the menu
	step(TickMsg{Gen: 1})

	step(keyMsg("tab"))
	if s.screen != screenScores {
		t.Fatalf("Tab should open scores, screen = %v", s.screen)
	}

	step(keyMsg("esc"))
	if s.screen != screenMenu {
		t.Fatalf("Esc should leave scores, screen = %v", s.screen)
	}

	step(keyMsg("q"))
	if !s.quitting {
		t.Error("Q in the menu should end the session")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "Score", core.ColorYellow)
	s.DrawText(0, 1, "ok")

	out := RenderScreen(s)
	if !strings.Contains(out, "Score") || !strings.Contains(out, "ok") {
		t.Errorf("Rendered screen lost text: %q", out)
	}
}

func TestScoreboardListsRunsAndStats(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	runs := []storage.ScoreEntry{
		{GameID: "flappy", Player: "ann", Score: 7, Duration: 20 * time.Second},
		{GameID: "flappy", Player: "bob", Score: 12, Duration: 31 * time.Second},
		{GameID: "flappy", Player: "ann", Score: 3, Duration: 9 * time.Second},
		{GameID: "flappy_floor", Player: "bob", Score: 1, Duration: 4 * time.Second},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "ann", 100, 30)
	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(ScoreboardModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}

	// Variants are listed in registration order; start on flappy.
	for m.variantID() != "flappy" {
		step(keyMsg("tab"))
	}
	if m.Rows() != 3 {
		t.Fatalf("Expected 3 rows for flappy, got %d", m.Rows())
	}
	if m.stats == nil || m.stats.HighScore != 12 || m.stats.GamesCount != 3 {
		t.Errorf("Unexpected stats: %+v", m.stats)
	}
	if out := m.View(); !strings.Contains(out, "bob") || !strings.Contains(out, "best") {
		t.Errorf("View is missing rows or stats:\n%s", out)
	}

	step(keyMsg("m"))
	if m.Rows() != 2 {
		t.Errorf("My runs should list ann's 2 runs, got %d", m.Rows())
	}

	step(keyMsg("m"))
	step(keyMsg("tab"))
	step(keyMsg("esc"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("Esc should go back without quitting")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "ann", 80, 24)
	if m.Rows() != 0 {
		t.Errorf("Expected no rows without a store, got %d", m.Rows())
	}
	if !strings.Contains(m.View(), "not being recorded") {
		t.Error("View should say scores are not recorded")
	}
}

func TestMenuWrapsAndShowsBest(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, e := range []storage.ScoreEntry{
		{GameID: "flappy", Player: "ann", Score: 4},
		{GameID: "flappy", Player: "bob", Score: 9},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewMenuModel(store, testConfig()).WithPlayer("ann")
	var item *MenuItem
	for i := range m.items {
		if m.items[i].GameID == "flappy" {
			item = &m.items[i]
		}
	}
	if item == nil {
		t.Fatal("flappy should be listed")
	}
	if item.Best != 9 || item.Mine != 4 {
		t.Errorf("Best/Mine = %d/%d, expected 9/4", item.Best, item.Mine)
	}
	if !strings.Contains(m.View(), "best 9, yours 4") {
		t.Errorf("View should show both scores:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != len(m.items)-1 {
		t.Errorf("Up from the top should wrap to %d, got %d", len(m.items)-1, m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("Down from the bottom should wrap to 0, got %d", m.cursor)
	}

	next, _ = m.Update(keyMsg("enter"))
	if res := next.(MenuModel).Result(); res.GameID != m.items[0].GameID || res.Quit {
		t.Errorf("Enter should select the first item, got %+v", res)
	}
}
