package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-memories/internal/config"
	"github.com/vovakirdan/sweet-memories/internal/core"
	"github.com/vovakirdan/sweet-memories/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"w", runeKey("w"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"hint", runeKey("h"), core.ActionHint, false},
		{"cancel", runeKey("x"), core.ActionCancel, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unmapped", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isQuit := km.MapKey(tt.msg)
			if got != tt.want || isQuit != tt.isQuit {
				t.Errorf("MapKey(%q) = %v/%v, want %v/%v", tt.msg.String(), got, isQuit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey("l"), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("m"), MenuActionAlbum},
		{runeKey("q"), MenuActionQuit},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMenuPresetAndResult(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
	m := NewMenuModel(nil, cfg, config.DifficultyHard)

	if m.Preset() != config.DifficultyHard {
		t.Fatalf("Preset() = %s, want hard", m.Preset())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Preset() != config.DifficultyZen {
		t.Errorf("after right: %s, want zen", m.Preset())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("preset should wrap around, got %s", m.Preset())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(MenuModel)
	if r := m.Result(); !r.WantsScoreboard || r.Quit {
		t.Errorf("Result() = %+v, want scoreboard", r)
	}
}

func TestBuildAlbum(t *testing.T) {
	memories := []config.Memory{
		{ID: "beach", Caption: "Beach day"},
		{ID: "snow", Caption: "First snow"},
		{ID: "train", Caption: "Night train"},
	}
	first := time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC)
	entries := []storage.AlbumEntry{
		{MemoryID: "snow", Times: 3, FirstFound: first},
		{MemoryID: "retired", Times: 1},
	}

	rows := BuildAlbum(memories, entries)

	wantIDs := []string{"snow", "retired", "beach", "train"}
	if len(rows) != len(wantIDs) {
		t.Fatalf("got %d rows, want %d", len(rows), len(wantIDs))
	}
	for i, id := range wantIDs {
		if rows[i].ID != id {
			t.Errorf("row %d = %s, want %s", i, rows[i].ID, id)
		}
	}
	if rows[0].Caption != "First snow" || rows[0].First != "2024-02-14" {
		t.Errorf("found row = %+v", rows[0])
	}
	if rows[1].Caption != "retired" {
		t.Errorf("unknown memory should fall back to its id, got %q", rows[1].Caption)
	}
	if rows[2].Times != 0 || rows[2].First != "" {
		t.Errorf("missing memory row = %+v", rows[2])
	}
}

func TestSessionRows(t *testing.T) {
	rows := SessionRows([]storage.Session{
		{MemoriesFound: 6, MemoriesTotal: 6, MovesUsed: 21, MaxCascade: 4, Won: true},
		{MemoriesFound: 2, MemoriesTotal: 6, MovesUsed: 30, MaxCascade: 1},
	})

	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	want := []string{"#1", "6/6", "21", "x4", "won"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], w)
		}
	}
	if rows[1][4] != "-" {
		t.Errorf("lost session result = %q", rows[1][4])
	}
}

type finishedGame struct {
	over bool
}

func (g *finishedGame) ID() string { return "stub" }
func (g *finishedGame) Title() string { return "Stub" }
func (g *finishedGame) Reset(core.RuntimeConfig) {}
func (g *finishedGame) Render(*core.Screen) {}
func (g *finishedGame) State() core.GameState { return core.GameState{GameOver: g.over} }
func (g *finishedGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.State()}
}
func (g *finishedGame) Summary() core.SessionSummary {
	return core.SessionSummary{MemoriesFound: 1, MemoriesTotal: 3, MovesUsed: 12, MaxCascade: 2, Found: []string{"beach"}}
}

func TestModelSavesFinishedSessionOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	game := &finishedGame{}
	var model tea.Model = NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}, nil)

	model, _ = model.Update(TickMsg(time.Now()))
	if sessions, _ := store.TopSessions("stub", 10); len(sessions) != 0 {
		t.Fatalf("running game was saved: %+v", sessions)
	}

	game.over = true
	model, _ = model.Update(TickMsg(time.Now()))
	model, _ = model.Update(TickMsg(time.Now()))

	sessions, err := store.TopSessions("stub", 10)
	if err != nil {
		t.Fatalf("TopSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("saved %d sessions, want 1", len(sessions))
	}
	if sessions[0].MovesUsed != 12 || sessions[0].MaxCascade != 2 {
		t.Errorf("saved session = %+v", sessions[0])
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawTextColor(0, 0, "hello", core.ColorPink)
	s.DrawText(0, 1, "world")

	out := RenderScreen(s)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("got %d line breaks, want 1", got)
	}
}
