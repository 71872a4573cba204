package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sweet-memories/internal/config"
	"github.com/vovakirdan/sweet-memories/internal/core"
	"github.com/vovakirdan/sweet-memories/internal/registry"
	"github.com/vovakirdan/sweet-memories/internal/storage"
)

// MenuItem represents a selectable game mode in the menu.
type MenuItem struct {
	GameID string
	Title  string
	// HasPresets is false for modes that ignore the difficulty choice.
	HasPresets bool
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	preset       int // index into config.Presets
	width        int
	height       int
	store        *storage.Store
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	quitting     bool
	selected     *MenuItem
	openScores   bool
	openAlbum    bool
	bestMemories map[string]int
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	best := make(map[string]int, len(games))

	for _, g := range games {
		items = append(items, MenuItem{
			GameID:     g.ID,
			Title:      g.Title,
			HasPresets: !strings.HasSuffix(g.ID, "_zen"),
		})
		if store != nil {
			if n, err := store.BestMemories(g.ID); err == nil {
				best[g.ID] = n
			}
		}
	}

	presetIdx := 0
	for i, p := range config.Presets {
		if p == preset {
			presetIdx = i
		}
	}

	return MenuModel{
		items:        items,
		preset:       presetIdx,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		store:        store,
		config:       cfg,
		keyMapper:    NewKeyMapper(),
		bestMemories: best,
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
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.preset = (m.preset + len(config.Presets) - 1) % len(config.Presets)

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(config.Presets)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScores = true
		return m, tea.Quit

	case MenuActionAlbum:
		m.openAlbum = true
		return m, tea.Quit
	}

	return m, nil
}

// Preset returns the difficulty currently chosen.
func (m MenuModel) Preset() config.DifficultyPreset {
	return config.Presets[m.preset]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("♥  S W E E T   M E M O R I E S  ♥"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Subtitle.Render("Match tiles, find the memories hidden in the board"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		style := theme.ItemNormal
		cursor := "  "
		if i == m.cursor {
			style = theme.ItemActive
			cursor = "> "
		}
		line := cursor + item.Title
		if best := m.bestMemories[item.GameID]; best > 0 {
			line += fmt.Sprintf("  (best: %d memories)", best)
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	preset := m.Preset()
	if len(m.items) > 0 && !m.items[m.cursor].HasPresets {
		b.WriteString(centerText(theme.Description.Render("Zen: no move limit"), m.width))
	} else {
		line := fmt.Sprintf("Difficulty: < %s >", strings.ToUpper(string(preset)))
		b.WriteString(centerText(theme.ItemNormal.Render(line), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(theme.Description.Render(preset.Description()), m.width))
	}
	b.WriteString("\n\n")

	controls := "Up/Down: Mode  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: Scores  |  M: Album  |  Q: Quit"
	b.WriteString(centerText(theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	WantsAlbum      bool
	Quit            bool
}

// Result converts the final menu state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config: m.Config(),
		Preset: m.Preset(),
	}
	switch {
	case m.openScores:
		result.WantsScoreboard = true
	case m.openAlbum:
		result.WantsAlbum = true
	case m.quitting || m.selected == nil:
		result.Quit = true
	default:
		result.GameID = m.selected.GameID
		if !m.selected.HasPresets {
			result.Preset = config.DifficultyZen
		}
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg, preset),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
