package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sweet-memories/internal/config"
	"github.com/vovakirdan/sweet-memories/internal/core"
	"github.com/vovakirdan/sweet-memories/internal/storage"
)

// AlbumRow is one memory as shown in the album.
type AlbumRow struct {
	ID      string
	Caption string
	Times   int
	First   string // date of the first find, empty if never found
}

// BuildAlbum merges the configured memories with the stored finds.
// Memories that were never found keep their configured order at the end.
func BuildAlbum(memories []config.Memory, entries []storage.AlbumEntry) []AlbumRow {
	captions := make(map[string]string, len(memories))
	for _, m := range memories {
		captions[m.ID] = m.Caption
	}

	rows := make([]AlbumRow, 0, len(memories))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		caption, ok := captions[e.MemoryID]
		if !ok {
			caption = e.MemoryID
		}
		seen[e.MemoryID] = true
		row := AlbumRow{ID: e.MemoryID, Caption: caption, Times: e.Times}
		if !e.FirstFound.IsZero() {
			row.First = e.FirstFound.Format("2006-01-02")
		}
		rows = append(rows, row)
	}
	for _, m := range memories {
		if !seen[m.ID] {
			rows = append(rows, AlbumRow{ID: m.ID, Caption: m.Caption})
		}
	}
	return rows
}

// AlbumModel shows every memory and how often it was uncovered.
type AlbumModel struct {
	rows      []AlbumRow
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	quitting  bool
	back      bool
}

// NewAlbumModel creates a new album view.
func NewAlbumModel(rows []AlbumRow, width, height int) AlbumModel {
	return AlbumModel{
		rows:      rows,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m AlbumModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m AlbumModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.back = true
			return m, tea.Quit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the album.
func (m AlbumModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("M E M O R Y   A L B U M"), m.width))
	b.WriteString("\n\n")

	found := 0
	for _, r := range m.rows {
		if r.Times > 0 {
			found++
		}
	}
	b.WriteString(centerText(theme.Subtitle.Render(fmt.Sprintf("%d of %d memories found", found, len(m.rows))), m.width))
	b.WriteString("\n\n")

	// Keep the cursor visible on short terminals.
	visible := max(m.height-8, 3)
	start := max(0, m.cursor-visible+1)
	end := min(len(m.rows), start+visible)

	for i := start; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		var line string
		if r.Times > 0 {
			line = theme.Memory.Render(fmt.Sprintf("%s♥ %-32s x%-3d since %s", cursor, r.Caption, r.Times, r.First))
		} else {
			line = theme.MemoryDim.Render(fmt.Sprintf("%s♡ %-32s", cursor, "???"))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.Controls.Render("Up/Down: Scroll  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// IsQuitting returns true if user wants to quit.
func (m AlbumModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m AlbumModel) WantsBack() bool {
	return m.back
}

// RunAlbum shows the album. It returns true if the user asked to quit.
func RunAlbum(store *storage.Store, memories []config.Memory, cfg core.RuntimeConfig) (bool, error) {
	var entries []storage.AlbumEntry
	if store != nil {
		var err error
		if entries, err = store.Album(); err != nil {
			return false, err
		}
	}

	p := tea.NewProgram(
		NewAlbumModel(BuildAlbum(memories, entries), cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(AlbumModel)
	return ok && m.IsQuitting(), nil
}
