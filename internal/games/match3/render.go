package match3

import (
	"fmt"

	"github.com/vovakirdan/sweet-memories/internal/core"
	"github.com/vovakirdan/sweet-memories/internal/games/match3/engine"
)

const (
	cellWidth = 4 // bracket, glyph, marker, bracket
	panelW    = 28
	panelGap  = 2
	hudHeight = 2
)

type glyph struct {
	r     rune
	color core.Color
}

var kindGlyphs = map[engine.Kind]glyph{
	engine.KindHeart: {'♥', core.ColorBrightRed},
	engine.KindStar:  {'★', core.ColorBrightYellow},
	engine.KindDrop:  {'●', core.ColorBrightBlue},
	engine.KindLeaf:  {'♣', core.ColorBrightGreen},
	engine.KindGem:   {'♦', core.ColorBrightMagenta},
	engine.KindMoon:  {'☾', core.ColorBrightCyan},
	engine.KindNote:  {'♪', core.ColorOrange},
	engine.KindSun:   {'☼', core.ColorYellow},
}

var specialMarkers = map[engine.Special]rune{
	engine.SpecialRowClear:    '─',
	engine.SpecialColumnClear: '│',
	engine.SpecialAreaClear:   '✱',
}

// layoutSize returns the screen size needed for a board of the given size.
func layoutSize(size int) (int, int) {
	boardW := size*cellWidth + 2
	boardH := size + 2
	return boardW + panelGap + panelW, hudHeight + boardH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.display == nil {
		g.renderFailure(dst)
		return
	}

	size := g.display.Size()
	totalW, totalH := layoutSize(size)
	area := core.NewRect(0, 0, g.screenW, g.screenH).CenterIn(totalW, totalH)
	board := core.NewRect(area.X, area.Y+hudHeight, size*cellWidth+2, size+2)
	panel := core.NewRect(board.Right()+panelGap, board.Y, panelW, board.H)

	g.renderHUD(dst, area)
	g.renderBoard(dst, board)
	g.renderPanel(dst, panel)
	g.renderMessage(dst, board.X, board.Bottom(), board.W)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderFailure(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCenteredColor(y, "The board could not be created", core.ColorBrightRed)
	if g.failed != nil {
		dst.DrawTextCentered(y+1, g.failed.Error())
	}
}

// renderHUD draws the title, move budget and memory count.
func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	x, w := area.X, area.W
	title := g.Title()
	dst.DrawTextColor(x+(w-len([]rune(title)))/2, area.Y, title, core.ColorPink)

	var moves string
	if left := g.eng.MovesLeft(); left < 0 {
		moves = fmt.Sprintf("Moves: %d", g.eng.MovesUsed())
	} else {
		moves = fmt.Sprintf("Moves left: %d", left)
	}
	dst.DrawText(x, area.Y+1, moves)

	found := fmt.Sprintf("Memories: %d/%d", len(g.revealed), g.eng.TagsTotal())
	dst.DrawTextColor(x+w-len(found), area.Y+1, found, core.ColorPink)
}

// renderBoard draws the displayed board with cursor, selection and playback marks.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	size := g.display.Size()
	dst.DrawBoxColor(board, core.ColorGray)

	cur, playing := g.player.current()
	marked := make(map[engine.Pos]bool, len(cur.marks))
	for _, p := range cur.marks {
		marked[p] = true
	}

	for row := range size {
		for col := range size {
			p := engine.P(row, col)
			x := board.X + 1 + col*cellWidth
			y := board.Y + 1 + row
			g.renderCell(dst, x, y, p, playing && marked[p], cur.phase)
		}
	}
}

func (g *Game) renderCell(dst *core.Screen, x, y int, p engine.Pos, marked bool, phase Phase) {
	cell := g.display.Get(p)

	switch {
	case p == g.cursor && !g.player.busy():
		dst.SetColor(x, y, '[', core.ColorBrightWhite)
		dst.SetColor(x+3, y, ']', core.ColorBrightWhite)
	case g.hasSel && p == g.selected:
		dst.SetColor(x, y, '<', core.ColorBrightYellow)
		dst.SetColor(x+3, y, '>', core.ColorBrightYellow)
	case g.hintLeft > 0 && (p == g.hint[0] || p == g.hint[1]) && (g.tick/8)%2 == 0:
		dst.SetColor(x, y, '(', core.ColorGreen)
		dst.SetColor(x+3, y, ')', core.ColorGreen)
	case marked && phase == PhaseRevert:
		dst.SetColor(x, y, 'x', core.ColorRed)
		dst.SetColor(x+3, y, 'x', core.ColorRed)
	}

	if cell.IsEmpty() {
		return
	}

	gl := kindGlyphs[cell.Kind]
	switch {
	case marked && phase == PhaseClear:
		if (g.tick/2)%2 == 0 {
			dst.SetColor(x+1, y, '✦', core.ColorBrightWhite)
		} else {
			dst.SetColor(x+1, y, gl.r, gl.color)
		}
	case marked && phase == PhaseSpawn && g.player.progress() < 0.5:
		dst.SetColor(x+1, y, '·', gl.color)
	default:
		dst.SetColor(x+1, y, gl.r, gl.color)
	}

	switch {
	case cell.IsSpecial():
		dst.SetColor(x+2, y, specialMarkers[cell.Special], gl.color)
	case cell.IsTagged():
		dst.SetColor(x+2, y, '•', core.ColorPink)
	}
}

// renderPanel lists the memories uncovered so far.
func (g *Game) renderPanel(dst *core.Screen, panel core.Rect) {
	dst.DrawBoxColor(panel, core.ColorPink)
	dst.DrawTextColor(panel.X+2, panel.Y, " Memories ", core.ColorPink)

	inner := panel.Inset(1)
	line := inner.Y
	for _, tag := range g.revealed {
		if line >= inner.Bottom() {
			break
		}
		dst.DrawTextColor(inner.X+1, line, "♡ "+truncate(g.captions[tag.Tag], inner.W-4), core.ColorBrightWhite)
		line++
	}
	for range g.eng.TagsRemaining() {
		if line >= inner.Bottom() {
			break
		}
		dst.DrawTextColor(inner.X+1, line, "♡ ???", core.ColorGray)
		line++
	}
}

func (g *Game) renderMessage(dst *core.Screen, x, y, w int) {
	cur, playing := g.player.current()
	switch {
	case playing && cur.phase == PhaseShuffle:
		dst.DrawTextColor(x, y, "No moves left, shuffling...", core.ColorYellow)
	case g.msgLeft > 0:
		dst.DrawTextColor(x, y, truncate(g.message, w), core.ColorBrightYellow)
	case g.lastChain > 1:
		dst.DrawTextColor(x, y, fmt.Sprintf("Last chain: x%d", g.lastChain), core.ColorGray)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.paused {
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}
	if g.player.busy() {
		return
	}

	found := fmt.Sprintf("Memories found: %d/%d", len(g.revealed), g.eng.TagsTotal())
	switch {
	case g.failed != nil:
		drawOverlay(dst, board, "BOARD ERROR", truncate(g.failed.Error(), board.W-4), "Press R to restart")
	case g.won:
		drawOverlay(dst, board, "ALL MEMORIES FOUND", found, "Press R to play again")
	case g.gameOver:
		drawOverlay(dst, board, "OUT OF MOVES", found, "Press R to restart")
	}
}

// drawOverlay draws a framed message centered on the board.
func drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := board.CenterIn(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorPink)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawText(cx-len([]rune(line))/2, box.Y+1+i, line)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
