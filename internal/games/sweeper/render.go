package sweeper

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/minefield"
)

// dangerColors maps a neighbour count to its digit color.
var dangerColors = [minefield.MaxDanger + 1]core.Color{
	0: core.ColorDefault,
	1: core.ColorBrightBlue,
	2: core.ColorGreen,
	3: core.ColorBrightRed,
	4: core.ColorMagenta,
	5: core.ColorOrange,
	6: core.ColorCyan,
	7: core.ColorWhite,
	8: core.ColorGray,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	rows, cols := g.machine.Dimensions()
	box := core.NewRect(g.boardX-1, g.boardY-1, cols*tileWidth+2, rows+2)

	g.renderHUD(dst, box)
	dst.DrawBox(box, core.ColorGray)
	g.renderTiles(dst)
	g.renderBlast(dst)
	g.renderOverlays(dst, box)

	dst.DrawTextCentered(box.Bottom(), g.Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	rows, cols := g.machine.Dimensions()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorDefault)
	need := fmt.Sprintf("Need %dx%d for a %dx%d board", cols*tileWidth+2, rows+hudHeight+3, cols, rows)
	dst.DrawTextCentered(y, need, core.ColorGray)
	dst.DrawTextCentered(y+1, "Resize the terminal or pick an easier difficulty", core.ColorGray)
}

// renderHUD draws the title and the round status.
func (g *Game) renderHUD(dst *core.Screen, box core.Rect) {
	dst.DrawTextCentered(0, "S W E E P E R", core.ColorBrightWhite)

	mines := g.machine.BombCount()
	if g.machine.CurrentStage() == StageNewGame {
		mines = g.machine.ConfiguredMines()
	}
	rows, cols := g.machine.Dimensions()
	left := fmt.Sprintf("Mines: %d", mines)
	right := fmt.Sprintf("Cleared: %d/%d", g.machine.Revealed(), rows*cols-mines)

	dst.DrawTextColor(box.X, 1, left, core.ColorBrightRed)
	x := box.Right() - len(right)
	if x < box.X+len(left)+1 {
		x = box.X + len(left) + 1
	}
	dst.DrawTextColor(x, 1, right, core.ColorBrightGreen)
}

// renderTiles draws every tile. Mines are only drawn once the round is over.
func (g *Game) renderTiles(dst *core.Screen) {
	stage := g.machine.CurrentStage()
	detonated, hasDetonation := g.machine.Detonated()
	board := g.machine.Board()

	for idx, cell := range board {
		r := g.TileRect(idx)
		ch, color := tileGlyph(cell, stage.IsTerminal())
		if hasDetonation && idx == detonated {
			ch, color = '✸', core.ColorBrightRed
		}
		dst.SetColor(r.X+1, r.Y, ch, color)
	}

	if !stage.IsTerminal() && !g.intro {
		r := g.TileRect(g.cursor)
		dst.SetColor(r.X, r.Y, '[', core.ColorBrightYellow)
		dst.SetColor(r.Right()-1, r.Y, ']', core.ColorBrightYellow)
	}
}

// tileGlyph returns the rune and color for a tile.
func tileGlyph(cell minefield.TileKind, showMines bool) (rune, core.Color) {
	switch {
	case cell.IsRevealed() && cell.Count == 0:
		return '·', core.ColorGray
	case cell.IsRevealed():
		return rune('0' + cell.Count), dangerColors[cell.Count]
	case cell.IsMine() && showMines:
		return '*', core.ColorRed
	default:
		return '■', core.ColorBlue
	}
}

// renderBlast draws an expanding ring around the detonated mine.
func (g *Game) renderBlast(dst *core.Screen) {
	detonated, ok := g.machine.Detonated()
	if !ok || g.blastTick < 0 || g.blastTick >= blastTicks {
		return
	}

	rows, cols := g.machine.Dimensions()
	center := core.Point{X: detonated % cols, Y: detonated / cols}
	radius := g.blastTick/4 + 1
	color := core.ColorBrightYellow
	if g.blastTick > blastTicks/2 {
		color = core.ColorOrange
	}

	for row := center.Y - radius; row <= center.Y+radius; row++ {
		for col := center.X - radius; col <= center.X+radius; col++ {
			if row < 0 || row >= rows || col < 0 || col >= cols {
				continue
			}
			// Chebyshev ring
			if max(core.Abs(row-center.Y), core.Abs(col-center.X)) != radius {
				continue
			}
			r := g.TileRect(row*cols + col)
			dst.SetColor(r.X+1, r.Y, '#', color)
		}
	}
}

// renderOverlays draws the start, pause, kill and win screens.
func (g *Game) renderOverlays(dst *core.Screen, box core.Rect) {
	cx, cy := box.Center()

	if g.paused {
		g.drawOverlay(dst, cx, cy, core.ColorBrightWhite, "PAUSED", "Press P to resume")
		return
	}

	switch g.machine.CurrentStage() {
	case StageNewGame:
		if g.intro {
			count := "There are " + strconv.Itoa(g.machine.ConfiguredMines()) + " bombs"
			g.drawOverlay(dst, cx, cy, core.ColorBrightWhite, "CLEAR THE FIELD", count, "Caution: Don't shake the bombs!")
		}
	case StageKillScreen:
		if g.blastTick >= 0 && g.blastTick < blastTicks {
			return // let the explosion play out first
		}
		g.drawOverlay(dst, cx, cy, core.ColorBrightRed, "B O O M", "Press R to restart")
	case StageWinScreen:
		msg := "Please enjoy life"
		if g.machine.HiddenDangerCount() > 0 {
			msg = "Thanks for being careful"
		}
		g.drawOverlay(dst, cx, cy, core.ColorBrightGreen, "YOU WIN", msg, "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), color)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColor(x, boxY+1+i, line, color)
	}
}
