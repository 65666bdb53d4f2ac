package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sweeper/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.Clear()

	blank := RenderScreen(s)
	if strings.Contains(blank, "\x1b") {
		t.Error("blank screen should render without escape codes")
	}
	if blank != s.String() {
		t.Errorf("blank render = %q, expected %q", blank, s.String())
	}

	s.DrawTextColor(2, 1, "BOOM", core.ColorRed)
	out := RenderScreen(s)
	if !strings.Contains(out, "BOOM") {
		t.Errorf("render missing text:\n%s", out)
	}
	if lines := strings.Count(out, "\n") + 1; lines != 3 {
		t.Errorf("render has %d lines, expected 3", lines)
	}
}

func TestPaletteFallsBackToDefault(t *testing.T) {
	p := NewPalette(nil)
	if len(p) == 0 {
		t.Fatal("palette is empty")
	}
	missing := core.Color(250)
	if got, want := p.style(missing).Render("x"), p[core.ColorDefault].Render("x"); got != want {
		t.Errorf("style(%d) = %q, expected default %q", missing, got, want)
	}
}
