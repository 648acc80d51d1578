package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Makepad-fr/travelgrid/internal/view"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// visible width in terminal cells
func width(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// Bar renders n out of total as a fixed-width bar followed by the count.
func Bar(n, total, w int) string {
	if total <= 0 {
		total = 1
	}
	if w < 5 {
		w = 5
	}
	filled := int(float64(n) / float64(total) * float64(w))
	if filled > w {
		filled = w
	}
	t := Current()
	return strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, w-filled) + fmt.Sprintf(" %d", n)
}

// PanelString draws a framed box around lines using the current theme.
func PanelString(lines []string) string {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := width(ln); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	var b strings.Builder
	b.WriteString(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR + "\n")
	for _, ln := range lines {
		b.WriteString(t.V + " " + pad(ln) + " " + t.V + "\n")
	}
	b.WriteString(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR + "\n")
	return b.String()
}

// Panel prints PanelString(lines).
func Panel(lines []string) {
	fmt.Fprint(stdout, PanelString(lines))
}

// CardLines renders one card as a few text lines.
func CardLines(c view.Card) []string {
	t := Current()
	lines := []string{
		C(t.Title, c.Title) + "  " + C(t.Badge, "["+c.Category+"]"),
		C(t.Muted, c.Meta),
	}
	if c.Description != "" {
		lines = append(lines, c.Description)
	}
	lines = append(lines,
		Dim("img ")+Link(c.Image),
		Dim("id  "+c.ID),
	)
	return lines
}
