package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/travelgrid/internal/view"
)

// cardItem adapts a view.Card to bubbles/list.Item
type cardItem struct {
	card view.Card
}

func (i cardItem) Title() string       { return i.card.Title }
func (i cardItem) Description() string { return i.card.Meta }
func (i cardItem) FilterValue() string { return i.card.Title }

// cardDelegate draws each card on three lines: title + badge, meta, description.
type cardDelegate struct{}

func (d cardDelegate) Height() int                               { return 3 }
func (d cardDelegate) Spacing() int                              { return 1 }
func (d cardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(cardItem)
	if !ok {
		return
	}
	c := it.card

	prefix := "  "
	title := titleStyle.Render(c.Title)
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	desc := c.Description
	if limit := m.Width() - 4; limit > 3 && len([]rune(desc)) > limit {
		desc = string([]rune(desc)[:limit-3]) + "..."
	}
	fmt.Fprintf(w, "%s%s  %s\n", prefix, title, badgeStyle.Render(c.Category))
	fmt.Fprintf(w, "  %s\n", mutedStyle.Render(c.Meta))
	fmt.Fprintf(w, "  %s", desc)
}

func cardItems(cards []view.Card) []list.Item {
	out := make([]list.Item, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardItem{card: c})
	}
	return out
}
