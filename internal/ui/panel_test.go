package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/travelgrid/internal/view"
)

func plain(t *testing.T) {
	t.Helper()
	SetTheme("classic")
	SetColorForcing(false, true)
	t.Cleanup(func() { SetColorForcing(false, false) })
}

func TestPanelString_PadsToWidestLine(t *testing.T) {
	plain(t)

	out := PanelString([]string{"ab", "Tailândia"})
	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, rows, 4)
	assert.Equal(t, "┌───────────┐", rows[0])
	assert.Equal(t, "│ ab        │", rows[1])
	assert.Equal(t, "│ Tailândia │", rows[2])
	assert.Equal(t, "└───────────┘", rows[3])
}

func TestBar(t *testing.T) {
	plain(t)

	assert.Equal(t, "██░░░ 2", Bar(2, 5, 5))
	assert.Equal(t, "░░░░░ 0", Bar(0, 0, 1))
	assert.Equal(t, "█████ 9", Bar(9, 3, 5))
}

func TestCardLines(t *testing.T) {
	plain(t)

	lines := CardLines(view.Card{ID: "x1", Title: "Sevilha", Category: "Cidade", Image: "u", Meta: "Espanha • 2022"})
	assert.Equal(t, []string{"Sevilha  [Cidade]", "Espanha • 2022", "img u", "id  x1"}, lines)
}

func TestOKAndFail(t *testing.T) {
	plain(t)
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(nil, nil)

	OK("added")
	Fail("boom")
	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ boom\n", errOut.String())
}
