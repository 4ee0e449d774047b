package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/teatest"
)

func longContent(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func sized(t *testing.T, m browseModel, w, h int) browseModel {
	t.Helper()
	model, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return model.(browseModel)
}

func TestBrowseModel_LoadingUntilSized(t *testing.T) {
	m := newBrowseModel("Demo", "content")
	assert.Contains(t, stripANSI(m.View()), "Loading")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	assert.False(t, model.(browseModel).ready)
}

func TestBrowseModel_Scroll(t *testing.T) {
	m := sized(t, newBrowseModel("Demo", longContent(50)), 80, 13)
	require.True(t, m.ready)
	assert.Equal(t, 10, m.vp.Height)

	view := stripANSI(m.View())
	assert.Contains(t, view, "DEMO")
	assert.Contains(t, view, "line 1")
	assert.Contains(t, view, "[TOP]")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m = model.(browseModel)
	assert.True(t, m.vp.AtBottom())
	view = stripANSI(m.View())
	assert.Contains(t, view, "line 50")
	assert.Contains(t, view, "[END]")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	m = model.(browseModel)
	assert.True(t, m.vp.AtTop())

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(browseModel)
	assert.Equal(t, 1, m.vp.YOffset)
	assert.Contains(t, stripANSI(m.View()), "%]")
}

func TestBrowseModel_Resize(t *testing.T) {
	m := sized(t, newBrowseModel("Demo", longContent(5)), 80, 20)
	m = sized(t, m, 40, 2)
	assert.Equal(t, 40, m.vp.Width)
	assert.Equal(t, 1, m.vp.Height)
}

func TestBrowseModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := newBrowseModel("Demo", "x").Update(k)
		require.NotNil(t, cmd, k.String())
		assert.Equal(t, tea.Quit(), cmd(), k.String())
	}
}

func TestBrowseModel_Driver(t *testing.T) {
	d := teatest.New(t, newBrowseModel("Demo", longContent(30)), teatest.WithSize(60, 8))
	assert.Contains(t, d.View(), "line 5")
	assert.NotContains(t, d.View(), "line 6")

	d.Press("pgdown")
	assert.Contains(t, d.View(), "line 10")

	d.Press("end")
	assert.Contains(t, d.View(), "line 30")
	assert.Contains(t, d.View(), "[END]")

	d.Press("q")
	assert.True(t, d.Quit)
}
