package teatest

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{}

// counter counts keys, answers "p" with a ping command and "q" with quit.
type counter struct {
	keys, pings, width int
}

func (c counter) Init() tea.Cmd { return func() tea.Msg { return pingMsg{} } }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case pingMsg:
		c.pings++
	case tea.KeyMsg:
		c.keys++
		switch msg.String() {
		case "p":
			return c, tea.Batch(nil, func() tea.Msg { return pingMsg{} })
		case "q":
			return c, tea.Quit
		}
	}
	return c, nil
}

func (c counter) View() string {
	return fmt.Sprintf("\x1b[1mkeys=%d pings=%d width=%d\x1b[0m", c.keys, c.pings, c.width)
}

func TestDriver(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	assert.Equal(t, "keys=0 pings=1 width=80", d.View())

	d.Press("p", "down", "enter")
	assert.Equal(t, "keys=3 pings=2 width=80", d.View())

	d.Press("q")
	assert.True(t, d.Quit)
	d.Press("x")
	assert.Equal(t, "keys=4 pings=2 width=80", d.View())
}

func TestKeyMsg(t *testing.T) {
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyPgDown}, KeyMsg(t, "pgdown"))
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, KeyMsg(t, "G"))
}
