// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned commands are executed inline, so
// tests need no tea.Program, terminal or goroutine bookkeeping. Commands
// that block, such as timers, are abandoned after a short timeout.
package teatest

import (
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained commands one Send may execute.
const maxDepth = 64

const cmdTimeout = 10 * time.Millisecond

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// namedKeys maps the key names accepted by Press to bubbletea key types.
var namedKeys = map[string]tea.KeyType{
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"home":   tea.KeyHome,
	"end":    tea.KeyEnd,
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"space":  tea.KeySpace,
	"ctrl+c": tea.KeyCtrlC,
	"ctrl+d": tea.KeyCtrlD,
	"ctrl+u": tea.KeyCtrlU,
}

// Driver holds a model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quit is set once a command produced tea.QuitMsg. Later sends are
	// ignored, as a real program would have exited.
	Quit bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	d.drain(model.Init(), 0)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send passes msg through Update and executes the resulting commands.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.drain(cmd, 0)
}

// Press sends one key event per name. Names are single characters or one of
// up, down, left, right, pgup, pgdown, home, end, enter, esc, tab, space,
// ctrl+c, ctrl+d and ctrl+u.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		d.Send(KeyMsg(d.T, k))
	}
}

// View returns the rendered model without ANSI escapes.
func (d *Driver) View() string {
	return ansiPattern.ReplaceAllString(d.Model.View(), "")
}

// KeyMsg builds the key event for a Press name.
func KeyMsg(t *testing.T, name string) tea.KeyMsg {
	t.Helper()
	if kt, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: kt}
	}
	runes := []rune(name)
	if len(runes) != 1 {
		t.Fatalf("teatest: unknown key %q", name)
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: runes}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	switch msg := run(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			d.drain(c, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		next, nextCmd := d.Model.Update(msg)
		d.Model = next
		d.drain(nextCmd, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
