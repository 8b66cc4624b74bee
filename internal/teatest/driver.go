// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver stands in for tea.Program: every message goes straight through
// Update and any returned command is executed inline, its message fed back
// in turn, until the chain settles.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxChain bounds how many command round-trips a single Send may trigger.
const maxChain = 64

// cmdWait is how long a command may block before the driver drops it.
const cmdWait = 50 * time.Millisecond

// Driver feeds messages to a model and records whether it asked to quit.
type Driver struct {
	t     testing.TB
	model tea.Model
	quit  bool
}

// New wraps model. Options run in order before the model's Init command.
func New(t testing.TB, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(width, height int) Option {
	return func(d *Driver) {
		d.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
}

// Start runs the model's Init command.
func (d *Driver) Start() *Driver {
	d.t.Helper()
	d.run(d.model.Init(), 0)
	return d
}

// Send passes msg through Update and settles the resulting commands.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quit {
		return
	}
	next, cmd := d.model.Update(msg)
	d.model = next
	d.run(cmd, 0)
}

// Keys sends each rune of s as its own key press.
func (d *Driver) Keys(s string) {
	d.t.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends a special key such as tea.KeyEnd or tea.KeyCtrlC.
func (d *Driver) Press(k tea.KeyType) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// Model returns the current model value.
func (d *Driver) Model() tea.Model { return d.model }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Quitting reports whether a tea.Quit command has fired.
func (d *Driver) Quitting() bool { return d.quit }

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxChain {
		d.t.Logf("teatest: command chain exceeded %d steps", maxChain)
		return
	}

	msg, ok := exec(cmd)
	if !ok || msg == nil {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.quit = true
	default:
		next, follow := d.model.Update(msg)
		d.model = next
		d.run(follow, depth+1)
	}
}

func exec(cmd tea.Cmd) (tea.Msg, bool) {
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg, true
	case <-time.After(cmdWait):
		return nil, false
	}
}
