package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/degreeplan/internal/contract"
	"github.com/alexanderramin/degreeplan/internal/teatest"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseModel_LoadsAndRenders(t *testing.T) {
	calls := 0
	m := newBrowseModel("degreeplan · S1", func() (string, error) {
		calls++
		return "YEAR 1\nCS101", nil
	})

	assert.Contains(t, m.View(), "Loading plan")

	msg := m.Init()()
	require.IsType(t, planLoadedMsg{}, msg)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	updated, _ = updated.Update(msg)
	view := stripANSI(updated.View())

	assert.Contains(t, view, "degreeplan · S1")
	assert.Contains(t, view, "CS101")
	assert.Contains(t, view, "q quit")
	assert.Equal(t, 1, calls)
}

func TestBrowseModel_RefreshReloads(t *testing.T) {
	calls := 0
	m := newBrowseModel("t", func() (string, error) {
		calls++
		return "plan", nil
	})

	_, cmd := m.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	assert.IsType(t, planLoadedMsg{}, cmd())
	assert.Equal(t, 1, calls)
}

func TestBrowseModel_Quit(t *testing.T) {
	m := newBrowseModel("t", func() (string, error) { return "", nil })

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowseModel_ShowsLoadError(t *testing.T) {
	m := newBrowseModel("t", nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	updated, _ = updated.Update(planLoadedMsg{err: contract.AsEngineError(errStudentMissing())})

	assert.Contains(t, stripANSI(updated.View()), "STUDENT_NOT_FOUND")
}

func errStudentMissing() error {
	return &contract.EngineError{Code: contract.ErrStudentNotFound, Message: "Student not found: S1"}
}

func TestBrowseModel_ResizeKeepsContent(t *testing.T) {
	m := newBrowseModel("t", nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	updated, _ = updated.Update(planLoadedMsg{content: "line"})
	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 40, Height: 5})

	bm := updated.(browseModel)
	assert.Equal(t, 40, bm.vp.Width)
	assert.Equal(t, 3, bm.vp.Height)
	assert.Contains(t, stripANSI(bm.View()), "line")
}

func TestBrowseModel_DrivenSession(t *testing.T) {
	calls := 0
	lines := make([]string, 0, 40)
	for i := range 40 {
		lines = append(lines, fmt.Sprintf("row %02d", i))
	}
	m := newBrowseModel("degreeplan · S1", func() (string, error) {
		calls++
		return strings.Join(lines, "\n"), nil
	})

	d := teatest.New(t, m, teatest.WithSize(60, 12)).Start()
	require.Equal(t, 1, calls)

	view := stripANSI(d.View())
	assert.Contains(t, view, "row 00")
	assert.Contains(t, view, "[TOP]")

	d.Press(tea.KeyEnd)
	view = stripANSI(d.View())
	assert.Contains(t, view, "row 39")
	assert.Contains(t, view, "[END]")

	d.Keys("g")
	assert.Contains(t, stripANSI(d.View()), "[TOP]")

	d.Keys("r")
	assert.Equal(t, 2, calls)
	assert.False(t, d.Quitting())

	d.Keys("q")
	assert.True(t, d.Quitting())
}

func TestBrowseModel_DrivenLoadError(t *testing.T) {
	m := newBrowseModel("t", func() (string, error) { return "", errStudentMissing() })

	d := teatest.New(t, m, teatest.WithSize(80, 10)).Start()

	assert.Contains(t, stripANSI(d.View()), "Student not found: S1")
}
