// Package picker is the full-screen pattern chooser: it lists suggested
// patterns with live match counts against the library, previews sample
// matches and accepts a custom regex.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/immich-janitor/immich-janitor/internal/messages"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
)

// Mode is what the keyboard currently drives
type Mode int

const (
	BrowseMode Mode = iota
	EditMode
	ConfirmMode
)

// Entry is one selectable pattern
type Entry struct {
	Pattern     string
	Description string
	Custom      bool // Typed by the user

	Tested  bool
	Valid   bool
	Count   int
	Samples []string
	Error   string
}

// Model is the picker state
type Model struct {
	entries []Entry
	cursor  int
	mode    Mode
	input   textinput.Model

	corpus []models.Asset
	tester *pattern.Tester

	chosen    string
	done      bool
	cancelled bool

	width  int
	height int
}

// New creates a picker over suggestions, testing them against corpus
func New(suggestions []pattern.Suggestion, corpus []models.Asset) *Model {
	input := textinput.New()
	input.Placeholder = `Enter regex pattern, e.g. ^IMG_\d+\.jpg$`
	input.CharLimit = 256

	entries := make([]Entry, 0, len(suggestions))
	for _, s := range suggestions {
		entries = append(entries, Entry{
			Pattern:     s.Pattern,
			Description: s.Description,
		})
	}

	return &Model{
		entries: entries,
		input:   input,
		corpus:  corpus,
		tester:  pattern.NewTester(nil),
		width:   80,
		height:  24,
	}
}

// Init tests every suggestion in the background
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.entries))
	for _, e := range m.entries {
		cmds = append(cmds, m.testCmd(e.Pattern))
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the picker
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case messages.PatternTestedMsg:
		m.applyResult(msg)
		return m, nil
	case messages.PatternChosenMsg:
		m.chosen = msg.Pattern
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.cancel()
		}
		switch m.mode {
		case EditMode:
			return m.updateEdit(msg)
		case ConfirmMode:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == EditMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.moveCursorUp()
	case "down", "j":
		m.moveCursorDown()
	case "c", "/", "a":
		m.startEdit()
		return m, textinput.Blink
	case "enter":
		if e, ok := m.current(); ok && e.Tested && e.Valid {
			m.mode = ConfirmMode
		}
	case "q", "esc":
		return m.cancel()
	}
	return m, nil
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.confirmEdit()
	case "esc":
		m.cancelEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		e, _ := m.current()
		return m, chooseCmd(e)
	case "n", "N", "esc":
		m.mode = BrowseMode
	}
	return m, nil
}

// Result returns the confirmed pattern. ok is false when the user quit.
func (m *Model) Result() (string, bool) {
	return m.chosen, m.done && !m.cancelled
}

// Mode returns the current input mode
func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) current() (Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *Model) cancel() (tea.Model, tea.Cmd) {
	m.cancelled = true
	m.done = true
	return m, tea.Quit
}

func (m *Model) moveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	} else if len(m.entries) > 0 {
		m.cursor = len(m.entries) - 1
	}
}

func (m *Model) moveCursorDown() {
	if len(m.entries) == 0 {
		m.cursor = 0
		return
	}

	if m.cursor < len(m.entries)-1 {
		m.cursor++
	} else {
		m.cursor = 0
	}
}

func (m *Model) startEdit() {
	m.mode = EditMode
	m.input.SetValue("")
	if e, ok := m.current(); ok && e.Custom {
		m.input.SetValue(e.Pattern)
	}
	m.input.Focus()
}

// confirmEdit stores the typed pattern as the custom entry and tests it
func (m *Model) confirmEdit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.cancelEdit()
		return m, nil
	}

	entry := Entry{
		Pattern:     value,
		Description: "Custom pattern",
		Custom:      true,
	}

	index := m.customIndex()
	if index == -1 {
		m.entries = append(m.entries, entry)
		index = len(m.entries) - 1
	} else {
		m.entries[index] = entry
	}
	m.cursor = index

	m.cancelEdit()
	return m, m.testCmd(value)
}

func (m *Model) cancelEdit() {
	m.mode = BrowseMode
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) customIndex() int {
	for i, e := range m.entries {
		if e.Custom {
			return i
		}
	}
	return -1
}

// applyResult records a finished test on every entry with that pattern
func (m *Model) applyResult(msg messages.PatternTestedMsg) {
	for i := range m.entries {
		e := &m.entries[i]
		if e.Pattern != msg.Pattern {
			continue
		}
		e.Tested = true
		e.Valid = msg.Err == nil
		e.Count = msg.Count
		e.Samples = msg.Samples
		e.Error = ""
		if msg.Err != nil {
			e.Error = msg.Err.Error()
		}
	}
}

// testCmd runs a pattern against the corpus off the update loop
func (m *Model) testCmd(p string) tea.Cmd {
	tester, corpus := m.tester, m.corpus
	return func() tea.Msg {
		return TestPattern(tester, p, corpus)
	}
}

// TestPattern runs p against corpus and reports the outcome as a message
func TestPattern(tester *pattern.Tester, p string, corpus []models.Asset) messages.PatternTestedMsg {
	if _, err := tester.Compile(p); err != nil {
		return messages.PatternTestedMsg{Pattern: p, Err: err}
	}
	result := tester.Test(p, corpus)
	return messages.PatternTestedMsg{
		Pattern: p,
		Count:   result.Count(),
		Samples: result.Samples,
	}
}

func chooseCmd(e Entry) tea.Cmd {
	return func() tea.Msg {
		return messages.PatternChosenMsg{Pattern: e.Pattern, Count: e.Count}
	}
}
