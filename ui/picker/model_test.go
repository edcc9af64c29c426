package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/immich-janitor/immich-janitor/internal/messages"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus(names ...string) []models.Asset {
	assets := make([]models.Asset, len(names))
	for i, n := range names {
		assets[i] = models.Asset{ID: n, OriginalFileName: n}
	}
	return assets
}

func newTestModel() *Model {
	suggestions := []pattern.Suggestion{
		{Pattern: `^IMG_\d+\.jpg$`, Description: "IMG numbers"},
		{Pattern: `.*\.jpg$`, Description: "All jpg"},
	}
	return New(suggestions, corpus("IMG_001.jpg", "IMG_002.jpg", "DSC_001.jpg", "clip.mp4"))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// testAll feeds the results Init would produce back into the model
func testAll(m *Model) {
	for _, e := range m.entries {
		m.Update(TestPattern(m.tester, e.Pattern, m.corpus))
	}
}

func TestTestPattern(t *testing.T) {
	tester := pattern.NewTester(nil)

	msg := TestPattern(tester, `^IMG_`, corpus("IMG_1.jpg", "DSC_1.jpg"))
	assert.NoError(t, msg.Err)
	assert.Equal(t, 1, msg.Count)
	assert.Equal(t, []string{"IMG_1.jpg"}, msg.Samples)

	msg = TestPattern(tester, `[unclosed`, corpus("IMG_1.jpg"))
	assert.Error(t, msg.Err)
	assert.Zero(t, msg.Count)
}

func TestInitReturnsCommand(t *testing.T) {
	assert.NotNil(t, newTestModel().Init())
}

func TestLiveCounts(t *testing.T) {
	m := newTestModel()
	assert.Contains(t, m.View(), "testing...")

	testAll(m)

	entries := m.entries
	assert.True(t, entries[0].Tested)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, 3, entries[1].Count)
	assert.Contains(t, m.View(), "(2 matches)")
	assert.Contains(t, m.View(), "IMG_001.jpg")
}

func TestCursorWraps(t *testing.T) {
	m := newTestModel()

	m.Update(key("down"))
	assert.Equal(t, 1, m.cursor)
	m.Update(key("j"))
	assert.Equal(t, 0, m.cursor)
	m.Update(key("up"))
	assert.Equal(t, 1, m.cursor)
	m.Update(key("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestSelectUntestedIsIgnored(t *testing.T) {
	m := newTestModel()
	m.Update(key("enter"))
	assert.Equal(t, BrowseMode, m.Mode())
}

func TestSelectAndConfirm(t *testing.T) {
	m := newTestModel()
	testAll(m)

	m.Update(key("down"))
	m.Update(key("enter"))
	require.Equal(t, ConfirmMode, m.Mode())
	assert.Contains(t, m.View(), "(3 matches)? [y/N]")

	_, cmd := m.Update(key("y"))
	require.NotNil(t, cmd)

	chosen, ok := cmd().(messages.PatternChosenMsg)
	require.True(t, ok)
	assert.Equal(t, `.*\.jpg$`, chosen.Pattern)
	assert.Equal(t, 3, chosen.Count)

	_, cmd = m.Update(chosen)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	got, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, `.*\.jpg$`, got)
	assert.Empty(t, m.View())
}

func TestConfirmDeclined(t *testing.T) {
	m := newTestModel()
	testAll(m)

	m.Update(key("enter"))
	m.Update(key("n"))
	assert.Equal(t, BrowseMode, m.Mode())

	_, ok := m.Result()
	assert.False(t, ok)
}

func TestCustomPattern(t *testing.T) {
	m := newTestModel()

	m.Update(key("c"))
	require.Equal(t, EditMode, m.Mode())

	m.input.SetValue(`^DSC_`)
	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, BrowseMode, m.Mode())

	entries := m.entries
	require.Len(t, entries, 3)
	assert.True(t, entries[2].Custom)
	assert.Equal(t, 2, m.cursor)
	assert.False(t, entries[2].Tested)

	m.Update(cmd())
	custom := m.entries[2]
	assert.True(t, custom.Valid)
	assert.Equal(t, 1, custom.Count)
	assert.Equal(t, []string{"DSC_001.jpg"}, custom.Samples)

	// A second custom pattern replaces the first
	m.Update(key("c"))
	assert.Equal(t, `^DSC_`, m.input.Value())
	m.input.SetValue(`mp4$`)
	m.Update(key("enter"))
	assert.Len(t, m.entries, 3)
	assert.Equal(t, `mp4$`, m.entries[2].Pattern)
}

func TestInvalidCustomPattern(t *testing.T) {
	m := newTestModel()

	m.Update(key("c"))
	m.input.SetValue(`(unclosed`)
	_, cmd := m.Update(key("enter"))
	m.Update(cmd())

	custom := m.entries[2]
	assert.True(t, custom.Tested)
	assert.False(t, custom.Valid)
	assert.NotEmpty(t, custom.Error)
	assert.Contains(t, m.View(), "(invalid)")

	m.Update(key("enter"))
	assert.Equal(t, BrowseMode, m.Mode())
}

func TestEditCancelAndEmpty(t *testing.T) {
	m := newTestModel()

	m.Update(key("c"))
	m.Update(key("esc"))
	assert.Equal(t, BrowseMode, m.Mode())

	m.Update(key("c"))
	m.input.SetValue("   ")
	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Len(t, m.entries, 2)
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel()
			_, cmd := m.Update(key(k))
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())

			_, ok := m.Result()
			assert.False(t, ok)
		})
	}
}

func TestNoSuggestions(t *testing.T) {
	m := New(nil, nil)
	assert.Contains(t, m.View(), "No suggestions")
	m.Update(key("enter"))
	assert.Equal(t, BrowseMode, m.Mode())
}
