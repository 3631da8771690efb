package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bucket-browser/types"
)

func testListing() *types.BucketListing {
	objects := []types.ObjectEntry{
		{Key: "logs/app.log", SizeBytes: 100, LastModified: "2023-03-01T00:00:00Z", Extension: "LOG"},
		{Key: "data/report.csv", SizeBytes: 2048, LastModified: "2021-01-01T00:00:00Z", Extension: "CSV"},
		{Key: "logs/old.log", SizeBytes: 10, LastModified: "2019-06-01T00:00:00Z", Extension: "LOG"},
	}
	return &types.BucketListing{
		Name:           "demo-bucket",
		Objects:        objects,
		TotalCount:     len(objects),
		TotalSizeBytes: 2158,
	}
}

func resultKeys(m Model) []string {
	out := make([]string, len(m.results))
	for i, r := range m.results {
		out[i] = r.Key
	}
	return out
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.handleKey(string(r))
	}
	return m
}

func TestNewModel_SortsDescending(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	assert.Equal(t, []string{"logs/app.log", "data/report.csv", "logs/old.log"}, resultKeys(m))
}

func TestHandleKey_SearchFilters(t *testing.T) {
	m := NewModel(testListing(), types.Descending)

	m = typeText(m, "LOGS")
	assert.Equal(t, "LOGS", m.search)
	assert.Equal(t, []string{"logs/app.log", "logs/old.log"}, resultKeys(m))

	m, _ = m.handleKey("backspace")
	assert.Equal(t, "LOG", m.search)
	assert.Len(t, m.results, 2)

	m = typeText(m, "S/O")
	assert.Equal(t, []string{"logs/old.log"}, resultKeys(m))
}

func TestHandleKey_SpaceAppends(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	m, _ = m.handleKey("space")
	assert.Equal(t, " ", m.search)
	// whitespace-only search matches everything
	assert.Len(t, m.results, 3)
}

func TestHandleKey_TabTogglesSort(t *testing.T) {
	m := NewModel(testListing(), types.Descending)

	m, _ = m.handleKey("tab")
	assert.Equal(t, types.Ascending, m.dir)
	assert.Equal(t, []string{"logs/old.log", "data/report.csv", "logs/app.log"}, resultKeys(m))

	m, _ = m.handleKey("tab")
	assert.Equal(t, types.Descending, m.dir)
}

func TestHandleKey_EscClearsThenQuits(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	m = typeText(m, "csv")
	require.Len(t, m.results, 1)

	m, cmd := m.handleKey("esc")
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.search)
	assert.Len(t, m.results, 3)

	_, cmd = m.handleKey("esc")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHandleKey_CtrlCQuits(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	m = typeText(m, "abc")
	_, cmd := m.handleKey("ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHandleKey_IgnoresNamedKeys(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	m, _ = m.handleKey("f5")
	m, _ = m.handleKey("backspace")
	assert.Equal(t, "", m.search)
}

func TestScrollingIsClamped(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	m.height = chromeLines + 2

	m, _ = m.handleKey("up")
	assert.Equal(t, 0, m.offset)

	m, _ = m.handleKey("down")
	assert.Equal(t, 1, m.offset)
	m, _ = m.handleKey("down")
	assert.Equal(t, 1, m.offset)

	m, _ = m.handleKey("pgup")
	assert.Equal(t, 0, m.offset)

	// a new search starts from the top
	m, _ = m.handleKey("down")
	m = typeText(m, "l")
	assert.Equal(t, 0, m.offset)
}

func TestUpdate_WindowSize(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	assert.Nil(t, cmd)

	got := updated.(Model)
	assert.Equal(t, 140, got.width)
	assert.Equal(t, 50, got.height)
}

func TestView(t *testing.T) {
	m := NewModel(testListing(), types.Descending)
	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Contains(t, v.Content, "demo-bucket")
	assert.Contains(t, v.Content, "logs/app.log")
	assert.Contains(t, v.Content, "2.0 KiB")
	assert.Contains(t, v.Content, "newest first")

	m = typeText(m, "nothing-matches")
	assert.Contains(t, m.View().Content, "No matching objects")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
