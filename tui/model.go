// Package tui is an interactive terminal browser over one parsed listing.
package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/yourusername/bucket-browser/output"
	"github.com/yourusername/bucket-browser/query"
	"github.com/yourusername/bucket-browser/types"
)

// chromeLines is the number of rows used by everything except the object rows
const chromeLines = 11

// Model holds the browser state. Every search or sort change re-runs the query.
type Model struct {
	listing *types.BucketListing
	search  string
	dir     types.SortDirection
	results []types.ObjectEntry
	offset  int
	width   int
	height  int
}

// NewModel creates a browser showing listing sorted in dir
func NewModel(listing *types.BucketListing, dir types.SortDirection) Model {
	m := Model{
		listing: listing,
		dir:     dir,
		width:   100,
		height:  30,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
	}
	return m, nil
}

// handleKey applies one key press, named the way tea.KeyPressMsg.String names it
func (m Model) handleKey(key string) (Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.search == "" {
			return m, tea.Quit
		}
		m.search = ""
		m.refresh()
	case "tab":
		if m.dir == types.Ascending {
			m.dir = types.Descending
		} else {
			m.dir = types.Ascending
		}
		m.refresh()
	case "backspace":
		if m.search != "" {
			_, size := utf8.DecodeLastRuneInString(m.search)
			m.search = m.search[:len(m.search)-size]
			m.refresh()
		}
	case "up":
		if m.offset > 0 {
			m.offset--
		}
	case "down":
		m.offset++
		m.clampOffset()
	case "pgdown":
		m.offset += m.visibleRows()
		m.clampOffset()
	case "pgup":
		m.offset -= m.visibleRows()
		m.clampOffset()
	case "space":
		m.search += " "
		m.refresh()
	default:
		if utf8.RuneCountInString(key) == 1 {
			m.search += key
			m.refresh()
		}
	}
	return m, nil
}

// refresh recomputes the visible objects from the listing
func (m *Model) refresh() {
	m.results = query.Query(m.listing, m.search, m.dir)
	m.offset = 0
}

func (m Model) visibleRows() int {
	rows := m.height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) clampOffset() {
	maxOffset := len(m.results) - m.visibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) View() tea.View {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(m.renderHeader()))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Search: ") + searchStyle.Render(m.search+"_"))
	sb.WriteString("   ")
	sb.WriteString(labelStyle.Render("Sort: ") + valueStyle.Render(m.sortLabel()))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderRows())
	sb.WriteString(helpStyle.Render("type to search • tab sort • ↑/↓ scroll • esc clear/quit • ctrl+c quit"))

	v := tea.NewView(frameStyle.Render(sb.String()))
	v.AltScreen = true
	return v
}

func (m Model) renderHeader() string {
	truncated := ""
	if m.listing.IsTruncated {
		truncated = labelStyle.Render("  (truncated)")
	}
	return titleStyle.Render(m.listing.Name) + "   " +
		labelStyle.Render("objects: ") + valueStyle.Render(fmt.Sprintf("%d/%d", len(m.results), m.listing.TotalCount)) + "   " +
		labelStyle.Render("size: ") + valueStyle.Render(output.FormatBytes(m.listing.TotalSizeBytes)) +
		truncated
}

func (m Model) sortLabel() string {
	if m.dir == types.Ascending {
		return "date ↑ oldest first"
	}
	return "date ↓ newest first"
}

func (m Model) renderRows() string {
	keyWidth := m.width - 60
	if keyWidth < 20 {
		keyWidth = 20
	}

	var sb strings.Builder
	sb.WriteString(columnStyle.Render(fmt.Sprintf("%-*s %10s  %-24s  %-14s %s", keyWidth, "KEY", "SIZE", "LAST MODIFIED", "CLASS", "TYPE")))
	sb.WriteString("\n")

	if len(m.results) == 0 {
		sb.WriteString(labelStyle.Render("No matching objects"))
		sb.WriteString("\n")
		return sb.String()
	}

	end := m.offset + m.visibleRows()
	if end > len(m.results) {
		end = len(m.results)
	}
	for _, obj := range m.results[m.offset:end] {
		fmt.Fprintf(&sb, "%-*s %10s  %-24s  %-14s %s\n",
			keyWidth, truncate(obj.Key, keyWidth),
			output.FormatBytes(obj.SizeBytes),
			truncate(output.OrDash(obj.LastModified), 24),
			output.StorageClassOrDefault(obj.StorageClass),
			obj.Extension,
		)
	}
	return sb.String()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
