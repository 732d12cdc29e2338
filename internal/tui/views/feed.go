package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/feed"
	"github.com/embli/daytrack/internal/service"
	"github.com/embli/daytrack/internal/tui/ui"
)

// feedMode represents the current mode of the feed view
type feedMode int

const (
	feedModeNormal feedMode = iota
	feedModeDelete
	feedModeSearch
)

// FeedModel is the model for the feed view
type FeedModel struct {
	services *service.Services
	user     string
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width      int
	height     int
	cursor     int // index into items, always on an entry item
	items      []feed.Item
	shortDates bool
	loading    bool
	err        error
	warning    string

	// Mode state
	mode feedMode

	// Search mode state
	searchInput   textinput.Model
	searchResults []entry.Entry
	searchCursor  int
	searched      bool
}

// NewFeedModel creates a new feed view model
func NewFeedModel(services *service.Services, user string, styles ui.Styles, keys ui.KeyMap) FeedModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search entries..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	return FeedModel{
		services:    services,
		user:        user,
		styles:      styles,
		keys:        keys,
		cursor:      -1,
		searchInput: searchInput,
	}
}

// feedLoadedMsg is sent when the feed is loaded
type feedLoadedMsg struct {
	items      []feed.Item
	shortDates bool
	warning    string
	err        error
}

// feedSearchResultsMsg is sent when search results are loaded
type feedSearchResultsMsg struct {
	results []entry.Entry
	err     error
}

// Init implements tea.Model
func (m FeedModel) Init() tea.Cmd {
	return m.loadFeed()
}

// Update implements tea.Model
func (m FeedModel) Update(msg tea.Msg) (FeedModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case feedModeDelete:
			return m.handleDeleteMode(msg)
		case feedModeSearch:
			return m.handleSearchMode(msg)
		}

		// Normal mode key handling
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadFeed()
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return ui.ComposeNewMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if e, ok := m.selectedEntry(); ok {
				return m, func() tea.Msg { return ui.EditEntryMsg{Entry: e} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if _, ok := m.selectedEntry(); ok {
				m.mode = feedModeDelete
			}
			return m, nil
		case key.Matches(msg, m.keys.Search):
			m.mode = feedModeSearch
			m.searchInput.SetValue("")
			m.searchInput.Focus()
			m.searched = false
			m.searchResults = nil
			m.searchCursor = 0
			return m, textinput.Blink
		}

	case feedLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.warning = msg.warning
		if msg.err == nil {
			m.items = msg.items
			m.shortDates = msg.shortDates
			m.clampCursor()
		}

	case ui.EntrySavedMsg:
		return m, m.loadFeed()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil

	case feedSearchResultsMsg:
		m.searched = true
		m.err = msg.err
		if msg.err == nil {
			m.searchResults = msg.results
			m.searchCursor = 0
		}
		return m, nil
	}

	// Update search input if in search mode
	if m.mode == feedModeSearch && m.searchInput.Focused() {
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m FeedModel) handleDeleteMode(msg tea.KeyMsg) (FeedModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if e, ok := m.selectedEntry(); ok {
			m.mode = feedModeNormal
			return m, m.deleteEntry(e.ID)
		}
	case "n", "N", "esc":
		m.mode = feedModeNormal
	}
	return m, nil
}

// handleSearchMode handles key events when in search mode
func (m FeedModel) handleSearchMode(msg tea.KeyMsg) (FeedModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select): // Enter
		if m.searchInput.Focused() {
			query := strings.TrimSpace(m.searchInput.Value())
			if query != "" {
				m.searchInput.Blur()
				return m, m.searchEntries(query)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Back): // Escape
		m.mode = feedModeNormal
		m.searchInput.Blur()
		m.searched = false
		m.searchResults = nil
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if !m.searchInput.Focused() && m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if !m.searchInput.Focused() && m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil
	case msg.String() == "/":
		if !m.searchInput.Focused() {
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	}

	// Pass other keys to search input if focused
	if m.searchInput.Focused() {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m FeedModel) View() string {
	switch m.mode {
	case feedModeDelete:
		return m.renderDeleteConfirm()
	case feedModeSearch:
		return m.renderSearchView()
	}

	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(fmt.Sprintf("Activity for %s", m.user)))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.warning != "" {
		b.WriteString(m.styles.Warning.Render(m.warning))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderFeed(m.items, m.styles, FeedRenderOptions{
		Width:      m.width,
		Cursor:     m.cursor,
		ShortDates: m.shortDates,
	}))

	if n := m.entryCount(); n > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("%d %s", n, pluralize("entry", n))))
	}

	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m FeedModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Entry"))
	b.WriteString("\n\n")

	if e, ok := m.selectedEntry(); ok {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this entry?"))
		b.WriteString("\n\n")
		b.WriteString(formatEntryRow(e, m.styles, m.width))
		b.WriteString("\n")
		b.WriteString(m.styles.StatLabel.Render("Date: "))
		b.WriteString(m.styles.StatValue.Render(e.Date))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.StatLabel.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// renderSearchView renders the search interface
func (m FeedModel) renderSearchView() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Search Entries"))
	b.WriteString("\n\n")

	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if !m.searched {
		b.WriteString(m.styles.StatLabel.Render("Enter a search term and press Enter"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press Esc to return to the feed"))
		return b.String()
	}

	if len(m.searchResults) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No results found"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.StatLabel.Render("Press / to search again, Esc to return"))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Found %d %s:\n\n", len(m.searchResults), pluralize("result", len(m.searchResults))))

	for i, e := range m.searchResults {
		line := m.styles.EntryTime.Render(e.Date) + formatEntryRow(e, m.styles, m.width)
		if i == m.searchCursor {
			line = m.styles.EntrySelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render("j/k navigate  / search again  Esc return"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *FeedModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m FeedModel) IsInputMode() bool {
	return m.mode == feedModeSearch && m.searchInput.Focused()
}

// selectedEntry returns the entry under the cursor, if any
func (m FeedModel) selectedEntry() (entry.Entry, bool) {
	if m.cursor >= 0 && m.cursor < len(m.items) && m.items[m.cursor].Kind == feed.ItemEntry {
		return m.items[m.cursor].Entry, true
	}
	return entry.Entry{}, false
}

// entryCount counts the entry items in the loaded feed
func (m FeedModel) entryCount() int {
	n := 0
	for _, item := range m.items {
		if item.Kind == feed.ItemEntry {
			n++
		}
	}
	return n
}

// moveCursor moves the cursor to the next entry item in the given
// direction, skipping headers. No-op when no entry exists that way.
func (m *FeedModel) moveCursor(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.items); i += dir {
		if m.items[i].Kind == feed.ItemEntry {
			m.cursor = i
			return
		}
	}
}

// clampCursor places the cursor on a valid entry item after a reload
func (m *FeedModel) clampCursor() {
	if m.cursor >= 0 && m.cursor < len(m.items) && m.items[m.cursor].Kind == feed.ItemEntry {
		return
	}
	m.cursor = -1
	m.moveCursor(1)
	if m.cursor == -1 && len(m.items) > 0 {
		// Walk from the end in case the collection shrank
		m.cursor = len(m.items)
		m.moveCursor(-1)
	}
}

// loadFeed creates a command to load the feed
func (m FeedModel) loadFeed() tea.Cmd {
	return func() tea.Msg {
		items, warning, err := m.services.Feed(m.user).View("")
		if err != nil {
			return feedLoadedMsg{err: err}
		}
		msg := feedLoadedMsg{
			items:      items,
			shortDates: m.services.Config.Get().DateFormat == "short",
		}
		if warning != nil {
			msg.warning = fmt.Sprintf("Stored data could not be read: %s", warning.Err)
		}
		return msg
	}
}

// deleteEntry creates a command to delete an entry and reload the feed
func (m FeedModel) deleteEntry(id string) tea.Cmd {
	return func() tea.Msg {
		if _, _, err := m.services.Entries(m.user).Delete(id); err != nil {
			return feedLoadedMsg{err: err}
		}
		return m.loadFeed()()
	}
}

// searchEntries creates a command to search entries
func (m FeedModel) searchEntries(query string) tea.Cmd {
	return func() tea.Msg {
		results, _, err := m.services.Search(m.user).Search(query)
		if err != nil {
			return feedSearchResultsMsg{err: err}
		}
		return feedSearchResultsMsg{results: results}
	}
}
