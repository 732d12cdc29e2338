package views

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/embli/daytrack/internal/config"
	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/feed"
	"github.com/embli/daytrack/internal/service"
	"github.com/embli/daytrack/internal/stats"
	"github.com/embli/daytrack/internal/timeutil"
	"github.com/embli/daytrack/internal/tui/ui"
)

const testUser = "alice"

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	dataDir := t.TempDir()
	svcs := service.NewServicesWithPaths(dataDir, filepath.Join(dataDir, "config.toml"), config.DefaultConfig())

	if err := svcs.User.Create(testUser); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return svcs
}

func setupTestServicesWithEntries(t *testing.T) *service.Services {
	t.Helper()
	svcs := setupTestServices(t)

	entries := svcs.Entries(testUser)
	seeds := []struct {
		date    string
		slot    entry.TimeOfDay
		cat     entry.Category
		emoji   string
		content string
	}{
		{"2026-08-28", entry.Morning, entry.CategoryEating, "🥗", "breakfast salad"},
		{"2026-08-28", entry.Evening, entry.CategorySports, "🏃", "evening run"},
		{"2026-08-27", entry.Night, entry.CategorySleeping, "😴", "slept well"},
	}
	for _, s := range seeds {
		if _, _, err := entries.Create(s.date, s.slot, s.cat, s.emoji, s.content); err != nil {
			t.Fatalf("failed to seed entry: %v", err)
		}
	}

	return svcs
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// loadFeedModel creates a FeedModel with the feed already loaded
func loadFeedModel(t *testing.T, svcs *service.Services) FeedModel {
	t.Helper()
	m := NewFeedModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected Init to return a load command")
	}
	m, _ = m.Update(cmd())
	return m
}

// Shared renderer tests

func TestRenderFeed_Empty(t *testing.T) {
	styles := ui.DefaultStyles()
	items := feed.Build(nil, "2026-08-28")

	out := RenderFeed(items, styles, FeedRenderOptions{Width: 80, Cursor: -1})

	if !strings.Contains(out, "No entries yet") {
		t.Errorf("expected empty feed placeholder, got %q", out)
	}
}

func TestRenderFeed_GroupsAndRows(t *testing.T) {
	styles := ui.DefaultStyles()
	entries := []entry.Entry{
		{ID: "a", Date: "2026-08-28", TimeOfDay: entry.Morning, Category: entry.CategoryEating, Emoji: "🥗", Content: "breakfast"},
		{ID: "b", Date: "2026-08-27", TimeOfDay: entry.Night, Category: entry.CategorySleeping, Emoji: "😴", Content: "slept"},
	}
	items := feed.Build(entries, "2026-08-28")

	out := RenderFeed(items, styles, FeedRenderOptions{Width: 80, Cursor: -1})

	if !strings.Contains(out, "Today") {
		t.Error("expected 'Today' header")
	}
	if !strings.Contains(out, "Yesterday") {
		t.Error("expected 'Yesterday' header")
	}
	if !strings.Contains(out, "breakfast") {
		t.Error("expected entry content in output")
	}
	if !strings.Contains(out, "🥗") {
		t.Error("expected emoji in output")
	}
}

func TestRenderFeed_ShortDates(t *testing.T) {
	styles := ui.DefaultStyles()
	entries := []entry.Entry{
		{ID: "a", Date: "2026-08-28", TimeOfDay: entry.Morning, Category: entry.CategoryEating, Emoji: "🥗", Content: "breakfast"},
	}
	items := feed.Build(entries, "2026-08-28")

	out := RenderFeed(items, styles, FeedRenderOptions{Width: 80, Cursor: -1, ShortDates: true})

	if !strings.Contains(out, "2026-08-28") {
		t.Error("expected raw date header with ShortDates")
	}
	if strings.Contains(out, "Today") {
		t.Error("did not expect 'Today' label with ShortDates")
	}
}

func TestFormatEntryRow_EditedMarker(t *testing.T) {
	styles := ui.DefaultStyles()

	e := entry.Entry{
		ID: "a", Date: "2026-08-28", TimeOfDay: entry.Morning,
		Category: entry.CategoryEating, Emoji: "🥗", Content: "breakfast",
	}
	row := formatEntryRow(e, styles, 80)
	if strings.Contains(row, "(edited)") {
		t.Error("did not expect edited marker on an unedited entry")
	}

	updated := e.CreatedAt
	e.UpdatedAt = &updated
	row = formatEntryRow(e, styles, 80)
	if !strings.Contains(row, "(edited)") {
		t.Error("expected edited marker on an edited entry")
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize("entry", 1); got != "entry" {
		t.Errorf("expected 'entry', got %q", got)
	}
	if got := pluralize("entry", 2); got != "entrys" {
		t.Errorf("expected 'entrys', got %q", got)
	}
}

// Feed view tests

func TestFeedModel_LoadsFeed(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	if len(m.items) == 0 {
		t.Fatal("expected feed items after load")
	}
	if m.items[0].Kind != feed.ItemHeader {
		t.Error("expected feed to start with a date header")
	}

	// Cursor should land on the first entry item
	if _, ok := m.selectedEntry(); !ok {
		t.Error("expected cursor on an entry item after load")
	}
}

func TestFeedModel_EmptyFeed(t *testing.T) {
	svcs := setupTestServices(t)
	m := loadFeedModel(t, svcs)

	view := m.View()
	if !strings.Contains(view, "No entries yet") {
		t.Errorf("expected empty feed placeholder, got %q", view)
	}
	if _, ok := m.selectedEntry(); ok {
		t.Error("did not expect a selected entry in an empty feed")
	}
}

func TestFeedModel_CursorSkipsHeaders(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	first, _ := m.selectedEntry()

	// Move down twice: second entry of the first group, then across the
	// next date header onto the third entry.
	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(keyMsg('j'))

	third, ok := m.selectedEntry()
	if !ok {
		t.Fatal("expected cursor on an entry after moving down")
	}
	if third.ID == first.ID {
		t.Error("expected cursor to have moved to a different entry")
	}
	if m.items[m.cursor].Kind != feed.ItemEntry {
		t.Error("cursor must never rest on a header")
	}

	// Moving past the end is a no-op
	before := m.cursor
	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(keyMsg('j'))
	if m.cursor < before {
		t.Error("cursor moved backwards unexpectedly")
	}
}

func TestFeedModel_NewKeyEmitsComposeNew(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	_, cmd := m.Update(keyMsg('n'))
	if cmd == nil {
		t.Fatal("expected command from 'n' key")
	}
	if _, ok := cmd().(ui.ComposeNewMsg); !ok {
		t.Error("expected ComposeNewMsg from 'n' key")
	}
}

func TestFeedModel_EditKeyEmitsEditEntry(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	selected, _ := m.selectedEntry()

	_, cmd := m.Update(keyMsg('e'))
	if cmd == nil {
		t.Fatal("expected command from 'e' key")
	}
	msg, ok := cmd().(ui.EditEntryMsg)
	if !ok {
		t.Fatal("expected EditEntryMsg from 'e' key")
	}
	if msg.Entry.ID != selected.ID {
		t.Errorf("expected edit of selected entry %s, got %s", selected.ID, msg.Entry.ID)
	}
}

func TestFeedModel_DeleteConfirmed(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	selected, _ := m.selectedEntry()

	m, _ = m.Update(keyMsg('d'))
	if m.mode != feedModeDelete {
		t.Fatal("expected delete confirmation mode after 'd'")
	}

	view := m.View()
	if !strings.Contains(view, "Are you sure") {
		t.Error("expected confirmation prompt in delete view")
	}

	m, cmd := m.Update(keyMsg('y'))
	if cmd == nil {
		t.Fatal("expected delete command after confirming")
	}
	m, _ = m.Update(cmd())

	// Entry must be gone from storage
	all, _, err := svcs.Entries(testUser).List()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range all {
		if e.ID == selected.ID {
			t.Error("expected entry to be deleted")
		}
	}
	if m.mode != feedModeNormal {
		t.Error("expected normal mode after delete")
	}
}

func TestFeedModel_DeleteCancelled(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	m, _ = m.Update(keyMsg('d'))
	m, _ = m.Update(keyMsg('n'))

	if m.mode != feedModeNormal {
		t.Error("expected normal mode after cancelling delete")
	}

	all, _, err := svcs.Entries(testUser).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected all 3 entries to survive, got %d", len(all))
	}
}

func TestFeedModel_SearchFlow(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	// Enter search mode
	m, _ = m.Update(keyMsg('/'))
	if m.mode != feedModeSearch {
		t.Fatal("expected search mode after '/'")
	}
	if !m.IsInputMode() {
		t.Error("expected input mode while the search input is focused")
	}

	// Type a query and submit
	for _, r := range "run" {
		m, _ = m.Update(keyMsg(r))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected search command on enter")
	}
	m, _ = m.Update(cmd())

	if !m.searched {
		t.Error("expected searched flag after results arrive")
	}
	if len(m.searchResults) != 1 {
		t.Fatalf("expected 1 search result, got %d", len(m.searchResults))
	}
	if m.searchResults[0].Content != "evening run" {
		t.Errorf("unexpected search result: %q", m.searchResults[0].Content)
	}

	view := m.View()
	if !strings.Contains(view, "Found 1 result") {
		t.Errorf("expected result count in view, got %q", view)
	}

	// Escape returns to the feed
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != feedModeNormal {
		t.Error("expected normal mode after esc")
	}
}

func TestFeedModel_ReloadsOnEntrySaved(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := loadFeedModel(t, svcs)

	_, cmd := m.Update(ui.EntrySavedMsg{})
	if cmd == nil {
		t.Error("expected reload command on EntrySavedMsg")
	}
}

// Compose view tests

func TestComposeModel_Defaults(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	if m.session.Category != entry.CategoryEating {
		t.Errorf("expected default category Eating, got %q", m.session.Category)
	}
	if m.session.TimeOfDay != entry.Morning {
		t.Errorf("expected default slot Morning, got %q", m.session.TimeOfDay)
	}
	if m.session.Emoji != "🥗" {
		t.Errorf("expected Eating's default emoji, got %q", m.session.Emoji)
	}
	if m.session.Date != timeutil.Today() {
		t.Errorf("expected today's date, got %q", m.session.Date)
	}
	if m.Editing() {
		t.Error("expected a fresh compose model to not be editing")
	}
}

func TestComposeModel_CycleCategorySnapsEmoji(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	// Focus starts on the category field; cycle right once
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	if m.session.Category != entry.CategoryToilette {
		t.Errorf("expected Toilette after cycling right, got %q", m.session.Category)
	}
	if m.session.Emoji != "💧" {
		t.Errorf("expected emoji to snap to the new category's default, got %q", m.session.Emoji)
	}
}

func TestComposeModel_CycleEmoji(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	// Move focus down to the emoji field and cycle
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.focus != fieldEmoji {
		t.Fatalf("expected emoji field focused, got %d", m.focus)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.session.Emoji != "🍔" {
		t.Errorf("expected second Eating emoji, got %q", m.session.Emoji)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.session.Emoji != "🥗" {
		t.Errorf("expected cycling back to the first emoji, got %q", m.session.Emoji)
	}
}

func TestComposeModel_FocusWrapsAndTogglesInputs(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	if m.IsInputMode() {
		t.Error("selector fields must not capture input")
	}

	// Down to emoji, slot, date
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.focus != fieldDate {
		t.Fatalf("expected date field focused, got %d", m.focus)
	}
	if !m.IsInputMode() {
		t.Error("expected input mode while the date input is focused")
	}

	// Up returns to a selector and releases input capture
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.IsInputMode() {
		t.Error("expected input capture released on a selector field")
	}

	// Up from the first field wraps to the last
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.focus != fieldContent {
		t.Errorf("expected wrap to content field, got %d", m.focus)
	}
}

func TestComposeModel_SaveCreatesEntry(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	// Move to the content field and type
	m.setFocus(fieldContent)
	for _, r := range "lunch" {
		m, _ = m.Update(keyMsg(r))
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected save command on enter")
	}
	msg := cmd()
	saved, ok := msg.(ui.EntrySavedMsg)
	if !ok {
		t.Fatalf("expected EntrySavedMsg, got %T", msg)
	}
	if saved.ID != "" {
		t.Errorf("expected empty id for a create, got %q", saved.ID)
	}

	all, _, err := svcs.Entries(testUser).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	if all[0].Content != "lunch" {
		t.Errorf("expected content 'lunch', got %q", all[0].Content)
	}
	if all[0].Category != entry.CategoryEating {
		t.Errorf("expected category Eating, got %q", all[0].Category)
	}
}

func TestComposeModel_SaveSnapshotsSession(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	m.setFocus(fieldContent)
	for _, r := range "first" {
		m, _ = m.Update(keyMsg(r))
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected save command on enter")
	}

	// Keystrokes arriving while the save command runs must not leak
	// into the saved entry.
	for _, r := range " oops" {
		m, _ = m.Update(keyMsg(r))
	}

	msg := cmd()
	if _, ok := msg.(ui.EntrySavedMsg); !ok {
		t.Fatalf("expected EntrySavedMsg, got %T", msg)
	}

	all, _, err := svcs.Entries(testUser).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	if all[0].Content != "first" {
		t.Errorf("expected content captured at enter, got %q", all[0].Content)
	}

	// The command leaves the session alone; it resets only when the
	// saved message is delivered back through Update.
	if m.session.Content != "first oops" {
		t.Errorf("expected in-flight session content intact, got %q", m.session.Content)
	}
	m, _ = m.Update(msg)
	if m.session.Content != "" {
		t.Errorf("expected session reset after EntrySavedMsg, got %q", m.session.Content)
	}
}

func TestComposeModel_SaveInvalidDate(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	m.session.Date = "not-a-date"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected save command on enter")
	}
	msg := cmd()
	errMsg, ok := msg.(composeSaveErrMsg)
	if !ok {
		t.Fatalf("expected composeSaveErrMsg, got %T", msg)
	}
	if errMsg.err == nil {
		t.Error("expected a save error for an invalid date")
	}

	m, _ = m.Update(msg)
	if !strings.Contains(m.View(), "Error:") {
		t.Error("expected error shown in view")
	}
}

func TestComposeModel_EditFlow(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	all, _, err := svcs.Entries(testUser).List()
	if err != nil {
		t.Fatal(err)
	}
	target := all[0]

	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.StartEdit(target)

	if !m.Editing() {
		t.Fatal("expected editing state after StartEdit")
	}
	if m.session.Content != target.Content {
		t.Errorf("expected content seeded from the entry, got %q", m.session.Content)
	}
	if !strings.Contains(m.View(), "Edit Entry") {
		t.Error("expected edit title in view")
	}

	// Save keeps the id and stamps the update
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	saved, ok := msg.(ui.EntrySavedMsg)
	if !ok {
		t.Fatalf("expected EntrySavedMsg, got %T", msg)
	}
	if saved.ID != target.ID {
		t.Errorf("expected saved id %s, got %s", target.ID, saved.ID)
	}

	got, _, err := svcs.Entries(testUser).Get(target.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.UpdatedAt == nil {
		t.Error("expected UpdatedAt stamped after edit save")
	}
}

func TestComposeModel_EditPreservesSharedEmoji(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	// 😴 belongs to both Mood and Sleeping
	m.StartEdit(entry.Entry{
		ID: "x", Date: "2026-08-28", TimeOfDay: entry.Night,
		Category: entry.CategorySleeping, Emoji: "😴", Content: "nap",
	})

	// One step left lands on Mood; the seeded emoji survives
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.session.Category != entry.CategoryMood {
		t.Fatalf("expected Mood after cycling left from Sleeping, got %q", m.session.Category)
	}
	if m.session.Emoji != "😴" {
		t.Errorf("expected seeded emoji preserved across a compatible category change, got %q", m.session.Emoji)
	}

	// A category that cannot hold it snaps to its default
	for m.session.Category != entry.CategoryEating {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.session.Emoji != "🥗" {
		t.Errorf("expected emoji snapped to Eating's default, got %q", m.session.Emoji)
	}
}

func TestComposeModel_EscCancelsEdit(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	all, _, err := svcs.Entries(testUser).List()
	if err != nil {
		t.Fatal(err)
	}

	m := NewComposeModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.StartEdit(all[0])

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.Editing() {
		t.Error("expected editing cancelled after esc")
	}
	if m.session.Content != "" {
		t.Errorf("expected session content reset, got %q", m.session.Content)
	}
}

// Stats view tests

func TestStatsModel_LoadsSummary(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := NewStatsModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected load command from Init")
	}
	m, _ = m.Update(cmd())

	if m.summary.EntryCount != 3 {
		t.Errorf("expected 3 entries in summary, got %d", m.summary.EntryCount)
	}

	view := m.View()
	if !strings.Contains(view, "Statistics for alice") {
		t.Error("expected title with user name")
	}
	if !strings.Contains(view, "By Category") {
		t.Error("expected category breakdown")
	}
	if !strings.Contains(view, "By Time of Day") {
		t.Error("expected slot breakdown")
	}
}

func TestStatsModel_Empty(t *testing.T) {
	svcs := setupTestServices(t)
	m := NewStatsModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(statsLoadedMsg{summary: stats.Summary{}})

	if !strings.Contains(m.View(), "No entries yet") {
		t.Error("expected empty placeholder in stats view")
	}
}

func TestStatsModel_ReloadsOnEntrySaved(t *testing.T) {
	svcs := setupTestServicesWithEntries(t)
	m := NewStatsModel(svcs, testUser, ui.DefaultStyles(), ui.DefaultKeyMap())

	_, cmd := m.Update(ui.EntrySavedMsg{})
	if cmd == nil {
		t.Error("expected reload command on EntrySavedMsg")
	}
}

// Config view tests

func TestConfigModel_LoadAndView(t *testing.T) {
	svcs := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(svcs, tp, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected load command from Init")
	}
	m, _ = m.Update(cmd())

	view := m.View()
	if !strings.Contains(view, "Configuration") {
		t.Error("expected view title")
	}
	if !strings.Contains(view, "default_user") {
		t.Error("expected default_user line")
	}
	if !strings.Contains(view, "date_format") {
		t.Error("expected date_format line")
	}
	if !strings.Contains(view, ui.DefaultTheme) {
		t.Error("expected the default theme name")
	}
}

func TestConfigModel_ThemeSelection(t *testing.T) {
	svcs := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(svcs, tp, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 24)

	m, _ = m.Update(m.Init()())

	// Open the selector
	m, _ = m.Update(keyMsg('t'))
	if !m.selectingTheme {
		t.Fatal("expected theme selector open after 't'")
	}

	// Navigate and select
	m, _ = m.Update(keyMsg('j'))
	cursorBefore := m.themeCursor
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected theme change request command")
	}

	msg, ok := cmd().(ui.ThemeChangeRequestMsg)
	if !ok {
		t.Fatal("expected ThemeChangeRequestMsg")
	}
	if msg.ThemeName != m.themes[cursorBefore] {
		t.Errorf("expected requested theme %q, got %q", m.themes[cursorBefore], msg.ThemeName)
	}
	if m.selectingTheme {
		t.Error("expected selector closed after selection")
	}
}

func TestConfigModel_ThemeSelectionCancel(t *testing.T) {
	svcs := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(svcs, tp, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(m.Init()())

	m, _ = m.Update(keyMsg('t'))
	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.selectingTheme {
		t.Error("expected selector closed after esc")
	}
	// Cursor snaps back to the current theme
	if m.themes[m.themeCursor] != m.themeName {
		t.Error("expected cursor reset to current theme after cancel")
	}
}
