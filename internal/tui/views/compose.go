package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/service"
	"github.com/embli/daytrack/internal/session"
	"github.com/embli/daytrack/internal/timeutil"
	"github.com/embli/daytrack/internal/tui/ui"
)

// composeField identifies the focused field of the compose form
type composeField int

const (
	fieldCategory composeField = iota
	fieldEmoji
	fieldTimeOfDay
	fieldDate
	fieldContent
	fieldCount
)

// ComposeModel is the model for the compose view. It wraps an editing
// session: selector fields cycle through the defined categories, emoji
// sets, and time slots; date and content are free text.
type ComposeModel struct {
	services *service.Services
	user     string
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	focus  composeField
	status string
	err    error

	session      *session.Session
	dateInput    textinput.Model
	contentInput textinput.Model
}

// NewComposeModel creates a new compose view model
func NewComposeModel(services *service.Services, user string, styles ui.Styles, keys ui.KeyMap) ComposeModel {
	dateInput := textinput.New()
	dateInput.Placeholder = "YYYY-MM-DD"
	dateInput.CharLimit = 10
	dateInput.Width = 14

	contentInput := textinput.New()
	contentInput.Placeholder = "What happened?"
	contentInput.CharLimit = 500
	contentInput.Width = 50

	sess := session.New(timeutil.Today())
	dateInput.SetValue(sess.Date)

	return ComposeModel{
		services:     services,
		user:         user,
		styles:       styles,
		keys:         keys,
		session:      sess,
		dateInput:    dateInput,
		contentInput: contentInput,
	}
}

// composeSaveErrMsg is sent when a save fails
type composeSaveErrMsg struct {
	err error
}

// Init implements tea.Model
func (m ComposeModel) Init() tea.Cmd {
	return nil
}

// StartNew resets the session to a fresh entry for today
func (m *ComposeModel) StartNew() {
	m.session.Reset(timeutil.Today())
	m.syncInputs()
	m.focus = fieldCategory
	m.status = ""
	m.err = nil
}

// StartEdit seeds the session from an existing entry
func (m *ComposeModel) StartEdit(e entry.Entry) {
	m.session.BeginEdit(e)
	m.syncInputs()
	m.focus = fieldCategory
	m.status = ""
	m.err = nil
}

// syncInputs refreshes the text inputs from the session state
func (m *ComposeModel) syncInputs() {
	m.dateInput.SetValue(m.session.Date)
	m.contentInput.SetValue(m.session.Content)
	m.dateInput.Blur()
	m.contentInput.Blur()
}

// Update implements tea.Model
func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case composeSaveErrMsg:
		m.err = msg.err
		return m, nil

	case ui.EntrySavedMsg:
		m.session.Commit(timeutil.Today())
		m.syncInputs()
		m.focus = fieldCategory
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// handleKey handles key events for the compose form
func (m ComposeModel) handleKey(msg tea.KeyMsg) (ComposeModel, tea.Cmd) {
	// Focus movement and save/cancel work from any field, including
	// while a text input is focused.
	switch msg.String() {
	case "up", "shift+tab":
		m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
		return m, nil
	case "down", "tab":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "enter":
		return m, m.save()
	case "esc":
		if m.session.Editing() {
			m.session.Cancel(timeutil.Today())
			m.syncInputs()
			m.focus = fieldCategory
			m.status = "Edit cancelled"
			m.err = nil
		}
		return m, nil
	}

	// Text fields swallow everything else
	if m.focus == fieldDate {
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		m.session.Date = m.dateInput.Value()
		return m, cmd
	}
	if m.focus == fieldContent {
		var cmd tea.Cmd
		m.contentInput, cmd = m.contentInput.Update(msg)
		m.session.Content = m.contentInput.Value()
		return m, cmd
	}

	// Selector fields cycle with left/right
	switch {
	case key.Matches(msg, m.keys.Left):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Right):
		m.cycle(1)
	case key.Matches(msg, m.keys.Up):
		m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
	case key.Matches(msg, m.keys.Down):
		m.setFocus((m.focus + 1) % fieldCount)
	}
	return m, nil
}

// setFocus moves focus to the given field, adjusting text input focus
func (m *ComposeModel) setFocus(f composeField) {
	m.focus = f
	m.dateInput.Blur()
	m.contentInput.Blur()
	switch f {
	case fieldDate:
		m.dateInput.Focus()
	case fieldContent:
		m.contentInput.Focus()
	}
}

// cycle advances the focused selector field by dir
func (m *ComposeModel) cycle(dir int) {
	switch m.focus {
	case fieldCategory:
		cats := entry.Categories
		idx := indexOfCategory(cats, m.session.Category)
		m.session.SetCategory(cats[(idx+dir+len(cats))%len(cats)])
	case fieldEmoji:
		set := m.session.Category.Emojis()
		idx := indexOfString(set, m.session.Emoji)
		m.session.Emoji = set[(idx+dir+len(set))%len(set)]
	case fieldTimeOfDay:
		slots := entry.TimesOfDay
		idx := indexOfSlot(slots, m.session.TimeOfDay)
		m.session.TimeOfDay = slots[(idx+dir+len(slots))%len(slots)]
	}
}

// save creates a command that persists the working selection. The
// session fields are copied before the closure is built so the command
// goroutine never reads the session while Update keeps writing it.
func (m ComposeModel) save() tea.Cmd {
	editing := m.session.Editing()
	editingID := m.session.EditingID()
	date := m.session.Date
	slot := m.session.TimeOfDay
	category := m.session.Category
	emoji := m.session.Emoji
	content := m.session.Content

	return func() tea.Msg {
		entries := m.services.Entries(m.user)

		var err error
		if editing {
			_, _, err = entries.Update(editingID, date, slot, category, emoji, content)
		} else {
			_, _, err = entries.Create(date, slot, category, emoji, content)
		}
		if err != nil {
			return composeSaveErrMsg{err: err}
		}
		return ui.EntrySavedMsg{ID: editingID}
	}
}

// View implements tea.Model
func (m ComposeModel) View() string {
	var b strings.Builder

	title := "New Entry"
	if m.session.Editing() {
		title = "Edit Entry"
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.renderSelector(fieldCategory, "Category", string(m.session.Category)))
	b.WriteString(m.renderSelector(fieldEmoji, "Emoji", m.session.Emoji))
	b.WriteString(m.renderSelector(fieldTimeOfDay, "Time", string(m.session.TimeOfDay)))
	b.WriteString(m.renderInput(fieldDate, "Date", m.dateInput))
	b.WriteString(m.renderInput(fieldContent, "Content", m.contentInput))

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Success.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "↑/↓ fields  ←/→ change  Enter save"
	if m.session.Editing() {
		hint += "  Esc cancel edit"
	}
	b.WriteString(m.styles.StatLabel.Render(hint))

	return b.String()
}

// renderSelector renders one cycling selector field
func (m ComposeModel) renderSelector(f composeField, label, value string) string {
	marker := "  "
	labelStyle := m.styles.FieldLabel
	if m.focus == f {
		marker = "▸ "
		labelStyle = m.styles.FieldSelected
	}
	return fmt.Sprintf("%s%s ‹ %s ›\n", marker, labelStyle.Render(label+":"), m.styles.FieldValue.Render(value))
}

// renderInput renders one text input field
func (m ComposeModel) renderInput(f composeField, label string, input textinput.Model) string {
	marker := "  "
	labelStyle := m.styles.FieldLabel
	if m.focus == f {
		marker = "▸ "
		labelStyle = m.styles.FieldSelected
	}
	return fmt.Sprintf("%s%s %s\n", marker, labelStyle.Render(label+":"), input.View())
}

// SetSize sets the view dimensions
func (m *ComposeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when a text input is capturing keys
func (m ComposeModel) IsInputMode() bool {
	return m.dateInput.Focused() || m.contentInput.Focused()
}

// Editing reports whether an edit session is in progress
func (m ComposeModel) Editing() bool {
	return m.session.Editing()
}

func indexOfCategory(cats []entry.Category, c entry.Category) int {
	for i, v := range cats {
		if v == c {
			return i
		}
	}
	return 0
}

func indexOfSlot(slots []entry.TimeOfDay, s entry.TimeOfDay) int {
	for i, v := range slots {
		if v == s {
			return i
		}
	}
	return 0
}

func indexOfString(set []string, s string) int {
	for i, v := range set {
		if v == s {
			return i
		}
	}
	return 0
}
