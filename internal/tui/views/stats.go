package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/embli/daytrack/internal/service"
	"github.com/embli/daytrack/internal/stats"
	"github.com/embli/daytrack/internal/tui/ui"
)

// StatsModel is the model for the stats view
type StatsModel struct {
	services *service.Services
	user     string
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	summary stats.Summary
	loaded  bool
	err     error
}

// NewStatsModel creates a new stats view model
func NewStatsModel(services *service.Services, user string, styles ui.Styles, keys ui.KeyMap) StatsModel {
	return StatsModel{
		services: services,
		user:     user,
		styles:   styles,
		keys:     keys,
	}
}

// statsLoadedMsg is sent when stats are loaded
type statsLoadedMsg struct {
	summary stats.Summary
	err     error
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return m.loadStats()
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadStats()
		}

	case statsLoadedMsg:
		m.loaded = true
		m.err = msg.err
		m.summary = msg.summary

	case ui.EntrySavedMsg:
		return m, m.loadStats()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(fmt.Sprintf("Statistics for %s", m.user)))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	s := m.summary
	if s.EntryCount == 0 {
		b.WriteString(m.styles.StatLabel.Render("No entries yet"))
		return b.String()
	}

	b.WriteString(m.renderStatLine("Entries:", fmt.Sprintf("%d", s.EntryCount)))
	b.WriteString(m.renderStatLine("Edited:", fmt.Sprintf("%d", s.EditedCount)))
	b.WriteString(m.renderStatLine("Days with entries:", fmt.Sprintf("%d", s.DaysWithEntries)))
	if s.MostActiveDate != "" {
		b.WriteString(m.renderStatLine("Most active day:", fmt.Sprintf("%s (%d %s)",
			s.MostActiveDate, s.MostActiveCount, pluralize("entry", s.MostActiveCount))))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ViewTitle.Render("By Category"))
	b.WriteString("\n")
	for _, cc := range s.ByCategory {
		b.WriteString(fmt.Sprintf("  %-10s %s\n",
			cc.Category, m.renderBar(cc.Count, s.EntryCount)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ViewTitle.Render("By Time of Day"))
	b.WriteString("\n")
	for _, sc := range s.BySlot {
		b.WriteString(fmt.Sprintf("  %-10s %s\n",
			sc.Slot, m.renderBar(sc.Count, s.EntryCount)))
	}

	return b.String()
}

// renderBar renders a proportional bar with its count
func (m StatsModel) renderBar(count, total int) string {
	const barWidth = 20
	filled := 0
	if total > 0 {
		filled = count * barWidth / total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return m.styles.StatValue.Render(fmt.Sprintf("%s %d", bar, count))
}

// SetSize sets the view dimensions
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadStats creates a command to load stats
func (m StatsModel) loadStats() tea.Cmd {
	return func() tea.Msg {
		summary, _, err := m.services.Stats(m.user).Summary()
		return statsLoadedMsg{summary: summary, err: err}
	}
}

func (m StatsModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + " " + m.styles.StatValue.Render(value) + "\n"
}
