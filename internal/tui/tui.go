// Package tui provides the Terminal User Interface for the daytrack application.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/embli/daytrack/internal/service"
	"github.com/embli/daytrack/internal/tui/ui"
	"github.com/embli/daytrack/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabFeed Tab = iota
	TabCompose
	TabStats
	TabConfig
)

var tabNames = []string{"Feed", "Compose", "Stats", "Config"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services
	user     string

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// User picker, shown when no active user could be resolved
	picking     bool
	userChoices []string
	userCursor  int

	// View models
	feedView    views.FeedModel
	composeView views.ComposeModel
	statsView   views.StatsModel
	configView  views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model for the given active user
func New(services *service.Services, user string) Model {
	// Initialize theme from config
	themeName := services.Config.Get().Theme
	themeProvider := ui.NewThemeProvider(themeName)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		user:          user,
		activeTab:     TabFeed,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		feedView:      views.NewFeedModel(services, user, styles, keys),
		composeView:   views.NewComposeModel(services, user, styles, keys),
		statsView:     views.NewStatsModel(services, user, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// NewUserPicker creates a TUI model that asks which profile to use
// before showing the feed.
func NewUserPicker(services *service.Services, users []string) Model {
	m := New(services, "")
	m.picking = true
	m.userChoices = users
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.picking {
		return nil
	}
	return m.feedView.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.picking {
		return m.updateUserPicker(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Views capturing text input block global keys
		capturingKeys := m.isCapturingKeys()

		// Handle global keys first
		switch {
		case key.Matches(msg, m.keys.Quit) && !capturingKeys:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturingKeys:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !capturingKeys && m.activeTab != TabCompose:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !capturingKeys && m.activeTab != TabCompose:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !capturingKeys:
			m.activeTab = TabFeed
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !capturingKeys:
			m.activeTab = TabCompose
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3) && !capturingKeys:
			m.activeTab = TabStats
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab4) && !capturingKeys:
			m.activeTab = TabConfig
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Update view dimensions
		contentHeight := m.height - 4 // Account for tabs and status bar
		m.feedView.SetSize(m.width, contentHeight)
		m.composeView.SetSize(m.width, contentHeight)
		m.statsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ComposeNewMsg:
		m.activeTab = TabCompose
		m.composeView.StartNew()
		return m, nil

	case ui.EditEntryMsg:
		m.activeTab = TabCompose
		m.composeView.StartEdit(msg.Entry)
		return m, nil

	case ui.EntrySavedMsg:
		// Broadcast so the feed and stats reload, then return to the feed
		m.composeView, _ = m.composeView.Update(msg)
		m.statsView, cmd = m.statsView.Update(msg)
		cmds = append(cmds, cmd)
		m.feedView, cmd = m.feedView.Update(msg)
		cmds = append(cmds, cmd)
		m.activeTab = TabFeed
		return m, tea.Batch(cmds...)

	case ui.ThemeChangeRequestMsg:
		// Handle theme change request
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()

		// Update styles
		m.styles = m.themeProvider.Styles()

		// Broadcast theme change to all views
		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.feedView, _ = m.feedView.Update(themeMsg)
		m.composeView, _ = m.composeView.Update(themeMsg)
		m.statsView, _ = m.statsView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		// Save theme to config
		return m, m.saveThemeConfig(newTheme)
	}

	// Update the active view
	switch m.activeTab {
	case TabFeed:
		m.feedView, cmd = m.feedView.Update(msg)
	case TabCompose:
		m.composeView, cmd = m.composeView.Update(msg)
	case TabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// updateUserPicker handles messages while the user picker is showing
func (m Model) updateUserPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.userCursor > 0 {
				m.userCursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.userCursor < len(m.userChoices)-1 {
				m.userCursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if len(m.userChoices) == 0 {
				return m, nil
			}
			return m.selectUser(m.userChoices[m.userCursor])
		}
	}
	return m, nil
}

// selectUser rebuilds the per-user views for the chosen profile and
// moves on to the feed.
func (m Model) selectUser(user string) (tea.Model, tea.Cmd) {
	m.picking = false
	m.user = user
	m.feedView = views.NewFeedModel(m.services, user, m.styles, m.keys)
	m.composeView = views.NewComposeModel(m.services, user, m.styles, m.keys)
	m.statsView = views.NewStatsModel(m.services, user, m.styles, m.keys)

	contentHeight := m.height - 4
	m.feedView.SetSize(m.width, contentHeight)
	m.composeView.SetSize(m.width, contentHeight)
	m.statsView.SetSize(m.width, contentHeight)

	return m, m.feedView.Init()
}

// renderUserPicker renders the profile selection screen
func (m Model) renderUserPicker() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Who is logging today?"))
	b.WriteString("\n\n")

	for i, name := range m.userChoices {
		if i == m.userCursor {
			b.WriteString(m.styles.EntrySelected.Render("▸ " + name))
		} else {
			b.WriteString(m.styles.EntryNormal.Render("  " + name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render("j/k move  Enter select  q quit"))

	return m.styles.App.Render(b.String())
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.picking {
		return m.renderUserPicker()
	}

	var b strings.Builder

	// Render tabs
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	// Render active view
	switch m.activeTab {
	case TabFeed:
		b.WriteString(m.feedView.View())
	case TabCompose:
		b.WriteString(m.composeView.View())
	case TabStats:
		b.WriteString(m.statsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	// Render status bar
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	// Help overlay
	if m.showHelp {
		return m.renderHelpOverlay(b.String())
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	parts = append(parts, m.renderKeyHelp("user", m.user))

	// View-specific keys
	switch m.activeTab {
	case TabFeed:
		parts = append(parts, m.renderKeyHelp("n", "new"))
		parts = append(parts, m.renderKeyHelp("e", "edit"))
		parts = append(parts, m.renderKeyHelp("d", "delete"))
		parts = append(parts, m.renderKeyHelp("/", "search"))
	case TabCompose:
		parts = append(parts, m.renderKeyHelp("↑/↓", "fields"))
		parts = append(parts, m.renderKeyHelp("←/→", "change"))
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
	case TabStats:
		parts = append(parts, m.renderKeyHelp("r", "refresh"))
	case TabConfig:
		parts = append(parts, m.renderKeyHelp("t", "themes"))
	}

	// Global keys
	parts = append(parts, m.renderKeyHelp("1-4", "views"))
	parts = append(parts, m.renderKeyHelp("?", "help"))
	parts = append(parts, m.renderKeyHelp("q", "quit"))

	content := strings.Join(parts, "  ")

	// Fill to width
	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isCapturingKeys checks if the current view is capturing keyboard input
func (m Model) isCapturingKeys() bool {
	switch m.activeTab {
	case TabFeed:
		return m.feedView.IsInputMode()
	case TabCompose:
		return m.composeView.IsInputMode()
	}
	return false
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabFeed:
		return m.feedView.Init()
	case TabCompose:
		return m.composeView.Init()
	case TabStats:
		return m.statsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = themeName
		_ = m.services.Config.Update(cfg)
		return nil
	}
}

// GetThemeProvider returns the theme provider for use by views
func (m Model) GetThemeProvider() *ui.ThemeProvider {
	return m.themeProvider
}

// renderHelpOverlay renders a help overlay on top of the current view
func (m Model) renderHelpOverlay(background string) string {
	// Build help content
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	// Global keys
	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-4    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	// View-specific keys
	switch m.activeTab {
	case TabFeed:
		help.WriteString(m.styles.StatLabel.Render("Feed:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n          New entry\n")
		help.WriteString("  e          Edit entry\n")
		help.WriteString("  d          Delete entry\n")
		help.WriteString("  /          Search entries\n")
		help.WriteString("  r          Refresh\n")
	case TabCompose:
		help.WriteString(m.styles.StatLabel.Render("Compose:"))
		help.WriteString("\n")
		help.WriteString("  ↑/↓        Move between fields\n")
		help.WriteString("  ←/→        Change selection\n")
		help.WriteString("  Enter      Save entry\n")
		help.WriteString("  Esc        Cancel edit\n")
	case TabStats:
		help.WriteString(m.styles.StatLabel.Render("Stats:"))
		help.WriteString("\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	// Create a styled box for help
	helpBox := m.styles.Dialog.Render(help.String())

	// Center the help box (simple approach - just return it with the app style)
	return m.styles.App.Render(helpBox)
}

// Run resolves the active user and starts the TUI application. When
// several profiles exist and none is the default, a picker is shown
// instead of failing.
func Run(services *service.Services, flagUser string) error {
	var model Model

	user, err := services.ResolveUser(flagUser)
	switch {
	case err == nil:
		model = New(services, user)
	case errors.Is(err, service.ErrNoActiveUser):
		users, _, uerr := services.User.Users()
		if uerr != nil || len(users) == 0 {
			return err
		}
		model = NewUserPicker(services, users)
	default:
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
