package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/case-engine/pkg/engine"
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	session       *GameSession
	logViewport   viewport.Model
	metaViewport  viewport.Model
	ready         bool
	width         int
	height        int
	err           error
	loading       bool
	narrativeLog  []string
	actions       []engine.Action
	selectedIndex int
	statusLine    string

	// Casefile selection state
	showCasefileModal bool
	casefiles         []string
	casefileMap       map[string]string
	selectedCasefile  int
	loadingCasefiles  bool

	// Quit confirmation state
	showQuitModal bool
}

type casefilesLoadedMsg struct {
	casefiles   []string
	casefileMap map[string]string
	err         error
}

type caseStartedMsg struct {
	briefing string
	err      error
}

type actionResultMsg struct {
	result  *engine.ActionResult
	saveErr error
}

var titleCaser = cases.Title(language.English)

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	selectedActionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("39")).
				Bold(true)

	discoveryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func NewConsoleUI(session *GameSession) ConsoleUI {
	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		session:           session,
		logViewport:       logVp,
		metaViewport:      metaVp,
		showCasefileModal: true,
		loadingCasefiles:  true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return m.loadCasefiles()
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showCasefileModal {
		return m.updateCasefileModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeLogContent()
		m.metaViewport.SetContent(m.writeMetadata())
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyUp:
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}
			return m, nil

		case tea.KeyDown:
			if m.selectedIndex < len(m.actions)-1 {
				m.selectedIndex++
			}
			return m, nil

		case tea.KeyEnter:
			if m.loading || len(m.actions) == 0 {
				return m, nil
			}
			action := m.actions[m.selectedIndex]
			m.loading = true
			m.appendLog(actionStyle.Render("> " + action.Label))
			m.writeLogContent()
			return m, m.performAction(action.ID)

		default:
			switch msg.String() {
			case "c":
				if err := clipboard.WriteAll(m.session.SessionID()); err != nil {
					m.statusLine = errorStyle.Render("Failed to copy session ID")
				} else {
					m.statusLine = promptStyle.Render("Session ID copied to clipboard")
				}
				m.metaViewport.SetContent(m.writeMetadata())
				return m, nil
			}
		}

	case actionResultMsg:
		m.loading = false
		if msg.result != nil {
			for _, name := range msg.result.Discoveries {
				m.appendLog(discoveryStyle.Render("Discovered: " + name))
			}
			m.appendLog(narratorStyle.Render(msg.result.Narrative))
		}
		if msg.saveErr != nil {
			m.appendLog(errorStyle.Render("Warning: " + msg.saveErr.Error()))
		}
		m.refreshActions()
		m.writeLogContent()
		m.metaViewport.SetContent(m.writeMetadata())
		return m, nil
	}

	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)
	return m, tea.Batch(vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	actionRows := len(m.actions) + 3
	if actionRows > 12 {
		actionRows = 12
	}
	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - actionRows - 5
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
}

func (m *ConsoleUI) appendLog(entry string) {
	m.narrativeLog = append(m.narrativeLog, entry)
}

func (m *ConsoleUI) refreshActions() {
	m.actions = m.session.Actions()
	if m.selectedIndex >= len(m.actions) {
		m.selectedIndex = 0
	}
}

// writeLogContent reformats the narrative log for the current width.
func (m *ConsoleUI) writeLogContent() {
	logWidth := m.logViewport.Width - 6
	if logWidth < 20 {
		logWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("CASE ENGINE") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", logWidth)) + "\n\n")

	for _, entry := range m.narrativeLog {
		content.WriteString(wordwrap.String(entry, logWidth) + "\n\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	stats := m.session.Stats()

	var content strings.Builder
	content.WriteString(titleStyle.Render("CASE STATUS") + "\n\n")

	content.WriteString("Session:\n")
	content.WriteString(m.session.SessionID()[:8] + "...\n\n")

	content.WriteString("Location:\n")
	content.WriteString(stats.Location + "\n\n")

	content.WriteString(fmt.Sprintf("Day %d, %s\n\n", stats.Day, stats.Time))

	content.WriteString(fmt.Sprintf("Reputation: %d\n", stats.Reputation))
	content.WriteString(fmt.Sprintf("Clues: %d\n", stats.CluesFound))
	content.WriteString(fmt.Sprintf("Items: %d\n", stats.ItemsCollected))
	content.WriteString(fmt.Sprintf("Visited: %d\n", stats.LocationsVisited))
	content.WriteString(fmt.Sprintf("Met: %d\n\n", stats.CharactersMet))

	if stats.GameOver {
		content.WriteString(titleStyle.Render("CASE CLOSED") + "\n")
		if stats.Ending != "" {
			content.WriteString("Ending: " + titleCaser.String(stats.Ending) + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• ↑/↓: Select action\n")
	content.WriteString("• Enter: Perform\n")
	content.WriteString("• c: Copy session ID\n")
	content.WriteString("• Ctrl+C: Quit\n")

	if m.statusLine != "" {
		content.WriteString("\n" + m.statusLine + "\n")
	}

	return content.String()
}

func (m ConsoleUI) renderActionList() string {
	if m.loading {
		return promptStyle.Render("  ...")
	}
	if len(m.actions) == 0 {
		return promptStyle.Render("  No actions available.")
	}

	var content strings.Builder
	for i, a := range m.actions {
		if i == m.selectedIndex {
			content.WriteString(selectedActionStyle.Render("▶ " + a.Label))
		} else {
			content.WriteString(actionStyle.Render("  " + a.Label))
		}
		content.WriteString("\n")
	}
	return content.String()
}

func (m ConsoleUI) View() string {
	if m.showCasefileModal {
		return m.renderCasefileModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", logWidth-4)),
			m.renderActionList(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

func (m ConsoleUI) loadCasefiles() tea.Cmd {
	return func() tea.Msg {
		titles, casefileMap, err := m.session.ListCasefiles()
		return casefilesLoadedMsg{titles, casefileMap, err}
	}
}

func (m ConsoleUI) startCase(filename string) tea.Cmd {
	return func() tea.Msg {
		briefing, err := m.session.StartCase(filename)
		return caseStartedMsg{briefing, err}
	}
}

func (m ConsoleUI) performAction(actionID string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.Perform(actionID)
		return actionResultMsg{result, err}
	}
}

func (m ConsoleUI) updateCasefileModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case casefilesLoadedMsg:
		m.loadingCasefiles = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.casefiles = msg.casefiles
			m.casefileMap = msg.casefileMap
		}

	case caseStartedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.showCasefileModal = false
		if msg.briefing != "" {
			m.appendLog(narratorStyle.Render(msg.briefing))
		}
		m.refreshActions()
		m.resize()
		m.writeLogContent()
		m.metaViewport.SetContent(m.writeMetadata())
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if m.loadingCasefiles || m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selectedCasefile > 0 {
				m.selectedCasefile--
			}
		case tea.KeyDown:
			if m.selectedCasefile < len(m.casefiles)-1 {
				m.selectedCasefile++
			}
		case tea.KeyEnter:
			if len(m.casefiles) > 0 && !m.loading {
				title := m.casefiles[m.selectedCasefile]
				m.loading = true
				return m, m.startCase(m.casefileMap[title])
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, nil
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved after every action.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep investigating"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderCasefileModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingCasefiles {
		content.WriteString(modalTitleStyle.Render("Loading Casefiles..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Press Ctrl+C to exit"))
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Opening Case..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Select a Case"))
		content.WriteString("\n\n")

		for i, title := range m.casefiles {
			if i == m.selectedCasefile {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + title))
			} else {
				content.WriteString(modalItemStyle.Render("  " + title))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}
