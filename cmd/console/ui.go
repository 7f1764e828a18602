package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/kingdom-council/internal/handlers"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

const (
	ChroniclerName  = "Chronicler"
	PlaceHolderText = "Submit a resolution, or /help for commands..."
)

// councilRoles drives the role selection modal. Order matters; it is
// the order the modal lists them in.
var councilRoles = []struct {
	ID          string
	Description string
}{
	{kingdom.RoleRegent, "Rules in the monarch's absence"},
	{kingdom.RoleTreasurer, "Keeper of the kingdom's coin"},
	{kingdom.RoleGeneral, "Commander of the armies"},
	{kingdom.RoleSpymaster, "Hears what others whisper"},
	{kingdom.RoleHistorian, "Remembers what others forget"},
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	role         string
	game         *handlers.GameView
	issue        *handlers.IssueView
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Transcript of everything shown in the log panel, unstyled
	// source text is re-wrapped on resize.
	transcript []transcriptEntry

	// Role selection state
	showRoleModal bool
	selectedRole  int

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type transcriptEntry struct {
	speaker string // "", "You", or a styled speaker name
	text    string
	isError bool
}

type gameCreatedMsg struct {
	game *handlers.GameView
	err  error
}

type gameRefreshMsg struct {
	game  *handlers.GameView
	issue *handlers.IssueView
	err   error
}

type resolveMsg struct {
	res *sim.ResolveResult
	err error
}

type actionMsg struct {
	res *sim.ActionResult
	err error
}

type regionMsg struct {
	regionID string
	view     *kingdom.RegionView
	err      error
}

type advanceMsg struct {
	res *sim.ResolveResult
	err error
}

type notesMsg struct {
	notes []kingdom.Note
	err   error
}

type noteSentMsg struct {
	note *kingdom.Note
	err  error
}

type progressTickMsg struct{}

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

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	chroniclerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
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

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:        cfg,
		client:        client,
		textarea:      ta,
		logViewport:   logVp,
		metaViewport:  metaVp,
		ready:         false,
		showRoleModal: true,
		selectedRole:  0,
	}
}

func (m *ConsoleUI) appendLog(speaker, text string) {
	m.transcript = append(m.transcript, transcriptEntry{speaker: speaker, text: text})
}

func (m *ConsoleUI) appendError(err error) {
	m.transcript = append(m.transcript, transcriptEntry{text: err.Error(), isError: true})
}

// writeLogContent rebuilds the log panel from the transcript for the
// current viewport width.
func (m *ConsoleUI) writeLogContent() {
	logWidth := m.logViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("KINGDOM COUNCIL") + "\n\n")
	content.WriteString("The council is in session. Resolve issues, work your office,\n")
	content.WriteString("and keep the kingdom from coming apart.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(logWidth-6, 10))) + "\n\n")

	for _, entry := range m.transcript {
		switch {
		case entry.isError:
			content.WriteString(errorStyle.Render("Error: "+entry.text) + "\n\n")
		case entry.speaker == "You":
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(entry.text, logWidth-6) + "\n\n")
		case entry.speaker != "":
			prefix := entry.speaker + ": "
			wrapped := wordwrap.String(entry.text, max(logWidth-len(prefix), 20))
			content.WriteString(chroniclerStyle.Render(prefix) + wrapped + "\n\n")
		default:
			content.WriteString(wordwrap.String(entry.text, logWidth) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("COUNCIL SESSION") + "\n\n")

	if m.game == nil {
		content.WriteString("No game in progress.\n")
		return content.String()
	}

	content.WriteString("Game ID:\n")
	content.WriteString(m.game.ID.String()[:8] + "...\n\n")

	content.WriteString("Role:\n")
	content.WriteString(m.role + "\n\n")

	content.WriteString(fmt.Sprintf("Round: %d\n", m.game.Round))
	content.WriteString(fmt.Sprintf("Status: %s\n\n", m.game.Status))

	if m.issue != nil && m.issue.Active {
		content.WriteString(speakerStyle.Render("Before the council:") + "\n")
		content.WriteString(m.issue.Title + "\n\n")
	} else {
		content.WriteString("The docket is clear.\n\n")
	}

	if len(m.game.Variables) > 0 {
		content.WriteString("Kingdom:\n")
		names := make([]string, 0, len(m.game.Variables))
		for k := range m.game.Variables {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			content.WriteString(fmt.Sprintf("• %s: %d\n", k, m.game.Variables[k]))
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /advance: Next round\n")

	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle role modal first
	if m.showRoleModal {
		return m.updateRoleModal(msg)
	}

	// Handle quit modal second
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.writeLogContent()
		m.metaViewport.SetContent(m.writeMetadata())
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			// Plain text resolves the active issue with that choice.
			if m.issue == nil || !m.issue.Active {
				m.appendLog("", "The docket is clear. Use /advance to move the round along.")
				m.writeLogContent()
				m.textarea.Reset()
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0
			m.appendLog("You", input)
			m.writeLogContent()
			return m, tea.Batch(m.resolveCurrentIssue(input), progressTick())
		}

	case gameRefreshMsg:
		if msg.err == nil {
			m.game = msg.game
			m.issue = msg.issue
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case resolveMsg:
		m.loading = false
		if msg.err != nil {
			m.appendError(msg.err)
		} else {
			m.appendLog(ChroniclerName, msg.res.Entry.NarrativeOutcome)
			for _, mv := range msg.res.Movements {
				m.appendLog("", mv.Reason)
			}
			if msg.res.NextIssue != nil {
				m.appendLog("", "A new issue comes before the council.")
			}
		}
		m.writeLogContent()
		return m, m.refreshGame()

	case actionMsg:
		m.loading = false
		if msg.err != nil {
			m.appendError(msg.err)
		} else {
			m.appendLog("", formatActionResult(msg.res))
		}
		m.writeLogContent()
		return m, m.refreshGame()

	case regionMsg:
		m.loading = false
		if msg.err != nil {
			m.appendError(msg.err)
		} else {
			m.appendLog("", formatRegionView(msg.regionID, msg.view))
		}
		m.writeLogContent()

	case advanceMsg:
		m.loading = false
		if msg.err != nil {
			m.appendError(msg.err)
		} else {
			m.appendLog("", "The round turns.")
			for _, mv := range msg.res.Movements {
				m.appendLog("", mv.Reason)
			}
			if msg.res.NextIssue != nil {
				m.appendLog("", "A new issue comes before the council.")
			}
		}
		m.writeLogContent()
		return m, m.refreshGame()

	case notesMsg:
		if msg.err != nil {
			m.appendError(msg.err)
		} else if len(msg.notes) == 0 {
			m.appendLog("", "No notes for you.")
		} else {
			for _, n := range msg.notes {
				m.appendLog("", fmt.Sprintf("Note from %s to %s: %s", n.SenderRole, n.RecipientRole, n.Content))
			}
		}
		m.writeLogContent()

	case noteSentMsg:
		if msg.err != nil {
			m.appendError(msg.err)
		} else {
			m.appendLog("", fmt.Sprintf("Note passed to the %s.", msg.note.RecipientRole))
		}
		m.writeLogContent()

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeLogContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	logWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(logWidth - 4)
}

func formatActionResult(res *sim.ActionResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Action %s carried out.", res.Record.ActionID))
	if res.NewValue != nil {
		b.WriteString(fmt.Sprintf(" New value: %d.", *res.NewValue))
	}
	for _, info := range res.Revealed {
		b.WriteString("\n")
		if info.Title != "" {
			b.WriteString(info.Title + ": ")
		}
		b.WriteString(info.Information)
	}
	return b.String()
}

func formatRegionView(regionID string, view *kingdom.RegionView) string {
	var b strings.Builder
	r := view.Region
	b.WriteString(fmt.Sprintf("%s: happiness %d, unrest %d, economy %d, church %d, military %d, brigands %d",
		r.Name, r.Happiness, r.Unrest, r.EconomicLevel, r.ChurchPower, r.MilitaryPower, r.BrigandPresence))
	if len(view.NPCs) > 0 {
		var names []string
		for _, n := range view.NPCs {
			names = append(names, n.Name)
		}
		b.WriteString("\nPresent: " + strings.Join(names, ", "))
	}
	for _, info := range view.RoleInfo {
		b.WriteString("\n")
		if info.Title != "" {
			b.WriteString(info.Title + ": ")
		}
		b.WriteString(info.Information)
	}
	return b.String()
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	m.textarea.Reset()

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /action <action_id> [region_id] - Use one of your role's actions
• /region <region_id> - Inspect a region
• /advance - Advance the round
• /note <role> <message> - Pass a private note
• /notes - Read your notes
• /help - Show this help
• Ctrl+C - Quit

Type anything else to resolve the issue before the council.
`
		m.appendLog("", titleStyle.Render("Help:")+helpText)
		m.writeLogContent()
		return m, nil

	case "/action":
		if len(fields) < 2 {
			m.appendLog("", "Usage: /action <action_id> [region_id]")
			m.writeLogContent()
			return m, nil
		}
		regionID := ""
		if len(fields) > 2 {
			regionID = fields[2]
		}
		m.loading = true
		m.progressTick = 0
		m.writeLogContent()
		return m, tea.Batch(m.runAction(fields[1], regionID), progressTick())

	case "/region":
		if len(fields) != 2 {
			m.appendLog("", "Usage: /region <region_id>")
			m.writeLogContent()
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.writeLogContent()
		return m, tea.Batch(m.inspectRegion(fields[1]), progressTick())

	case "/advance":
		m.loading = true
		m.progressTick = 0
		m.writeLogContent()
		return m, tea.Batch(m.advance(), progressTick())

	case "/note":
		if len(fields) < 3 {
			m.appendLog("", "Usage: /note <role> <message>")
			m.writeLogContent()
			return m, nil
		}
		recipient := fields[1]
		message := strings.Join(fields[2:], " ")
		return m, m.passNote(recipient, message)

	case "/notes":
		return m, m.readNotes()

	default:
		m.appendLog("", "Unknown command. Try /help.")
		m.writeLogContent()
		return m, nil
	}
}

func (m ConsoleUI) resolveCurrentIssue(choice string) tea.Cmd {
	issueID := m.issue.IssueID
	return func() tea.Msg {
		res, err := resolveIssue(m.client, m.config.APIBaseURL, m.game.ID, m.role, issueID, choice)
		return resolveMsg{res, err}
	}
}

func (m ConsoleUI) runAction(actionID, regionID string) tea.Cmd {
	return func() tea.Msg {
		res, err := invokeAction(m.client, m.config.APIBaseURL, m.game.ID, m.role, actionID, regionID)
		return actionMsg{res, err}
	}
}

func (m ConsoleUI) inspectRegion(regionID string) tea.Cmd {
	return func() tea.Msg {
		view, err := getRegion(m.client, m.config.APIBaseURL, m.game.ID, m.role, regionID)
		return regionMsg{regionID, view, err}
	}
}

func (m ConsoleUI) advance() tea.Cmd {
	return func() tea.Msg {
		res, err := advanceRound(m.client, m.config.APIBaseURL, m.game.ID)
		return advanceMsg{res, err}
	}
}

func (m ConsoleUI) passNote(recipient, message string) tea.Cmd {
	return func() tea.Msg {
		note, err := sendNote(m.client, m.config.APIBaseURL, m.game.ID, m.role, recipient, message)
		return noteSentMsg{note, err}
	}
}

func (m ConsoleUI) readNotes() tea.Cmd {
	return func() tea.Msg {
		notes, err := listNotes(m.client, m.config.APIBaseURL, m.game.ID, m.role)
		return notesMsg{notes, err}
	}
}

func (m ConsoleUI) refreshGame() tea.Cmd {
	return func() tea.Msg {
		game, err := getGame(m.client, m.config.APIBaseURL, m.game.ID)
		if err != nil {
			return gameRefreshMsg{nil, nil, err}
		}
		issue, err := getIssue(m.client, m.config.APIBaseURL, m.game.ID)
		return gameRefreshMsg{game, issue, err}
	}
}

func (m ConsoleUI) createNewGame() tea.Cmd {
	return func() tea.Msg {
		game, err := createGame(m.client, m.config.APIBaseURL)
		return gameCreatedMsg{game, err}
	}
}

func (m ConsoleUI) updateRoleModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case gameCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.game = msg.game
			m.showRoleModal = false
			if m.width > 0 && m.height > 0 {
				m.resizePanels()
			}
			if msg.game.CurrentIssue != nil {
				m.issue = &handlers.IssueView{
					IssueID:     msg.game.CurrentIssue.IssueID,
					Title:       msg.game.CurrentIssue.Title,
					Description: msg.game.CurrentIssue.Description,
					Round:       msg.game.Round,
					Active:      true,
				}
				m.appendLog("", fmt.Sprintf("An issue awaits the council: %s", msg.game.CurrentIssue.Title))
				if msg.game.CurrentIssue.Description != "" {
					m.appendLog("", msg.game.CurrentIssue.Description)
				}
			}
			m.writeLogContent()
			m.metaViewport.SetContent(m.writeMetadata())
			m.textarea.Focus()
			m.ready = true
		}
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedRole > 0 {
				m.selectedRole--
			}
		case tea.KeyDown:
			if m.selectedRole < len(councilRoles)-1 {
				m.selectedRole++
			}
		case tea.KeyEnter:
			m.role = councilRoles[m.selectedRole].ID
			m.loading = true
			return m, m.createNewGame()
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
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showRoleModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
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
	content.WriteString(modalTitleStyle.Render("Leave the Council?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to abandon the session?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderRoleModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to create game: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else if m.loading {
		content.WriteString(modalTitleStyle.Render("Convening the Council..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Seeding the kingdom..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Choose Your Seat"))
		content.WriteString("\n\n")

		for i, role := range councilRoles {
			line := fmt.Sprintf("%s: %s", role.ID, role.Description)
			if i == m.selectedRole {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + line))
			} else {
				content.WriteString(modalItemStyle.Render("  " + line))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showRoleModal {
		return m.renderRoleModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 10))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.logViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
