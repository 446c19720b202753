package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"task-server/entities"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	priorityStyles = map[entities.Priority]lipgloss.Style{
		entities.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		entities.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		entities.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringPassword
	stepLoggingIn
	stepLoading
	stepBrowsing
)

type model struct {
	client       *apiClient
	step         step
	email        string
	currentInput string
	view         view
	tasks        []entities.Task
	cursor       int
	message      string
	quitting     bool
}

type loginSuccessMsg struct{}
type tasksLoadedMsg []entities.Task
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(client *apiClient) model {
	return model{
		client: client,
		step:   stepEnteringEmail,
		view:   views[0],
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func loginUser(client *apiClient, email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := client.login(email, password); err != nil {
			return errMsg{err}
		}
		return loginSuccessMsg{}
	}
}

func loadTasks(client *apiClient, v view) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.tasks(v)
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg(tasks)
	}
}

func (m model) inputting() bool {
	return m.step == stepEnteringEmail || m.step == stepEnteringPassword
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || (key == "q" && !m.inputting()) {
			m.quitting = true
			return m, tea.Quit
		}

		if m.inputting() {
			return m.updateInput(msg)
		}
		if m.step != stepBrowsing {
			return m, nil
		}

		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "r":
			m.step = stepLoading
			return m, loadTasks(m.client, m.view)
		default:
			if v, ok := viewForKey(key); ok {
				m.view = v
				m.step = stepLoading
				return m, loadTasks(m.client, v)
			}
		}

	case loginSuccessMsg:
		m.message = successStyle.Render("✓ Logged in as " + m.email)
		m.step = stepLoading
		return m, loadTasks(m.client, m.view)

	case tasksLoadedMsg:
		m.tasks = []entities.Task(msg)
		m.cursor = 0
		m.step = stepBrowsing

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		if m.step == stepLoggingIn {
			m.step = stepEnteringEmail
			m.email = ""
		} else {
			m.step = stepBrowsing
		}
	}
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		m.currentInput += string(msg.Runes)
		return m, nil
	}

	switch msg.String() {
	case "backspace":
		m.currentInput = dropLastRune(m.currentInput)
	case "enter":
		if m.currentInput == "" {
			return m, nil
		}
		if m.step == stepEnteringEmail {
			m.email = m.currentInput
			m.currentInput = ""
			m.step = stepEnteringPassword
			return m, nil
		}
		password := m.currentInput
		m.currentInput = ""
		m.step = stepLoggingIn
		m.message = "Logging in..."
		return m, loginUser(m.client, m.email, password)
	}
	return m, nil
}

func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func formatDue(t *time.Time) string {
	if t == nil {
		return "no due date"
	}
	return "due " + t.Local().Format("Mon Jan 2 15:04")
}

func renderTask(t entities.Task) string {
	style, ok := priorityStyles[t.Priority]
	if !ok {
		style = lipgloss.NewStyle()
	}
	line := fmt.Sprintf("%-40s %s  [%s]  %s", t.Title, style.Render(fmt.Sprintf("%-6s", t.Priority)), t.Status, formatDue(t.DueDate))
	if n := len(t.Checklist); n > 0 {
		line += dimStyle.Render(fmt.Sprintf("  (%d checklist items)", n))
	}
	return line
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Task Browser") + "\n")

	switch m.step {
	case stepEnteringEmail:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Email:") + "\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")
	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Password:") + "\n")
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", utf8.RuneCountInString(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")
	case stepLoggingIn:
		s.WriteString(m.message + "\n")
	case stepLoading:
		s.WriteString(fmt.Sprintf("Loading %s...\n", strings.ToLower(m.view.label)))
	case stepBrowsing:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render(fmt.Sprintf("%s (%d)", m.view.label, len(m.tasks))) + "\n\n")
		if len(m.tasks) == 0 {
			s.WriteString(dimStyle.Render("    nothing here") + "\n")
		}
		for i, t := range m.tasks {
			if m.cursor == i {
				s.WriteString(selectedStyle.Render("> "+renderTask(t)) + "\n")
			} else {
				s.WriteString(normalStyle.Render(renderTask(t)) + "\n")
			}
		}
		s.WriteString("\n" + dimStyle.Render("a all · t today · w week · m month · r refresh · ↑/↓ move · q quit") + "\n")
	}
	return s.String()
}

// defaultServerURL points at a server started with the default PORT unless
// TASKCTL_SERVER says otherwise.
func defaultServerURL() string {
	if v := os.Getenv("TASKCTL_SERVER"); v != "" {
		return v
	}
	return "http://localhost:5000"
}

func main() {
	server := flag.String("server", defaultServerURL(), "task server base URL")
	flag.Parse()

	p := tea.NewProgram(initialModel(newAPIClient(*server)))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
