package installer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("folio installation interrupted")

// Step is one screen of the wizard. Update returns nil once the step is done.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// Skipper is implemented by steps that only apply to some answers.
type Skipper interface {
	Skip(state *InstallState) bool
}

func getSteps() []Step {
	return []Step{
		NewGatewayKeyStep(),
		NewModelStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg error
type nextMsg struct{}

func next() tea.Msg { return nextMsg{} }

type model struct {
	steps    []Step
	current  int
	state    *InstallState
	quitting bool
	width    int
	height   int
}

func initialModel() model {
	return model{
		steps: getSteps(),
		state: NewInstallState(),
	}
}

func (m model) done() bool {
	return m.current >= len(m.steps)
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return nil
	}
	return m.steps[m.current].Init()
}

// advance moves past the current step and any step that does not apply.
func (m model) advance() (model, tea.Cmd) {
	for {
		m.current++
		if m.done() {
			return m, tea.Quit
		}
		if s, ok := m.steps[m.current].(Skipper); ok && s.Skip(m.state) {
			continue
		}
		return m, m.steps[m.current].Init()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting || m.done() {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	step, cmd := m.steps[m.current].Update(msg, m.state, m.width, m.height)
	if step == nil {
		return m.advance()
	}
	m.steps[m.current] = step

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}
	if m.done() {
		return "Configuration complete!\n"
	}

	header := titleStyle.Render("Setting up Folio") + " " +
		hintStyle.Render(fmt.Sprintf("step %d/%d", m.current+1, len(m.steps)))
	return header + "\n\n" + m.steps[m.current].View(m.state)
}

// RunWizard runs the setup TUI and returns the collected settings.
func RunWizard() (*InstallState, error) {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := out.(model)
	if final.quitting || !final.done() {
		return nil, ErrInterrupted
	}
	return final.state, nil
}
