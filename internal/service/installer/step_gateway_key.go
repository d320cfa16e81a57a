package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// GatewayKeyStep collects the optional AI gateway API key
type GatewayKeyStep struct {
	input textinput.Model
}

func NewGatewayKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "optional, press enter to skip"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &GatewayKeyStep{
		input: ti,
	}
}

func (s *GatewayKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *GatewayKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.GatewayAPIKey = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *GatewayKeyStep) View(state *InstallState) string {
	return "Enter your AI Gateway API Key:\n\n" +
		s.input.View() + "\n\n" +
		"Without a key /api/chat answers 503.\n" +
		"(press enter to confirm)\n"
}
