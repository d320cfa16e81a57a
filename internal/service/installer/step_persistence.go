package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/folio/internal/config"
)

// SaveEnvStep writes the collected settings to the runtime .env file
type SaveEnvStep struct {
	err  error
	path string
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return next
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.path != "" || s.err != nil {
		return s, nil
	}

	path, err := WriteEnv(config.GetRuntimePath(), state.Settings)
	if err != nil {
		s.err = err
		return s, nil
	}
	s.path = path
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.path != "" {
		return fmt.Sprintf("Configuration saved to %s\n", s.path)
	}
	return "Saving configuration...\n"
}
