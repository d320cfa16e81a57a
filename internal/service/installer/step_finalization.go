package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep turns the channel choice into transport flags
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return next
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	Finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

// Finalize sets the transport flags from the selected channels. Telegram
// stays off without a token.
func Finalize(state *InstallState) {
	set := &state.Settings

	set.EnableHTTP = boolString(state.Channels[ChannelHTTP])
	set.EnableCLI = boolString(state.Channels[ChannelCLI])
	set.EnableTelegram = boolString(state.Channels[ChannelTelegram] && set.TelegramToken != "")

	if set.EnableTelegram == "false" {
		set.TelegramToken = ""
	}
	if set.Debug == "" {
		set.Debug = "0"
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
