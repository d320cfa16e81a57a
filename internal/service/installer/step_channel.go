package installer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var channels = []string{ChannelHTTP, ChannelTelegram, ChannelCLI}

// ChannelStep toggles the transports Folio starts with. The HTTP API is on
// unless deselected.
type ChannelStep struct {
	cursor  int
	checked map[string]bool
	warn    bool
}

func NewChannelStep() Step {
	return &ChannelStep{
		checked: map[string]bool{ChannelHTTP: true},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(channels)-1)
	case " ", "space", "x":
		name := channels[s.cursor]
		s.checked[name] = !s.checked[name]
		s.warn = false
	case "enter":
		selected := make(map[string]bool)
		for _, name := range channels {
			if s.checked[name] {
				selected[name] = true
			}
		}
		if len(selected) == 0 {
			s.warn = true
			return s, nil
		}
		state.Channels = selected
		return nil, nil
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Where should visitors reach Folio?\n\n")
	for i, name := range channels {
		box := "[ ]"
		if s.checked[name] {
			box = "[x]"
		}
		line := box + " " + name
		if i == s.cursor {
			b.WriteString(selStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	if s.warn {
		b.WriteString("\n" + errorStyle.Render("Select at least one channel.") + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("space to toggle, enter to confirm, ctrl+c to quit") + "\n")
	return b.String()
}
