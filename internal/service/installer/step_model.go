package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/folio/internal/providers/llm"
)

// ModelStep picks the gateway model from its catalog.
type ModelStep struct {
	list     list.Model
	loading  bool
	fetching bool
	err      error
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select AI Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:    l,
		loading: true,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return next
}

func (s *ModelStep) Skip(state *InstallState) bool {
	return state.Settings.GatewayAPIKey == ""
}

func fetchModels(apiKey string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		models, err := llm.NewGateway(llm.DefaultGatewayBaseURL, apiKey, "").Models(ctx)
		if err != nil {
			return errMsg(err)
		}

		items := make([]list.Item, 0, len(models))
		for _, mod := range models {
			title := mod.Name
			if title == "" {
				title = mod.ID
			}
			items = append(items, item{
				id:    mod.ID,
				title: title,
				desc:  fmt.Sprintf("ID: %s", mod.ID),
			})
		}
		return modelsMsg(items)
	}
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.loading && !s.fetching {
		s.fetching = true
		return s, fetchModels(state.Settings.GatewayAPIKey)
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		s.list.SetItems(msg)
		s.loading = false
		s.fetching = false
		return s, nil

	case errMsg:
		s.loading = false
		s.fetching = false
		s.err = msg
		return s, nil

	case tea.KeyMsg:
		if s.err != nil {
			switch msg.String() {
			case "enter":
				s.err = nil
				s.loading = true
				s.fetching = true
				return s, fetchModels(state.Settings.GatewayAPIKey)
			case "esc":
				// keep the configured default model
				return nil, nil
			}
			return s, nil
		}

		if msg.String() == "enter" {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)

			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.Settings.GatewayModel = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error fetching models: %v", s.err)) +
			"\n\nCheck your API key and internet connection.\n\n(press enter to retry, esc to keep the default model)\n"
	}
	if s.loading {
		return "Fetching models from the AI gateway...\n"
	}
	return s.list.View()
}
