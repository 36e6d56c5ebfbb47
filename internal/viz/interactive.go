package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/reactor"
	"go.uber.org/zap"
)

const (
	stateMenu = iota
	stateRoom
)

// App lets the operator pick a preset and then hands the terminal to the
// control room for that preset.
type App struct {
	state   int
	cursor  int
	presets []string
	room    Model
	log     *zap.Logger
	err     error
}

func NewApp(log *zap.Logger) App {
	if log == nil {
		log = zap.NewNop()
	}
	return App{presets: config.ListPresets(), log: log}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateRoom {
		next, cmd := a.room.Update(msg)
		a.room = next.(Model)
		return a, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		room, err := a.launch(a.presets[a.cursor])
		if err != nil {
			a.err = err
			return a, nil
		}
		a.room, a.state = room, stateRoom
		return a, a.room.Init()
	}
	return a, nil
}

func (a App) launch(name string) (Model, error) {
	cfg, err := config.GetPreset(name)
	if err != nil {
		return Model{}, err
	}
	return roomFor(cfg, a.log)
}

// roomFor builds a control room for a run configuration.
func roomFor(cfg *config.Config, log *zap.Logger) (Model, error) {
	u := reactor.New(cfg.Unit.ID, cfg.Unit.Name)
	if err := u.SetControls(cfg.Controls); err != nil {
		return Model{}, err
	}
	opts := DefaultOptions()
	opts.Dt = cfg.Dt
	opts.Gains = cfg.ControllerParams
	opts.Auto = cfg.Controller == "pid"
	opts.Actions = cfg.Actions
	opts.Log = log
	return NewModel(u, opts), nil
}

func (a App) View() string {
	if a.state == stateRoom {
		return a.room.View()
	}

	var s strings.Builder
	s.WriteString(headerStyle().Render("REACTOR CONTROL ROOM") + "\n\n")
	for i, name := range a.presets {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(CurrentTheme.Text)
		if i == a.cursor {
			cursor = "▸ "
			style = style.Foreground(CurrentTheme.Primary).Bold(true)
		}
		desc := config.Presets[name].Description
		s.WriteString(cursor + style.Render(fmt.Sprintf("%-22s", name)) + labelStyle.Render(desc) + "\n")
	}
	if a.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Critical).Render(a.err.Error()) + "\n")
	}
	s.WriteString("\n" + helpStyle.Render("↑↓:Select Enter:Start Q:Quit"))
	return s.String()
}

// RunInteractive opens the preset menu.
func RunInteractive(log *zap.Logger) error {
	_, err := tea.NewProgram(NewApp(log), tea.WithAltScreen()).Run()
	return err
}

// RunConfig opens the control room directly for cfg.
func RunConfig(cfg *config.Config, log *zap.Logger) error {
	room, err := roomFor(cfg, log)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(room, tea.WithAltScreen()).Run()
	return err
}
