package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/reactorsim/internal/advisor"
	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/report"
	"github.com/san-kum/reactorsim/internal/safety"
	"github.com/san-kum/reactorsim/internal/scenario"
	"go.uber.org/zap"
)

const (
	// FrameInterval is the wall-clock time between frames; one step per frame.
	FrameInterval = 100 * time.Millisecond
	trendCapacity = 120

	rodStep     = 1.0
	rodStepFast = 5.0
	pumpStep    = 5.0
	coolStep    = 5.0
	targetStep  = 100.0
)

type TickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options configure a control room session.
type Options struct {
	Dt       float64
	Interval time.Duration
	Gains    control.Gains
	Auto     bool
	// Actions are replayed against the unit as simulated time reaches them.
	Actions []scenario.Action
	Log     *zap.Logger
}

// DefaultOptions steps 0.1 s per frame in manual mode.
func DefaultOptions() Options {
	return Options{
		Dt:       0.1,
		Interval: FrameInterval,
		Gains:    control.DefaultGains(),
	}
}

// Model is the interactive control room for one unit. The unit is stepped
// once per frame; operator keys write controls between steps.
type Model struct {
	unit     *reactor.Unit
	pid      *control.PID
	auto     bool
	player   *scenario.Player
	steps    int
	running  bool
	dt       float64
	interval time.Duration
	frame    int
	canvas   *Canvas
	trend    []float64
	showHelp bool
	notice   string
}

func NewModel(u *reactor.Unit, opts Options) Model {
	if opts.Dt <= 0 {
		opts.Dt = 0.1
	}
	if opts.Interval <= 0 {
		opts.Interval = FrameInterval
	}
	g := opts.Gains
	pid := control.NewPID(g.Kp, g.Ki, g.Kd, g.TargetMW)
	var player *scenario.Player
	if len(opts.Actions) > 0 {
		player = scenario.NewPlayer(opts.Actions, pid, opts.Log)
	}
	return Model{
		unit:     u,
		pid:      pid,
		player:   player,
		auto:     opts.Auto,
		running:  true,
		dt:       opts.Dt,
		interval: opts.Interval,
		canvas:   NewCanvas(coreCols, coreRows),
		trend:    make([]float64, 0, trendCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

// Update handles operator input and steps the unit.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.frame++
		return m, tick(m.interval)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "up", "k":
		m.adjust(func(c *reactor.Controls) { c.RodsPos -= rodStep })
	case "down", "j":
		m.adjust(func(c *reactor.Controls) { c.RodsPos += rodStep })
	case "pgup", "K":
		m.adjust(func(c *reactor.Controls) { c.RodsPos -= rodStepFast })
	case "pgdown", "J":
		m.adjust(func(c *reactor.Controls) { c.RodsPos += rodStepFast })
	case "right", "l":
		m.adjust(func(c *reactor.Controls) { c.PumpSpeed += pumpStep })
	case "left", "h":
		m.adjust(func(c *reactor.Controls) { c.PumpSpeed -= pumpStep })
	case "]":
		m.adjust(func(c *reactor.Controls) { c.CoolingEff += coolStep })
	case "[":
		m.adjust(func(c *reactor.Controls) { c.CoolingEff -= coolStep })
	case "s":
		m.unit.RequestScram()
		m.notice = "MANUAL SCRAM REQUESTED"
	case "i":
		enabled := !m.unit.Controls().SafetyEnabled
		m.unit.SetSafetyEnabled(enabled)
		if !enabled {
			m.notice = "INTERLOCKS BYPASSED"
		}
	case "a":
		m.auto = !m.auto
		if m.auto {
			m.pid.Reset()
		}
	case "+", "=":
		m.pid.TargetMW = physics.Clamp(m.pid.TargetMW+targetStep, 0, physics.RatedPowerMW)
	case "-", "_":
		m.pid.TargetMW = physics.Clamp(m.pid.TargetMW-targetStep, 0, physics.RatedPowerMW)
	case "d":
		m.unit.InjectDisturbance(reactor.FluxSpike)
		m.notice = "FLUX SPIKE INJECTED"
	case "c":
		if m.unit.CoolingFaulted() {
			m.unit.InjectDisturbance(reactor.ClearDisturbance)
		} else {
			m.unit.InjectDisturbance(reactor.CoolingFault)
			m.notice = "COOLING FAULT INJECTED"
		}
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// adjust edits the controls, clamping each input to its range.
func (m *Model) adjust(fn func(*reactor.Controls)) {
	err := m.unit.UpdateControls(func(c *reactor.Controls) {
		fn(c)
		*c = c.Clamped()
	})
	if err != nil {
		m.notice = err.Error()
	}
}

// step advances the unit by one frame.
func (m *Model) step() {
	if m.player != nil {
		m.player.Step(m.steps, m.unit)
	}
	tel := m.unit.Telemetry()
	if m.auto && !tel.Scram {
		c := m.unit.Controls()
		m.pid.Adjust(m.unit.Time(), tel, &c)
		if err := m.unit.SetControls(c); err != nil {
			m.notice = err.Error()
		}
	}

	m.unit.Tick(m.dt)
	m.steps++

	m.trend = append(m.trend, m.unit.Telemetry().Flux)
	if len(m.trend) > trendCapacity {
		m.trend = m.trend[1:]
	}
}

// View renders the control room.
func (m Model) View() string {
	tel := m.unit.Telemetry()
	ctl := m.unit.Controls()

	DrawCore(m.canvas, ctl.RodsPos, tel.Flux, m.frame)
	core := panelStyle.Render(m.canvas.String())

	left := lipgloss.JoinVertical(lipgloss.Left, core, m.viewAnnunciators(tel))
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.viewReadouts(tel),
		m.viewControls(ctl),
		m.viewTrend(),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	out := lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(tel),
		body,
		m.viewAdvisories(tel, ctl),
		m.viewEvents(),
		m.viewFooter(),
	)

	if m.showHelp {
		return helpText + "\n" + out
	}
	return out
}

func (m Model) viewHeader(tel reactor.Telemetry) string {
	status := badge(strings.ToUpper(tel.Status.String()), CurrentTheme.StatusColor(tel.Status))
	state := badge("RUNNING", CurrentTheme.Nominal)
	if !m.running {
		state = badge("PAUSED", CurrentTheme.Unstable)
	}
	if tel.Scram {
		state = badge("SCRAM", CurrentTheme.Meltdown)
	}
	title := headerStyle().Render(fmt.Sprintf("%s  T+%.1fs", strings.ToUpper(m.unit.Name()), m.unit.Time()))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", status, " ", state)
}

func (m Model) viewReadouts(tel reactor.Telemetry) string {
	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Power", fmt.Sprintf("%.0f MW", tel.PowerMW))
	row("Flux", fmt.Sprintf("%.1f%%", tel.Flux*100))
	row("Core temp", fmt.Sprintf("%.1f °C", tel.Temp))
	row("Reactivity", fmt.Sprintf("%+.0f pcm", report.PCM(tel.Reactivity)))
	row("Period", report.FormatPeriod(tel.Period))
	row("Xenon", fmt.Sprintf("%.0f pcm", tel.Xenon*1e5))
	return panelStyle.Render(strings.TrimRight(s.String(), "\n"))
}

func (m Model) viewControls(ctl reactor.Controls) string {
	var s strings.Builder
	row := func(label string, v float64) {
		s.WriteString(labelStyle.Render(label) + Gauge(v, 20) + valueStyle.Render(fmt.Sprintf(" %5.1f%%", v)) + "\n")
	}
	row("Rods in", ctl.RodsPos)
	row("Pumps", ctl.PumpSpeed)
	row("Cooling", ctl.CoolingEff)

	mode := "MANUAL"
	if m.auto {
		mode = fmt.Sprintf("AUTO → %.0f MW", m.pid.TargetMW)
	}
	s.WriteString(labelStyle.Render("Rod control") + valueStyle.Render(mode))
	return panelStyle.Render(s.String())
}

func (m Model) viewTrend() string {
	var s strings.Builder
	s.WriteString(labelStyle.Render("Flux 12s") + FluxSparkline(m.trend, 40) + "\n")

	history := m.unit.History()
	if len(history) > 1 {
		power := report.Values(history, report.Power)
		s.WriteString(graphStyle.Render(asciigraph.Plot(power,
			asciigraph.Height(5),
			asciigraph.Width(40),
			asciigraph.Caption("power MW (100s)"),
		)))
	}
	return panelStyle.Render(strings.TrimRight(s.String(), "\n"))
}

func (m Model) viewAnnunciators(tel reactor.Telemetry) string {
	tiles := []string{
		alarm("SCRAM", tel.Scram),
		alarm("TEMP HI", safety.HasTrip(tel.Trips, safety.HighTemperature)),
		alarm("FLUX HI", safety.HasTrip(tel.Trips, safety.HighFlux)),
		alarm("FLOW LO", safety.HasTrip(tel.Trips, safety.LossOfFlow)),
		alarm("BYPASS", !m.unit.InterlocksActive()),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (m Model) viewAdvisories(tel reactor.Telemetry, ctl reactor.Controls) string {
	advice := advisor.Analyze(tel, ctl)
	if len(advice) == 0 {
		return ""
	}
	if len(advice) > 3 {
		advice = advice[:3]
	}
	var s strings.Builder
	for _, a := range advice {
		title := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.LevelColor(a.Level)).Render(a.Title)
		s.WriteString(fmt.Sprintf("%s: %s %s\n", title, a.Cause, a.Action))
	}
	return strings.TrimRight(s.String(), "\n")
}

func (m Model) viewEvents() string {
	events := m.unit.Events()
	if len(events) > 5 {
		events = events[len(events)-5:]
	}
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = report.FormatEvent(e)
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(strings.Join(lines, "\n"))
}

func (m Model) viewFooter() string {
	footer := "↑↓:Rods ←→:Pumps [ ]:Cooling S:Scram I:Interlocks A:Auto D:Spike C:Cooling fault SP:Pause ?:Help Q:Quit"
	if m.notice != "" {
		footer = lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent).Render(m.notice) + "\n" + footer
	}
	return helpStyle.Render(footer)
}

const helpText = `
╔══════════════════════════════════════════╗
║             KEYBOARD SHORTCUTS           ║
╠══════════════════════════════════════════╣
║  Up/K      - Withdraw rods 1% (PgUp 5%)  ║
║  Down/J    - Insert rods 1% (PgDn 5%)    ║
║  Left/H    - Pump speed -5%              ║
║  Right/L   - Pump speed +5%              ║
║  [ / ]     - Cooling efficiency -/+5%    ║
║  S         - Manual scram                ║
║  I         - Toggle interlocks           ║
║  A         - Toggle automatic rods       ║
║  + / -     - Auto power target ±100 MW   ║
║  D         - Inject flux spike           ║
║  C         - Toggle cooling fault        ║
║  T         - Cycle themes                ║
║  Space     - Pause/Resume                ║
║  Q         - Quit                        ║
╚══════════════════════════════════════════╝`

// Run starts the control room on the terminal's alternate screen.
func Run(u *reactor.Unit, opts Options) error {
	_, err := tea.NewProgram(NewModel(u, opts), tea.WithAltScreen()).Run()
	return err
}
