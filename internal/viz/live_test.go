package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(reactor.New("test", "Test Unit"), DefaultOptions())
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func frames(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func TestKeysMoveControls(t *testing.T) {
	m := newTestModel(t)
	start := m.unit.Controls()

	m = press(m, "up", "up", "right", "]")
	c := m.unit.Controls()
	assert.InDelta(t, start.RodsPos-2*rodStep, c.RodsPos, 1e-9)
	assert.InDelta(t, 100.0, c.PumpSpeed, 1e-9, "pump is clamped at 100")
	assert.InDelta(t, 100.0, c.CoolingEff, 1e-9, "cooling is clamped at 100")

	m = press(m, "down", "left", "[")
	c = m.unit.Controls()
	assert.InDelta(t, start.RodsPos-rodStep, c.RodsPos, 1e-9)
	assert.InDelta(t, 100-pumpStep, c.PumpSpeed, 1e-9)
	assert.InDelta(t, 100-coolStep, c.CoolingEff, 1e-9)
}

func TestRodsClampAtLimits(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 30; i++ {
		m = press(m, "K")
	}
	assert.Equal(t, 0.0, m.unit.Controls().RodsPos)
}

func TestTickAdvancesOneStepPerFrame(t *testing.T) {
	m := newTestModel(t)
	m = frames(m, 10)
	assert.InDelta(t, 1.0, m.unit.Time(), 1e-9)
	assert.Len(t, m.trend, 10)
}

func TestPauseStopsTime(t *testing.T) {
	m := newTestModel(t)
	m = press(m, " ")
	m = frames(m, 5)
	assert.Zero(t, m.unit.Time())

	m = press(m, " ")
	m = frames(m, 5)
	assert.InDelta(t, 0.5, m.unit.Time(), 1e-9)
}

func TestScramKey(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "s")
	m = frames(m, 1)
	assert.True(t, m.unit.Telemetry().Scram)
	assert.Contains(t, m.View(), "SCRAM")
}

func TestInterlockToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "i")
	assert.False(t, m.unit.Controls().SafetyEnabled)
	assert.Equal(t, "INTERLOCKS BYPASSED", m.notice)
	assert.True(t, m.unit.InterlocksActive())
	m = frames(m, 1)
	assert.False(t, m.unit.InterlocksActive())
	m = press(m, "i")
	assert.True(t, m.unit.Controls().SafetyEnabled)
	m = frames(m, 1)
	assert.True(t, m.unit.InterlocksActive())
}

func TestCoolingFaultToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "c")
	assert.True(t, m.unit.CoolingFaulted())
	m = press(m, "c")
	assert.False(t, m.unit.CoolingFaulted())
}

func TestAutoHoldsPower(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "a")
	require.True(t, m.auto)
	m = frames(m, 3000)

	tel := m.unit.Telemetry()
	assert.False(t, tel.Scram)
	assert.InDelta(t, 1000, tel.PowerMW, 10)
}

func TestTargetKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "+", "+", "-")
	assert.InDelta(t, 1100, m.pid.TargetMW, 1e-9)
}

func TestActionsReplay(t *testing.T) {
	opts := DefaultOptions()
	opts.Actions = []scenario.Action{{At: 0.5, Scram: true}}
	m := NewModel(reactor.New("test", "Test Unit"), opts)

	m = frames(m, 5)
	assert.False(t, m.unit.Telemetry().Scram)
	m = frames(m, 1)
	assert.True(t, m.unit.Telemetry().Scram)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsReadouts(t *testing.T) {
	m := frames(newTestModel(t), 3)
	v := m.View()
	for _, want := range []string{"TEST UNIT", "Power", "Core temp", "Reactivity", "Period", "Rods in"} {
		assert.Contains(t, v, want)
	}

	m = press(m, "?")
	assert.True(t, strings.HasPrefix(m.View(), helpText))
}

func TestAppLaunchesPreset(t *testing.T) {
	app := NewApp(nil)
	require.NotEmpty(t, app.presets)
	assert.Contains(t, app.View(), app.presets[0])

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(App)
	assert.NotNil(t, cmd)
	assert.Equal(t, stateRoom, app.state)

	cfg, err := config.GetPreset(app.presets[0])
	require.NoError(t, err)
	assert.Equal(t, cfg.Controls, app.room.unit.Controls())
}

func TestLoadFollowPresetStartsInAuto(t *testing.T) {
	cfg, err := config.GetPreset("load-follow")
	require.NoError(t, err)
	m, err := roomFor(cfg, nil)
	require.NoError(t, err)
	assert.True(t, m.auto)
	assert.NotNil(t, m.player)
}
