package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/scenario"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.1
	DefaultDuration = 60.0
	DefaultName     = "Unit 1"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalidConfig = errors.New("config: invalid config")
)

type Config struct {
	Description      string            `yaml:"description,omitempty"`
	Unit             UnitConfig        `yaml:"unit"`
	Dt               float64           `yaml:"dt"`
	Duration         float64           `yaml:"duration"`
	Realtime         float64           `yaml:"realtime"`
	Controls         reactor.Controls  `yaml:"controls"`
	Controller       string            `yaml:"controller"`
	ControllerParams control.Gains     `yaml:"controller_params"`
	Actions          []scenario.Action `yaml:"actions,omitempty"`
	HistoryOut       string            `yaml:"history_out,omitempty"`
}

type UnitConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func DefaultConfig() *Config {
	return &Config{
		Unit: UnitConfig{
			ID:   uuid.NewString(),
			Name: DefaultName,
		},
		Dt:               DefaultDt,
		Duration:         DefaultDuration,
		Controls:         reactor.DefaultControls(),
		Controller:       "none",
		ControllerParams: control.DefaultGains(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, DefaultConfig())
}

// Parse decodes YAML on top of base, so keys missing from data keep the
// base values.
func Parse(data []byte, base *Config) (*Config, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Unit.ID == "" {
		cfg.Unit.ID = uuid.NewString()
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfig, c.Duration)
	}
	if c.Realtime < 0 {
		return fmt.Errorf("%w: realtime must not be negative, got %v", ErrInvalidConfig, c.Realtime)
	}
	if err := c.Controls.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := control.New(c.Controller, c.ControllerParams); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Actions = append([]scenario.Action(nil), c.Actions...)
	return &out
}

// Scenario converts the config into a playable scenario.
func (c *Config) Scenario(name string) *scenario.Scenario {
	controls := c.Controls
	return &scenario.Scenario{
		Name:        name,
		Description: c.Description,
		UnitID:      c.Unit.ID,
		Dt:          c.Dt,
		Duration:    c.Duration,
		Realtime:    c.Realtime,
		Controls:    &controls,
		Controller:  c.Controller,
		Gains:       c.ControllerParams,
		Actions:     append([]scenario.Action(nil), c.Actions...),
	}
}
