package trafficfsm

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config is the startup configuration of a controller process
type Config struct {
	Name         string        `yaml:"name"`
	Id           string        `yaml:"id"`
	TickDuration time.Duration `yaml:"tick_duration"`
	InitialState StateID       `yaml:"initial_state"`
	LogLevel     string        `yaml:"log_level"`
	TablePath    string        `yaml:"table_path"`
}

// NewConfig returns the defaults of the intersection controller
func NewConfig() *Config {
	return &Config{
		Name:         "TrafficLight",
		Id:           uuid.NewString(),
		TickDuration: DefaultTickDuration,
		InitialState: GoWest,
		LogLevel:     "info",
		TablePath:    "",
	}
}

// LoadConfig reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	if c.TickDuration <= 0 {
		return NewConfigurationError("Config", "tick_duration must be positive")
	}
	if !c.InitialState.IsValid() {
		return NewConfigurationError("Config", "initial_state is not a table row")
	}
	return nil
}

// Table returns the configured table: the file at TablePath when set,
// otherwise DefaultTable.
func (c *Config) Table() (Table, error) {
	if c.TablePath == "" {
		return DefaultTable(), nil
	}
	return LoadTable(c.TablePath)
}

// EngineOptions translates the configuration into engine options
func (c *Config) EngineOptions() []EngineOption {
	opts := []EngineOption{
		WithInitialState(c.InitialState),
		WithTickDuration(c.TickDuration),
	}
	if c.Id != "" {
		opts = append(opts, WithID(c.Id))
	}
	return opts
}
