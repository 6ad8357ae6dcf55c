// Package config loads the advisor's HCL configuration file and applies
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/game"
)

// Environment variables that override the file.
const (
	// EnvSeed fixes the random seed for reproducible advice.
	EnvSeed = "POKERADVISOR_SEED"

	// EnvChart points at a range chart file.
	EnvChart = "POKERADVISOR_CHART"

	// EnvIterations sets the postflop simulation budget.
	EnvIterations = "POKERADVISOR_ITERATIONS"
)

// Config is the complete advisor configuration.
type Config struct {
	Advisor  AdvisorSettings `hcl:"advisor,block"`
	Server   ServerSettings  `hcl:"server,block"`
	Sizing   *SizingSettings `hcl:"sizing,block"`
	Profiles []game.Profile  `hcl:"profile,block"`
}

// AdvisorSettings controls the decision engine.
type AdvisorSettings struct {
	Chart      string `hcl:"chart,optional"`
	Iterations int    `hcl:"iterations,optional"`
	Workers    int    `hcl:"workers,optional"`
	Seed       int64  `hcl:"seed,optional"`
}

// ServerSettings controls the websocket advice service.
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
	LogLevel    string `hcl:"log_level,optional"`
}

// SizingSettings overrides entries of advisor.DefaultSizing. Zero values
// keep the default.
type SizingSettings struct {
	Open                  map[string]float64 `hcl:"open,optional"`
	ThreeBetInPosition    float64            `hcl:"three_bet_in_position,optional"`
	ThreeBetOutOfPosition float64            `hcl:"three_bet_out_of_position,optional"`
	CBetDry               float64            `hcl:"cbet_dry,optional"`
	CBetWet               float64            `hcl:"cbet_wet,optional"`
	CBetCoordinated       float64            `hcl:"cbet_coordinated,optional"`
	ThinValue             float64            `hcl:"thin_value,optional"`
	StrongValue           float64            `hcl:"strong_value,optional"`
	NutsValue             float64            `hcl:"nuts_value,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Advisor: AdvisorSettings{
			Iterations: advisor.DefaultIterations,
		},
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			IdleTimeout: "5m",
			LogLevel:    "info",
		},
	}
}

// Load reads an HCL configuration file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw struct {
		Advisor  *AdvisorSettings `hcl:"advisor,block"`
		Server   *ServerSettings  `hcl:"server,block"`
		Sizing   *SizingSettings  `hcl:"sizing,block"`
		Profiles []game.Profile   `hcl:"profile,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Config{Sizing: raw.Sizing, Profiles: raw.Profiles}
	if raw.Advisor != nil {
		config.Advisor = *raw.Advisor
	}
	if raw.Server != nil {
		config.Server = *raw.Server
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Advisor.Iterations == 0 {
		c.Advisor.Iterations = d.Advisor.Iterations
	}
	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = d.Server.IdleTimeout
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = d.Server.LogLevel
	}
}

// ApplyEnv overlays the POKERADVISOR_* variables read through getenv,
// normally os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Advisor.Seed = seed
	}
	if v := getenv(EnvChart); v != "" {
		c.Advisor.Chart = v
	}
	if v := getenv(EnvIterations); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvIterations, err)
		}
		c.Advisor.Iterations = n
	}
	return nil
}

// Validate checks the configuration for values the advisor cannot use.
func (c *Config) Validate() error {
	if c.Advisor.Iterations < 1 {
		return fmt.Errorf("advisor: iterations must be positive, got %d", c.Advisor.Iterations)
	}
	if c.Advisor.Workers < 0 {
		return fmt.Errorf("advisor: workers must not be negative, got %d", c.Advisor.Workers)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := c.IdleTimeout(); err != nil {
		return err
	}
	if c.Sizing != nil {
		for name, size := range c.Sizing.Open {
			if _, err := game.ParsePosition(name); err != nil {
				return fmt.Errorf("sizing: %w", err)
			}
			if size <= 0 {
				return fmt.Errorf("sizing: open size for %s must be positive", name)
			}
		}
	}

	seen := map[string]bool{}
	for _, p := range c.Profiles {
		if seen[p.Name] {
			return fmt.Errorf("profile %s defined twice", p.Name)
		}
		seen[p.Name] = true
		for field, v := range map[string]float64{"vpip": p.VPIP, "pfr": p.PFR, "fold_to_cbet": p.FoldToCBet} {
			if v < 0 || v > 100 {
				return fmt.Errorf("profile %s: %s must be between 0 and 100", p.Name, field)
			}
		}
	}
	return nil
}

// IdleTimeout parses the server idle timeout. Zero disables it.
func (c *Config) IdleTimeout() (time.Duration, error) {
	if c.Server.IdleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("server: invalid idle_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("server: idle_timeout must not be negative")
	}
	return d, nil
}

// ServerAddress returns host:port for the advice service.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// AdvisorSizing merges the sizing overrides onto the defaults.
func (c *Config) AdvisorSizing() advisor.Sizing {
	s := advisor.DefaultSizing()
	o := c.Sizing
	if o == nil {
		return s
	}
	for name, size := range o.Open {
		if pos, err := game.ParsePosition(name); err == nil && size > 0 {
			s.Open[pos] = size
		}
	}
	setIf := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	setIf(&s.ThreeBetInPosition, o.ThreeBetInPosition)
	setIf(&s.ThreeBetOutOfPosition, o.ThreeBetOutOfPosition)
	setIf(&s.ThinValue, o.ThinValue)
	setIf(&s.StrongValue, o.StrongValue)
	setIf(&s.NutsValue, o.NutsValue)
	for kind, v := range map[advisor.TextureKind]float64{
		advisor.TextureDry:         o.CBetDry,
		advisor.TextureWet:         o.CBetWet,
		advisor.TextureCoordinated: o.CBetCoordinated,
	} {
		if v > 0 {
			s.CBet[kind] = v
		}
	}
	return s
}

// Profile looks up an opponent profile, preferring profiles defined in
// the file over the built-in presets.
func (c *Config) Profile(name string) (game.Profile, error) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return game.PresetProfile(name)
}
