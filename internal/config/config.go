package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/memory-server/internal/memory"
)

type BoardConfig struct {
	Dimension int      `json:"dimension"`
	Symbols   []string `json:"symbols"`
}

type TimingConfig struct {
	MismatchDelay Duration `json:"mismatch_delay"`
	WinDelay      Duration `json:"win_delay"`
	TickInterval  Duration `json:"tick_interval"`
}

type SessionsConfig struct {
	IdleTimeout   Duration `json:"idle_timeout"`
	SweepInterval Duration `json:"sweep_interval"`
}

type Config struct {
	Mode     string         `json:"mode"`
	Addr     string         `json:"addr"`
	LogFile  string         `json:"log_file"`
	Origins  []string       `json:"cors_origins"`
	Board    BoardConfig    `json:"board"`
	Timing   TimingConfig   `json:"timing"`
	Sessions SessionsConfig `json:"sessions"`
}

func Default() *Config {
	symbols := make([]string, len(memory.DefaultSymbols))
	for i, s := range memory.DefaultSymbols {
		symbols[i] = string(s)
	}
	return &Config{
		Mode: "development",
		Addr: ":8080",
		Board: BoardConfig{
			Dimension: memory.DefaultDimension,
			Symbols:   symbols,
		},
		Timing: TimingConfig{
			MismatchDelay: Duration{memory.DefaultMismatchDelay},
			WinDelay:      Duration{memory.DefaultWinDelay},
			TickInterval:  Duration{memory.DefaultTickInterval},
		},
		Sessions: SessionsConfig{
			IdleTimeout:   Duration{30 * time.Minute},
			SweepInterval: Duration{time.Minute},
		},
	}
}

// ReadConfig reads a JSON config from path on top of the defaults. Omitted
// keys keep their default value.
func ReadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	config := Default()
	if err := json.Unmarshal(b, config); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                    c.Mode,
		"addr":                    c.Addr,
		"log_file":                c.LogFile,
		"cors_origins":            c.Origins,
		"board_dimension":         c.Board.Dimension,
		"board_symbols":           len(c.Board.Symbols),
		"timing_mismatch_delay":   c.Timing.MismatchDelay.String(),
		"timing_win_delay":        c.Timing.WinDelay.String(),
		"timing_tick_interval":    c.Timing.TickInterval.String(),
		"sessions_idle_timeout":   c.Sessions.IdleTimeout.String(),
		"sessions_sweep_interval": c.Sessions.SweepInterval.String(),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Params converts the board and timing sections into game parameters.
func (c Config) Params() memory.Params {
	symbols := make([]memory.Symbol, len(c.Board.Symbols))
	for i, s := range c.Board.Symbols {
		symbols[i] = memory.Symbol(s)
	}
	return memory.Params{
		Dimension:     c.Board.Dimension,
		Symbols:       symbols,
		MismatchDelay: c.Timing.MismatchDelay.Duration,
		WinDelay:      c.Timing.WinDelay.Duration,
		TickInterval:  c.Timing.TickInterval.Duration,
	}
}
