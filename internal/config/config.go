package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	SourceDat    = "dat"
	SourceSQLite = "sqlite"
)

// PlaceholderTeam is the filler team name found in legacy contest.dat exports.
const PlaceholderTeam = "Пополнить команду"

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins"`
}

type Config struct {
	Logger  Logger  `yaml:"logger" toml:"logger"`
	Listen  string  `yaml:"listen" toml:"listen" validate:"required"`
	Admin   Admin   `yaml:"admin" toml:"admin"`
	Contest Contest `yaml:"contest" toml:"contest"`
	Source  Source  `yaml:"source" toml:"source"`
	Events  Events  `yaml:"events" toml:"events"`
	CORS    CORS    `yaml:"cors" toml:"cors"`
}

type Logger struct {
	Level string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `yaml:"file" toml:"file"`
}

type Admin struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Listen  string `yaml:"listen" toml:"listen" validate:"required_if=Enabled true"`
	// RateLimit is the number of mutations per second allowed per client IP.
	RateLimit float64 `yaml:"rate_limit" toml:"rate_limit" validate:"gte=0"`
	Burst     int     `yaml:"burst" toml:"burst" validate:"gte=0"`
}

type Contest struct {
	// Duration is the contest length in minutes.
	Duration int `yaml:"duration" toml:"duration" validate:"gt=0"`
	// AutoplayAt optionally tells the replay UI when to start playing.
	AutoplayAt *time.Time `yaml:"autoplay_at" toml:"autoplay_at"`
}

// DurationSeconds is the contest length in elapsed seconds.
func (c Contest) DurationSeconds() int {
	return c.Duration * 60
}

type Source struct {
	Type        string   `yaml:"type" toml:"type" validate:"oneof=dat sqlite"`
	Path        string   `yaml:"path" toml:"path" validate:"required"`
	IgnoreTeams []string `yaml:"ignore_teams" toml:"ignore_teams"`
}

type Events struct {
	// History is how many past events a new websocket subscriber receives.
	History int `yaml:"history" toml:"history" validate:"gte=0"`
}

// Default returns the configuration used for fields missing from the file.
func Default() Config {
	return Config{
		Logger: Logger{Level: "info"},
		Listen: ":5000",
		Admin: Admin{
			Enabled:   true,
			Listen:    "127.0.0.1:5001",
			RateLimit: 5,
			Burst:     10,
		},
		Contest: Contest{Duration: 300},
		Source: Source{
			Type:        SourceDat,
			Path:        "contest.dat",
			IgnoreTeams: []string{PlaceholderTeam},
		},
		Events: Events{History: 64},
	}
}

// Load reads a YAML config, or TOML when the file has a .toml extension,
// on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
