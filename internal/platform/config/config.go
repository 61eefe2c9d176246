package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "worklog/internal/platform/errors"
)

const (
	FileName         = "worklog.yaml"
	DBFileName       = "time_tracking.sqlite3"
	TokenPlaceholder = "your_token_here"

	// MaxHistoryWeeks keeps the board within the chat platform's 25 embed
	// fields (current week and overall totals take two).
	MaxHistoryWeeks = 23
)

type Config struct {
	DataDir       string
	DBPath        string
	Token         string
	Prefix        string
	AnchorWeekday time.Weekday
	Location      *time.Location
	HistoryWeeks  int
	LogLevel      string
	LogFormat     string
}

type fileConfig struct {
	Discord struct {
		Token  string `yaml:"token"`
		Prefix string `yaml:"prefix"`
	} `yaml:"discord"`
	Tracking struct {
		// Weekday name ("friday") or Go numbering, Sunday=0 ... Saturday=6.
		// Monday-based numbering from other tools is off by one.
		AnchorWeekday *weekdayValue `yaml:"anchor_weekday"`
		Timezone      string        `yaml:"timezone"`
		HistoryWeeks  *int          `yaml:"history_weeks"`
	} `yaml:"tracking"`
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

type weekdayValue struct {
	day time.Weekday
}

func (w *weekdayValue) UnmarshalYAML(node *yaml.Node) error {
	day, err := ParseWeekday(node.Value)
	if err != nil {
		return err
	}
	w.day = day
	return nil
}

// New returns the defaults rooted at dataDir.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, DBFileName),
		Prefix:        "!",
		AnchorWeekday: time.Friday,
		Location:      time.Local,
		HistoryWeeks:  4,
		LogLevel:      "info",
		LogFormat:     "console",
	}, nil
}

// Load layers the YAML file at path (or <dataDir>/worklog.yaml when path is
// empty and the file exists), <dataDir>/.env and the process environment on
// top of the defaults. Process environment wins over .env.
func Load(dataDir, path string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, FileName)
	}
	if err := cfg.applyFile(path, explicit); err != nil {
		return Config{}, err
	}
	dotenv, err := readDotEnv(filepath.Join(dataDir, ".env"))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequireToken reports a missing or placeholder chat token.
func (c Config) RequireToken() error {
	token := strings.TrimSpace(c.Token)
	if token == "" || token == TokenPlaceholder {
		return fmt.Errorf("%w: set DISCORD_TOKEN in the environment, %s or %s", apperrors.ErrMissingCredential, filepath.Join(c.DataDir, ".env"), filepath.Join(c.DataDir, FileName))
	}
	return nil
}

// ParseWeekday accepts an English weekday name or abbreviation, or 0-6 with
// Sunday=0 as in time.Weekday. Note that 4 is Thursday, not Friday as in
// Monday=0 schemes; names avoid the ambiguity.
func ParseWeekday(raw string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("%w: anchor weekday %d out of range [0,6]", apperrors.ErrInvalidInput, n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if value == name || value == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", apperrors.ErrInvalidInput, raw)
}

func (c *Config) applyFile(path string, required bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if fc.Discord.Token != "" {
		c.Token = fc.Discord.Token
	}
	if fc.Discord.Prefix != "" {
		c.Prefix = fc.Discord.Prefix
	}
	if fc.Tracking.AnchorWeekday != nil {
		c.AnchorWeekday = fc.Tracking.AnchorWeekday.day
	}
	if fc.Tracking.Timezone != "" {
		loc, err := time.LoadLocation(fc.Tracking.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
		c.Location = loc
	}
	if fc.Tracking.HistoryWeeks != nil {
		if n := *fc.Tracking.HistoryWeeks; n < 0 || n > MaxHistoryWeeks {
			return fmt.Errorf("%w: history_weeks must be in [0,%d], got %d", apperrors.ErrInvalidInput, MaxHistoryWeeks, n)
		}
		c.HistoryWeeks = *fc.Tracking.HistoryWeeks
	}
	if fc.Storage.DBPath != "" {
		c.DBPath = c.resolve(fc.Storage.DBPath)
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.LogFormat = fc.Log.Format
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	if v := lookup("DISCORD_TOKEN"); v != "" {
		c.Token = v
	}
	if v := lookup("WORKLOG_ANCHOR_WEEKDAY"); v != "" {
		day, err := ParseWeekday(v)
		if err != nil {
			return err
		}
		c.AnchorWeekday = day
	}
	if v := lookup("WORKLOG_TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return fmt.Errorf("load timezone: %w", err)
		}
		c.Location = loc
	}
	if v := lookup("WORKLOG_DB_PATH"); v != "" {
		c.DBPath = c.resolve(v)
	}
	if v := lookup("WORKLOG_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read .env: %w", err)
	}
	return values, nil
}
