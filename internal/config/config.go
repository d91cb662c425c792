package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"cudays/internal/model"
	"cudays/internal/schedule"
)

// Config represents the main configuration for cudays.
type Config struct {
	BaseDir string        `toml:"base_dir"`
	LogDir  string        `toml:"log_dir"`
	Program ProgramConfig `toml:"program"`
	Feed    FeedConfig    `toml:"feed"`
	Store   StoreConfig   `toml:"store"`
	Sync    SyncConfig    `toml:"sync"`
}

// ProgramConfig fixes the orientation program: which calendar days exist
// and where the display layer draws the late-night/morning boundary.
type ProgramConfig struct {
	Year  int   `toml:"year"`
	Month int   `toml:"month"`
	Days  []int `toml:"days"`

	// StartHour is the earliest hour a same-day event starts; EndHour is
	// the latest start hour still counted as the previous day's late
	// session. EndHour must be smaller than StartHour.
	StartHour int `toml:"start_hour"`
	EndHour   int `toml:"end_hour"`
}

// FeedConfig represents configuration for the remote update feed.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type FeedConfig struct {
	Type string `toml:"type"` // "http", "s3", "file", or "memory"

	// HTTP-specific fields (only used when Type == "http")
	URL            string `toml:"url,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket    string `toml:"s3_bucket,omitempty"`
	S3Key       string `toml:"s3_key,omitempty"`
	S3Region    string `toml:"s3_region,omitempty"`
	S3AccessKey string `toml:"s3_access_key,omitempty"`
	S3SecretKey string `toml:"s3_secret_key,omitempty"`

	// File-specific field (only used when Type == "file")
	Path string `toml:"path,omitempty"`
}

// StoreConfig represents configuration for the record store.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type StoreConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// SyncConfig controls the periodic sync loop run by `cudays watch`.
type SyncConfig struct {
	Cron string `toml:"cron"` // cron expression, e.g. "*/15 * * * *"
}

// NewConfig creates a new Config with the provided base directory and
// default values for everything else.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Program: ProgramConfig{
			Year:      2018,
			Month:     4,
			Days:      []int{12, 13, 16, 19, 20, 23},
			StartHour: 7,
			EndHour:   2,
		},
		Feed: FeedConfig{
			Type:           "http",
			TimeoutSeconds: 30,
		},
		Store: StoreConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Sync: SyncConfig{
			Cron: "*/15 * * * *",
		},
	}
}

// Validate checks the parts of the config the cache layer depends on.
func (c *Config) Validate() error {
	if len(c.Program.Days) == 0 {
		return fmt.Errorf("program.days must list at least one day")
	}
	if c.Program.Month < 1 || c.Program.Month > 12 {
		return fmt.Errorf("program.month %d out of range", c.Program.Month)
	}
	if c.Program.EndHour >= c.Program.StartHour {
		return fmt.Errorf("program.end_hour (%d) must be smaller than program.start_hour (%d)",
			c.Program.EndHour, c.Program.StartHour)
	}
	return nil
}

// ProgramDays returns the configured program days in listing order.
func (c *Config) ProgramDays() []model.Day {
	days := make([]model.Day, len(c.Program.Days))
	for i, d := range c.Program.Days {
		days[i] = model.Day{Year: c.Program.Year, Month: c.Program.Month, Day: d}
	}
	return days
}

// EventOrder returns the display ordering configured for the program.
func (c *Config) EventOrder() schedule.EventOrder {
	return schedule.EventOrder{StartHour: c.Program.StartHour, EndHour: c.Program.EndHour}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config. Refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
