package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pagewatch/internal/signals"
)

//go:embed sample_config.toml
var sampleConfig string

// Locator names understood by the extractor.
const (
	LocatorHiddenInput = "hidden_input"
	LocatorPDFLink     = "pdf_link"
)

// State backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Target describes the watched page and how the signal is located on it.
type Target struct {
	URL            string `toml:"url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Locator        string `toml:"locator"`
	MonthField     string `toml:"month_field"`
	YearField      string `toml:"year_field"`
}

// State contains configuration for the persisted state record.
type State struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// Notifications contains destination and policy settings.
type Notifications struct {
	// Destinations is a comma or newline separated list of destination URIs.
	Destinations        string `toml:"destinations"`
	TitlePrefix         string `toml:"title_prefix"`
	RequestTimeout      int    `toml:"request_timeout"`
	OnInitial           bool   `toml:"on_initial"`
	OnError             bool   `toml:"on_error"`
	Heartbeat           bool   `toml:"heartbeat"`
	RequireDestinations bool   `toml:"require_destinations"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for pagewatch.
//
// Configuration sections by subsystem:
//   - Target: watched URL, HTTP settings, field locator
//   - State: where the last observed signal is persisted
//   - Notifications: destination URIs and notify policy toggles
//   - Logging: log format, level, optional log directory
type Config struct {
	Target        Target        `toml:"target"`
	State         State         `toml:"state"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error; defaults and the
// environment are used instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pagewatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SignalKind maps the configured locator onto the signal variant it produces.
func (c *Config) SignalKind() signals.Kind {
	if c.Target.Locator == LocatorPDFLink {
		return signals.KindScalar
	}
	return signals.KindComposite
}

// FetchTimeout returns the per-request timeout for the page fetch.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Target.TimeoutSeconds) * time.Second
}

// NotifyTimeout returns the per-destination delivery timeout.
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeout) * time.Second
}

// FieldLabel names the located field for error messages and logs.
func (c *Config) FieldLabel() string {
	if c.Target.Locator == LocatorPDFLink {
		return "a[href$=.pdf]"
	}
	return fmt.Sprintf("input[name=%s][type=hidden]", c.Target.MonthField)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
