package testsupport

import (
	"path/filepath"
	"testing"

	"pagewatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// State lives under that directory and no destinations are configured.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Target.URL = "http://127.0.0.1/puzzle"
	cfgVal.Target.TimeoutSeconds = 5
	cfgVal.State.Path = filepath.Join(base, "state", "state.txt")
	cfgVal.Notifications.Destinations = ""
	cfgVal.Notifications.RequestTimeout = 5
	cfgVal.Logging.Dir = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithTargetURL points the extractor at url, usually an httptest server.
func WithTargetURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Target.URL = url
	}
}

// WithPDFLink switches the locator to the first .pdf link.
func WithPDFLink() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Target.Locator = config.LocatorPDFLink
	}
}

// WithDestinations sets the raw destination list.
func WithDestinations(raw string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.Destinations = raw
	}
}

// WithSQLiteState moves state into a sqlite database under the temp dir.
func WithSQLiteState() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.State.Backend = config.BackendSQLite
		b.cfg.State.Path = filepath.Join(b.baseDir, "state", "state.db")
	}
}

// WithNotifyToggles sets the optional notification toggles.
func WithNotifyToggles(onInitial, onError, heartbeat bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.OnInitial = onInitial
		b.cfg.Notifications.OnError = onError
		b.cfg.Notifications.Heartbeat = heartbeat
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.State.Path))
}
