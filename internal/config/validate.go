package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"pagewatch/internal/services"
)

// Validate ensures the configuration is usable. Every returned error carries
// services.ErrConfiguration.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validateTarget,
		c.validateState,
		c.validateNotifications,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validateTarget() error {
	if c.Target.URL == "" {
		return fmt.Errorf("target.url is required (or set %s)", envTargetURL)
	}
	parsed, err := url.Parse(c.Target.URL)
	if err != nil {
		return fmt.Errorf("target.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("target.url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("target.url must include a host")
	}
	if c.Target.TimeoutSeconds <= 0 {
		return errors.New("target.timeout_seconds must be positive")
	}
	switch c.Target.Locator {
	case LocatorHiddenInput:
		if c.Target.MonthField == "" {
			return errors.New("target.month_field must be set when target.locator is hidden_input")
		}
	case LocatorPDFLink:
	default:
		return fmt.Errorf("target.locator must be %q or %q, got %q", LocatorHiddenInput, LocatorPDFLink, c.Target.Locator)
	}
	return nil
}

func (c *Config) validateState() error {
	switch c.State.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("state.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.State.Backend)
	}
	if strings.TrimSpace(c.State.Path) == "" {
		return errors.New("state.path must be set")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	if c.Notifications.RequireDestinations && strings.TrimSpace(c.Notifications.Destinations) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("notifications.destinations is required when notifications.require_destinations is true. Set %s or edit %s (create with 'pagewatch config init')", envDestinations, defaultPath)
	}
	return nil
}
