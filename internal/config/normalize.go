package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTarget()
	if err := c.normalizeState(); err != nil {
		return err
	}
	c.normalizeNotifications()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeTarget() {
	if value, ok := os.LookupEnv(envTargetURL); ok && strings.TrimSpace(value) != "" {
		c.Target.URL = value
	}
	c.Target.URL = strings.TrimSpace(c.Target.URL)
	c.Target.UserAgent = strings.TrimSpace(c.Target.UserAgent)
	if c.Target.UserAgent == "" {
		c.Target.UserAgent = defaultUserAgent
	}
	if c.Target.TimeoutSeconds == 0 {
		c.Target.TimeoutSeconds = defaultFetchTimeout
	}
	c.Target.Locator = strings.ToLower(strings.TrimSpace(c.Target.Locator))
	if c.Target.Locator == "" {
		c.Target.Locator = LocatorHiddenInput
	}
	c.Target.MonthField = strings.TrimSpace(c.Target.MonthField)
	c.Target.YearField = strings.TrimSpace(c.Target.YearField)
}

func (c *Config) normalizeState() error {
	c.State.Backend = strings.ToLower(strings.TrimSpace(c.State.Backend))
	if c.State.Backend == "" {
		c.State.Backend = BackendFile
	}
	if value, ok := os.LookupEnv(envStatePath); ok && strings.TrimSpace(value) != "" {
		c.State.Path = value
	}
	c.State.Path = strings.TrimSpace(c.State.Path)
	if c.State.Path == "" {
		if c.State.Backend == BackendSQLite {
			c.State.Path = defaultStateDB
		} else {
			c.State.Path = defaultStateFile
		}
	}
	var err error
	if c.State.Path, err = expandPath(c.State.Path); err != nil {
		return fmt.Errorf("state.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	if strings.TrimSpace(c.Notifications.Destinations) == "" {
		if value, ok := os.LookupEnv(envDestinations); ok {
			c.Notifications.Destinations = value
		} else if value, ok := os.LookupEnv(envAppriseDestination); ok {
			c.Notifications.Destinations = value
		}
	}
	c.Notifications.Destinations = strings.TrimSpace(c.Notifications.Destinations)
	c.Notifications.TitlePrefix = strings.TrimSpace(c.Notifications.TitlePrefix)
	if c.Notifications.TitlePrefix == "" {
		c.Notifications.TitlePrefix = defaultTitlePrefix
	}
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "":
		c.Logging.Format = defaultLogFormat
	case "auto", "console", "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}
