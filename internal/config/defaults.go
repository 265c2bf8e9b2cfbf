package config

const (
	defaultConfigPath     = "~/.config/pagewatch/config.toml"
	defaultTargetURL      = "https://www.janestreet.com/puzzles/current-puzzle/"
	defaultUserAgent      = "Mozilla/5.0 (compatible; PageWatch/1.0)"
	defaultFetchTimeout   = 30
	defaultMonthField     = "puzzle_month"
	defaultYearField      = "puzzle_year"
	defaultStateFile      = "~/.local/share/pagewatch/state.txt"
	defaultStateDB        = "~/.local/share/pagewatch/state.db"
	defaultTitlePrefix    = "PageWatch"
	defaultNotifyTimeout  = 30
	defaultLogFormat      = "auto"
	defaultLogLevel       = "info"
	envTargetURL          = "PAGEWATCH_URL"
	envDestinations       = "PAGEWATCH_DESTINATIONS"
	envAppriseDestination = "APPRISE_URLS"
	envStatePath          = "PAGEWATCH_STATE_PATH"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Target: Target{
			URL:            defaultTargetURL,
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: defaultFetchTimeout,
			Locator:        LocatorHiddenInput,
			MonthField:     defaultMonthField,
			YearField:      defaultYearField,
		},
		State: State{
			Backend: BackendFile,
		},
		Notifications: Notifications{
			TitlePrefix:    defaultTitlePrefix,
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
