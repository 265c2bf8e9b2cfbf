// Package config loads, normalizes, and validates pagewatch configuration.
//
// Configuration lives in a TOML file (default ~/.config/pagewatch/config.toml,
// falling back to ./pagewatch.toml). Every field has a default, and a few
// values can be supplied through the environment so scheduled jobs can inject
// secrets without writing them to disk. The resulting *Config is built once by
// the CLI and passed into each component constructor.
package config
