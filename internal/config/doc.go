// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tasktrack/tasktrack.toml or OS-specific config directory)
// 3. Project config file (tasktrack.toml or .tasktrack.toml in the working directory)
// 4. Environment variables (TASKTRACK_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tasktrack/tasktrack.toml (preferred)
// - Windows: %APPDATA%\tasktrack\tasktrack.toml
// - macOS: ~/Library/Application Support/tasktrack/tasktrack.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tasktrack/tasktrack.toml or ~/.config/tasktrack/tasktrack.toml
//
// Project-level config locations (overrides user config):
// - ./tasktrack.toml (preferred)
// - ./.tasktrack.toml
package config
