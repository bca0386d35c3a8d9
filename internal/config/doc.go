// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.mywork/mywork.toml or OS-specific config directory)
// 3. Project config file (mywork.toml or .mywork.toml in the working directory)
// 4. Environment variables (MYWORK_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.mywork/mywork.toml (preferred)
// - Windows: %APPDATA%\mywork\mywork.toml
// - macOS: ~/Library/Application Support/mywork/mywork.toml
// - Linux/BSD: $XDG_CONFIG_HOME/mywork/mywork.toml or ~/.config/mywork/mywork.toml
//
// Project-level config locations (overrides user config):
// - ./mywork.toml (preferred)
// - ./.mywork.toml
package config
