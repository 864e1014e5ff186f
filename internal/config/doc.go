// Package config loads and validates the TOML configuration for
// cosmic-screenshot.
//
// Configuration lives at ~/.config/cosmic-screenshot/config.toml (or under
// $XDG_CONFIG_HOME when set). A missing file is not an error: defaults cover
// every field, and CLI flags override whatever the file provides. Path fields
// accept ~ and are expanded to absolute paths during load.
package config
