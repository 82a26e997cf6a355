// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/codegrab/config.cue (~/.config on
// Linux when unset, ~/Library/Application Support/codegrab/config.cue on macOS,
// %APPDATA%\codegrab\config.cue on Windows). A missing file yields the defaults.
//
// The file is validated against the embedded config_schema.cue before it is merged
// into Viper over the defaults. Constraints CUE cannot express, such as glob syntax
// and references between ecosystem names, are checked after decoding.
package config
