// Package config provides keyline's settings.
//
// Settings are resolved in layers, each overriding the one below:
//
//	┌──────────────────────────────┐
//	│  3. Environment (KEYLINE_*)  │  ← Highest priority
//	├──────────────────────────────┤
//	│  2. TOML file                │  ← ~/.config/keyline/config.toml
//	├──────────────────────────────┤
//	│  1. Built-in defaults        │  ← Lowest priority
//	└──────────────────────────────┘
//
// The loader sub-package reads the file and environment layers into maps;
// this package merges them and decodes the result into a typed Config.
//
// # Example file
//
//	[editor]
//	history_size = "infinite"  # or "none", or an entry count
//	tab_width = 4
//	overwrite = false
//
//	[logging]
//	level = "info"
//	file = "/tmp/keyline.log"
//
//	[macro]
//	file = "~/.local/share/keyline/macros.json"
//
// Watch reloads the file when it changes on disk.
package config
