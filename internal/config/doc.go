// Package config provides editor settings.
//
// Settings are built in layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  3. Environment (UEMACS_*)  │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Settings file           │  ← ~/.config/uemacs/config.toml or .yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML and YAML file loading and environment variables
//   - watcher: file watching for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.DefaultPath())
//	if err := cfg.Load(); err != nil {
//		return err
//	}
//	tab := cfg.Settings().Display.TabWidth
//
// Watch reloads the file when it changes and reports the new settings;
// a file that fails to parse or validate keeps the previous settings.
package config
