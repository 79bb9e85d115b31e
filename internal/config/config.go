/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"core2d/internal/history"
	applog "core2d/internal/log"
	"core2d/internal/model"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type EditorConfig struct {
	SnapToGrid       bool    `yaml:"snap_to_grid"`
	SnapX            float64 `yaml:"snap_x"`
	SnapY            float64 `yaml:"snap_y"`
	HitThreshold     float64 `yaml:"hit_threshold"`
	MoveMode         string  `yaml:"move_mode"` // "point" | "shape"
	DefaultIsStroked bool    `yaml:"default_is_stroked"`
	DefaultIsFilled  bool    `yaml:"default_is_filled"`
	DefaultIsClosed  bool    `yaml:"default_is_closed"`
	DefaultFillRule  string  `yaml:"default_fill_rule"` // "evenodd" | "nonzero"
	TryToConnect     bool    `yaml:"try_to_connect"`
}

type HistoryConfig struct {
	// MaxDepth bounds the undo stack; 0 keeps everything.
	MaxDepth int `yaml:"max_depth"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	o := model.DefaultOptions()
	return AppConfig{
		ConfigVersion: 1,
		Editor: EditorConfig{
			SnapToGrid:       o.SnapToGrid,
			SnapX:            o.SnapX,
			SnapY:            o.SnapY,
			HitThreshold:     o.HitThreshold,
			MoveMode:         o.MoveMode.String(),
			DefaultIsStroked: o.DefaultIsStroked,
			DefaultIsFilled:  o.DefaultIsFilled,
			DefaultIsClosed:  o.DefaultIsClosed,
			DefaultFillRule:  o.DefaultFillRule.String(),
			TryToConnect:     o.TryToConnect,
		},
		History: HistoryConfig{MaxDepth: 0},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// EnvPrefix is prepended to every override variable.
const EnvPrefix = "C2D"

// EnvConfigPath replaces the per-user config file location.
const EnvConfigPath = "C2D_CONFIG"

// envOverrides is filled by envconfig. Nil fields were not set.
type envOverrides struct {
	SnapToGrid       *bool    `envconfig:"SNAP_TO_GRID"`
	SnapX            *float64 `envconfig:"SNAP_X"`
	SnapY            *float64 `envconfig:"SNAP_Y"`
	HitThreshold     *float64 `envconfig:"HIT_THRESHOLD"`
	MoveMode         *string  `envconfig:"MOVE_MODE"`
	DefaultIsStroked *bool    `envconfig:"DEFAULT_IS_STROKED"`
	DefaultIsFilled  *bool    `envconfig:"DEFAULT_IS_FILLED"`
	DefaultIsClosed  *bool    `envconfig:"DEFAULT_IS_CLOSED"`
	DefaultFillRule  *string  `envconfig:"DEFAULT_FILL_RULE"`
	TryToConnect     *bool    `envconfig:"TRY_TO_CONNECT"`
	HistoryMaxDepth  *int     `envconfig:"HISTORY_MAX_DEPTH"`
	LogLevel         *string  `envconfig:"LOG_LEVEL"`
	LogFormat        *string  `envconfig:"LOG_FORMAT"`
	LogSource        *bool    `envconfig:"LOG_SOURCE"`
	LogFile          *string  `envconfig:"LOG_FILE"`
}

// envKeys maps YAML keys to their override variable.
var envKeys = map[string]string{
	"editor.snap_to_grid":       "SNAP_TO_GRID",
	"editor.snap_x":             "SNAP_X",
	"editor.snap_y":             "SNAP_Y",
	"editor.hit_threshold":      "HIT_THRESHOLD",
	"editor.move_mode":          "MOVE_MODE",
	"editor.default_is_stroked": "DEFAULT_IS_STROKED",
	"editor.default_is_filled":  "DEFAULT_IS_FILLED",
	"editor.default_is_closed":  "DEFAULT_IS_CLOSED",
	"editor.default_fill_rule":  "DEFAULT_FILL_RULE",
	"editor.try_to_connect":     "TRY_TO_CONNECT",
	"history.max_depth":         "HISTORY_MAX_DEPTH",
	"logging.level":             "LOG_LEVEL",
	"logging.format":            "LOG_FORMAT",
	"logging.source":            "LOG_SOURCE",
	"logging.file":              "LOG_FILE",
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Core2D")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Core2D")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "core2d")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present) over the defaults and applies
// environment overrides. A malformed file is logged and ignored; a malformed
// override is an error.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		} else {
			applog.WithComponent("config").Warn("ignoring unreadable config file", "path", path, "err", err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// mergeInto copies the file values over dst. Zero numbers and empty strings
// keep the defaults; booleans are taken as written.
func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	e, s := &dst.Editor, &src.Editor
	e.SnapToGrid = s.SnapToGrid
	if s.SnapX != 0 {
		e.SnapX = s.SnapX
	}
	if s.SnapY != 0 {
		e.SnapY = s.SnapY
	}
	if s.HitThreshold != 0 {
		e.HitThreshold = s.HitThreshold
	}
	if strings.TrimSpace(s.MoveMode) != "" {
		e.MoveMode = strings.ToLower(strings.TrimSpace(s.MoveMode))
	}
	e.DefaultIsStroked = s.DefaultIsStroked
	e.DefaultIsFilled = s.DefaultIsFilled
	e.DefaultIsClosed = s.DefaultIsClosed
	if strings.TrimSpace(s.DefaultFillRule) != "" {
		e.DefaultFillRule = strings.ToLower(strings.TrimSpace(s.DefaultFillRule))
	}
	e.TryToConnect = s.TryToConnect

	if src.History.MaxDepth != 0 {
		dst.History.MaxDepth = src.History.MaxDepth
	}

	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	e := &cfg.Editor
	if env.SnapToGrid != nil {
		e.SnapToGrid = *env.SnapToGrid
	}
	if env.SnapX != nil {
		e.SnapX = *env.SnapX
	}
	if env.SnapY != nil {
		e.SnapY = *env.SnapY
	}
	if env.HitThreshold != nil {
		e.HitThreshold = *env.HitThreshold
	}
	if env.MoveMode != nil {
		e.MoveMode = strings.ToLower(strings.TrimSpace(*env.MoveMode))
	}
	if env.DefaultIsStroked != nil {
		e.DefaultIsStroked = *env.DefaultIsStroked
	}
	if env.DefaultIsFilled != nil {
		e.DefaultIsFilled = *env.DefaultIsFilled
	}
	if env.DefaultIsClosed != nil {
		e.DefaultIsClosed = *env.DefaultIsClosed
	}
	if env.DefaultFillRule != nil {
		e.DefaultFillRule = strings.ToLower(strings.TrimSpace(*env.DefaultFillRule))
	}
	if env.TryToConnect != nil {
		e.TryToConnect = *env.TryToConnect
	}
	if env.HistoryMaxDepth != nil {
		cfg.History.MaxDepth = *env.HistoryMaxDepth
	}
	if env.LogLevel != nil {
		cfg.Logging.Level = strings.ToLower(*env.LogLevel)
	}
	if env.LogFormat != nil {
		cfg.Logging.Format = strings.ToLower(*env.LogFormat)
	}
	if env.LogSource != nil {
		cfg.Logging.Source = *env.LogSource
	}
	if env.LogFile != nil {
		cfg.Logging.File = *env.LogFile
	}
	return nil
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	suffix, ok := envKeys[key]
	if !ok {
		return "", false
	}
	name := EnvPrefix + "_" + suffix
	if os.Getenv(name) != "" {
		return name, true
	}
	return "", false
}

// Validate rejects values the editor cannot run with.
func (c AppConfig) Validate() error {
	if _, ok := model.ParseMoveMode(c.Editor.MoveMode); !ok {
		return fmt.Errorf("invalid move_mode %q", c.Editor.MoveMode)
	}
	if _, ok := model.ParseFillRule(c.Editor.DefaultFillRule); !ok {
		return fmt.Errorf("invalid default_fill_rule %q", c.Editor.DefaultFillRule)
	}
	if c.Editor.SnapX <= 0 || c.Editor.SnapY <= 0 {
		return fmt.Errorf("snap step must be positive, got %gx%g", c.Editor.SnapX, c.Editor.SnapY)
	}
	if c.Editor.HitThreshold < 0 {
		return fmt.Errorf("hit_threshold must not be negative, got %g", c.Editor.HitThreshold)
	}
	if c.History.MaxDepth < 0 {
		return fmt.Errorf("history max_depth must not be negative, got %d", c.History.MaxDepth)
	}
	return nil
}

// EditorOptions converts the editor section to project options. Invalid
// enum values fall back to the defaults.
func (c AppConfig) EditorOptions() *model.Options {
	e := c.Editor
	mode, _ := model.ParseMoveMode(e.MoveMode)
	rule, _ := model.ParseFillRule(e.DefaultFillRule)
	return &model.Options{
		SnapToGrid:       e.SnapToGrid,
		SnapX:            e.SnapX,
		SnapY:            e.SnapY,
		HitThreshold:     e.HitThreshold,
		MoveMode:         mode,
		DefaultIsStroked: e.DefaultIsStroked,
		DefaultIsFilled:  e.DefaultIsFilled,
		DefaultIsClosed:  e.DefaultIsClosed,
		DefaultFillRule:  rule,
		TryToConnect:     e.TryToConnect,
	}
}

// HistoryOptions converts the history section.
func (c AppConfig) HistoryOptions() history.Config {
	return history.Config{MaxDepth: c.History.MaxDepth}
}

// LogOptions converts the logging section.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}
