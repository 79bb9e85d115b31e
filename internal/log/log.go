/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log configures the slog logger shared by every editor component.
// Records go to the console and, optionally, to a rotated JSON file. A
// context created by WithProject tags each record with the project it
// concerns.
package log

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	lj "gopkg.in/natefinch/lumberjack.v2"

	"core2d/internal/version"
)

// EnvPrefix prefixes the logging variables read by FromEnv.
const EnvPrefix = "C2D"

// Options selects level, console format and the optional log file.
type Options struct {
	Level     string `envconfig:"LOG_LEVEL" default:"info"`
	Format    string `envconfig:"LOG_FORMAT" default:"console"` // console or json
	AddSource bool   `envconfig:"LOG_SOURCE"`
	File      string `envconfig:"LOG_FILE"` // rotated JSON log, off when empty
}

// Rotation of the log file.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

var (
	mu      sync.RWMutex
	current *slog.Logger
)

// L returns the application logger. The first call without Init configures
// it from the environment.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l == nil {
		Init(FromEnv())
		mu.RLock()
		l = current
		mu.RUnlock()
	}
	return l
}

// Init replaces the application logger and slog.Default.
func Init(opts Options) {
	l := slog.New(newHandler(opts, os.Stderr)).With(
		slog.String("app", "core2d"),
		slog.String("ver", version.String()),
	)
	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)
}

func newHandler(opts Options, console *os.File) slog.Handler {
	level := parseLevel(opts.Level)
	var hs fanout
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		hs = append(hs, slog.NewJSONHandler(console, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}))
	} else {
		hs = append(hs, newConsoleHandler(console, level, opts.AddSource))
	}
	if f := strings.TrimSpace(opts.File); f != "" {
		w := &lj.Logger{Filename: f, MaxSize: fileMaxSizeMB, MaxBackups: fileMaxBackups, MaxAge: fileMaxAgeDays, Compress: true}
		hs = append(hs, slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}))
	}
	if len(hs) == 1 {
		return projectHandler{hs[0]}
	}
	return projectHandler{hs}
}

// FromEnv reads C2D_LOG_LEVEL, C2D_LOG_FORMAT, C2D_LOG_SOURCE and
// C2D_LOG_FILE. Malformed values leave the defaults in place.
func FromEnv() Options {
	var o Options
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return Options{Level: "info", Format: "console"}
	}
	return o
}

// WithComponent returns a logger for one editor component, such as
// "storage" or "history".
func WithComponent(name string) *slog.Logger { return L().With(slog.String(componentKey, name)) }

// WithOperation narrows l to one operation of its component.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String(opKey, op)) }

const (
	componentKey = "component"
	opKey        = "op"
	projectKey   = "project"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
