/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	applog "core2d/internal/log"
	"core2d/internal/storage"
)

// DefaultAutosaveInterval is used when NewAutosaver gets a non-positive interval.
const DefaultAutosaveInterval = 2 * time.Minute

// Autosaver saves the project whenever its history has moved since the last
// save. Edits are single threaded, so Run holds the given lock while it
// reads the project; pass the lock the editing loop holds around edits.
type Autosaver struct {
	ph       *storage.ProjectHandle
	interval time.Duration
	lock     sync.Locker
	saved    uint64
	log      *slog.Logger
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// NewAutosaver creates an autosaver for ph. A nil lock means the caller
// drives SaveIfChanged from the editing goroutine itself. The current
// history version counts as saved.
func NewAutosaver(ph *storage.ProjectHandle, interval time.Duration, lock sync.Locker) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	if lock == nil {
		lock = noLock{}
	}
	a := &Autosaver{ph: ph, interval: interval, lock: lock, log: applog.WithComponent("autosave")}
	if ph != nil && ph.Project != nil {
		a.saved = ph.Project.History.Version()
	}
	return a
}

// SaveIfChanged saves the project when the history changed since the last
// save. It reports whether a save happened.
func (a *Autosaver) SaveIfChanged() (bool, error) {
	if a.ph == nil || a.ph.Project == nil {
		return false, errors.New("autosave: no project")
	}
	a.lock.Lock()
	defer a.lock.Unlock()
	v := a.ph.Project.History.Version()
	if v == a.saved {
		return false, nil
	}
	if err := storage.Save(a.ph); err != nil {
		return false, err
	}
	a.saved = v
	a.log.Debug("autosaved", slog.String("path", a.ph.ManifestPath), slog.Uint64("version", v))
	return true, nil
}

// Run saves on every tick until ctx is done, then makes one final save of
// pending changes. Save errors are logged and do not stop the loop.
func (a *Autosaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := a.SaveIfChanged(); err != nil {
				a.log.Warn("autosave failed", slog.Any("err", err))
			}
		case <-ctx.Done():
			if _, err := a.SaveIfChanged(); err != nil {
				a.log.Warn("final autosave failed", slog.Any("err", err))
			}
			return
		}
	}
}
