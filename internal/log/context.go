/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"context"
	"errors"
	"log/slog"
)

type projectCtxKey struct{}

// WithProject returns a context whose records carry the project root as the
// "project" attribute. Storage and crash handling log with such a context.
func WithProject(ctx context.Context, root string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, projectCtxKey{}, root)
}

// Project returns the project root stored by WithProject.
func Project(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	root, ok := ctx.Value(projectCtxKey{}).(string)
	return root, ok && root != ""
}

// projectHandler adds the project of the context to every record.
type projectHandler struct{ next slog.Handler }

func (h projectHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h projectHandler) Handle(ctx context.Context, r slog.Record) error {
	if root, ok := Project(ctx); ok {
		r = r.Clone()
		r.AddAttrs(slog.String(projectKey, root))
	}
	return h.next.Handle(ctx, r)
}

func (h projectHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return projectHandler{h.next.WithAttrs(attrs)}
}

func (h projectHandler) WithGroup(name string) slog.Handler {
	return projectHandler{h.next.WithGroup(name)}
}

// fanout passes records to every handler.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
