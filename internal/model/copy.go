/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import "core2d/internal/ids"

// Shared maps source objects to their clones during a deep copy. Passing the
// same map to several Copy calls preserves aliasing between them: a point
// held by two shapes is cloned once and held by both clones. A nil Shared
// disables the lookup, so every reference is cloned independently.
type Shared map[any]any

type ownerKey string

// NewShared returns an empty shared map.
func NewShared() Shared { return Shared{} }

func (s Shared) lookup(k any) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s[k]
	return v, ok
}

func (s Shared) store(k, v any) {
	if s != nil {
		s[k] = v
	}
}

// mapOwner records that shape id from is cloned as to, so points owned by
// from are re-owned by to.
func (s Shared) mapOwner(from, to string) {
	if s != nil && from != "" {
		s[ownerKey(from)] = to
	}
}

func (s Shared) owner(from string) (string, bool) {
	v, ok := s.lookup(ownerKey(from))
	if !ok {
		return "", false
	}
	return v.(string), true
}

func newID(prefix string) string { return ids.New(prefix) }

// CopyShapes clones shapes through one shared map.
func CopyShapes(shapes []Shape) []Shape {
	shared := NewShared()
	out := make([]Shape, 0, len(shapes))
	for _, s := range shapes {
		if s != nil {
			out = append(out, s.Copy(shared))
		}
	}
	return out
}

// startCopy allocates the clone identity and registers the owner mapping
// before any owned point is cloned.
func startCopy(b *base, prefix string, shared Shared) base {
	c := b.copyBase(prefix, shared)
	shared.mapOwner(b.id, c.id)
	return c
}
