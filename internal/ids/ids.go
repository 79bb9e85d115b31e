/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ids issues stable identities. Shapes and containers get prefixed
// type ids, database entities get UUIDs.
package ids

import (
	"fmt"

	"github.com/google/uuid"
	"go.jetify.com/typeid/v2"
)

const (
	PrefixPoint     = "pt"
	PrefixLine      = "line"
	PrefixRectangle = "rect"
	PrefixEllipse   = "ell"
	PrefixArc       = "arc"
	PrefixCubic     = "cubic"
	PrefixQuadratic = "quad"
	PrefixText      = "text"
	PrefixImage     = "img"
	PrefixPath      = "path"
	PrefixGroup     = "group"
	PrefixLayer     = "layer"
	PrefixContainer = "cont"
	PrefixDocument  = "doc"
	PrefixProject   = "proj"
	PrefixStyle     = "style"
	PrefixLibrary   = "lib"
)

// New returns a fresh type id with the given prefix.
func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

// NewUUID returns a random UUID string, used for databases, columns and records.
func NewUUID() string { return uuid.NewString() }

// Prefix returns the prefix of a type id.
func Prefix(id string) (string, error) {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	return parsed.Prefix(), nil
}

// Validate checks that id is a type id carrying expectedPrefix.
func Validate(id, expectedPrefix string) error {
	p, err := Prefix(id)
	if err != nil {
		return err
	}
	if p != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, p, id)
	}
	return nil
}

// ValidUUID reports whether s parses as a UUID.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
