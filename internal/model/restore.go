/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

type restorer interface{ restoreID(id string) }

func (b *base) restoreID(id string) { b.id = id }

// RestoreID gives s a persisted identity. Decoders call it right after
// construction, before the shape is shared.
func RestoreID(s Shape, id string) {
	if r, ok := s.(restorer); ok && id != "" {
		r.restoreID(id)
	}
}
