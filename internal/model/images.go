/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package model

import (
	"path/filepath"
	"sort"
	"strings"
)

// ImageKeyPrefix is prepended to file names to build image cache keys.
const ImageKeyPrefix = "Images/"

// ImageCache maps image keys to encoded image bytes. It is owned by the
// project and only touched from the editing context.
type ImageCache struct {
	images    map[string][]byte
	listeners []func()
}

func NewImageCache() *ImageCache { return &ImageCache{images: map[string][]byte{}} }

// ImageKey builds the cache key for a file path.
func ImageKey(path string) string {
	name := filepath.Base(strings.ReplaceAll(path, "\\", "/"))
	return ImageKeyPrefix + name
}

// OnChange registers f to run after the key set changed.
func (c *ImageCache) OnChange(f func()) {
	if f != nil {
		c.listeners = append(c.listeners, f)
	}
}

func (c *ImageCache) changed() {
	for _, f := range c.listeners {
		f()
	}
}

// AddImageFromFile stores bytes under the key derived from path. An existing
// key keeps its bytes.
func (c *ImageCache) AddImageFromFile(path string, data []byte) string {
	key := ImageKey(path)
	c.AddImage(key, data)
	return key
}

// AddImage stores data under key unless the key is already present.
func (c *ImageCache) AddImage(key string, data []byte) {
	if _, ok := c.images[key]; ok {
		return
	}
	c.images[key] = data
	c.changed()
}

// GetImage returns the bytes for key.
func (c *ImageCache) GetImage(key string) ([]byte, bool) {
	b, ok := c.images[key]
	return b, ok
}

func (c *ImageCache) RemoveImage(key string) {
	if _, ok := c.images[key]; !ok {
		return
	}
	delete(c.images, key)
	c.changed()
}

// PurgeUnusedImages drops every key not in used.
func (c *ImageCache) PurgeUnusedImages(used map[string]struct{}) {
	removed := false
	for k := range c.images {
		if _, ok := used[k]; !ok {
			delete(c.images, k)
			removed = true
		}
	}
	if removed {
		c.changed()
	}
}

// Keys returns the sorted key set.
func (c *ImageCache) Keys() []string {
	out := make([]string, 0, len(c.images))
	for k := range c.images {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *ImageCache) Len() int { return len(c.images) }
