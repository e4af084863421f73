// seehuhn.de/go/certpdf - generate PDF certificates from layout templates
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package imageload

import "sync"

// DefaultCacheSize is the default capacity of a [Cache].
const DefaultCacheSize = 50

// Cache holds normalized images in memory.
//
// Once the capacity is reached, no further entries are added and no
// entries are evicted.  Callers then use the images they loaded without
// caching them.  It is safe to use a Cache concurrently from multiple
// goroutines.
type Cache struct {
	capacity int

	mu      sync.RWMutex
	entries map[string]*Image
}

// NewCache returns an empty cache which holds up to capacity images.
// A capacity of zero or less disables caching.
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*Image),
	}
}

// Put adds an image to the cache.  The return value reports whether the
// image is now cached.
func (c *Cache) Put(key string, img *Image) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = img
		return true
	}
	if len(c.entries) >= c.capacity {
		return false
	}
	c.entries[key] = img
	return true
}

// Get returns the image stored under key.
func (c *Cache) Get(key string) (*Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.entries[key]
	return img, ok
}

// Has returns true if the cache contains the given key.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
