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

package fontcache

import (
	"os"
	"path/filepath"
	"sync"
)

// Cache holds the contents of font files in memory, keyed by absolute path.
// Entries are never evicted; the set of fonts is small and fixed.
//
// It is safe to use a Cache concurrently from multiple goroutines.
type Cache struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{files: make(map[string][]byte)}
}

// Load returns the contents of the file at path, reading it from disk on
// the first call.  The returned slice must not be modified.
func (c *Cache) Load(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	data, ok := c.files[abs]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	data, err = os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	// A concurrent load may have stored the same file already.  Both copies
	// have the same content, so the last write wins.
	c.mu.Lock()
	c.files[abs] = data
	c.mu.Unlock()
	return data, nil
}

// Has reports whether the file at path is cached.
func (c *Cache) Has(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	c.mu.RLock()
	_, ok := c.files[abs]
	c.mu.RUnlock()
	return ok
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}
