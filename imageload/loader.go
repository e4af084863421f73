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

// Package imageload reads the background and auxiliary images of
// certificate templates from the uploads directory, from absolute paths,
// or over HTTP.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seehuhn.de/go/certpdf/internal/logging"
)

// Defaults for [Options].
const (
	DefaultTimeout = 30 * time.Second
	MaxSize        = 20 << 20
)

// UploadsPrefix marks image paths which are relative to the uploads
// directory.
const UploadsPrefix = "/uploads/"

// Errors returned by [Loader.Load].
var (
	ErrOutsideUploads = errors.New("imageload: path outside of uploads directory")
	ErrTooLarge       = errors.New("imageload: image too large")
)

// Options configure a [Loader].
type Options struct {
	// UploadsDir is the directory for paths starting with [UploadsPrefix]
	// and for relative paths.
	UploadsDir string

	// Timeout limits the time for fetching an image over HTTP.
	// The default is [DefaultTimeout].
	Timeout time.Duration

	// Cache, if not nil, holds images loaded from the file system.
	// If nil, a cache of size [DefaultCacheSize] is used.
	Cache *Cache

	// Client is used for HTTP requests.  If nil, a client with the
	// configured timeout is used.
	Client *http.Client

	Logger *slog.Logger
}

// Loader reads and normalizes images.
// It is safe for concurrent use.
type Loader struct {
	uploads string
	client  *http.Client
	cache   *Cache
	logger  *slog.Logger
}

// New returns a new Loader.  The argument may be nil, to use default
// options.
func New(opt *Options) *Loader {
	if opt == nil {
		opt = &Options{}
	}
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := opt.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	cache := opt.Cache
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	return &Loader{
		uploads: opt.UploadsDir,
		client:  client,
		cache:   cache,
		logger:  logging.Or(opt.Logger),
	}
}

// IsURL reports whether src refers to an image on the network.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Resolve maps an image path from a template to a file system path.
//
// Existing absolute paths are used as they are.  Other paths, including
// those starting with [UploadsPrefix], are taken relative to the uploads
// directory and must not leave it.
func (l *Loader) Resolve(src string) (string, error) {
	if filepath.IsAbs(src) && !strings.HasPrefix(src, UploadsPrefix) {
		if _, err := os.Stat(src); err == nil {
			return src, nil
		}
	}

	rel := strings.TrimPrefix(filepath.ToSlash(src), "/")
	rel = strings.TrimPrefix(rel, strings.TrimPrefix(UploadsPrefix, "/"))

	base, err := filepath.Abs(l.uploads)
	if err != nil {
		return "", err
	}
	path := filepath.Join(base, filepath.FromSlash(rel))
	r, err := filepath.Rel(base, path)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideUploads, src)
	}
	return path, nil
}

// Load reads the image at src and normalizes it for embedding.
// src may be an http or https URL or a file path, see [Loader.Resolve].
// Images read from the file system are cached.
func (l *Loader) Load(ctx context.Context, src string) (*Image, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmpty
	}
	if IsURL(src) {
		data, err := l.fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		return Normalize(data)
	}

	path, err := l.Resolve(src)
	if err != nil {
		return nil, err
	}
	if img, ok := l.cache.Get(path); ok {
		l.logger.Debug("image cache hit", "path", path)
		return img, nil
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !l.cache.Put(path, img) {
		l.logger.Debug("image cache full, not caching", "path", path)
	}
	return img, nil
}

func readFile(path string) ([]byte, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return readLimited(fd)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imageload: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imageload: %s: %s", url, resp.Status)
	}
	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
