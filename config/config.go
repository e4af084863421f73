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

// Package config reads the settings of the certpdf programs from a YAML
// file and from CERTPDF_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/certpdf/certificate"
	"seehuhn.de/go/certpdf/compose"
	"seehuhn.de/go/certpdf/fontcache"
	"seehuhn.de/go/certpdf/imageload"
)

// Config holds the settings of the certpdf programs.
type Config struct {
	FontsDir   string `yaml:"fonts_dir"`
	FontMap    string `yaml:"font_map"`
	UploadsDir string `yaml:"uploads_dir"`

	Locale             string `yaml:"locale"`
	Debug              bool   `yaml:"debug"`
	ForceDefaultLayout bool   `yaml:"force_default_layout"`

	ImageTimeout   time.Duration `yaml:"image_timeout"`
	ImageCacheSize int           `yaml:"image_cache_size"`

	VerifyURL     string `yaml:"verify_url"`
	OwnerPassword string `yaml:"owner_password"`
	Author        string `yaml:"author"`

	Listen      string `yaml:"listen"`
	Environment string `yaml:"environment"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		FontsDir:       "./fonts",
		UploadsDir:     "./uploads",
		Locale:         "ar",
		ImageTimeout:   imageload.DefaultTimeout,
		ImageCacheSize: imageload.DefaultCacheSize,
		Listen:         ":8080",
		Environment:    "development",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads the configuration file at path, if path is not empty, and
// applies the environment overrides.  Settings missing from both take
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fd, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fd.Close()
		err = cfg.read(fd)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	err := cfg.applyEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) read(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// applyEnv overrides settings from CERTPDF_* environment variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	var errs []error
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	flag := func(key string, dst *bool) {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("CERTPDF_FONTS_DIR", &c.FontsDir)
	str("CERTPDF_FONT_MAP", &c.FontMap)
	str("CERTPDF_UPLOADS_DIR", &c.UploadsDir)
	str("CERTPDF_LOCALE", &c.Locale)
	flag("CERTPDF_DEBUG", &c.Debug)
	flag("CERTPDF_FORCE_DEFAULT_LAYOUT", &c.ForceDefaultLayout)
	if v := getenv("CERTPDF_IMAGE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: CERTPDF_IMAGE_TIMEOUT: %w", err))
		} else {
			c.ImageTimeout = d
		}
	}
	if v := getenv("CERTPDF_IMAGE_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: CERTPDF_IMAGE_CACHE_SIZE: %w", err))
		} else {
			c.ImageCacheSize = n
		}
	}
	str("CERTPDF_VERIFY_URL", &c.VerifyURL)
	str("CERTPDF_OWNER_PASSWORD", &c.OwnerPassword)
	str("CERTPDF_AUTHOR", &c.Author)
	str("CERTPDF_LISTEN", &c.Listen)
	str("CERTPDF_ENV", &c.Environment)
	str("CERTPDF_LOG_LEVEL", &c.LogLevel)
	str("CERTPDF_LOG_FORMAT", &c.LogFormat)

	return errors.Join(errs...)
}

// IsProduction reports whether the programs run in a production
// environment, where error details are not shown to clients.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// GeneratorOptions returns the options for a certificate generator using
// this configuration.
func (c *Config) GeneratorOptions(logger *slog.Logger) (*compose.Options, error) {
	fonts := fontcache.NewResolver(c.FontsDir, nil, logger)
	if c.FontMap != "" {
		data, err := os.ReadFile(c.FontMap)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		err = fonts.AddFontMap(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", c.FontMap, err)
		}
	}

	images := imageload.New(&imageload.Options{
		UploadsDir: c.UploadsDir,
		Timeout:    c.ImageTimeout,
		Cache:      imageload.NewCache(c.ImageCacheSize),
		Logger:     logger,
	})

	return &compose.Options{
		Fonts:              fonts,
		Images:             images,
		Locale:             certificate.ParseLocale(c.Locale),
		ForceDefaultLayout: c.ForceDefaultLayout,
		Debug:              c.Debug,
		VerifyURL:          c.VerifyURL,
		OwnerPassword:      c.OwnerPassword,
		Author:             c.Author,
		Logger:             logger,
	}, nil
}
