// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the translate-helper configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/larentoun/translate-helper/api"
	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/source"
	"github.com/larentoun/translate-helper/store"
)

// FileName is the name of the configuration file.
const FileName = "translate-helper.yaml"

// Config is the translate-helper configuration.
type Config struct {
	// Dir is the directory holding the source documents.
	Dir string `yaml:"dir"`

	// DefaultSource receives new keys which name no source.
	DefaultSource string `yaml:"default_source"`

	// Listen is the address the API server listens on.
	Listen string `yaml:"listen"`

	// Origin is the editor UI origin allowed to call the API.
	Origin string `yaml:"origin"`

	// Watch reloads the store when documents are edited on disk.
	Watch bool `yaml:"watch"`

	// Tags is the known tag vocabulary.
	Tags []string `yaml:"tags"`

	// RejectUnknownTags rejects entries with tags outside of Tags.
	RejectUnknownTags bool `yaml:"reject_unknown_tags"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dir:           "translations",
		DefaultSource: store.DefaultSource,
		Listen:        "localhost:8000",
		Origin:        api.DefaultOrigin,
		Watch:         true,
		Tags:          slices.Clone(entry.DefaultTags),
	}
}

// Parse parses YAML data over the default configuration. Unknown fields are
// an error.
func Parse(data []byte) (*Config, error) {
	c := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile loads the configuration file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find loads the first existing file in paths. If none exist the default
// configuration is returned with an empty path.
func Find(paths []string) (*Config, string, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("reading config: %w", err)
		}
		c, err := LoadFile(p)
		return c, p, err
	}
	return Default(), "", nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("dir: must not be empty")
	}
	if err := source.ValidateName(c.DefaultSource); err != nil {
		return fmt.Errorf("default_source: %w", err)
	}
	return nil
}

// Schema returns the entry schema described by the configuration.
func (c *Config) Schema() *entry.Schema {
	return &entry.Schema{
		Tags:              slices.Clone(c.Tags),
		RejectUnknownTags: c.RejectUnknownTags,
	}
}
