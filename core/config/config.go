/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Jadwal Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jadwal/jadwal/core/controller"
	"github.com/jadwal/jadwal/datasources"
)

// Config is the server configuration.
//
// Example (YAML):
//
//	listen: 127.0.0.1:8097
//	title: Jadwal Praktikum
//	endpoint: https://script.google.com/macros/s/<id>/exec
//	timeout: 15s
//	sheets:
//	  - id: Praktikum A
//	    label: Kelas A
type Config struct {
	Listen string `yaml:"listen"`
	Title  string `yaml:"title"`

	// Data source
	SourceType   string        `yaml:"source_type"`
	Endpoint     string        `yaml:"endpoint"`
	SheetParam   string        `yaml:"sheet_param"`
	Timeout      time.Duration `yaml:"timeout"`
	RateLimitRPS float64       `yaml:"rate_limit_rps"`

	// Directory of <sheet id>.csv files for source_type csv
	CsvDir string `yaml:"csv_dir"`

	SearchDebounce time.Duration `yaml:"search_debounce"`
	SessionTTL     time.Duration `yaml:"session_ttl"`

	// IANA zone used to read and show dates
	Timezone string `yaml:"timezone"`

	Sheets []datasources.Sheet `yaml:"sheets"`
}

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		Listen:         "127.0.0.1:8097",
		Title:          "Jadwal Praktikum",
		SourceType:     datasources.SheetsSourceType,
		SheetParam:     datasources.DefaultSheetParam,
		Timeout:        30 * time.Second,
		SearchDebounce: controller.DefaultDebounce,
		SessionTTL:     30 * time.Minute,
		Timezone:       "Asia/Jakarta",
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	switch c.SourceType {
	case datasources.SheetsSourceType:
		if err := c.validateEndpoint(); err != nil {
			return err
		}
	case datasources.CsvSourceType:
		if strings.TrimSpace(c.CsvDir) == "" {
			return fmt.Errorf("csv_dir is required for source_type %q", c.SourceType)
		}
	default:
		return fmt.Errorf("unsupported source_type %q", c.SourceType)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must not be negative")
	}

	if len(c.Sheets) == 0 {
		return fmt.Errorf("at least one sheet is required")
	}
	seen := make(map[string]bool, len(c.Sheets))
	for i, s := range c.Sheets {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("sheet %d has no id", i)
		}
		if seen[id] {
			return fmt.Errorf("duplicate sheet id %q", id)
		}
		seen[id] = true
		c.Sheets[i].ID = id
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEndpoint() error {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute http(s) URL", c.Endpoint)
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SheetsOptions returns the options of the sheets loader.
func (c *Config) SheetsOptions() datasources.SheetsOptions {
	return datasources.SheetsOptions{
		Endpoint:     c.Endpoint,
		SheetParam:   c.SheetParam,
		Timeout:      c.Timeout,
		RateLimitRPS: c.RateLimitRPS,
	}
}
