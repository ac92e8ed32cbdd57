// Copyright 2025 Ayur LLM Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import "fmt"

// Config holds the chunking and heading-detection parameters for the
// ingest pipeline.
type Config struct {
	// TargetChars is the approximate passage size. Roughly 350-600
	// tokens depending on the text.
	TargetChars int

	// OverlapChars is the tail of the previous passage carried into
	// the next one.
	OverlapChars int

	// MinHeadingLen and MaxHeadingLen bound heading candidates.
	MinHeadingLen int
	MaxHeadingLen int

	// DropTinyPageChars drops near-empty pages (scans, blanks) below
	// this many characters.
	DropTinyPageChars int
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// WithTargetChars sets the approximate passage size in characters.
func WithTargetChars(n int) ConfigOption {
	return func(c *Config) {
		c.TargetChars = n
	}
}

// WithOverlapChars sets the overlap carried between passages.
func WithOverlapChars(n int) ConfigOption {
	return func(c *Config) {
		c.OverlapChars = n
	}
}

// WithHeadingLengths sets the accepted heading length bounds.
func WithHeadingLengths(min, max int) ConfigOption {
	return func(c *Config) {
		c.MinHeadingLen = min
		c.MaxHeadingLen = max
	}
}

// WithDropTinyPageChars sets the minimum page size kept by the pipeline.
func WithDropTinyPageChars(n int) ConfigOption {
	return func(c *Config) {
		c.DropTinyPageChars = n
	}
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		TargetChars:       2200,
		OverlapChars:      250,
		MinHeadingLen:     4,
		MaxHeadingLen:     120,
		DropTinyPageChars: 30,
	}
}

// NewConfig creates a Config starting from defaults and applying options.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.TargetChars < 1 {
		return fmt.Errorf("target chars must be positive, got %d", c.TargetChars)
	}
	if c.OverlapChars < 0 {
		return fmt.Errorf("overlap chars must be non-negative, got %d", c.OverlapChars)
	}
	if c.OverlapChars >= c.TargetChars {
		return fmt.Errorf("overlap chars (%d) must be smaller than target chars (%d)", c.OverlapChars, c.TargetChars)
	}
	if c.MinHeadingLen < 1 || c.MaxHeadingLen < c.MinHeadingLen {
		return fmt.Errorf("invalid heading length bounds [%d, %d]", c.MinHeadingLen, c.MaxHeadingLen)
	}
	if c.DropTinyPageChars < 0 {
		return fmt.Errorf("drop tiny page chars must be non-negative, got %d", c.DropTinyPageChars)
	}
	return nil
}
