// Copyright 2025 Agentic World, LLC (Sherin Thomas)
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

package pagesnake

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is a desktop Chrome User-Agent. Many landing pages serve
// a stripped or cloaked variant to non-browser agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultAccept is the Accept header sent with page requests
const DefaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"

// RenderingConfig controls JavaScript rendering behavior with headless Chrome
type RenderingConfig struct {
	// InitialWaitMs is the wait after page load for scripts to build the page
	InitialWaitMs int `yaml:"initial_wait_ms"`
	// FinalWaitMs is the wait before capturing HTML
	FinalWaitMs int `yaml:"final_wait_ms"`
	// TimeoutSecs bounds the whole rendering session
	TimeoutSecs int `yaml:"timeout_secs"`
}

// Config contains all options for loading and analyzing a landing page
type Config struct {
	// UserAgent is the User-Agent string used by HTTP requests
	UserAgent string `yaml:"user_agent"`
	// Accept is the Accept header for the page request
	Accept string `yaml:"accept"`
	// Headers contains extra headers for every request
	Headers map[string]string `yaml:"headers"`
	// Timeout is the page request timeout
	Timeout time.Duration `yaml:"timeout"`
	// MaxBodySize limits the page and sub-resource bodies in bytes. 0 means unlimited.
	MaxBodySize int `yaml:"max_body_size"`
	// InlineStylesheets replaces <link rel=stylesheet> with fetched <style> blocks
	InlineStylesheets bool `yaml:"inline_stylesheets"`
	// InlineScripts replaces <script src> with the fetched script text
	InlineScripts bool `yaml:"inline_scripts"`
	// AbsolutizeImages rewrites image URLs to absolute form
	AbsolutizeImages bool `yaml:"absolutize_images"`
	// EmbedImages downloads external images into base64 data URIs
	EmbedImages bool `yaml:"embed_images"`
	// MaxImageBytes caps each embedded image
	MaxImageBytes int64 `yaml:"max_image_bytes"`
	// ImageTimeout bounds each image download
	ImageTimeout time.Duration `yaml:"image_timeout"`
	// DetectCharset enables character encoding detection for bodies without a declared charset
	DetectCharset bool `yaml:"detect_charset"`
	// EnableRendering loads URLs through headless Chrome so script-built pages are captured
	EnableRendering bool `yaml:"enable_rendering"`
	// RenderingConfig tunes the rendering waits. Only applies when EnableRendering is true.
	RenderingConfig *RenderingConfig `yaml:"rendering"`
	// RobotsTxtMode is "ignore" (default) or "respect"
	RobotsTxtMode string `yaml:"robots_txt_mode"`
	// TraceHTTP records connection timings of the page request
	TraceHTTP bool `yaml:"trace_http"`
	// Logger receives warnings for degraded sub-resource loads
	Logger *slog.Logger `yaml:"-"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		UserAgent:         DefaultUserAgent,
		Accept:            DefaultAccept,
		Timeout:           20 * time.Second,
		MaxBodySize:       10 * 1024 * 1024, // 10MB
		InlineStylesheets: true,
		InlineScripts:     true,
		AbsolutizeImages:  true,
		EmbedImages:       false,
		MaxImageBytes:     2 * 1024 * 1024, // 2MB
		ImageTimeout:      2 * time.Second,
		DetectCharset:     true,
		EnableRendering:   false,
		RenderingConfig: &RenderingConfig{
			InitialWaitMs: 1500,
			FinalWaitMs:   500,
			TimeoutSecs:   30,
		},
		RobotsTxtMode: "ignore",
	}
}

// mergeConfig overlays the non-zero fields of cfg on the defaults.
// Boolean toggles that default to true are taken from cfg as-is.
func mergeConfig(cfg *Config) *Config {
	merged := NewDefaultConfig()
	if cfg == nil {
		merged.Logger = slog.Default()
		return merged
	}

	if cfg.UserAgent != "" {
		merged.UserAgent = cfg.UserAgent
	}
	if cfg.Accept != "" {
		merged.Accept = cfg.Accept
	}
	if cfg.Headers != nil {
		merged.Headers = cfg.Headers
	}
	if cfg.Timeout != 0 {
		merged.Timeout = cfg.Timeout
	}
	// MaxBodySize: always use the caller's value, 0 means unlimited
	merged.MaxBodySize = cfg.MaxBodySize
	merged.InlineStylesheets = cfg.InlineStylesheets
	merged.InlineScripts = cfg.InlineScripts
	merged.AbsolutizeImages = cfg.AbsolutizeImages
	merged.EmbedImages = cfg.EmbedImages
	if cfg.MaxImageBytes != 0 {
		merged.MaxImageBytes = cfg.MaxImageBytes
	}
	if cfg.ImageTimeout != 0 {
		merged.ImageTimeout = cfg.ImageTimeout
	}
	merged.DetectCharset = cfg.DetectCharset
	merged.EnableRendering = cfg.EnableRendering
	if cfg.RenderingConfig != nil {
		merged.RenderingConfig = cfg.RenderingConfig
	}
	if cfg.RobotsTxtMode != "" {
		merged.RobotsTxtMode = cfg.RobotsTxtMode
	}
	merged.TraceHTTP = cfg.TraceHTTP
	merged.Logger = cfg.Logger
	if merged.Logger == nil {
		merged.Logger = slog.Default()
	}
	return merged
}

var envMap = map[string]func(*Config, string){
	"PAGESNAKE_USER_AGENT": func(c *Config, val string) {
		c.UserAgent = val
	},
	"PAGESNAKE_TIMEOUT": func(c *Config, val string) {
		if d, err := time.ParseDuration(val); err == nil {
			c.Timeout = d
		}
	},
	"PAGESNAKE_MAX_BODY_SIZE": func(c *Config, val string) {
		if size, err := strconv.Atoi(val); err == nil {
			c.MaxBodySize = size
		}
	},
	"PAGESNAKE_EMBED_IMAGES": func(c *Config, val string) {
		c.EmbedImages = isYesString(val)
	},
	"PAGESNAKE_MAX_IMAGE_BYTES": func(c *Config, val string) {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.MaxImageBytes = size
		}
	},
	"PAGESNAKE_ENABLE_RENDERING": func(c *Config, val string) {
		c.EnableRendering = isYesString(val)
	},
	"PAGESNAKE_DETECT_CHARSET": func(c *Config, val string) {
		c.DetectCharset = isYesString(val)
	},
	"PAGESNAKE_TRACE_HTTP": func(c *Config, val string) {
		c.TraceHTTP = isYesString(val)
	},
	"PAGESNAKE_ROBOTSTXT": func(c *Config, val string) {
		c.RobotsTxtMode = strings.ToLower(val)
	},
}

// ApplyEnv overrides config fields from PAGESNAKE_* environment variables
func (c *Config) ApplyEnv() {
	for k, fn := range envMap {
		if v, ok := os.LookupEnv(k); ok {
			fn(c, v)
		}
	}
}

// LoadConfigFile reads a YAML config file on top of the defaults
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func isYesString(s string) bool {
	switch strings.ToLower(s) {
	case "1", "yes", "true", "y":
		return true
	}
	return false
}
