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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestConfigMerging verifies that caller config is overlaid on the defaults
// rather than replacing them with zero values.
func TestConfigMerging(t *testing.T) {
	t.Run("Single field keeps string defaults", func(t *testing.T) {
		c := mergeConfig(&Config{UserAgent: "test-agent"})

		if c.UserAgent != "test-agent" {
			t.Error("UserAgent should be 'test-agent'")
		}
		if c.Accept != DefaultAccept {
			t.Errorf("Accept should keep its default, got %q", c.Accept)
		}
		if c.RobotsTxtMode != "ignore" {
			t.Errorf("RobotsTxtMode should remain 'ignore', got %q", c.RobotsTxtMode)
		}
		if c.Timeout != 20*time.Second {
			t.Errorf("Timeout should keep its default, got %v", c.Timeout)
		}
	})

	t.Run("Multiple fields can override defaults", func(t *testing.T) {
		c := mergeConfig(&Config{
			UserAgent:     "custom-agent",
			MaxBodySize:   1024, // 1KB
			MaxImageBytes: 512,
			RobotsTxtMode: "respect",
		})

		if c.UserAgent != "custom-agent" {
			t.Error("UserAgent should be 'custom-agent'")
		}
		if c.MaxBodySize != 1024 {
			t.Error("MaxBodySize should be 1024")
		}
		if c.MaxImageBytes != 512 {
			t.Error("MaxImageBytes should be 512")
		}
		if c.RobotsTxtMode != "respect" {
			t.Error("RobotsTxtMode should be 'respect'")
		}
		if c.ImageTimeout != 2*time.Second {
			t.Errorf("ImageTimeout should keep its default, got %v", c.ImageTimeout)
		}
	})

	t.Run("Empty config behaves differently from nil config", func(t *testing.T) {
		c1 := mergeConfig(&Config{})
		c2 := mergeConfig(nil)

		// MaxBodySize: empty config has 0 (unlimited), nil config has default 10MB
		if c1.MaxBodySize == c2.MaxBodySize {
			t.Error("Empty config has MaxBodySize=0 (unlimited), nil config has 10MB")
		}
		// Toggles are taken as-is, so an empty config turns inlining off
		if c1.InlineStylesheets || !c2.InlineStylesheets {
			t.Error("InlineStylesheets should follow the caller's config")
		}
		if c1.UserAgent != c2.UserAgent {
			t.Error("Empty config should have same UserAgent as nil config")
		}
		if c1.Logger == nil || c2.Logger == nil {
			t.Error("merged config should always carry a logger")
		}
	})

	t.Run("Nil config uses all defaults", func(t *testing.T) {
		c := mergeConfig(nil)

		expectedMaxBodySize := 10 * 1024 * 1024 // 10MB
		if c.MaxBodySize != expectedMaxBodySize {
			t.Errorf("MaxBodySize should be %d (default), got %d", expectedMaxBodySize, c.MaxBodySize)
		}
		if c.UserAgent != DefaultUserAgent {
			t.Errorf("UserAgent should be default, got %s", c.UserAgent)
		}
		if c.EmbedImages || c.EnableRendering {
			t.Error("embedding and rendering should be off by default")
		}
		if c.RenderingConfig == nil || c.RenderingConfig.TimeoutSecs != 30 {
			t.Errorf("unexpected rendering defaults %+v", c.RenderingConfig)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PAGESNAKE_USER_AGENT", "env-agent")
	t.Setenv("PAGESNAKE_TIMEOUT", "5s")
	t.Setenv("PAGESNAKE_EMBED_IMAGES", "yes")
	t.Setenv("PAGESNAKE_MAX_IMAGE_BYTES", "4096")
	t.Setenv("PAGESNAKE_ROBOTSTXT", "RESPECT")
	t.Setenv("PAGESNAKE_MAX_BODY_SIZE", "not-a-number")

	c := NewDefaultConfig()
	c.ApplyEnv()

	if c.UserAgent != "env-agent" {
		t.Errorf("UserAgent = %q", c.UserAgent)
	}
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", c.Timeout)
	}
	if !c.EmbedImages {
		t.Error("EmbedImages should be enabled")
	}
	if c.MaxImageBytes != 4096 {
		t.Errorf("MaxImageBytes = %d", c.MaxImageBytes)
	}
	if c.RobotsTxtMode != "respect" {
		t.Errorf("RobotsTxtMode = %q", c.RobotsTxtMode)
	}
	if c.MaxBodySize != 10*1024*1024 {
		t.Errorf("invalid value should leave the default, got %d", c.MaxBodySize)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagesnake.yaml")
	data := []byte(`user_agent: yaml-agent
embed_images: true
max_image_bytes: 1048576
headers:
  X-Debug: "1"
rendering:
  initial_wait_ms: 100
  final_wait_ms: 50
  timeout_secs: 5
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if c.UserAgent != "yaml-agent" || !c.EmbedImages || c.MaxImageBytes != 1048576 {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.Headers["X-Debug"] != "1" {
		t.Errorf("headers not read: %v", c.Headers)
	}
	if c.RenderingConfig.TimeoutSecs != 5 {
		t.Errorf("rendering config not read: %+v", c.RenderingConfig)
	}
	if !c.InlineStylesheets || c.Accept != DefaultAccept {
		t.Error("unset keys should keep their defaults")
	}

	if _, err := LoadConfigFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a wrapped not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("user_agent: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(bad); err == nil {
		t.Error("expected a parse error")
	}
}
