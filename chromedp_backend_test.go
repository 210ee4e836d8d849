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
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestRenderingConfigDefaults(t *testing.T) {
	config := NewDefaultConfig().RenderingConfig
	if config == nil {
		t.Fatal("default config should carry a RenderingConfig")
	}

	if config.InitialWaitMs != 1500 {
		t.Errorf("Default InitialWaitMs should be 1500, got %d", config.InitialWaitMs)
	}
	if config.FinalWaitMs != 500 {
		t.Errorf("Default FinalWaitMs should be 500, got %d", config.FinalWaitMs)
	}
	if config.TimeoutSecs != 30 {
		t.Errorf("Default TimeoutSecs should be 30, got %d", config.TimeoutSecs)
	}
}

func TestRenderingConfigTotalWaitFitsTimeout(t *testing.T) {
	config := NewDefaultConfig().RenderingConfig

	totalWait := config.InitialWaitMs + config.FinalWaitMs
	if totalWait >= config.TimeoutSecs*1000 {
		t.Errorf("waits (%dms) should fit inside the render timeout (%ds)", totalWait, config.TimeoutSecs)
	}
}

func TestMergeConfigKeepsCustomRendering(t *testing.T) {
	custom := &RenderingConfig{InitialWaitMs: 3000, FinalWaitMs: 2000, TimeoutSecs: 60}
	merged := mergeConfig(&Config{EnableRendering: true, RenderingConfig: custom})

	if !merged.EnableRendering {
		t.Error("EnableRendering should be carried over")
	}
	if merged.RenderingConfig != custom {
		t.Error("custom RenderingConfig should replace the default")
	}
}

type fakeRenderer struct {
	html      string
	resources []string
	err       error
	calls     int
}

func (f *fakeRenderer) RenderPage(ctx context.Context, url string, config *RenderingConfig) (string, []string, error) {
	f.calls++
	return f.html, f.resources, f.err
}

func TestLoadURLUsesRenderer(t *testing.T) {
	mock := setupMockTransport()
	l := newTestLoader(mock, func(c *Config) { c.EnableRendering = true })
	fake := &fakeRenderer{
		html:      `<html><body><div id="app"><h1>Built by script</h1></div></body></html>`,
		resources: []string{testBaseURL + "/js/app.js"},
	}
	l.renderer = fake

	pd, err := l.LoadURL(context.Background(), testBaseURL+"/static")
	if err != nil {
		t.Fatalf("LoadURL failed: %v", err)
	}
	if fake.calls != 1 {
		t.Errorf("renderer called %d times", fake.calls)
	}
	if !strings.Contains(pd.HTML(), "Built by script") {
		t.Error("rendered HTML should be used")
	}
	if !slices.Equal(pd.Resources, fake.resources) {
		t.Errorf("resources = %v", pd.Resources)
	}
	if mock.RequestCount(testBaseURL+"/static") != 0 {
		t.Error("the page should not be fetched over HTTP when rendering succeeds")
	}
}

func TestLoadURLRenderFailureFallsBack(t *testing.T) {
	mock := setupMockTransport()
	l := newTestLoader(mock, func(c *Config) { c.EnableRendering = true })
	l.renderer = &fakeRenderer{err: errors.New("chrome not found")}

	pd, err := l.LoadURL(context.Background(), testBaseURL+"/static")
	if err != nil {
		t.Fatalf("render failure should fall back to HTTP: %v", err)
	}
	if pd.Title != "Glow Serum - Radiant Skin in 14 Days" {
		t.Errorf("unexpected title %q", pd.Title)
	}
	if mock.RequestCount(testBaseURL+"/static") != 1 {
		t.Error("expected one HTTP page request")
	}
}
