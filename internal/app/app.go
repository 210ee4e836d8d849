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

package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/extensions"
	"github.com/agentberlin/pagesnake/internal/store"
	"github.com/agentberlin/pagesnake/internal/types"
)

// App wires loading, analysis and the analysis cache together. The CLI,
// the HTTP API and the MCP server all go through it.
type App struct {
	ctx       context.Context
	store     *store.Store
	config    *pagesnake.Config
	analyzer  *pagesnake.Analyzer
	emitter   EventEmitter
	logger    *slog.Logger
	transport http.RoundTripper
	updateURL string
}

// NewApp creates an App. A nil cfg uses the defaults; a nil emitter drops events.
func NewApp(st *store.Store, cfg *pagesnake.Config, emitter EventEmitter) *App {
	if cfg == nil {
		cfg = pagesnake.NewDefaultConfig()
	}
	if emitter == nil {
		emitter = &NoOpEmitter{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &App{
		ctx:       context.Background(),
		store:     st,
		config:    cfg,
		analyzer:  pagesnake.NewAnalyzer(cfg),
		emitter:   emitter,
		logger:    logger,
		updateURL: versionURL,
	}
}

// Startup stores the lifetime context of the App
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
}

// SetTransport routes every page load through rt
func (a *App) SetTransport(rt http.RoundTripper) {
	a.transport = rt
}

// Analyzer returns the analyzer used by the App
func (a *App) Analyzer() *pagesnake.Analyzer {
	return a.analyzer
}

// newLoader builds a Loader for one load with the referer and URL length
// hooks installed
func (a *App) newLoader(cfg *pagesnake.Config) *pagesnake.Loader {
	l := pagesnake.NewLoader(cfg)
	if a.transport != nil {
		l.SetTransport(a.transport)
	}
	extensions.Referer(l)
	extensions.URLLengthFilter(l, maxResourceURLLength)
	return l
}

// CheckSystemHealth reports whether headless Chrome is available for rendering
func (a *App) CheckSystemHealth() *types.SystemHealthCheck {
	if !isChromeBrowserAvailable() {
		return &types.SystemHealthCheck{
			IsHealthy:  true,
			ErrorTitle: "Chrome Browser Not Found",
			ErrorMsg:   "Google Chrome or Chromium was not found, so pages built by scripts cannot be rendered.",
			Suggestion: "Install Google Chrome from https://www.google.com/chrome/ or set CHROME_EXECUTABLE_PATH to your Chrome installation.\n\nStatic HTML, files and zip archives are analyzed without Chrome.",
		}
	}

	return &types.SystemHealthCheck{
		IsHealthy:       true,
		ChromeAvailable: true,
	}
}

func isChromeBrowserAvailable() bool {
	if customPath := os.Getenv("CHROME_EXECUTABLE_PATH"); customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return true
		}
	}

	var chromePaths []string

	switch runtime.GOOS {
	case "darwin":
		chromePaths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			os.Getenv("HOME") + "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		}
	case "windows":
		chromePaths = []string{
			os.Getenv("ProgramFiles") + "\\Google\\Chrome\\Application\\chrome.exe",
			os.Getenv("ProgramFiles(x86)") + "\\Google\\Chrome\\Application\\chrome.exe",
			os.Getenv("LocalAppData") + "\\Google\\Chrome\\Application\\chrome.exe",
		}
	case "linux":
		chromePaths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
