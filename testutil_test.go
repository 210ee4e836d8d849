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
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/agentberlin/pagesnake/testutil"
)

const testBaseURL = "https://lp.test"

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// discardLogger keeps expected warnings out of test output
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// parseTestDoc parses a fixture against testBaseURL without any fetching
func parseTestDoc(t *testing.T, html string) *ParsedDocument {
	t.Helper()
	pd, err := NewParsedDocument(html, testBaseURL+"/", testTime)
	if err != nil {
		t.Fatalf("NewParsedDocument failed: %v", err)
	}
	return pd
}

// newTestLoader returns a Loader with default settings wired to mock
func newTestLoader(mock *MockTransport, tweak func(*Config)) *Loader {
	cfg := NewDefaultConfig()
	cfg.Logger = discardLogger
	if tweak != nil {
		tweak(cfg)
	}
	l := NewLoader(cfg)
	l.SetTransport(mock)
	l.SetClock(func() time.Time { return testTime })
	return l
}

func newTestAnalyzer() *Analyzer {
	a := NewAnalyzer(&Config{Logger: discardLogger})
	a.SetClock(func() time.Time { return testTime })
	return a
}

// setupMockTransport registers the testutil fixtures under testBaseURL
func setupMockTransport() *MockTransport {
	mock := NewMockTransport()
	for path, page := range testutil.Pages {
		mock.RegisterHTML(testBaseURL+path, page)
	}
	mock.RegisterCSS(testBaseURL+"/css/site.css", testutil.SiteCSS)
	mock.RegisterScript(testBaseURL+"/js/app.js", testutil.AppJS)
	mock.RegisterImage(testBaseURL+"/img/logo.png", "image/png", testutil.LogoPNG, 0)
	mock.RegisterImage(testBaseURL+"/img/huge.jpg", "image/jpeg", []byte{0xff, 0xd8, 0xff}, testutil.HugeImageSize)
	mock.RegisterHTML(testBaseURL+"/robots.txt", testutil.RobotsFile)
	return mock
}

func TestFixtureServerServesLandingPage(t *testing.T) {
	srv := testutil.NewTestServer()
	defer srv.Close()

	cfg := NewDefaultConfig()
	cfg.Logger = discardLogger
	l := NewLoader(cfg)

	pd, err := l.LoadURL(context.Background(), srv.URL+"/static")
	if err != nil {
		t.Fatalf("LoadURL failed: %v", err)
	}
	if pd.Title != "Glow Serum - Radiant Skin in 14 Days" {
		t.Errorf("unexpected title %q", pd.Title)
	}
	if !strings.Contains(pd.HTML(), "/* source: "+srv.URL+"/css/site.css */") {
		t.Error("stylesheet was not inlined")
	}
	if !strings.Contains(pd.HTML(), srv.URL+"/img/logo.png") {
		t.Error("image src was not absolutized")
	}
}

func TestFixtureServerRedirect(t *testing.T) {
	srv := testutil.NewTestServer()
	defer srv.Close()

	cfg := NewDefaultConfig()
	cfg.Logger = discardLogger
	pd, err := NewLoader(cfg).LoadURL(context.Background(), srv.URL+"/redirect")
	if err != nil {
		t.Fatalf("LoadURL failed: %v", err)
	}
	if pd.BaseURL != srv.URL+"/static" {
		t.Errorf("expected base URL after redirect, got %q", pd.BaseURL)
	}
	if pd.SourceURL != srv.URL+"/redirect" {
		t.Errorf("expected requested URL as source, got %q", pd.SourceURL)
	}
}
