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

package extensions

import (
	"context"
	"strings"
	"testing"

	"github.com/agentberlin/pagesnake"
)

const page = `<html><head>
<link rel="stylesheet" href="/css/site.css">
<script src="/js/app.js?` + "%s" + `"></script>
</head><body><h1>Hello</h1></body></html>`

func newLoader(mock *pagesnake.MockTransport) *pagesnake.Loader {
	l := pagesnake.NewLoader(pagesnake.NewDefaultConfig())
	l.SetTransport(mock)
	return l
}

func TestReferer(t *testing.T) {
	mock := pagesnake.NewMockTransport()
	mock.RegisterHTML("https://lp.test/offer", strings.Replace(page, "%s", "v=1", 1))
	mock.RegisterCSS("https://lp.test/css/site.css", "body{}")
	mock.RegisterScript("https://lp.test/js/app.js?v=1", "var a;")

	l := newLoader(mock)
	Referer(l)
	if _, err := l.LoadURL(context.Background(), "https://lp.test/offer"); err != nil {
		t.Fatal(err)
	}

	for _, r := range mock.Requests() {
		ref := r.Header.Get("Referer")
		switch r.URL.String() {
		case "https://lp.test/offer":
			if ref != "" {
				t.Errorf("page request should not carry a Referer, got %q", ref)
			}
		default:
			if ref != "https://lp.test/offer" {
				t.Errorf("%s: Referer = %q, want the page URL", r.URL, ref)
			}
		}
	}
}

func TestURLLengthFilter(t *testing.T) {
	longQuery := strings.Repeat("x", 200)
	mock := pagesnake.NewMockTransport()
	mock.RegisterHTML("https://lp.test/offer", strings.Replace(page, "%s", longQuery, 1))
	mock.RegisterCSS("https://lp.test/css/site.css", "body{}")

	l := newLoader(mock)
	URLLengthFilter(l, 100)
	pd, err := l.LoadURL(context.Background(), "https://lp.test/offer")
	if err != nil {
		t.Fatal(err)
	}

	if n := mock.RequestCount("https://lp.test/js/app.js?" + longQuery); n != 0 {
		t.Errorf("long URL was requested %d times", n)
	}
	if mock.RequestCount("https://lp.test/css/site.css") != 1 {
		t.Error("short URL should still be fetched")
	}
	if !strings.Contains(pd.HTML(), longQuery) {
		t.Error("filtered script should keep its reference")
	}
}
