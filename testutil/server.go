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

// Package testutil provides landing-page fixtures and an HTTP test server
// serving them together with their stylesheets, scripts and images.
package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
)

// HugeImageSize is the size of /img/huge.jpg, above the default embed cap
const HugeImageSize = 3 * 1024 * 1024

// Landing page fixtures
var (
	StaticLandingHTML = `<!DOCTYPE html>
<html>
<head>
<title>Glow Serum - Radiant Skin in 14 Days</title>
<meta name="description" content="The serum dermatologists recommend.">
<link rel="stylesheet" href="/css/site.css">
<script>fbq('init', '123456789'); fbq('track', 'PageView');</script>
</head>
<body>
<header class="site-header"><nav><a href="/">Home</a><a href="#pricing">Pricing</a></nav></header>
<section class="hero">
<h1>Tired of dull skin?</h1>
<p class="subtitle">Radiant skin in 14 days or your money back.</p>
<a class="btn btn-primary" href="https://www.amazon.com/dp/B000TEST?tag=glow-20">Get My Serum</a>
<img src="/img/logo.png" alt="Glow logo" width="40" height="40">
</section>
<section class="features">
<h2>Why it works</h2>
<ul class="checklist"><li>Vitamin C complex</li><li>Hyaluronic acid</li><li>No parabens</li></ul>
</section>
<section class="testimonials">
<h2>What customers say</h2>
<p>"My skin has never looked better. I noticed a difference in a week." - Anna</p>
<p>Over 25,000 happy customers</p>
</section>
<section id="pricing" class="pricing">
<h2>Choose your bundle</h2>
<p class="urgency">Only 7 left in stock - offer ends tonight!</p>
<a class="btn cta" href="https://www.amazon.com/dp/B000TEST?tag=glow-20">Get My Serum</a>
</section>
<section class="faq"><h2>Frequently asked questions</h2><p>Is it safe for sensitive skin? Yes, it is fragrance free.</p></section>
<footer><p>Copyright 2025 Glow Labs</p><a href="/privacy">Privacy policy</a></footer>
</body>
</html>`

	QuizLandingHTML = `<!DOCTYPE html>
<html>
<head><title>Find your match</title></head>
<body>
<div id="app"><h1>Answer 3 quick questions</h1><button class="btn next">Continue</button></div>
<script>
let questionList = [
  {question: "Are you over 18?"},
  {question: "Are you looking for something casual?"},
  {question: "Can you keep it discreet?"}
];
let activeIndex = 0;
function nextStep() { activeIndex++; if (activeIndex >= questionList.length) { window.location.href = "https://offers.test/click?sub=quiz"; } }
</script>
</body>
</html>`

	SiteCSS = `.btn-primary { background: #ABCDEF; color: #ffffff; }
body { font-family: "Inter", sans-serif; color: #222222; background-color: #fafafa; }
h1, h2 { font-family: "Playfair Display", serif; font-size: 42px; }
.site-header { position: fixed; top: 0; }
.hero { background-image: url("../img/hero.jpg"); }
`

	AppJS = `document.querySelectorAll('.btn').forEach(function (b) { b.addEventListener('click', function () {}); });`

	// LogoPNG is a 1x1 transparent PNG
	LogoPNG = []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
	}

	RobotsFile = `User-agent: *
Disallow: /private
`
)

// Pages maps fixture paths to their HTML
var Pages = map[string]string{
	"/":           StaticLandingHTML,
	"/static":     StaticLandingHTML,
	"/quiz":       QuizLandingHTML,
	"/private/lp": StaticLandingHTML,
}

// PagePaths returns the fixture page paths in sorted order
func PagePaths() []string {
	paths := make([]string, 0, len(Pages))
	for p := range Pages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// NewServeMux returns a mux serving the fixtures
func NewServeMux() *http.ServeMux {
	mux := http.NewServeMux()

	for path, page := range Pages {
		body := page
		pattern := path
		if pattern == "/" {
			pattern = "/{$}"
		}
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(body))
		})
	}

	mux.HandleFunc("/css/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte(SiteCSS))
	})

	mux.HandleFunc("/js/app.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		w.Write([]byte(AppJS))
	})

	mux.HandleFunc("/img/logo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(LogoPNG)
	})

	mux.HandleFunc("/img/huge.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Length", strconv.Itoa(HugeImageSize))
		if r.Method == http.MethodHead {
			return
		}
		w.Write(bytes.Repeat([]byte{0xff}, HugeImageSize))
	})

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(RobotsFile))
	})

	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static", http.StatusFound)
	})

	mux.HandleFunc("/status/{code}", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(r.PathValue("code"))
		if err != nil {
			code = http.StatusBadRequest
		}
		w.WriteHeader(code)
	})

	return mux
}

// NewUnstartedTestServer creates an unstarted HTTP test server with all fixtures configured
func NewUnstartedTestServer() *httptest.Server {
	return httptest.NewUnstartedServer(NewServeMux())
}

// NewTestServer creates and starts a new test server
func NewTestServer() *httptest.Server {
	srv := NewUnstartedTestServer()
	srv.Start()
	return srv
}
