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
	"strings"
	"testing"
)

func findLink(links []DetectedLink, url string) *DetectedLink {
	for i := range links {
		if links[i].OriginalURL == url {
			return &links[i]
		}
	}
	return nil
}

func TestDetectLinksCTABeatsAffiliate(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><h1>Win</h1><a class="btn" href="https://aff.example/?ref=123">Join</a></body></html>`)

	links := DetectLinks(pd)
	if len(links) != 1 {
		t.Fatalf("expected one link, got %+v", links)
	}
	l := links[0]
	if l.Type != LinkCTA || l.Confidence != 0.9 {
		t.Errorf("expected cta at 0.9, got %s at %v (%s)", l.Type, l.Confidence, l.DetectionReason)
	}
	if l.ID != "link-1" || l.AnchorText != "Join" || l.Source != SourceHref {
		t.Errorf("unexpected link %+v", l)
	}
}

func TestDetectLinksCascade(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<header><nav><a href="/">Home</a><a href="#faq">FAQ</a></nav></header>
<main>
<p>Read the <a href="https://www.clickbank.net/x">review here</a> today.</p>
<p>See <a href="https://shop.test/p?tag=glow-20">details</a>.</p>
<p>Short <a href="https://bit.ly/abc">link</a>.</p>
<p>Press <a href="https://news.test/a?utm_source=lp">coverage</a>.</p>
<p>About <a href="/about">our story</a>.</p>
<p>Visit <a href="https://other.test/">a partner</a>.</p>
<p>Again <a href="https://other.test/">a partner</a>.</p>
</main>
<footer><a href="/privacy">Privacy</a></footer>
</body></html>`)

	links := DetectLinks(pd)

	tests := []struct {
		url        string
		typ        LinkType
		confidence float64
	}{
		{testBaseURL + "/", LinkNavigation, 0.6},
		{"#faq", LinkNavigation, 0.6},
		{"https://www.clickbank.net/x", LinkAffiliate, 0.85},
		{"https://shop.test/p?tag=glow-20", LinkAffiliate, 0.8},
		{"https://bit.ly/abc", LinkRedirect, 0.75},
		{"https://news.test/a?utm_source=lp", LinkTracking, 0.7},
		{testBaseURL + "/about", LinkInternal, 0.5},
		{"https://other.test/", LinkExternal, 0.5},
		{testBaseURL + "/privacy", LinkNavigation, 0.6},
	}
	for _, tt := range tests {
		l := findLink(links, tt.url)
		if l == nil {
			t.Errorf("link %s not detected", tt.url)
			continue
		}
		if l.Type != tt.typ || l.Confidence != tt.confidence {
			t.Errorf("%s: got %s at %v (%s), want %s at %v", tt.url, l.Type, l.Confidence, l.DetectionReason, tt.typ, tt.confidence)
		}
	}
	if len(links) != len(tests) {
		t.Errorf("expected %d unique links, got %d", len(tests), len(links))
	}
	for i, l := range links {
		if want := "link-" + string(rune('1'+i)); l.ID != want {
			t.Errorf("link %d has ID %q, want %q", i, l.ID, want)
		}
	}
}

func TestDetectLinksNonHrefSources(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<div class="offer" onclick="window.location.href='https://offers.test/go'">Tap here</div>
<span data-href="https://offers.test/out/123">Details</span>
<form><button formaction="https://offers.test/submit?subid=9">Send</button></form>
<iframe src="https://www.youtube.com/embed/abc"></iframe>
<script>
var lib = "https://cdn.test/lib.js";
var api = "https://api.test/v1/config";
setTimeout(function () { location.href = "https://track.test/click?sub1=a"; }, 3000);
</script>
</body></html>`)

	links := DetectLinks(pd)

	tests := []struct {
		url    string
		source string
		typ    LinkType
	}{
		{"https://offers.test/go", SourceOnclick, LinkRedirect},
		{"https://offers.test/out/123", SourceDataAttr, LinkRedirect},
		{"https://offers.test/submit?subid=9", SourceFormAction, LinkCTA},
		{"https://www.youtube.com/embed/abc", SourceIframe, LinkExternal},
		{"https://track.test/click?sub1=a", SourceScript, LinkRedirect},
	}
	for _, tt := range tests {
		l := findLink(links, tt.url)
		if l == nil {
			t.Errorf("link %s not detected", tt.url)
			continue
		}
		if l.Source != tt.source || l.Type != tt.typ {
			t.Errorf("%s: got %s/%s, want %s/%s", tt.url, l.Source, l.Type, tt.source, tt.typ)
		}
	}

	for _, noise := range []string{"https://cdn.test/lib.js", "https://api.test/v1/config"} {
		if findLink(links, noise) != nil {
			t.Errorf("script URL %s should not be reported", noise)
		}
	}
}

func TestDetectLinksSkipsNonNavigable(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<a href="#">top</a>
<a href="javascript:void(0)">noop</a>
<a href="mailto:hi@lp.test">mail</a>
<a href="tel:+100">call</a>
</body></html>`)

	if links := DetectLinks(pd); len(links) != 0 {
		t.Errorf("expected no links, got %+v", links)
	}
}

func TestDetectLinksContext(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><section><p>Results in 14 days or <a href="/refund">your money back</a> guaranteed.</p></section></body></html>`)

	links := DetectLinks(pd)
	if len(links) != 1 {
		t.Fatalf("expected one link, got %d", len(links))
	}
	if !strings.Contains(links[0].Context, "Results in 14 days") {
		t.Errorf("unexpected context %q", links[0].Context)
	}
	if links[0].Position != PositionContent {
		t.Errorf("expected content position, got %q", links[0].Position)
	}
	if links[0].Selector == "" {
		t.Error("expected a selector")
	}
}
