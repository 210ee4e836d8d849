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

func TestDetectTrackingCodesFacebookPixel(t *testing.T) {
	pd := parseTestDoc(t, `<html><head><script>fbq('init','123')</script></head><body></body></html>`)

	codes := DetectTrackingCodes(pd)
	if len(codes) != 1 {
		t.Fatalf("expected exactly one tracking code, got %d: %+v", len(codes), codes)
	}
	c := codes[0]
	if c.ID != "tracking-1" || c.Type != TrackingFacebookPixel || c.Vendor != "Facebook" {
		t.Errorf("unexpected code %+v", c)
	}
	if !c.ShouldReplace || c.ShouldRemove {
		t.Errorf("facebook pixel should be replaced, not removed: %+v", c)
	}
	if c.Code != "fbq('init','123')" {
		t.Errorf("unexpected code text %q", c.Code)
	}
}

func TestDetectTrackingCodesVendors(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantType   TrackingType
		wantVendor string
		remove     bool
	}{
		{
			name:       "google tag manager",
			html:       `<script async src="https://www.googletagmanager.com/gtm.js?id=GTM-ABC123"></script>`,
			wantType:   TrackingGoogleTagManager,
			wantVendor: "Google Tag Manager",
		},
		{
			name:       "gtag loader is analytics",
			html:       `<script async src="https://www.googletagmanager.com/gtag/js?id=G-XYZ"></script>`,
			wantType:   TrackingGoogleAnalytics,
			wantVendor: "Google Analytics",
		},
		{
			name:       "tiktok",
			html:       `<script>ttq.load('C123'); ttq.page();</script>`,
			wantType:   TrackingTikTokPixel,
			wantVendor: "TikTok",
		},
		{
			name:       "hotjar is custom",
			html:       `<script>(function(h){h._hjSettings={hjid:1};})(window);</script>`,
			wantType:   TrackingCustom,
			wantVendor: "Hotjar",
			remove:     true,
		},
		{
			name:       "inlined script keeps its origin",
			html:       `<script data-inlined-from="https://static.hotjar.com/c/hotjar-1.js">var a=1;</script>`,
			wantType:   TrackingCustom,
			wantVendor: "Hotjar",
			remove:     true,
		},
		{
			name:       "noscript pixel",
			html:       `<noscript><img height="1" width="1" src="https://www.facebook.com/tr?id=1&ev=PageView"></noscript>`,
			wantType:   TrackingFacebookPixel,
			wantVendor: "Facebook",
		},
		{
			name:       "unknown 1x1 pixel",
			html:       `<img src="https://ads.test/p.gif" width="1" height="1">`,
			wantType:   TrackingOther,
			wantVendor: "unknown",
			remove:     true,
		},
		{
			name:       "verification meta",
			html:       `<meta name="facebook-domain-verification" content="abc123">`,
			wantType:   TrackingFacebookPixel,
			wantVendor: "Facebook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := parseTestDoc(t, "<html><head></head><body>"+tt.html+"</body></html>")
			codes := DetectTrackingCodes(pd)
			if len(codes) != 1 {
				t.Fatalf("expected one code, got %+v", codes)
			}
			c := codes[0]
			if c.Type != tt.wantType || c.Vendor != tt.wantVendor {
				t.Errorf("got %s/%s, want %s/%s", c.Type, c.Vendor, tt.wantType, tt.wantVendor)
			}
			if c.ShouldRemove != tt.remove || c.ShouldReplace == tt.remove {
				t.Errorf("unexpected remove/replace flags %+v", c)
			}
			if c.Selector == "" {
				t.Error("expected a selector")
			}
		})
	}
}

func TestDetectTrackingCodesDedupAndNoise(t *testing.T) {
	pd := parseTestDoc(t, `<html><head>
<script>fbq('init','123'); fbq('track','PageView');</script>
<script>fbq('init','123'); fbq('track','PageView');</script>
<script>console.log("hello")</script>
<script src="/js/app.js"></script>
</head><body><img src="/img/hero.jpg" width="800" height="400"></body></html>`)

	codes := DetectTrackingCodes(pd)
	if len(codes) != 1 {
		t.Fatalf("expected duplicates and non-tracking scripts to be dropped, got %+v", codes)
	}
}

func TestDetectTrackingCodesTruncates(t *testing.T) {
	long := "fbq('init','1');" + strings.Repeat(" var x = 1;", 50)
	pd := parseTestDoc(t, "<html><head><script>"+long+"</script></head><body></body></html>")

	codes := DetectTrackingCodes(pd)
	if len(codes) != 1 {
		t.Fatalf("expected one code, got %d", len(codes))
	}
	if n := len([]rune(codes[0].Code)); n != maxTrackingCodeRunes {
		t.Errorf("expected code truncated to %d runes, got %d", maxTrackingCodeRunes, n)
	}
}
