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
	"testing"
)

func TestDetectPersuasion(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		typ       PersuasionType
		strength  Strength
		matchedBy string
		content   string
	}{
		{"urgency", `<p>Hurry, offer ends tonight!</p>`, PersuasionUrgency, StrengthWeak, "text", "Hurry, offer ends tonight!"},
		{"scarcity in heading", `<h2>Only 7 left in stock</h2>`, PersuasionScarcity, StrengthMedium, "text", "Only 7 left in stock"},
		{"social proof with large number", `<p>Join 25,000 happy customers</p>`, PersuasionSocialProof, StrengthStrong, "text", "Join 25,000 happy customers"},
		{"guarantee", `<p>Backed by our 60-day money-back guarantee</p>`, PersuasionGuarantee, StrengthWeak, "text", "Backed by our 60-day money-back guarantee"},
		{"free offer", `<p>Get your free bonus guide</p>`, PersuasionFreeOffer, StrengthWeak, "text", "Get your free bonus guide"},
		{"discount with percentage", `<p>Now 40% off for new members</p>`, PersuasionDiscount, StrengthStrong, "text", "Now 40% off for new members"},
		{"authority", `<p>Clinically proven and recommended by dermatologists</p>`, PersuasionAuthority, StrengthWeak, "text", "Clinically proven and recommended by dermatologists"},
		{"fomo", `<p>Don't miss out on this deal</p>`, PersuasionFOMO, StrengthWeak, "text", "Don't miss out on this deal"},
		{"countdown shell", `<div class="countdown-timer"></div>`, PersuasionCountdown, StrengthMedium, "class", "countdown-timer"},
		{"trust badge image", `<img src="/img/norton-seal.png" alt="Norton Secured">`, PersuasionTrustBadge, StrengthMedium, "trust-badge-image", "Norton Secured"},
		{"inline children read with parent", `<p>Only <strong>3 left</strong> at this price</p>`, PersuasionScarcity, StrengthWeak, "text", "Only 3 left at this price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := parseTestDoc(t, "<html><body>"+tt.html+"</body></html>")
			elements := DetectPersuasion(pd)
			if len(elements) != 1 {
				t.Fatalf("expected one element, got %+v", elements)
			}
			e := elements[0]
			if e.Type != tt.typ || e.Strength != tt.strength || e.MatchedBy != tt.matchedBy {
				t.Errorf("got %s/%s/%s, want %s/%s/%s", e.Type, e.Strength, e.MatchedBy, tt.typ, tt.strength, tt.matchedBy)
			}
			if e.Content != tt.content {
				t.Errorf("content = %q, want %q", e.Content, tt.content)
			}
			if e.ID != "persuasion-1" || e.Selector == "" {
				t.Errorf("unexpected id/selector %q %q", e.ID, e.Selector)
			}
		})
	}
}

func TestDetectPersuasionDeduplicates(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<p>Hurry, offer ends tonight!</p>
<div class="footer-note"><p>Hurry, offer ends tonight!</p></div>
</body></html>`)

	elements := DetectPersuasion(pd)
	if len(elements) != 1 {
		t.Errorf("repeated copy should be reported once, got %d", len(elements))
	}
}

func TestDetectPersuasionSkipsScripts(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><script>var msg = "Hurry, only 2 left!";</script><template><p>Limited time offer</p></template></body></html>`)

	if elements := DetectPersuasion(pd); len(elements) != 0 {
		t.Errorf("script and template text should be ignored, got %+v", elements)
	}
}

func TestHasStrongSignal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Save 30%", true},
		{"Over 1,200 reviews", true},
		{"10000 downloads", true},
		{"Since 2019", false},
		{"Only 7 left", false},
	}
	for _, tt := range tests {
		if got := hasStrongSignal(tt.text); got != tt.want {
			t.Errorf("hasStrongSignal(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
