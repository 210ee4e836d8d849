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
	"strconv"
	"strings"
	"testing"

	"github.com/agentberlin/pagesnake/testutil"
)

func sectionTypesOf(sections []PageSection) []SectionType {
	types := make([]SectionType, len(sections))
	for i, s := range sections {
		types[i] = s.Type
	}
	return types
}

func TestDetectSectionsLandingPage(t *testing.T) {
	pd := parseTestDoc(t, testutil.StaticLandingHTML)
	sections := DetectSections(pd)

	want := []SectionType{
		SectionHeader, SectionHero, SectionFeatures, SectionTestimonials,
		SectionPricing, SectionFAQ, SectionFooter,
	}
	got := sectionTypesOf(sections)
	if len(got) != len(want) {
		t.Fatalf("got sections %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %d: got %s, want %s", i, got[i], want[i])
		}
	}

	for i, s := range sections {
		if s.ID != "section-"+strconv.Itoa(i+1) || s.Order != i+1 {
			t.Errorf("section %d has ID %q order %d", i, s.ID, s.Order)
		}
		if s.DetectedBy != DetectedBySemantic {
			t.Errorf("section %s detected by %s, want semantic", s.ID, s.DetectedBy)
		}
		if s.HTML == "" || s.Selector == "" || s.TextLength == 0 {
			t.Errorf("section %s is missing content: %+v", s.ID, s)
		}
	}

	hero := sections[1]
	if !strings.Contains(hero.Markdown, "# Tired of dull skin?") {
		t.Errorf("hero markdown missing headline: %q", hero.Markdown)
	}
	if strings.Contains(sections[0].HTML, "<script") {
		t.Error("section HTML should be sanitized")
	}
}

func TestSectionHTMLKeepsInlineColors(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<section class="hero" style="background-color: #112233"><h1 style="color: #ff0000; position: fixed" onclick="steal()">Big promise</h1><p>Supporting line for the promise.</p></section>
</body></html>`)

	sections := DetectSections(pd)
	if len(sections) == 0 {
		t.Fatal("expected a hero section")
	}
	html := sections[0].HTML
	for _, want := range []string{"background-color: #112233", "color: #ff0000"} {
		if !strings.Contains(html, want) {
			t.Errorf("section HTML lost %q: %s", want, html)
		}
	}
	for _, gone := range []string{"position", "onclick"} {
		if strings.Contains(html, gone) {
			t.Errorf("section HTML should drop %q: %s", gone, html)
		}
	}
}

func TestDetectSectionsClassAndContentTiers(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<div class="wrapper">
  <div class="testimonial-block"><p>"Best purchase ever" - Kim</p></div>
  <div><form action="/lead"><input name="email"><button>Send</button></form></div>
  <div><h2>Frequently asked questions</h2><p>Does it ship worldwide? Yes.</p></div>
</div>
</body></html>`)

	sections := DetectSections(pd)
	want := []struct {
		typ SectionType
		by  string
	}{
		{SectionTestimonials, DetectedByClass},
		{SectionForm, DetectedByContent},
		{SectionFAQ, DetectedByContent},
	}
	if len(sections) != len(want) {
		t.Fatalf("got %v, want %d sections", sectionTypesOf(sections), len(want))
	}
	for i, w := range want {
		if sections[i].Type != w.typ || sections[i].DetectedBy != w.by {
			t.Errorf("section %d = %s/%s, want %s/%s", i, sections[i].Type, sections[i].DetectedBy, w.typ, w.by)
		}
	}
}

func TestDetectSectionsLooseTier(t *testing.T) {
	block := `<div><p>` + strings.Repeat("Plain copy without any structural hints. ", 4) + `</p></div>`
	pd := parseTestDoc(t, "<html><body>"+block+block+"</body></html>")

	sections := DetectSections(pd)
	if len(sections) != 2 {
		t.Fatalf("expected two loose sections, got %d", len(sections))
	}
	for _, s := range sections {
		if s.Type != SectionUnknown || s.DetectedBy != DetectedByLoose {
			t.Errorf("unexpected section %s/%s", s.Type, s.DetectedBy)
		}
	}
}

func TestDetectSectionsFallbackNeverEmpty(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><p>Just text</p></body></html>`)

	sections := DetectSections(pd)
	if len(sections) != 1 {
		t.Fatalf("expected a single fallback section, got %d", len(sections))
	}
	s := sections[0]
	if s.Type != SectionUnknown || s.DetectedBy != DetectedByFallback || s.ID != "section-1" {
		t.Errorf("unexpected fallback section %+v", s)
	}
	if !strings.Contains(s.HTML, "Just text") {
		t.Errorf("fallback section should hold the body, got %q", s.HTML)
	}
}

func TestSectionIndexResolvesInnermost(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<header><h1 id="brand">Brand</h1></header>
<section class="hero"><h1>Big promise</h1><p id="sub">Supporting line for the promise.</p></section>
<p id="loose">outside</p>
</body></html>`)

	sections, ix := detectSections(pd)
	if len(sections) < 2 {
		t.Fatalf("expected header and hero, got %v", sectionTypesOf(sections))
	}
	doc := pd.Document()
	if got := ix.lookup(doc.Find("#brand")); got != "section-1" {
		t.Errorf("brand resolved to %q", got)
	}
	if got := ix.lookup(doc.Find("#sub")); got != "section-2" {
		t.Errorf("subheadline resolved to %q", got)
	}
	if got := ix.lookup(doc.Find("#loose")); got != "" {
		t.Errorf("element outside any section resolved to %q", got)
	}
}
