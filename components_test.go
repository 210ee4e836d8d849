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

	"github.com/agentberlin/pagesnake/testutil"
)

func TestExtractComponentsLandingPage(t *testing.T) {
	pd := parseTestDoc(t, testutil.StaticLandingHTML)
	cm := ExtractComponents(pd)

	if len(cm.Headlines) != 5 {
		t.Fatalf("expected 5 headlines, got %d", len(cm.Headlines))
	}
	main := cm.Headlines[0]
	if !main.IsMainHeadline || main.Text != "Tired of dull skin?" || main.Level != 1 || main.SectionID != "section-2" {
		t.Errorf("unexpected main headline %+v", main)
	}
	for _, h := range cm.Headlines[1:] {
		if h.IsMainHeadline {
			t.Errorf("only one headline may be main, %s is too", h.ID)
		}
	}

	if len(cm.Subheadlines) == 0 || cm.Subheadlines[0].Text != "Radiant skin in 14 days or your money back." {
		t.Errorf("unexpected subheadlines %+v", cm.Subheadlines)
	}

	if len(cm.Buttons) != 1 {
		t.Fatalf("repeated CTA should be reported once, got %+v", cm.Buttons)
	}
	b := cm.Buttons[0]
	if b.Type != ButtonCTA || b.Text != "Get My Serum" || b.Href != "https://www.amazon.com/dp/B000TEST?tag=glow-20" {
		t.Errorf("unexpected button %+v", b)
	}

	if len(cm.Images) != 1 || cm.Images[0].Role != ImageIcon || cm.Images[0].Src != testBaseURL+"/img/logo.png" {
		t.Errorf("unexpected images %+v", cm.Images)
	}

	if len(cm.Lists) != 1 || cm.Lists[0].Type != ListCheck || len(cm.Lists[0].Items) != 3 {
		t.Errorf("unexpected lists %+v", cm.Lists)
	}
	if cm.Lists[0].SectionID != "section-3" {
		t.Errorf("list should belong to the features section, got %q", cm.Lists[0].SectionID)
	}

	if len(cm.Paragraphs) != 6 {
		t.Errorf("expected 6 paragraphs, got %d", len(cm.Paragraphs))
	}
	if cm.Forms == nil || cm.Videos == nil {
		t.Error("empty component kinds should be empty slices, not nil")
	}
}

func TestMainHeadlineIsFirstH1(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><h2>Kicker</h2><h1>First</h1><h1>Second</h1></body></html>`)
	cm := ExtractComponents(pd)

	var mains []string
	for _, h := range cm.Headlines {
		if h.IsMainHeadline {
			mains = append(mains, h.Text)
		}
	}
	if len(mains) != 1 || mains[0] != "First" {
		t.Errorf("expected First to be the only main headline, got %v", mains)
	}

	pd = parseTestDoc(t, `<html><body><h2>No h1 here</h2></body></html>`)
	for _, h := range ExtractComponents(pd).Headlines {
		if h.IsMainHeadline {
			t.Error("a page without h1 has no main headline")
		}
	}
}

func TestClassifyButtons(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<form><button>Sign up</button></form>
<button>Next</button>
<a class="btn" href="/more">Learn more</a>
<button class="btn-primary">Yes please</button>
<button>Maybe later</button>
<input type="submit" value="Claim now">
</body></html>`)

	cm := ExtractComponents(pd)
	want := []struct {
		text    string
		typ     ButtonType
		urgency bool
	}{
		{"Sign up", ButtonSubmit, false},
		{"Next", ButtonNavigation, false},
		{"Yes please", ButtonCTA, false},
		{"Maybe later", ButtonSecondary, false},
		{"Claim now", ButtonSubmit, true},
		{"Learn more", ButtonNavigation, false},
	}
	if len(cm.Buttons) != len(want) {
		t.Fatalf("expected %d buttons, got %+v", len(want), cm.Buttons)
	}
	byText := make(map[string]Button)
	for _, b := range cm.Buttons {
		byText[b.Text] = b
	}
	for _, w := range want {
		b, ok := byText[w.text]
		if !ok {
			t.Errorf("button %q not found", w.text)
			continue
		}
		if b.Type != w.typ || b.HasUrgency != w.urgency {
			t.Errorf("%q: got %s urgency=%v, want %s urgency=%v", w.text, b.Type, b.HasUrgency, w.typ, w.urgency)
		}
	}
	if byText["Learn more"].Href != testBaseURL+"/more" {
		t.Errorf("anchor button href not resolved: %q", byText["Learn more"].Href)
	}
}

func TestExtractImagesAndVideos(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<img src="/img/main.jpg" width="1200" height="600" alt="Happy couple">
<img src="/img/spacer.gif">
<img src="https://ads.test/p.gif" width="1" height="1">
<img data-src="/img/lazy.jpg" alt="Product shot">
<img class="logo" src="/img/brand.svg">
<video controls><source src="/media/vsl.mp4"></video>
<iframe src="https://www.youtube.com/embed/abc"></iframe>
<iframe src="https://player.vimeo.com/video/42"></iframe>
<iframe src="https://fast.wistia.net/embed/iframe/xyz"></iframe>
<iframe src="https://maps.test/embed?q=berlin"></iframe>
</body></html>`)

	cm := ExtractComponents(pd)

	wantImages := []struct {
		src  string
		role ImageRole
	}{
		{testBaseURL + "/img/main.jpg", ImageHero},
		{testBaseURL + "/img/lazy.jpg", ImageContent},
		{testBaseURL + "/img/brand.svg", ImageIcon},
	}
	if len(cm.Images) != len(wantImages) {
		t.Fatalf("expected %d images, got %+v", len(wantImages), cm.Images)
	}
	for i, w := range wantImages {
		if cm.Images[i].Src != w.src || cm.Images[i].Role != w.role {
			t.Errorf("image %d = %s/%s, want %s/%s", i, cm.Images[i].Src, cm.Images[i].Role, w.src, w.role)
		}
	}

	wantVideos := []VideoType{VideoHTML5, VideoYouTube, VideoVimeo, VideoEmbed}
	if len(cm.Videos) != len(wantVideos) {
		t.Fatalf("expected %d videos, got %+v", len(wantVideos), cm.Videos)
	}
	for i, w := range wantVideos {
		if cm.Videos[i].Type != w {
			t.Errorf("video %d = %s, want %s", i, cm.Videos[i].Type, w)
		}
	}
	if cm.Videos[0].Src != testBaseURL+"/media/vsl.mp4" {
		t.Errorf("html5 video source not resolved: %q", cm.Videos[0].Src)
	}
}

func TestExtractLists(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<nav><ul><li>Home</li><li>Blog</li></ul></nav>
<ol><li>Order</li><li>Enjoy</li></ol>
<ul><li>✓ Fast shipping</li><li>✓ Free returns</li></ul>
<ul><li>Plain</li><li></li></ul>
</body></html>`)

	lists := ExtractComponents(pd).Lists
	want := []ListType{ListNumbered, ListCheck, ListBullet}
	if len(lists) != len(want) {
		t.Fatalf("expected %d lists, got %+v", len(want), lists)
	}
	for i, w := range want {
		if lists[i].Type != w {
			t.Errorf("list %d = %s, want %s", i, lists[i].Type, w)
		}
	}
	if len(lists[2].Items) != 1 {
		t.Errorf("empty items should be dropped, got %v", lists[2].Items)
	}
}
