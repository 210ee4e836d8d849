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
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Default filter chain for copy-text extraction
var defaultContentFilters = NewFilterChain(
	NewHiddenElementFilter(),
	NewOverlayNoiseFilter(),
	NewLinkDensityFilter(),
)

// textExtractor collects TextBlocks, de-duplicating by exact text
type textExtractor struct {
	blocks []TextBlock
	seen   map[string]bool
}

func (t *textExtractor) add(s *goquery.Selection, typ TextBlockType, text string) {
	text = normalizeWhitespace(text)
	if text == "" || t.seen[text] {
		return
	}
	t.seen[text] = true
	t.blocks = append(t.blocks, TextBlock{
		ID:           "text-" + strconv.Itoa(len(t.blocks)+1),
		Selector:     buildSelector(s),
		TagName:      goquery.NodeName(s),
		Type:         typ,
		OriginalText: text,
	})
}

// ExtractTextBlocks walks headings, paragraphs, buttons, anchors, list items
// and leaf span/div elements in that order. Identical text is emitted once.
func ExtractTextBlocks(pd *ParsedDocument) []TextBlock {
	doc := pd.Document()
	t := &textExtractor{seen: make(map[string]bool)}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		t.add(s, TextHeading, s.Text())
	})

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := normalizeWhitespace(s.Text()); utf8.RuneCountInString(text) > 10 {
			t.add(s, TextParagraph, text)
		}
	})

	doc.Find("button, input[type=submit], input[type=button]").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "input" {
			value, _ := s.Attr("value")
			t.add(s, TextButton, value)
			return
		}
		t.add(s, TextButton, s.Text())
	})

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		text := normalizeWhitespace(s.Text())
		if isCTAStyled(s) || utf8.RuneCountInString(text) > 3 {
			t.add(s, TextLink, text)
		}
	})

	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		t.add(s, TextListItem, s.Text())
	})

	doc.Find("span, div").Each(func(_ int, s *goquery.Selection) {
		if elementChildCount(s) > 2 || hasAncestor(s, "script", "style", "noscript") {
			return
		}
		text := directText(s)
		if n := utf8.RuneCountInString(text); n >= 10 && n <= 500 {
			t.add(s, TextOther, text)
		}
	})

	return t.blocks
}

// extractAllText extracts all visible text, whitespace-collapsed. Adjacent
// blocks stay separated, so minified "<p>Step 1 of 4</p><h1>" keeps its
// word boundary.
func extractAllText(pd *ParsedDocument) string {
	doc := pd.Clone()
	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		writeSpacedText(&b, n, false)
	}
	return normalizeWhitespace(b.String())
}

// extractCopyText returns the page's marketing copy with overlays, hidden
// elements and link farms removed. It is the corpus for vertical and tone
// classification.
//
// Strategy:
// 1. Re-parse so the shared document stays untouched
// 2. Remove script/style/noscript/template
// 3. Apply the noise filters
// 4. Use <main> or [role=main] when present, otherwise body
func extractCopyText(pd *ParsedDocument) string {
	doc := pd.Clone()
	doc.Find("script, style, noscript, template, svg").Remove()
	doc = defaultContentFilters.Apply(doc)

	var content *goquery.Selection
	if main := doc.Find("main").First(); main.Length() > 0 {
		content = main
	} else if roleMain := doc.Find("[role='main']").First(); roleMain.Length() > 0 {
		content = roleMain
	} else {
		content = doc.Find("body")
	}
	if content.Length() == 0 {
		return ""
	}
	return extractTextWithSpacing(content)
}

// normalizeWhitespace collapses multiple consecutive whitespace characters
// (spaces, tabs, newlines) into a single space.
func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
