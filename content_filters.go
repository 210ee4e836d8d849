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

// content_filters.go provides the noise filters applied before the page copy
// is classified. Landing pages carry consent banners, chat launchers and
// exit-intent popups whose text would otherwise skew tone detection.

package pagesnake

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ContentFilter defines the interface for all content filters.
// Filters modify the document in place and return it for chaining.
type ContentFilter interface {
	// Filter applies the filter to the document and returns the modified document
	Filter(doc *goquery.Document) *goquery.Document
	// Name returns the filter name for debugging
	Name() string
}

// FilterChain applies multiple filters in sequence
type FilterChain struct {
	filters []ContentFilter
}

// NewFilterChain creates a new filter chain with the given filters
func NewFilterChain(filters ...ContentFilter) *FilterChain {
	return &FilterChain{filters: filters}
}

// Apply applies all filters in the chain to the document
func (fc *FilterChain) Apply(doc *goquery.Document) *goquery.Document {
	for _, f := range fc.filters {
		doc = f.Filter(doc)
	}
	return doc
}

// Add adds a filter to the chain
func (fc *FilterChain) Add(f ContentFilter) *FilterChain {
	fc.filters = append(fc.filters, f)
	return fc
}

// =============================================================================
// HiddenElementFilter - Removes elements that are not rendered
// =============================================================================

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0(?:\.0+)?\s*(?:;|$)`),
}

var hiddenClassPattern = regexp.MustCompile(`(?i)(?:^|\s)(?:hidden|sr-only|visually-hidden|screen-reader-text|d-none|invisible)(?:\s|$)`)

// HiddenElementFilter removes elements hidden by attribute, inline style or utility class.
// Quiz steps after the first are usually hidden this way, so flow detection
// never goes through this filter.
type HiddenElementFilter struct{}

// NewHiddenElementFilter creates a new HiddenElementFilter
func NewHiddenElementFilter() *HiddenElementFilter {
	return &HiddenElementFilter{}
}

// Name returns the filter name
func (f *HiddenElementFilter) Name() string {
	return "HiddenElementFilter"
}

// Filter removes hidden elements
func (f *HiddenElementFilter) Filter(doc *goquery.Document) *goquery.Document {
	doc.Find("body *").Each(func(i int, s *goquery.Selection) {
		if _, ok := s.Attr("hidden"); ok {
			s.Remove()
			return
		}
		if attrLower(s, "aria-hidden") == "true" {
			s.Remove()
			return
		}
		if class, ok := s.Attr("class"); ok && hiddenClassPattern.MatchString(class) {
			s.Remove()
			return
		}
		if style, ok := s.Attr("style"); ok {
			for _, p := range hiddenStylePatterns {
				if p.MatchString(style) {
					s.Remove()
					return
				}
			}
		}
	})
	return doc
}

// =============================================================================
// OverlayNoiseFilter - Removes consent banners, chat widgets and popups
// =============================================================================

// overlayNoisePatterns match class/id attributes of third-party overlays
var overlayNoisePatterns = regexp.MustCompile(`(?i)` +
	`cookie|` +
	`consent|` +
	`gdpr|` +
	`onetrust|` +
	`cookiebot|` +
	`cc-window|` +
	`intercom|` +
	`drift-|` +
	`crisp-|` +
	`tawk|` +
	`livechat|` +
	`chat-widget|` +
	`zendesk|` +
	`hubspot-messages|` +
	`exit-intent|` +
	`exit-popup|` +
	`modal-backdrop|` +
	`newsletter-popup|` +
	`recaptcha|` +
	`skip-link`)

// keepPatterns protects containers that hold the page copy
var keepPatterns = regexp.MustCompile(`(?i)` +
	`\bcontent\b|` +
	`\bmain\b|` +
	`\bhero\b|` +
	`\bbody\b`)

// OverlayNoiseFilter removes elements that match known overlay patterns
type OverlayNoiseFilter struct{}

// NewOverlayNoiseFilter creates a new OverlayNoiseFilter
func NewOverlayNoiseFilter() *OverlayNoiseFilter {
	return &OverlayNoiseFilter{}
}

// Name returns the filter name
func (f *OverlayNoiseFilter) Name() string {
	return "OverlayNoiseFilter"
}

// Filter removes elements matching overlay patterns
func (f *OverlayNoiseFilter) Filter(doc *goquery.Document) *goquery.Document {
	doc.Find("body *").Each(func(i int, s *goquery.Selection) {
		class, hasClass := s.Attr("class")
		id, hasID := s.Attr("id")

		if hasClass && keepPatterns.MatchString(class) {
			return
		}
		if hasID && keepPatterns.MatchString(id) {
			return
		}

		if hasClass && overlayNoisePatterns.MatchString(class) {
			s.Remove()
			return
		}
		if hasID && overlayNoisePatterns.MatchString(id) {
			s.Remove()
		}
	})
	return doc
}

// =============================================================================
// LinkDensityFilter - Removes elements with high link-to-text ratio
// Ported from GoOse's extractor.go isHighLinkDensity
// =============================================================================

// LinkDensityFilter removes elements where most text is within links
type LinkDensityFilter struct {
	// MaxLinkRatio is the maximum ratio of link words to total words (default 0.5)
	MaxLinkRatio float64
	// MinLinks is the minimum number of links before considering link density (default 3)
	MinLinks int
}

// NewLinkDensityFilter creates a new LinkDensityFilter with default settings
func NewLinkDensityFilter() *LinkDensityFilter {
	return &LinkDensityFilter{
		MaxLinkRatio: 0.5,
		MinLinks:     3,
	}
}

// Name returns the filter name
func (f *LinkDensityFilter) Name() string {
	return "LinkDensityFilter"
}

// Filter removes nav-like blocks. CTA-styled links do not count toward
// density: a pricing table full of buttons is still copy.
func (f *LinkDensityFilter) Filter(doc *goquery.Document) *goquery.Document {
	doc.Find("nav, ul, ol, aside").Each(func(i int, s *goquery.Selection) {
		if f.isHighLinkDensity(s) {
			s.Remove()
		}
	})
	return doc
}

// isHighLinkDensity checks if an element has high link density
func (f *LinkDensityFilter) isHighLinkDensity(node *goquery.Selection) bool {
	links := node.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return !isCTAStyled(a)
	})
	if links.Length() < f.MinLinks {
		return false
	}

	words := strings.Fields(node.Text())
	if len(words) == 0 {
		return true
	}

	var linkText strings.Builder
	links.Each(func(i int, s *goquery.Selection) {
		linkText.WriteString(s.Text())
		linkText.WriteString(" ")
	})
	linkRatio := float64(len(strings.Fields(linkText.String()))) / float64(len(words))

	if linkRatio > f.MaxLinkRatio {
		return true
	}
	return links.Length() > 5 && linkRatio > 0.3
}
