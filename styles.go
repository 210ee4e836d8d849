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
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxPaletteCandidates = 15
	maxColorsPerBucket   = 3
	lightLuma            = 200
	darkLuma             = 100
)

// ctaElementSelector samples elements whose colors belong to the CTA bucket
const ctaElementSelector = `button, .btn, .button, .cta, [class*=cta], a[class*=btn], input[type=submit]`

var (
	cssCommentPattern     = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssRulePattern        = regexp.MustCompile(`([^{}]+)\{([^{}]*)\}`)
	cssDeclarationPattern = regexp.MustCompile(`([a-zA-Z-]+)\s*:\s*([^;]+)`)
	ctaRuleSelector       = regexp.MustCompile(`(?i)btn|cta|button|input\[type=.?submit`)
	headingRuleSelector   = regexp.MustCompile(`(?i)(?:^|[\s,>+~])h[1-6]\b|heading|title|headline`)
	bodyRuleSelector      = regexp.MustCompile(`(?i)(?:^|[\s,])(?:body|html|p|\*|:root)(?:$|[\s,.:{])`)
	headerLikePattern     = regexp.MustCompile(`(?i)header|\bnav|navbar|top-?bar|menu|masthead`)
	containerRuleSelector = regexp.MustCompile(`(?i)container|wrapper|wrap\b|\bmain\b|content|\bpage\b|inner`)
	gridClassPattern      = regexp.MustCompile(`(?:^|\s)(?:grid|grid-cols-\d+|row-cols-\S+|card-grid|pricing-grid)(?:\s|$)`)
	columnClassPattern    = regexp.MustCompile(`(?:^|\s)(?:col|col-\S+|columns?|two-col\S*|three-col\S*|flex-row|split|half)(?:\s|$)`)
	displayGridPattern    = regexp.MustCompile(`(?i)display\s*:\s*(?:inline-)?grid`)
	displayFlexPattern    = regexp.MustCompile(`(?i)display\s*:\s*(?:inline-)?flex`)
	columnCountPattern    = regexp.MustCompile(`(?i)column-count\s*:\s*[2-9]|grid-template-columns\s*:`)
)

// cssRule is a selector with its declaration block
type cssRule struct {
	selector string
	body     string
}

// cssDecl is one property: value pair
type cssDecl struct {
	property string
	value    string
}

func parseCSSRules(css string) []cssRule {
	css = cssCommentPattern.ReplaceAllString(css, " ")
	var rules []cssRule
	for _, m := range cssRulePattern.FindAllStringSubmatch(css, -1) {
		sel := strings.TrimSpace(m[1])
		// "@charset ...; .a" leaves the at-rule statement on the first selector
		if i := strings.LastIndex(sel, ";"); i >= 0 {
			sel = strings.TrimSpace(sel[i+1:])
		}
		rules = append(rules, cssRule{selector: sel, body: m[2]})
	}
	return rules
}

func parseDeclarations(body string) []cssDecl {
	var decls []cssDecl
	for _, m := range cssDeclarationPattern.FindAllStringSubmatch(body, -1) {
		decls = append(decls, cssDecl{
			property: strings.ToLower(strings.TrimSpace(m[1])),
			value:    strings.TrimSpace(m[2]),
		})
	}
	return decls
}

// colorCounter is a frequency map that remembers first-seen order
type colorCounter struct {
	counts map[string]int
	order  []string
}

func newColorCounter() *colorCounter {
	return &colorCounter{counts: make(map[string]int)}
}

func (c *colorCounter) add(hex string) {
	if _, ok := c.counts[hex]; !ok {
		c.order = append(c.order, hex)
	}
	c.counts[hex]++
}

// ranked returns colors by descending frequency, ties by first appearance
func (c *colorCounter) ranked() []string {
	out := append([]string(nil), c.order...)
	sort.SliceStable(out, func(i, j int) bool {
		return c.counts[out[i]] > c.counts[out[j]]
	})
	return out
}

// ExtractStyle recovers the color palette, typography and layout signals
// from <style> blocks (including inlined stylesheets) and inline styles.
func ExtractStyle(pd *ParsedDocument) StyleInfo {
	doc := pd.Document()

	var rules []cssRule
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		rules = append(rules, parseCSSRules(s.Text())...)
	})

	return StyleInfo{
		Colors:     extractPalette(doc, rules),
		Typography: extractTypography(doc, rules),
		Layout:     extractLayout(doc, rules),
	}
}

func extractPalette(doc *goquery.Document, rules []cssRule) ColorPalette {
	palette := ColorPalette{
		Primary:    []string{},
		Secondary:  []string{},
		Background: []string{},
		Text:       []string{},
		CTA:        []string{},
	}

	ctaSet := make(map[string]bool)
	addCTA := func(hex string) {
		if ctaSet[hex] {
			return
		}
		ctaSet[hex] = true
		if len(palette.CTA) < maxColorsPerBucket {
			palette.CTA = append(palette.CTA, hex)
		}
	}

	// CTA colors are sampled first so they never land in another bucket
	doc.Find(ctaElementSelector).Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		for _, d := range parseDeclarations(style) {
			for _, hex := range colorsInValue(d.property, d.value) {
				addCTA(hex)
			}
		}
	})
	for _, r := range rules {
		if !ctaRuleSelector.MatchString(r.selector) {
			continue
		}
		for _, d := range parseDeclarations(r.body) {
			for _, hex := range colorsInValue(d.property, d.value) {
				addCTA(hex)
			}
		}
	}

	counter := newColorCounter()
	for _, r := range rules {
		for _, d := range parseDeclarations(r.body) {
			for _, hex := range colorsInValue(d.property, d.value) {
				counter.add(hex)
			}
		}
	}
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		for _, d := range parseDeclarations(style) {
			for _, hex := range colorsInValue(d.property, d.value) {
				counter.add(hex)
			}
		}
	})

	candidates := 0
	for _, hex := range counter.ranked() {
		if ctaSet[hex] {
			continue
		}
		if candidates == maxPaletteCandidates {
			break
		}
		candidates++

		switch y := luma(hex); {
		case y > lightLuma:
			if len(palette.Background) < maxColorsPerBucket {
				palette.Background = append(palette.Background, hex)
			}
		case y < darkLuma:
			if len(palette.Text) < maxColorsPerBucket {
				palette.Text = append(palette.Text, hex)
			}
		default:
			if len(palette.Primary) < maxColorsPerBucket {
				palette.Primary = append(palette.Primary, hex)
			} else if len(palette.Secondary) < maxColorsPerBucket {
				palette.Secondary = append(palette.Secondary, hex)
			}
		}
	}
	return palette
}

// firstFontFamily returns the first family of a font-family list, unquoted
func firstFontFamily(value string) string {
	value = strings.TrimSuffix(strings.TrimSpace(value), "!important")
	first := strings.TrimSpace(strings.Split(value, ",")[0])
	first = strings.Trim(first, `"' `)
	switch strings.ToLower(first) {
	case "", "inherit", "initial", "unset", "var":
		return ""
	}
	if strings.HasPrefix(first, "var(") {
		return ""
	}
	return first
}

// fontFromShorthand pulls the family out of a "font:" shorthand value
func fontFromShorthand(value string) string {
	fields := strings.Fields(value)
	for i, f := range fields {
		// the family follows the size, e.g. "bold 16px/1.4 Inter, sans-serif"
		if strings.ContainsAny(f, "0123456789") && i+1 < len(fields) {
			return firstFontFamily(strings.Join(fields[i+1:], " "))
		}
	}
	return ""
}

type stringSet struct {
	items []string
	seen  map[string]bool
}

func newStringSet() *stringSet {
	return &stringSet{items: []string{}, seen: make(map[string]bool)}
}

func (s *stringSet) add(v string) {
	if v == "" || s.seen[strings.ToLower(v)] {
		return
	}
	s.seen[strings.ToLower(v)] = true
	s.items = append(s.items, v)
}

func extractTypography(doc *goquery.Document, rules []cssRule) Typography {
	headings, body, sizes := newStringSet(), newStringSet(), newStringSet()

	fontOf := func(d cssDecl) string {
		switch d.property {
		case "font-family":
			return firstFontFamily(d.value)
		case "font":
			return fontFromShorthand(d.value)
		}
		return ""
	}

	for _, r := range rules {
		isHeading := headingRuleSelector.MatchString(r.selector)
		for _, d := range parseDeclarations(r.body) {
			if d.property == "font-size" {
				sizes.add(strings.TrimSuffix(d.value, " !important"))
			}
			family := fontOf(d)
			if family == "" {
				continue
			}
			if isHeading {
				headings.add(family)
			} else if bodyRuleSelector.MatchString(r.selector) || len(body.items) == 0 {
				body.add(family)
			}
		}
	}

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		isHeading := headingLevel(goquery.NodeName(s)) > 0
		for _, d := range parseDeclarations(style) {
			if d.property == "font-size" {
				sizes.add(d.value)
			}
			family := fontOf(d)
			if family == "" {
				continue
			}
			if isHeading {
				headings.add(family)
			} else {
				body.add(family)
			}
		}
	})

	// Google Fonts links name families even when the CSS is not inlined
	doc.Find(`link[href*="fonts.googleapis.com"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		for _, fam := range u.Query()["family"] {
			name := strings.TrimSpace(strings.SplitN(fam, ":", 2)[0])
			name = strings.ReplaceAll(name, "+", " ")
			if len(body.items) == 0 {
				body.add(name)
			} else if len(headings.items) == 0 {
				headings.add(name)
			}
		}
	})

	return Typography{
		HeadingFonts: headings.items,
		BodyFonts:    body.items,
		FontSizes:    sizes.items,
	}
}

func extractLayout(doc *goquery.Document, rules []cssRule) Layout {
	layout := Layout{ColumnLayout: "single"}

	var fallbackMaxWidth string
	gridSignals, columnSignals := 0, 0

	for _, r := range rules {
		for _, d := range parseDeclarations(r.body) {
			value := strings.ToLower(d.value)
			switch d.property {
			case "max-width":
				if layout.MaxWidth == "" && containerRuleSelector.MatchString(r.selector) {
					layout.MaxWidth = d.value
				} else if fallbackMaxWidth == "" && strings.HasSuffix(value, "px") {
					fallbackMaxWidth = d.value
				}
			case "position":
				markPositioned(&layout, value, r.selector)
			}
		}
		if displayGridPattern.MatchString(r.body) {
			gridSignals++
		}
		if columnCountPattern.MatchString(r.body) {
			columnSignals++
		}
		if displayFlexPattern.MatchString(r.body) && !strings.Contains(strings.ToLower(r.body), "column") {
			columnSignals++
		}
	}
	if layout.MaxWidth == "" {
		layout.MaxWidth = fallbackMaxWidth
	}

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		for _, d := range parseDeclarations(style) {
			if d.property == "position" {
				markPositioned(&layout, strings.ToLower(d.value), goquery.NodeName(s)+" "+classAndID(s))
			}
		}
		if displayGridPattern.MatchString(style) {
			gridSignals++
		}
	})

	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class := attrLower(s, "class")
		switch {
		case gridClassPattern.MatchString(class):
			gridSignals++
		case columnClassPattern.MatchString(class):
			columnSignals++
		}
		if strings.Contains(class, "sticky") || strings.Contains(class, "fixed-top") || strings.Contains(class, "navbar-fixed") {
			markPositioned(&layout, "sticky", goquery.NodeName(s)+" "+class)
		}
	})

	switch {
	case gridSignals >= 2:
		layout.ColumnLayout = "grid"
	case columnSignals >= 2:
		layout.ColumnLayout = "multi-column"
	}
	return layout
}

// markPositioned records fixed/sticky positioning. Header-like targets set
// HasFixedHeader; anything else is a sticky element.
func markPositioned(layout *Layout, value, target string) {
	if !strings.HasPrefix(value, "fixed") && !strings.HasPrefix(value, "sticky") {
		return
	}
	if headerLikePattern.MatchString(target) {
		layout.HasFixedHeader = true
		return
	}
	layout.HasStickyElements = true
}
