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
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Detection tiers recorded on PageSection.DetectedBy
const (
	DetectedBySemantic = "semantic"
	DetectedByClass    = "class"
	DetectedByContent  = "content"
	DetectedByLoose    = "loose"
	DetectedByFallback = "fallback"
)

const (
	minSectionsBeforeLoose = 3
	looseMinHTMLBytes      = 100
	maxWrapperDepth        = 5
)

// sectionRule maps a class/id pattern to a section type. Order matters: the
// first matching rule wins.
type sectionRule struct {
	typ     SectionType
	pattern *regexp.Regexp
}

var sectionClassRules = []sectionRule{
	{SectionHero, regexp.MustCompile(`hero|banner|jumbotron|masthead|above-the-fold|splash|\bintro\b`)},
	{SectionTestimonials, regexp.MustCompile(`testimonial|reviews?\b|quotes?\b|success-stor|what-(?:people|customers|clients)`)},
	{SectionSocialProof, regexp.MustCompile(`social-?proof|as-seen|featured-in|trusted|clients|logos?\b|press\b|partners`)},
	{SectionPricing, regexp.MustCompile(`pricing|prices?\b|plans?\b|packages?\b|\boffer\b`)},
	{SectionFAQ, regexp.MustCompile(`faq|questions|accordion`)},
	{SectionFeatures, regexp.MustCompile(`features?\b|services\b|how-it-works|what-you-get|modules\b`)},
	{SectionBenefits, regexp.MustCompile(`benefits?\b|advantages|why-(?:us|choose)|results\b`)},
	{SectionCTA, regexp.MustCompile(`\bcta\b|cta-|-cta|call-to-action|get-started|order-now|buy-now|opt-?in`)},
	{SectionForm, regexp.MustCompile(`\bform\b|form-|-form|contact|signup|sign-up|subscribe|newsletter|lead-capture`)},
	{SectionGallery, regexp.MustCompile(`gallery|portfolio|carousel|slider`)},
	{SectionVideo, regexp.MustCompile(`video|\bvsl\b|player`)},
	{SectionHeader, regexp.MustCompile(`\bheader\b|site-header|top-?bar|navbar`)},
	{SectionFooter, regexp.MustCompile(`footer|bottom-bar|copyright`)},
}

// sectionHeadingRules type a section by the wording of its first heading
var sectionHeadingRules = []sectionRule{
	{SectionFAQ, regexp.MustCompile(`(?i)frequently asked|\bfaqs?\b|questions`)},
	{SectionTestimonials, regexp.MustCompile(`(?i)testimonials?|what (?:our|people|customers|clients) (?:say|are saying)|reviews|success stories`)},
	{SectionPricing, regexp.MustCompile(`(?i)pricing|choose your (?:plan|package)|plans\b`)},
	{SectionBenefits, regexp.MustCompile(`(?i)benefits|why choose|why us|what you(?:'ll| will) (?:get|gain)`)},
	{SectionFeatures, regexp.MustCompile(`(?i)features|how it works|what's included|what is included`)},
	{SectionSocialProof, regexp.MustCompile(`(?i)as seen (?:on|in)|trusted by|featured in`)},
}

var wrapperPattern = regexp.MustCompile(`wrap|container|\bpage\b|site|content|\bmain\b|inner|layout|\bapp\b|root`)

var videoHostPattern = regexp.MustCompile(`(?i)youtube|youtu\.be|vimeo|wistia|vidyard|loom\.com|player|video`)

var sectionSkipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "svg": true,
	"link": true, "meta": true, "br": true, "hr": true,
}

var sectionContainerTags = map[string]bool{
	"div": true, "section": true, "article": true, "aside": true, "form": true,
}

var sectionPolicy = newSectionPolicy()

var sectionMarkdown = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// newSectionPolicy keeps structure, classes, links, images, form controls and
// inline colors and backgrounds while dropping scripts and event handlers.
func newSectionPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowStyles("color", "background", "background-color", "background-image").Globally()
	p.AllowDataURIImages()
	p.AllowElements("header", "footer", "nav", "main", "div", "span", "form", "label", "button", "input", "select", "option", "textarea")
	p.AllowAttrs("type", "name", "value", "placeholder").OnElements("input", "button", "select", "textarea")
	p.AllowAttrs("action", "method").OnElements("form")
	p.AllowAttrs("for").OnElements("label")
	p.AllowAttrs("src", "poster").OnElements("video", "source")
	p.AllowAttrs("controls").OnElements("video")
	p.AllowElements("video", "source")
	p.RequireNoFollowOnLinks(false)
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// sectionIndex resolves an element to the innermost section containing it
type sectionIndex struct {
	byNode map[*html.Node]string
}

func (ix *sectionIndex) lookup(s *goquery.Selection) string {
	if ix == nil || s == nil || s.Length() == 0 {
		return ""
	}
	return ix.lookupNode(s.Get(0))
}

func (ix *sectionIndex) lookupNode(n *html.Node) string {
	for cur := n; cur != nil; cur = cur.Parent {
		if id, ok := ix.byNode[cur]; ok {
			return id
		}
	}
	return ""
}

// sectionCandidate is a section before ordering and ID assignment
type sectionCandidate struct {
	sel        *goquery.Selection
	typ        SectionType
	detectedBy string
}

// sectionDetector runs one pass of the cascade
type sectionDetector struct {
	loose   bool
	claimed map[*html.Node]bool
	found   []sectionCandidate
}

func (d *sectionDetector) claim(s *goquery.Selection, typ SectionType, by string) {
	n := s.Get(0)
	if d.claimed[n] {
		return
	}
	d.claimed[n] = true
	d.found = append(d.found, sectionCandidate{sel: s, typ: typ, detectedBy: by})
}

func (d *sectionDetector) containsClaimed(s *goquery.Selection) bool {
	found := false
	s.Find("*").EachWithBreak(func(_ int, c *goquery.Selection) bool {
		found = d.claimed[c.Get(0)]
		return !found
	})
	return found
}

// DetectSections segments the page. It never returns an empty slice for a
// document with a body: when nothing structural is found the whole body
// becomes one unknown section.
func DetectSections(pd *ParsedDocument) []PageSection {
	sections, _ := detectSections(pd)
	return sections
}

func detectSections(pd *ParsedDocument) ([]PageSection, *sectionIndex) {
	doc := pd.Document()
	body := doc.Find("body").First()

	strict := runSectionDetector(body, false)
	found := strict
	if len(strict) < minSectionsBeforeLoose {
		if loose := runSectionDetector(body, true); len(loose) > len(strict) {
			found = loose
		}
	}
	if len(found) == 0 && body.Length() > 0 {
		found = []sectionCandidate{{sel: body, typ: SectionUnknown, detectedBy: DetectedByFallback}}
	}

	order := documentOrder(pd.Root())
	sort.SliceStable(found, func(i, j int) bool {
		return order[found[i].sel.Get(0)] < order[found[j].sel.Get(0)]
	})

	ix := &sectionIndex{byNode: make(map[*html.Node]string, len(found))}
	sections := make([]PageSection, 0, len(found))
	for i, c := range found {
		id := "section-" + strconv.Itoa(i+1)
		ix.byNode[c.sel.Get(0)] = id
		sections = append(sections, buildSection(pd, c, id, i+1))
	}
	return sections, ix
}

func runSectionDetector(body *goquery.Selection, loose bool) []sectionCandidate {
	if body.Length() == 0 {
		return nil
	}
	d := &sectionDetector{loose: loose, claimed: make(map[*html.Node]bool)}

	// Tier 1: semantic landmarks
	body.Find("header, nav, footer").Each(func(_ int, s *goquery.Selection) {
		if hasAncestor(s, "section", "article", "header", "footer", "nav", "form") {
			return
		}
		switch goquery.NodeName(s) {
		case "footer":
			d.claim(s, SectionFooter, DetectedBySemantic)
		default:
			d.claim(s, SectionHeader, DetectedBySemantic)
		}
	})
	body.Find("main > section, body > section").Each(func(_ int, s *goquery.Selection) {
		typ, ok := classifySectionByClass(s)
		if !ok {
			typ, ok = classifySectionByContent(s)
		}
		if !ok {
			typ = SectionUnknown
		}
		d.claim(s, typ, DetectedBySemantic)
	})

	// Tier 2: generic containers
	d.walk(body, 0)
	return d.found
}

func (d *sectionDetector) walk(parent *goquery.Selection, depth int) {
	parent.Children().Each(func(_ int, c *goquery.Selection) {
		tag := goquery.NodeName(c)
		if sectionSkipTags[tag] || d.claimed[c.Get(0)] {
			return
		}
		if tag == "main" {
			d.walk(c, depth+1)
			return
		}
		if !sectionContainerTags[tag] {
			return
		}
		if typ, ok := classifySectionByClass(c); ok {
			d.claim(c, typ, DetectedByClass)
			return
		}
		if depth < maxWrapperDepth && d.isWrapper(c) {
			d.walk(c, depth+1)
			return
		}
		if typ, ok := classifySectionByContent(c); ok {
			d.claim(c, typ, DetectedByContent)
			return
		}
		if d.loose {
			if raw, err := goquery.OuterHtml(c); err == nil && len(raw) > looseMinHTMLBytes {
				d.claim(c, SectionUnknown, DetectedByLoose)
			}
		}
	})
}

// isWrapper reports whether a container only groups the real sections
func (d *sectionDetector) isWrapper(s *goquery.Selection) bool {
	if wrapperPattern.MatchString(classAndID(s)) {
		return true
	}
	if d.containsClaimed(s) {
		return true
	}
	siblings := s.Parent().Children().FilterFunction(func(_ int, c *goquery.Selection) bool {
		return !sectionSkipTags[goquery.NodeName(c)]
	})
	return siblings.Length() == 1 && elementChildCount(s) > 1
}

func classifySectionByClass(s *goquery.Selection) (SectionType, bool) {
	attrs := classAndID(s)
	if attrs == "" {
		return "", false
	}
	for _, rule := range sectionClassRules {
		if rule.pattern.MatchString(attrs) {
			return rule.typ, true
		}
	}
	return "", false
}

func classifySectionByContent(s *goquery.Selection) (SectionType, bool) {
	if goquery.NodeName(s) == "form" || s.Find("form").Length() > 0 {
		return SectionForm, true
	}
	if s.Find("video").Length() > 0 {
		return SectionVideo, true
	}
	videoFrame := s.Find("iframe").FilterFunction(func(_ int, f *goquery.Selection) bool {
		src, _ := f.Attr("src")
		return videoHostPattern.MatchString(src)
	})
	if videoFrame.Length() > 0 {
		return SectionVideo, true
	}
	if s.Find("img").Length() > 3 {
		return SectionGallery, true
	}
	hero := false
	s.Children().Slice(0, min(3, s.Children().Length())).Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "h1" || c.Find("h1").Length() > 0 {
			hero = true
		}
	})
	if hero {
		return SectionHero, true
	}
	if heading := normalizeWhitespace(s.Find("h2, h3").First().Text()); heading != "" {
		for _, rule := range sectionHeadingRules {
			if rule.pattern.MatchString(heading) {
				return rule.typ, true
			}
		}
	}
	return "", false
}

func buildSection(pd *ParsedDocument, c sectionCandidate, id string, order int) PageSection {
	raw, _ := goquery.OuterHtml(c.sel)
	clean := strings.TrimSpace(sectionPolicy.Sanitize(raw))

	section := PageSection{
		ID:         id,
		Type:       c.typ,
		Selector:   buildSelector(c.sel),
		Order:      order,
		HTML:       clean,
		TextLength: utf8.RuneCountInString(normalizeWhitespace(c.sel.Text())),
		DetectedBy: c.detectedBy,
	}

	var opts []converter.ConvertOptionFunc
	if isHTTPURL(pd.BaseURL) {
		opts = append(opts, converter.WithDomain(pd.BaseURL))
	}
	if md, err := sectionMarkdown.ConvertString(clean, opts...); err == nil {
		section.Markdown = strings.TrimSpace(md)
	}
	return section
}

// documentOrder numbers element nodes in pre-order
func documentOrder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			order[n] = len(order)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return order
}
