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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	subheadlineClassPattern = regexp.MustCompile(`\bsub-?(?:title|head|heading|headline)\b|subtitle|subheadline|tagline|\blead\b|\bdeck\b`)
	urgencyPattern          = regexp.MustCompile(`(?i)\b(?:now|today|tonight|limited|hurry|last chance|instant(?:ly)?|immediately|ends|expires|before it'?s gone|only \d+ left|don'?t miss)\b`)
	navButtonPattern        = regexp.MustCompile(`(?i)^\W*(?:back|previous|prev|next|home|menu|log ?in|sign ?in|learn more|read more|see more|more info|close|skip)\b`)
	ctaButtonClassPattern   = regexp.MustCompile(`\bcta\b|cta-|-cta|btn-primary|button-primary|primary-btn|btn-cta|btn-lg|btn-large`)
	spacerPattern           = regexp.MustCompile(`(?i)spacer|blank\.gif|transparent\.(?:gif|png)|pixel\.(?:gif|png)|1x1`)
	heroImagePattern        = regexp.MustCompile(`(?i)hero|banner|masthead|header-(?:img|image)|cover`)
	iconImagePattern        = regexp.MustCompile(`(?i)icon|logo|badge|avatar|emoji|arrow|check|favicon|sprite`)
	checkListPattern        = regexp.MustCompile(`(?i)check|tick|checklist|fa-check|icon-check`)
	checkMarkPrefix         = regexp.MustCompile(`^[✓✔☑✅√]`)
)

const (
	minParagraphRunes   = 20
	maxSubheadlineRunes = 300
	heroImageMinWidth   = 600
	iconImageMaxSide    = 64
)

// ExtractComponents pulls typed components out of the page, each carrying
// the ID of the innermost section containing it.
func ExtractComponents(pd *ParsedDocument) ComponentMap {
	_, ix := detectSections(pd)
	return extractComponents(pd, ExtractForms(pd), ix, nil)
}

// extractComponents is the assembly path: forms and the section index come
// from the earlier stages. sectionTypes, when set, maps section IDs to types
// for hero-image detection.
func extractComponents(pd *ParsedDocument, forms []Form, ix *sectionIndex, sectionTypes map[string]SectionType) ComponentMap {
	doc := pd.Document()
	cm := ComponentMap{
		Headlines:    []Headline{},
		Subheadlines: []Subheadline{},
		Paragraphs:   []Paragraph{},
		Buttons:      []Button{},
		Images:       []Image{},
		Forms:        []Form{},
		Lists:        []List{},
		Videos:       []Video{},
	}

	extractHeadlines(doc, ix, &cm)
	extractSubheadlines(doc, ix, &cm)
	extractParagraphs(doc, ix, &cm)
	extractButtons(pd, ix, &cm)
	extractImages(pd, ix, sectionTypes, &cm)

	formNodes := doc.Find("form")
	for i, f := range forms {
		if i < formNodes.Length() {
			f.SectionID = ix.lookup(formNodes.Eq(i))
		}
		cm.Forms = append(cm.Forms, f)
	}

	extractLists(doc, ix, &cm)
	extractVideos(pd, ix, &cm)
	return cm
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func extractHeadlines(doc *goquery.Document, ix *sectionIndex, cm *ComponentMap) {
	mainFound := false
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := normalizeWhitespace(s.Text())
		if text == "" {
			return
		}
		level := headingLevel(goquery.NodeName(s))
		h := Headline{
			ID:        "headline-" + strconv.Itoa(len(cm.Headlines)+1),
			Text:      text,
			Level:     level,
			Selector:  buildSelector(s),
			SectionID: ix.lookup(s),
		}
		if level == 1 && !mainFound {
			h.IsMainHeadline = true
			mainFound = true
		}
		cm.Headlines = append(cm.Headlines, h)
	})
}

func extractSubheadlines(doc *goquery.Document, ix *sectionIndex, cm *ComponentMap) {
	seen := make(map[string]bool)
	add := func(s *goquery.Selection) {
		text := normalizeWhitespace(s.Text())
		n := utf8.RuneCountInString(text)
		if n < 10 || n > maxSubheadlineRunes || seen[text] {
			return
		}
		seen[text] = true
		cm.Subheadlines = append(cm.Subheadlines, Subheadline{
			ID:        "subheadline-" + strconv.Itoa(len(cm.Subheadlines)+1),
			Text:      text,
			Selector:  buildSelector(s),
			SectionID: ix.lookup(s),
		})
	}

	doc.Find("h1, h2, h3").Each(func(_ int, h *goquery.Selection) {
		next := h.Next()
		if next.Length() == 0 {
			return
		}
		level := headingLevel(goquery.NodeName(h))
		switch tag := goquery.NodeName(next); tag {
		case "p", "div", "span":
			if elementChildCount(next) <= 2 {
				add(next)
			}
		case "h2", "h3", "h4", "h5", "h6":
			if headingLevel(tag) > level {
				add(next)
			}
		}
	})
	doc.Find("p[class], div[class], span[class], h2[class], h3[class], h4[class]").Each(func(_ int, s *goquery.Selection) {
		if subheadlineClassPattern.MatchString(attrLower(s, "class")) && elementChildCount(s) <= 2 {
			add(s)
		}
	})
}

func extractParagraphs(doc *goquery.Document, ix *sectionIndex, cm *ComponentMap) {
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if hasAncestor(s, "form", "button", "a") {
			return
		}
		text := normalizeWhitespace(s.Text())
		if utf8.RuneCountInString(text) <= minParagraphRunes {
			return
		}
		cm.Paragraphs = append(cm.Paragraphs, Paragraph{
			ID:        "paragraph-" + strconv.Itoa(len(cm.Paragraphs)+1),
			Text:      text,
			Selector:  buildSelector(s),
			SectionID: ix.lookup(s),
		})
	})
}

func buttonText(s *goquery.Selection) string {
	if goquery.NodeName(s) == "input" {
		v, _ := s.Attr("value")
		return normalizeWhitespace(v)
	}
	text := normalizeWhitespace(s.Text())
	if text == "" {
		text, _ = s.Attr("aria-label")
	}
	return normalizeWhitespace(text)
}

// classifyButton types a clickable element by tag, text and class
func classifyButton(s *goquery.Selection, text string) ButtonType {
	tag := goquery.NodeName(s)
	typ := attrLower(s, "type")
	if tag == "input" && typ == "submit" {
		return ButtonSubmit
	}
	if tag == "button" && (typ == "submit" || typ == "") && hasAncestor(s, "form") {
		return ButtonSubmit
	}
	if navButtonPattern.MatchString(text) {
		return ButtonNavigation
	}
	if ctaTextPattern.MatchString(text) || ctaButtonClassPattern.MatchString(classAndID(s)) {
		return ButtonCTA
	}
	if tag == "a" && isCTAStyled(s) && !hasAncestor(s, "nav", "footer") {
		return ButtonCTA
	}
	return ButtonSecondary
}

func extractButtons(pd *ParsedDocument, ix *sectionIndex, cm *ComponentMap) {
	seen := make(map[string]bool)
	pd.Document().Find("button, input[type=submit], input[type=button], a, [role=button]").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		if tag == "a" && !isCTAStyled(s) {
			return
		}
		text := buttonText(s)
		key := strings.ToLower(text)
		if text == "" || seen[key] {
			return
		}
		seen[key] = true

		b := Button{
			ID:         "button-" + strconv.Itoa(len(cm.Buttons)+1),
			Text:       text,
			Type:       classifyButton(s, text),
			Selector:   buildSelector(s),
			HasUrgency: urgencyPattern.MatchString(text),
			SectionID:  ix.lookup(s),
		}
		if href, ok := s.Attr("href"); ok && tag == "a" {
			b.Href = pd.ResolveURL(href)
		}
		cm.Buttons = append(cm.Buttons, b)
	})
}

// dimension parses a width/height attribute ("300", "300px"); 0 when unknown
func dimension(s *goquery.Selection, attr string) int {
	v := strings.TrimSuffix(strings.TrimSpace(attrLower(s, attr)), "px")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func imageSource(s *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src", "data-original"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// isPixelImage reports tracking pixels and layout spacers
func isPixelImage(s *goquery.Selection, src string) bool {
	w, h := dimension(s, "width"), dimension(s, "height")
	if (w > 0 && w <= 2) || (h > 0 && h <= 2) {
		return true
	}
	if spacerPattern.MatchString(src) {
		return true
	}
	if !strings.HasPrefix(src, "data:") {
		if _, ok := matchTracking(src); ok {
			return true
		}
	}
	return false
}

func extractImages(pd *ParsedDocument, ix *sectionIndex, sectionTypes map[string]SectionType, cm *ComponentMap) {
	pd.Document().Find("img").Each(func(_ int, s *goquery.Selection) {
		src := imageSource(s)
		if src == "" || hasAncestor(s, "noscript") || isPixelImage(s, src) {
			return
		}
		img := Image{
			ID:        "image-" + strconv.Itoa(len(cm.Images)+1),
			Src:       pd.ResolveURL(src),
			Width:     dimension(s, "width"),
			Height:    dimension(s, "height"),
			Selector:  buildSelector(s),
			SectionID: ix.lookup(s),
		}
		img.Alt, _ = s.Attr("alt")
		img.Role = classifyImageRole(s, img, sectionTypes, len(cm.Images) == 0)
		cm.Images = append(cm.Images, img)
	})
}

func classifyImageRole(s *goquery.Selection, img Image, sectionTypes map[string]SectionType, first bool) ImageRole {
	hints := classAndID(s) + " " + strings.ToLower(img.Alt)
	if !strings.HasPrefix(img.Src, "data:") {
		hints += " " + strings.ToLower(img.Src)
	}
	if (img.Width > 0 && img.Width <= iconImageMaxSide) || (img.Height > 0 && img.Height <= iconImageMaxSide) {
		return ImageIcon
	}
	if iconImagePattern.MatchString(hints) && img.Width < heroImageMinWidth {
		return ImageIcon
	}
	if heroImagePattern.MatchString(hints) || sectionTypes[img.SectionID] == SectionHero {
		return ImageHero
	}
	if first && img.Width >= heroImageMinWidth {
		return ImageHero
	}
	return ImageContent
}

func extractLists(doc *goquery.Document, ix *sectionIndex, cm *ComponentMap) {
	doc.Find("ul, ol").Each(func(_ int, s *goquery.Selection) {
		if hasAncestor(s, "nav") {
			return
		}
		var items []string
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if text := normalizeWhitespace(li.Text()); text != "" {
				items = append(items, text)
			}
		})
		if len(items) == 0 {
			return
		}

		typ := ListBullet
		switch {
		case goquery.NodeName(s) == "ol":
			typ = ListNumbered
		case checkListPattern.MatchString(classAndID(s)) ||
			s.Find("li [class*=check], li [class*=tick], li svg").Length() > 0 ||
			checkMarkPrefix.MatchString(items[0]):
			typ = ListCheck
		}

		cm.Lists = append(cm.Lists, List{
			ID:        "list-" + strconv.Itoa(len(cm.Lists)+1),
			Type:      typ,
			Items:     items,
			Selector:  buildSelector(s),
			SectionID: ix.lookup(s),
		})
	})
}

func extractVideos(pd *ParsedDocument, ix *sectionIndex, cm *ComponentMap) {
	pd.Document().Find("video, iframe").Each(func(_ int, s *goquery.Selection) {
		var typ VideoType
		var src string
		if goquery.NodeName(s) == "video" {
			typ = VideoHTML5
			src, _ = s.Attr("src")
			if src == "" {
				src, _ = s.Find("source[src]").First().Attr("src")
			}
		} else {
			src, _ = s.Attr("src")
			if src == "" {
				src, _ = s.Attr("data-src")
			}
			lower := strings.ToLower(src)
			switch {
			case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be") || strings.Contains(lower, "youtube-nocookie.com"):
				typ = VideoYouTube
			case strings.Contains(lower, "vimeo.com"):
				typ = VideoVimeo
			case videoHostPattern.MatchString(lower):
				typ = VideoEmbed
			default:
				return
			}
		}
		cm.Videos = append(cm.Videos, Video{
			ID:        "video-" + strconv.Itoa(len(cm.Videos)+1),
			Type:      typ,
			Src:       pd.ResolveURL(strings.TrimSpace(src)),
			Selector:  buildSelector(s),
			SectionID: ix.lookup(s),
		})
	})
}
