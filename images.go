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

	"github.com/PuerkitoBio/goquery"
)

var (
	profileImagePattern   = regexp.MustCompile(`(?i)avatar|profile|author|headshot|portrait|testimonial|reviewer|customer|user-?pic|team|member|face`)
	decorativeHintPattern = regexp.MustCompile(`(?i)decor|divider|separator|ornament|shape|pattern|wave|blob|bg-|background|arrow|bullet`)
)

// categorizeImage maps an extracted image onto the visual categories.
// Badges win over profile pictures, which win over the component role.
func categorizeImage(img Image, sectionType SectionType) ImageCategory {
	hints := strings.ToLower(img.Alt + " " + img.Selector)
	if !strings.HasPrefix(img.Src, "data:") {
		hints += " " + strings.ToLower(img.Src)
	}
	switch {
	case trustBadgeImagePattern.MatchString(hints):
		return ImageCategoryBadge
	case profileImagePattern.MatchString(hints):
		return ImageCategoryProfile
	case sectionType == SectionTestimonials && img.Role != ImageHero:
		return ImageCategoryProfile
	case img.Role == ImageIcon:
		return ImageCategoryIcon
	case img.Role == ImageHero:
		return ImageCategoryHero
	}
	return ImageCategoryDecorative
}

// detectImages lists the component images followed by the inline-style
// background images.
func detectImages(pd *ParsedDocument, components ComponentMap, ix *sectionIndex, sectionTypes map[string]SectionType) []DetectedImage {
	images := make([]DetectedImage, 0, len(components.Images))
	for _, img := range components.Images {
		images = append(images, DetectedImage{
			ID:        "image-" + strconv.Itoa(len(images)+1),
			URL:       img.Src,
			Alt:       img.Alt,
			Category:  categorizeImage(img, sectionTypes[img.SectionID]),
			Selector:  img.Selector,
			Width:     img.Width,
			Height:    img.Height,
			SectionID: img.SectionID,
		})
	}

	seen := make(map[string]bool)
	pd.Document().Find("[style]").Each(func(_ int, s *goquery.Selection) {
		for _, u := range backgroundURLs(s) {
			abs := pd.ResolveURL(u)
			if seen[abs] {
				continue
			}
			seen[abs] = true
			category := ImageCategoryBackground
			if decorativeHintPattern.MatchString(classAndID(s)) && !strings.Contains(classAndID(s), "hero") {
				category = ImageCategoryDecorative
			}
			images = append(images, DetectedImage{
				ID:        "image-" + strconv.Itoa(len(images)+1),
				URL:       abs,
				Category:  category,
				Selector:  buildSelector(s),
				SectionID: ix.lookup(s),
			})
		}
	})
	return images
}

// backgroundURLs returns the url() references of an element's background declarations
func backgroundURLs(s *goquery.Selection) []string {
	style, _ := s.Attr("style")
	var urls []string
	for _, d := range parseDeclarations(style) {
		if d.property != "background" && d.property != "background-image" {
			continue
		}
		for _, m := range cssURLPattern.FindAllStringSubmatch(d.value, -1) {
			if u := strings.TrimSpace(m[2]); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// originalImages lists every image URL the page referenced before embedding,
// in document order and without data URIs.
func originalImages(pd *ParsedDocument) []string {
	out := []string{}
	seen := make(map[string]bool)
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || strings.HasPrefix(u, "data:") {
			return
		}
		u = pd.ResolveURL(u)
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	pd.Document().Find("img, [style]").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "img" {
			if orig, ok := s.Attr("data-original-src"); ok {
				add(orig)
			} else {
				add(imageSource(s))
			}
		}
		for _, u := range backgroundURLs(s) {
			add(u)
		}
	})
	return out
}
