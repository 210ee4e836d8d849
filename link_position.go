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

	"github.com/PuerkitoBio/goquery"
)

// Link positions reported on DetectedLink.Position
const (
	PositionContent    = "content"
	PositionHero       = "hero"
	PositionNavigation = "navigation"
	PositionHeader     = "header"
	PositionFooter     = "footer"
	PositionForm       = "form"
	PositionModal      = "modal"
	PositionStickyBar  = "sticky-bar"
	PositionSidebar    = "sidebar"
	PositionUnknown    = "unknown"
)

// positionRule maps an ancestor to a page region. Rules are evaluated in order
// against each ancestor, innermost first; the first hit wins.
type positionRule struct {
	position string
	match    func(tag, role, attrs string) bool
}

var positionRules = []positionRule{
	{PositionModal, func(tag, role, attrs string) bool {
		return tag == "dialog" || role == "dialog" || containsAny(attrs, "modal", "popup", "lightbox", "overlay")
	}},
	{PositionStickyBar, func(tag, role, attrs string) bool {
		return containsAny(attrs, "sticky", "fixed-bottom", "floating-cta", "float-bar", "announcement-bar")
	}},
	{PositionNavigation, func(tag, role, attrs string) bool {
		return tag == "nav" || role == "navigation" || containsAny(attrs, "navbar", "nav-", "-nav", " nav", "menu")
	}},
	{PositionHeader, func(tag, role, attrs string) bool {
		return tag == "header" || role == "banner" || containsAny(attrs, "header", "masthead", "topbar")
	}},
	{PositionFooter, func(tag, role, attrs string) bool {
		return tag == "footer" || role == "contentinfo" || containsAny(attrs, "footer", "copyright")
	}},
	{PositionForm, func(tag, role, attrs string) bool {
		return tag == "form" || role == "form"
	}},
	{PositionHero, func(tag, role, attrs string) bool {
		return containsAny(attrs, "hero", "jumbotron", "above-fold", "masthead-content")
	}},
	{PositionSidebar, func(tag, role, attrs string) bool {
		return tag == "aside" || role == "complementary" || containsAny(attrs, "sidebar")
	}},
	{PositionContent, func(tag, role, attrs string) bool {
		return tag == "main" || tag == "article" || tag == "section" || role == "main"
	}},
}

// extractLinkPosition determines the page region of a link and the DOM path
// used to find it.
func extractLinkPosition(s *goquery.Selection) (position string, domPath string) {
	domPath = buildDOMPath(s)
	position = classifyLinkPosition(s, domPath)
	return position, domPath
}

// buildDOMPath constructs a simplified DOM path from the element up to body,
// like "body > main > section#offer.pricing > a". Unlike buildSelector it is
// descriptive, not a re-locatable selector.
func buildDOMPath(selection *goquery.Selection) string {
	var pathParts []string

	for current := selection; current.Length() > 0; current = current.Parent() {
		nodeName := goquery.NodeName(current)
		if nodeName == "html" {
			break
		}

		descriptor := nodeName
		if role, exists := current.Attr("role"); exists && role != "" {
			descriptor += `[role="` + role + `"]`
		}
		if id, exists := current.Attr("id"); exists && id != "" {
			descriptor += "#" + id
		}
		if classes := strings.Fields(attrLower(current, "class")); len(classes) > 0 {
			descriptor += "." + classes[0]
		}
		pathParts = append([]string{descriptor}, pathParts...)
	}

	return strings.Join(pathParts, " > ")
}

// classifyLinkPosition walks the ancestors through positionRules, then falls
// back to keyword matching on the DOM path.
func classifyLinkPosition(selection *goquery.Selection, domPath string) string {
	for current := selection.Parent(); current.Length() > 0; current = current.Parent() {
		tag := goquery.NodeName(current)
		if tag == "body" || tag == "html" {
			break
		}
		role := attrLower(current, "role")
		attrs := " " + classAndID(current)
		for _, rule := range positionRules {
			if rule.match(tag, role, attrs) {
				return rule.position
			}
		}
	}

	domPathLower := strings.ToLower(domPath)
	switch {
	case containsAny(domPathLower, "nav", "menu"):
		return PositionNavigation
	case containsAny(domPathLower, "header", "masthead", "topbar"):
		return PositionHeader
	case strings.Contains(domPathLower, "footer"):
		return PositionFooter
	case containsAny(domPathLower, "main", "article", "section"):
		return PositionContent
	}
	return PositionUnknown
}

// isBoilerplatePosition reports regions whose same-site links are navigation
func isBoilerplatePosition(position string) bool {
	switch position {
	case PositionNavigation, PositionHeader, PositionFooter, PositionSidebar:
		return true
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
