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
	"golang.org/x/net/html"
)

// cssIdentPattern accepts ids and class names usable in a CSS selector without escaping
var cssIdentPattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// buildSelector returns a CSS selector that re-locates the element.
// Priority: "#id", then a path of "tag.class:nth-child(n)" segments anchored
// at the nearest ancestor with an id (or body).
func buildSelector(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return selectorForNode(s.Get(0))
}

func selectorForNode(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}

	var parts []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if id := nodeAttr(cur, "id"); cssIdentPattern.MatchString(id) {
			parts = append(parts, "#"+id)
			break
		}
		if cur.Data == "body" || cur.Data == "html" {
			parts = append(parts, cur.Data)
			break
		}
		parts = append(parts, selectorSegment(cur))
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

func selectorSegment(n *html.Node) string {
	segment := n.Data
	for _, class := range strings.Fields(nodeAttr(n, "class")) {
		if cssIdentPattern.MatchString(class) {
			segment += "." + class
			break
		}
	}
	return segment + ":nth-child(" + strconv.Itoa(elementIndex(n)) + ")"
}

// elementIndex is the 1-based position of n among its element siblings
func elementIndex(n *html.Node) int {
	idx := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode {
			idx++
		}
	}
	return idx
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// attrLower returns the lower-cased attribute value, empty when missing
func attrLower(s *goquery.Selection, key string) string {
	v, _ := s.Attr(key)
	return strings.ToLower(v)
}

// classAndID returns the lower-cased "class id" string used by keyword heuristics
func classAndID(s *goquery.Selection) string {
	return strings.TrimSpace(attrLower(s, "class") + " " + attrLower(s, "id"))
}

// directText returns the trimmed text of the element's own text node children
func directText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for c := s.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
	}
	return normalizeWhitespace(b.String())
}

// elementChildCount counts the element children of the first node in s
func elementChildCount(s *goquery.Selection) int {
	if s.Length() == 0 {
		return 0
	}
	count := 0
	for c := s.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// hasAncestor reports whether any ancestor of s matches one of the tag names
func hasAncestor(s *goquery.Selection, tags ...string) bool {
	if s.Length() == 0 {
		return false
	}
	for p := s.Get(0).Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		for _, t := range tags {
			if p.Data == t {
				return true
			}
		}
	}
	return false
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
