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
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	maxContextRunes = 200
	// maxLeadInDepth bounds how far up a standalone button looks for lead-in copy
	maxLeadInDepth = 3
)

// contextBlock reports elements whose text describes the links inside them
func contextBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Li, atom.Td, atom.Th, atom.Label, atom.Blockquote, atom.Figcaption, atom.Dd,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// sectionBoundary reports elements a context lookup never crosses
func sectionBoundary(a atom.Atom) bool {
	switch a {
	case atom.Body, atom.Section, atom.Header, atom.Footer, atom.Nav, atom.Main, atom.Article, atom.Form:
		return true
	}
	return false
}

func inlineAtom(a atom.Atom) bool {
	switch a {
	case atom.A, atom.Abbr, atom.B, atom.Bdi, atom.Bdo, atom.Br, atom.Cite, atom.Code, atom.Data,
		atom.Dfn, atom.Em, atom.I, atom.Img, atom.Kbd, atom.Mark, atom.Q, atom.S, atom.Samp,
		atom.Small, atom.Span, atom.Strong, atom.Sub, atom.Sup, atom.Time, atom.U, atom.Var, atom.Wbr:
		return true
	}
	return false
}

// inlineElement reports whether tag names phrasing content
func inlineElement(tag string) bool {
	return inlineAtom(atom.Lookup([]byte(tag)))
}

func inlineNode(n *html.Node) bool {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return true
	case html.ElementNode:
		return inlineAtom(n.DataAtom)
	}
	return false
}

// hasOnlyInlineContent reports whether the first node of selection holds
// nothing but text and phrasing elements
func hasOnlyInlineContent(selection *goquery.Selection) bool {
	if selection.Length() == 0 {
		return false
	}
	for c := selection.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if !inlineNode(c) {
			return false
		}
	}
	return true
}

// extractLinkContext returns the copy that frames a link. A link inside a
// paragraph, list item, label or heading gets that block's text. A
// standalone button gets the nearest copy before it in its section, such
// as the subtitle above a hero CTA. Capped at 200 runes.
func extractLinkContext(selection *goquery.Selection) string {
	if len(selection.Nodes) == 0 {
		return ""
	}
	n := selection.Nodes[0]

	for p := n.Parent; p != nil && p.Type == html.ElementNode; p = p.Parent {
		if sectionBoundary(p.DataAtom) {
			break
		}
		if contextBlock(p.DataAtom) {
			return truncate(nodeText(p), maxContextRunes)
		}
	}

	if p := n.Parent; p != nil && p.Type == html.ElementNode && !sectionBoundary(p.DataAtom) && hasOnlyInlineContent(selection.Parent()) {
		if text := nodeText(p); text != normalizeWhitespace(selection.Text()) {
			return truncate(text, maxContextRunes)
		}
	}

	return truncate(leadInText(n), maxContextRunes)
}

// leadInText walks back over the previous siblings of n and its ancestors,
// stopping at the section boundary, and returns the first non-empty text
func leadInText(n *html.Node) string {
	cur := n
	for depth := 0; depth < maxLeadInDepth && cur != nil; depth++ {
		for s := cur.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type != html.ElementNode {
				continue
			}
			switch s.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Img, atom.A, atom.Button:
				continue
			}
			if text := nodeText(s); text != "" {
				return text
			}
		}
		cur = cur.Parent
		if cur == nil || cur.Type != html.ElementNode || sectionBoundary(cur.DataAtom) {
			break
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	writeSpacedText(&b, n, false)
	return normalizeWhitespace(b.String())
}

// writeSpacedText writes the text below n, separating text nodes and block
// elements with spaces so "<h2>Save</h2><p>today</p>" reads "Save today".
// With skipChrome set, nav and footer content is left out.
func writeSpacedText(b *strings.Builder, n *html.Node, skipChrome bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				b.WriteString(t)
				b.WriteByte(' ')
			}
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				continue
			case atom.Nav, atom.Footer:
				if skipChrome {
					continue
				}
			}
			writeSpacedText(b, c, skipChrome)
			if !inlineAtom(c.DataAtom) {
				b.WriteByte(' ')
			}
		}
	}
}

// extractTextWithSpacing returns the page copy below selection without
// navigation and footer chrome
func extractTextWithSpacing(selection *goquery.Selection) string {
	var b strings.Builder
	for _, n := range selection.Nodes {
		writeSpacedText(&b, n, true)
	}
	return normalizeWhitespace(b.String())
}
