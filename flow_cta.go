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
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	jsRedirectPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:^|[^\w.])(?:window\.|document\.|top\.|self\.)?location\b(?:\.href)?\s*=\s*["'` + "`" + `]([^"'` + "`" + `]+)["'` + "`" + `]`),
		regexp.MustCompile(`(?:^|[^\w.])(?:window\.|document\.|top\.|self\.)?location\.(?:replace|assign)\(\s*["'` + "`" + `]([^"'` + "`" + `]+)["'` + "`" + `]`),
	}
	// redirectTargetPattern is the shape of a navigable value: a URL, a
	// path, a query, or a file name with an extension
	redirectTargetPattern = regexp.MustCompile(`^(?:[a-zA-Z][\w+.-]*:|//|\.{0,2}/|\?|[\w.-]+\.[a-zA-Z0-9]{2,5}(?:[/?#]|$))\S*$`)

	trackingHrefPattern = regexp.MustCompile(`(?i)click|track|\baff|affiliate|[?&]ref=|offer|/go/|\bgo\.|redirect|clickid|subid|utm_|\bhop\b|/out/|cpa|lead`)
	continueTextPattern = regexp.MustCompile(`(?i)\b(?:continue|next|submit|start|sign ?up|join)\b`)
)

// ctaURLContext is the input of the primary target URL cascade
type ctaURLContext struct {
	pd      *ParsedDocument
	script  string
	anchors *goquery.Selection
}

// ctaURLRule is one step of the cascade; it returns "" when it finds nothing
type ctaURLRule struct {
	name string
	find func(c *ctaURLContext) string
}

// ctaURLRules are tried in order: an explicit script redirect beats inferred
// button semantics, which beat any link at all.
var ctaURLRules = []ctaURLRule{
	{"js-redirect", findJSRedirect},
	{"tracking-anchor", findTrackingAnchor},
	{"continue-anchor", findContinueAnchor},
	{"any-anchor", findAnyAnchor},
	{"form-action", findFormAction},
}

func usableHref(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(href), "javascript:")
}

func findJSRedirect(c *ctaURLContext) string {
	for _, p := range jsRedirectPatterns {
		for _, m := range p.FindAllStringSubmatch(c.script, -1) {
			if usableHref(m[1]) && redirectTargetPattern.MatchString(m[1]) && !strings.Contains(m[1], "${") {
				return c.pd.ResolveURL(m[1])
			}
		}
	}
	return ""
}

func (c *ctaURLContext) firstAnchor(match func(s *goquery.Selection, href string) bool) string {
	found := ""
	c.anchors.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if usableHref(href) && match(s, href) {
			found = c.pd.ResolveURL(strings.TrimSpace(href))
			return false
		}
		return true
	})
	return found
}

func findTrackingAnchor(c *ctaURLContext) string {
	return c.firstAnchor(func(_ *goquery.Selection, href string) bool {
		return trackingHrefPattern.MatchString(href)
	})
}

func findContinueAnchor(c *ctaURLContext) string {
	return c.firstAnchor(func(s *goquery.Selection, _ string) bool {
		return continueTextPattern.MatchString(normalizeWhitespace(s.Text()))
	})
}

func findAnyAnchor(c *ctaURLContext) string {
	return c.firstAnchor(func(*goquery.Selection, string) bool { return true })
}

func findFormAction(c *ctaURLContext) string {
	action, ok := c.pd.Document().Find("form[action]").First().Attr("action")
	if !ok || strings.TrimSpace(action) == "" {
		return ""
	}
	return c.pd.ResolveURL(strings.TrimSpace(action))
}

// resolvePrimaryTargetURL runs the CTA URL cascade; "" when nothing is found
func resolvePrimaryTargetURL(pd *ParsedDocument, script string) string {
	c := &ctaURLContext{pd: pd, script: script, anchors: pd.Document().Find("a[href]")}
	for _, rule := range ctaURLRules {
		if u := rule.find(c); u != "" {
			return u
		}
	}
	return ""
}

// ctaOccurrences counts every CTA or submit control on the page, repeats
// included, and returns their distinct texts in page order.
func ctaOccurrences(pd *ParsedDocument) (int, []string) {
	count := 0
	texts := []string{}
	seen := make(map[string]bool)
	pd.Document().Find("button, input[type=submit], input[type=button], a, [role=button]").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "a" && !isCTAStyled(s) {
			return
		}
		text := buttonText(s)
		if text == "" {
			return
		}
		switch classifyButton(s, text) {
		case ButtonCTA, ButtonSubmit:
		default:
			return
		}
		count++
		if key := strings.ToLower(text); !seen[key] {
			seen[key] = true
			texts = append(texts, text)
		}
	})
	return count, texts
}

// ctaFrequency grades repetition: more than three CTAs with more than two
// distinct texts is progressive, any repeat is repeated.
func ctaFrequency(count, distinct int) CTAFrequency {
	switch {
	case count > 3 && distinct > 2:
		return CTAProgressive
	case count > 1:
		return CTARepeated
	default:
		return CTASingle
	}
}
