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

const (
	maxPersuasionTextRunes = 300
	persuasionSeenRunes    = 50
)

// persuasionRule is one technique's text and class patterns
type persuasionRule struct {
	typ   PersuasionType
	text  *regexp.Regexp
	class *regexp.Regexp
}

var persuasionRules = []persuasionRule{
	{
		PersuasionUrgency,
		regexp.MustCompile(`(?i)\b(?:hurry|act now|today only|ends (?:soon|today|tonight|at midnight)|limited[- ]time|last chance|don'?t wait|before it'?s too late|deadline|right now|order now|immediately)\b`),
		regexp.MustCompile(`urgen|deadline|hurry`),
	},
	{
		PersuasionScarcity,
		regexp.MustCompile(`(?i)\bonly \d+ (?:left|remaining|spots?|seats?|units?|copies)\b|\blimited (?:stock|supply|spots|seats|availability|quantit(?:y|ies))\b|while supplies last|almost (?:gone|sold out)|selling fast|\bfew (?:left|spots|remaining)\b|\bsold out\b`),
		regexp.MustCompile(`scarcity|low-stock|stock-(?:left|count)|limited`),
	},
	{
		PersuasionSocialProof,
		regexp.MustCompile(`(?i)\d[\d,.]*\s*(?:k|\+)?\s*(?:happy |satisfied )?(?:customers|users|members|people|clients|students|reviews|downloads|subscribers|buyers|sold)\b|\brated \d|\b(?:\d(?:\.\d)?|five)[- ]stars?\b|\btrusted by\b|\bjoin(?:ed)? (?:over |more than )?\d`),
		regexp.MustCompile(`testimonial|review|rating|stars?\b|social-?proof`),
	},
	{
		PersuasionAuthority,
		regexp.MustCompile(`(?i)as (?:seen|featured) (?:on|in)|\bexperts?\b|\bdoctors?\b|\bdr\.|\bcertified\b|\baward(?:-winning|ed)?\b|clinically|scientifically|\bendorsed\b|recommended by|\blicensed\b|\baccredited\b|years of experience`),
		regexp.MustCompile(`authority|as-seen|featured|award|credential|press`),
	},
	{
		PersuasionTrustBadge,
		regexp.MustCompile(`(?i)secure (?:checkout|payment|order)|\bssl\b|\bencrypted\b|\bverified\b|norton|mcafee|\bbbb\b|trustpilot|privacy (?:protected|guaranteed)|100% (?:safe|secure)`),
		regexp.MustCompile(`trust|badge|secure|seal|\bssl\b|verified`),
	},
	{
		PersuasionGuarantee,
		regexp.MustCompile(`(?i)\bguarantee[ds]?\b|money[- ]back|risk[- ]free|no questions asked|full refund|\d+[- ]day (?:refund|return|trial|guarantee)`),
		regexp.MustCompile(`guarantee|refund|risk-?free`),
	},
	{
		PersuasionFOMO,
		regexp.MustCompile(`(?i)don'?t miss|missing out|\bothers are\b|people (?:are )?(?:viewing|watching|buying|looking)|just (?:bought|purchased|signed up|joined)|in (?:high )?demand|\btrending\b|everyone is`),
		regexp.MustCompile(`fomo|recent-(?:sale|purchase|signup)|live-(?:viewers|counter|visitors)|sales-pop`),
	},
	{
		PersuasionCountdown,
		regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?::\d{2})?\b|(?:\d+\s*(?:days?|hrs?|hours?|mins?|minutes?|secs?|seconds?)\W*){2,}|\bcountdown\b|offer ends in|expires in`),
		regexp.MustCompile(`countdown|count-down|timer|clock`),
	},
	{
		PersuasionDiscount,
		regexp.MustCompile(`(?i)\d{1,3}%\s*off|\bsave (?:\$|€|£)?\d+|\bdiscount|\bsale\b|\bwas (?:\$|€|£)\d+|\breduced\b|half price|\bcoupon|promo code|special price|lowest price`),
		regexp.MustCompile(`discount|\bsale\b|price-old|old-price|was-price|strike|coupon|promo`),
	},
	{
		PersuasionFreeOffer,
		regexp.MustCompile(`(?i)\bfree\b|no cost|complimentary|\bbonus(?:es)?\b|\bgift\b|(?:\$|€|£)0\b|at no charge`),
		regexp.MustCompile(`\bfree\b|free-|bonus|gift`),
	},
}

var (
	countdownElementPattern = regexp.MustCompile(`countdown|count-down|timer|clock|expir`)
	trustBadgeImagePattern  = regexp.MustCompile(`(?i)norton|mcafee|trustpilot|\bbbb\b|better-?business|\bssl\b|secure|verisign|truste|geotrust|comodo|digicert|seal|badge|guarantee|money-?back|paypal|visa|mastercard|stripe|trusted`)
	percentagePattern       = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
	largeNumberPattern      = regexp.MustCompile(`\d{1,3}(?:,\d{3})+|\d{4,}`)
	yearPattern             = regexp.MustCompile(`^(?:19|20)\d{2}$`)
)

var emphasisTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"strong": true, "b": true, "em": true, "mark": true,
}

// persuasionScanner collects elements, suppressing near-duplicates
type persuasionScanner struct {
	elements []PersuasionElement
	seen     map[string]bool
}

func (p *persuasionScanner) add(s *goquery.Selection, typ PersuasionType, content string, strength Strength, matchedBy string) {
	key := string(typ) + "|" + truncate(strings.ToLower(content), persuasionSeenRunes)
	if p.seen[key] {
		return
	}
	p.seen[key] = true
	p.elements = append(p.elements, PersuasionElement{
		ID:        "persuasion-" + strconv.Itoa(len(p.elements)+1),
		Type:      typ,
		Selector:  buildSelector(s),
		Content:   content,
		Strength:  strength,
		MatchedBy: matchedBy,
	})
}

// hasStrongSignal reports percentages and numbers of 1000 or more
func hasStrongSignal(text string) bool {
	if percentagePattern.MatchString(text) {
		return true
	}
	for _, m := range largeNumberPattern.FindAllString(text, -1) {
		if yearPattern.MatchString(m) {
			continue
		}
		if n, err := strconv.Atoi(strings.ReplaceAll(m, ",", "")); err == nil && n >= 1000 {
			return true
		}
	}
	return false
}

// elementText is the text tested for an element: its own text nodes, or
// the full text when all its children are inline.
func elementText(s *goquery.Selection) string {
	if elementChildCount(s) > 0 && hasOnlyInlineContent(s) {
		return normalizeWhitespace(s.Text())
	}
	return directText(s)
}

// DetectPersuasion finds persuasion techniques in page copy and styling
func DetectPersuasion(pd *ParsedDocument) []PersuasionElement {
	p := &persuasionScanner{seen: make(map[string]bool)}
	doc := pd.Document()

	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		if tag == "script" || tag == "style" || tag == "noscript" || tag == "template" ||
			hasAncestor(s, "script", "style", "noscript", "template") {
			return
		}

		class := classAndID(s)
		text := ""
		// Inline children were already read as part of their parent's text
		if !(inlineElement(tag) && hasOnlyInlineContent(s.Parent())) {
			text = elementText(s)
		}
		if utf8.RuneCountInString(text) > maxPersuasionTextRunes {
			text = ""
		}
		if text == "" && class == "" {
			return
		}

		for _, rule := range persuasionRules {
			if class != "" && rule.class.MatchString(class) {
				content := text
				if content == "" {
					content = normalizeWhitespace(s.Text())
				}
				if content == "" || utf8.RuneCountInString(content) > maxPersuasionTextRunes {
					content = class
				}
				strength := StrengthMedium
				if hasStrongSignal(content) {
					strength = StrengthStrong
				}
				p.add(s, rule.typ, content, strength, "class")
				continue
			}
			if text != "" && rule.text.MatchString(text) {
				strength := StrengthWeak
				if emphasisTags[tag] || isCTAStyled(s) {
					strength = StrengthMedium
				}
				if hasStrongSignal(text) {
					strength = StrengthStrong
				}
				p.add(s, rule.typ, text, strength, "text")
			}
		}
	})

	// Countdown timers are usually empty shells filled by script
	doc.Find("body [class], body [id]").Each(func(_ int, s *goquery.Selection) {
		if hasAncestor(s, "script", "noscript", "template") {
			return
		}
		class := classAndID(s)
		if !countdownElementPattern.MatchString(class) {
			return
		}
		content := normalizeWhitespace(s.Text())
		if content == "" || utf8.RuneCountInString(content) > maxPersuasionTextRunes {
			content = class
		}
		p.add(s, PersuasionCountdown, content, StrengthStrong, "countdown-element")
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		hints := alt + " " + classAndID(s)
		if !strings.HasPrefix(src, "data:") {
			hints += " " + src
		}
		if !trustBadgeImagePattern.MatchString(hints) {
			return
		}
		content := normalizeWhitespace(alt)
		if content == "" {
			content = src
			if strings.HasPrefix(src, "data:") {
				content = classAndID(s)
			}
		}
		p.add(s, PersuasionTrustBadge, content, StrengthMedium, "trust-badge-image")
	})

	return p.elements
}
