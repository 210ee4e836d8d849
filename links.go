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
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gobwas/glob"
	"golang.org/x/net/publicsuffix"
)

// Link sources recorded on DetectedLink.Source
const (
	SourceHref       = "href"
	SourceOnclick    = "onclick"
	SourceDataAttr   = "data-attribute"
	SourceFormAction = "formaction"
	SourceIframe     = "iframe"
	SourceScript     = "script"
)

var (
	ctaClassPattern = regexp.MustCompile(`(?i)\b(?:btn|button|cta|call-to-action|signup|sign-up|get-started|buy-now|order-now|add-to-cart|checkout|join-now|register)\b|btn[-_]|[-_]btn|cta[-_]|[-_]cta`)
	ctaTextPattern  = regexp.MustCompile(`(?i)^\W*(?:get|start|join|sign\s?up|buy|order|claim|download|try|subscribe|register|book|reserve|apply|continue|unlock|access|grab|shop|enroll|yes\b|i want|send me|show me|see (?:my|your)|reveal|find (?:my|your))`)

	onclickURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:window\.|document\.|top\.|self\.)?location(?:\.href)?\s*=\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`location\.(?:assign|replace)\(\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`window\.open\(\s*['"]([^'"]+)['"]`),
	}
	scriptURLPattern = regexp.MustCompile(`https?://[^\s'"<>\\)]+`)
	assetURLPattern  = regexp.MustCompile(`(?i)\.(?:js|mjs|css|png|jpe?g|gif|webp|svg|ico|woff2?|ttf|otf|mp4|webm|json)(?:\?|$)`)

	dataURLAttributes = []string{"data-href", "data-url", "data-link", "data-redirect", "data-target-url"}
)

// affiliateDomains are networks whose links are affiliate links on any subdomain
var affiliateDomains = []string{
	"clickbank.net", "jvzoo.com", "warriorplus.com", "shareasale.com", "cj.com",
	"anrdoezrs.net", "dpbolvw.net", "jdoqocy.com", "tkqlhce.com", "kqzyfj.com",
	"awin1.com", "impact.com", "impactradius.com", "sjv.io", "partnerize.com",
	"prf.hn", "linksynergy.com", "avantlink.com", "pepperjamnetwork.com", "pjatr.com",
	"digistore24.com", "maxbounty.com", "hasoffers.com", "go2cloud.org", "everflow.io",
	"clickfunnels.com/affiliates", "flexoffers.com", "refersion.com", "rewardful.com",
}

// affiliateHostGlobs catch dedicated affiliate hostnames
var affiliateHostGlobs = compileGlobs(
	"aff.*", "affiliate.*", "affiliates.*", "partners.*", "*.hop.clickbank.net",
	"*.affiliates.*", "refer.*",
)

var shortenerDomains = []string{
	"bit.ly", "tinyurl.com", "t.co", "goo.gl", "ow.ly", "is.gd", "buff.ly",
	"rebrand.ly", "cutt.ly", "shorturl.at", "amzn.to", "rb.gy", "tiny.cc",
	"bl.ink", "lnkd.in", "fb.me", "t.ly", "s.id", "soo.gd", "clk.sh",
}

var affiliateDomainGlobs = compileDomainGlobs(affiliateDomains)
var shortenerDomainGlobs = compileDomainGlobs(shortenerDomains)

var affiliateParams = []string{
	"ref", "aff", "aff_id", "affid", "affiliate", "affiliate_id", "aff_sub",
	"hop", "tag", "partner", "partner_id", "offer_id", "offerid", "a_aid", "tap_a",
}

var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
	"gclid", "fbclid", "msclkid", "ttclid", "twclid", "wbraid", "gbraid", "li_fat_id",
	"clickid", "click_id", "irclickid", "cid", "campaign_id", "adid", "ad_id",
	"sub1", "sub2", "sub3", "sub4", "sub5", "subid", "sub_id", "s1", "s2", "s3",
	"mc_cid", "mc_eid", "_hsenc", "_hsmi",
}

var redirectPathPattern = regexp.MustCompile(`(?i)/(?:go|out|redirect|redir|recommends|visit|click|clk|r|link|track|exit)(?:/|\.php|$|\?)`)
var redirectParamNames = []string{"url", "redirect", "redirect_url", "redirect_uri", "goto", "target", "dest", "destination", "next", "u"}

type domainGlob struct {
	domain string
	glob   glob.Glob
}

func compileDomainGlobs(domains []string) []domainGlob {
	out := make([]domainGlob, 0, len(domains))
	for _, d := range domains {
		host := d
		if i := strings.Index(d, "/"); i >= 0 {
			host = d[:i]
		}
		out = append(out, domainGlob{domain: d, glob: glob.MustCompile("*." + host)})
	}
	return out
}

func compileGlobs(patterns ...string) []glob.Glob {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, glob.MustCompile(p))
	}
	return out
}

// matchDomain returns the table entry whose domain (or a subdomain) matches
func matchDomain(host, path string, table []domainGlob) (string, bool) {
	for _, d := range table {
		domain, prefix := d.domain, ""
		if i := strings.Index(domain, "/"); i >= 0 {
			domain, prefix = domain[:i], domain[i:]
		}
		if host != domain && !d.glob.Match(host) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(path, prefix) {
			continue
		}
		return d.domain, true
	}
	return "", false
}

// isCTAStyled reports whether an element looks like a call-to-action button
func isCTAStyled(s *goquery.Selection) bool {
	if attrLower(s, "role") == "button" {
		return true
	}
	return ctaClassPattern.MatchString(classAndID(s))
}

// linkCandidate is one URL occurrence before classification
type linkCandidate struct {
	sel        *goquery.Selection
	rawURL     string
	absURL     string
	parsed     *url.URL
	anchorText string
	source     string
	position   string
}

// linkPage holds the page-level facts the rules compare against
type linkPage struct {
	host string
	site string
}

// linkVerdict is the outcome of a matching rule
type linkVerdict struct {
	typ        LinkType
	confidence float64
	reason     string
}

// linkRule is one step of the classification cascade
type linkRule struct {
	name     string
	classify func(c *linkCandidate, page *linkPage) (linkVerdict, bool)
}

// linkRules is the ordered cascade. First match wins: CTA intent outranks
// affiliate and tracking noise on the same URL.
var linkRules = []linkRule{
	{"cta", classifyCTA},
	{"affiliate-domain", classifyAffiliateDomain},
	{"affiliate-param", classifyAffiliateParam},
	{"redirect", classifyRedirect},
	{"tracking-param", classifyTrackingParam},
	{"site", classifySite},
}

func classifyCTA(c *linkCandidate, _ *linkPage) (linkVerdict, bool) {
	if c.sel == nil || c.source == SourceScript || c.source == SourceIframe {
		return linkVerdict{}, false
	}
	if isCTAStyled(c.sel) {
		return linkVerdict{LinkCTA, 0.9, "cta-styled element"}, true
	}
	tag := goquery.NodeName(c.sel)
	if (tag == "button" || tag == "input") && c.source != SourceHref {
		return linkVerdict{LinkCTA, 0.9, "button element"}, true
	}
	if c.anchorText != "" && ctaTextPattern.MatchString(c.anchorText) {
		return linkVerdict{LinkCTA, 0.9, "cta text: " + truncate(c.anchorText, 40)}, true
	}
	return linkVerdict{}, false
}

func classifyAffiliateDomain(c *linkCandidate, _ *linkPage) (linkVerdict, bool) {
	if c.parsed == nil {
		return linkVerdict{}, false
	}
	host := strings.ToLower(c.parsed.Hostname())
	if domain, ok := matchDomain(host, c.parsed.Path, affiliateDomainGlobs); ok {
		return linkVerdict{LinkAffiliate, 0.85, "affiliate domain " + domain}, true
	}
	for _, g := range affiliateHostGlobs {
		if g.Match(host) {
			return linkVerdict{LinkAffiliate, 0.85, "affiliate host " + host}, true
		}
	}
	return linkVerdict{}, false
}

func classifyAffiliateParam(c *linkCandidate, _ *linkPage) (linkVerdict, bool) {
	if c.parsed == nil {
		return linkVerdict{}, false
	}
	q := c.parsed.Query()
	for _, p := range affiliateParams {
		if q.Get(p) != "" {
			return linkVerdict{LinkAffiliate, 0.8, "affiliate parameter " + p}, true
		}
	}
	return linkVerdict{}, false
}

func classifyRedirect(c *linkCandidate, page *linkPage) (linkVerdict, bool) {
	if c.parsed == nil {
		return linkVerdict{}, false
	}
	host := strings.ToLower(c.parsed.Hostname())
	if domain, ok := matchDomain(host, c.parsed.Path, shortenerDomainGlobs); ok {
		return linkVerdict{LinkRedirect, 0.75, "shortener domain " + domain}, true
	}
	q := c.parsed.Query()
	for _, p := range redirectParamNames {
		if v := q.Get(p); isHTTPURL(v) {
			return linkVerdict{LinkRedirect, 0.75, "redirect parameter " + p}, true
		}
	}
	if redirectPathPattern.MatchString(c.parsed.Path) {
		return linkVerdict{LinkRedirect, 0.75, "redirect path " + c.parsed.Path}, true
	}
	return linkVerdict{}, false
}

func classifyTrackingParam(c *linkCandidate, _ *linkPage) (linkVerdict, bool) {
	if c.parsed == nil {
		return linkVerdict{}, false
	}
	q := c.parsed.Query()
	for _, p := range trackingParams {
		if _, ok := q[p]; ok {
			return linkVerdict{LinkTracking, 0.7, "tracking parameter " + p}, true
		}
	}
	return linkVerdict{}, false
}

func classifySite(c *linkCandidate, page *linkPage) (linkVerdict, bool) {
	if strings.HasPrefix(c.rawURL, "#") {
		return linkVerdict{LinkNavigation, 0.6, "same-page anchor"}, true
	}
	host := ""
	if c.parsed != nil {
		host = strings.ToLower(c.parsed.Hostname())
	}
	if host == "" || host == page.host || (page.site != "" && registrableDomain(host) == page.site) {
		if isBoilerplatePosition(c.position) {
			return linkVerdict{LinkNavigation, 0.6, "same-site link in " + c.position}, true
		}
		return linkVerdict{LinkInternal, 0.5, "same-site link"}, true
	}
	return linkVerdict{LinkExternal, 0.5, "cross-site link to " + host}, true
}

func classifyLink(c *linkCandidate, page *linkPage) linkVerdict {
	for _, rule := range linkRules {
		if v, ok := rule.classify(c, page); ok {
			return v
		}
	}
	return linkVerdict{LinkExternal, 0.5, "unclassified"}
}

func registrableDomain(host string) string {
	if host == "" {
		return ""
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}

// DetectLinks finds every URL the page can send a visitor to and classifies
// it. Each URL is reported once, at its first occurrence.
func DetectLinks(pd *ParsedDocument) []DetectedLink {
	doc := pd.Document()
	page := &linkPage{host: pd.Host()}
	page.site = registrableDomain(page.host)

	var links []DetectedLink
	seen := make(map[string]bool)

	add := func(sel *goquery.Selection, raw, source string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "#" {
			return
		}
		lower := strings.ToLower(raw)
		if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") ||
			strings.HasPrefix(lower, "tel:") || strings.HasPrefix(lower, "data:") {
			return
		}
		abs := pd.ResolveURL(raw)
		if seen[abs] {
			return
		}

		c := &linkCandidate{sel: sel, rawURL: raw, absURL: abs, source: source}
		if u, err := url.Parse(abs); err == nil {
			c.parsed = u
		}
		if sel != nil {
			c.anchorText = normalizeWhitespace(sel.Text())
			if c.anchorText == "" {
				c.anchorText, _ = sel.Attr("value")
			}
			if c.anchorText == "" {
				c.anchorText, _ = sel.Find("img[alt]").First().Attr("alt")
			}
			c.position, _ = extractLinkPosition(sel)
		}

		v := classifyLink(c, page)
		// Script text is full of CDN and API URLs; keep only the ones that route visitors
		if source == SourceScript && (v.typ == LinkExternal || v.typ == LinkInternal || v.typ == LinkNavigation) {
			return
		}

		seen[abs] = true
		link := DetectedLink{
			ID:              "link-" + strconv.Itoa(len(links)+1),
			Type:            v.typ,
			OriginalURL:     abs,
			AnchorText:      truncate(c.anchorText, 120),
			Confidence:      v.confidence,
			DetectionReason: v.reason,
			Source:          source,
			Position:        c.position,
		}
		if sel != nil {
			link.Selector = buildSelector(sel)
			link.Context = extractLinkContext(sel)
		}
		links = append(links, link)
	}

	doc.Find("a[href], area[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(s, href, SourceHref)
	})
	doc.Find("[onclick]").Each(func(_ int, s *goquery.Selection) {
		onclick, _ := s.Attr("onclick")
		for _, p := range onclickURLPatterns {
			if m := p.FindStringSubmatch(onclick); m != nil {
				add(s, m[1], SourceOnclick)
			}
		}
	})
	for _, attr := range dataURLAttributes {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			v, _ := s.Attr(attr)
			add(s, v, SourceDataAttr)
		})
	}
	doc.Find("[formaction]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("formaction")
		add(s, v, SourceFormAction)
	})
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("src")
		add(s, v, SourceIframe)
	})
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		for _, u := range scriptURLPattern.FindAllString(s.Text(), -1) {
			u = strings.TrimRight(u, ".,;")
			if assetURLPattern.MatchString(u) {
				continue
			}
			add(nil, u, SourceScript)
		}
	})

	return links
}
