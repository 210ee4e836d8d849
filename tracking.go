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

	"github.com/antchfx/htmlquery"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"
)

const (
	maxTrackingCodeRunes = 200
	trackingDedupRunes   = 100
)

// trackingSignature matches one vendor's loader URL or snippet
type trackingSignature struct {
	typ     TrackingType
	vendor  string
	pattern *regexp.Regexp
}

// specificSignatures are checked first; an element matching one of them is
// never re-reported under a generic pattern.
var specificSignatures = []trackingSignature{
	{TrackingFacebookPixel, "Facebook", regexp.MustCompile(`connect\.facebook\.net/[^"']*fbevents|fbq\(|facebook\.com/tr[/?]`)},
	{TrackingGoogleTagManager, "Google Tag Manager", regexp.MustCompile(`googletagmanager\.com/(?:gtm\.js|ns\.html)|\bGTM-[A-Z0-9]{4,}\b`)},
	{TrackingGoogleAnalytics, "Google Analytics", regexp.MustCompile(`google-analytics\.com|googletagmanager\.com/gtag/js|gtag\(\s*['"](?:config|js|event)|\bga\(\s*['"]create|\bUA-\d{4,}-\d+\b`)},
	{TrackingTikTokPixel, "TikTok", regexp.MustCompile(`analytics\.tiktok\.com|ttq\.(?:load|page|track)\(`)},
}

// customSignatures cover the analytics and ad SaaS vendors reported as "custom"
var customSignatures = []trackingSignature{
	{TrackingCustom, "Hotjar", regexp.MustCompile(`static\.hotjar\.com|_hjSettings|\bhjid\b`)},
	{TrackingCustom, "Microsoft Clarity", regexp.MustCompile(`clarity\.ms/tag|\bclarity\(\s*['"]`)},
	{TrackingCustom, "Mixpanel", regexp.MustCompile(`cdn\.mxpnl\.com|mixpanel\.init\(`)},
	{TrackingCustom, "Segment", regexp.MustCompile(`cdn\.segment\.com|analytics\.load\(`)},
	{TrackingCustom, "Heap", regexp.MustCompile(`heapanalytics\.com|heap\.load\(`)},
	{TrackingCustom, "Amplitude", regexp.MustCompile(`cdn\.amplitude\.com|amplitude\.getInstance\(|amplitude\.init\(`)},
	{TrackingCustom, "Intercom", regexp.MustCompile(`widget\.intercom\.io|intercomSettings`)},
	{TrackingCustom, "HubSpot", regexp.MustCompile(`js\.hs-scripts\.com|js\.hs-analytics\.net|\b_hsq\b`)},
	{TrackingCustom, "LinkedIn Insight", regexp.MustCompile(`snap\.licdn\.com|_linkedin_partner_id|px\.ads\.linkedin\.com`)},
	{TrackingCustom, "X (Twitter)", regexp.MustCompile(`static\.ads-twitter\.com|\btwq\(|analytics\.twitter\.com`)},
	{TrackingCustom, "Pinterest", regexp.MustCompile(`s\.pinimg\.com/ct|pintrk\(|ct\.pinterest\.com`)},
	{TrackingCustom, "Snapchat", regexp.MustCompile(`sc-static\.net/scevent|snaptr\(|tr\.snapchat\.com`)},
	{TrackingCustom, "Bing UET", regexp.MustCompile(`bat\.bing\.com|\buetq\b`)},
	{TrackingCustom, "Reddit", regexp.MustCompile(`redditstatic\.com/ads|rdt\(\s*['"]init|alb\.reddit\.com`)},
	{TrackingCustom, "Quora", regexp.MustCompile(`a\.quora\.com/qevents|qp\(\s*['"]init`)},
	{TrackingCustom, "Taboola", regexp.MustCompile(`cdn\.taboola\.com|_tfa\.push|trc\.taboola\.com`)},
	{TrackingCustom, "Outbrain", regexp.MustCompile(`amplify\.outbrain\.com|\bobApi\b|tr\.outbrain\.com`)},
	{TrackingCustom, "Yandex Metrica", regexp.MustCompile(`mc\.yandex\.ru|\bym\(\s*\d+`)},
}

// genericTrackingPattern flags unknown beacons and conversion scripts
var genericTrackingPattern = regexp.MustCompile(`(?i)\b(?:pixel|tracking|tracker|beacon|conversion|postback|analytics)\b|/track(?:ing)?[/?.]|[?&](?:clickid|click_id|subid)=`)

// verificationMetas maps <meta name> values to the vendor that issued them
var verificationMetas = map[string]trackingSignature{
	"facebook-domain-verification": {TrackingFacebookPixel, "Facebook", nil},
	"google-site-verification":     {TrackingOther, "Google Search Console", nil},
	"p:domain_verify":              {TrackingCustom, "Pinterest", nil},
	"msvalidate.01":                {TrackingCustom, "Bing UET", nil},
	"yandex-verification":          {TrackingCustom, "Yandex Metrica", nil},
	"tiktok-domain-verification":   {TrackingTikTokPixel, "TikTok", nil},
	"ahrefs-site-verification":     {TrackingOther, "Ahrefs", nil},
}

// trackingScanner accumulates codes and drops duplicates
type trackingScanner struct {
	codes []TrackingCode
	seen  map[uint64]bool
}

func (t *trackingScanner) add(n *html.Node, sig trackingSignature, code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	key := xxhash.Sum64String(string(sig.typ) + truncate(code, trackingDedupRunes))
	if t.seen[key] {
		return
	}
	t.seen[key] = true

	tc := TrackingCode{
		ID:     "tracking-" + strconv.Itoa(len(t.codes)+1),
		Type:   sig.typ,
		Vendor: sig.vendor,
		Code:   truncate(code, maxTrackingCodeRunes),
	}
	if n != nil {
		tc.Selector = selectorForNode(n)
	}
	switch sig.typ {
	case TrackingFacebookPixel, TrackingGoogleAnalytics, TrackingGoogleTagManager, TrackingTikTokPixel:
		// Account IDs get swapped for the new owner's
		tc.ShouldReplace = true
	default:
		tc.ShouldRemove = true
	}
	t.codes = append(t.codes, tc)
}

// matchTracking returns the first signature matching text. Specific vendors
// beat custom SaaS vendors, which beat the generic pattern.
func matchTracking(text string) (trackingSignature, bool) {
	for _, sig := range specificSignatures {
		if sig.pattern.MatchString(text) {
			return sig, true
		}
	}
	for _, sig := range customSignatures {
		if sig.pattern.MatchString(text) {
			return sig, true
		}
	}
	if genericTrackingPattern.MatchString(text) {
		return trackingSignature{typ: TrackingOther, vendor: "unknown"}, true
	}
	return trackingSignature{}, false
}

// DetectTrackingCodes scans scripts, noscript blocks, pixel images and
// verification meta tags. Nothing is executed; detection is textual.
func DetectTrackingCodes(pd *ParsedDocument) []TrackingCode {
	root := pd.Root()
	t := &trackingScanner{seen: make(map[uint64]bool)}

	for _, n := range htmlquery.Find(root, "//script") {
		code := htmlquery.SelectAttr(n, "src")
		if code == "" {
			code = htmlquery.InnerText(n)
		}
		// Inlined scripts keep their origin, which is usually the better signal
		if origin := htmlquery.SelectAttr(n, "data-inlined-from"); origin != "" {
			if sig, ok := matchTracking(origin); ok {
				t.add(n, sig, origin)
				continue
			}
		}
		if sig, ok := matchTracking(code); ok {
			t.add(n, sig, code)
		}
	}

	for _, n := range htmlquery.Find(root, "//noscript") {
		code := htmlquery.InnerText(n)
		if sig, ok := matchTracking(code); ok {
			t.add(n, sig, code)
		}
	}

	pixels := htmlquery.Find(root, `//img[(@width="1" and @height="1") or (@width="0" and @height="0") or contains(@src, "pixel") or contains(@src, "/tr?") or contains(@src, "track") or contains(@src, "beacon")]`)
	for _, n := range pixels {
		src := htmlquery.SelectAttr(n, "src")
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		if sig, ok := matchTracking(src); ok {
			t.add(n, sig, src)
		} else {
			t.add(n, trackingSignature{typ: TrackingOther, vendor: "unknown"}, src)
		}
	}

	for _, n := range htmlquery.Find(root, "//meta[@name]") {
		name := strings.ToLower(htmlquery.SelectAttr(n, "name"))
		sig, ok := verificationMetas[name]
		if !ok {
			continue
		}
		t.add(n, sig, htmlquery.OutputHTML(n, true))
	}

	return t.codes
}
