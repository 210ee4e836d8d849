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

package platform

import (
	"strings"
)

// Platform is the landing-page builder or framework a page was made with
type Platform string

const (
	PlatformOther        Platform = "other"
	PlatformClickFunnels Platform = "clickfunnels"
	PlatformLeadpages    Platform = "leadpages"
	PlatformUnbounce     Platform = "unbounce"
	PlatformInstapage    Platform = "instapage"
	PlatformSystemeIO    Platform = "systeme-io"
	PlatformGoHighLevel  Platform = "gohighlevel"
	PlatformKajabi       Platform = "kajabi"
	PlatformCarrd        Platform = "carrd"
	PlatformWebflow      Platform = "webflow"
	PlatformWordPress    Platform = "wordpress"
	PlatformShopify      Platform = "shopify"
	PlatformWix          Platform = "wix"
	PlatformNextJS       Platform = "nextjs"
	PlatformReact        Platform = "react"
)

// signal is a lower-case substring worth some points when found in the HTML
// or in the requested resource URLs
type signal struct {
	needle string
	weight int
	inURLs bool
}

// signature scores one platform; threshold points are needed to declare it
type signature struct {
	platform  Platform
	threshold int
	signals   []signal
}

// signatures are checked in order. Funnel builders come before the generic
// CMSs and JS frameworks they are often hosted on.
var signatures = []signature{
	{PlatformClickFunnels, 3, []signal{
		{"clickfunnels.com", 3, true},
		{"cf-page", 1, false},
		{"data-cf-", 2, false},
		{"cfimg.com", 2, true},
	}},
	{PlatformLeadpages, 3, []signal{
		{"leadpages.net", 3, true},
		{"lp-pom-", 1, false},
		{"leadpages", 2, false},
	}},
	{PlatformUnbounce, 3, []signal{
		{"unbounce.com", 3, true},
		{"ubembed.com", 3, true},
		{"lp-pom-root", 3, false},
		{"ub-emb", 1, false},
	}},
	{PlatformInstapage, 3, []signal{
		{"instapage", 3, true},
		{"pagedata.instapage", 3, false},
		{"ipage-", 1, false},
	}},
	{PlatformSystemeIO, 3, []signal{
		{"systeme.io", 3, true},
		{"d1yei2z3i6k35z.cloudfront.net", 3, true},
	}},
	{PlatformGoHighLevel, 3, []signal{
		{"msgsndr.com", 3, true},
		{"leadconnectorhq.com", 3, true},
		{"highlevel", 2, false},
		{"hl_main_", 2, false},
	}},
	{PlatformKajabi, 3, []signal{
		{"kajabi-cdn.com", 3, true},
		{"kajabi", 2, false},
	}},
	{PlatformCarrd, 3, []signal{
		{"carrd.co", 3, true},
		{"id=\"wrapper\"", 1, false},
		{"carrd", 2, false},
	}},
	{PlatformWebflow, 3, []signal{
		{"assets.website-files.com", 3, true},
		{"cdn.prod.website-files.com", 3, true},
		{"data-wf-page", 3, false},
		{"data-wf-site", 2, false},
		{"webflow.js", 2, true},
	}},
	{PlatformShopify, 3, []signal{
		{"cdn.shopify.com", 3, true},
		{"shopify.theme", 2, false},
		{"myshopify.com", 2, true},
	}},
	{PlatformWix, 3, []signal{
		{"static.wixstatic.com", 3, true},
		{"static.parastorage.com", 3, true},
		{"wix.com", 1, true},
	}},
	{PlatformWordPress, 3, []signal{
		{"/wp-content/", 3, true},
		{"/wp-includes/", 2, true},
		{"content=\"wordpress", 3, false},
		{"/wp-json/", 1, true},
	}},
	{PlatformNextJS, 3, []signal{
		{"/_next/static/", 3, true},
		{"id=\"__next\"", 2, false},
		{"__next_data__", 2, false},
	}},
	{PlatformReact, 2, []signal{
		{"data-reactroot", 2, false},
		{"react-dom", 2, true},
		{"id=\"root\"></div>", 1, false},
	}},
}

// Detector scores the known platform signatures
type Detector struct {
	signals []string
}

// NewDetector creates a new platform detector
func NewDetector() *Detector {
	return &Detector{signals: []string{}}
}

// Detect returns the first platform whose signature reaches its threshold.
// resourceURLs are the sub-resources seen while loading the page.
func (d *Detector) Detect(html string, resourceURLs []string) Platform {
	htmlLower := strings.ToLower(html)
	urls := strings.ToLower(strings.Join(resourceURLs, " "))

	d.signals = []string{}
	for _, sig := range signatures {
		score := 0
		var found []string
		for _, s := range sig.signals {
			if strings.Contains(htmlLower, s.needle) || (s.inURLs && strings.Contains(urls, s.needle)) {
				score += s.weight
				found = append(found, "Found "+s.needle)
			}
		}
		if score >= sig.threshold {
			d.signals = found
			return sig.platform
		}
	}
	return PlatformOther
}

// GetSignals returns the detection signals of the last Detect call
func (d *Detector) GetSignals() []string {
	return d.signals
}
