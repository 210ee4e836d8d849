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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		resources []string
		want      Platform
	}{
		{
			name: "plain page",
			html: `<html><body><h1>Hello</h1></body></html>`,
			want: PlatformOther,
		},
		{
			name: "clickfunnels by resource",
			html: `<html><body></body></html>`,
			resources: []string{
				"https://assets.clickfunnels.com/assets/lander.js",
			},
			want: PlatformClickFunnels,
		},
		{
			name: "unbounce root",
			html: `<div id="lp-pom-root"><div class="lp-pom-block"></div></div>`,
			want: PlatformUnbounce,
		},
		{
			name: "webflow attributes",
			html: `<html data-wf-page="abc" data-wf-site="def"><body></body></html>`,
			want: PlatformWebflow,
		},
		{
			name: "wordpress content path",
			html: `<link rel="stylesheet" href="/wp-content/themes/x/style.css">`,
			want: PlatformWordPress,
		},
		{
			name: "next.js static chunks",
			html: `<div id="__next"></div><script src="/_next/static/chunks/main.js"></script>`,
			want: PlatformNextJS,
		},
		{
			name: "funnel builder wins over cms",
			html: `<link href="/wp-content/x.css"><div data-cf-page="1"></div>`,
			resources: []string{
				"https://app.clickfunnels.com/x.js",
			},
			want: PlatformClickFunnels,
		},
		{
			name:      "resource needle ignored when html-only",
			html:      `<body></body>`,
			resources: []string{"https://example.com/cf-page"},
			want:      PlatformOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector()
			assert.Equal(t, tt.want, d.Detect(tt.html, tt.resources))
		})
	}
}

func TestGetSignals(t *testing.T) {
	d := NewDetector()
	assert.Equal(t, PlatformWebflow, d.Detect(`<html data-wf-page="1">`, []string{"https://cdn.prod.website-files.com/app.js"}))
	assert.Contains(t, d.GetSignals(), "Found data-wf-page")

	d.Detect("<p>nothing</p>", nil)
	assert.Empty(t, d.GetSignals())
}

func TestGetAllPlatformsCoversSignatures(t *testing.T) {
	ids := make(map[string]bool)
	for _, p := range GetAllPlatforms() {
		ids[p.ID] = true
	}
	for _, sig := range signatures {
		assert.True(t, ids[string(sig.platform)], "missing catalog entry for %s", sig.platform)
	}
}
