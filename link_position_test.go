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
	"testing"
)

func TestLinkPositionClassification(t *testing.T) {
	tests := []struct {
		name             string
		html             string
		expectedPosition string
	}{
		{
			name:             "link in main content",
			html:             `<main><article><p>Check out <a href="/page1">this page</a></p></article></main>`,
			expectedPosition: PositionContent,
		},
		{
			name:             "link in navigation",
			html:             `<nav><ul><li><a href="/home">Home</a></li></ul></nav>`,
			expectedPosition: PositionNavigation,
		},
		{
			name:             "link in header",
			html:             `<header><a href="/logo">Logo</a></header>`,
			expectedPosition: PositionHeader,
		},
		{
			name:             "link in footer",
			html:             `<footer><a href="/privacy">Privacy Policy</a></footer>`,
			expectedPosition: PositionFooter,
		},
		{
			name:             "link in sidebar",
			html:             `<aside><a href="/related">Related</a></aside>`,
			expectedPosition: PositionSidebar,
		},
		{
			name:             "link with role=navigation",
			html:             `<div role="navigation"><a href="/menu">Menu</a></div>`,
			expectedPosition: PositionNavigation,
		},
		{
			name:             "link in menu class",
			html:             `<div class="menu"><a href="/products">Products</a></div>`,
			expectedPosition: PositionNavigation,
		},
		{
			name:             "link in modal",
			html:             `<div class="exit-modal"><a href="/offer">Wait!</a></div>`,
			expectedPosition: PositionModal,
		},
		{
			name:             "link in sticky bar",
			html:             `<div class="sticky-bar"><a href="/buy">Buy now</a></div>`,
			expectedPosition: PositionStickyBar,
		},
		{
			name:             "link in hero",
			html:             `<div class="hero-section"><a href="/start">Start</a></div>`,
			expectedPosition: PositionHero,
		},
		{
			name:             "link in form",
			html:             `<form><a href="/terms">terms</a></form>`,
			expectedPosition: PositionForm,
		},
		{
			name:             "link with unknown position",
			html:             `<div><a href="/unknown">Unknown</a></div>`,
			expectedPosition: PositionUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := parseTestDoc(t, "<html><body>"+tt.html+"</body></html>")
			link := pd.Document().Find("a[href]").First()
			if link.Length() == 0 {
				t.Fatal("No link found in HTML")
			}

			position, domPath := extractLinkPosition(link)
			if position != tt.expectedPosition {
				t.Errorf("Expected position %q, got %q (DOM path: %s)", tt.expectedPosition, position, domPath)
			}
			if domPath == "" {
				t.Error("DOMPath should not be empty")
			}
		})
	}
}

func TestBuildDOMPath(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><main id="offer" class="Pricing wide"><p><a href="/x">x</a></p></main></body></html>`)
	got := buildDOMPath(pd.Document().Find("a").First())
	want := "body > main#offer.pricing > p > a"
	if got != want {
		t.Errorf("buildDOMPath() = %q, want %q", got, want)
	}
}

func TestIsBoilerplatePosition(t *testing.T) {
	tests := []struct {
		position string
		expected bool
	}{
		{PositionContent, false},
		{PositionNavigation, true},
		{PositionHeader, true},
		{PositionFooter, true},
		{PositionSidebar, true},
		{PositionHero, false},
		{PositionModal, false},
		{PositionUnknown, false},
	}

	for _, tt := range tests {
		if got := isBoilerplatePosition(tt.position); got != tt.expected {
			t.Errorf("isBoilerplatePosition(%q) = %v, want %v", tt.position, got, tt.expected)
		}
	}
}
