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
	"errors"
	"testing"
)

func TestBaseTag(t *testing.T) {
	pd := parseTestDoc(t, `<html><head><base href="http://xy.com/"></head><body><a href="z">x</a></body></html>`)
	if got := pd.ResolveURL("z"); got != "http://xy.com/z" {
		t.Errorf("Invalid <base /> tag handling: expected http://xy.com/z, got %s", got)
	}
	if pd.Host() != "xy.com" {
		t.Errorf("Host should follow the base tag, got %q", pd.Host())
	}
}

func TestBaseTagRelative(t *testing.T) {
	pd := parseTestDoc(t, `<html><head><base href="/foobar/"></head><body><a href="z">x</a></body></html>`)
	expected := testBaseURL + "/foobar/z"
	if got := pd.ResolveURL("z"); got != expected {
		t.Errorf("Invalid <base /> tag handling: expected %q, got %q", expected, got)
	}
}

func TestResolveRef(t *testing.T) {
	base := testBaseURL + "/lp/"
	tests := []struct {
		name string
		ref  string
		want string
	}{
		// see step 3 of https://url.spec.whatwg.org/#concept-basic-url-parser
		{"tabs and newlines", "/foo\tbar/x\ny", testBaseURL + "/foobar/xy"},
		{"lone percent", "/100%", testBaseURL + "/100%25"},
		{"relative", "offer.html", testBaseURL + "/lp/offer.html"},
		{"protocol relative", "//cdn.test/a.js", "https://cdn.test/a.js"},
		{"fragment", "#pricing", "#pricing"},
		{"mailto", "mailto:hi@lp.test", "mailto:hi@lp.test"},
		{"data", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"empty", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRef(base, tt.ref); got != tt.want {
				t.Errorf("resolveRef(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}

	if got := resolveRef("", "/x"); got != "/x" {
		t.Errorf("no base should return the reference, got %q", got)
	}
}

func TestNewParsedDocumentMetadata(t *testing.T) {
	pd := parseTestDoc(t, `<html><head><title>  Big
  Sale </title><meta property="og:description" content="From OG"></head><body></body></html>`)
	if pd.Title != "Big Sale" {
		t.Errorf("title = %q", pd.Title)
	}
	if pd.Description != "From OG" {
		t.Errorf("og:description fallback = %q", pd.Description)
	}
	if !pd.FetchedAt.Equal(testTime) {
		t.Errorf("FetchedAt = %v", pd.FetchedAt)
	}

	if _, err := NewParsedDocument(" \n ", "", testTime); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><p class="x">keep</p></body></html>`)
	clone := pd.Clone()
	clone.Find("p").Remove()

	if pd.Document().Find("p.x").Length() != 1 {
		t.Error("mutating the clone changed the shared document")
	}
}
