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

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	accepted := []struct {
		input      string
		wantURL    string
		wantDomain string
	}{
		{"https://lp.example.com", "https://lp.example.com", "lp.example.com"},
		{"https://lp.example.com/", "https://lp.example.com", "lp.example.com"},
		{"offers.example.com/summer-sale", "https://offers.example.com/summer-sale", "offers.example.com"},
		{"  http://Offers.Example.COM/lp  ", "http://offers.example.com/lp", "offers.example.com"},
		{"https://Offers.Example.com/lp/summer?aff=12#form", "https://offers.example.com/lp/summer?aff=12", "offers.example.com"},
		{"https://example.com/?utm_source=fb", "https://example.com/?utm_source=fb", "example.com"},
		{"https://example.com:443/lp", "https://example.com/lp", "example.com"},
		{"http://example.com:80/lp", "http://example.com/lp", "example.com"},
		{"https://example.com:8443/quiz", "https://example.com:8443/quiz", "example.com:8443"},
		{"localhost", "https://localhost", "localhost"},
		{"http://127.0.0.1:9090/static", "http://127.0.0.1:9090/static", "127.0.0.1:9090"},
		{"http://[::1]:9090/quiz", "http://[::1]:9090/quiz", "[::1]:9090"},
		{"my-funnel.co.uk/step-1", "https://my-funnel.co.uk/step-1", "my-funnel.co.uk"},
	}
	for _, tt := range accepted {
		t.Run(tt.input, func(t *testing.T) {
			gotURL, gotDomain, err := normalizeURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantDomain, gotDomain)
		})
	}

	rejected := []string{
		"",
		"   ",
		"landingpage",
		"get my serum",
		"lp example.com",
		"https://",
		"999.999.999.999",
		"ftp://example.com/lp.zip",
		"javascript://alert(1)",
		"-bad-.example.com",
	}
	for _, input := range rejected {
		_, _, err := normalizeURL(input)
		assert.Error(t, err, "expected %q to be rejected", input)
	}
}

func TestCompareVersions(t *testing.T) {
	assert.True(t, compareVersions("v0.2.0", "v0.1.9"))
	assert.True(t, compareVersions("1.0.0", "v0.9"))
	assert.True(t, compareVersions("v0.10.0", "v0.9.3"))
	assert.False(t, compareVersions("v0.1.0", "v0.1.0"))
	assert.False(t, compareVersions("v0.1.0", "v0.2.0"))
}
