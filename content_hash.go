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
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
)

// FingerprintConfig controls how a document is normalized before hashing
type FingerprintConfig struct {
	// ExcludeTags are removed before hashing (e.g. "noscript")
	ExcludeTags []string
	// StripTimestamps replaces absolute and relative timestamps
	StripTimestamps bool
	// StripComments removes HTML comments
	StripComments bool
	// StripSessionIDs removes session, request and CSRF tokens
	StripSessionIDs bool
	// StripVersionParams removes cache-busting query parameters
	StripVersionParams bool
	// CollapseWhitespace collapses whitespace runs into a single space
	CollapseWhitespace bool
}

// DefaultFingerprintConfig returns the normalization used for analysis IDs
func DefaultFingerprintConfig() *FingerprintConfig {
	return &FingerprintConfig{
		StripTimestamps:    true,
		StripComments:      true,
		StripSessionIDs:    true,
		StripVersionParams: true,
		CollapseWhitespace: true,
	}
}

// Regex patterns for stripping dynamic content
var (
	// Timestamp patterns (ISO8601, RFC3339, common formats)
	timestampPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}(?::\d{2})? (?:AM|PM)`),
		// countdown deadlines rendered server-side as epoch milliseconds
		regexp.MustCompile(`(?i)(?:deadline|endtime|end_time|expires?)["']?\s*[:=]\s*["']?\d{10,13}`),
	}

	// Relative time patterns ("3 minutes ago", "just now")
	relativeTimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+\s+(?:second|minute|hour|day|week|month|year)s?\s+ago`),
		regexp.MustCompile(`(?:just\s+now|moments?\s+ago)`),
	}

	// Session/Request ID patterns
	sessionIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:session|request|trace)[-_]?id[:=]\s*["']?[a-f0-9-]{8,}["']?`),
		regexp.MustCompile(`(?i)csrf[-_]?token[:=]\s*["']?[a-zA-Z0-9+/=]{16,}["']?`),
		regexp.MustCompile(`(?i)_token["']?\s*[:=]\s*["']?[a-zA-Z0-9+/=]{16,}["']?`),
		regexp.MustCompile(`(?i)(?:nonce|clickid|click_id)=["']?[a-zA-Z0-9+/=_-]{8,}["']?`),
	}

	// Cache-busting version parameters
	versionParamPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\?v=[a-f0-9.]+`),
		regexp.MustCompile(`\?ver=[a-f0-9.]+`),
		regexp.MustCompile(`\?_=[0-9]+`),
		regexp.MustCompile(`\?t=[0-9]+`),
	}

	commentPattern    = regexp.MustCompile(`<!--[\s\S]*?-->`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// NormalizeContent normalizes HTML so that two loads of the same landing page
// hash identically even when the server injects timestamps or tokens.
func NormalizeContent(html []byte, config *FingerprintConfig) ([]byte, error) {
	if config == nil {
		config = DefaultFingerprintConfig()
	}

	content := html
	if len(config.ExcludeTags) > 0 {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML: %w", err)
		}
		for _, tag := range config.ExcludeTags {
			doc.Find(tag).Remove()
		}
		rendered, err := doc.Html()
		if err != nil {
			return nil, fmt.Errorf("failed to render HTML: %w", err)
		}
		content = []byte(rendered)
	}

	if config.StripComments {
		content = commentPattern.ReplaceAll(content, nil)
	}
	if config.StripTimestamps {
		content = replaceAll(content, timestampPatterns, "[TIMESTAMP]")
		content = replaceAll(content, relativeTimePatterns, "[RELATIVE_TIME]")
	}
	if config.StripSessionIDs {
		content = replaceAll(content, sessionIDPatterns, "")
	}
	if config.StripVersionParams {
		content = replaceAll(content, versionParamPatterns, "")
	}
	if config.CollapseWhitespace {
		content = whitespacePattern.ReplaceAll(bytes.TrimSpace(content), []byte(" "))
	}
	return content, nil
}

func replaceAll(content []byte, patterns []*regexp.Regexp, repl string) []byte {
	for _, pattern := range patterns {
		content = pattern.ReplaceAll(content, []byte(repl))
	}
	return content
}

// ComputeFingerprint returns the 16-hex-digit xxhash of the normalized document
func ComputeFingerprint(html string, config *FingerprintConfig) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", ErrEmptyInput
	}
	normalized, err := NormalizeContent([]byte(html), config)
	if err != nil {
		return "", fmt.Errorf("failed to normalize content: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(normalized)), nil
}
