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
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	whatwgUrl "github.com/nlnwa/whatwg-url/url"
	"golang.org/x/net/html"
)

var urlParser = whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign())

// ParsedDocument is a loaded, DOM-queryable HTML document. It must not be
// mutated after the Loader returns it; extractors that need to remove nodes
// work on a fresh parse of HTML().
type ParsedDocument struct {
	// Title is the <title> text
	Title string `json:"title"`
	// Description is the meta description
	Description string `json:"description,omitempty"`
	// ByteSize is the size of the final HTML in bytes
	ByteSize int `json:"byteSize"`
	// BaseURL resolves relative references. It honors <base href>.
	BaseURL string `json:"baseUrl,omitempty"`
	// SourceURL is the requested URL, file name or archive name
	SourceURL string `json:"sourceUrl,omitempty"`
	// FetchedAt is when the document was loaded
	FetchedAt time.Time `json:"fetchedAt"`
	// Assets are the classified files of a zip upload merged with URL-referenced assets
	Assets []Asset `json:"assets,omitempty"`
	// Resources are the sub-resource URLs requested while rendering
	Resources []string `json:"resources,omitempty"`
	// Timing holds the page request timings when tracing is enabled
	Timing *FetchTiming `json:"timing,omitempty"`

	doc  *goquery.Document
	html string
}

// NewParsedDocument parses htmlStr. baseURL may be empty.
func NewParsedDocument(htmlStr, baseURL string, fetchedAt time.Time) (*ParsedDocument, error) {
	if strings.TrimSpace(htmlStr) == "" {
		return nil, ErrEmptyInput
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	pd := &ParsedDocument{
		doc:       doc,
		html:      htmlStr,
		ByteSize:  len(htmlStr),
		BaseURL:   baseURL,
		SourceURL: baseURL,
		FetchedAt: fetchedAt,
	}
	pd.Title = normalizeWhitespace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		pd.Description = normalizeWhitespace(desc)
	} else if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		pd.Description = normalizeWhitespace(desc)
	}
	if href, found := doc.Find("base[href]").Attr("href"); found && baseURL != "" {
		if u, err := urlParser.ParseRef(baseURL, href); err == nil {
			pd.BaseURL = u.Href(false)
		}
	}
	return pd, nil
}

// Document returns the goquery document
func (d *ParsedDocument) Document() *goquery.Document {
	return d.doc
}

// HTML returns the final (inlined) HTML source
func (d *ParsedDocument) HTML() string {
	return d.html
}

// Root returns the root html.Node for XPath queries
func (d *ParsedDocument) Root() *html.Node {
	if d.doc == nil || len(d.doc.Nodes) == 0 {
		return nil
	}
	return d.doc.Nodes[0]
}

// Clone returns a freshly parsed copy of the DOM that callers may mutate
func (d *ParsedDocument) Clone() *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(d.html))
	if err != nil {
		// the same source parsed once already
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

// ResolveURL resolves ref against the document base. It returns ref
// unchanged when there is no base or the reference does not parse.
func (d *ParsedDocument) ResolveURL(ref string) string {
	return resolveRef(d.BaseURL, ref)
}

// Host returns the host of the base URL
func (d *ParsedDocument) Host() string {
	if d.BaseURL == "" {
		return ""
	}
	u, err := url.Parse(d.BaseURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func resolveRef(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == "" {
		return ref
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") || strings.HasPrefix(ref, "#") {
		return ref
	}
	u, err := urlParser.ParseRef(base, ref)
	if err != nil {
		return ref
	}
	return u.Href(false)
}
