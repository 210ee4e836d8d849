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
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/agentberlin/pagesnake/storage"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/sync/errgroup"
)

var (
	cssURLPattern    = regexp.MustCompile(`url\s*\(\s*(['"]?)([^'")]+)(['"]?)\s*\)`)
	cssImportPattern = regexp.MustCompile(`@import\s+(['"])([^'"]+)(['"])`)

	rawTextClosers = map[string]*regexp.Regexp{
		"style":  regexp.MustCompile(`(?i)</style`),
		"script": regexp.MustCompile(`(?i)</script`),
	}
)

// resourceFetcher returns the body of a sub-resource
type resourceFetcher interface {
	fetchResource(ctx context.Context, kind ResourceKind, absURL string) ([]byte, error)
}

// httpFetcher fetches sub-resources over HTTP through the Loader's hooks,
// caching each URL once per session.
type httpFetcher struct {
	loader *Loader
	sess   *session
}

func (f *httpFetcher) fetchResource(ctx context.Context, kind ResourceKind, absURL string) ([]byte, error) {
	if res, ok := f.sess.store.Resource(absURL); ok {
		return res.Body, nil
	}
	if !isHTTPURL(absURL) {
		return nil, fmt.Errorf("unsupported scheme: %s", absURL)
	}
	resp, err := f.loader.fetch(ctx, f.sess, kind, absURL, int64(f.loader.cfg.MaxBodySize))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	f.sess.store.StoreResource(&storage.Resource{
		URL:         absURL,
		ContentType: resp.Headers.Get("Content-Type"),
		Body:        resp.Body,
	})
	return resp.Body, nil
}

// inlineTarget is one <link> or <script> to inline; body is filled by its own task
type inlineTarget struct {
	sel    *goquery.Selection
	absURL string
	body   string
	ok     bool
}

// inlineResources replaces external stylesheets with <style> blocks and
// external scripts with inline scripts. All fetches run in parallel and a
// failed fetch leaves its original tag untouched.
func (l *Loader) inlineResources(ctx context.Context, doc *goquery.Document, base string, fetcher resourceFetcher) {
	var styles, scripts []*inlineTarget
	if l.cfg.InlineStylesheets {
		doc.Find(`link[href]`).Each(func(_ int, s *goquery.Selection) {
			if !strings.Contains(attrLower(s, "rel"), "stylesheet") {
				return
			}
			href, _ := s.Attr("href")
			styles = append(styles, &inlineTarget{sel: s, absURL: resolveRef(base, href)})
		})
	}
	if l.cfg.InlineScripts {
		doc.Find(`script[src]`).Each(func(_ int, s *goquery.Selection) {
			src, _ := s.Attr("src")
			scripts = append(scripts, &inlineTarget{sel: s, absURL: resolveRef(base, src)})
		})
	}
	if len(styles) == 0 && len(scripts) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range styles {
		g.Go(func() error {
			body, err := fetcher.fetchResource(gctx, ResourceStylesheet, t.absURL)
			if err != nil {
				l.logger.Warn("stylesheet not inlined", "url", t.absURL, "error", err)
				return nil
			}
			t.body = rewriteCSSURLs(string(body), t.absURL)
			t.ok = true
			return nil
		})
	}
	for _, t := range scripts {
		g.Go(func() error {
			body, err := fetcher.fetchResource(gctx, ResourceScript, t.absURL)
			if err != nil {
				l.logger.Warn("script not inlined", "url", t.absURL, "error", err)
				return nil
			}
			t.body = string(body)
			t.ok = true
			return nil
		})
	}
	_ = g.Wait()

	for _, t := range styles {
		if !t.ok {
			continue
		}
		text := "/* source: " + t.absURL + " */\n" + escapeRawText(t.body, "style")
		node := newRawTextElement(atom.Style, text, nil)
		if media, ok := t.sel.Attr("media"); ok && media != "" {
			node.Attr = append(node.Attr, html.Attribute{Key: "media", Val: media})
		}
		t.sel.ReplaceWithNodes(node)
	}
	for _, t := range scripts {
		if !t.ok {
			continue
		}
		var attrs []html.Attribute
		for _, a := range t.sel.Get(0).Attr {
			switch a.Key {
			case "src", "async", "defer", "integrity", "crossorigin":
				continue
			}
			attrs = append(attrs, a)
		}
		attrs = append(attrs, html.Attribute{Key: "data-inlined-from", Val: t.absURL})
		t.sel.ReplaceWithNodes(newRawTextElement(atom.Script, escapeRawText(t.body, "script"), attrs))
	}
}

func newRawTextElement(a atom.Atom, text string, attrs []html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

// escapeRawText keeps a fetched body from closing its enclosing raw-text element
func escapeRawText(body, tag string) string {
	return rawTextClosers[tag].ReplaceAllString(body, `<\/`+tag)
}

// rewriteCSSURLs resolves url() and @import references against the
// stylesheet's own URL so they survive inlining into the page.
func rewriteCSSURLs(css, cssURL string) string {
	css = cssURLPattern.ReplaceAllStringFunc(css, func(match string) string {
		m := cssURLPattern.FindStringSubmatch(match)
		ref := strings.TrimSpace(m[2])
		if ref == "" || strings.HasPrefix(strings.ToLower(ref), "data:") || strings.HasPrefix(ref, "#") {
			return match
		}
		return "url(" + m[1] + resolveRef(cssURL, ref) + m[3] + ")"
	})
	return cssImportPattern.ReplaceAllStringFunc(css, func(match string) string {
		m := cssImportPattern.FindStringSubmatch(match)
		return "@import " + m[1] + resolveRef(cssURL, m[2]) + m[3]
	})
}

// absolutizeImages rewrites image src, lazy-load attributes, srcset and
// inline background URLs to absolute form.
func absolutizeImages(doc *goquery.Document, base string) {
	doc.Find("img, source, video, input[type=image]").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"src", "data-src", "data-lazy-src", "data-original", "poster"} {
			if v, ok := s.Attr(attr); ok && v != "" {
				s.SetAttr(attr, resolveRef(base, v))
			}
		}
		for _, attr := range []string{"srcset", "data-srcset"} {
			if v, ok := s.Attr(attr); ok && v != "" {
				s.SetAttr(attr, absolutizeSrcset(v, base))
			}
		}
	})
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if !strings.Contains(strings.ToLower(style), "url(") {
			return
		}
		s.SetAttr("style", rewriteCSSURLs(style, base))
	})
}

// absolutizeSrcset resolves every candidate URL in a srcset, keeping descriptors
func absolutizeSrcset(srcset, base string) string {
	var out []string
	for _, entry := range strings.Split(srcset, ",") {
		parts := strings.Fields(strings.TrimSpace(entry))
		if len(parts) == 0 {
			continue
		}
		parts[0] = resolveRef(base, parts[0])
		out = append(out, strings.Join(parts, " "))
	}
	return strings.Join(out, ", ")
}

// contentTypeOf returns the media type of a body, preferring the header value
func contentTypeOf(header string, body []byte) string {
	ct := header
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(strings.ToLower(ct))
}
