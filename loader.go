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
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/agentberlin/pagesnake/storage"
	"github.com/temoto/robotstxt"
)

// ResourceKind identifies what a request is for
type ResourceKind string

const (
	ResourcePage       ResourceKind = "page"
	ResourceStylesheet ResourceKind = "stylesheet"
	ResourceScript     ResourceKind = "script"
	ResourceImage      ResourceKind = "image"
	ResourceRobots     ResourceKind = "robots"
)

// Request is an outgoing request made by the Loader. Request hooks may
// change its headers or abort it.
type Request struct {
	// URL is the absolute URL being requested
	URL *url.URL
	// Kind is the resource kind
	Kind ResourceKind
	// PageURL is the URL of the document that referenced the resource
	PageURL string
	// Headers are sent with the request
	Headers http.Header

	abort bool
}

// Abort cancels the request. Aborting the page request fails the load;
// aborting a sub-resource leaves the original reference in place.
func (r *Request) Abort() {
	r.abort = true
}

// RequestCallback is a type alias for OnRequest callback functions
type RequestCallback func(*Request)

// Loader turns a URL, raw HTML or zip archive into a ParsedDocument
type Loader struct {
	cfg       *Config
	logger    *slog.Logger
	transport http.RoundTripper
	renderer  pageRenderer
	now       func() time.Time

	lock             sync.RWMutex
	requestCallbacks []RequestCallback
}

// NewLoader creates a Loader. A nil config means NewDefaultConfig().
func NewLoader(cfg *Config) *Loader {
	merged := mergeConfig(cfg)
	return &Loader{
		cfg:    merged,
		logger: merged.Logger,
		now:    time.Now,
	}
}

// Config returns the effective configuration
func (l *Loader) Config() *Config {
	return l.cfg
}

// SetTransport replaces the HTTP transport (tests use MockTransport)
func (l *Loader) SetTransport(rt http.RoundTripper) {
	l.transport = rt
}

// SetClock sets the clock used for FetchedAt
func (l *Loader) SetClock(now func() time.Time) {
	l.now = now
}

// OnRequest registers a function called before every outgoing request
func (l *Loader) OnRequest(f RequestCallback) {
	l.lock.Lock()
	l.requestCallbacks = append(l.requestCallbacks, f)
	l.lock.Unlock()
}

// session is the state of one load: an HTTP backend and the resource cache
type session struct {
	backend *httpBackend
	store   storage.Storage
	pageURL string
}

func (l *Loader) newSession(pageURL string) *session {
	store := storage.NewInMemoryStorage()
	backend := &httpBackend{}
	backend.Init(store.Jar(), l.transport)
	if l.cfg.Timeout > 0 {
		backend.Client.Timeout = l.cfg.Timeout
	}
	return &session{backend: backend, store: store, pageURL: pageURL}
}

// LoadURL fetches a page and returns it with stylesheets and scripts inlined
// and image URLs absolutized. Non-2xx responses and transport failures
// return a *FetchError.
func (l *Loader) LoadURL(ctx context.Context, rawURL string) (*ParsedDocument, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrMissingURL
	}
	parsed, err := urlParser.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	pageURL := parsed.Href(false)
	sess := l.newSession(pageURL)

	if strings.EqualFold(l.cfg.RobotsTxtMode, "respect") {
		if !l.robotsAllowed(ctx, sess, pageURL) {
			return nil, ErrRobotsTxtBlocked
		}
	}

	var htmlStr, finalURL string
	var resources []string
	if l.cfg.EnableRendering {
		htmlStr, resources, err = l.render(ctx, pageURL)
		finalURL = pageURL
		if err != nil {
			l.logger.Warn("rendering failed, falling back to HTTP", "url", pageURL, "error", err)
			htmlStr = ""
		}
	}
	var timing *FetchTiming
	if htmlStr == "" {
		if l.cfg.TraceHTTP {
			timing = &FetchTiming{}
		}
		resp, err := l.fetchTimed(ctx, sess, ResourcePage, pageURL, int64(l.cfg.MaxBodySize), timing)
		if err != nil {
			return nil, &FetchError{URL: pageURL, Err: err}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
		}
		body := decodeBody(resp.Body, resp.Headers.Get("Content-Type"), l.cfg.DetectCharset)
		htmlStr = string(body)
		finalURL = resp.FinalURL
	}

	pd, err := l.prepare(ctx, sess, htmlStr, finalURL, &httpFetcher{loader: l, sess: sess})
	if err != nil {
		return nil, err
	}
	pd.SourceURL = pageURL
	pd.Resources = resources
	pd.Timing = timing
	return pd, nil
}

// LoadHTML parses raw HTML. When baseURL is set, relative references are
// resolved against it and remote stylesheets and scripts are inlined.
func (l *Loader) LoadHTML(ctx context.Context, htmlStr, baseURL string) (*ParsedDocument, error) {
	if strings.TrimSpace(htmlStr) == "" {
		return nil, ErrEmptyInput
	}
	sess := l.newSession(baseURL)
	return l.prepare(ctx, sess, htmlStr, baseURL, &httpFetcher{loader: l, sess: sess})
}

// prepare runs the DOM rewrites shared by every input path and wraps the
// result in an immutable ParsedDocument.
func (l *Loader) prepare(ctx context.Context, sess *session, htmlStr, baseURL string, fetcher resourceFetcher) (*ParsedDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base := baseURL
	if href, found := doc.Find("base[href]").Attr("href"); found && baseURL != "" {
		base = resolveRef(baseURL, href)
	}

	if base != "" {
		l.inlineResources(ctx, doc, base, fetcher)
		if l.cfg.AbsolutizeImages && isHTTPURL(base) {
			absolutizeImages(doc, base)
		}
		if l.cfg.EmbedImages && isHTTPURL(base) {
			l.embedImages(ctx, sess, doc)
		}
	}

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return NewParsedDocument(out, baseURL, l.now())
}

// fetch runs the request hooks and performs a GET
func (l *Loader) fetch(ctx context.Context, sess *session, kind ResourceKind, rawURL string, bodySize int64) (*httpResponse, error) {
	return l.fetchTimed(ctx, sess, kind, rawURL, bodySize, nil)
}

func (l *Loader) fetchTimed(ctx context.Context, sess *session, kind ResourceKind, rawURL string, bodySize int64, timing *FetchTiming) (*httpResponse, error) {
	if timing != nil {
		ctx = timing.attach(ctx)
	}
	httpReq, err := l.newRequest(ctx, sess, kind, rawURL)
	if err != nil {
		return nil, err
	}
	return sess.backend.Do(ctx, httpReq, bodySize)
}

// newRequest builds a GET request and passes it through the OnRequest hooks
func (l *Loader) newRequest(ctx context.Context, sess *session, kind ResourceKind, rawURL string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	hdr := http.Header{}
	for k, v := range l.cfg.Headers {
		hdr.Set(k, v)
	}
	hdr.Set("User-Agent", l.cfg.UserAgent)
	if kind == ResourcePage {
		hdr.Set("Accept", l.cfg.Accept)
	}

	req := &Request{URL: u, Kind: kind, PageURL: sess.pageURL, Headers: hdr}
	l.lock.RLock()
	callbacks := append([]RequestCallback(nil), l.requestCallbacks...)
	l.lock.RUnlock()
	for _, f := range callbacks {
		f(req)
	}
	if req.abort {
		return nil, ErrURLFiltered
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL.String(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header = req.Headers
	return httpReq, nil
}

func (l *Loader) robotsAllowed(ctx context.Context, sess *session, pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return true
	}
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	resp, err := l.fetch(ctx, sess, ResourceRobots, robotsURL, 512*1024)
	if err != nil {
		return true
	}
	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, resp.Body)
	if err != nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return robots.TestAgent(path, l.cfg.UserAgent)
}

func (l *Loader) render(ctx context.Context, pageURL string) (string, []string, error) {
	l.lock.Lock()
	if l.renderer == nil {
		l.renderer = getRenderer(l.cfg.UserAgent)
	}
	renderer := l.renderer
	l.lock.Unlock()
	return renderer.RenderPage(ctx, pageURL, l.cfg.RenderingConfig)
}

func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
