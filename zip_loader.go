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
	"archive/zip"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kennygrant/sanitize"
)

// zipBase is the pseudo base URL that zip entries resolve against
const zipBase = "file:///"

// AssetKind classifies an asset by file extension
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetCSS   AssetKind = "css"
	AssetJS    AssetKind = "js"
	AssetFont  AssetKind = "font"
	AssetVideo AssetKind = "video"
	AssetOther AssetKind = "other"
)

var assetExtensions = map[string]AssetKind{
	".png": AssetImage, ".jpg": AssetImage, ".jpeg": AssetImage, ".gif": AssetImage,
	".webp": AssetImage, ".svg": AssetImage, ".ico": AssetImage, ".avif": AssetImage, ".bmp": AssetImage,
	".css": AssetCSS,
	".js":  AssetJS, ".mjs": AssetJS,
	".woff": AssetFont, ".woff2": AssetFont, ".ttf": AssetFont, ".otf": AssetFont, ".eot": AssetFont,
	".mp4": AssetVideo, ".webm": AssetVideo, ".ogg": AssetVideo, ".mov": AssetVideo, ".m4v": AssetVideo,
}

// Asset is a file that belongs to the page: either a zip entry (Base64 set)
// or a URL the HTML references.
type Asset struct {
	// Name is the sanitized lower-case base file name
	Name string    `json:"name"`
	Path string    `json:"path"`
	Kind AssetKind `json:"kind"`
	// Source is "zip" or "url"
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Size        int    `json:"size,omitempty"`
	Base64      string `json:"base64,omitempty"`
}

// ClassifyAsset returns the asset kind for a file name
func ClassifyAsset(name string) AssetKind {
	ext := strings.ToLower(path.Ext(name))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if kind, ok := assetExtensions[ext]; ok {
		return kind
	}
	return AssetOther
}

// LoadZipFile opens a zip archive from disk and loads it with LoadZip
func (l *Loader) LoadZipFile(ctx context.Context, filename string) (*ParsedDocument, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	return l.LoadZip(ctx, path.Base(filename), f, info.Size())
}

// LoadZip loads a landing page from a zip archive. The root index.html is the
// document, else the shallowest .html/.htm entry. Stylesheets and scripts
// referenced from it are inlined from the archive. Archive files are
// classified and merged with the assets the HTML references; archive content
// wins over a URL reference to the same path.
func (l *Loader) LoadZip(ctx context.Context, name string, r io.ReaderAt, size int64) (*ParsedDocument, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s: %w", name, err)
	}

	entries := make(map[string]*zip.File)
	var files []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") || strings.HasPrefix(path.Base(f.Name), "._") {
			continue
		}
		clean := strings.TrimPrefix(path.Clean("/"+f.Name), "/")
		entries[clean] = f
		files = append(files, f)
	}

	docPath := pickZipDocument(entries)
	if docPath == "" {
		return nil, &NoDocumentFoundError{Archive: name, Entries: len(files)}
	}
	htmlBytes, err := readZipEntry(entries[docPath])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from %s: %w", docPath, name, err)
	}

	sess := l.newSession(zipBase + docPath)
	fetcher := &zipFetcher{entries: entries, fallback: &httpFetcher{loader: l, sess: sess}}
	docURL := zipBase + docPath
	pd, err := l.prepare(ctx, sess, string(decodeBody(htmlBytes, "", l.cfg.DetectCharset)), docURL, fetcher)
	if err != nil {
		return nil, err
	}

	zipAssets := make([]Asset, 0, len(files))
	for _, f := range files {
		clean := strings.TrimPrefix(path.Clean("/"+f.Name), "/")
		if clean == docPath {
			continue
		}
		body, err := readZipEntry(f)
		if err != nil {
			l.logger.Warn("skipping unreadable archive entry", "archive", name, "entry", f.Name, "error", err)
			continue
		}
		zipAssets = append(zipAssets, Asset{
			Name:        sanitize.Name(clean),
			Path:        clean,
			Kind:        ClassifyAsset(clean),
			Source:      "zip",
			ContentType: contentTypeOf("", body),
			Size:        len(body),
			Base64:      base64.StdEncoding.EncodeToString(body),
		})
	}

	pd.SourceURL = name
	pd.Assets = MergeAssets(zipAssets, referencedAssets(pd.Document(), pd.BaseURL))
	return pd, nil
}

// pickZipDocument chooses the document entry
func pickZipDocument(entries map[string]*zip.File) string {
	var candidates []string
	for p := range entries {
		lower := strings.ToLower(p)
		if lower == "index.html" || lower == "index.htm" {
			return p
		}
		if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := strings.Count(candidates[i], "/"), strings.Count(candidates[j], "/")
		if di != dj {
			return di < dj
		}
		bi, bj := strings.HasSuffix(strings.ToLower(candidates[i]), "/index.html"), strings.HasSuffix(strings.ToLower(candidates[j]), "/index.html")
		if bi != bj {
			return bi
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0]
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// zipFetcher serves file:/// references from archive entries and everything
// else from the network.
type zipFetcher struct {
	entries  map[string]*zip.File
	fallback resourceFetcher
}

func (z *zipFetcher) fetchResource(ctx context.Context, kind ResourceKind, absURL string) ([]byte, error) {
	if !strings.HasPrefix(absURL, zipBase) {
		return z.fallback.fetchResource(ctx, kind, absURL)
	}
	p := strings.TrimPrefix(absURL, zipBase)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	f, ok := z.entries[path.Clean(p)]
	if !ok {
		return nil, fmt.Errorf("%s: not in archive", p)
	}
	return readZipEntry(f)
}

// referencedAssets lists the files the HTML points at
func referencedAssets(doc *goquery.Document, base string) []Asset {
	var assets []Asset
	seen := make(map[string]bool)
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "#") || seen[ref] {
			return
		}
		seen[ref] = true
		abs := resolveRef(base, ref)
		p := abs
		if i := strings.IndexAny(p, "?#"); i >= 0 {
			p = p[:i]
		}
		assets = append(assets, Asset{
			Name:   sanitize.Name(p),
			Path:   strings.TrimPrefix(p, zipBase),
			Kind:   ClassifyAsset(p),
			Source: "url",
			URL:    abs,
		})
	}

	doc.Find("img[src], source[src], video[src], script[src], iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src)
	})
	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		rel := attrLower(s, "rel")
		if strings.Contains(rel, "stylesheet") || strings.Contains(rel, "icon") || strings.Contains(rel, "preload") {
			href, _ := s.Attr("href")
			add(href)
		}
	})
	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		for _, m := range cssURLPattern.FindAllStringSubmatch(style, -1) {
			add(m[2])
		}
	})
	return assets
}

// MergeAssets merges archive assets with URL-referenced assets. Archive
// entries are keyed by their lower-cased path. A URL reference matches the
// entry whose path its resolved path ends with, or failing that the entry
// with the same base name when exactly one entry carries it. Unmatched
// references are appended once per URL.
func MergeAssets(zipAssets, urlAssets []Asset) []Asset {
	merged := make([]Asset, 0, len(zipAssets)+len(urlAssets))
	byPath := make(map[string]int)
	byName := make(map[string][]int)
	for _, a := range zipAssets {
		key := strings.ToLower(a.Path)
		if key == "" {
			key = strings.ToLower(a.Name)
		}
		if _, ok := byPath[key]; ok {
			continue
		}
		byPath[key] = len(merged)
		name := strings.ToLower(a.Name)
		byName[name] = append(byName[name], len(merged))
		merged = append(merged, a)
	}

	seenURL := make(map[string]bool)
	for _, a := range urlAssets {
		if i, ok := matchZipAsset(a, byPath, byName); ok {
			if merged[i].URL == "" {
				merged[i].URL = a.URL
			}
			continue
		}
		if a.URL != "" {
			if seenURL[a.URL] {
				continue
			}
			seenURL[a.URL] = true
		}
		merged = append(merged, a)
	}
	return merged
}

func matchZipAsset(a Asset, byPath map[string]int, byName map[string][]int) (int, bool) {
	p := strings.ToLower(refPath(a))
	if p != "" {
		if i, ok := byPath[p]; ok {
			return i, true
		}
		best, bestLen := -1, 0
		for key, i := range byPath {
			if len(key) > bestLen && strings.HasSuffix(p, "/"+key) {
				best, bestLen = i, len(key)
			}
		}
		if best >= 0 {
			return best, true
		}
	}
	if idx := byName[strings.ToLower(a.Name)]; len(idx) == 1 {
		return idx[0], true
	}
	return 0, false
}

// refPath is the path component of a reference, without a leading slash
func refPath(a Asset) string {
	p := a.Path
	if u, err := url.Parse(a.URL); err == nil && u.Scheme != "" && u.Scheme != "file" {
		p = u.Path
	}
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
