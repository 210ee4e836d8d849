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
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// embedTarget is one <img> to embed; dataURI is written by its own task only
type embedTarget struct {
	sel     *goquery.Selection
	src     string
	dataURI string
}

// embedImages downloads every external <img> in parallel and replaces its src
// with a base64 data URI. Images over MaxImageBytes or slower than
// ImageTimeout keep their URL. The original URL is kept in data-original-src.
func (l *Loader) embedImages(ctx context.Context, sess *session, doc *goquery.Document) {
	var targets []*embedTarget
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if isHTTPURL(src) {
			targets = append(targets, &embedTarget{sel: s, src: src})
		}
	})
	if len(targets) == 0 {
		return
	}

	var g errgroup.Group
	for _, t := range targets {
		g.Go(func() error {
			uri, err := l.fetchImageDataURI(ctx, sess, t.src)
			if err != nil {
				l.logger.Warn("image not embedded", "url", t.src, "error", err)
				return nil
			}
			t.dataURI = uri
			return nil
		})
	}
	_ = g.Wait()

	for _, t := range targets {
		if t.dataURI == "" {
			continue
		}
		t.sel.SetAttr("data-original-src", t.src)
		t.sel.SetAttr("src", t.dataURI)
	}
}

// fetchImageDataURI downloads one image under the size cap and timeout
func (l *Loader) fetchImageDataURI(ctx context.Context, sess *session, src string) (string, error) {
	limit := l.cfg.MaxImageBytes
	ctx, cancel := context.WithTimeout(ctx, l.cfg.ImageTimeout)
	defer cancel()

	req, err := l.newRequest(ctx, sess, ResourceImage, src)
	if err != nil {
		return "", err
	}

	// Not httpBackend.Do: the Content-Length check must happen before the body is read
	client := *sess.backend.Client
	client.CheckRedirect = nil
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n > limit {
			return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, n)
		}
	}
	if resp.ContentLength > limit {
		return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, resp.ContentLength)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > limit {
		return "", fmt.Errorf("%w: body over %d bytes", ErrImageTooLarge, limit)
	}

	ct := contentTypeOf(resp.Header.Get("Content-Type"), body)
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("not an image: %s", ct)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}
