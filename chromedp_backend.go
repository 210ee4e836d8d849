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
	"sort"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// pageRenderer produces the post-JavaScript HTML of a page
type pageRenderer interface {
	RenderPage(ctx context.Context, url string, config *RenderingConfig) (string, []string, error)
}

// chromedpRenderer handles browser-based page rendering
type chromedpRenderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	userAgent   string
}

var (
	globalRenderer     *chromedpRenderer
	globalRendererOnce sync.Once
)

// getRenderer returns the global chromedp renderer instance
func getRenderer(userAgent string) *chromedpRenderer {
	globalRendererOnce.Do(func() {
		globalRenderer = &chromedpRenderer{userAgent: userAgent}
		globalRenderer.init()
	})
	return globalRenderer
}

// init initializes the browser allocator context
func (r *chromedpRenderer) init() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(r.userAgent),
	)

	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Close cleans up the renderer resources
func (r *chromedpRenderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}

// RenderPage renders a page using headless Chrome and returns the HTML and the
// sub-resource URLs the page requested while loading. Quiz funnels build their
// steps from script, so the rendered HTML is what carries the step markup.
func (r *chromedpRenderer) RenderPage(ctx context.Context, url string, config *RenderingConfig) (string, []string, error) {
	if config == nil {
		config = NewDefaultConfig().RenderingConfig
	}

	browserCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	timeout := time.Duration(config.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	// Tie the browser tab to the caller's context
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var htmlContent string
	discovered := make(map[string]bool)
	var mu sync.Mutex

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if ev, ok := ev.(*network.EventRequestWillBeSent); ok {
			requestURL := ev.Request.URL
			if requestURL != "" && requestURL != url {
				mu.Lock()
				discovered[requestURL] = true
				mu.Unlock()
			}
		}
	})

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(time.Duration(config.InitialWaitMs)*time.Millisecond),
		// lazy-loaded hero images and below-the-fold sections
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(time.Duration(config.FinalWaitMs)*time.Millisecond),
		chromedp.Evaluate(`window.scrollTo(0, 0)`, nil),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", nil, fmt.Errorf("chromedp rendering failed: %w", err)
	}

	mu.Lock()
	urls := make([]string, 0, len(discovered))
	for u := range discovered {
		urls = append(urls, u)
	}
	mu.Unlock()
	sort.Strings(urls)

	return htmlContent, urls, nil
}

// CloseGlobalRenderer closes the global renderer instance.
// This should be called when the application exits.
func CloseGlobalRenderer() {
	if globalRenderer != nil {
		globalRenderer.Close()
	}
}
