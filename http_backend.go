// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// This file includes modifications to code originally developed by Adam Tauber,
// licensed under the Apache License, Version 2.0.
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
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const maxRedirects = 10

type httpBackend struct {
	Client *http.Client
}

// httpResponse is a fully read response
type httpResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	// FinalURL is the URL of the last request in the redirect chain
	FinalURL string
}

func (h *httpBackend) Init(jar http.CookieJar, transport http.RoundTripper) {
	h.Client = &http.Client{
		Jar:       jar,
		Transport: transport,
		// Redirects are followed by Do so that hooks see every hop's headers
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Do performs the request, following up to maxRedirects redirects, and reads
// at most bodySize bytes of the final body. bodySize <= 0 means unlimited.
func (h *httpBackend) Do(ctx context.Context, request *http.Request, bodySize int64) (*httpResponse, error) {
	currentRequest := request.WithContext(ctx)

	for redirectCount := 0; redirectCount < maxRedirects; redirectCount++ {
		res, err := h.Client.Do(currentRequest)
		if err != nil {
			return nil, err
		}

		location := res.Header.Get("Location")
		if res.StatusCode >= 300 && res.StatusCode < 400 && location != "" {
			res.Body.Close()

			redirectURL, err := currentRequest.URL.Parse(location)
			if err != nil {
				return nil, err
			}

			// 307/308 preserve the method, everything else becomes GET
			method := http.MethodGet
			var body io.Reader
			if res.StatusCode == http.StatusTemporaryRedirect || res.StatusCode == http.StatusPermanentRedirect {
				method = currentRequest.Method
				body = currentRequest.Body
			}

			newRequest, err := http.NewRequestWithContext(ctx, method, redirectURL.String(), body)
			if err != nil {
				return nil, err
			}
			for key, values := range currentRequest.Header {
				for _, value := range values {
					newRequest.Header.Add(key, value)
				}
			}
			if newRequest.URL.Host != currentRequest.URL.Host {
				newRequest.Header.Del("Authorization")
			}
			currentRequest = newRequest
			continue
		}

		defer res.Body.Close()

		var bodyReader io.Reader = res.Body
		if bodySize > 0 {
			bodyReader = io.LimitReader(bodyReader, bodySize)
		}
		contentEncoding := strings.ToLower(res.Header.Get("Content-Encoding"))
		if !res.Uncompressed && strings.Contains(contentEncoding, "gzip") {
			gz, err := gzip.NewReader(bodyReader)
			if err != nil {
				return nil, err
			}
			defer gz.Close()
			bodyReader = gz
		}
		body, err := io.ReadAll(bodyReader)
		if err != nil {
			return nil, err
		}
		return &httpResponse{
			StatusCode: res.StatusCode,
			Body:       body,
			Headers:    res.Header,
			FinalURL:   currentRequest.URL.String(),
		}, nil
	}

	return nil, errors.New("stopped after 10 redirects")
}

// decodeBody converts body to UTF-8. A charset declared in the Content-Type
// header or a <meta> tag wins; otherwise chardet guesses when detect is set.
func decodeBody(body []byte, contentType string, detect bool) []byte {
	declared := strings.Contains(strings.ToLower(contentType), "charset=")
	if !declared && detect {
		r, err := chardet.NewTextDetector().DetectBest(body)
		if err == nil && r.Confidence >= 50 && !strings.EqualFold(r.Charset, "UTF-8") {
			if rd, err := charset.NewReaderLabel(r.Charset, bytes.NewReader(body)); err == nil {
				if decoded, err := io.ReadAll(rd); err == nil {
					return decoded
				}
			}
		}
		return body
	}

	rd, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return body
	}
	decoded, err := io.ReadAll(rd)
	if err != nil {
		return body
	}
	return decoded
}
