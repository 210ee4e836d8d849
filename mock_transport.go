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
	"io"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"
)

// MockResponse is a canned response of a MockTransport
type MockResponse struct {
	// StatusCode is the HTTP status code to return (default: 200)
	StatusCode int
	// Body is the response body
	Body []byte
	// Headers are the HTTP headers to include in the response
	Headers http.Header
	// Delay simulates network latency before returning the response
	Delay time.Duration
	// Error simulates a network error
	Error error
}

type mockPattern struct {
	pattern  *regexp.Regexp
	response *MockResponse
}

// MockTransport is an http.RoundTripper serving canned pages, stylesheets,
// scripts and images, so a Loader can be exercised without a network. It
// records every request it sees.
type MockTransport struct {
	mutex     sync.RWMutex
	responses map[string]*MockResponse
	patterns  []mockPattern
	requests  []*http.Request
}

// NewMockTransport creates an empty MockTransport. Unregistered URLs get a 404.
func NewMockTransport() *MockTransport {
	return &MockTransport{responses: make(map[string]*MockResponse)}
}

func withDefaults(response *MockResponse) *MockResponse {
	if response.StatusCode == 0 {
		response.StatusCode = http.StatusOK
	}
	if response.Headers == nil {
		response.Headers = make(http.Header)
	}
	return response
}

// RegisterResponse registers a response for an exact URL
func (m *MockTransport) RegisterResponse(url string, response *MockResponse) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.responses[url] = withDefaults(response)
}

func (m *MockTransport) registerBody(url, contentType string, body []byte) {
	headers := make(http.Header)
	headers.Set("Content-Type", contentType)
	m.RegisterResponse(url, &MockResponse{Body: body, Headers: headers})
}

// RegisterHTML registers a 200 text/html page
func (m *MockTransport) RegisterHTML(url, html string) {
	m.registerBody(url, "text/html; charset=utf-8", []byte(html))
}

// RegisterCSS registers a 200 stylesheet
func (m *MockTransport) RegisterCSS(url, css string) {
	m.registerBody(url, "text/css", []byte(css))
}

// RegisterScript registers a 200 JavaScript file
func (m *MockTransport) RegisterScript(url, js string) {
	m.registerBody(url, "application/javascript", []byte(js))
}

// RegisterImage registers an image. When declaredSize is larger than the
// body, the Content-Length header announces declaredSize.
func (m *MockTransport) RegisterImage(url, contentType string, body []byte, declaredSize int64) {
	headers := make(http.Header)
	headers.Set("Content-Type", contentType)
	if declaredSize > int64(len(body)) {
		headers.Set("Content-Length", strconv.FormatInt(declaredSize, 10))
	}
	m.RegisterResponse(url, &MockResponse{Body: body, Headers: headers})
}

// RegisterStatus registers an empty response with the given status code
func (m *MockTransport) RegisterStatus(url string, status int) {
	m.RegisterResponse(url, &MockResponse{StatusCode: status})
}

// RegisterError registers a transport error for a URL
func (m *MockTransport) RegisterError(url string, err error) {
	m.RegisterResponse(url, &MockResponse{Error: err})
}

// RegisterPattern registers a response for URLs matching a regex
func (m *MockTransport) RegisterPattern(pattern string, response *MockResponse) error {
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.patterns = append(m.patterns, mockPattern{pattern: regex, response: withDefaults(response)})
	return nil
}

// Requests returns the requests seen so far, in arrival order
func (m *MockTransport) Requests() []*http.Request {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return append([]*http.Request(nil), m.requests...)
}

// RequestCount returns how many times url was requested
func (m *MockTransport) RequestCount(url string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	n := 0
	for _, r := range m.requests {
		if r.URL.String() == url {
			n++
		}
	}
	return n
}

func (m *MockTransport) lookup(url string) (*MockResponse, bool) {
	if resp, ok := m.responses[url]; ok {
		return resp, true
	}
	for _, p := range m.patterns {
		if p.pattern.MatchString(url) {
			return p.response, true
		}
	}
	return nil, false
}

// RoundTrip implements http.RoundTripper
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mutex.Lock()
	m.requests = append(m.requests, req)
	mockResp, found := m.lookup(req.URL.String())
	m.mutex.Unlock()

	if !found {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBufferString("Not Found")),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	if mockResp.Delay > 0 {
		select {
		case <-time.After(mockResp.Delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
	if mockResp.Error != nil {
		return nil, mockResp.Error
	}

	header := mockResp.Headers.Clone()
	resp := &http.Response{
		StatusCode: mockResp.StatusCode,
		Body:       io.NopCloser(bytes.NewReader(mockResp.Body)),
		Header:     header,
		Request:    req,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
	}
	resp.ContentLength = int64(len(mockResp.Body))
	if cl := header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			resp.ContentLength = n
		}
	}
	return resp, nil
}
