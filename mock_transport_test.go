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
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

func mockGet(t *testing.T, m *MockTransport, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := m.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip(%s) failed: %v", url, err)
	}
	return resp
}

func TestMockTransport_RegisterHTML(t *testing.T) {
	mock := NewMockTransport()
	mock.RegisterHTML("https://lp.test/", "<h1>Hello</h1>")

	resp := mockGet(t, mock, "https://lp.test/")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "<h1>Hello</h1>" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestMockTransport_ContentTypes(t *testing.T) {
	mock := NewMockTransport()
	mock.RegisterCSS("https://lp.test/a.css", "body{}")
	mock.RegisterScript("https://lp.test/a.js", "var a;")

	tests := []struct {
		url  string
		want string
	}{
		{"https://lp.test/a.css", "text/css"},
		{"https://lp.test/a.js", "application/javascript"},
	}
	for _, tt := range tests {
		resp := mockGet(t, mock, tt.url)
		resp.Body.Close()
		if got := resp.Header.Get("Content-Type"); got != tt.want {
			t.Errorf("%s: Content-Type = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestMockTransport_RegisterImageDeclaredSize(t *testing.T) {
	mock := NewMockTransport()
	mock.RegisterImage("https://cdn.test/big.jpg", "image/jpeg", []byte("tiny"), 3*1024*1024)
	mock.RegisterImage("https://cdn.test/small.png", "image/png", []byte("png!"), 0)

	big := mockGet(t, mock, "https://cdn.test/big.jpg")
	big.Body.Close()
	if big.ContentLength != 3*1024*1024 {
		t.Errorf("expected declared length, got %d", big.ContentLength)
	}
	if big.Header.Get("Content-Length") != "3145728" {
		t.Errorf("expected Content-Length header, got %q", big.Header.Get("Content-Length"))
	}

	small := mockGet(t, mock, "https://cdn.test/small.png")
	small.Body.Close()
	if small.ContentLength != 4 {
		t.Errorf("expected body length 4, got %d", small.ContentLength)
	}
}

func TestMockTransport_NotFoundAndStatus(t *testing.T) {
	mock := NewMockTransport()
	mock.RegisterStatus("https://lp.test/gone", http.StatusGone)

	resp := mockGet(t, mock, "https://lp.test/missing")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unregistered URL, got %d", resp.StatusCode)
	}

	resp = mockGet(t, mock, "https://lp.test/gone")
	resp.Body.Close()
	if resp.StatusCode != http.StatusGone {
		t.Errorf("expected 410, got %d", resp.StatusCode)
	}
}

func TestMockTransport_RegisterError(t *testing.T) {
	mock := NewMockTransport()
	boom := errors.New("connection reset")
	mock.RegisterError("https://lp.test/", boom)

	req, _ := http.NewRequest(http.MethodGet, "https://lp.test/", nil)
	_, err := mock.RoundTrip(req)
	if !errors.Is(err, boom) {
		t.Errorf("expected registered error, got %v", err)
	}
}

func TestMockTransport_RegisterPattern(t *testing.T) {
	mock := NewMockTransport()
	if err := mock.RegisterPattern(`^https://cdn\.test/.*\.css$`, &MockResponse{Body: []byte("p{}")}); err != nil {
		t.Fatal(err)
	}
	if err := mock.RegisterPattern(`[`, &MockResponse{}); err == nil {
		t.Error("expected invalid pattern error")
	}

	resp := mockGet(t, mock, "https://cdn.test/theme/main.css")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "p{}" {
		t.Errorf("pattern response not served: %d %q", resp.StatusCode, body)
	}
}

func TestMockTransport_DelayHonorsContext(t *testing.T) {
	mock := NewMockTransport()
	mock.RegisterResponse("https://lp.test/slow", &MockResponse{Delay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "https://lp.test/slow", nil)

	start := time.Now()
	_, err := mock.RoundTrip(req)
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("delay did not stop on context cancellation")
	}
}

func TestMockTransport_RecordsRequests(t *testing.T) {
	mock := NewMockTransport()
	mock.RegisterHTML("https://lp.test/", "ok")

	for i := 0; i < 2; i++ {
		mockGet(t, mock, "https://lp.test/").Body.Close()
	}
	mockGet(t, mock, "https://lp.test/other").Body.Close()

	if n := mock.RequestCount("https://lp.test/"); n != 2 {
		t.Errorf("expected 2 requests, got %d", n)
	}
	if n := len(mock.Requests()); n != 3 {
		t.Errorf("expected 3 recorded requests, got %d", n)
	}
}
