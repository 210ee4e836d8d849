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

package storage

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Resource is one fetched sub-resource (stylesheet, script or image)
type Resource struct {
	URL         string
	ContentType string
	Body        []byte
}

// Storage holds the per-load state of the Loader: fetched sub-resources and
// cookies set by the page's redirect chain.
type Storage interface {
	// Init initializes the storage
	Init() error
	// Resource returns the cached resource for a URL
	Resource(rawURL string) (*Resource, bool)
	// StoreResource records a fetched resource. It returns false when the
	// URL already has an entry; the first write wins.
	StoreResource(res *Resource) bool
	// Cookies retrieves stored cookies for a given host
	Cookies(u *url.URL) string
	// SetCookies stores cookies for a given host
	SetCookies(u *url.URL, cookies string)
	// Jar exposes the cookie jar for an http.Client
	Jar() http.CookieJar
}

// InMemoryStorage is the default storage backend of the Loader.
// It keeps resources and cookies in memory for the lifetime of one load.
type InMemoryStorage struct {
	resources map[uint64]*Resource
	lock      *sync.RWMutex
	jar       *cookiejar.Jar
}

// NewInMemoryStorage returns an initialized InMemoryStorage
func NewInMemoryStorage() *InMemoryStorage {
	s := &InMemoryStorage{}
	_ = s.Init()
	return s
}

// Init initializes InMemoryStorage
func (s *InMemoryStorage) Init() error {
	if s.resources == nil {
		s.resources = make(map[uint64]*Resource)
	}
	if s.lock == nil {
		s.lock = &sync.RWMutex{}
	}
	if s.jar == nil {
		var err error
		s.jar, err = cookiejar.New(nil)
		return err
	}
	return nil
}

// Resource implements Storage.Resource()
func (s *InMemoryStorage) Resource(rawURL string) (*Resource, bool) {
	s.lock.RLock()
	res, ok := s.resources[xxhash.Sum64String(rawURL)]
	s.lock.RUnlock()
	return res, ok
}

// StoreResource implements Storage.StoreResource()
func (s *InMemoryStorage) StoreResource(res *Resource) bool {
	key := xxhash.Sum64String(res.URL)
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, exists := s.resources[key]; exists {
		return false
	}
	s.resources[key] = res
	return true
}

// Len returns the number of stored resources
func (s *InMemoryStorage) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.resources)
}

// Cookies implements Storage.Cookies()
func (s *InMemoryStorage) Cookies(u *url.URL) string {
	return StringifyCookies(s.jar.Cookies(u))
}

// SetCookies implements Storage.SetCookies()
func (s *InMemoryStorage) SetCookies(u *url.URL, cookies string) {
	s.jar.SetCookies(u, UnstringifyCookies(cookies))
}

// Jar implements Storage.Jar()
func (s *InMemoryStorage) Jar() http.CookieJar {
	return s.jar
}

// StringifyCookies serializes list of http.Cookies to string
func StringifyCookies(cookies []*http.Cookie) string {
	cs := make([]string, len(cookies))
	for i, c := range cookies {
		cs[i] = c.String()
	}
	return strings.Join(cs, "\n")
}

// UnstringifyCookies deserializes a cookie string to http.Cookies
func UnstringifyCookies(s string) []*http.Cookie {
	h := http.Header{}
	for _, c := range strings.Split(s, "\n") {
		h.Add("Set-Cookie", c)
	}
	r := http.Response{Header: h}
	return r.Cookies()
}
