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
	"errors"
	"fmt"
)

var (
	// ErrMissingURL is returned when a URL load is requested with an empty URL
	ErrMissingURL = errors.New("missing URL")
	// ErrEmptyInput is returned when raw HTML input is empty
	ErrEmptyInput = errors.New("empty HTML input")
	// ErrNoDocumentFound is the error returned when an archive holds no .html/.htm entry
	ErrNoDocumentFound = errors.New("no HTML document found")
	// ErrRobotsTxtBlocked is returned in respect mode when robots.txt disallows the page
	ErrRobotsTxtBlocked = errors.New("URL blocked by robots.txt")
	// ErrImageTooLarge is returned when an image exceeds the embedding size cap
	ErrImageTooLarge = errors.New("image exceeds size limit")
	// ErrURLFiltered is returned when a request hook aborts a sub-resource fetch
	ErrURLFiltered = errors.New("request aborted by hook")
)

// FetchError is returned when the page itself cannot be fetched.
// StatusCode is 0 for transport-level failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NoDocumentFoundError is returned when a zip archive has no HTML entry
type NoDocumentFoundError struct {
	Archive string
	Entries int
}

func (e *NoDocumentFoundError) Error() string {
	return fmt.Sprintf("%s: %d entries, none ending in .html or .htm", e.Archive, e.Entries)
}

// Is reports ErrNoDocumentFound as a match so callers can use errors.Is
func (e *NoDocumentFoundError) Is(target error) bool {
	return target == ErrNoDocumentFound
}
