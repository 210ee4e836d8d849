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

package app

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

var hostnamePattern = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z][a-z0-9-]*[a-z0-9]$`)

// normalizeURL turns user input into an absolute page URL and its domain.
// A missing scheme defaults to https. The path and query are kept; the
// fragment is dropped.
func normalizeURL(input string) (string, string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", fmt.Errorf("empty URL")
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		if strings.Contains(input, "://") {
			return "", "", fmt.Errorf("unsupported scheme")
		}
		input = "https://" + input
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL: %v", err)
	}

	hostname := strings.ToLower(parsedURL.Hostname())
	if hostname == "" {
		return "", "", fmt.Errorf("no hostname in URL")
	}
	if !validHostname(hostname) {
		return "", "", fmt.Errorf("invalid hostname %q", hostname)
	}

	hostPart := hostname
	if strings.Contains(hostname, ":") {
		hostPart = "[" + hostname + "]"
	}
	domain, host := hostPart, hostPart
	if port := parsedURL.Port(); port != "" {
		if !(parsedURL.Scheme == "https" && port == "443") && !(parsedURL.Scheme == "http" && port == "80") {
			domain = hostPart + ":" + port
			host = domain
		}
	}

	normalized := &url.URL{
		Scheme:   parsedURL.Scheme,
		Host:     host,
		Path:     parsedURL.Path,
		RawPath:  parsedURL.RawPath,
		RawQuery: parsedURL.RawQuery,
	}
	if normalized.Path == "/" && normalized.RawQuery == "" {
		normalized.Path = ""
	}
	return normalized.String(), domain, nil
}

func validHostname(hostname string) bool {
	if hostname == "localhost" {
		return true
	}
	if net.ParseIP(hostname) != nil {
		return true
	}
	// Dotted quads that failed to parse as an IP are out-of-range addresses
	if strings.Trim(hostname, "0123456789.") == "" {
		return false
	}
	return hostnamePattern.MatchString(hostname)
}
