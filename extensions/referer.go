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

// Package extensions provides request hooks for pagesnake.Loader
package extensions

import (
	"github.com/agentberlin/pagesnake"
)

// Referer sets the Referer header of sub-resource requests to the URL of
// the page that references them. Some CDNs refuse hotlinked assets without it.
func Referer(l *pagesnake.Loader) {
	l.OnRequest(func(r *pagesnake.Request) {
		if r.Kind == pagesnake.ResourcePage || r.Kind == pagesnake.ResourceRobots {
			return
		}
		if r.PageURL != "" && r.Headers.Get("Referer") == "" {
			r.Headers.Set("Referer", r.PageURL)
		}
	})
}
