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
	"net/http"
	"net/http/httptrace"
	"time"
)

// FetchTiming records the connection timings of the page request. It is
// filled in when Config.TraceHTTP is set.
type FetchTiming struct {
	start, connect, dns time.Time

	// DNSDuration is the time spent resolving the host
	DNSDuration time.Duration `json:"dnsDuration"`
	// ConnectDuration is the time spent dialing, zero for reused connections
	ConnectDuration time.Duration `json:"connectDuration"`
	// FirstByteDuration runs from acquiring a connection to the first response byte
	FirstByteDuration time.Duration `json:"firstByteDuration"`
}

func (ft *FetchTiming) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) { ft.dns = time.Now() },
		DNSDone: func(httptrace.DNSDoneInfo) {
			ft.DNSDuration = time.Since(ft.dns)
		},
		ConnectStart: func(network, addr string) { ft.connect = time.Now() },
		ConnectDone: func(network, addr string, err error) {
			ft.ConnectDuration = time.Since(ft.connect)
		},
		GetConn: func(hostPort string) { ft.start = time.Now() },
		GotFirstResponseByte: func() {
			ft.FirstByteDuration = time.Since(ft.start)
		},
	}
}

// attach returns ctx carrying the client trace; redirects made with it
// overwrite the timings with those of the last hop
func (ft *FetchTiming) attach(ctx context.Context) context.Context {
	return httptrace.WithClientTrace(ctx, ft.clientTrace())
}

// WithTiming returns req with ft attached to its context
func (ft *FetchTiming) WithTiming(req *http.Request) *http.Request {
	return req.WithContext(ft.attach(req.Context()))
}
