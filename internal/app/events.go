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

// EventType names an App event
type EventType string

const (
	EventAnalysisStarted   EventType = "analysis:started"
	EventAnalysisCompleted EventType = "analysis:completed"
	EventAnalysisFailed    EventType = "analysis:failed"
)

// EventEmitter receives App events
type EventEmitter interface {
	Emit(eventType EventType, data interface{})
}

// NoOpEmitter drops every event
type NoOpEmitter struct{}

func (n *NoOpEmitter) Emit(eventType EventType, data interface{}) {
	// Do nothing
}
