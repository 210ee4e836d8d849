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

package types

// AnalysisSummary is the list view of a stored analysis
type AnalysisSummary struct {
	ID          string `json:"id"`
	SourceURL   string `json:"sourceUrl"`
	Title       string `json:"title"`
	Fingerprint string `json:"fingerprint"`
	FlowType    string `json:"flowType"`
	Vertical    string `json:"vertical"`
	Tone        string `json:"tone"`
	Platform    string `json:"platform"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// ConfigResponse represents the per-domain load settings
type ConfigResponse struct {
	Domain           string `json:"domain"`
	RenderingEnabled bool   `json:"renderingEnabled"`
	InitialWaitMs    int    `json:"initialWaitMs"`
	FinalWaitMs      int    `json:"finalWaitMs"`
	EmbedImages      bool   `json:"embedImages"`
	UserAgent        string `json:"userAgent"`
	RobotsTxtMode    string `json:"robotsTxtMode"`
}

// UpdateInfo contains information about available updates
type UpdateInfo struct {
	CurrentVersion  string `json:"currentVersion"`
	LatestVersion   string `json:"latestVersion"`
	UpdateAvailable bool   `json:"updateAvailable"`
}

// SystemHealthCheck represents the result of system health checks
type SystemHealthCheck struct {
	IsHealthy       bool   `json:"isHealthy"`
	ChromeAvailable bool   `json:"chromeAvailable"`
	ErrorTitle      string `json:"errorTitle,omitempty"`
	ErrorMsg        string `json:"errorMsg,omitempty"`
	Suggestion      string `json:"suggestion,omitempty"`
}
