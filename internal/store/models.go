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

package store

// Analysis is a stored ComponentAnalysis. The queryable fields are copied
// out of the payload so listings don't have to decode it.
type Analysis struct {
	ID          string `gorm:"primaryKey"`
	SourceURL   string `gorm:"type:text;index"`
	Fingerprint string `gorm:"index;not null"`
	Title       string `gorm:"type:text"`
	FlowType    string
	Vertical    string `gorm:"index"`
	Tone        string
	Platform    string
	Payload     string `gorm:"type:text;not null"`     // JSON-encoded ComponentAnalysis
	CreatedAt   int64  `gorm:"autoCreateTime:false"` // Unix seconds of the first analysis
	UpdatedAt   int64  `gorm:"autoUpdateTime:false"` // Unix seconds of the latest re-analysis
}

// DomainConfig holds per-domain load settings applied on top of the global config
type DomainConfig struct {
	ID               uint   `gorm:"primaryKey"`
	Domain           string `gorm:"uniqueIndex;not null"`
	RenderingEnabled bool   `gorm:"default:false"` // Load pages of this domain through headless Chrome
	InitialWaitMs    int    `gorm:"default:1500"`  // Wait after page load for scripts to build the page (in milliseconds)
	FinalWaitMs      int    `gorm:"default:500"`   // Wait before capturing HTML (in milliseconds)
	EmbedImages      bool   `gorm:"default:false"`
	UserAgent        string `gorm:"type:text"` // Empty keeps the global User-Agent
	RobotsTxtMode    string `gorm:"default:'ignore'"`
	CreatedAt        int64  `gorm:"autoCreateTime"`
	UpdatedAt        int64  `gorm:"autoUpdateTime"`
}
