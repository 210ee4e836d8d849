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

	"github.com/agentberlin/pagesnake"
	"github.com/agentberlin/pagesnake/internal/platform"
	"github.com/agentberlin/pagesnake/internal/store"
	"github.com/agentberlin/pagesnake/internal/types"
)

// GetAnalysis returns a stored analysis by ID
func (a *App) GetAnalysis(id string) (*pagesnake.ComponentAnalysis, error) {
	if a.store == nil {
		return nil, fmt.Errorf("analysis %s: %w", id, store.ErrNotFound)
	}
	return a.store.GetAnalysis(id)
}

// ListAnalyses returns stored analyses, newest first
func (a *App) ListAnalyses(opts store.ListOptions) ([]types.AnalysisSummary, error) {
	if a.store == nil {
		return []types.AnalysisSummary{}, nil
	}
	rows, err := a.store.ListAnalyses(opts)
	if err != nil {
		return nil, err
	}

	summaries := make([]types.AnalysisSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, types.AnalysisSummary{
			ID:          row.ID,
			SourceURL:   row.SourceURL,
			Title:       row.Title,
			Fingerprint: row.Fingerprint,
			FlowType:    row.FlowType,
			Vertical:    row.Vertical,
			Tone:        row.Tone,
			Platform:    row.Platform,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return summaries, nil
}

// DeleteAnalysis removes a stored analysis
func (a *App) DeleteAnalysis(id string) error {
	if a.store == nil {
		return fmt.Errorf("analysis %s: %w", id, store.ErrNotFound)
	}
	return a.store.DeleteAnalysis(id)
}

// GetPlatforms returns the platforms the analyzer can detect
func (a *App) GetPlatforms() []platform.PlatformInfo {
	return platform.GetAllPlatforms()
}
