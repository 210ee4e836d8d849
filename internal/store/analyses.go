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

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agentberlin/pagesnake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOptions filters and bounds ListAnalyses
type ListOptions struct {
	// Limit caps the number of rows; 0 means 50
	Limit int
	// Offset skips rows for paging
	Offset int
	// Vertical keeps only analyses of one vertical when set
	Vertical string
	// FlowType keeps only analyses of one flow type when set
	FlowType string
}

const defaultListLimit = 50

var listColumns = []string{
	"id", "source_url", "fingerprint", "title", "flow_type", "vertical", "tone", "platform", "created_at", "updated_at",
}

func newAnalysisRow(ca *pagesnake.ComponentAnalysis) (*Analysis, error) {
	payload, err := json.Marshal(ca)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	return &Analysis{
		ID:          ca.ID,
		SourceURL:   ca.SourceURL,
		Fingerprint: ca.Fingerprint,
		Title:       ca.Title,
		FlowType:    string(ca.Flow.Type),
		Vertical:    string(ca.Vertical),
		Tone:        string(ca.Tone),
		Platform:    ca.Platform,
		Payload:     string(payload),
		CreatedAt:   ca.CreatedAt.Unix(),
		UpdatedAt:   ca.UpdatedAt.Unix(),
	}, nil
}

// Decode returns the stored ComponentAnalysis
func (a *Analysis) Decode() (*pagesnake.ComponentAnalysis, error) {
	var ca pagesnake.ComponentAnalysis
	if err := json.Unmarshal([]byte(a.Payload), &ca); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", a.ID, err)
	}
	return &ca, nil
}

// SaveAnalysis inserts an analysis or, when its ID exists, replaces the
// payload and keeps the original creation time.
func (s *Store) SaveAnalysis(ca *pagesnake.ComponentAnalysis) error {
	if ca == nil || ca.ID == "" {
		return errors.New("analysis without ID")
	}
	row, err := newAnalysisRow(ca)
	if err != nil {
		return err
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"source_url", "fingerprint", "title", "flow_type", "vertical", "tone", "platform", "payload", "updated_at",
		}),
	}).Create(row).Error
}

// GetAnalysis returns the analysis with the given ID or ErrNotFound
func (s *Store) GetAnalysis(id string) (*pagesnake.ComponentAnalysis, error) {
	var row Analysis
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get analysis: %v", err)
	}
	return row.Decode()
}

// FindByFingerprint returns the most recent analysis of a document
// fingerprint. It returns nil, nil when there is none.
func (s *Store) FindByFingerprint(fingerprint string) (*pagesnake.ComponentAnalysis, error) {
	var row Analysis
	result := s.db.Where("fingerprint = ?", fingerprint).Order("updated_at DESC").First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find analysis: %v", result.Error)
	}
	return row.Decode()
}

// ListAnalyses returns analysis rows, newest first, without decoding payloads
func (s *Store) ListAnalyses(opts ListOptions) ([]Analysis, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	db := s.db.Model(&Analysis{})
	if opts.Vertical != "" {
		db = db.Where("vertical = ?", opts.Vertical)
	}
	if opts.FlowType != "" {
		db = db.Where("flow_type = ?", opts.FlowType)
	}

	var rows []Analysis
	if err := db.Select(listColumns).Order("updated_at DESC").Order("id ASC").
		Limit(limit).Offset(opts.Offset).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list analyses: %v", err)
	}
	return rows, nil
}

// CountAnalyses returns the number of stored analyses
func (s *Store) CountAnalyses() (int64, error) {
	var n int64
	err := s.db.Model(&Analysis{}).Count(&n).Error
	return n, err
}

// DeleteAnalysis removes an analysis. Deleting an unknown ID returns ErrNotFound.
func (s *Store) DeleteAnalysis(id string) error {
	result := s.db.Delete(&Analysis{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete analysis: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	return nil
}
