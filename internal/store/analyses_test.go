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
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentberlin/pagesnake"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := newStoreWithPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleAnalysis(id, fingerprint string, at time.Time) *pagesnake.ComponentAnalysis {
	return &pagesnake.ComponentAnalysis{
		ID:          id,
		CreatedAt:   at,
		UpdatedAt:   at,
		SourceURL:   "https://lp.test/" + id,
		Title:       "Glow Serum",
		Fingerprint: fingerprint,
		Platform:    "custom",
		Flow:        pagesnake.LPFlow{Type: pagesnake.FlowSinglePage},
		Vertical:    pagesnake.VerticalMainstream,
		Tone:        pagesnake.ToneProfessional,
		Links: []pagesnake.DetectedLink{
			{ID: "link-1", Type: pagesnake.LinkCTA, OriginalURL: "https://offers.test/go", AnchorText: "Join", Confidence: 0.9},
		},
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := store.SaveAnalysis(sampleAnalysis("a1", "fp1", at)); err != nil {
		t.Fatalf("SaveAnalysis() error = %v", err)
	}

	got, err := store.GetAnalysis("a1")
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if got.Title != "Glow Serum" || got.Fingerprint != "fp1" {
		t.Errorf("unexpected analysis %+v", got)
	}
	if len(got.Links) != 1 || got.Links[0].OriginalURL != "https://offers.test/go" {
		t.Errorf("payload not round-tripped, links = %+v", got.Links)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, at)
	}

	var row Analysis
	if err := store.DB().First(&row, "id = ?", "a1").Error; err != nil {
		t.Fatal(err)
	}
	if row.FlowType != string(pagesnake.FlowSinglePage) || row.Vertical != string(pagesnake.VerticalMainstream) {
		t.Errorf("queryable columns not copied: %+v", row)
	}
	if row.CreatedAt != at.Unix() {
		t.Errorf("row CreatedAt = %d, want %d", row.CreatedAt, at.Unix())
	}
}

func TestSaveAnalysisUpsertKeepsCreatedAt(t *testing.T) {
	store := newTestStore(t)
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	if err := store.SaveAnalysis(sampleAnalysis("a1", "fp1", first)); err != nil {
		t.Fatal(err)
	}
	again := sampleAnalysis("a1", "fp1", later)
	again.Title = "Glow Serum v2"
	if err := store.SaveAnalysis(again); err != nil {
		t.Fatalf("second SaveAnalysis() error = %v", err)
	}

	count, err := store.CountAnalyses()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row after upsert, got %d", count)
	}

	var row Analysis
	if err := store.DB().First(&row, "id = ?", "a1").Error; err != nil {
		t.Fatal(err)
	}
	if row.Title != "Glow Serum v2" {
		t.Errorf("title not updated, got %q", row.Title)
	}
	if row.CreatedAt != first.Unix() {
		t.Errorf("CreatedAt changed on upsert: %d", row.CreatedAt)
	}
	if row.UpdatedAt != later.Unix() {
		t.Errorf("UpdatedAt = %d, want %d", row.UpdatedAt, later.Unix())
	}
}

func TestSaveAnalysisRequiresID(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveAnalysis(&pagesnake.ComponentAnalysis{}); err == nil {
		t.Error("expected error for analysis without ID")
	}
	if err := store.SaveAnalysis(nil); err == nil {
		t.Error("expected error for nil analysis")
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetAnalysis("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByFingerprint(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := store.FindByFingerprint("fp1")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil for unknown fingerprint, got %v, %v", got, err)
	}

	if err := store.SaveAnalysis(sampleAnalysis("old", "fp1", at)); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveAnalysis(sampleAnalysis("new", "fp1", at.Add(time.Minute))); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveAnalysis(sampleAnalysis("other", "fp2", at.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}

	got, err = store.FindByFingerprint("fp1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != "new" {
		t.Errorf("expected the latest analysis of fp1, got %+v", got)
	}
}

func TestListAnalyses(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		ca := sampleAnalysis(id, "fp-"+id, at.Add(time.Duration(i)*time.Minute))
		if id == "b" {
			ca.Vertical = pagesnake.VerticalAdult
			ca.Flow.Type = pagesnake.FlowMultiStep
		}
		if err := store.SaveAnalysis(ca); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		rows, err := store.ListAnalyses(ListOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 3 || rows[0].ID != "c" || rows[2].ID != "a" {
			t.Errorf("unexpected order: %+v", rows)
		}
		if rows[0].Payload != "" {
			t.Error("listing should not load payloads")
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		rows, err := store.ListAnalyses(ListOptions{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].ID != "b" {
			t.Errorf("expected [b], got %+v", rows)
		}
	})

	t.Run("filters", func(t *testing.T) {
		rows, err := store.ListAnalyses(ListOptions{Vertical: string(pagesnake.VerticalAdult)})
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 || rows[0].ID != "b" {
			t.Errorf("vertical filter: got %+v", rows)
		}
		rows, err = store.ListAnalyses(ListOptions{FlowType: string(pagesnake.FlowSinglePage)})
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 {
			t.Errorf("flow filter: expected 2 rows, got %d", len(rows))
		}
	})
}

func TestDeleteAnalysis(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := store.SaveAnalysis(sampleAnalysis("a1", "fp1", at)); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteAnalysis("a1"); err != nil {
		t.Fatalf("DeleteAnalysis() error = %v", err)
	}
	if _, err := store.GetAnalysis("a1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteAnalysis("a1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}
