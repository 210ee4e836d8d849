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

package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentberlin/pagesnake"
)

func sampleAnalysis() *pagesnake.ComponentAnalysis {
	return &pagesnake.ComponentAnalysis{
		ID:        "a1",
		SourceURL: "https://lp.test/static",
		Title:     "Glow Serum",
		Flow: pagesnake.LPFlow{
			Type:      pagesnake.FlowSinglePage,
			Framework: pagesnake.FrameworkPAS,
		},
		Sections: []pagesnake.DetectedSection{
			{ID: "section-1", Type: pagesnake.SectionHero, Order: 1, Markdown: "# Tired of dull skin?"},
			{ID: "section-2", Type: pagesnake.SectionFAQ, Order: 2, Markdown: "## Questions"},
		},
		Links: []pagesnake.DetectedLink{
			{ID: "link-1", Type: pagesnake.LinkAffiliate, OriginalURL: "https://www.amazon.com/dp/B000TEST?tag=glow-20", AnchorText: "Get, My Serum", Confidence: 0.85},
		},
		Components: []pagesnake.AnalyzedComponent{
			{ID: "button-1", Kind: pagesnake.ComponentButton, Text: "Get My Serum", SectionID: "section-1"},
		},
		TrackingCodes: []pagesnake.TrackingCode{
			{ID: "tracking-1", Type: pagesnake.TrackingFacebookPixel, Vendor: "Facebook", ShouldReplace: true},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{analysis: sampleAnalysis(), outputDir: dir, format: "csv"}
	if err := e.Export(); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	links := readCSV(t, filepath.Join(dir, "a1_links.csv"))
	if len(links) != 2 {
		t.Fatalf("expected header and one link row, got %d rows", len(links))
	}
	if links[1][1] != "affiliate" || links[1][3] != "Get, My Serum" || links[1][6] != "0.85" {
		t.Errorf("unexpected link row %v", links[1])
	}

	components := readCSV(t, filepath.Join(dir, "a1_components.csv"))
	if len(components) != 2 || components[1][3] != "section-1" {
		t.Errorf("unexpected components %v", components)
	}

	tracking := readCSV(t, filepath.Join(dir, "a1_tracking.csv"))
	if len(tracking) != 2 || tracking[1][3] != "replace" {
		t.Errorf("unexpected tracking rows %v", tracking)
	}
}

func TestExportMarkdown(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{analysis: sampleAnalysis(), outputDir: dir, format: "md"}
	if err := e.Export(); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a1_page.md"))
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)
	if !strings.HasPrefix(md, "# Glow Serum\n") {
		t.Errorf("missing title heading: %q", md)
	}
	hero := strings.Index(md, "# Tired of dull skin?")
	faq := strings.Index(md, "## Questions")
	if hero < 0 || faq < 0 || hero > faq {
		t.Errorf("sections missing or out of order:\n%s", md)
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{analysis: sampleAnalysis(), outputDir: filepath.Join(dir, "nested"), format: "json"}
	if err := e.Export(); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nested", "a1_analysis.json"))
	if err != nil {
		t.Fatal(err)
	}
	var back pagesnake.ComponentAnalysis
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.ID != "a1" || len(back.Links) != 1 {
		t.Errorf("unexpected exported analysis %+v", back)
	}
}

func TestExportInvalidFormat(t *testing.T) {
	e := &Exporter{analysis: sampleAnalysis(), outputDir: t.TempDir(), format: "xml"}
	if err := e.Export(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("https://lp.test/a/very/long/path", 12); got != "https://l..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("Glöw", 10); got != "Glöw" {
		t.Errorf("short strings must be unchanged, got %q", got)
	}
}
