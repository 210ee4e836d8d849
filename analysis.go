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
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/agentberlin/pagesnake/internal/platform"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// analysisNamespace scopes the name-based analysis IDs
var analysisNamespace = uuid.MustParse("6f1c7a52-3b0e-5d8a-9c41-2e7f0b6d4a19")

// AnalysisID returns the deterministic analysis ID of a document fingerprint
func AnalysisID(fingerprint string) string {
	return uuid.NewSHA1(analysisNamespace, []byte(fingerprint)).String()
}

// Analyzer runs the extraction pipeline over loaded documents. It is safe
// for concurrent use.
type Analyzer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewAnalyzer creates an Analyzer logging to cfg.Logger
func NewAnalyzer(cfg *Config) *Analyzer {
	merged := mergeConfig(cfg)
	return &Analyzer{logger: merged.Logger, now: time.Now}
}

// SetClock replaces the clock used for CreatedAt/UpdatedAt
func (a *Analyzer) SetClock(now func() time.Time) {
	a.now = now
}

// AnalyzePage runs the extractors. Text, links, tracking codes and forms
// are independent readers of the document and run concurrently; the rest
// runs in dependency order.
func (a *Analyzer) AnalyzePage(ctx context.Context, pd *ParsedDocument) (*PageAnalysis, error) {
	pa, _, _, err := a.analyzePage(ctx, pd)
	return pa, err
}

func (a *Analyzer) analyzePage(ctx context.Context, pd *ParsedDocument) (*PageAnalysis, *sectionIndex, map[string]SectionType, error) {
	if pd == nil {
		return nil, nil, nil, ErrEmptyInput
	}
	pa := &PageAnalysis{
		SourceURL:   pd.SourceURL,
		Title:       pd.Title,
		Description: pd.Description,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pa.TextBlocks = ExtractTextBlocks(pd)
		return gctx.Err()
	})
	g.Go(func() error {
		pa.Links = DetectLinks(pd)
		return gctx.Err()
	})
	g.Go(func() error {
		pa.TrackingCodes = DetectTrackingCodes(pd)
		return gctx.Err()
	})
	g.Go(func() error {
		pa.Forms = ExtractForms(pd)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	sections, ix := detectSections(pd)
	sectionTypes := make(map[string]SectionType, len(sections))
	for _, s := range sections {
		sectionTypes[s.ID] = s.Type
	}
	pa.Sections = sections
	pa.Components = extractComponents(pd, pa.Forms, ix, sectionTypes)
	pa.Forms = pa.Components.Forms
	pa.Persuasion = DetectPersuasion(pd)
	pa.Style = ExtractStyle(pd)
	pa.Flow = DetectFlow(pd, pa.Sections, pa.Components, pa.Persuasion)

	a.logger.Debug("page analyzed",
		"source", pd.SourceURL,
		"sections", len(pa.Sections),
		"links", len(pa.Links),
		"tracking", len(pa.TrackingCodes),
		"flow", pa.Flow.Type)
	return pa, ix, sectionTypes, ctx.Err()
}

// Analyze runs the full pipeline and assembles the self-describing result.
// Two runs over the same document differ only in their timestamps.
func (a *Analyzer) Analyze(ctx context.Context, pd *ParsedDocument) (*ComponentAnalysis, error) {
	pa, ix, sectionTypes, err := a.analyzePage(ctx, pd)
	if err != nil {
		return nil, err
	}

	fingerprint, err := ComputeFingerprint(pd.HTML(), DefaultFingerprintConfig())
	if err != nil {
		a.logger.Warn("fingerprint fell back to raw hash", "source", pd.SourceURL, "error", err)
		fingerprint = fmt.Sprintf("%016x", xxhash.Sum64String(pd.HTML()))
	}

	corpus := copyCorpus(pd, pa.Components)
	now := a.now().UTC()
	ca := &ComponentAnalysis{
		ID:             AnalysisID(fingerprint),
		CreatedAt:      now,
		UpdatedAt:      now,
		SourceURL:      pd.SourceURL,
		Title:          pd.Title,
		Description:    pd.Description,
		Fingerprint:    fingerprint,
		Platform:       string(platform.NewDetector().Detect(pd.HTML(), pd.Resources)),
		Components:     flattenComponents(pa.Components),
		Flow:           pa.Flow,
		Vertical:       classifyVertical(corpus),
		Tone:           classifyTone(corpus, pa.Persuasion),
		TrackingURL:    trackingURL(pa.Flow, pa.Links),
		Images:         detectImages(pd, pa.Components, ix, sectionTypes),
		OriginalImages: originalImages(pd),
		Style:          pa.Style,
		Persuasion:     pa.Persuasion,
		Links:          pa.Links,
		TrackingCodes:  pa.TrackingCodes,
		TextBlocks:     pa.TextBlocks,
		Forms:          pa.Forms,
	}
	ca.Sections = detectedSections(pa.Sections, pa.Flow, ca.Components)
	ca.StrategySummary = strategySummary(ca, pa)
	return ca, nil
}

// BatchResult is the outcome of one document of AnalyzeBatch
type BatchResult struct {
	Analysis *ComponentAnalysis
	Err      error
}

// AnalyzeBatch analyzes documents on a bounded pool of workers. Results
// are returned in input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, docs []*ParsedDocument, workers int) []BatchResult {
	results := make([]BatchResult, len(docs))
	pool := newWorkerPool(ctx, workers, len(docs))
	for i, pd := range docs {
		if err := pool.submit(func() {
			results[i].Analysis, results[i].Err = a.Analyze(ctx, pd)
		}); err != nil {
			results[i].Err = err
		}
	}
	pool.close()

	for i := range results {
		if results[i].Analysis == nil && results[i].Err == nil {
			results[i].Err = ctx.Err()
		}
	}
	return results
}

// flattenComponents lists every component in selector-stable bucket order
func flattenComponents(cm ComponentMap) []AnalyzedComponent {
	var out []AnalyzedComponent
	for _, h := range cm.Headlines {
		role := "headline"
		if h.IsMainHeadline {
			role = "main"
		}
		out = append(out, AnalyzedComponent{ID: h.ID, Kind: ComponentHeadline, Role: role, Text: h.Text, Selector: h.Selector, SectionID: h.SectionID})
	}
	for _, s := range cm.Subheadlines {
		out = append(out, AnalyzedComponent{ID: s.ID, Kind: ComponentSubheadline, Text: s.Text, Selector: s.Selector, SectionID: s.SectionID})
	}
	for _, p := range cm.Paragraphs {
		out = append(out, AnalyzedComponent{ID: p.ID, Kind: ComponentParagraph, Text: p.Text, Selector: p.Selector, SectionID: p.SectionID})
	}
	for _, b := range cm.Buttons {
		out = append(out, AnalyzedComponent{ID: b.ID, Kind: ComponentButton, Role: string(b.Type), Text: b.Text, URL: b.Href, Selector: b.Selector, SectionID: b.SectionID})
	}
	for _, img := range cm.Images {
		out = append(out, AnalyzedComponent{ID: img.ID, Kind: ComponentImage, Role: string(img.Role), Text: img.Alt, URL: img.Src, Selector: img.Selector, SectionID: img.SectionID})
	}
	for _, f := range cm.Forms {
		out = append(out, AnalyzedComponent{ID: f.ID, Kind: ComponentForm, Role: f.Method, Text: f.SubmitText, URL: f.Action, Selector: f.Selector, SectionID: f.SectionID})
	}
	for _, l := range cm.Lists {
		out = append(out, AnalyzedComponent{ID: l.ID, Kind: ComponentList, Role: string(l.Type), Text: strings.Join(l.Items, "\n"), Selector: l.Selector, SectionID: l.SectionID})
	}
	for _, v := range cm.Videos {
		out = append(out, AnalyzedComponent{ID: v.ID, Kind: ComponentVideo, Role: string(v.Type), URL: v.Src, Selector: v.Selector, SectionID: v.SectionID})
	}
	if out == nil {
		out = []AnalyzedComponent{}
	}
	return out
}

// detectedSections attaches stage purposes and component IDs to the sections
func detectedSections(sections []PageSection, flow LPFlow, components []AnalyzedComponent) []DetectedSection {
	purposes := make(map[string]StagePurpose)
	for _, st := range flow.Stages {
		purposes[st.SectionID] = st.Purpose
	}
	owned := make(map[string][]string)
	headline := make(map[string]string)
	for _, c := range components {
		if c.SectionID == "" {
			continue
		}
		owned[c.SectionID] = append(owned[c.SectionID], c.ID)
		if c.Kind == ComponentHeadline && headline[c.SectionID] == "" {
			headline[c.SectionID] = c.Text
		}
	}

	out := make([]DetectedSection, 0, len(sections))
	for i, s := range sections {
		purpose, ok := purposes[s.ID]
		if !ok {
			purpose = stagePurpose(s, i, len(sections))
		}
		ids := owned[s.ID]
		if ids == nil {
			ids = []string{}
		}
		out = append(out, DetectedSection{
			ID:           s.ID,
			Type:         s.Type,
			Order:        s.Order,
			Selector:     s.Selector,
			HTML:         s.HTML,
			Markdown:     s.Markdown,
			TextLength:   s.TextLength,
			DetectedBy:   s.DetectedBy,
			Purpose:      purpose,
			Headline:     headline[s.ID],
			ComponentIDs: ids,
		})
	}
	return out
}

// trackingURL is the funnel exit: the flow's primary target, else the first
// affiliate, tracking or redirect link.
func trackingURL(flow LPFlow, links []DetectedLink) string {
	if u := flow.CTAStrategy.PrimaryTargetURL; u != "" {
		return u
	}
	for _, want := range []LinkType{LinkAffiliate, LinkTracking, LinkRedirect} {
		for _, l := range links {
			if l.Type == want {
				return l.OriginalURL
			}
		}
	}
	return ""
}

// strategySummary is a one-paragraph, deterministic description of the page
func strategySummary(ca *ComponentAnalysis, pa *PageAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s page", ca.Vertical, ca.Flow.Type)
	if ca.Platform != string(platform.PlatformOther) {
		fmt.Fprintf(&b, " built with %s", ca.Platform)
	}
	fmt.Fprintf(&b, " in a %s tone with %d sections", ca.Tone, len(ca.Sections))
	if ca.Flow.Framework != FrameworkCustom {
		fmt.Fprintf(&b, " following %s", ca.Flow.Framework)
	}
	b.WriteString(". ")

	fmt.Fprintf(&b, "Primary CTA %q repeats %d time(s) (%s)", ca.Flow.CTAStrategy.PrimaryCTA, ca.Flow.CTAStrategy.CTACount, ca.Flow.CTAStrategy.Frequency)
	if ca.TrackingURL != "" {
		fmt.Fprintf(&b, " and exits to %s", ca.TrackingURL)
	}
	b.WriteString(".")

	if len(pa.Persuasion) > 0 {
		counts := make(map[PersuasionType]int)
		for _, p := range pa.Persuasion {
			counts[p.Type]++
		}
		types := make([]string, 0, len(counts))
		for t := range counts {
			types = append(types, string(t))
		}
		sort.Slice(types, func(i, j int) bool {
			ci, cj := counts[PersuasionType(types[i])], counts[PersuasionType(types[j])]
			if ci != cj {
				return ci > cj
			}
			return types[i] < types[j]
		})
		if len(types) > 3 {
			types = types[:3]
		}
		fmt.Fprintf(&b, " Leans on %s.", strings.Join(types, ", "))
	}
	if n := len(pa.TrackingCodes); n > 0 {
		fmt.Fprintf(&b, " %d tracking code(s) to replace or remove.", n)
	}
	return b.String()
}
