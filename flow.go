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
	"regexp"
	"strings"
)

const (
	videoSalesMaxSections = 5
	longFormMinSections   = 9
	maxKeyMessageRunes    = 160
	defaultPrimaryCTA     = "Get Started"
)

var (
	problemPattern        = regexp.MustCompile(`(?i)\b(?:problems?|struggl\w*|tired of|sick of|frustrat\w*|pain(?:ful)?|suffer\w*|worr(?:y|ied|ying)|stuck|can'?t|hard to|difficult|fail\w*|mistakes?|losing|embarrass\w*)\b`)
	transformationPattern = regexp.MustCompile(`(?i)\bbefore\b.*\bafter\b|\btransform\w*|\bimagine\b|\bwhat if\b|\bfrom\b.+\bto\b.+\bin \d+|\bnew you\b|\bresults?\b.*\bdays?\b`)
	multiStepSelector     = `[class*=step], [class*=progress], [class*=wizard], [data-step]`
)

// sectionPurposes maps section types to the funnel purpose they usually serve.
// Types missing here (and the position-dependent gallery/video) fall back to
// positional assignment.
var sectionPurposes = map[SectionType]StagePurpose{
	SectionHeader:       PurposeAttention,
	SectionHero:         PurposeAttention,
	SectionFeatures:     PurposeInterest,
	SectionBenefits:     PurposeInterest,
	SectionTestimonials: PurposeTrust,
	SectionSocialProof:  PurposeTrust,
	SectionPricing:      PurposeAction,
	SectionCTA:          PurposeAction,
	SectionForm:         PurposeAction,
	SectionFAQ:          PurposeObjectionHandling,
	SectionFooter:       PurposeTrust,
}

// defaultFlow is the fully populated flow used when nothing is detected
func defaultFlow() LPFlow {
	return LPFlow{
		Type:      FlowSinglePage,
		Stages:    []FlowStage{},
		Framework: FrameworkCustom,
		CTAStrategy: CTAStrategy{
			PrimaryCTA: defaultPrimaryCTA,
			Frequency:  CTASingle,
			CTATexts:   []string{},
		},
		MessagingFlow: []string{},
		DetectedBy:    "structure",
	}
}

// DetectFlow reconstructs the funnel. A quiz driven by script short-circuits
// the structural analysis.
func DetectFlow(pd *ParsedDocument, sections []PageSection, components ComponentMap, persuasion []PersuasionElement) LPFlow {
	if q := detectQuiz(pd); q.multiStep {
		return quizFlow(pd, q, components)
	}

	flow := defaultFlow()
	flow.Type = structuralFlowType(pd, sections, components)
	flow.Stages = buildStages(sections, components)
	flow.Framework = inferFramework(flow.Stages, persuasion)
	flow.CTAStrategy = buildCTAStrategy(pd, components)

	seen := make(map[string]bool)
	for _, st := range flow.Stages {
		if st.KeyMessage != "" && !seen[st.KeyMessage] {
			seen[st.KeyMessage] = true
			flow.MessagingFlow = append(flow.MessagingFlow, st.KeyMessage)
		}
	}
	return flow
}

func structuralFlowType(pd *ParsedDocument, sections []PageSection, components ComponentMap) FlowType {
	if len(sections) <= videoSalesMaxSections {
		early := make(map[string]bool)
		for i, s := range sections {
			if i == videoSalesMaxSections {
				break
			}
			if s.Type == SectionVideo {
				return FlowVideoSales
			}
			early[s.ID] = true
		}
		for _, v := range components.Videos {
			if early[v.SectionID] {
				return FlowVideoSales
			}
		}
	}

	doc := pd.Document()
	if doc.Find(multiStepSelector).Length() > 0 || doc.Find("form").Length() > 1 {
		return FlowMultiStep
	}
	if len(sections) >= longFormMinSections {
		return FlowLongForm
	}
	return FlowSinglePage
}

// positionalPurpose splits the page into quarters
func positionalPurpose(i, n int) StagePurpose {
	if n <= 0 {
		return PurposeAttention
	}
	switch q := i * 4 / n; q {
	case 0:
		return PurposeAttention
	case 1:
		return PurposeInterest
	case 2:
		return PurposeDesire
	default:
		return PurposeAction
	}
}

func stagePurpose(s PageSection, i, n int) StagePurpose {
	switch s.Type {
	case SectionGallery, SectionVideo:
		if i*2 < n {
			return PurposeInterest
		}
		return PurposeDesire
	}
	if p, ok := sectionPurposes[s.Type]; ok {
		return p
	}
	return positionalPurpose(i, n)
}

func buildStages(sections []PageSection, components ComponentMap) []FlowStage {
	messages := make(map[string]string)
	note := func(sectionID, text string) {
		if sectionID == "" || text == "" {
			return
		}
		if _, ok := messages[sectionID]; !ok {
			messages[sectionID] = truncate(text, maxKeyMessageRunes)
		}
	}
	for _, h := range components.Headlines {
		note(h.SectionID, h.Text)
	}
	for _, h := range components.Subheadlines {
		note(h.SectionID, h.Text)
	}
	for _, p := range components.Paragraphs {
		note(p.SectionID, p.Text)
	}

	hasCTA := make(map[string]bool)
	for _, b := range components.Buttons {
		if b.Type == ButtonCTA || b.Type == ButtonSubmit {
			hasCTA[b.SectionID] = true
		}
	}
	for _, f := range components.Forms {
		hasCTA[f.SectionID] = true
	}

	stages := make([]FlowStage, 0, len(sections))
	for i, s := range sections {
		stages = append(stages, FlowStage{
			Order:        i + 1,
			SectionID:    s.ID,
			SectionType:  s.Type,
			Purpose:      stagePurpose(s, i, len(sections)),
			HasCTAButton: hasCTA[s.ID],
			KeyMessage:   messages[s.ID],
		})
	}
	return stages
}

// inferFramework prefers PAS over AIDA; BAB is checked after AIDA
func inferFramework(stages []FlowStage, persuasion []PersuasionElement) Framework {
	pressure := false
	for _, p := range persuasion {
		if p.Type == PersuasionUrgency || p.Type == PersuasionScarcity {
			pressure = true
			break
		}
	}

	purposes := make(map[StagePurpose]bool)
	problem, transformation := false, false
	for _, st := range stages {
		purposes[st.Purpose] = true
		if problemPattern.MatchString(st.KeyMessage) {
			problem = true
		}
		if transformationPattern.MatchString(st.KeyMessage) {
			transformation = true
		}
	}

	switch {
	case problem && pressure:
		return FrameworkPAS
	case purposes[PurposeAttention] && purposes[PurposeInterest] && purposes[PurposeDesire] && purposes[PurposeAction]:
		return FrameworkAIDA
	case transformation && purposes[PurposeAction]:
		return FrameworkBAB
	}
	return FrameworkCustom
}

func buildCTAStrategy(pd *ParsedDocument, components ComponentMap) CTAStrategy {
	strategy := CTAStrategy{
		PrimaryCTA: defaultPrimaryCTA,
		Frequency:  CTASingle,
		CTATexts:   []string{},
	}
	for _, b := range components.Buttons {
		if b.Type == ButtonCTA || b.Type == ButtonSubmit {
			strategy.PrimaryCTA = b.Text
			strategy.PrimaryTargetURL = b.Href
			break
		}
	}
	if strings.HasPrefix(strategy.PrimaryTargetURL, "#") || strategy.PrimaryTargetURL == "" {
		strategy.PrimaryTargetURL = resolvePrimaryTargetURL(pd, inlineScriptText(pd))
	}

	count, texts := ctaOccurrences(pd)
	strategy.CTACount = count
	strategy.CTATexts = texts
	strategy.Frequency = ctaFrequency(count, len(texts))
	return strategy
}
