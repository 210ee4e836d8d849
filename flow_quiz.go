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
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Signals of a quiz rendered by a client-side state machine
var (
	questionArrayPattern  = regexp.MustCompile(`\b(?:questionList|questions|quizQuestions|steps|questionsList|quizData)\s*[=:]\s*\[`)
	scriptObjectPattern   = regexp.MustCompile(`\{[^{}]*\}`)
	questionKeyPattern    = regexp.MustCompile(`["']?\b(?:question|englishQuestion)["']?\s*:`)
	titleKeyPattern       = regexp.MustCompile(`["']?\btitle["']?\s*:`)
	stepIndicatorPattern  = regexp.MustCompile(`(?i)\bstep\s+(\d{1,2})\s*(?:/|of)\s*(\d{1,2})\b`)
	questionNumberPattern = regexp.MustCompile(`(?i)\bquestion\s+(\d{1,2})(?:\s*(?:/|of)\s*(\d{1,2}))?\b`)
	stateVariablePattern  = regexp.MustCompile(`\b(?:activeIndex|currentStep|stepIndex|questionIndex)\b`)
	stepHandlerPattern    = regexp.MustCompile(`\b(?:yesNoHandler|nextStep|prevStep|goToStep|handleNext)\b`)
	questionTextPattern   = regexp.MustCompile(`["']?\b(?:question|englishQuestion)["']?\s*:\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)'|` + "`([^`]*)`)")
	continueButtonPattern = regexp.MustCompile(`(?i)\b(?:continue|next|start|begin|yes|get started)\b`)
)

// quizDetection is the outcome of the JavaScript multi-step scan
type quizDetection struct {
	signals       QuizSignals
	questionTexts []string
	steps         int
	multiStep     bool
	scriptText    string
}

// inlineScriptText concatenates every inline script body
func inlineScriptText(pd *ParsedDocument) string {
	var b strings.Builder
	pd.Document().Find("script").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && strings.TrimSpace(src) != "" {
			return
		}
		typ := attrLower(s, "type")
		if typ == "application/ld+json" || typ == "application/json" || typ == "text/template" {
			return
		}
		b.WriteString(s.Text())
		b.WriteByte('\n')
	})
	return b.String()
}

// detectQuiz looks for a quiz whose steps exist only in script. Step count
// precedence: question objects, then distinct question texts, then the
// largest "step N/M" indicator.
func detectQuiz(pd *ParsedDocument) quizDetection {
	script := inlineScriptText(pd)
	q := quizDetection{scriptText: script}

	q.signals.QuestionArray = questionArrayPattern.MatchString(script)

	for _, obj := range scriptObjectPattern.FindAllString(script, -1) {
		switch {
		case questionKeyPattern.MatchString(obj):
			q.signals.QuestionObjects++
		case q.signals.QuestionArray && titleKeyPattern.MatchString(obj):
			// title-keyed objects only count inside a question array
			q.signals.QuestionObjects++
		}
	}

	text := extractAllText(pd)
	for _, m := range stepIndicatorPattern.FindAllStringSubmatch(text, -1) {
		if n, _ := strconv.Atoi(m[2]); n > q.signals.StepIndicatorMax {
			q.signals.StepIndicatorMax = n
		}
	}
	// A bare "Question N" also numbers FAQ entries; only "N/M" counts steps
	for _, m := range questionNumberPattern.FindAllStringSubmatch(text, -1) {
		q.signals.QuestionNumbered = true
		if m[2] == "" {
			continue
		}
		if n, _ := strconv.Atoi(m[2]); n > q.signals.StepIndicatorMax {
			q.signals.StepIndicatorMax = n
		}
	}

	q.signals.StateVariable = stateVariablePattern.MatchString(script)
	q.signals.StepHandler = stepHandlerPattern.MatchString(script)

	seen := make(map[string]bool)
	for _, m := range questionTextPattern.FindAllStringSubmatch(script, -1) {
		t := normalizeWhitespace(unescapeJSString(m[1] + m[2] + m[3]))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		q.questionTexts = append(q.questionTexts, t)
	}
	q.signals.QuestionTexts = len(q.questionTexts)

	switch {
	case q.signals.QuestionObjects > 0:
		q.steps = q.signals.QuestionObjects
	case q.signals.QuestionTexts > 0:
		q.steps = q.signals.QuestionTexts
	default:
		q.steps = q.signals.StepIndicatorMax
	}
	q.multiStep = q.steps >= 2 ||
		(q.signals.StepHandler && (q.signals.StateVariable || q.signals.QuestionNumbered))
	return q
}

// unescapeJSString undoes the common escapes of a JS string literal
func unescapeJSString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	r := strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\n`, " ", `\t`, " ", `\\`, `\`, "\\`", "`")
	return r.Replace(s)
}

// quizStagePurpose maps stage i of n: first attention, last action, the
// middle split between interest and desire.
func quizStagePurpose(i, n int) StagePurpose {
	switch {
	case i == 0:
		return PurposeAttention
	case i == n-1:
		return PurposeAction
	case i <= (n-1)/2:
		return PurposeInterest
	default:
		return PurposeDesire
	}
}

// quizFlow builds the synthetic flow of a script-driven quiz
func quizFlow(pd *ParsedDocument, q quizDetection, components ComponentMap) LPFlow {
	n := q.steps
	if n < 2 {
		n = 2
	}

	stages := make([]FlowStage, 0, n)
	for i := 0; i < n; i++ {
		stage := FlowStage{
			Order:        i + 1,
			SectionID:    "step-" + strconv.Itoa(i+1),
			SectionType:  SectionForm,
			Purpose:      quizStagePurpose(i, n),
			HasCTAButton: true,
		}
		if i < len(q.questionTexts) {
			stage.KeyMessage = q.questionTexts[i]
		}
		stages = append(stages, stage)
	}

	primary := "Continue"
	for _, b := range components.Buttons {
		if continueButtonPattern.MatchString(b.Text) {
			primary = b.Text
			break
		}
	}

	count, texts := ctaOccurrences(pd)
	if count < n {
		count = n
	}
	signals := q.signals

	messaging := append([]string{}, q.questionTexts...)
	return LPFlow{
		Type:      FlowMultiStep,
		Stages:    stages,
		Framework: FrameworkCustom,
		CTAStrategy: CTAStrategy{
			PrimaryCTA:       primary,
			PrimaryTargetURL: resolvePrimaryTargetURL(pd, q.scriptText),
			Frequency:        CTAProgressive,
			CTACount:         count,
			CTATexts:         texts,
		},
		MessagingFlow: messaging,
		DetectedBy:    "js-quiz",
		QuizSignals:   &signals,
	}
}
