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

// minVerticalHits is how many keyword hits a vertical needs before it wins
// over mainstream
const minVerticalHits = 2

var (
	adultKeywords  = regexp.MustCompile(`(?i)\b(?:xxx|porn\w*|nude[sz]?|naked|nsfw|sex(?:y|ual)?|milfs?|horny|erotic\w*|fetish\w*|cams?girls?|webcams?|adults? only|explicit)\b`)
	casualKeywords = regexp.MustCompile(`(?i)\b(?:hook ?ups?|casual (?:dating|encounters?|fun)|no strings|discreet|affairs?|flings?|one[- ]night|flirt\w*|singles? near|local singles|meet (?:singles|women|men|girls)|dating)\b`)
)

// toneRule scores one tone by keyword hits in the copy
type toneRule struct {
	tone    Tone
	pattern *regexp.Regexp
}

// toneRules are listed in tie-break order
var toneRules = []toneRule{
	{ToneUrgent, regexp.MustCompile(`(?i)\b(?:now|today|hurry|limited|last chance|ends? (?:soon|tonight|today)|act fast|don'?t miss|only \d+ left|expires?|immediately|before it'?s gone)\b`)},
	{ToneSeductive, regexp.MustCompile(`(?i)\b(?:desire|passion\w*|tempt\w*|seduc\w*|intimate|naughty|sensual|secret fantas\w*|irresistible|crave)\b`)},
	{ToneExclusive, regexp.MustCompile(`(?i)\b(?:exclusive\w*|vip|invit(?:e|ation)[- ]only|members? only|elite|premium|private access|hand[- ]picked|select few)\b`)},
	{TonePlayful, regexp.MustCompile(`(?i)\b(?:fun|awesome|wow|yay|oops|cool|crazy|epic|lol|woo+|boom)\b|!{2,}|[\x{1F300}-\x{1FAFF}]`)},
	{ToneFriendly, regexp.MustCompile(`(?i)\b(?:welcome|we'?re here|happy to|we'?d love|feel free|friendly|together|our community|hello|hey there)\b`)},
	{ToneCasual, regexp.MustCompile(`(?i)\b(?:hey|gonna|wanna|kinda|stuff|guys|folks|chill|easy peasy|no biggie|y'all)\b`)},
	{ToneProfessional, regexp.MustCompile(`(?i)\b(?:solutions?|enterprise|industry[- ]leading|roi|compliance|platform|professional\w*|expertise|certified|integrat\w*|optimi[sz]\w*|workflow)\b`)},
}

// classifyVertical counts adult and casual-dating keywords in the copy. Adult
// is checked first.
func classifyVertical(text string) Vertical {
	switch {
	case len(adultKeywords.FindAllStringIndex(text, -1)) >= minVerticalHits:
		return VerticalAdult
	case len(casualKeywords.FindAllStringIndex(text, -1)) >= minVerticalHits:
		return VerticalCasual
	}
	return VerticalMainstream
}

// classifyTone picks the tone with the most keyword hits. Urgency and
// countdown elements add to the urgent score. No hits means professional.
func classifyTone(text string, persuasion []PersuasionElement) Tone {
	best, bestScore := ToneProfessional, 0
	for _, rule := range toneRules {
		score := len(rule.pattern.FindAllStringIndex(text, -1))
		if rule.tone == ToneUrgent {
			for _, p := range persuasion {
				switch p.Type {
				case PersuasionUrgency, PersuasionCountdown, PersuasionScarcity:
					score++
				}
			}
		}
		if score > bestScore {
			best, bestScore = rule.tone, score
		}
	}
	return best
}

// copyCorpus joins the filtered copy with the headline texts. Headlines are
// repeated since they carry most of the voice.
func copyCorpus(pd *ParsedDocument, components ComponentMap) string {
	var b strings.Builder
	b.WriteString(extractCopyText(pd))
	for _, h := range components.Headlines {
		b.WriteByte('\n')
		b.WriteString(h.Text)
	}
	return b.String()
}
