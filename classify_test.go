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
	"strings"
	"testing"
)

func TestClassifyVertical(t *testing.T) {
	tests := []struct {
		text string
		want Vertical
	}{
		{"Live webcams with nude models, xxx only", VerticalAdult},
		{"Discreet hookups with local singles", VerticalCasual},
		{"Sexy nude chat for casual dating with no strings", VerticalAdult},
		{"Our dating coach helps you write better profiles", VerticalMainstream},
		{"Radiant skin in 14 days", VerticalMainstream},
		{"", VerticalMainstream},
	}
	for _, tt := range tests {
		if got := classifyVertical(tt.text); got != tt.want {
			t.Errorf("classifyVertical(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestClassifyTone(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		persuasion []PersuasionElement
		want       Tone
	}{
		{"urgent", "Hurry, the sale ends tonight. Order now", nil, ToneUrgent},
		{"exclusive", "Enter our exclusive VIP members only club", nil, ToneExclusive},
		{"friendly", "Welcome! We'd love to have you, feel free to look around", nil, ToneFriendly},
		{"playful", "Wow, this is so fun and awesome", nil, TonePlayful},
		{"professional", "Enterprise platform with certified compliance", nil, ToneProfessional},
		{"no signal", "Radiant skin in 14 days", nil, ToneProfessional},
		{"tie goes to the earlier tone", "Exclusive offer, hurry", nil, ToneUrgent},
		{
			"persuasion boosts urgency",
			"Exclusive VIP access",
			[]PersuasionElement{{Type: PersuasionCountdown}, {Type: PersuasionScarcity}, {Type: PersuasionUrgency}},
			ToneUrgent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyTone(tt.text, tt.persuasion); got != tt.want {
				t.Errorf("classifyTone(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestCopyCorpusIncludesHeadlines(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><h1>Limited offer</h1><p>Body copy</p></body></html>`)
	corpus := copyCorpus(pd, ComponentMap{Headlines: []Headline{{Text: "Extra headline"}}})
	if got := classifyTone(corpus, nil); got != ToneUrgent {
		t.Errorf("tone of corpus = %s", got)
	}
	for _, want := range []string{"Body copy", "Extra headline"} {
		if !strings.Contains(corpus, want) {
			t.Errorf("corpus %q misses %q", corpus, want)
		}
	}
}
