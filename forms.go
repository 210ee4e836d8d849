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
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
)

// skippedInputTypes never become form fields
var skippedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

// ExtractForms recovers every form with its fields and submission target.
// Labels come from <label for>, a wrapping <label>, aria-label, or the
// placeholder, in that order.
func ExtractForms(pd *ParsedDocument) []Form {
	labels := labelsByFor(pd)

	var forms []Form
	pd.Document().Find("form").Each(func(i int, s *goquery.Selection) {
		form := Form{
			ID:       "form-" + strconv.Itoa(i+1),
			Selector: buildSelector(s),
			Method:   strings.ToUpper(strings.TrimSpace(attrLower(s, "method"))),
			Fields:   []FormField{},
		}
		if form.Method == "" {
			form.Method = "GET"
		}
		if action, ok := s.Attr("action"); ok && strings.TrimSpace(action) != "" {
			form.Action = pd.ResolveURL(action)
		}

		s.Find("input, select, textarea").Each(func(_ int, in *goquery.Selection) {
			typ := goquery.NodeName(in)
			if typ == "input" {
				typ = attrLower(in, "type")
				if typ == "" {
					typ = "text"
				}
			}
			if skippedInputTypes[typ] {
				return
			}

			field := FormField{Type: typ}
			field.Name, _ = in.Attr("name")
			if field.Name == "" {
				field.Name, _ = in.Attr("id")
			}
			field.Placeholder, _ = in.Attr("placeholder")
			_, field.Required = in.Attr("required")
			if attrLower(in, "aria-required") == "true" {
				field.Required = true
			}
			field.Label = fieldLabel(in, labels)
			if field.Label == "" {
				field.Label = field.Placeholder
			}
			form.Fields = append(form.Fields, field)
		})

		form.SubmitText = submitText(s)
		forms = append(forms, form)
	})
	return forms
}

// labelsByFor maps input ids to the text of <label for="..."> elements
func labelsByFor(pd *ParsedDocument) map[string]string {
	labels := make(map[string]string)
	root := pd.Root()
	if root == nil {
		return labels
	}
	for _, n := range htmlquery.Find(root, "//label[@for]") {
		id := htmlquery.SelectAttr(n, "for")
		text := normalizeWhitespace(htmlquery.InnerText(n))
		if id != "" && text != "" {
			if _, ok := labels[id]; !ok {
				labels[id] = text
			}
		}
	}
	return labels
}

func fieldLabel(in *goquery.Selection, labels map[string]string) string {
	if id, ok := in.Attr("id"); ok {
		if label := labels[id]; label != "" {
			return label
		}
	}
	if wrap := in.Closest("label"); wrap.Length() > 0 {
		if text := normalizeWhitespace(wrap.Text()); text != "" {
			return text
		}
	}
	if aria, ok := in.Attr("aria-label"); ok {
		return normalizeWhitespace(aria)
	}
	return ""
}

func submitText(form *goquery.Selection) string {
	submit := form.Find(`button[type=submit], input[type=submit], input[type=image]`).First()
	if submit.Length() == 0 {
		// A <button> without type submits the form
		submit = form.Find("button").FilterFunction(func(_ int, b *goquery.Selection) bool {
			t := attrLower(b, "type")
			return t == "" || t == "submit"
		}).First()
	}
	if submit.Length() == 0 {
		return ""
	}
	if goquery.NodeName(submit) == "input" {
		v, _ := submit.Attr("value")
		if v == "" {
			v, _ = submit.Attr("alt")
		}
		return normalizeWhitespace(v)
	}
	return normalizeWhitespace(submit.Text())
}
