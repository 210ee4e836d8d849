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
	"reflect"
	"testing"
)

func TestExtractForms(t *testing.T) {
	pd := parseTestDoc(t, `<html><body>
<form id="signup" action="/subscribe" method="post">
  <label for="email">Your email</label>
  <input id="email" type="email" name="email" required>
  <label>First name <input name="first"></label>
  <input name="phone" aria-label="Phone number" aria-required="true">
  <input name="zip" placeholder="ZIP code">
  <select name="plan"><option>Basic</option></select>
  <textarea name="note"></textarea>
  <input type="hidden" name="token" value="x">
  <input type="submit" value="Join now">
</form>
<form><input name="q"><button>Search</button></form>
</body></html>`)

	forms := ExtractForms(pd)
	if len(forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(forms))
	}

	signup := forms[0]
	if signup.ID != "form-1" || signup.Method != "POST" {
		t.Errorf("unexpected form header %+v", signup)
	}
	if signup.Action != testBaseURL+"/subscribe" {
		t.Errorf("action not resolved, got %q", signup.Action)
	}
	if signup.Selector != "#signup" {
		t.Errorf("unexpected selector %q", signup.Selector)
	}
	if signup.SubmitText != "Join now" {
		t.Errorf("unexpected submit text %q", signup.SubmitText)
	}

	want := []FormField{
		{Name: "email", Type: "email", Label: "Your email", Required: true},
		{Name: "first", Type: "text", Label: "First name"},
		{Name: "phone", Type: "text", Label: "Phone number", Required: true},
		{Name: "zip", Type: "text", Label: "ZIP code", Placeholder: "ZIP code"},
		{Name: "plan", Type: "select"},
		{Name: "note", Type: "textarea"},
	}
	if !reflect.DeepEqual(signup.Fields, want) {
		t.Errorf("fields mismatch:\n got %+v\nwant %+v", signup.Fields, want)
	}

	search := forms[1]
	if search.ID != "form-2" || search.Method != "GET" || search.Action != "" {
		t.Errorf("unexpected defaults %+v", search)
	}
	if search.SubmitText != "Search" {
		t.Errorf("typeless button should submit, got %q", search.SubmitText)
	}
}

func TestExtractFormsNone(t *testing.T) {
	pd := parseTestDoc(t, `<html><body><p>No forms</p></body></html>`)
	if forms := ExtractForms(pd); len(forms) != 0 {
		t.Errorf("expected no forms, got %d", len(forms))
	}
}
