// Copyright 2025 walteh LLC
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

package engine

import (
	"fmt"
	"strings"
)

// 💬 SystemPrompt tells a chat model how to treat a unit
func SystemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are a professional technical translator working on software documentation.\n")
	if req.SourceLang == "" || req.SourceLang == "auto" {
		fmt.Fprintf(&b, "Detect the source language and translate the text into %s.\n", req.TargetLang)
	} else {
		fmt.Fprintf(&b, "Translate the text from %s into %s.\n", req.SourceLang, req.TargetLang)
	}
	b.WriteString("Keep the markup and line structure exactly as given.\n")
	b.WriteString("Tokens of the form ⟦P0⟧ are placeholders: copy each one unchanged, exactly once, and never add new ones.\n")
	if req.Kind != "" {
		fmt.Fprintf(&b, "The text comes from a %s file.\n", req.Kind)
	}
	b.WriteString("Reply with the translated text only, without commentary or code fences.")
	return b.String()
}

// UserPrompt is the unit text as sent to the model
func UserPrompt(req Request) string {
	return req.Text
}

// 🧹 Clean strips a code fence a model wrapped around its reply
func Clean(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	inner := s[nl+1 : len(s)-3]
	return strings.TrimSpace(inner)
}
