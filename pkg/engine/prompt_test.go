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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/autodocs/pkg/selector"
)

func TestSystemPrompt(t *testing.T) {
	auto := SystemPrompt(Request{SourceLang: "auto", TargetLang: "English", Kind: selector.KindMarkdown})
	assert.Contains(t, auto, "Detect the source language")
	assert.Contains(t, auto, "into English")
	assert.Contains(t, auto, "⟦P0⟧", "placeholder rule should be stated")
	assert.Contains(t, auto, "markdown file")

	fixed := SystemPrompt(Request{SourceLang: "Chinese", TargetLang: "English"})
	assert.Contains(t, fixed, "from Chinese into English")
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"plain":                      "plain",
		"  padded \n":                "padded",
		"```\nfenced\n```":           "fenced",
		"```markdown\n# Title\n```\n": "# Title",
		"```inline```":               "```inline```",
		"``````":                     "``````",
	}
	for in, want := range tests {
		assert.Equal(t, want, Clean(in), "clean %q", in)
	}
}
