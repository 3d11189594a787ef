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

package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/autodocs/pkg/selector"
	"gitlab.com/tozd/go/errors"
)

// bt lets fixtures use ^ where markdown needs a backtick
func bt(s string) string {
	return strings.ReplaceAll(s, "^", "`")
}

var markdownDoc = bt(`---
title: "Getting Started"
layout: docs
weight: 3
---

# Hello world

Install with ^cargo install mdbook^ and read https://rust-lang.github.io/mdBook/.

^^^rust
fn main() {
    println!("Hello world");
}
^^^

See the [guide](./guide.md "Guide") or [the book][book].

<!-- do not translate -->
<img src="logo.png" alt="Logo">

Literal ⟦P0⟧ marker stays.

[book]: https://doc.rust-lang.org/book/
`)

var fixtures = []struct {
	name    string
	kind    selector.Kind
	content string
}{
	{"markdown", selector.KindMarkdown, markdownDoc},
	{"markdown_crlf", selector.KindMarkdown, strings.ReplaceAll(markdownDoc, "\n", "\r\n")},
	{"markdown_unterminated_fence", selector.KindMarkdown, bt("Intro text\n\n^^^\ncode forever\nmore code")},
	{"markdown_no_trailing_newline", selector.KindMarkdown, "# Title\n\nSome prose without newline"},
	{"toml_front_matter", selector.KindMarkdown, "+++\ntitle = \"Hi\"\ndate = 2024-01-01\n+++\n\nBody text.\n"},
	{"toml", selector.KindTOML, "[book]\ntitle = \"The Book\"\nauthors = [\"Someone\"]\ndescription = \"A guide \\\"quoted\\\"\"\n"},
	{"yaml", selector.KindYAML, "site:\n  title: Docs site\n  url: https://example.com\n  summary: 'Short summary'\n"},
	{"json", selector.KindJSON, "{\n  \"title\": \"Hello there\",\n  \"id\": \"x\"\n}\n"},
	{"text", selector.KindText, "Plain text with https://example.com/x?y=1 inside.\r\n\r\nSecond paragraph.\r\n"},
	{"empty", selector.KindMarkdown, ""},
	{"only_whitespace", selector.KindMarkdown, "\n\n  \n"},
	{"long_paragraph", selector.KindMarkdown, bt(strings.Repeat("word ^code^ https://x.io/a ", 40)) + "\n"},
	{"unicode", selector.KindMarkdown, strings.Repeat("Übersetzung für Dokumentation mit Umlauten äöü. ", 30)},
}

func TestMaskSplitAssembleRoundTrip(t *testing.T) {
	for _, fx := range fixtures {
		for _, size := range []int{24, 64, 300, 0} {
			t.Run(fmt.Sprintf("%s_%d", fx.name, size), func(t *testing.T) {
				m := Mask(fx.content, fx.kind, Options{})
				units := Split(m, size)

				var raw strings.Builder
				var tokens []string
				for i, u := range units {
					assert.Equal(t, i, u.Position, "positions should be sequential")
					raw.WriteString(u.Raw())
					tokens = append(tokens, u.Tokens...)
				}
				require.Equal(t, m.Text, raw.String(), "units should partition the masked text")
				assert.Equal(t, m.Tokens(), tokens, "no token should be split across units")

				identity := make([]string, len(units))
				for i, u := range units {
					identity[i] = u.Text
				}
				out, err := Assemble(m, units, identity)
				require.NoError(t, err, "assembling identity translations should succeed")
				assert.Equal(t, fx.content, out, "round trip should be byte identical")
			})
		}
	}
}

func TestMaskMarkdown(t *testing.T) {
	m := Mask(markdownDoc, selector.KindMarkdown, Options{})

	for _, hidden := range []string{"cargo install", "println", "https://", "./guide.md", "layout", "weight", "logo.png", "do not translate", "[book]:"} {
		assert.NotContains(t, m.Text, hidden, "%q should be masked", hidden)
	}
	for _, prose := range []string{"Getting Started", "# Hello world", "Install with", "See the [guide]", "Literal", "marker stays."} {
		assert.Contains(t, m.Text, prose, "%q should stay translatable", prose)
	}

	assert.Equal(t, markdownDoc, m.Restore(m.Text), "restore should undo masking")
}

func TestMaskStructured(t *testing.T) {
	m := Mask("title = \"The Book\"\nsrc = \"src\"\n", selector.KindTOML, Options{})
	assert.Contains(t, m.Text, "The Book", "title value should be prose")
	assert.NotContains(t, m.Text, "src", "other keys should be masked")

	custom := Mask("heading: Welcome\ntitle: Kept\n", selector.KindYAML, Options{TranslatableKeys: []string{"heading"}})
	assert.Contains(t, custom.Text, "Welcome", "custom key should be prose")
	assert.NotContains(t, custom.Text, "Kept", "title should be masked when not listed")
}

func TestPreexistingTokenText(t *testing.T) {
	content := "Use ⟦P1⟧ and ⟦P0⟧ literally, even ⟦ alone."
	m := Mask(content, selector.KindText, Options{})
	assert.Len(t, m.Tokens(), 3, "every ⟦ should be masked")
	assert.Equal(t, content, m.Restore(m.Text), "literal markers should survive restore")
}

func TestSplit(t *testing.T) {
	t.Run("heading_starts_block", func(t *testing.T) {
		m := Mask("# A\ntext\n# B\nmore\n", selector.KindMarkdown, Options{})
		units := Split(m, 12)
		require.Len(t, units, 2, "each section should become a unit")
		assert.Equal(t, "# A\ntext", units[0].Text)
		assert.Equal(t, "\n", units[0].Trailing)
		assert.Equal(t, "# B\nmore", units[1].Text)
	})

	t.Run("packs_paragraphs", func(t *testing.T) {
		m := Mask("one\n\ntwo\n\nthree\n", selector.KindMarkdown, Options{})
		units := Split(m, 4000)
		require.Len(t, units, 1, "small paragraphs should share a unit")
		assert.Equal(t, "one\n\ntwo\n\nthree", units[0].Text)
	})

	t.Run("respects_max_size", func(t *testing.T) {
		m := Mask(strings.Repeat("alpha beta gamma delta. ", 50), selector.KindText, Options{})
		units := Split(m, 40)
		require.Greater(t, len(units), 1, "long text should be split")
		for _, u := range units {
			assert.LessOrEqual(t, len(u.Raw()), 40, "unit %d should fit", u.Position)
		}
	})

	t.Run("passthrough_for_code_only", func(t *testing.T) {
		m := Mask(bt("^^^\ncode\n^^^\n\nProse here.\n"), selector.KindMarkdown, Options{})
		units := Split(m, 12)
		require.Len(t, units, 2)
		assert.True(t, units[0].Passthrough, "code block unit should pass through")
		assert.False(t, units[1].Passthrough, "prose unit should be translated")
	})
}

func TestAssemble(t *testing.T) {
	content := bt("Hello ^x^ world.\n\nSecond https://a.b line.\n")
	m := Mask(content, selector.KindMarkdown, Options{})
	units := Split(m, 24)
	require.Len(t, units, 2)

	t.Run("translated_prose_keeps_spans", func(t *testing.T) {
		translated := []string{
			strings.Replace(units[0].Text, "Hello", "Hallo", 1) + "\n",
			strings.Replace(units[1].Text, "Second", "Zweite", 1),
		}
		out, err := Assemble(m, units, translated)
		require.NoError(t, err)
		assert.Equal(t, bt("Hallo ^x^ world.\n\nZweite https://a.b line.\n"), out)
	})

	tests := []struct {
		name  string
		first string
		count int
		want  int
	}{
		{"missing_token", "Hallo Welt.", 0, 1},
		{"duplicated_token", units[0].Text + " " + units[0].Tokens[0], 2, 1},
		{"invented_token", units[0].Text + " " + Token(99), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(m, units, []string{tt.first, units[1].Text})
			require.Error(t, err)
			var aerr *AssemblyError
			require.True(t, errors.As(err, &aerr), "error should be an AssemblyError")
			assert.Equal(t, 0, aerr.Position)
			assert.Equal(t, tt.count, aerr.Count)
			assert.Equal(t, tt.want, aerr.Want)
		})
	}

	t.Run("length_mismatch", func(t *testing.T) {
		_, err := Assemble(m, units, []string{"only one"})
		assert.Error(t, err)
	})
}
