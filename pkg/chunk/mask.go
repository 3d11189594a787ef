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
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/walteh/autodocs/pkg/selector"
)

const tokenOpen = "⟦"

var tokenRE = regexp.MustCompile(`⟦P(\d+)⟧`)

// 🏷️ Token returns the placeholder for span n
func Token(n int) string {
	return fmt.Sprintf("⟦P%d⟧", n)
}

// DefaultTranslatableKeys are the front matter and data keys whose values are prose
var DefaultTranslatableKeys = []string{"title", "description", "summary"}

// ⚙️ Options tunes masking
type Options struct {
	TranslatableKeys []string
}

// 🎭 Masked is a document with every non-translatable span replaced by a token.
// Each token in Text appears exactly once and maps to the original bytes.
type Masked struct {
	Text  string
	spans []string
}

// Tokens lists the placeholders present in the masked text, in order
func (m *Masked) Tokens() []string {
	return tokenRE.FindAllString(m.Text, -1)
}

// 🔄 Restore swaps every known token in s for its original span in one pass
func (m *Masked) Restore(s string) string {
	if !strings.Contains(s, tokenOpen) {
		return s
	}
	return tokenRE.ReplaceAllStringFunc(s, func(tok string) string {
		if span, ok := m.span(tok); ok {
			return span
		}
		return tok
	})
}

func (m *Masked) span(tok string) (string, bool) {
	sub := tokenRE.FindStringSubmatch(tok)
	if sub == nil {
		return "", false
	}
	n, err := strconv.Atoi(sub[1])
	if err != nil || n >= len(m.spans) {
		return "", false
	}
	return m.spans[n], true
}

var (
	htmlCommentRE = regexp.MustCompile(`(?s)<!--.*?-->`)
	inlineCodeRE  = regexp.MustCompile("``[^`\n][^\n]*?``|`[^`\n]+`")
	linkTargetRE  = regexp.MustCompile(`\](\([^)\n]*\))`)
	refUseRE      = regexp.MustCompile(`\](\[[^\]\n]*\])`)
	refDefRE      = regexp.MustCompile(`(?m)^[ ]{0,3}\[[^\]\n]+\]:[ \t]+\S.*$`)
	bareURLRE     = regexp.MustCompile("(?:https?|ftp)://[^\\s<>()\\[\\]\"'`⟦⟧]+|mailto:[^\\s<>()\\[\\]\"'`⟦⟧]+")
	htmlTagRE     = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(?:\s[^<>\n]*)?/?>`)

	keyValueRE = map[selector.Kind]*regexp.Regexp{
		selector.KindTOML: regexp.MustCompile(`^(\s*"?([A-Za-z0-9_.-]+)"?\s*=\s*")((?:[^"\\]|\\.)*)("\s*(?:#.*)?)$`),
		selector.KindYAML: regexp.MustCompile(`^(\s*(?:-\s+)?([A-Za-z0-9_.-]+)\s*:[ \t]+["']?)(.*?)(["']?[ \t]*)$`),
		selector.KindJSON: regexp.MustCompile(`^(\s*"([^"\\]+)"\s*:\s*")((?:[^"\\]|\\.)*)("\s*,?\s*)$`),
	}
)

// 🎭 Mask replaces code, links, markup and structural keys with tokens.
// Any "⟦" already in the content is masked first so Restore is unambiguous.
func Mask(content string, kind selector.Kind, opts Options) *Masked {
	keys := opts.TranslatableKeys
	if keys == nil {
		keys = DefaultTranslatableKeys
	}
	m := &masker{keys: map[string]bool{}}
	for _, k := range keys {
		m.keys[strings.ToLower(k)] = true
	}

	text := m.escape(content)

	switch {
	case kind.Structured():
		text = m.structured(text, kind)
		text = m.replace(text, bareURLRE, 0)
	case kind == selector.KindMarkdown:
		text = m.frontMatter(text)
		text = m.fences(text)
		text = m.replace(text, htmlCommentRE, 0)
		text = m.replace(text, inlineCodeRE, 0)
		text = m.replace(text, refDefRE, 0)
		text = m.replace(text, linkTargetRE, 1)
		text = m.replace(text, refUseRE, 1)
		text = m.replace(text, bareURLRE, 0)
		text = m.replace(text, htmlTagRE, 0)
	default:
		text = m.replace(text, bareURLRE, 0)
	}

	return &Masked{Text: text, spans: m.spans}
}

type masker struct {
	spans []string
	keys  map[string]bool
}

// token records orig, expanding any tokens nested inside it, and returns its placeholder
func (m *masker) token(orig string) string {
	orig = m.expand(orig)
	m.spans = append(m.spans, orig)
	return Token(len(m.spans) - 1)
}

func (m *masker) expand(s string) string {
	if !strings.Contains(s, tokenOpen) {
		return s
	}
	return tokenRE.ReplaceAllStringFunc(s, func(tok string) string {
		sub := tokenRE.FindStringSubmatch(tok)
		n, err := strconv.Atoi(sub[1])
		if err != nil || n >= len(m.spans) {
			return tok
		}
		return m.spans[n]
	})
}

func (m *masker) escape(s string) string {
	if !strings.Contains(s, tokenOpen) {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(s, tokenOpen)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(m.token(tokenOpen))
		s = s[i+len(tokenOpen):]
	}
}

// replace masks the given capture group of every match of re
func (m *masker) replace(s string, re *regexp.Regexp, group int) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[2*group], loc[2*group+1]
		if start < 0 || start == end {
			continue
		}
		if tokenRE.FindString(s[start:end]) == s[start:end] {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(m.token(s[start:end]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// fences masks fenced code blocks, from the opening fence line through the closing one
func (m *masker) fences(s string) string {
	lines := strings.SplitAfter(s, "\n")

	var b strings.Builder
	for i := 0; i < len(lines); i++ {
		marker, ok := fenceOpen(lines[i])
		if !ok {
			b.WriteString(lines[i])
			continue
		}

		j := i + 1
		for ; j < len(lines); j++ {
			if fenceClose(lines[j], marker) {
				break
			}
		}
		if j >= len(lines) {
			j = len(lines) - 1
		}

		body, nl := splitNewline(strings.Join(lines[i:j+1], ""))
		b.WriteString(m.token(body))
		b.WriteString(nl)
		i = j
	}
	return b.String()
}

func fenceOpen(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return "", false
	}
	for _, c := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == c {
			n++
		}
		if n >= 3 {
			return trimmed[:n], true
		}
	}
	return "", false
}

func fenceClose(line, marker string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(marker) {
		return false
	}
	return strings.Trim(trimmed, marker[:1]) == ""
}

// frontMatter masks a leading YAML (---) or TOML (+++) block, keeping translatable values
func (m *masker) frontMatter(s string) string {
	var delim string
	var kind selector.Kind
	switch {
	case strings.HasPrefix(s, "---\n"), strings.HasPrefix(s, "---\r\n"):
		delim, kind = "---", selector.KindYAML
	case strings.HasPrefix(s, "+++\n"), strings.HasPrefix(s, "+++\r\n"):
		delim, kind = "+++", selector.KindTOML
	default:
		return s
	}

	lines := strings.SplitAfter(s, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		t := strings.TrimRight(lines[i], "\r\n")
		if t == delim || (delim == "---" && t == "...") {
			end = i
			break
		}
	}
	if end < 0 {
		return s
	}

	var b strings.Builder
	b.WriteString(m.line(lines[0]))
	for _, l := range lines[1:end] {
		b.WriteString(m.structuredLine(l, kind))
	}
	b.WriteString(m.line(lines[end]))
	b.WriteString(strings.Join(lines[end+1:], ""))
	return b.String()
}

func (m *masker) structured(s string, kind selector.Kind) string {
	var b strings.Builder
	for _, l := range strings.SplitAfter(s, "\n") {
		b.WriteString(m.structuredLine(l, kind))
	}
	return b.String()
}

// structuredLine masks a whole key/value line unless its key is translatable,
// in which case only the value is left as prose
func (m *masker) structuredLine(line string, kind selector.Kind) string {
	body, nl := splitNewline(line)
	if strings.TrimSpace(body) == "" {
		return line
	}

	if re, ok := keyValueRE[kind]; ok {
		if loc := re.FindStringSubmatchIndex(body); loc != nil {
			key := body[loc[4]:loc[5]]
			vs, ve := loc[6], loc[7]
			if m.keys[strings.ToLower(key)] && ve > vs && containsLetter(body[vs:ve]) {
				out := m.token(body[:vs]) + body[vs:ve]
				if ve < len(body) {
					out += m.token(body[ve:])
				}
				return out + nl
			}
		}
	}

	return m.token(body) + nl
}

func (m *masker) line(l string) string {
	body, nl := splitNewline(l)
	if body == "" {
		return nl
	}
	return m.token(body) + nl
}

func splitNewline(s string) (string, string) {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2], "\r\n"
	}
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1], "\n"
	}
	return s, ""
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
