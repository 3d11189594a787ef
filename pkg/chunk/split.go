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
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxUnitSize bounds a unit in bytes when the caller passes zero
const DefaultMaxUnitSize = 4000

// 🧩 Unit is one engine sized slice of a masked document. Leading+Text+Trailing
// of all units, in Position order, is exactly the masked text.
type Unit struct {
	Position    int
	Leading     string
	Text        string
	Trailing    string
	Tokens      []string // placeholders carried by Text
	Passthrough bool     // no prose, never sent to an engine
}

// Raw returns the unit including its surrounding whitespace
func (u Unit) Raw() string {
	return u.Leading + u.Text + u.Trailing
}

// ✂️ Split cuts the masked text at paragraph and heading boundaries and packs
// the pieces into units of at most maxSize bytes. Oversized paragraphs fall back
// to line and then rune boundaries, never cutting through a token.
func Split(m *Masked, maxSize int) []Unit {
	if maxSize <= 0 {
		maxSize = DefaultMaxUnitSize
	}

	var pieces []string
	for _, block := range blocks(m.Text) {
		if len(block) <= maxSize {
			pieces = append(pieces, block)
			continue
		}
		pieces = append(pieces, splitLines(block, maxSize)...)
	}

	var raws []string
	var cur strings.Builder
	for _, p := range pieces {
		if cur.Len() > 0 && cur.Len()+len(p) > maxSize {
			raws = append(raws, cur.String())
			cur.Reset()
		}
		cur.WriteString(p)
	}
	if cur.Len() > 0 {
		raws = append(raws, cur.String())
	}

	units := make([]Unit, 0, len(raws))
	for i, raw := range raws {
		units = append(units, newUnit(i, raw))
	}
	return units
}

func newUnit(pos int, raw string) Unit {
	text := strings.TrimLeftFunc(raw, unicode.IsSpace)
	leading := raw[:len(raw)-len(text)]
	body := strings.TrimRightFunc(text, unicode.IsSpace)
	trailing := text[len(body):]

	return Unit{
		Position:    pos,
		Leading:     leading,
		Text:        body,
		Trailing:    trailing,
		Tokens:      tokenRE.FindAllString(body, -1),
		Passthrough: !containsLetter(tokenRE.ReplaceAllString(body, "")),
	}
}

// blocks splits s into paragraphs, each keeping the blank lines that follow it.
// A heading line always starts a new block.
func blocks(s string) []string {
	var out []string
	var cur strings.Builder
	afterBlank := false
	for _, l := range strings.SplitAfter(s, "\n") {
		if l == "" {
			continue
		}
		blank := strings.TrimSpace(l) == ""
		if cur.Len() > 0 && !blank && (afterBlank || isHeading(l)) {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteString(l)
		afterBlank = blank
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func isHeading(line string) bool {
	t := strings.TrimLeft(line, " ")
	if len(line)-len(t) > 3 {
		return false
	}
	n := 0
	for n < len(t) && t[n] == '#' {
		n++
	}
	return n >= 1 && n <= 6 && (n == len(t) || t[n] == ' ' || t[n] == '\t' || t[n] == '\n' || t[n] == '\r')
}

func splitLines(block string, maxSize int) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for _, l := range strings.SplitAfter(block, "\n") {
		if l == "" {
			continue
		}
		if len(l) > maxSize {
			flush()
			out = append(out, splitLine(l, maxSize)...)
			continue
		}
		if cur.Len()+len(l) > maxSize {
			flush()
		}
		cur.WriteString(l)
	}
	flush()
	return out
}

func splitLine(l string, maxSize int) []string {
	var out []string
	for len(l) > 0 {
		cut := cutPoint(l, maxSize)
		out = append(out, l[:cut])
		l = l[cut:]
	}
	return out
}

// cutPoint prefers the last space before maxSize, stays on a rune boundary and
// moves out of any token it would land in
func cutPoint(s string, maxSize int) int {
	if len(s) <= maxSize {
		return len(s)
	}

	limit := maxSize
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	if i := strings.LastIndexAny(s[:limit], " \t"); i >= maxSize/2 {
		limit = i + 1
	}

	for _, loc := range tokenRE.FindAllStringIndex(s, -1) {
		if loc[0] >= limit {
			break
		}
		if limit < loc[1] {
			limit = loc[0]
			if limit == 0 {
				limit = loc[1]
			}
			break
		}
	}

	if limit == 0 {
		_, size := utf8.DecodeRuneInString(s)
		limit = size
	}
	return limit
}
