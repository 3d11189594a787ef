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
	"maps"
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚫 AssemblyError means a translated unit lost, duplicated or invented a placeholder
type AssemblyError struct {
	Position int
	Token    string
	Count    int // occurrences in the translation
	Want     int // occurrences in the source unit
}

func (e *AssemblyError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("unit %d: placeholder %s missing from translation", e.Position, e.Token)
	}
	return fmt.Sprintf("unit %d: placeholder %s appears %d times in translation, want %d", e.Position, e.Token, e.Count, e.Want)
}

// 🧵 Assemble joins translations in unit order, checks every unit kept exactly
// its own placeholders and restores the masked spans. Passthrough units keep
// their original text.
func Assemble(m *Masked, units []Unit, translations []string) (string, error) {
	if len(units) != len(translations) {
		return "", errors.Errorf("assembling: %d units but %d translations", len(units), len(translations))
	}

	var b strings.Builder
	for i, u := range units {
		text := u.Text
		if !u.Passthrough {
			text = strings.TrimSpace(translations[i])
			if err := checkTokens(u, text); err != nil {
				return "", err
			}
		}
		b.WriteString(u.Leading)
		b.WriteString(text)
		b.WriteString(u.Trailing)
	}

	return m.Restore(b.String()), nil
}

func checkTokens(u Unit, text string) error {
	counts := map[string]int{}
	for _, tok := range tokenRE.FindAllString(text, -1) {
		counts[tok]++
	}

	for _, tok := range u.Tokens {
		if counts[tok] != 1 {
			return &AssemblyError{Position: u.Position, Token: tok, Count: counts[tok], Want: 1}
		}
		delete(counts, tok)
	}
	if len(counts) > 0 {
		tok := slices.Sorted(maps.Keys(counts))[0]
		return &AssemblyError{Position: u.Position, Token: tok, Count: counts[tok], Want: 0}
	}
	return nil
}
