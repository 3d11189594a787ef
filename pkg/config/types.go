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

package config

import (
	"encoding/json"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🎯 Patterns is a set of glob patterns. It decodes from a list or from a
// single whitespace separated string such as "*.md *.txt".
type Patterns []string

// SplitPatterns splits a whitespace separated pattern string
func SplitPatterns(s string) Patterns {
	return Patterns(strings.Fields(s))
}

func (p *Patterns) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = SplitPatterns(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Errorf("patterns must be a string or a list of strings: %w", err)
	}
	*p = Patterns(list)
	return nil
}

func (p *Patterns) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*p = SplitPatterns(value.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return errors.Errorf("decoding pattern list: %w", err)
		}
		*p = Patterns(list)
		return nil
	default:
		return errors.Errorf("line %d: patterns must be a string or a list of strings", value.Line)
	}
}

// ⏱️ Duration decodes from strings like "90s" or "2m"
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Errorf("parsing duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}
