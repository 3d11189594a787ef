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

package selector

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🚫 SelectorError means the source tree could not be enumerated. It is fatal to the run.
type SelectorError struct {
	Path string
	Err  error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("selecting files under %s: %v", e.Path, e.Err)
}

func (e *SelectorError) Unwrap() error {
	return e.Err
}

// 🎯 Select walks root and returns the relative slash paths chosen by filter,
// in lexicographic order
func Select(ctx context.Context, root string, filter config.FilterArgs) ([]string, error) {
	return walk(ctx, root, func(rel string) bool {
		return Match(rel, filter)
	})
}

// 📦 Unselected returns every file under root that filter does not select
func Unselected(ctx context.Context, root string, filter config.FilterArgs) ([]string, error) {
	return walk(ctx, root, func(rel string) bool {
		return !Match(rel, filter)
	})
}

func walk(ctx context.Context, root string, keep func(rel string) bool) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", p, err)
		}
		rel = filepath.ToSlash(rel)

		if keep(rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, &SelectorError{Path: root, Err: err}
	}

	// WalkDir orders per directory, "a/b" would come before "a.md"
	slices.Sort(paths)

	logger.Debug().Str("root", root).Int("count", len(paths)).Msg("walked source tree")

	return paths, nil
}

// 🔍 Match reports whether rel is selected: it must match a target pattern,
// must not be under an exclude entry and, when include is set, must be under an
// include entry. Exclude always wins.
func Match(rel string, filter config.FilterArgs) bool {
	rel = normalize(rel)

	if underAny(rel, filter.Exclude) {
		return false
	}
	if len(filter.Include) > 0 && !underAny(rel, filter.Include) {
		return false
	}
	return matchesTarget(rel, filter.Target)
}

// matchesTarget matches base names for patterns without a slash, full paths otherwise
func matchesTarget(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		p = normalize(p)
		subject := rel
		if !strings.Contains(p, "/") {
			subject = base
		}
		if ok, _ := doublestar.Match(p, subject); ok {
			return true
		}
	}
	return false
}

// underAny treats plain entries as directory or file prefixes on segment
// boundaries and glob entries as patterns over the path or its parents. An
// entry without a slash matches any single segment, like a target pattern
// matches the base name.
func underAny(rel string, entries []string) bool {
	var segments []string
	for _, e := range entries {
		e = strings.Trim(normalize(e), "/")
		if e == "" {
			continue
		}

		if !strings.Contains(e, "/") {
			if segments == nil {
				segments = strings.Split(rel, "/")
			}
			if matchesSegment(e, segments) {
				return true
			}
			continue
		}

		if !hasMeta(e) {
			if rel == e || strings.HasPrefix(rel, e+"/") {
				return true
			}
			continue
		}

		if ok, _ := doublestar.Match(e, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(e+"/**", rel); ok {
			return true
		}
	}
	return false
}

func matchesSegment(e string, segments []string) bool {
	for _, seg := range segments {
		if seg == e {
			return true
		}
		if hasMeta(e) {
			if ok, _ := doublestar.Match(e, seg); ok {
				return true
			}
		}
	}
	return false
}

func normalize(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{\\")
}
