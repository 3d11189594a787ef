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

package pipeline

import (
	"context"
	"slices"

	"github.com/walteh/autodocs/pkg/config"
	"github.com/walteh/autodocs/pkg/selector"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

// Change says why a selected file would or would not be translated
type Change string

const (
	ChangeNew       Change = "new"
	ChangeModified  Change = "modified"
	ChangeUnchanged Change = "unchanged"
	ChangeOrphaned  Change = "orphaned" // stored but no longer selected
)

// PlanItem is one line of a dry run
type PlanItem struct {
	Path   string
	Kind   selector.Kind
	Change Change
}

// 🔍 Plan reports what Run would do without calling the engine or writing anything
func Plan(ctx context.Context, ws *workspace.Manager, root string, filter config.FilterArgs) ([]PlanItem, error) {
	paths, err := selector.Select(ctx, root, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PlanItem, 0, len(paths))
	for _, rel := range paths {
		c, err := selector.Load(root, rel)
		if err != nil {
			return nil, err
		}

		e, ok, err := ws.Store().Get(ctx, rel)
		if err != nil {
			return nil, errors.Errorf("looking up %s: %w", rel, err)
		}

		change := ChangeNew
		switch {
		case ok && e.Hash == c.Hash:
			change = ChangeUnchanged
		case ok:
			change = ChangeModified
		}
		items = append(items, PlanItem{Path: rel, Kind: c.Kind, Change: change})
	}

	entries, err := ws.Store().List(ctx)
	if err != nil {
		return nil, errors.Errorf("listing entries: %w", err)
	}
	for _, e := range entries {
		if _, found := slices.BinarySearch(paths, e.Path); !found {
			items = append(items, PlanItem{Path: e.Path, Kind: selector.DetectKind(e.Path), Change: ChangeOrphaned})
		}
	}

	return items, nil
}
