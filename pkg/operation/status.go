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

package operation

import (
	"context"

	"github.com/walteh/autodocs/pkg/pipeline"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Status syncs the source so the listing reflects upstream, then compares
// it with the store. The engine is never built.
func (op *operator) Status(ctx context.Context) ([]pipeline.PlanItem, error) {
	syncer, err := op.syncer(ctx)
	if err != nil {
		return nil, err
	}

	var items []pipeline.PlanItem
	err = op.withWorkspace(ctx, func(ws *workspace.Manager) error {
		src, err := syncer.Sync(ctx)
		if err != nil {
			return errors.Errorf("syncing repository: %w", err)
		}
		items, err = pipeline.Plan(ctx, ws, src.Dir, op.opts.Config.Filter)
		return err
	})
	return items, err
}
