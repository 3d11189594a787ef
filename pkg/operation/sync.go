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

	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/pipeline"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Sync runs one pass. The summary is returned whenever the pipeline ran,
// including alongside a run level error.
func (op *operator) Sync(ctx context.Context) (*pipeline.Summary, error) {
	cfg := op.opts.Config
	logger := zerolog.Ctx(ctx).With().Str("repository", cfg.RepoName()).Logger()
	ctx = logger.WithContext(ctx)

	eng, err := op.engine(ctx)
	if err != nil {
		return nil, err
	}
	syncer, err := op.syncer(ctx)
	if err != nil {
		return nil, err
	}
	pub, err := op.publisher(ctx)
	if err != nil {
		return nil, err
	}

	var summary *pipeline.Summary
	err = op.withWorkspace(ctx, func(ws *workspace.Manager) error {
		src, err := syncer.Sync(ctx)
		if err != nil {
			return errors.Errorf("syncing repository: %w", err)
		}

		popts := pipeline.OptionsFromConfig(cfg)
		popts.Engine = eng
		popts.Workspace = ws
		popts.Force = op.opts.Force
		popts.Reporter = op.opts.Reporter
		if op.opts.Workers > 0 {
			popts.Workers = op.opts.Workers
		}

		summary, err = pipeline.New(popts).Run(ctx, src.Dir, src.Revision, cfg.Filter)
		if err != nil {
			return err
		}

		if pub == nil {
			return nil
		}
		changed := append(summary.Written(), summary.Mirrored...)
		if len(changed) == 0 {
			logger.Debug().Msg("nothing to publish")
			return nil
		}
		if err := pub.Publish(ctx, ws.OutputDir(), changed); err != nil {
			return errors.Errorf("publishing output: %w", err)
		}
		return nil
	})
	return summary, err
}
