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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/pipeline"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner repeats Sync with a fixed delay between passes
type OperationRunner struct {
	logger   *zerolog.Logger
	interval time.Duration
	after    func(d time.Duration) <-chan time.Time
}

// 🏗️ NewRunner creates a new runner. A zero interval runs a single pass.
func NewRunner(logger *zerolog.Logger, interval time.Duration) *OperationRunner {
	return &OperationRunner{
		logger:   logger,
		interval: interval,
		after:    time.After,
	}
}

// 🏃 Run executes op until ctx is done, calling onPass after every pass.
//
// A pass that fails on a fatal engine error, or cannot take the workspace
// lock, does not stop the loop: the next pass may succeed once the cause is
// fixed. Config and auth errors surface immediately in single pass mode.
func (r *OperationRunner) Run(ctx context.Context, op Operator, onPass func(*pipeline.Summary, error)) error {
	for pass := 1; ; pass++ {
		summary, err := op.Sync(ctx)
		if onPass != nil {
			onPass(summary, err)
		}

		if r.interval <= 0 {
			return err
		}

		if err != nil {
			ev := r.logger.Error().Err(err).Int("pass", pass)
			if errors.Is(err, workspace.ErrLocked) {
				ev = r.logger.Warn().Err(err).Int("pass", pass)
			}
			ev.Bool("fatal", engine.IsFatal(err)).Msg("pass failed")
		}

		r.logger.Debug().Dur("interval", r.interval).Msg("waiting for next pass")
		select {
		case <-ctx.Done():
			r.logger.Info().Int("passes", pass).Msg("stopping")
			return nil
		case <-r.after(r.interval):
		}
	}
}
