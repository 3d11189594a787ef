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

	"github.com/walteh/autodocs/pkg/config"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/pipeline"
	"github.com/walteh/autodocs/pkg/publish"
	"github.com/walteh/autodocs/pkg/repository"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

// 🎮 Operator runs the commands of one configuration
type Operator interface {
	// Sync runs one translation pass: sync the source, translate what changed, publish
	Sync(ctx context.Context) (*pipeline.Summary, error)
	// Status lists what Sync would translate without calling the engine
	Status(ctx context.Context) ([]pipeline.PlanItem, error)
	// Clean removes the output tree and the entry store
	Clean(ctx context.Context) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the validated run configuration
	Config *config.Config
	// Engine overrides the configured backend
	Engine engine.Engine
	// Syncer overrides the configured repository provider
	Syncer repository.Syncer
	// Publisher overrides the configured publish target
	Publisher publish.Publisher
	// Reporter receives candidate results
	Reporter pipeline.Reporter
	// Force retranslates files whose source did not change
	Force bool
	// Workers overrides translation.workers when positive
	Workers int
}

// 🎮 operator implements the Operator interface
type operator struct {
	opts Options
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	return &operator{opts: opts}, nil
}

func (op *operator) syncer(ctx context.Context) (repository.Syncer, error) {
	if op.opts.Syncer != nil {
		return op.opts.Syncer, nil
	}
	cfg := op.opts.Config
	return repository.New(ctx, cfg.Repository, cfg.SourceDir())
}

func (op *operator) engine(ctx context.Context) (engine.Engine, error) {
	if op.opts.Engine != nil {
		return op.opts.Engine, nil
	}
	return engine.FromConfig(ctx, op.opts.Config)
}

func (op *operator) publisher(ctx context.Context) (publish.Publisher, error) {
	if op.opts.Publisher != nil {
		return op.opts.Publisher, nil
	}
	return publish.New(ctx, op.opts.Config.Publish)
}

// withWorkspace holds the run lock and an open store for the duration of fn
func (op *operator) withWorkspace(ctx context.Context, fn func(ws *workspace.Manager) error) (err error) {
	cfg := op.opts.Config

	lock, err := workspace.AcquireLock(ctx, cfg.LockPath(), cfg.Workspace.StaleLock.Std())
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lock.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	store, err := workspace.OpenStore(ctx, cfg.Workspace.Store, cfg.StorePath())
	if err != nil {
		return errors.Errorf("opening workspace store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing workspace store: %w", cerr)
		}
	}()

	ws := workspace.New(workspace.Options{
		OutputDir: cfg.OutputDir(),
		Store:     store,
		Engine:    cfg.Engine.Name,
		Model:     cfg.Engine.Model,
	})
	return fn(ws)
}
