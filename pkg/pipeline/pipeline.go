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
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/config"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/selector"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ⚙️ Options configures a Pipeline
type Options struct {
	Engine           engine.Engine
	Workspace        *workspace.Manager
	SourceLang       string
	TargetLang       string
	MaxUnitSize      int
	Concurrency      int // engine calls in flight across all candidates
	Workers          int // candidates processed at once
	TranslatableKeys []string
	Force            bool // ignore stored hashes
	CopyUnselected   bool
	Reporter         Reporter
}

// OptionsFromConfig fills the translation settings of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SourceLang:       cfg.Translation.SourceLanguage,
		TargetLang:       cfg.Translation.TargetLanguage,
		MaxUnitSize:      cfg.Translation.MaxUnitSize,
		Concurrency:      cfg.Translation.Concurrency,
		Workers:          cfg.Translation.Workers,
		TranslatableKeys: cfg.Translation.TranslatableKeys,
		CopyUnselected:   cfg.Workspace.CopyUnselected,
	}
}

// 📣 Reporter follows a run: Start once with the number of selected
// candidates, then Report as each one completes. Report may be called
// concurrently.
type Reporter interface {
	Start(runID string, total int)
	Report(r Result)
}

type nopReporter struct{}

func (nopReporter) Start(string, int) {}
func (nopReporter) Report(Result)     {}

// 🏭 Pipeline runs candidates through an engine into a workspace
type Pipeline struct {
	opts Options
	sem  *semaphore.Weighted
}

func New(opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = config.DefaultWorkers
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = config.DefaultConcurrency
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	return &Pipeline{opts: opts, sem: newSemaphore(opts.Concurrency)}
}

// 🚀 Run selects candidates under root and translates every one that changed
// since its last successful commit.
//
// Candidate failures are recorded in the summary and do not stop the run. A
// fatal engine error cancels the run: pending candidates are not started and
// nothing more is committed. The returned error is only set for run level
// failures, and the summary is returned with it when one exists.
func (p *Pipeline) Run(ctx context.Context, root, revision string, filter config.FilterArgs) (*Summary, error) {
	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	summary := &Summary{RunID: runID, Revision: revision, Started: time.Now()}
	defer func() { summary.Duration = time.Since(summary.Started) }()

	paths, err := selector.Select(ctx, root, filter)
	if err != nil {
		return summary, err
	}
	logger.Info().Int("selected", len(paths)).Str("root", root).Msg("starting translation run")
	p.opts.Reporter.Start(runID, len(paths))

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i, rel := range paths {
		results[i] = Result{Path: rel, Status: StatusNotRun}
		if runCtx.Err() != nil {
			continue
		}
		g.Go(func() error {
			results[i] = p.candidate(runCtx, cancel, root, rel)
			p.opts.Reporter.Report(results[i])
			return nil
		})
	}
	_ = g.Wait()
	summary.Results = results

	if cause := context.Cause(runCtx); cause != nil {
		if engine.IsFatal(cause) {
			logger.Error().Err(cause).Msg("run aborted")
			return summary, errors.Errorf("run aborted: %w", cause)
		}
		return summary, errors.Errorf("run cancelled: %w", cause)
	}

	pruned, err := p.prune(ctx, root, paths)
	summary.Pruned = pruned
	if err != nil {
		return summary, err
	}

	if p.opts.CopyUnselected {
		mirrored, err := p.mirror(ctx, root, filter)
		summary.Mirrored = mirrored
		if err != nil {
			return summary, err
		}
	}

	if revision != "" {
		if err := p.opts.Workspace.SetRevision(ctx, revision); err != nil {
			return summary, errors.Errorf("recording revision: %w", err)
		}
	}

	logger.Info().
		Int("skipped", summary.Count(StatusSkipped)).
		Int("succeeded", summary.Count(StatusSucceeded)).
		Int("failed", summary.Count(StatusFailed)).
		Int("pruned", len(summary.Pruned)).
		Msg("translation run finished")

	return summary, nil
}

func (p *Pipeline) candidate(ctx context.Context, cancel context.CancelCauseFunc, root, rel string) Result {
	res := Result{Path: rel, Status: StatusNotRun}
	if ctx.Err() != nil {
		return res
	}

	c, err := selector.Load(root, rel)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}

	if !p.opts.Force {
		skip, err := p.opts.Workspace.ShouldSkip(ctx, c)
		if err != nil {
			res.Status, res.Err = StatusFailed, err
			return res
		}
		if skip {
			res.Status = StatusSkipped
			return res
		}
	}

	out := p.Process(ctx, c)
	res.Units = out.Units
	if out.Err != nil {
		if engine.IsFatal(out.Err) {
			cancel(out.Err)
		}
		if ctx.Err() != nil && !engine.IsFatal(out.Err) && errors.Is(out.Err, context.Canceled) {
			return res
		}
		res.Status, res.Err = StatusFailed, out.Err
		return res
	}

	// nothing is committed once the run is cancelled
	if ctx.Err() != nil {
		return res
	}

	written, err := p.opts.Workspace.Commit(ctx, c, out.Output)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	res.Status, res.Written = StatusSucceeded, written
	return res
}

// prune drops entries whose source is gone or no longer selected, along with
// their output. Files that copy_unselected will mirror keep their output path.
func (p *Pipeline) prune(ctx context.Context, root string, selected []string) ([]string, error) {
	entries, err := p.opts.Workspace.Store().List(ctx)
	if err != nil {
		return nil, errors.Errorf("listing entries: %w", err)
	}

	var pruned []string
	for _, e := range entries {
		if _, found := slices.BinarySearch(selected, e.Path); found {
			continue
		}

		keep := false
		if p.opts.CopyUnselected {
			_, err := os.Stat(filepath.Join(root, filepath.FromSlash(e.Path)))
			keep = err == nil
		}

		if _, err := p.opts.Workspace.Prune(ctx, e.Path, keep); err != nil {
			return pruned, err
		}
		pruned = append(pruned, e.Path)
	}
	return pruned, nil
}

func (p *Pipeline) mirror(ctx context.Context, root string, filter config.FilterArgs) ([]string, error) {
	paths, err := selector.Unselected(ctx, root, filter)
	if err != nil {
		return nil, err
	}

	var mirrored []string
	for _, rel := range paths {
		written, err := p.opts.Workspace.Mirror(ctx, root, rel)
		if err != nil {
			return mirrored, err
		}
		if written {
			mirrored = append(mirrored, rel)
		}
	}
	return mirrored, nil
}
