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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/chunk"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/selector"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// 📦 Outcome is the result of translating one candidate. Output is only set
// when every unit succeeded.
type Outcome struct {
	Path   string
	Output []byte
	Units  int
	Sent   int // units dispatched to the engine
	Err    error
}

// UnitError ties an engine failure to the unit that caused it
type UnitError struct {
	Position int
	Err      error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %d: %v", e.Position, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// 🔄 Process masks, splits and translates c, then reassembles it. Units are
// dispatched concurrently, each holding a slot of the pipeline wide semaphore.
// Any unit failure fails the whole candidate and no output is produced.
func (p *Pipeline) Process(ctx context.Context, c selector.Candidate) Outcome {
	logger := zerolog.Ctx(ctx).With().Str("path", c.Path).Logger()

	if len(c.Content) == 0 {
		return Outcome{Path: c.Path, Output: c.Content}
	}

	m := chunk.Mask(string(c.Content), c.Kind, chunk.Options{TranslatableKeys: p.opts.TranslatableKeys})
	units := chunk.Split(m, p.opts.MaxUnitSize)

	translations := make([]string, len(units))
	errs := make([]error, len(units))

	g, gctx := errgroup.WithContext(ctx)
	sent := 0
	for i, u := range units {
		if u.Passthrough {
			continue
		}
		if err := p.sem.Acquire(gctx, 1); err != nil {
			// a sibling unit failed or the run was cancelled
			errs[i] = err
			break
		}
		sent++

		g.Go(func() error {
			defer p.sem.Release(1)

			out, err := p.opts.Engine.Translate(gctx, engine.Request{
				Text:       u.Text,
				SourceLang: p.opts.SourceLang,
				TargetLang: p.opts.TargetLang,
				Kind:       c.Kind,
				Tokens:     u.Tokens,
			})
			if err != nil {
				errs[i] = err
				return err
			}
			translations[i] = out
			return nil
		})
	}
	_ = g.Wait()

	outcome := Outcome{Path: c.Path, Units: len(units), Sent: sent}

	if err := firstError(errs); err != nil {
		logger.Debug().Err(err).Int("units", len(units)).Msg("candidate failed")
		outcome.Err = err
		return outcome
	}

	out, err := chunk.Assemble(m, units, translations)
	if err != nil {
		outcome.Err = errors.Errorf("assembling %s: %w", c.Path, err)
		return outcome
	}

	logger.Debug().Int("units", len(units)).Int("sent", sent).Msg("candidate translated")
	outcome.Output = []byte(out)
	return outcome
}

// firstError prefers the lowest positioned real failure over the context
// errors its cancellation caused in sibling units
func firstError(errs []error) error {
	var fallback error
	for i, err := range errs {
		if err == nil {
			continue
		}
		wrapped := &UnitError{Position: i, Err: err}
		if errors.Is(err, context.Canceled) {
			if fallback == nil {
				fallback = wrapped
			}
			continue
		}
		return wrapped
	}
	return fallback
}

// 🧰 pipeline wide unit semaphore
func newSemaphore(n int) *semaphore.Weighted {
	if n <= 0 {
		n = 1
	}
	return semaphore.NewWeighted(int64(n))
}
