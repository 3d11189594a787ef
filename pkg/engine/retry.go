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

package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
	DefaultMaxDelay    = 30 * time.Second
)

// 🔁 Policy controls how failed requests are retried
type Policy struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	AttemptTimeout time.Duration // zero means no per attempt bound
	Sleep          func(ctx context.Context, d time.Duration) error
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	if p.Sleep == nil {
		p.Sleep = sleep
	}
	return p
}

func (p Policy) backoff(attempt int, hint time.Duration) time.Duration {
	d := p.BaseDelay << (attempt - 1)
	if d <= 0 || d > p.MaxDelay {
		d = p.MaxDelay
	}
	if hint > d {
		d = min(hint, p.MaxDelay)
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type retrying struct {
	next   Engine
	policy Policy
}

// 🔁 Retrying wraps e so transient failures are retried.
//
// Auth failures return at once. A malformed reply is retried a single time.
// Rate limits, timeouts and unavailability back off exponentially up to
// MaxAttempts. A request already in flight is not interrupted by
// cancellation of ctx; cancellation is checked before each attempt.
func Retrying(e Engine, p Policy) Engine {
	return &retrying{next: e, policy: p.withDefaults()}
}

func (r *retrying) Name() string {
	return r.next.Name()
}

func (r *retrying) Translate(ctx context.Context, req Request) (string, error) {
	logger := zerolog.Ctx(ctx)

	var last error
	malformedRetried := false
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if last != nil {
				return "", errors.Errorf("cancelled after %d attempts: %w", attempt-1, errors.Join(err, last))
			}
			return "", err
		}

		out, err := r.attempt(ctx, req)
		if err == nil {
			return out, nil
		}
		last = err

		kind := KindOf(err)
		retry := false
		switch kind {
		case KindRateLimited, KindTimeout, KindUnavailable:
			retry = true
		case KindMalformedResponse:
			retry = !malformedRetried
			malformedRetried = true
		}
		if !retry || attempt == r.policy.MaxAttempts {
			break
		}

		var hint time.Duration
		var eerr *Error
		if errors.As(err, &eerr) {
			hint = eerr.RetryAfter
		}
		wait := r.policy.backoff(attempt, hint)

		logger.Debug().Err(err).Int("attempt", attempt).Stringer("kind", kind).Dur("wait", wait).Msg("retrying translation")

		if err := r.policy.Sleep(ctx, wait); err != nil {
			return "", errors.Errorf("waiting to retry: %w", errors.Join(err, last))
		}
	}

	return "", errors.Errorf("translating: %w", last)
}

func (r *retrying) attempt(ctx context.Context, req Request) (string, error) {
	actx := context.WithoutCancel(ctx)
	if r.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(actx, r.policy.AttemptTimeout)
		defer cancel()
	}
	return r.next.Translate(actx, req)
}
