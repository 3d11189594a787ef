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

	"github.com/sony/gobreaker"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/time/rate"
)

type limited struct {
	next    Engine
	limiter *rate.Limiter
}

// ⏱️ Limited caps the request rate sent to e. A non positive rps disables the cap.
func Limited(e Engine, rps float64, burst int) Engine {
	if rps <= 0 {
		return e
	}
	if burst <= 0 {
		burst = 1
	}
	return &limited{next: e, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *limited) Name() string {
	return l.next.Name()
}

func (l *limited) Translate(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", NewError(l.next.Name(), KindRateLimited, err)
	}
	return l.next.Translate(ctx, req)
}

const (
	DefaultTripThreshold = 5
	DefaultCooldown      = 30 * time.Second
)

type guarded struct {
	next Engine
	cb   *gobreaker.CircuitBreaker
}

// 🛡️ Guarded opens a circuit after threshold consecutive unavailable or
// timed out requests and rejects calls until cooldown passes
func Guarded(e Engine, threshold uint32, cooldown time.Duration) Engine {
	if threshold == 0 {
		threshold = DefaultTripThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        e.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// only backend trouble counts against the circuit
		IsSuccessful: func(err error) bool {
			switch KindOf(err) {
			case KindUnavailable, KindTimeout:
				return false
			}
			return true
		},
	})
	return &guarded{next: e, cb: cb}
}

func (g *guarded) Name() string {
	return g.next.Name()
}

func (g *guarded) Translate(ctx context.Context, req Request) (string, error) {
	out, err := g.cb.Execute(func() (any, error) {
		return g.next.Translate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", NewError(g.next.Name(), KindUnavailable, err)
		}
		return "", err
	}
	return out.(string), nil
}

// 🧰 Options bundles the policies applied around a backend
type Options struct {
	Retry             Policy
	RequestsPerSecond float64
	Burst             int
	TripThreshold     uint32
	Cooldown          time.Duration
}

// WithPolicy wraps a backend with rate limiting, a circuit breaker and retries,
// innermost first
func WithPolicy(e Engine, opts Options) Engine {
	e = Limited(e, opts.RequestsPerSecond, opts.Burst)
	e = Guarded(e, opts.TripThreshold, opts.Cooldown)
	return Retrying(e, opts.Retry)
}
