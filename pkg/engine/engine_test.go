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

package engine_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/autodocs/gen/mockery"
	"github.com/walteh/autodocs/pkg/engine"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

type sleeps struct {
	waits []time.Duration
}

func (s *sleeps) sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return ctx.Err()
}

func kindErr(kind engine.ErrorKind) error {
	return engine.NewError("mock", kind, errors.New("boom"))
}

func TestRetryingRecoversFromRateLimit(t *testing.T) {
	ctx := testContext(t)
	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", kindErr(engine.KindRateLimited)).Twice()
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("hallo", nil).Once()

	s := &sleeps{}
	e := engine.Retrying(m, engine.Policy{MaxAttempts: 3, Sleep: s.sleep})

	out, err := e.Translate(ctx, engine.Request{Text: "hello"})
	require.NoError(t, err, "third attempt should succeed")
	assert.Equal(t, "hallo", out)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, s.waits, "backoff should double")
}

func TestRetryingExhausted(t *testing.T) {
	ctx := testContext(t)
	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", kindErr(engine.KindRateLimited)).Times(2)

	s := &sleeps{}
	e := engine.Retrying(m, engine.Policy{MaxAttempts: 2, Sleep: s.sleep})

	_, err := e.Translate(ctx, engine.Request{Text: "hello"})
	require.Error(t, err, "all attempts should fail")
	assert.Equal(t, engine.KindRateLimited, engine.KindOf(err), "last failure should surface")
	assert.Len(t, s.waits, 1, "no wait after the final attempt")
}

func TestRetryingPerKind(t *testing.T) {
	tests := []struct {
		name  string
		kind  engine.ErrorKind
		calls int
	}{
		{"auth_failed_is_not_retried", engine.KindAuthFailed, 1},
		{"other_is_not_retried", engine.KindOther, 1},
		{"malformed_is_retried_once", engine.KindMalformedResponse, 2},
		{"unavailable_uses_all_attempts", engine.KindUnavailable, 4},
		{"timeout_uses_all_attempts", engine.KindTimeout, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			m := mockery.NewMockEngine_engine(t)
			m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", kindErr(tt.kind)).Times(tt.calls)

			s := &sleeps{}
			e := engine.Retrying(m, engine.Policy{MaxAttempts: 4, Sleep: s.sleep})

			_, err := e.Translate(ctx, engine.Request{Text: "hello"})
			require.Error(t, err)
			assert.Equal(t, tt.kind, engine.KindOf(err), "kind should be preserved")
			assert.Equal(t, tt.kind == engine.KindAuthFailed, engine.IsFatal(err))
		})
	}
}

func TestRetryingHonorsRetryAfter(t *testing.T) {
	ctx := testContext(t)
	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", &engine.Error{
		Kind:       engine.KindRateLimited,
		Engine:     "mock",
		Status:     http.StatusTooManyRequests,
		RetryAfter: 3 * time.Second,
	}).Once()
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("ok", nil).Once()

	s := &sleeps{}
	e := engine.Retrying(m, engine.Policy{MaxAttempts: 3, Sleep: s.sleep})

	_, err := e.Translate(ctx, engine.Request{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second}, s.waits, "server hint should win over backoff")
}

func TestRetryingCancellation(t *testing.T) {
	t.Run("no_attempt_after_cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext(t))
		cancel()

		m := mockery.NewMockEngine_engine(t)
		e := engine.Retrying(m, engine.Policy{MaxAttempts: 3})

		_, err := e.Translate(ctx, engine.Request{Text: "hello"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("in_flight_call_finishes", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext(t))
		defer cancel()

		m := mockery.NewMockEngine_engine(t)
		m.EXPECT().Translate(mock.Anything, mock.Anything).RunAndReturn(func(actx context.Context, req engine.Request) (string, error) {
			cancel()
			return "done", actx.Err()
		}).Once()

		e := engine.Retrying(m, engine.Policy{MaxAttempts: 3})
		out, err := e.Translate(ctx, engine.Request{Text: "hello"})
		require.NoError(t, err, "run cancellation should not abort the attempt")
		assert.Equal(t, "done", out)
	})

	t.Run("cancel_during_backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testContext(t))
		defer cancel()

		m := mockery.NewMockEngine_engine(t)
		m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", kindErr(engine.KindRateLimited)).Once()

		cancelling := func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}
		e := engine.Retrying(m, engine.Policy{MaxAttempts: 3, Sleep: cancelling})

		_, err := e.Translate(ctx, engine.Request{Text: "hello"})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled, "cancellation should be visible to callers")
		assert.Equal(t, engine.KindRateLimited, engine.KindOf(err), "the last engine error should be kept")
	})

	t.Run("attempt_timeout_is_a_timeout", func(t *testing.T) {
		ctx := testContext(t)
		m := mockery.NewMockEngine_engine(t)
		m.EXPECT().Translate(mock.Anything, mock.Anything).RunAndReturn(func(actx context.Context, req engine.Request) (string, error) {
			<-actx.Done()
			return "", actx.Err()
		}).Times(2)

		s := &sleeps{}
		e := engine.Retrying(m, engine.Policy{MaxAttempts: 2, AttemptTimeout: 10 * time.Millisecond, Sleep: s.sleep})

		_, err := e.Translate(ctx, engine.Request{Text: "hello"})
		require.Error(t, err)
		assert.Equal(t, engine.KindTimeout, engine.KindOf(err))
	})
}

func TestGuardedOpensCircuit(t *testing.T) {
	ctx := testContext(t)
	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Name().Return("mock").Maybe()
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", kindErr(engine.KindUnavailable)).Times(2)

	e := engine.Guarded(m, 2, time.Hour)

	for range 2 {
		_, err := e.Translate(ctx, engine.Request{Text: "hello"})
		require.Error(t, err)
	}

	_, err := e.Translate(ctx, engine.Request{Text: "hello"})
	require.Error(t, err, "open circuit should fail fast")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, engine.KindUnavailable, engine.KindOf(err))
}

func TestGuardedIgnoresCallerErrors(t *testing.T) {
	ctx := testContext(t)
	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Name().Return("mock").Maybe()
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", kindErr(engine.KindMalformedResponse)).Times(3)

	e := engine.Guarded(m, 2, time.Hour)
	for range 3 {
		_, err := e.Translate(ctx, engine.Request{Text: "hello"})
		assert.Equal(t, engine.KindMalformedResponse, engine.KindOf(err), "malformed replies should not trip the circuit")
	}
}

func TestLimited(t *testing.T) {
	ctx := testContext(t)
	m := mockery.NewMockEngine_engine(t)

	assert.Same(t, engine.Engine(m), engine.Limited(m, 0, 0), "zero rate should not wrap")

	m.EXPECT().Name().Return("mock").Maybe()
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("ok", nil).Once()
	out, err := engine.Limited(m, 1000, 1).Translate(ctx, engine.Request{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Limited(m, 0.001, 1).Translate(cancelled, engine.Request{Text: "hello"})
	assert.ErrorIs(t, err, context.Canceled, "cancelled wait should not reach the engine")
}

func TestWithPolicy(t *testing.T) {
	ctx := testContext(t)
	m := mockery.NewMockEngine_engine(t)
	m.EXPECT().Name().Return("mock").Maybe()
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("", kindErr(engine.KindTimeout)).Once()
	m.EXPECT().Translate(mock.Anything, mock.Anything).Return("ok", nil).Once()

	s := &sleeps{}
	e := engine.WithPolicy(m, engine.Options{Retry: engine.Policy{MaxAttempts: 3, Sleep: s.sleep}})

	out, err := e.Translate(ctx, engine.Request{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "mock", e.Name())
}

func TestRegistry(t *testing.T) {
	ctx := testContext(t)
	engine.Register("fake-registry", func(ctx context.Context, s engine.Settings) (engine.Engine, error) {
		m := mockery.NewMockEngine_engine(t)
		m.EXPECT().Name().Return(s.Name).Maybe()
		return m, nil
	})

	assert.Contains(t, engine.Names(), "fake-registry")

	e, err := engine.New(ctx, engine.Settings{Name: "fake-registry"})
	require.NoError(t, err)
	assert.Equal(t, "fake-registry", e.Name())

	_, err = engine.New(ctx, engine.Settings{Name: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine")
}

func TestFromStatus(t *testing.T) {
	tests := map[int]engine.ErrorKind{
		http.StatusUnauthorized:        engine.KindAuthFailed,
		http.StatusForbidden:           engine.KindAuthFailed,
		http.StatusTooManyRequests:     engine.KindRateLimited,
		http.StatusRequestTimeout:      engine.KindTimeout,
		http.StatusGatewayTimeout:      engine.KindTimeout,
		http.StatusBadGateway:          engine.KindUnavailable,
		http.StatusInternalServerError: engine.KindUnavailable,
		http.StatusBadRequest:          engine.KindOther,
	}
	for status, want := range tests {
		err := engine.FromStatus("x", status, nil)
		assert.Equal(t, want, err.Kind, "status %d", status)
		assert.Equal(t, status, err.Status)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, engine.KindOther, engine.KindOf(nil))
	assert.Equal(t, engine.KindTimeout, engine.KindOf(errors.Errorf("calling: %w", context.DeadlineExceeded)))
	assert.Equal(t, engine.KindAuthFailed, engine.KindOf(errors.Errorf("wrapped: %w", kindErr(engine.KindAuthFailed))))
	assert.Equal(t, engine.KindOther, engine.KindOf(errors.New("plain")))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, engine.ParseRetryAfter("5"))
	assert.Zero(t, engine.ParseRetryAfter(""))
	assert.Zero(t, engine.ParseRetryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}
