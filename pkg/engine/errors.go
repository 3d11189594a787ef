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
	"fmt"
	"net/http"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ErrorKind classifies an engine failure for the retry policy
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindRateLimited
	KindAuthFailed
	KindTimeout
	KindMalformedResponse
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindAuthFailed:
		return "auth_failed"
	case KindTimeout:
		return "timeout"
	case KindMalformedResponse:
		return "malformed_response"
	case KindUnavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// 🚨 Error is a classified engine failure
type Error struct {
	Kind       ErrorKind
	Engine     string
	Status     int           // HTTP status, zero when not applicable
	RetryAfter time.Duration // server hint, zero when absent
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s engine: %s", e.Engine, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind
func NewError(engine string, kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Engine: engine, Err: err}
}

// Malformed reports an unusable reply
func Malformed(engine, format string, args ...any) *Error {
	return &Error{Kind: KindMalformedResponse, Engine: engine, Err: errors.Errorf(format, args...)}
}

// 🔍 KindOf finds the classification of err. Deadlines count as timeouts.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindOther
}

// IsFatal reports whether err should stop the whole run
func IsFatal(err error) bool {
	return KindOf(err) == KindAuthFailed
}

// FromStatus classifies an HTTP status code
func FromStatus(engine string, status int, err error) *Error {
	kind := KindOther
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		kind = KindAuthFailed
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		kind = KindTimeout
	case status >= 500:
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Engine: engine, Status: status, Err: err}
}

// ParseRetryAfter reads a Retry-After header given in seconds
func ParseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	var secs int
	if _, err := fmt.Sscanf(v, "%d", &secs); err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
