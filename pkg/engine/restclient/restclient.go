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

// Package restclient holds the resty plumbing shared by the JSON chat backends.
package restclient

import (
	"context"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/walteh/autodocs/pkg/engine"
	"gitlab.com/tozd/go/errors"
)

const DefaultTimeout = 2 * time.Minute

// ChatMessage is the role/content pair every chat API shares
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Messages builds the system and user messages for req
func Messages(req engine.Request) []ChatMessage {
	return []ChatMessage{
		{Role: "system", Content: engine.SystemPrompt(req)},
		{Role: "user", Content: engine.UserPrompt(req)},
	}
}

// New returns a resty client bounded by timeout
func New(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return resty.New().SetTimeout(timeout)
}

// 📮 PostJSON sends body to url and decodes the reply into result, classifying
// any failure as an engine error
func PostJSON(ctx context.Context, name string, r *resty.Request, url string, body, result any) error {
	rr, err := r.SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(result).
		Post(url)
	if err != nil {
		// a reply arrived but its body did not decode
		if rr != nil && rr.RawResponse != nil && !rr.IsError() {
			return engine.NewError(name, engine.KindMalformedResponse, err)
		}
		return Classify(ctx, name, err)
	}
	if rr.IsError() {
		e := engine.FromStatus(name, rr.StatusCode(), errors.Errorf("%s: %s", rr.Status(), abbreviate(rr.String(), 512)))
		e.RetryAfter = engine.ParseRetryAfter(rr.Header().Get("Retry-After"))
		return e
	}
	return nil
}

// Classify maps a transport failure to an engine error
func Classify(ctx context.Context, name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return engine.NewError(name, engine.KindTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return engine.NewError(name, engine.KindTimeout, err)
	}
	// connection refused and friends
	return engine.NewError(name, engine.KindUnavailable, err)
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
