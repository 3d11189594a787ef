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

package openrouter

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/engine/restclient"
)

const (
	Name       = "openrouter"
	DefaultURL = "https://openrouter.ai"
)

func init() {
	engine.Register(Name, New)
}

// 🔀 Engine routes chat completions through OpenRouter
type Engine struct {
	endpoint string
	settings engine.Settings
	http     *resty.Client
}

type chatRequest struct {
	Model       string                   `json:"model"`
	Messages    []restclient.ChatMessage `json:"messages"`
	Temperature float32                  `json:"temperature"`
	TopP        float32                  `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func New(ctx context.Context, s engine.Settings) (engine.Engine, error) {
	base := s.URL
	if base == "" {
		base = DefaultURL
	}
	return &Engine{
		endpoint: endpoint(base),
		settings: s,
		http:     restclient.New(s.Timeout),
	}, nil
}

// endpoint accepts a base with or without /api/v1 or the full completions path
func endpoint(base string) string {
	b := strings.TrimRight(base, "/")
	if i := strings.Index(b, "/api/v1"); i >= 0 {
		b = b[:i]
	}
	return b + "/api/v1/chat/completions"
}

func (e *Engine) Name() string {
	return Name
}

func (e *Engine) Translate(ctx context.Context, req engine.Request) (string, error) {
	body := chatRequest{
		Model:       e.settings.Model,
		Messages:    restclient.Messages(req),
		Temperature: e.settings.Temperature,
		TopP:        e.settings.TopP,
	}

	r := e.http.R().
		SetAuthToken(e.settings.APIKey).
		SetHeader("HTTP-Referer", "https://github.com/walteh/autodocs").
		SetHeader("X-Title", "autodocs")

	var resp chatResponse
	if err := restclient.PostJSON(ctx, Name, r, e.endpoint, body, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", engine.Malformed(Name, "no choices returned")
	}
	out := engine.Clean(resp.Choices[0].Message.Content)
	if out == "" {
		return "", engine.Malformed(Name, "empty completion")
	}
	return out, nil
}
