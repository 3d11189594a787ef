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

package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/engine/restclient"
	"gitlab.com/tozd/go/errors"
)

const Name = "openai"

func init() {
	engine.Register(Name, New)
}

// 🤖 Engine calls any OpenAI compatible chat completions endpoint
type Engine struct {
	client   *goopenai.Client
	settings engine.Settings
}

func New(ctx context.Context, s engine.Settings) (engine.Engine, error) {
	cfg := goopenai.DefaultConfig(s.APIKey)
	if s.URL != "" {
		// the config may name the full completions endpoint
		cfg.BaseURL = strings.TrimSuffix(strings.TrimRight(s.URL, "/"), "/chat/completions")
	}
	if s.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: s.Timeout}
	}
	if s.Model == "" {
		s.Model = goopenai.GPT4oMini
	}
	return &Engine{client: goopenai.NewClientWithConfig(cfg), settings: s}, nil
}

func (e *Engine) Name() string {
	return Name
}

func (e *Engine) Translate(ctx context.Context, req engine.Request) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: e.settings.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: engine.SystemPrompt(req)},
			{Role: goopenai.ChatMessageRoleUser, Content: engine.UserPrompt(req)},
		},
		Temperature: e.settings.Temperature,
		TopP:        e.settings.TopP,
	})
	if err != nil {
		return "", classify(ctx, err)
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

func classify(ctx context.Context, err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return engine.FromStatus(Name, apiErr.HTTPStatusCode, err)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		if reqErr.HTTPStatusCode < 300 {
			return engine.NewError(Name, engine.KindMalformedResponse, err)
		}
		return engine.FromStatus(Name, reqErr.HTTPStatusCode, err)
	}
	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &synErr) || errors.As(err, &typeErr) {
		return engine.NewError(Name, engine.KindMalformedResponse, err)
	}
	return restclient.Classify(ctx, Name, err)
}
