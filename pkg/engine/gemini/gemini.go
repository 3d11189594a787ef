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

package gemini

import (
	"context"

	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/engine/restclient"
	"gitlab.com/tozd/go/errors"
	"google.golang.org/genai"
)

const (
	Name         = "gemini"
	DefaultModel = "gemini-2.0-flash"
)

func init() {
	engine.Register(Name, New)
}

// ♊ Engine calls the Gemini API
type Engine struct {
	client   *genai.Client
	settings engine.Settings
}

func New(ctx context.Context, s engine.Settings) (engine.Engine, error) {
	cfg := &genai.ClientConfig{
		APIKey:  s.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.URL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.URL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Errorf("creating gemini client: %w", err)
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}
	return &Engine{client: client, settings: s}, nil
}

func (e *Engine) Name() string {
	return Name
}

func (e *Engine) Translate(ctx context.Context, req engine.Request) (string, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.settings.Model, genai.Text(engine.UserPrompt(req)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(engine.SystemPrompt(req), genai.RoleUser),
		Temperature:       genai.Ptr(e.settings.Temperature),
		TopP:              genai.Ptr(e.settings.TopP),
	})
	if err != nil {
		return "", classify(ctx, err)
	}

	out := engine.Clean(resp.Text())
	if out == "" {
		return "", engine.Malformed(Name, "empty response")
	}
	return out, nil
}

func classify(ctx context.Context, err error) error {
	if code := statusOf(err); code != 0 {
		return engine.FromStatus(Name, code, err)
	}
	return restclient.Classify(ctx, Name, err)
}

func statusOf(err error) int {
	var v genai.APIError
	if errors.As(err, &v) {
		return v.Code
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return p.Code
	}
	return 0
}
