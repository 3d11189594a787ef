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

package ollama

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/engine/restclient"
)

const (
	Name       = "ollama"
	DefaultURL = "http://localhost:11434"
)

func init() {
	engine.Register(Name, New)
}

// 🦙 Engine talks to a local Ollama server
type Engine struct {
	url      string
	model    string
	settings engine.Settings
	http     *resty.Client
}

type chatRequest struct {
	Model    string                   `json:"model"`
	Messages []restclient.ChatMessage `json:"messages"`
	Stream   bool                     `json:"stream"`
	Options  map[string]any           `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// New builds an Ollama engine. The API key is ignored.
func New(ctx context.Context, s engine.Settings) (engine.Engine, error) {
	url := s.URL
	if url == "" {
		url = DefaultURL
	}
	return &Engine{
		url:      strings.TrimSuffix(strings.TrimSuffix(url, "/"), "/api/chat"),
		model:    s.Model,
		settings: s,
		http:     restclient.New(s.Timeout),
	}, nil
}

func (e *Engine) Name() string {
	return Name
}

func (e *Engine) Translate(ctx context.Context, req engine.Request) (string, error) {
	body := chatRequest{
		Model:    e.model,
		Messages: restclient.Messages(req),
		Stream:   false,
		Options: map[string]any{
			"temperature": e.settings.Temperature,
			"top_p":       e.settings.TopP,
		},
	}

	var resp chatResponse
	if err := restclient.PostJSON(ctx, Name, e.http.R(), e.url+"/api/chat", body, &resp); err != nil {
		return "", err
	}

	out := engine.Clean(resp.Message.Content)
	if out == "" {
		return "", engine.Malformed(Name, "empty message content")
	}
	return out, nil
}
