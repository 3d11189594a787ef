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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/autodocs/pkg/engine"
)

func TestEndpoint(t *testing.T) {
	tests := map[string]string{
		"https://openrouter.ai":                             "https://openrouter.ai/api/v1/chat/completions",
		"https://openrouter.ai/":                            "https://openrouter.ai/api/v1/chat/completions",
		"https://openrouter.ai/api/v1":                      "https://openrouter.ai/api/v1/chat/completions",
		"https://openrouter.ai/api/v1/chat/completions":     "https://openrouter.ai/api/v1/chat/completions",
		"http://proxy.local:8080/api/v1/chat/completions/": "http://proxy.local:8080/api/v1/chat/completions",
	}
	for in, want := range tests {
		assert.Equal(t, want, endpoint(in), "endpoint for %s", in)
	}
}

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "autodocs", r.Header.Get("X-Title"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "meta/llama", req.Model)
		assert.InDelta(t, 0.7, req.Temperature, 0.001)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Bonjour"}}]}`))
	}))
	defer srv.Close()

	e, err := New(context.Background(), engine.Settings{Name: Name, URL: srv.URL, Model: "meta/llama", APIKey: "sk-test", Temperature: 0.7, TopP: 0.7})
	require.NoError(t, err)

	out, err := e.Translate(context.Background(), engine.Request{Text: "Hello", TargetLang: "French"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", out)
}

func TestTranslateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   engine.ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"no auth"}}`, engine.KindAuthFailed},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"no credit"}}`, engine.KindAuthFailed},
		{"gateway_timeout", http.StatusGatewayTimeout, `{}`, engine.KindTimeout},
		{"no_choices", http.StatusOK, `{"choices":[]}`, engine.KindMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			e, err := New(context.Background(), engine.Settings{Name: Name, URL: srv.URL, APIKey: "sk-test"})
			require.NoError(t, err)

			_, err = e.Translate(context.Background(), engine.Request{Text: "Hello"})
			require.Error(t, err)
			assert.Equal(t, tt.want, engine.KindOf(err))
		})
	}
}
