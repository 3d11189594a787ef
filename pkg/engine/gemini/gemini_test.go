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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/autodocs/pkg/engine"
	"gitlab.com/tozd/go/errors"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want engine.ErrorKind
	}{
		{"quota", genai.APIError{Code: http.StatusTooManyRequests, Message: "quota", Status: "RESOURCE_EXHAUSTED"}, engine.KindRateLimited},
		{"bad_key", errors.Errorf("calling: %w", genai.APIError{Code: http.StatusForbidden, Status: "PERMISSION_DENIED"}), engine.KindAuthFailed},
		{"unavailable", &genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}, engine.KindUnavailable},
		{"deadline", errors.Errorf("calling: %w", context.DeadlineExceeded), engine.KindTimeout},
		{"transport", errors.New("connection reset by peer"), engine.KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.KindOf(classify(context.Background(), tt.err)))
		})
	}
}

func TestNewDefaults(t *testing.T) {
	e, err := New(context.Background(), engine.Settings{Name: Name, APIKey: "test-key"})
	require.NoError(t, err, "creating engine should not need the network")
	assert.Equal(t, Name, e.Name())
	assert.Equal(t, DefaultModel, e.(*Engine).settings.Model)
}
