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

package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestJSONParsing tests JSON config parsing
func TestJSONParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "string_target_is_split",
			config: `{
				"repository": {"url": "https://github.com/org/repo"},
				"engine": {"name": "openai", "api_key_file": "k"},
				"filter": {"target": "*.md  *.txt"}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Patterns{"*.md", "*.txt"}, cfg.Filter.Target)
			},
		},
		{
			name: "durations_and_publish",
			config: `{
				"repository": {"url": "https://github.com/org/repo"},
				"engine": {"name": "openai", "api_key_file": "k", "timeout": "45s"},
				"filter": {"target": ["*.md"]},
				"workspace": {"stale_lock": "10m"},
				"publish": {"s3": {"endpoint": "localhost:9000", "bucket": "docs"}}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 45*time.Second, cfg.Engine.Timeout.Std())
				assert.Equal(t, 10*time.Minute, cfg.Workspace.StaleLock.Std())
				require.NotNil(t, cfg.Publish)
				require.NotNil(t, cfg.Publish.S3)
				assert.Equal(t, "docs", cfg.Publish.S3.Bucket)
			},
		},
		{
			name:        "unknown_field",
			config:      `{"repository": {"url": "x", "mirror": true}}`,
			errContains: "parsing JSON",
		},
		{
			name:        "bad_target_type",
			config:      `{"filter": {"target": 42}}`,
			errContains: "patterns must be a string or a list of strings",
		},
		{
			name:        "bad_duration",
			config:      `{"engine": {"timeout": "soon"}}`,
			errContains: "parsing duration",
		},
	}

	p := &JSONParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := p.Parse(context.Background(), []byte(tt.config))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
