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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

var testEngines = []string{"ollama", "openai", "openrouter"}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// writeConfig writes a config file and a credential file next to it
func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "key.txt"), []byte("  sk-test-secret\n"), 0600), "writing key file")
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644), "writing config file")
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		config   string
		wantKind ErrorKind
		field    string
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: "autodocs.yaml",
			config: `
repository:
  url: https://github.com/rust-lang/book.git
  branch: trunk
engine:
  name: openai
  url: https://api.openai.com/v1
  model: gpt-4o-mini
  api_key_file: key.txt
  timeout: 30s
filter:
  target: "*.md *.txt"
  include: [src/]
  exclude: [src/test/]
translation:
  target_language: German
  concurrency: 8
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://github.com/rust-lang/book.git", cfg.Repository.URL, "url should match")
				assert.Equal(t, "trunk", cfg.Repository.Branch, "branch should match")
				assert.Equal(t, "git", cfg.Repository.Provider, "provider should default to git")
				assert.Equal(t, Patterns{"*.md", "*.txt"}, cfg.Filter.Target, "target string should be split")
				assert.Equal(t, []string{"src/"}, cfg.Filter.Include, "include should match")
				assert.Equal(t, []string{"src/test/"}, cfg.Filter.Exclude, "exclude should match")
				assert.Equal(t, 30*time.Second, cfg.Engine.Timeout.Std(), "timeout should be parsed")
				assert.Equal(t, "German", cfg.Translation.TargetLanguage, "target language should match")
				assert.Equal(t, 8, cfg.Translation.Concurrency, "concurrency should match")
				assert.Equal(t, DefaultWorkers, cfg.Translation.Workers, "workers should default")
				assert.Equal(t, DefaultMaxAttempts, cfg.Engine.MaxAttempts, "max attempts should default")
				assert.Equal(t, "sk-test-secret", cfg.APIKey(), "credential should be trimmed")
				assert.Equal(t, "book", cfg.RepoName(), "repo name should drop .git")
				assert.Equal(t, "book-translated", filepath.Base(cfg.OutputDir()), "output dir should follow repo name")
				assert.Equal(t, "book.meta.json", filepath.Base(cfg.StorePath()), "store path should follow repo name")
			},
		},
		{
			name: "valid_json_with_list_target",
			file: "autodocs.json",
			config: `{
  "repository": {"url": "git@github.com:org/wiki.git"},
  "engine": {"name": "ollama", "model": "llama3", "api_key_file": "key.txt"},
  "filter": {"target": ["*.md", "guide/**/*.txt"]},
  "workspace": {"store": "sqlite"}
}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "main", cfg.Repository.Branch, "branch should default to main")
				assert.Equal(t, Patterns{"*.md", "guide/**/*.txt"}, cfg.Filter.Target, "target list should be kept")
				assert.Equal(t, "wiki", cfg.RepoName(), "repo name should handle scp style urls")
				assert.Equal(t, "wiki.meta.db", filepath.Base(cfg.StorePath()), "sqlite store should use .db")
				require.NotNil(t, cfg.Engine.Temperature, "temperature should default")
				assert.InDelta(t, 0.7, *cfg.Engine.Temperature, 0.0001, "temperature should default to 0.7")
			},
		},
		{
			name: "valid_hcl",
			file: "autodocs.hcl",
			config: `
repository {
  url = "https://github.com/org/docs"
}
engine "openrouter" {
  model        = "anthropic/claude-3.5-sonnet"
  api_key_file = "key.txt"
  temperature  = 0.2
  timeout      = "90s"
}
filter {
  target  = ["*.md"]
  exclude = ["docs/test/"]
}
workspace {
  copy_unselected = true
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "openrouter", cfg.Engine.Name, "engine label should become the name")
				assert.Equal(t, Patterns{"*.md"}, cfg.Filter.Target, "target should match")
				assert.Equal(t, 90*time.Second, cfg.Engine.Timeout.Std(), "timeout should be parsed")
				require.NotNil(t, cfg.Engine.Temperature, "temperature should be set")
				assert.InDelta(t, 0.2, *cfg.Engine.Temperature, 0.0001, "temperature should match")
				assert.True(t, cfg.Workspace.CopyUnselected, "copy_unselected should be set")
			},
		},
		{
			name: "missing_repository",
			file: "autodocs.yaml",
			config: `
engine: {name: openai, api_key_file: key.txt}
filter: {target: "*.md"}
`,
			wantKind: MissingField,
			field:    "repository.url",
		},
		{
			name: "empty_target",
			file: "autodocs.yaml",
			config: `
repository: {url: https://github.com/org/repo}
engine: {name: openai, api_key_file: key.txt}
filter: {target: "  "}
`,
			wantKind: MissingField,
			field:    "filter.target",
		},
		{
			name: "unknown_engine",
			file: "autodocs.yaml",
			config: `
repository: {url: https://github.com/org/repo}
engine: {name: babelfish, api_key_file: key.txt}
filter: {target: "*.md"}
`,
			wantKind: UnknownEngine,
			field:    "engine.name",
		},
		{
			name: "invalid_glob",
			file: "autodocs.yaml",
			config: `
repository: {url: https://github.com/org/repo}
engine: {name: openai, api_key_file: key.txt}
filter: {target: "*.md", exclude: ["docs/[test"]}
`,
			wantKind: InvalidGlob,
			field:    "filter.exclude",
		},
		{
			name: "missing_credential_file",
			file: "autodocs.yaml",
			config: `
repository: {url: https://github.com/org/repo}
engine: {name: openai, api_key_file: nope.txt}
filter: {target: "*.md"}
`,
			wantKind: MissingField,
			field:    "engine.api_key_file",
		},
		{
			name: "unknown_field",
			file: "autodocs.yaml",
			config: `
repository: {url: https://github.com/org/repo}
engine: {name: openai, api_key_file: key.txt}
filter: {target: "*.md"}
colour: blue
`,
			wantKind: Malformed,
			field:    "file",
		},
		{
			name: "negative_concurrency",
			file: "autodocs.yaml",
			config: `
repository: {url: https://github.com/org/repo}
engine: {name: openai, api_key_file: key.txt}
filter: {target: "*.md"}
translation: {concurrency: -1}
`,
			wantKind: InvalidValue,
			field:    "translation.concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			path := writeConfig(t, tt.file, tt.config)

			cfg, err := Load(ctx, path, testEngines)
			if tt.wantKind != 0 {
				require.Error(t, err, "loading should fail")
				assert.Nil(t, cfg, "no partial config should be returned")
				var cerr *ConfigError
				require.True(t, errors.As(err, &cerr), "error should be a ConfigError")
				assert.Equal(t, tt.wantKind, cerr.Kind, "error kind should match")
				assert.Equal(t, tt.field, cerr.Field, "error field should match")
				return
			}

			require.NoError(t, err, "loading should succeed")
			tt.check(t, cfg)
		})
	}
}

func TestCredentialNeverLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	path := writeConfig(t, "autodocs.yaml", `
repository: {url: https://github.com/org/repo}
engine: {name: openai, api_key_file: key.txt}
filter: {target: "*.md"}
`)

	cfg, err := Load(ctx, path, testEngines)
	require.NoError(t, err, "loading should succeed")

	assert.NotContains(t, buf.String(), "sk-test-secret", "debug log should not contain the secret")
	assert.NotContains(t, cfg.String(), "sk-test-secret", "String should not contain the secret")
	assert.Contains(t, buf.String(), "https://github.com/org/repo", "debug log should describe the config")
}

func TestLocalRepositoryPaths(t *testing.T) {
	ctx := testContext(t)
	path := writeConfig(t, "autodocs.yaml", `
repository: {url: ./book, provider: local}
engine: {name: openai, api_key_file: key.txt}
filter: {target: "*.md"}
workspace: {dir: ./ws}
`)

	cfg, err := Load(ctx, path, testEngines)
	require.NoError(t, err, "loading should succeed")

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "book"), cfg.SourceDir(), "local source should resolve next to config")
	assert.Equal(t, filepath.Join(dir, "ws", "book-translated"), cfg.OutputDir(), "output should live in workspace")
	assert.Equal(t, filepath.Join(dir, "ws", "book.lock"), cfg.LockPath(), "lock should live in workspace")
}

func TestGetParser(t *testing.T) {
	tests := []struct {
		file string
		want Parser
	}{
		{"a.yaml", &YAMLParser{}},
		{"a.YML", &YAMLParser{}},
		{"a.json", &JSONParser{}},
		{"a.hcl", &HCLParser{}},
		{"a.toml", nil},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got := GetParser(tt.file)
			if tt.want == nil {
				assert.Nil(t, got, "no parser expected")
				return
			}
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}
