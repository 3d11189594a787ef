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
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the config from bytes without validating it
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

const (
	DefaultBranch         = "main"
	DefaultSourceLanguage = "auto"
	DefaultTargetLanguage = "English"
	DefaultMaxUnitSize    = 4000
	DefaultConcurrency    = 4
	DefaultWorkers        = 4
	DefaultMaxAttempts    = 3
	DefaultTimeout        = 2 * time.Minute
	DefaultWorkspaceDir   = "./workspace"
	DefaultStore          = "json"
	DefaultStaleLock      = time.Hour

	// the original tool sampled with these for every request
	DefaultTemperature float32 = 0.7
	DefaultTopP        float32 = 0.7
)

// 📦 RepositoryArgs locates the source documentation tree
type RepositoryArgs struct {
	URL      string `json:"url" yaml:"url"`
	Branch   string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // git, github or local
}

// 🤖 EngineArgs selects and tunes the translation backend
type EngineArgs struct {
	Name              string   `json:"name" yaml:"name"`
	URL               string   `json:"url,omitempty" yaml:"url,omitempty"`
	Model             string   `json:"model,omitempty" yaml:"model,omitempty"`
	APIKeyFile        string   `json:"api_key_file" yaml:"api_key_file"`
	Temperature       *float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP              *float32 `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	MaxAttempts       int      `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	Timeout           Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RequestsPerSecond float64  `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`
}

// 🔍 FilterArgs decides which files get translated
type FilterArgs struct {
	Target  Patterns `json:"target" yaml:"target"`
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// 🌐 TranslationArgs tunes how content is chunked and dispatched
type TranslationArgs struct {
	SourceLanguage       string   `json:"source_language,omitempty" yaml:"source_language,omitempty"`
	TargetLanguage       string   `json:"target_language,omitempty" yaml:"target_language,omitempty"`
	MaxUnitSize          int      `json:"max_unit_size,omitempty" yaml:"max_unit_size,omitempty"`
	Concurrency          int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Workers              int      `json:"workers,omitempty" yaml:"workers,omitempty"`
	FailOnCandidateError bool     `json:"fail_on_candidate_error,omitempty" yaml:"fail_on_candidate_error,omitempty"`
	TranslatableKeys     []string `json:"translatable_keys,omitempty" yaml:"translatable_keys,omitempty"`
}

// 📁 WorkspaceArgs controls where clones, output and metadata live
type WorkspaceArgs struct {
	Dir            string   `json:"dir,omitempty" yaml:"dir,omitempty"`
	Output         string   `json:"output,omitempty" yaml:"output,omitempty"`
	Store          string   `json:"store,omitempty" yaml:"store,omitempty"` // json or sqlite
	CopyUnselected bool     `json:"copy_unselected,omitempty" yaml:"copy_unselected,omitempty"`
	StaleLock      Duration `json:"stale_lock,omitempty" yaml:"stale_lock,omitempty"`
}

// ☁️ S3Args targets an S3 compatible bucket for the translated tree
type S3Args struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Bucket   string `json:"bucket" yaml:"bucket"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	UseSSL   bool   `json:"use_ssl,omitempty" yaml:"use_ssl,omitempty"`
}

// 🚀 PublishArgs configures optional downstream publishing
type PublishArgs struct {
	S3 *S3Args `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// 📚 Config represents the complete run configuration
type Config struct {
	Repository  RepositoryArgs  `json:"repository" yaml:"repository"`
	Engine      EngineArgs      `json:"engine" yaml:"engine"`
	Filter      FilterArgs      `json:"filter" yaml:"filter"`
	Translation TranslationArgs `json:"translation,omitempty" yaml:"translation,omitempty"`
	Workspace   WorkspaceArgs   `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	Publish     *PublishArgs    `json:"publish,omitempty" yaml:"publish,omitempty"`

	location string
	apiKey   string
}

// 🎯 Load reads, parses and validates the configuration at path.
// engines is the set of engine names the caller can construct.
func Load(ctx context.Context, path string, engines []string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Kind: Malformed, Field: "file", Err: errors.Errorf("reading config file: %w", err)}
	}

	p := GetParser(path)
	if p == nil {
		return nil, &ConfigError{Kind: Malformed, Field: "file", Err: errors.Errorf("no parser found for file: %s", path)}
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, &ConfigError{Kind: Malformed, Field: "file", Err: err}
	}
	cfg.location = path

	if err := cfg.Validate(engines); err != nil {
		return nil, err
	}

	if err := cfg.resolveSecret(); err != nil {
		return nil, err
	}

	logger.Debug().Object("config", cfg).Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks required fields, applies defaults and rejects bad patterns
func (cfg *Config) Validate(engines []string) error {
	if strings.TrimSpace(cfg.Repository.URL) == "" {
		return missing("repository.url")
	}
	if cfg.Repository.Branch == "" {
		cfg.Repository.Branch = DefaultBranch
	}
	if cfg.Repository.Provider == "" {
		cfg.Repository.Provider = "git"
	}
	switch cfg.Repository.Provider {
	case "git", "github", "local":
	default:
		return invalid("repository.provider", errors.Errorf("unknown provider %q", cfg.Repository.Provider))
	}

	if cfg.Engine.Name == "" {
		return missing("engine.name")
	}
	if !slices.Contains(engines, cfg.Engine.Name) {
		return &ConfigError{Kind: UnknownEngine, Field: "engine.name", Err: errors.Errorf("unknown engine %q (known: %s)", cfg.Engine.Name, strings.Join(engines, ", "))}
	}
	if cfg.Engine.APIKeyFile == "" {
		return missing("engine.api_key_file")
	}

	if len(cfg.Filter.Target) == 0 {
		return missing("filter.target")
	}
	for _, group := range []struct {
		field    string
		patterns []string
	}{
		{"filter.target", cfg.Filter.Target},
		{"filter.include", cfg.Filter.Include},
		{"filter.exclude", cfg.Filter.Exclude},
	} {
		for _, p := range group.patterns {
			if strings.TrimSpace(p) == "" || !doublestar.ValidatePattern(p) {
				return &ConfigError{Kind: InvalidGlob, Field: group.field, Err: errors.Errorf("invalid glob pattern %q", p)}
			}
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return err
	}

	if cfg.Publish != nil && cfg.Publish.S3 != nil {
		if cfg.Publish.S3.Endpoint == "" {
			return missing("publish.s3.endpoint")
		}
		if cfg.Publish.S3.Bucket == "" {
			return missing("publish.s3.bucket")
		}
	}

	return nil
}

func (cfg *Config) applyDefaults() error {
	numbers := []struct {
		field string
		value *int
		def   int
	}{
		{"translation.max_unit_size", &cfg.Translation.MaxUnitSize, DefaultMaxUnitSize},
		{"translation.concurrency", &cfg.Translation.Concurrency, DefaultConcurrency},
		{"translation.workers", &cfg.Translation.Workers, DefaultWorkers},
		{"engine.max_attempts", &cfg.Engine.MaxAttempts, DefaultMaxAttempts},
	}
	for _, n := range numbers {
		if *n.value < 0 {
			return invalid(n.field, errors.Errorf("must not be negative, got %d", *n.value))
		}
		if *n.value == 0 {
			*n.value = n.def
		}
	}

	if cfg.Engine.RequestsPerSecond < 0 {
		return invalid("engine.requests_per_second", errors.Errorf("must not be negative"))
	}
	if cfg.Engine.Timeout < 0 {
		return invalid("engine.timeout", errors.Errorf("must not be negative"))
	}
	if cfg.Engine.Timeout == 0 {
		cfg.Engine.Timeout = Duration(DefaultTimeout)
	}
	if cfg.Engine.Temperature == nil {
		t := DefaultTemperature
		cfg.Engine.Temperature = &t
	}
	if cfg.Engine.TopP == nil {
		p := DefaultTopP
		cfg.Engine.TopP = &p
	}

	if cfg.Translation.SourceLanguage == "" {
		cfg.Translation.SourceLanguage = DefaultSourceLanguage
	}
	if cfg.Translation.TargetLanguage == "" {
		cfg.Translation.TargetLanguage = DefaultTargetLanguage
	}

	if cfg.Workspace.Dir == "" {
		cfg.Workspace.Dir = DefaultWorkspaceDir
	}
	if cfg.Workspace.Store == "" {
		cfg.Workspace.Store = DefaultStore
	}
	switch cfg.Workspace.Store {
	case "json", "sqlite":
	default:
		return invalid("workspace.store", errors.Errorf("unknown store %q", cfg.Workspace.Store))
	}
	if cfg.Workspace.StaleLock == 0 {
		cfg.Workspace.StaleLock = Duration(DefaultStaleLock)
	}

	return nil
}

// 🏷️ RepoName is the last element of the repository location, without a .git suffix
func (cfg *Config) RepoName() string {
	u := strings.TrimRight(strings.TrimSpace(cfg.Repository.URL), "/")
	if i := strings.LastIndexAny(u, "/:"); i >= 0 {
		u = u[i+1:]
	}
	return strings.TrimSuffix(u, ".git")
}

func (cfg *Config) workspaceDir() string {
	dir := cfg.Workspace.Dir
	if !filepath.IsAbs(dir) && cfg.location != "" {
		dir = filepath.Join(filepath.Dir(cfg.location), dir)
	}
	return filepath.Clean(dir)
}

// 📂 SourceDir is where the source tree is synced to
func (cfg *Config) SourceDir() string {
	if cfg.Repository.Provider == "local" {
		return cfg.resolve(cfg.Repository.URL)
	}
	return filepath.Join(cfg.workspaceDir(), cfg.RepoName())
}

// 📂 OutputDir is the root of the translated tree
func (cfg *Config) OutputDir() string {
	if cfg.Workspace.Output != "" {
		return cfg.resolve(cfg.Workspace.Output)
	}
	return filepath.Join(cfg.workspaceDir(), cfg.RepoName()+"-translated")
}

// 💾 StorePath is the location of the workspace entry store
func (cfg *Config) StorePath() string {
	ext := ".meta.json"
	if cfg.Workspace.Store == "sqlite" {
		ext = ".meta.db"
	}
	return filepath.Join(cfg.workspaceDir(), cfg.RepoName()+ext)
}

// 🔒 LockPath guards a workspace against overlapping runs
func (cfg *Config) LockPath() string {
	return filepath.Join(cfg.workspaceDir(), cfg.RepoName()+".lock")
}

// 🔑 APIKey returns the engine credential read during Load
func (cfg *Config) APIKey() string {
	return cfg.apiKey
}

func (cfg *Config) resolve(p string) string {
	if filepath.IsAbs(p) || cfg.location == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Dir(cfg.location), p)
}

func (cfg *Config) resolveSecret() error {
	data, err := os.ReadFile(cfg.resolve(cfg.Engine.APIKeyFile))
	if err != nil {
		return &ConfigError{Kind: MissingField, Field: "engine.api_key_file", Err: errors.Errorf("reading credential file: %w", err)}
	}
	key := string(bytes.TrimSpace(data))
	if key == "" {
		return &ConfigError{Kind: MissingField, Field: "engine.api_key_file", Err: errors.Errorf("credential file is empty")}
	}
	cfg.apiKey = key
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s@%s [%s] -> %s/%s (%s)", cfg.Repository.URL, cfg.Repository.Branch,
		strings.Join(cfg.Filter.Target, " "), cfg.Engine.Name, cfg.Engine.Model, cfg.Translation.TargetLanguage)
}

// MarshalZerologObject logs the config without its credential
func (cfg *Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("repository", cfg.Repository.URL).
		Str("branch", cfg.Repository.Branch).
		Str("engine", cfg.Engine.Name).
		Str("model", cfg.Engine.Model).
		Strs("target", cfg.Filter.Target).
		Strs("include", cfg.Filter.Include).
		Strs("exclude", cfg.Filter.Exclude).
		Str("target_language", cfg.Translation.TargetLanguage)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
