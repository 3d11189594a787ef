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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
//
//	repository { url = "https://github.com/org/book" }
//	engine "openai" {
//	  model        = "gpt-4o-mini"
//	  api_key_file = "./key"
//	}
//	filter {
//	  target  = "*.md *.txt"
//	  exclude = ["docs/test/"]
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

type hclConfig struct {
	Repository struct {
		URL      string `hcl:"url"`
		Branch   string `hcl:"branch,optional"`
		Provider string `hcl:"provider,optional"`
	} `hcl:"repository,block"`
	Engine struct {
		Name              string   `hcl:"name,label"`
		URL               string   `hcl:"url,optional"`
		Model             string   `hcl:"model,optional"`
		APIKeyFile        string   `hcl:"api_key_file"`
		Temperature       *float64 `hcl:"temperature,optional"`
		TopP              *float64 `hcl:"top_p,optional"`
		MaxAttempts       int      `hcl:"max_attempts,optional"`
		Timeout           string   `hcl:"timeout,optional"`
		RequestsPerSecond float64  `hcl:"requests_per_second,optional"`
	} `hcl:"engine,block"`
	Filter struct {
		Target  hcl.Expression `hcl:"target"`
		Include []string       `hcl:"include,optional"`
		Exclude []string       `hcl:"exclude,optional"`
	} `hcl:"filter,block"`
	Translation *struct {
		SourceLanguage       string   `hcl:"source_language,optional"`
		TargetLanguage       string   `hcl:"target_language,optional"`
		MaxUnitSize          int      `hcl:"max_unit_size,optional"`
		Concurrency          int      `hcl:"concurrency,optional"`
		Workers              int      `hcl:"workers,optional"`
		FailOnCandidateError bool     `hcl:"fail_on_candidate_error,optional"`
		TranslatableKeys     []string `hcl:"translatable_keys,optional"`
	} `hcl:"translation,block"`
	Workspace *struct {
		Dir            string `hcl:"dir,optional"`
		Output         string `hcl:"output,optional"`
		Store          string `hcl:"store,optional"`
		CopyUnselected bool   `hcl:"copy_unselected,optional"`
		StaleLock      string `hcl:"stale_lock,optional"`
	} `hcl:"workspace,block"`
	Publish *struct {
		S3 *struct {
			Endpoint string `hcl:"endpoint"`
			Bucket   string `hcl:"bucket"`
			Prefix   string `hcl:"prefix,optional"`
			Region   string `hcl:"region,optional"`
			UseSSL   bool   `hcl:"use_ssl,optional"`
		} `hcl:"s3,block"`
	} `hcl:"publish,block"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// env lets configs reference variables such as env.HOME
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	target, err := decodePatterns(raw.Filter.Target, evalCtx)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Repository: RepositoryArgs{
			URL:      raw.Repository.URL,
			Branch:   raw.Repository.Branch,
			Provider: raw.Repository.Provider,
		},
		Engine: EngineArgs{
			Name:              raw.Engine.Name,
			URL:               raw.Engine.URL,
			Model:             raw.Engine.Model,
			APIKeyFile:        raw.Engine.APIKeyFile,
			MaxAttempts:       raw.Engine.MaxAttempts,
			RequestsPerSecond: raw.Engine.RequestsPerSecond,
		},
		Filter: FilterArgs{
			Target:  target,
			Include: raw.Filter.Include,
			Exclude: raw.Filter.Exclude,
		},
	}

	if raw.Engine.Temperature != nil {
		t := float32(*raw.Engine.Temperature)
		cfg.Engine.Temperature = &t
	}
	if raw.Engine.TopP != nil {
		tp := float32(*raw.Engine.TopP)
		cfg.Engine.TopP = &tp
	}
	if raw.Engine.Timeout != "" {
		if err := cfg.Engine.Timeout.UnmarshalText([]byte(raw.Engine.Timeout)); err != nil {
			return nil, errors.Errorf("engine.timeout: %w", err)
		}
	}

	if t := raw.Translation; t != nil {
		cfg.Translation = TranslationArgs{
			SourceLanguage:       t.SourceLanguage,
			TargetLanguage:       t.TargetLanguage,
			MaxUnitSize:          t.MaxUnitSize,
			Concurrency:          t.Concurrency,
			Workers:              t.Workers,
			FailOnCandidateError: t.FailOnCandidateError,
			TranslatableKeys:     t.TranslatableKeys,
		}
	}

	if w := raw.Workspace; w != nil {
		cfg.Workspace = WorkspaceArgs{
			Dir:            w.Dir,
			Output:         w.Output,
			Store:          w.Store,
			CopyUnselected: w.CopyUnselected,
		}
		if w.StaleLock != "" {
			if err := cfg.Workspace.StaleLock.UnmarshalText([]byte(w.StaleLock)); err != nil {
				return nil, errors.Errorf("workspace.stale_lock: %w", err)
			}
		}
	}

	if raw.Publish != nil && raw.Publish.S3 != nil {
		s3 := raw.Publish.S3
		cfg.Publish = &PublishArgs{S3: &S3Args{
			Endpoint: s3.Endpoint,
			Bucket:   s3.Bucket,
			Prefix:   s3.Prefix,
			Region:   s3.Region,
			UseSSL:   s3.UseSSL,
		}}
	}

	return cfg, nil
}

// decodePatterns accepts either a string or a list of strings
func decodePatterns(expr hcl.Expression, evalCtx *hcl.EvalContext) (Patterns, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, errors.Errorf("evaluating filter.target: %s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return SplitPatterns(val.AsString()), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var out Patterns
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			if v.IsNull() || v.Type() != cty.String {
				return nil, errors.Errorf("filter.target entries must be strings")
			}
			out = append(out, v.AsString())
		}
		return out, nil
	default:
		return nil, errors.Errorf("filter.target must be a string or a list of strings, got %s", ty.FriendlyName())
	}
}

func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vars)
}
