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

package engine

import (
	"context"

	"github.com/walteh/autodocs/pkg/config"
)

// SettingsFromConfig maps the engine block of cfg onto backend settings
func SettingsFromConfig(cfg *config.Config) Settings {
	s := Settings{
		Name:        cfg.Engine.Name,
		URL:         cfg.Engine.URL,
		Model:       cfg.Engine.Model,
		APIKey:      cfg.APIKey(),
		Temperature: config.DefaultTemperature,
		TopP:        config.DefaultTopP,
		Timeout:     cfg.Engine.Timeout.Std(),
	}
	if cfg.Engine.Temperature != nil {
		s.Temperature = *cfg.Engine.Temperature
	}
	if cfg.Engine.TopP != nil {
		s.TopP = *cfg.Engine.TopP
	}
	return s
}

// OptionsFromConfig derives the retry and throttling policy of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Retry: Policy{
			MaxAttempts:    cfg.Engine.MaxAttempts,
			AttemptTimeout: cfg.Engine.Timeout.Std(),
		},
		RequestsPerSecond: cfg.Engine.RequestsPerSecond,
		Burst:             cfg.Translation.Concurrency,
	}
}

// 🔌 FromConfig builds the configured backend wrapped in its policies
func FromConfig(ctx context.Context, cfg *config.Config) (Engine, error) {
	e, err := New(ctx, SettingsFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	return WithPolicy(e, OptionsFromConfig(cfg)), nil
}
