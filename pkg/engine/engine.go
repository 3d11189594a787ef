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
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/walteh/autodocs/pkg/selector"
	"gitlab.com/tozd/go/errors"
)

// 📨 Request is one unit of masked text to translate
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
	Kind       selector.Kind
	Tokens     []string // placeholders the reply must keep verbatim
}

// 🌐 Engine translates text through some backend
type Engine interface {
	Name() string
	Translate(ctx context.Context, req Request) (string, error)
}

// ⚙️ Settings configures a backend
type Settings struct {
	Name        string
	URL         string
	Model       string
	APIKey      string
	Temperature float32
	TopP        float32
	Timeout     time.Duration
}

// Factory builds an engine from settings
type Factory func(ctx context.Context, s Settings) (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a backend available under name. Backends call this from init.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Names lists the registered backends in sorted order
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// 🏭 New builds the backend registered as s.Name
func New(ctx context.Context, s Settings) (Engine, error) {
	registryMu.RLock()
	f, ok := registry[s.Name]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown engine %q, available: %v", s.Name, Names())
	}

	e, err := f(ctx, s)
	if err != nil {
		return nil, errors.Errorf("creating %s engine: %w", s.Name, err)
	}
	return e, nil
}
