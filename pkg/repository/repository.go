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

package repository

import (
	"context"
	"slices"
	"strings"

	"github.com/walteh/autodocs/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📂 Source is a synced documentation tree
type Source struct {
	Dir      string
	Revision string // commit hash, empty when the source is not versioned
}

// 🔄 Syncer brings the local copy of a repository up to date
type Syncer interface {
	Sync(ctx context.Context) (*Source, error)
}

// 🏭 Factory creates a Syncer that keeps args in sync under dir
type Factory func(ctx context.Context, args config.RepositoryArgs, dir string) (Syncer, error)

var syncers = map[string]Factory{}

// 📝 Register makes a provider available by name
func Register(provider string, f Factory) {
	syncers[provider] = f
}

// Providers lists the registered provider names
func Providers() []string {
	names := make([]string, 0, len(syncers))
	for k := range syncers {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// 🎯 New returns the syncer for args.Provider
func New(ctx context.Context, args config.RepositoryArgs, dir string) (Syncer, error) {
	f, ok := syncers[args.Provider]
	if !ok {
		return nil, errors.Errorf("provider %s not found, options: %s", args.Provider, strings.Join(Providers(), ", "))
	}
	return f(ctx, args, dir)
}
