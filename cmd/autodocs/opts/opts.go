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

package opts

import (
	"context"
	"io"

	"github.com/spf13/viper"
	"github.com/walteh/autodocs/pkg/config"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/status"
)

// RootOpts carries what every command shares
type RootOpts struct {
	// Viper holds flag values overlaid with AUTODOCS_* environment variables
	Viper  *viper.Viper
	Stderr io.Writer
}

// LoadConfig loads and validates a configuration against the registered engines
func (o *RootOpts) LoadConfig(ctx context.Context, path string) (*config.Config, error) {
	return config.Load(ctx, path, engine.Names())
}

// UserLogger prints run progress to stderr
func (o *RootOpts) UserLogger(ctx context.Context) *status.UserLogger {
	return status.NewUserLogger(ctx, o.Stderr).WithVerbose(o.Viper.GetBool("verbose"))
}
