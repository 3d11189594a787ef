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
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("local", NewLocal)
}

// 📁 LocalSyncer uses a directory in place
type LocalSyncer struct {
	dir string
}

func NewLocal(ctx context.Context, args config.RepositoryArgs, dir string) (Syncer, error) {
	return &LocalSyncer{dir: dir}, nil
}

// Sync only checks that the directory exists. The revision is read from git
// when the directory is a checkout and git is installed.
func (l *LocalSyncer) Sync(ctx context.Context) (*Source, error) {
	fi, err := os.Stat(l.dir)
	if err != nil {
		return nil, errors.Errorf("opening source directory: %w", err)
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("source %s is not a directory", l.dir)
	}

	src := &Source{Dir: l.dir}
	if isRepo(l.dir) {
		if _, err := exec.LookPath("git"); err == nil {
			rev, err := headRevision(ctx, l.dir)
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("dir", l.dir).Msg("source revision unknown")
			}
			src.Revision = rev
		}
	}
	return src, nil
}
