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
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("git", NewGit)
}

// 🌿 GitSyncer keeps a shallow clone of one branch using the git CLI
type GitSyncer struct {
	url    string
	branch string
	dir    string
}

func NewGit(ctx context.Context, args config.RepositoryArgs, dir string) (Syncer, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, errors.Errorf("git provider needs the git binary: %w", err)
	}
	return &GitSyncer{url: args.URL, branch: args.Branch, dir: dir}, nil
}

// Sync clones on first use and otherwise fetches the branch tip and resets
// the working tree onto it. Local edits in the clone are discarded.
func (g *GitSyncer) Sync(ctx context.Context) (*Source, error) {
	logger := zerolog.Ctx(ctx).With().Str("repository", g.url).Str("branch", g.branch).Logger()

	if isRepo(g.dir) {
		logger.Debug().Str("dir", g.dir).Msg("pulling repository")
		if _, err := git(ctx, g.dir, "fetch", "--depth", "1", "origin", g.branch); err != nil {
			return nil, errors.Errorf("fetching %s: %w", g.url, err)
		}
		if _, err := git(ctx, g.dir, "reset", "--hard", "FETCH_HEAD"); err != nil {
			return nil, errors.Errorf("resetting %s: %w", g.dir, err)
		}
	} else {
		logger.Debug().Str("dir", g.dir).Msg("cloning repository")
		if err := os.MkdirAll(filepath.Dir(g.dir), 0755); err != nil {
			return nil, errors.Errorf("creating workspace: %w", err)
		}
		if _, err := git(ctx, "", "clone", "--depth", "1", "--branch", g.branch, g.url, g.dir); err != nil {
			return nil, errors.Errorf("cloning %s: %w", g.url, err)
		}
	}

	rev, err := headRevision(ctx, g.dir)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("revision", rev).Msg("repository synced")

	return &Source{Dir: g.dir, Revision: rev}, nil
}

func isRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func headRevision(ctx context.Context, dir string) (string, error) {
	rev, err := git(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", errors.Errorf("reading revision of %s: %w", dir, err)
	}
	return rev, nil
}

// git runs one git command and returns its trimmed stdout
func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", errors.Errorf("git %s: %w", args[0], err)
		}
		return "", errors.Errorf("git %s: %s: %w", args[0], msg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
