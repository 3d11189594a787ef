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
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/autodocs/pkg/config"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

func init() {
	Register("github", NewGitHub)
}

// 🐙 GitHubSyncer downloads the branch tip as a tarball through the GitHub API
type GitHubSyncer struct {
	client *github.Client
	owner  string
	repo   string
	branch string
	dir    string
}

// NewGitHub authenticates with GITHUB_TOKEN when it is set
func NewGitHub(ctx context.Context, args config.RepositoryArgs, dir string) (Syncer, error) {
	var hc *http.Client
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	return newGitHub(github.NewClient(hc), args, dir)
}

func newGitHub(client *github.Client, args config.RepositoryArgs, dir string) (*GitHubSyncer, error) {
	owner, repo, err := parseRepo(args.URL)
	if err != nil {
		return nil, err
	}
	return &GitHubSyncer{client: client, owner: owner, repo: repo, branch: args.Branch, dir: dir}, nil
}

// 🔍 parseRepo accepts owner/repo with or without scheme, host and .git suffix
func parseRepo(u string) (owner, name string, err error) {
	u = strings.TrimSpace(u)
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "git@github.com:")
	u = strings.TrimPrefix(u, "github.com/")
	u = strings.TrimSuffix(strings.TrimSuffix(u, "/"), ".git")

	parts := strings.Split(u, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid GitHub repository URL: %s", u)
	}
	return parts[0], parts[1], nil
}

// Sync resolves the branch head and replaces the local tree with its tarball.
// The download is skipped when the head has not moved since the last sync.
func (g *GitHubSyncer) Sync(ctx context.Context) (*Source, error) {
	logger := zerolog.Ctx(ctx).With().Str("repository", g.owner+"/"+g.repo).Str("branch", g.branch).Logger()

	ref, _, err := g.client.Git.GetRef(ctx, g.owner, g.repo, "heads/"+g.branch)
	if err != nil {
		return nil, errors.Errorf("getting reference: %w", err)
	}
	sha := ref.GetObject().GetSHA()
	if sha == "" {
		return nil, errors.Errorf("branch %s has no commit", g.branch)
	}

	if prev, err := os.ReadFile(g.markerPath()); err == nil && strings.TrimSpace(string(prev)) == sha {
		if _, err := os.Stat(g.dir); err == nil {
			logger.Debug().Str("revision", sha).Msg("repository unchanged")
			return &Source{Dir: g.dir, Revision: sha}, nil
		}
	}

	req, err := g.client.NewRequest(http.MethodGet, fmt.Sprintf("repos/%s/%s/tarball/%s", g.owner, g.repo, sha), nil)
	if err != nil {
		return nil, errors.Errorf("creating tarball request: %w", err)
	}
	resp, err := g.client.BareDo(ctx, req)
	if err != nil {
		return nil, errors.Errorf("downloading tarball from GitHub: %w", err)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(g.dir), 0755); err != nil {
		return nil, errors.Errorf("creating workspace: %w", err)
	}
	tmp, err := os.MkdirTemp(filepath.Dir(g.dir), "."+filepath.Base(g.dir)+"-*")
	if err != nil {
		return nil, errors.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := extractTarball(resp.Body, tmp); err != nil {
		return nil, err
	}

	if err := os.RemoveAll(g.dir); err != nil {
		return nil, errors.Errorf("removing old tree: %w", err)
	}
	if err := os.Rename(tmp, g.dir); err != nil {
		return nil, errors.Errorf("moving tree into place: %w", err)
	}
	if err := os.WriteFile(g.markerPath(), []byte(sha+"\n"), 0644); err != nil {
		logger.Warn().Err(err).Msg("recording synced revision")
	}

	logger.Info().Str("revision", sha).Msg("repository synced")
	return &Source{Dir: g.dir, Revision: sha}, nil
}

func (g *GitHubSyncer) markerPath() string {
	return g.dir + ".revision"
}

// 📦 extractTarball unpacks a gzipped GitHub archive into dst, dropping the
// top level "<owner>-<repo>-<sha>/" directory
func extractTarball(r io.Reader, dst string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Errorf("opening tarball: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Errorf("reading tarball: %w", err)
		}

		name := path.Clean(hdr.Name)
		if !filepath.IsLocal(name) {
			return errors.Errorf("tarball entry %q escapes the tree", hdr.Name)
		}
		i := strings.IndexByte(name, '/')
		if i < 0 {
			continue
		}
		name = name[i+1:]
		target := filepath.Join(dst, filepath.FromSlash(name))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Errorf("creating %s: %w", name, err)
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, hdr.FileInfo().Mode().Perm()); err != nil {
				return errors.Errorf("extracting %s: %w", name, err)
			}
		}
	}
}

func writeEntry(r io.Reader, target string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm|0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
