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

package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrLocked means another run holds the workspace lock
var ErrLocked = errors.Base("workspace is locked by another run")

// 🔒 Lock is an exclusive run lock backed by a file. While held its mtime is
// refreshed so a long run never looks stale to an overlapping one.
type Lock struct {
	path string

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// AcquireLock creates path exclusively. A lock not refreshed within stale is
// assumed to belong to a crashed run and is broken; a zero stale never breaks
// locks.
func AcquireLock(ctx context.Context, path string, stale time.Duration) (*Lock, error) {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Errorf("creating lock directory: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, "pid=%d\nacquired=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
			f.Close()
			logger.Debug().Str("path", path).Msg("acquired workspace lock")
			l := &Lock{path: path, stop: make(chan struct{}), done: make(chan struct{})}
			go l.heartbeat(ctx, stale)
			return l, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Errorf("creating lock file: %w", err)
		}

		info, serr := os.Stat(path)
		if serr != nil {
			// released between our open and stat
			continue
		}
		if stale <= 0 || time.Since(info.ModTime()) < stale {
			return nil, errors.Errorf("%w: %s held since %s", ErrLocked, path, info.ModTime().Format(time.RFC3339))
		}

		logger.Warn().Str("path", path).Time("since", info.ModTime()).Msg("breaking stale workspace lock")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, errors.Errorf("removing stale lock: %w", err)
		}
	}
	return nil, errors.Errorf("%w: %s", ErrLocked, path)
}

// Path is the lock file location
func (l *Lock) Path() string {
	return l.path
}

// heartbeat touches the lock file several times per stale period until Release
func (l *Lock) heartbeat(ctx context.Context, stale time.Duration) {
	defer close(l.done)
	if stale <= 0 {
		return
	}

	ticker := time.NewTicker(stale / 4)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			if err := os.Chtimes(l.path, now, now); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("path", l.path).Msg("refreshing workspace lock")
			}
		}
	}
}

// Release stops the heartbeat and removes the lock file. It is safe to call twice.
func (l *Lock) Release() error {
	l.once.Do(func() {
		close(l.stop)
		<-l.done
	})
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("releasing lock: %w", err)
	}
	return nil
}
