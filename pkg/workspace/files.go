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
	"io"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

const backupSuffix = ".bak"

// 💾 WriteFileAtomic writes content to a temp file beside path and renames it
// into place, so readers see the old or the new file and never a partial one
func WriteFileAtomic(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// BackupFile copies path to path.bak. A missing path is not an error and
// reports false.
func BackupFile(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(path, path+backupSuffix); err != nil {
		return false, errors.Errorf("creating backup: %w", err)
	}
	return true, nil
}

// RestoreFile moves path.bak back over path
func RestoreFile(path string) error {
	if err := os.Rename(path+backupSuffix, path); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}
	return nil
}

// DropBackup removes path.bak if present
func DropBackup(path string) error {
	if err := os.Remove(path + backupSuffix); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("removing backup: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}
	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}
	return nil
}
