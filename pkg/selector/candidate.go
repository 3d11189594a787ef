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

package selector

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📄 Kind is the detected content kind of a file
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindTOML     Kind = "toml"
	KindYAML     Kind = "yaml"
	KindJSON     Kind = "json"
	KindText     Kind = "text"
	KindOther    Kind = "other"
)

// Structured reports whether the kind is a key/value document
func (k Kind) Structured() bool {
	return k == KindTOML || k == KindYAML || k == KindJSON
}

// 🔍 DetectKind guesses the kind from the file extension
func DetectKind(rel string) Kind {
	switch strings.ToLower(path.Ext(rel)) {
	case ".md", ".markdown", ".mdx", ".mdown":
		return KindMarkdown
	case ".toml":
		return KindTOML
	case ".yaml", ".yml":
		return KindYAML
	case ".json":
		return KindJSON
	case ".txt", ".text", ".rst", ".adoc":
		return KindText
	default:
		return KindOther
	}
}

// 📦 Candidate is a snapshot of one selected file. It is not modified after Load.
type Candidate struct {
	Path    string // relative slash path
	Kind    Kind
	Content []byte
	Hash    string // sha256 of Content
}

// 📥 Load reads rel under root into a Candidate
func Load(root, rel string) (Candidate, error) {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return Candidate{}, errors.Errorf("reading %s: %w", rel, err)
	}
	return NewCandidate(rel, content), nil
}

// NewCandidate builds a Candidate from content already in memory
func NewCandidate(rel string, content []byte) Candidate {
	return Candidate{
		Path:    rel,
		Kind:    DetectKind(rel),
		Content: content,
		Hash:    Checksum(content),
	}
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
