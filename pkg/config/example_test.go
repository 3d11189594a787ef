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

package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/autodocs/pkg/config"
)

func ExampleLoad_yaml() {
	dir, err := os.MkdirTemp("", "autodocs-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configYAML := `
repository:
  url: https://github.com/org/handbook.git
engine:
  name: openai
  model: gpt-4o-mini
  api_key_file: openai.key
filter:
  target: "*.md *.txt"
  exclude: [drafts/]
`
	if err := os.WriteFile(filepath.Join(dir, "openai.key"), []byte("sk-example\n"), 0600); err != nil {
		fmt.Printf("Error writing key: %v\n", err)
		return
	}
	configPath := filepath.Join(dir, "autodocs.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), configPath, []string{"openai"})
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg.RepoName())
	fmt.Println(cfg.Repository.Branch)
	fmt.Println(cfg.Filter.Target)
	fmt.Println(cfg.Translation.TargetLanguage)
	// Output:
	// handbook
	// main
	// [*.md *.txt]
	// English
}
