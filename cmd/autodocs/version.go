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

package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/autodocs/pkg/engine"
	"github.com/walteh/autodocs/pkg/repository"
)

// VersionInfo describes the build and what it was compiled with
type VersionInfo struct {
	Version   string   `json:"version"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Revision  string   `json:"revision,omitempty"`
	Time      string   `json:"time,omitempty"`
	Modified  bool     `json:"modified,omitempty"`
	Engines   []string `json:"engines"`
	Providers []string `json:"providers"`
}

// GetVersionInfo reads build settings and the compiled in engines and providers
func GetVersionInfo() *VersionInfo {
	info := &VersionInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Engines:   engine.Names(),
		Providers: repository.Providers(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Time = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// FormatVersion renders info for humans
func FormatVersion(info *VersionInfo) string {
	rev := info.Revision
	if rev == "" {
		rev = "unknown"
	}
	if info.Modified {
		rev += " (modified)"
	}

	var b strings.Builder
	fmt.Fprintln(&b, "🚀 autodocs version info:")
	fmt.Fprintf(&b, "Version:   %s\n", info.Version)
	fmt.Fprintf(&b, "Revision:  %s\n", rev)
	if info.Time != "" {
		fmt.Fprintf(&b, "Built:     %s\n", info.Time)
	}
	fmt.Fprintf(&b, "Go:        %s\n", info.GoVersion)
	fmt.Fprintf(&b, "Platform:  %s\n", info.Platform)
	fmt.Fprintf(&b, "Engines:   %s\n", strings.Join(info.Engines, ", "))
	fmt.Fprintf(&b, "Providers: %s\n", strings.Join(info.Providers, ", "))
	return b.String()
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version, engine and provider information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := GetVersionInfo()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), FormatVersion(info))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version info as json")
	return cmd
}
