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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/walteh/autodocs/cmd/autodocs/commands"
	"github.com/walteh/autodocs/pkg/config"
	"github.com/walteh/autodocs/pkg/status"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/autodocs/pkg/engine/gemini"
	_ "github.com/walteh/autodocs/pkg/engine/ollama"
	_ "github.com/walteh/autodocs/pkg/engine/openai"
	_ "github.com/walteh/autodocs/pkg/engine/openrouter"
)

const (
	exitFatal            = 1
	exitCandidateFailure = 2
	exitConfig           = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if !errors.Is(err, commands.ErrCandidateFailures) {
		status.NewUserLogger(ctx, rootCmd.ErrOrStderr()).LogError(err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var cerr *config.ConfigError
	switch {
	case errors.Is(err, commands.ErrCandidateFailures):
		return exitCandidateFailure
	case errors.As(err, &cerr):
		return exitConfig
	default:
		return exitFatal
	}
}
