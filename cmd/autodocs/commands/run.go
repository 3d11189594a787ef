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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/autodocs/cmd/autodocs/opts"
	"github.com/walteh/autodocs/pkg/operation"
	"github.com/walteh/autodocs/pkg/pipeline"
	"github.com/walteh/autodocs/pkg/workspace"
	"gitlab.com/tozd/go/errors"
)

// ErrCandidateFailures is returned when files failed and the config asks for a failing exit
var ErrCandidateFailures = errors.Base("some files failed to translate")

func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <config_file>",
		Short: "Translate changed documentation files",
		Long: `Run executes one translation pass and exits.
It will:
1. Sync the source repository
2. Select the files matched by the filter
3. Translate every file whose content changed since its last translation
4. Write results into the output tree and publish them if configured

With --interval the pass is repeated with a fixed delay until interrupted.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			cfg, err := opts.LoadConfig(ctx, args[0])
			if err != nil {
				return err
			}

			ul := opts.UserLogger(ctx)
			op, err := operation.New(operation.Options{
				Config:   cfg,
				Reporter: ul,
				Force:    opts.Viper.GetBool("force"),
				Workers:  opts.Viper.GetInt("workers"),
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			failed := false
			runner := operation.NewRunner(zerolog.Ctx(ctx), opts.Viper.GetDuration("interval"))
			err = runner.Run(ctx, op, func(s *pipeline.Summary, passErr error) {
				if errors.Is(passErr, workspace.ErrLocked) {
					ul.LogLockOperation(false, cfg.LockPath(), passErr)
				}
				ul.LogSummary(s)
				if s != nil && len(s.Failures()) > 0 {
					failed = true
				}
			})
			if err != nil {
				return err
			}

			if failed && cfg.Translation.FailOnCandidateError {
				return ErrCandidateFailures
			}
			return nil
		},
	}

	cmd.Flags().Duration("interval", 0, "repeat the pass with this delay until interrupted")
	cmd.Flags().Bool("force", false, "retranslate files even when their source did not change")
	cmd.Flags().Int("workers", 0, "files translated at once, overrides translation.workers")

	return cmd
}
