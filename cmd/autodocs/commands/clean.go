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
	"github.com/spf13/cobra"
	"github.com/walteh/autodocs/cmd/autodocs/opts"
	"github.com/walteh/autodocs/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func NewCleanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <config_file>",
		Short: "Remove translated output and workspace state",
		Long: `Clean removes the output tree and resets the workspace store.
The next run translates every selected file again. The synced source is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx, args[0])
			if err != nil {
				return err
			}

			op, err := operation.New(operation.Options{Config: cfg})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if err := op.Clean(ctx); err != nil {
				return errors.Errorf("cleaning workspace: %w", err)
			}

			opts.UserLogger(ctx).LogStateChange("Removed " + cfg.OutputDir())
			return nil
		},
	}

	return cmd
}
