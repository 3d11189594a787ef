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

func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <config_file>",
		Short: "Show which files a run would translate",
		Long: `Status syncs the source repository and compares it with the workspace.
It will:
1. List new and modified files that would be translated
2. Count unchanged files that would be skipped
3. List stored entries whose source is no longer selected

The translation engine is never called.`,
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

			items, err := op.Status(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			opts.UserLogger(ctx).LogPlan(items)
			return nil
		},
	}

	return cmd
}
