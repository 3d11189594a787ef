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
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/walteh/autodocs/cmd/autodocs/commands"
	"github.com/walteh/autodocs/cmd/autodocs/opts"
)

// newRootOpts creates the shared options with an env aware viper
func newRootOpts() *opts.RootOpts {
	v := viper.New()
	v.SetEnvPrefix("AUTODOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &opts.RootOpts{
		Viper:  v,
		Stderr: os.Stderr,
	}
}

func newRootCmd() *cobra.Command {
	o := newRootOpts()

	rootCmd := &cobra.Command{
		Use:   "autodocs",
		Short: "Keep a translated copy of a documentation repository up to date",
		Long: `autodocs syncs a documentation repository, translates the files that
changed since the last run with a language model, and writes them into a
parallel output tree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			o.Stderr = cmd.ErrOrStderr()
			setupLogging(o)
			return nil
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewRunCmd(o),
		commands.NewStatusCmd(o),
		commands.NewCleanCmd(o),
		commands.NewEnginesCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "also print skipped and unchanged files")
}

// setupLogging configures zerolog based on flags
func setupLogging(o *opts.RootOpts) {
	if o.Viper.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: o.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
