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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/textpaste/cmd/textpaste/commands"
	"github.com/walteh/textpaste/cmd/textpaste/opts"
	"github.com/walteh/textpaste/pkg/log"
	"github.com/walteh/textpaste/pkg/telemetry"
)

// newRootCmd builds the command tree. The returned options are filled in
// once flags are parsed.
func newRootCmd() (*cobra.Command, *opts.RootOpts) {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "textpaste",
		Short: "Copy text between drawing annotations",
		Long: `textpaste copies the text of one annotation (text, multiline text, leader,
dimension or table cell) into any number of other annotations of the same drawing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setupRoot(cmd.Context(), cmd, o)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewPasteCmd(o),
		commands.NewListCmd(o),
		newVersionCmd(),
	)

	return cmd, o
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .textpaste.{yaml,yml,json,hcl} in the working directory)")
	cmd.PersistentFlags().StringVar(&o.DrawingFile, "drawing", "", "drawing file, overrides the config")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupRoot configures logging, loads the config and reports the command start
func setupRoot(ctx context.Context, cmd *cobra.Command, o *opts.RootOpts) (context.Context, error) {
	ctx = setupLogging(ctx, o.Debug)

	// console lines reach zerolog only when debugging
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	o.Logger = log.New(cmd.OutOrStdout(), level)
	ctx = log.NewContext(ctx, o.Logger)

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := o.LoadConfig(ctx, wd); err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Stringer("config", o.Config).Msg("config loaded")

	o.Telemetry = telemetry.New(*zerolog.Ctx(ctx), o.Config.Telemetry.Disabled, o.Debug)
	o.Telemetry.CommandStarted(ctx, cmd.Name())

	return ctx, nil
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
