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
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textpaste/cmd/textpaste/opts"
	"github.com/walteh/textpaste/pkg/drawing"
	"github.com/walteh/textpaste/pkg/log"
	"github.com/walteh/textpaste/pkg/messages"
	"github.com/walteh/textpaste/pkg/prompt"
	"github.com/walteh/textpaste/pkg/transfer"
)

// PasteArgs are the inputs of one paste run
type PasteArgs struct {
	Script string // YAML answers; the terminal is used when empty
	DryRun bool   // leave the drawing file untouched
	In     io.Reader
	Out    io.Writer
}

// NewPasteCmd creates the paste command
func NewPasteCmd(o *opts.RootOpts) *cobra.Command {
	args := PasteArgs{}

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Copy the text of one annotation into others",
		Long: `Paste asks for a source annotation and then for any number of destinations.
It will:
1. Read the text of the source (a table asks for the cell)
2. Erase the source, or clear its cell, when delete is switched on
3. Write the text into every destination picked until the prompt is cancelled
4. Save the drawing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args.In = cmd.InOrStdin()
			args.Out = cmd.OutOrStdout()
			_, err := RunPaste(cmd.Context(), o, args)
			return err
		},
	}

	cmd.Flags().StringVarP(&args.Script, "script", "s", "", "answer the prompts from a YAML script")
	cmd.Flags().BoolVar(&args.DryRun, "dry-run", false, "run the session without saving the drawing")

	return cmd
}

// 🚀 RunPaste runs one paste session against the configured drawing. A
// session cancelled at the source prompt is not an error; the drawing is only
// saved then when the delete preference was changed.
func RunPaste(ctx context.Context, o *opts.RootOpts, args PasteArgs) (*transfer.Result, error) {
	logger := log.FromContext(ctx)

	path, err := o.DrawingPath()
	if err != nil {
		return nil, err
	}

	doc, err := drawing.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading drawing: %w", err)
	}
	doc.OnRegen(func(ctx context.Context, e drawing.Entity) {
		zerolog.Ctx(ctx).Debug().Str("handle", string(e.Handle())).Str("kind", e.Kind().String()).Msg("regen")
	})

	msgs, err := messages.New(o.Config.Language)
	if err != nil {
		return nil, errors.Errorf("loading messages: %w", err)
	}

	var (
		p      prompt.Prompter
		script *prompt.Script
	)
	if args.Script != "" {
		if script, err = prompt.LoadScript(ctx, args.Script, doc); err != nil {
			return nil, errors.Errorf("loading script: %w", err)
		}
		p = script
	} else {
		p = prompt.NewConsole(args.In, args.Out, doc)
	}

	session, err := transfer.New(transfer.Options{
		Document:    doc,
		Prompter:    p,
		Messages:    msgs,
		SettingsKey: o.Config.SettingsKey,
	})
	if err != nil {
		return nil, errors.Errorf("creating session: %w", err)
	}

	logger.StartSession(ctx, log.SessionInfo{ID: session.ID(), Drawing: path})
	res, err := session.Run(ctx)
	logger.EndSession(ctx)

	if errors.Is(err, transfer.ErrUserCancelled) {
		zerolog.Ctx(ctx).Debug().Bool("preference_changed", res.PreferenceChanged).Msg("paste cancelled")
		if res.PreferenceChanged && !args.DryRun {
			if err := drawing.Save(ctx, path, doc); err != nil {
				return nil, errors.Errorf("saving delete preference: %w", err)
			}
		}
		return res, nil
	}
	if err != nil {
		return nil, errors.Errorf("running paste session: %w", err)
	}

	if script != nil && script.Remaining() > 0 {
		logger.Warning("script has unused steps")
	}

	if res.Value != "" {
		logger.Success(msgs.Get(messages.SessionDone, len(res.Destinations)))
	}

	if args.DryRun {
		logger.Info("dry run, drawing not saved")
		return res, nil
	}

	if err := drawing.Save(ctx, path, doc); err != nil {
		return nil, errors.Errorf("saving drawing: %w", err)
	}

	return res, nil
}
