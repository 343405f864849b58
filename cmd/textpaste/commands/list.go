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
	"fmt"
	"io"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textpaste/cmd/textpaste/opts"
	"github.com/walteh/textpaste/pkg/drawing"
	"github.com/walteh/textpaste/pkg/transfer"
)

// NewListCmd creates the list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var (
		kinds  []string
		layers []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the annotations of a drawing with their text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(layers) == 0 {
				layers = o.Config.Layers
			}
			return RunList(cmd.Context(), o, cmd.OutOrStdout(), kinds, layers)
		},
	}

	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "only list these kinds (text, mtext, leader, dimension, table)")
	cmd.Flags().StringSliceVarP(&layers, "layer", "l", nil, "only list entities on layers matching these globs")

	return cmd
}

// 📋 RunList prints the entities of the configured drawing
func RunList(ctx context.Context, o *opts.RootOpts, out io.Writer, kinds, layers []string) error {
	path, err := o.DrawingPath()
	if err != nil {
		return err
	}

	doc, err := drawing.Load(ctx, path)
	if err != nil {
		return errors.Errorf("loading drawing: %w", err)
	}

	entities, err := FilterEntities(doc.Entities(), kinds, layers)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"HANDLE", "KIND", "LAYER", "TEXT"}}
	for _, e := range entities {
		data = append(data, []string{string(e.Handle()), e.Kind().String(), e.Layer(), Describe(e)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	fmt.Fprintln(out, table)
	return nil
}

// FilterEntities keeps the entities whose kind is in kinds and whose layer
// matches one of the layer globs. Empty filters match everything.
func FilterEntities(entities []drawing.Entity, kinds, layers []string) ([]drawing.Entity, error) {
	wantKinds := make(map[drawing.Kind]bool, len(kinds))
	for _, k := range kinds {
		kind, err := drawing.ParseKind(k)
		if err != nil {
			return nil, err
		}
		wantKinds[kind] = true
	}
	for _, l := range layers {
		if !doublestar.ValidatePattern(l) {
			return nil, errors.Errorf("invalid layer pattern %q", l)
		}
	}

	var out []drawing.Entity
	for _, e := range entities {
		if len(wantKinds) > 0 && !wantKinds[e.Kind()] {
			continue
		}
		if len(layers) > 0 && !matchLayer(layers, e.Layer()) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func matchLayer(patterns []string, layer string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, layer); ok {
			return true
		}
	}
	return false
}

// Describe returns the text shown for e in listings
func Describe(e drawing.Entity) string {
	switch v := e.(type) {
	case *drawing.Text:
		return v.Value
	case *drawing.MText:
		return v.Contents
	case *drawing.Leader:
		if m := v.MText(); m != nil {
			return m.Contents
		}
		return "<no text>"
	case *drawing.Dimension:
		if v.Override != "" {
			return v.Override
		}
		return transfer.FormatMeasurement(v.Measurement, v.Precision, v.DecimalSeparator())
	case *drawing.Table:
		return fmt.Sprintf("%dx%d cells", v.Rows(), v.Columns())
	default:
		return ""
	}
}
