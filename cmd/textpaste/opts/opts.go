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

package opts

import (
	"context"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/textpaste/pkg/config"
	"github.com/walteh/textpaste/pkg/log"
	"github.com/walteh/textpaste/pkg/telemetry"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// flags
	ConfigFile  string
	DrawingFile string
	Debug       bool

	// filled in before a command runs
	Config    *config.Config
	Logger    *log.Logger
	Telemetry telemetry.Notifier
}

// LoadConfig loads --config, or the first default config file in dir
func (o *RootOpts) LoadConfig(ctx context.Context, dir string) error {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigFile != "" {
		cfg, err = config.Load(ctx, o.ConfigFile)
	} else {
		cfg, err = config.Find(ctx, dir)
	}
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg
	return nil
}

// DrawingPath returns --drawing when set, else the drawing named in the config
func (o *RootOpts) DrawingPath() (string, error) {
	if o.DrawingFile != "" {
		return filepath.Clean(o.DrawingFile), nil
	}
	if o.Config != nil && o.Config.Drawing != "" {
		return o.Config.Drawing, nil
	}
	return "", errors.New("no drawing given: pass --drawing or set drawing in the config file")
}
