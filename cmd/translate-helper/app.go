// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	translatehelper "github.com/larentoun/translate-helper"
	"github.com/larentoun/translate-helper/internal/config"
	"github.com/larentoun/translate-helper/store"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeFindings is the exit code when a check reports problems.
	ExitCodeFindings
)

// ErrTranslateHelper is a parent error for all command errors.
var ErrTranslateHelper = errors.New("translate-helper")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrTranslateHelper)

// ErrFindings indicates a check found problems.
var ErrFindings = fmt.Errorf("%w: problems found", ErrTranslateHelper)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

// env is the state shared by all commands. It is populated before a command
// runs.
type env struct {
	config *config.Config
	logger *zap.Logger
}

// open opens the store described by the configuration.
func (e *env) open(c *cli.Context, create bool) (*store.Store, error) {
	return translatehelper.Open(c.Context, e.config.Dir, &translatehelper.Options{
		Schema:        e.config.Schema(),
		DefaultSource: e.config.DefaultSource,
		Create:        create,
		Logger:        e.logger,
	})
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (e *env) setup(c *cli.Context) error {
	var err error
	if path := c.String("config"); path != "" {
		e.config, err = config.LoadFile(path)
	} else {
		e.config, _, err = config.Find(configLocations())
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	if c.IsSet("dir") {
		e.config.Dir = c.String("dir")
	}
	if c.IsSet("default-source") {
		e.config.DefaultSource = c.String("default-source")
	}
	if c.IsSet("reject-unknown-tags") {
		e.config.RejectUnknownTags = c.Bool("reject-unknown-tags")
	}
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	cfg := zap.NewProductionConfig()
	if c.Bool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	e.logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	return nil
}

func (e *env) sync() {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

func newApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Edit translation dictionaries.",
		Description: strings.Join([]string{
			"Translation dictionary editor written in Go.",
			"http://github.com/larentoun/translate-helper",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"TRANSLATE_HELPER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "read source documents from `DIR`",
				Aliases: []string{"d"},
				EnvVars: []string{"TRANSLATE_HELPER_DIR"},
			},
			&cli.StringFlag{
				Name:    "default-source",
				Usage:   "write new keys to source `NAME`",
				EnvVars: []string{"TRANSLATE_HELPER_DEFAULT_SOURCE"},
			},
			&cli.BoolFlag{
				Name:    "reject-unknown-tags",
				Usage:   "reject entries with tags outside of the vocabulary",
				EnvVars: []string{"TRANSLATE_HELPER_REJECT_UNKNOWN_TAGS"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "enable debug logging",
				Aliases: []string{"v"},
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Before: e.setup,
		After: func(*cli.Context) error {
			e.sync()
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			serveCommand(e),
			listCommand(e),
			deleteCommand(e),
			importCommand(e),
			checkKeysCommand(e),
			fixKeysCommand(e),
		},
	}
}
