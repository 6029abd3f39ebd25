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
	"fmt"
	"os"
	"path/filepath"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/larentoun/translate-helper/importer"
	"github.com/larentoun/translate-helper/store"
)

func importCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import new keys from source documents",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "write new keys to source `NAME`",
				Aliases: []string{"s"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%w: no files given", ErrFlagParse)
			}

			st, err := e.open(c, true)
			if err != nil {
				return err
			}

			tbl := table.New("File", "Key", "Result", "Reason").WithWriter(c.App.Writer)
			for _, path := range c.Args().Slice() {
				rep, err := importFile(c, e, st, path)
				if rep != nil {
					for _, k := range rep.Conflicts {
						tbl.AddRow(path, k, "conflict", "already defined")
					}
					for _, r := range rep.Rejected {
						tbl.AddRow(path, r.Key, "rejected", r.Reason)
					}
					fmt.Fprintf(c.App.Writer, "%s: %s\n", path, rep.Message)
				}
				if err != nil {
					return err
				}
			}
			tbl.Print()
			return nil
		},
	}
}

func importFile(c *cli.Context, e *env, st *store.Store, path string) (*importer.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	return importer.ImportReader(c.Context, st, filepath.Base(path), f, &importer.Options{
		Source: c.String("source"),
		Logger: e.logger,
	})
}
