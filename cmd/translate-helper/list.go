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
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/larentoun/translate-helper/entry"
	"github.com/larentoun/translate-helper/store"
)

func listCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list entries and their status",
		ArgsUsage: "[QUERY]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "status",
				Usage: "only list entries with `STATUS` (good, incomplete, conflict)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
			}
			status := entry.Status(c.String("status"))
			switch status {
			case "", entry.StatusGood, entry.StatusIncomplete, entry.StatusConflict:
			default:
				return fmt.Errorf("%w: unknown status %q", ErrFlagParse, status)
			}

			st, err := e.open(c, false)
			if err != nil {
				return err
			}

			var listings []*store.Listing
			if q := c.Args().First(); q != "" {
				listings = st.Search(q)
			} else {
				listings = st.List()
			}

			tbl := table.New("Key", "Status", "Nominative", "Gender", "Sources", "Missing", "Differs").
				WithWriter(c.App.Writer)
			for _, l := range listings {
				if status != "" && l.Status != status {
					continue
				}
				sources := l.Sources
				if l.Status == entry.StatusConflict {
					sources = l.Conflicting
				}
				tbl.AddRow(
					l.Entry.Key,
					l.Status,
					l.Entry.Nominative,
					l.Entry.Gender,
					strings.Join(sources, ","),
					strings.Join(l.Entry.Missing(), ","),
					strings.Join(l.ConflictFields, ","),
				)
			}
			tbl.Print()
			return nil
		},
	}
}

func deleteCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete an entry from a source document",
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "delete the definition in source `NAME`",
				Aliases: []string{"s"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
			}
			key := c.Args().First()

			st, err := e.open(c, false)
			if err != nil {
				return err
			}

			src := c.String("source")
			if src == "" {
				l, ok := st.Get(key)
				if !ok {
					return fmt.Errorf("%w: %q", store.ErrNotFound, key)
				}
				if len(l.Sources) != 1 {
					return fmt.Errorf("%w: %q is defined in %v; use --source",
						store.ErrAmbiguousSource, key, l.Sources)
				}
				src = l.Sources[0]
			}

			if err := st.Delete(key, src); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "deleted %q from %q\n", key, src)
			return err
		},
	}
}
