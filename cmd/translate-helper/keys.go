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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/larentoun/translate-helper/casing"
)

func printIssues(c *cli.Context, issues []casing.Issue) {
	tbl := table.New("File", "Key", "Fixed Key").WithWriter(c.App.Writer)
	for _, i := range issues {
		tbl.AddRow(i.Source, i.Key, i.ProposedKey)
	}
	tbl.Print()
}

func checkKeysCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "check-keys",
		Usage: "report keys containing upper case characters",
		Action: func(c *cli.Context) error {
			st, err := e.open(c, false)
			if err != nil {
				return err
			}

			issues := casing.Scan(st)
			if len(issues) == 0 {
				return nil
			}
			printIssues(c, issues)
			return fmt.Errorf("%w: %d keys with upper case characters", ErrFindings, len(issues))
		},
	}
}

func fixKeysCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "fix-keys",
		Usage: "rename keys containing upper case characters to lower case",
		Action: func(c *cli.Context) error {
			st, err := e.open(c, false)
			if err != nil {
				return err
			}

			res, err := casing.Fix(st)
			printIssues(c, res.Fixed)
			return err
		},
	}
}
