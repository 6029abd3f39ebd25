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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/larentoun/translate-helper/api"
	"github.com/larentoun/translate-helper/internal/watch"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the editor API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Usage:   "listen on `ADDR`",
				Aliases: []string{"l"},
				EnvVars: []string{"TRANSLATE_HELPER_LISTEN"},
			},
			&cli.StringFlag{
				Name:    "origin",
				Usage:   "allow cross origin requests from `ORIGIN`",
				EnvVars: []string{"TRANSLATE_HELPER_ORIGIN"},
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "do not reload when source documents change on disk",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := e.config
			if c.IsSet("listen") {
				cfg.Listen = c.String("listen")
			}
			if c.IsSet("origin") {
				cfg.Origin = c.String("origin")
			}
			if c.Bool("no-watch") {
				cfg.Watch = false
			}

			st, err := e.open(c, true)
			if err != nil {
				return err
			}

			var w *watch.Watcher
			if cfg.Watch {
				w, err = watch.New(cfg.Dir, st, &watch.Options{Logger: e.logger})
				if err != nil {
					return err
				}
			}

			hs := &http.Server{
				Addr: cfg.Listen,
				Handler: api.New(st, &api.Options{
					Origin: cfg.Origin,
					Logger: e.logger,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(c.Context)
			g.Go(func() error {
				e.logger.Info("listening",
					zap.String("addr", cfg.Listen),
					zap.String("dir", cfg.Dir),
				)
				if err := hs.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return hs.Shutdown(shutdownCtx)
			})

			if w != nil {
				g.Go(func() error {
					return w.Run(ctx)
				})
			}

			return g.Wait()
		},
	}
}
