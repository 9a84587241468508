// Copyright 2026 Dolthub, Inc.
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
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	worker "github.com/dolthub/go-native-worker"
	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/tracing"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Register the configured catalogs and serve the worker API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, afero.NewOsFs(), *configPath)
		},
	}
}

func serve(ctx context.Context, fs afero.Fs, configPath string) error {
	node, err := config.LoadNode(fs, configPath)
	if err != nil {
		return err
	}

	if err := worker.ConfigureLogging(node.LogLevel, node.LogFormat); err != nil {
		return err
	}

	w, err := worker.New(node, worker.Options{Fs: fs})
	if err != nil {
		return err
	}

	if node.TracingEnabled {
		var closer io.Closer
		_, closer, err = tracing.New(tracing.Config{Registerer: w.Registry})
		if err != nil {
			return err
		}
		defer closer.Close()
	}

	if err := w.Start(ctx); err != nil {
		_ = w.Close(context.Background())
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- w.ListenAndServe()
	}()

	select {
	case err = <-errc:
	case <-ctx.Done():
		logrus.WithField(worker.NodeLogField, node.ID).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if cerr := w.Close(shutdownCtx); err == nil {
		err = cerr
	}
	return err
}
