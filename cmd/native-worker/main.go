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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "native-worker",
		Short: "Native worker catalog and connector service",
		Long: `native-worker registers the catalogs of a worker node, serves the catalog
registration API and announces the node to the coordinator.

Examples:
  native-worker serve --config etc/config.properties
  native-worker validate-catalogs --dir etc/catalog`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Node configuration file")
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newValidateCmd(&configPath))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("native-worker failed")
		os.Exit(1)
	}
}
