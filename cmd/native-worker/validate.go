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
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	errors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"

	worker "github.com/dolthub/go-native-worker"
	"github.com/dolthub/go-native-worker/announcer"
	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/internal/similartext"
)

// ErrInvalidCatalogs is returned when at least one catalog file is invalid.
var ErrInvalidCatalogs = errors.NewKind("%d invalid catalog(s) in %s")

type catalogReport struct {
	Name      string   `yaml:"name"`
	Connector string   `yaml:"connector,omitempty"`
	Keys      []string `yaml:"keys,omitempty"`
	Valid     bool     `yaml:"valid"`
	Error     string   `yaml:"error,omitempty"`
}

type validationReport struct {
	Directory string          `yaml:"directory"`
	Catalogs  []catalogReport `yaml:"catalogs"`
}

func newValidateCmd(configPath *string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "validate-catalogs",
		Short: "Check the catalog files of a directory without registering them",
		Long: `Check that every catalog file of a directory can be read and names a
supported connector. The report lists the property keys of each catalog,
never their values.

Examples:
  native-worker validate-catalogs --dir etc/catalog`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := afero.NewOsFs()
			if dir == "" {
				node, err := config.LoadNode(fs, *configPath)
				if err != nil {
					return err
				}
				dir = node.CatalogConfigDir
			}

			translators, err := supportedTranslators()
			if err != nil {
				return err
			}
			return validateCatalogs(fs, dir, translators, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Catalog directory, the node catalog.config-dir by default")
	return cmd
}

// supportedTranslators returns the translators of a worker with the
// default node configuration.
func supportedTranslators() (*connector.TranslatorRegistry, error) {
	node, err := config.LoadNode(afero.NewMemMapFs(), "")
	if err != nil {
		return nil, err
	}

	w, err := worker.New(node, worker.Options{
		Fs:        afero.NewMemMapFs(),
		Registry:  prometheus.NewRegistry(),
		Announcer: announcer.Noop{},
	})
	if err != nil {
		return nil, err
	}
	defer w.IO.Shutdown()
	defer w.CPU.Shutdown()

	return w.Translators, nil
}

func validateCatalogs(fs afero.Fs, dir string, translators *connector.TranslatorRegistry, out io.Writer) error {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return err
	}

	report := validationReport{Directory: dir, Catalogs: []catalogReport{}}
	invalid := 0
	for _, info := range infos {
		if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), config.PropertiesExtension) {
			continue
		}

		name := strings.TrimSuffix(info.Name(), config.PropertiesExtension)
		if name == "" {
			continue
		}

		r := validateCatalog(fs, filepath.Join(dir, info.Name()), name, translators)
		if !r.Valid {
			invalid++
		}
		report.Catalogs = append(report.Catalogs, r)
	}

	raw, err := yaml.Marshal(report)
	if err != nil {
		return err
	}
	if _, err := out.Write(raw); err != nil {
		return err
	}

	if invalid > 0 {
		return ErrInvalidCatalogs.New(invalid, dir)
	}
	return nil
}

func validateCatalog(fs afero.Fs, path, name string, translators *connector.TranslatorRegistry) catalogReport {
	r := catalogReport{Name: name}

	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	// Unresolved so that environment values never reach the report.
	props, err := config.ParseProperties(path, raw)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Keys = props.Keys()
	sort.Strings(r.Keys)

	connectorName, ok := props.Lookup(connector.NameProperty)
	if !ok {
		r.Error = config.ErrMissingProperty.New(connector.NameProperty).Error()
		return r
	}

	r.Connector = connectorName
	if !translators.Has(connectorName) {
		similar := similartext.Find(translators.Names(), connectorName)
		r.Error = connector.ErrUnsupportedConnector.New(connectorName + similar).Error()
		return r
	}

	r.Valid = true
	return r
}
