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
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestValidateCatalogs(t *testing.T) {
	require := require.New(t)

	translators, err := supportedTranslators()
	require.NoError(err)

	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/etc/catalog/lake.properties":     "connector.name=delta\nhive.s3.aws-secret-key=${SECRET}\n",
		"/etc/catalog/mem.properties":      "memory.max-data-per-node=128MB\nconnector.name=memory\n",
		"/etc/catalog/README.md":           "not a catalog",
		"/etc/catalog/.properties":         "connector.name=memory\n",
		"/etc/catalog/hive.properties":     "connector.name=deltaa\n",
		"/etc/catalog/nameless.properties": "a=b\n",
	}
	for path, content := range files {
		require.NoError(afero.WriteFile(fs, path, []byte(content), 0644))
	}

	var out bytes.Buffer
	err = validateCatalogs(fs, "/etc/catalog", translators, &out)
	require.Error(err)
	require.True(ErrInvalidCatalogs.Is(err))
	require.Contains(err.Error(), "2 invalid catalog(s)")
	require.NotContains(out.String(), "${SECRET}")
	require.NotContains(out.String(), "128MB")

	var report validationReport
	require.NoError(yaml.Unmarshal(out.Bytes(), &report))
	require.Equal("/etc/catalog", report.Directory)
	require.Equal([]catalogReport{
		{
			Name:      "hive",
			Connector: "deltaa",
			Keys:      []string{"connector.name"},
			Error:     "unsupported connector deltaa, maybe you mean delta?",
		},
		{
			Name:      "lake",
			Connector: "delta",
			Keys:      []string{"connector.name", "hive.s3.aws-secret-key"},
			Valid:     true,
		},
		{
			Name:      "mem",
			Connector: "memory",
			Keys:      []string{"connector.name", "memory.max-data-per-node"},
			Valid:     true,
		},
		{
			Name:  "nameless",
			Keys:  []string{"a"},
			Error: "Missing configuration property connector.name",
		},
	}, report.Catalogs)
}

func TestValidateCatalogsAllValid(t *testing.T) {
	require := require.New(t)

	translators, err := supportedTranslators()
	require.NoError(err)

	fs := afero.NewMemMapFs()
	require.NoError(afero.WriteFile(fs, "/c/mem.properties", []byte("connector.name=memory\n"), 0644))

	var out bytes.Buffer
	require.NoError(validateCatalogs(fs, "/c", translators, &out))
	require.Contains(out.String(), "valid: true")

	require.Error(validateCatalogs(fs, "/missing", translators, &out))
}

func TestRootCommand(t *testing.T) {
	require := require.New(t)

	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch([]string{"serve", "validate-catalogs"}, names)
	require.NotNil(root.PersistentFlags().Lookup("config"))
}
