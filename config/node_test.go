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

package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoadNode(t *testing.T) {
	require := require.New(t)

	fs := afero.NewMemMapFs()
	require.NoError(afero.WriteFile(fs, "/etc/config.properties", []byte(
		"node.id=worker-1\n"+
			"discovery.uri=http://coordinator:8080\n"+
			"catalog.config-dir=/etc/catalog\n"+
			"hive.pushdown-filter-enabled=true\n"+
			"connector.num-io-threads=4\n"+
			"announcement.interval=5s\n"), 0644))

	t.Setenv("NATIVE_WORKER_DYNAMIC_CATALOG_PATH", "/var/catalog")

	n, err := LoadNode(fs, "/etc/config.properties")
	require.NoError(err)
	require.Equal("worker-1", n.ID)
	require.Equal("production", n.Environment)
	require.Equal("http://coordinator:8080", n.DiscoveryURI)
	require.Equal("/etc/catalog", n.CatalogConfigDir)
	require.Equal("/var/catalog", n.DynamicCatalogPath)
	require.True(n.PushdownFilterEnabled)
	require.Equal(4, n.NumIOThreads)
	require.Equal(8, n.NumCPUThreads)
	require.Equal(5*time.Second, n.AnnouncementInterval)
	require.False(n.ScanContinueOnError)
	require.False(n.TracingEnabled)
	require.Equal("info", n.LogLevel)
	require.Equal("text", n.LogFormat)
}

func TestLoadNodeGeneratesID(t *testing.T) {
	require := require.New(t)

	n, err := LoadNode(afero.NewMemMapFs(), "")
	require.NoError(err)
	require.Len(n.ID, 36)
	require.Equal("", n.DynamicCatalogPath)

	_, err = LoadNode(afero.NewMemMapFs(), "/missing.properties")
	require.Error(err)
}
