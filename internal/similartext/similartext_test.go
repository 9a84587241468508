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

package similartext_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/connector/delta"
	"github.com/dolthub/go-native-worker/connector/memory"
	"github.com/dolthub/go-native-worker/internal/similartext"
)

func TestFindCatalog(t *testing.T) {
	require := require.New(t)

	require.Empty(similartext.Find(nil, "lake"))

	catalogs := []string{"lake", "tpch", "hive", "warehouse"}
	require.Empty(similartext.Find(catalogs, ""))
	require.Equal(", maybe you mean lake?", similartext.Find(catalogs, "lak"))
	require.Equal(", maybe you mean tpch?", similartext.Find(catalogs, "tpch"))
	require.Empty(similartext.Find(catalogs, "analytics"))

	require.Equal(", maybe you mean lake1 or lake2?", similartext.Find([]string{"lake1", "lake2"}, "lake3"))
	require.Equal(", maybe you mean lake?", similartext.Find([]string{"lakes", "lake"}, "lake"))
}

func TestFindConnector(t *testing.T) {
	require := require.New(t)

	connectors := []string{"delta", "hive", "iceberg", "memory"}
	require.Equal(", maybe you mean delta?", similartext.Find(connectors, "deltaa"))
	require.Equal(", maybe you mean hive?", similartext.Find(connectors, "hiv"))
	require.Empty(similartext.Find(connectors, "postgresql"))
}

func TestFindFromTranslators(t *testing.T) {
	require := require.New(t)

	var none map[string]connector.Translator
	require.Empty(similartext.FindFromMap(none, "delta"))

	translators := map[string]connector.Translator{
		delta.ConnectorName:  delta.NewTranslator(false, nil),
		memory.ConnectorName: memory.NewTranslator(),
	}
	require.Equal(", maybe you mean memory?", similartext.FindFromMap(translators, "memroy"))
	require.Equal(", maybe you mean delta?", similartext.FindFromMap(translators, "delt"))
	require.Empty(similartext.FindFromMap(translators, ""))
	require.Empty(similartext.FindFromMap(translators, "unsupported-type"))
}
