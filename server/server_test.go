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

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-native-worker/announcer"
	"github.com/dolthub/go-native-worker/catalog"
	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/connector/memory"
)

type serverTest struct {
	server    *Server
	fs        afero.Fs
	announcer *announcer.Recorder
	manager   *catalog.Manager
}

func newServerTest(t *testing.T) *serverTest {
	t.Helper()
	require := require.New(t)

	registry := connector.NewRegistry()
	require.NoError(registry.RegisterFactory(memory.NewFactory()))

	translators := connector.NewTranslatorRegistry()
	require.NoError(translators.Register(memory.ConnectorName, memory.NewTranslator()))

	reg := prometheus.NewRegistry()
	metrics, err := catalog.NewMetrics(reg)
	require.NoError(err)

	fs := afero.NewMemMapFs()
	rec := &announcer.Recorder{}
	manager := catalog.NewManager(catalog.NewStore(registry), translators, catalog.Options{
		Fs:                 fs,
		DynamicCatalogPath: "/data/catalog",
		Announcer:          rec,
		Metrics:            metrics,
	})

	return &serverTest{
		server:    New("127.0.0.1:0", manager, reg),
		fs:        fs,
		announcer: rec,
		manager:   manager,
	}
}

func (s *serverTest) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w, req)
	return w
}

func TestRegisterCatalog(t *testing.T) {
	require := require.New(t)
	s := newServerTest(t)

	w := s.do(http.MethodPost, "/v1/catalog/lake", `{"connector.name": "memory", "memory.max-data-per-node": "128MB"}`)
	require.Equal(http.StatusOK, w.Code)
	require.Equal("Registered catalog: lake", w.Body.String())

	require.True(s.manager.Store().Contains("lake"))
	require.Equal([]string{"lake"}, s.announcer.ConnectorIDs())
	require.Equal(1, s.announcer.Requests())

	props, err := config.ReadFile(s.fs, "/data/catalog/lake.properties")
	require.NoError(err)
	require.Equal("memory", props.Get("connector.name"))
}

func TestRegisterCatalogFailures(t *testing.T) {
	require := require.New(t)
	s := newServerTest(t)

	w := s.do(http.MethodPost, "/v1/catalog/bad", `{"connector.name": "unsupported-type"}`)
	require.Equal(http.StatusBadRequest, w.Code)
	require.Contains(w.Body.String(), "Catalog registration failed")
	require.Contains(w.Body.String(), "unsupported-type")

	w = s.do(http.MethodPost, "/v1/catalog/bad", `{"connector.name": 1}`)
	require.Equal(http.StatusBadRequest, w.Code)
	require.Contains(w.Body.String(), "Catalog registration failed")

	w = s.do(http.MethodPost, "/v1/catalog/mem", `{"connector.name": "memory"}`)
	require.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/catalog/mem", `{"connector.name": "memory"}`)
	require.Equal(http.StatusBadRequest, w.Code)
	require.Contains(w.Body.String(), "Catalog ['mem'] is already present.")

	require.Equal([]string{"mem"}, s.manager.Store().Names())
	require.Equal(1, s.announcer.Requests())

	exists, err := afero.Exists(s.fs, "/data/catalog/bad.properties")
	require.NoError(err)
	require.False(exists)
}

func TestListCatalogs(t *testing.T) {
	require := require.New(t)
	s := newServerTest(t)

	w := s.do(http.MethodGet, "/v1/catalog", "")
	require.Equal(http.StatusOK, w.Code)

	var names []string
	require.NoError(json.Unmarshal(w.Body.Bytes(), &names))
	require.Empty(names)

	require.Equal(http.StatusOK, s.do(http.MethodPost, "/v1/catalog/b", `{"connector.name": "memory"}`).Code)
	require.Equal(http.StatusOK, s.do(http.MethodPost, "/v1/catalog/a", `{"connector.name": "memory"}`).Code)

	w = s.do(http.MethodGet, "/v1/catalog", "")
	require.NoError(json.Unmarshal(w.Body.Bytes(), &names))
	require.Equal([]string{"b", "a"}, names)
}

func TestMetrics(t *testing.T) {
	require := require.New(t)
	s := newServerTest(t)

	require.Equal(http.StatusOK, s.do(http.MethodPost, "/v1/catalog/mem", `{"connector.name": "memory"}`).Code)

	w := s.do(http.MethodGet, "/v1/metrics", "")
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), "native_worker_catalog_registrations_total")
}

func TestMethodNotAllowed(t *testing.T) {
	require := require.New(t)
	s := newServerTest(t)

	w := s.do(http.MethodGet, "/v1/catalog/mem", "")
	require.Equal(http.StatusMethodNotAllowed, w.Code)
}
