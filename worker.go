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

// Package worker wires the catalog and connector layers of a native worker
// into a runnable node.
package worker

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dolthub/go-native-worker/announcer"
	"github.com/dolthub/go-native-worker/catalog"
	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/connector/delta"
	"github.com/dolthub/go-native-worker/connector/memory"
	"github.com/dolthub/go-native-worker/expression"
	"github.com/dolthub/go-native-worker/protocol"
	"github.com/dolthub/go-native-worker/server"
	"github.com/dolthub/go-native-worker/types"
)

// Options customizes a Worker beyond its node configuration.
type Options struct {
	// Fs is the filesystem catalogs are read from and persisted to. The
	// OS filesystem is used when nil.
	Fs afero.Fs
	// Registry receives the worker metrics. A new registry is created
	// when nil.
	Registry *prometheus.Registry
	// Announcer overrides the announcer built from the node
	// configuration.
	Announcer announcer.Announcer
}

// Worker is a worker node: its connector registries, its catalogs and
// the HTTP server registering them.
type Worker struct {
	Node        *config.Node
	IO, CPU     *connector.PoolExecutor
	Connectors  *connector.Registry
	Translators *connector.TranslatorRegistry
	Catalogs    *catalog.Manager
	Registry    *prometheus.Registry
	Parser      types.Parser
	Converter   expression.Converter

	fs        afero.Fs
	announcer announcer.Announcer
	periodic  *announcer.HTTPAnnouncer
	server    *server.Server
	log       *logrus.Entry
}

// New creates a worker with the Delta and memory connectors registered.
func New(node *config.Node, opts Options) (*Worker, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
	}

	w := &Worker{
		Node:        node,
		IO:          connector.NewExecutor("io", node.NumIOThreads),
		CPU:         connector.NewExecutor("cpu", node.NumCPUThreads),
		Connectors:  connector.NewRegistry(),
		Translators: connector.NewTranslatorRegistry(),
		Registry:    reg,
		Parser:      types.NewParser(),
		fs:          fs,
		log:         logrus.WithField(NodeLogField, node.ID),
	}
	w.Converter = expression.NewConverter(w.Parser)

	for _, f := range []connector.Factory{delta.NewFactory(), memory.NewFactory()} {
		if err := w.Connectors.RegisterFactory(f); err != nil {
			return nil, err
		}
	}

	store := catalog.NewStore(w.Connectors)
	translators := map[string]connector.Translator{
		delta.ConnectorName:  delta.NewTranslator(node.PushdownFilterEnabled, w.Connectors.Connector),
		memory.ConnectorName: memory.NewTranslator(),
	}
	for name, t := range translators {
		if err := w.Translators.Register(name, t); err != nil {
			return nil, err
		}
	}

	if err := w.setupAnnouncer(opts.Announcer); err != nil {
		return nil, err
	}

	metrics, err := catalog.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	policy := catalog.FailFast
	if node.ScanContinueOnError {
		policy = catalog.ContinueOnError
	}

	w.Catalogs = catalog.NewManager(store, w.Translators, catalog.Options{
		Fs:                 fs,
		DynamicCatalogPath: node.DynamicCatalogPath,
		ScanPolicy:         policy,
		IO:                 w.IO,
		CPU:                w.CPU,
		Announcer:          w.announcer,
		Metrics:            metrics,
	})
	w.server = server.New(node.Address, w.Catalogs, reg)

	return w, nil
}

func (w *Worker) setupAnnouncer(a announcer.Announcer) error {
	if a != nil {
		w.announcer = a
		return nil
	}

	if w.Node.DiscoveryURI == "" {
		w.log.Warn("no discovery URI configured, the worker will not be announced")
		w.announcer = announcer.Noop{}
		return nil
	}

	httpAnnouncer, err := announcer.New(announcer.Options{
		DiscoveryURI: w.Node.DiscoveryURI,
		NodeID:       w.Node.ID,
		Environment:  w.Node.Environment,
		HTTPURI:      httpURI(w.Node.Address),
		Interval:     w.Node.AnnouncementInterval,
		Registerer:   w.Registry,
	})
	if err != nil {
		return err
	}

	w.announcer = httpAnnouncer
	w.periodic = httpAnnouncer
	return nil
}

func httpURI(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" {
		host, err = os.Hostname()
		if err != nil {
			host = "localhost"
		}
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Handler returns the HTTP handler of the worker.
func (w *Worker) Handler() http.Handler {
	return w.server.Handler()
}

// LoadCatalogs registers the catalogs of the catalog configuration
// directory, then the ones persisted in the dynamic catalog directory by a
// previous run. A persisted catalog whose name is already taken by the
// configuration directory is skipped, and both directories being the same
// scans it once. Missing directories are skipped.
func (w *Worker) LoadCatalogs(ctx context.Context) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "worker.LoadCatalogs")
	defer span.Finish()

	configDir, dynamicDir := w.Node.CatalogConfigDir, w.Node.DynamicCatalogPath
	if dynamicDir != "" && configDir != "" && filepath.Clean(dynamicDir) == filepath.Clean(configDir) {
		dynamicDir = ""
	}

	scans := []struct {
		dir  string
		scan func(context.Context, string) error
	}{
		{configDir, w.Catalogs.RegisterFromDirectory},
		{dynamicDir, w.Catalogs.RestoreFromDirectory},
	}

	for _, s := range scans {
		if s.dir == "" {
			continue
		}

		exists, err := afero.DirExists(w.fs, s.dir)
		if err != nil {
			return err
		}
		if !exists {
			w.log.WithField(PathLogField, s.dir).Warn("catalog directory does not exist, skipping")
			continue
		}

		if err := s.scan(ctx, s.dir); err != nil {
			span.SetTag("error", true)
			return err
		}
	}

	w.log.WithField("catalogs", w.Catalogs.Store().Names()).Info("catalogs loaded")
	return nil
}

// Start loads the catalogs and announces the worker, periodically when an
// announcement interval is configured.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.LoadCatalogs(ctx); err != nil {
		return err
	}

	w.Catalogs.Announce()
	if w.periodic != nil {
		w.periodic.Start()
	}
	return nil
}

// Serve serves the HTTP API on l until Close is called.
func (w *Worker) Serve(l net.Listener) error {
	return w.server.Serve(l)
}

// ListenAndServe serves the HTTP API on the configured address until
// Close is called.
func (w *Worker) ListenAndServe() error {
	return w.server.ListenAndServe()
}

// Close stops the server and the announcements, then closes every
// connector and the executors. The first error is returned.
func (w *Worker) Close(ctx context.Context) error {
	var first error
	if err := w.server.Shutdown(ctx); err != nil {
		first = err
	}

	if w.periodic != nil {
		w.periodic.Stop()
	}

	if err := w.Connectors.Close(); err != nil && first == nil {
		first = err
	}

	w.IO.Shutdown()
	w.CPU.Shutdown()
	return first
}

// TranslatorFor returns the translator of the connector of a catalog.
func (w *Worker) TranslatorFor(catalogID string) (connector.Translator, error) {
	c, err := w.Catalogs.Store().Catalog(catalogID)
	if err != nil {
		return nil, err
	}
	return w.Translators.Translator(c.ConnectorName)
}

// DecodeSplit decodes a split sent by the coordinator.
func (w *Worker) DecodeSplit(data []byte) (protocol.Split, error) {
	return protocol.UnmarshalSplit(data, w.Translators.Protocol)
}

// DecodeTableHandle decodes a table handle sent by the coordinator.
func (w *Worker) DecodeTableHandle(data []byte) (protocol.TableHandle, error) {
	return protocol.UnmarshalTableHandle(data, w.Translators.Protocol)
}

// DecodeColumnHandle decodes a column handle sent by the coordinator.
func (w *Worker) DecodeColumnHandle(data []byte) (protocol.ColumnHandle, error) {
	return protocol.UnmarshalColumnHandle(data, w.Translators.Protocol)
}

// ToNativeSplit converts a split into the split of its connector.
func (w *Worker) ToNativeSplit(ctx context.Context, split protocol.Split, sc protocol.SplitContext) (connector.Split, error) {
	span := startTranslation(ctx, "worker.ToNativeSplit", split.ConnectorID)
	defer span.Finish()

	t, err := w.TranslatorFor(split.ConnectorID)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	s, err := t.ToNativeSplit(split.ConnectorID, split.ConnectorSplit, sc)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}
	return s, nil
}

// ToNativeColumnHandle converts a column handle of a catalog.
func (w *Worker) ToNativeColumnHandle(ctx context.Context, catalogID string, column protocol.ColumnHandle) (connector.ColumnHandle, error) {
	span := startTranslation(ctx, "worker.ToNativeColumnHandle", catalogID)
	defer span.Finish()

	t, err := w.TranslatorFor(catalogID)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	c, err := t.ToNativeColumnHandle(column, w.Parser)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}
	return c, nil
}

// ToNativeTableHandle converts a table handle and its layout.
func (w *Worker) ToNativeTableHandle(ctx context.Context, table protocol.TableHandle) (connector.TableHandle, error) {
	span := startTranslation(ctx, "worker.ToNativeTableHandle", table.ConnectorID)
	defer span.Finish()

	t, err := w.TranslatorFor(table.ConnectorID)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	h, err := t.ToNativeTableHandle(table, w.Converter, w.Parser)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}
	return h, nil
}

func startTranslation(ctx context.Context, operation, catalogID string) opentracing.Span {
	span, _ := opentracing.StartSpanFromContext(ctx, operation)
	span.SetTag(CatalogLogField, catalogID)
	return span
}
