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

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/dolthub/go-native-worker/announcer"
	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
	"github.com/dolthub/go-native-worker/internal/similartext"
)

// ScanPolicy tells how a directory scan reacts to a catalog failing to
// register.
type ScanPolicy int

const (
	// FailFast stops the scan at the first failure.
	FailFast ScanPolicy = iota
	// ContinueOnError logs each failure, registers the remaining catalogs
	// and returns every failure at the end.
	ContinueOnError
)

// Registration sources, used as metric labels.
const (
	sourceDirectory = "directory"
	sourceRequest   = "request"
	sourceAPI       = "api"
)

// Options configures a Manager.
type Options struct {
	// Fs is the filesystem catalogs are read from and persisted to.
	Fs afero.Fs
	// DynamicCatalogPath is where catalogs registered by request are
	// persisted. Empty disables persistence.
	DynamicCatalogPath string
	ScanPolicy         ScanPolicy
	// IO and CPU are handed to every connector created.
	IO, CPU   connector.Executor
	Announcer announcer.Announcer
	Metrics   *Metrics
}

// Manager validates and registers catalogs.
type Manager struct {
	store       *Store
	translators *connector.TranslatorRegistry

	fs          afero.Fs
	dynamicPath string
	policy      ScanPolicy
	io, cpu     connector.Executor
	metrics     *Metrics
	log         *logrus.Entry

	// announceMu orders announcements so that the last catalog names
	// handed to the announcer are the most recent ones.
	announceMu sync.Mutex
	announcer  announcer.Announcer
}

// NewManager returns a manager registering catalogs in store. Only
// connectors with a translator in translators can be registered.
func NewManager(store *Store, translators *connector.TranslatorRegistry, opts Options) *Manager {
	m := &Manager{
		store:       store,
		translators: translators,
		fs:          opts.Fs,
		dynamicPath: opts.DynamicCatalogPath,
		policy:      opts.ScanPolicy,
		io:          opts.IO,
		cpu:         opts.CPU,
		announcer:   opts.Announcer,
		metrics:     opts.Metrics,
		log:         logrus.WithField("component", "catalog"),
	}

	if m.fs == nil {
		m.fs = afero.NewOsFs()
	}
	if m.announcer == nil {
		m.announcer = announcer.Noop{}
	}
	if m.metrics == nil {
		m.metrics, _ = NewMetrics(nil)
	}

	return m
}

// Store returns the catalog store of the manager.
func (m *Manager) Store() *Store {
	return m.store
}

// Outcome is a catalog registered by request, along with what is needed to
// persist it.
type Outcome struct {
	Catalog *Catalog
	// PropertiesText is the catalog file content, with environment
	// variable references unresolved.
	PropertiesText string
	// PersistPath is where the catalog file goes, empty when persistence
	// is disabled.
	PersistPath string
}

// RegisterCatalog registers a catalog of the given properties.
func (m *Manager) RegisterCatalog(ctx context.Context, name string, props config.Properties) (*Catalog, error) {
	return m.register(ctx, sourceAPI, name, props)
}

func (m *Manager) register(ctx context.Context, source, name string, props config.Properties) (*Catalog, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "catalog.register")
	span.SetTag("catalog", name)
	span.SetTag("source", source)
	defer span.Finish()

	keys := props.Keys()
	sort.Strings(keys)
	log := m.log.WithFields(logrus.Fields{
		"catalog": name,
		"source":  source,
		"keys":    keys,
	})
	log.Info("registering catalog")

	c, err := m.registerCatalog(name, props)
	m.metrics.Registrations.WithLabelValues(source, outcome(err)).Inc()
	if err != nil {
		span.SetTag("error", true)
		log.WithError(err).Warn("unable to register catalog")
		return nil, err
	}

	log.WithField("connector", c.ConnectorName).Info("registered catalog")

	return c, nil
}

func (m *Manager) registerCatalog(name string, props config.Properties) (*Catalog, error) {
	connectorName, ok := props.Lookup(connector.NameProperty)
	if !ok {
		return nil, ErrMissingConnectorType.New(name)
	}

	if !m.translators.Has(connectorName) {
		similar := similartext.Find(m.translators.Names(), connectorName)
		return nil, ErrUnsupportedConnector.New(name, connectorName+similar)
	}

	factory, err := m.store.Connectors().Factory(connectorName)
	if err != nil {
		return nil, ErrUnsupportedConnector.New(name, connectorName)
	}

	c, err := New(name, connectorName, props)
	if err != nil {
		return nil, err
	}

	err = m.store.Register(c, func() (connector.Connector, error) {
		conn, err := factory.NewConnector(name, c.Properties.Clone(), m.io, m.cpu)
		if err != nil {
			return nil, ErrConnectorConstructionFailed.Wrap(err, connectorName, name)
		}
		return conn, nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// RegisterFromDirectory registers a catalog for each .properties file of
// dir, named after the file. Files are registered in name order.
func (m *Manager) RegisterFromDirectory(ctx context.Context, dir string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalog.RegisterFromDirectory")
	span.SetTag("path", dir)
	defer span.Finish()

	return m.scan(ctx, dir, false)
}

// RestoreFromDirectory registers the catalogs persisted in dir like
// RegisterFromDirectory, skipping the ones already registered.
func (m *Manager) RestoreFromDirectory(ctx context.Context, dir string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "catalog.RestoreFromDirectory")
	span.SetTag("path", dir)
	defer span.Finish()

	return m.scan(ctx, dir, true)
}

func (m *Manager) scan(ctx context.Context, dir string, skipRegistered bool) error {

	infos, err := afero.ReadDir(m.fs, dir)
	if err != nil {
		return err
	}

	var errs []error
	for _, info := range infos {
		if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), config.PropertiesExtension) {
			continue
		}

		name := strings.TrimSuffix(info.Name(), config.PropertiesExtension)
		if name == "" {
			continue
		}

		path := filepath.Join(dir, info.Name())
		if skipRegistered && m.store.Contains(name) {
			m.log.WithFields(logrus.Fields{
				"catalog": name,
				"path":    path,
			}).Warn("catalog already registered, skipping persisted file")
			continue
		}

		err := m.registerFile(ctx, name, path)
		if err == nil {
			continue
		}

		if m.policy == FailFast {
			return err
		}

		m.log.WithFields(logrus.Fields{
			"catalog": name,
			"path":    path,
		}).WithError(err).Error("unable to register catalog, skipping")
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (m *Manager) registerFile(ctx context.Context, name, path string) error {
	props, err := config.ReadFile(m.fs, path)
	if err != nil {
		err = ErrInvalidInput.Wrap(err, name)
		m.metrics.Registrations.WithLabelValues(sourceDirectory, outcome(err)).Inc()
		return err
	}

	_, err = m.register(ctx, sourceDirectory, name, props)
	return err
}

// RegisterFromRequest registers a catalog from a JSON object of string
// properties. Values of the form ${VAR} are resolved from the environment
// for the connector, and kept unresolved in the returned properties text.
func (m *Manager) RegisterFromRequest(ctx context.Context, name string, body []byte) (*Outcome, error) {
	if m.store.Contains(name) {
		err := ErrDuplicateCatalog.New(name)
		m.metrics.Registrations.WithLabelValues(sourceRequest, outcome(err)).Inc()
		return nil, err
	}

	props, text, err := config.ReadJSON(body)
	if err != nil {
		err = ErrInvalidInput.Wrap(err, name)
		m.metrics.Registrations.WithLabelValues(sourceRequest, outcome(err)).Inc()
		return nil, err
	}

	c, err := m.register(ctx, sourceRequest, name, props)
	if err != nil {
		return nil, err
	}

	o := &Outcome{Catalog: c, PropertiesText: text}
	if m.dynamicPath != "" {
		o.PersistPath = PropertiesPath(m.dynamicPath, name)
	}
	return o, nil
}

// Announce publishes the registered catalogs to the coordinator, without
// waiting for the announcement to complete.
func (m *Manager) Announce() {
	m.announceMu.Lock()
	defer m.announceMu.Unlock()

	m.announcer.UpdateConnectorIDs(m.store.Names())
	m.announcer.SendRequest()
}

// Persist writes the catalog file of a catalog registered by request. A
// failure is logged and counted, the catalog stays registered.
func (m *Manager) Persist(o *Outcome) error {
	if o == nil || o.PersistPath == "" {
		return nil
	}

	if err := WritePropertiesFile(m.fs, o.PersistPath, o.PropertiesText); err != nil {
		m.metrics.PersistenceFailures.Inc()
		m.log.WithFields(logrus.Fields{
			"catalog": o.Catalog.Name,
			"path":    o.PersistPath,
		}).WithError(err).Error("unable to persist catalog, it will not survive a restart")
		return err
	}

	m.log.WithFields(logrus.Fields{
		"catalog": o.Catalog.Name,
		"path":    o.PersistPath,
	}).Info("persisted catalog")
	return nil
}
