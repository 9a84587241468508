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
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Node configuration keys.
const (
	NodeIDKey                = "node.id"
	NodeEnvironmentKey       = "node.environment"
	HTTPAddressKey           = "http-server.address"
	DiscoveryURIKey          = "discovery.uri"
	CatalogConfigDirKey      = "catalog.config-dir"
	DynamicCatalogPathKey    = "dynamic-catalog-path"
	PushdownFilterEnabledKey = "hive.pushdown-filter-enabled"
	NumIOThreadsKey          = "connector.num-io-threads"
	NumCPUThreadsKey         = "connector.num-cpu-threads"
	AnnouncementIntervalKey  = "announcement.interval"
	ScanContinueOnErrorKey   = "catalog.scan-continue-on-error"
	TracingEnabledKey        = "tracing.enabled"
	LogLevelKey              = "log.level"
	LogFormatKey             = "log.format"

	envPrefix = "NATIVE_WORKER"
)

// Node is the configuration of a worker node.
type Node struct {
	// ID identifies the node to the coordinator. A random one is generated
	// when none is configured.
	ID string
	// Environment must match the coordinator's environment.
	Environment string
	// Address the HTTP server listens on.
	Address string
	// DiscoveryURI is the base URI of the coordinator's discovery service.
	// Announcements are disabled when empty.
	DiscoveryURI string
	// CatalogConfigDir holds the catalog files registered at startup.
	CatalogConfigDir string
	// DynamicCatalogPath is where catalogs registered at runtime are
	// persisted. Persistence is disabled when empty.
	DynamicCatalogPath string
	// PushdownFilterEnabled is the default for connectors translating
	// predicates into subfield filters.
	PushdownFilterEnabled bool
	// NumIOThreads and NumCPUThreads size the connector executors.
	NumIOThreads  int
	NumCPUThreads int
	// AnnouncementInterval is the period of unforced announcements.
	AnnouncementInterval time.Duration
	// ScanContinueOnError makes the startup catalog scan skip bad files
	// instead of failing.
	ScanContinueOnError bool
	// TracingEnabled installs a Jaeger tracer configured from the JAEGER_*
	// environment variables.
	TracingEnabled bool
	// LogLevel and LogFormat configure logrus. The format is text or json.
	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(NodeEnvironmentKey, "production")
	v.SetDefault(HTTPAddressKey, ":7777")
	v.SetDefault(CatalogConfigDirKey, "etc/catalog")
	v.SetDefault(PushdownFilterEnabledKey, false)
	v.SetDefault(NumIOThreadsKey, 30)
	v.SetDefault(NumCPUThreadsKey, 8)
	v.SetDefault(AnnouncementIntervalKey, "30s")
	v.SetDefault(ScanContinueOnErrorKey, false)
	v.SetDefault(TracingEnabledKey, false)
	v.SetDefault(LogLevelKey, "info")
	v.SetDefault(LogFormatKey, "text")
}

// LoadNode reads the node configuration from the given properties file.
// Every key can be overridden by an environment variable named after the
// key, upper cased, with dots and dashes replaced by underscores and
// prefixed by NATIVE_WORKER_. An empty path only reads the environment.
func LoadNode(fs afero.Fs, path string) (*Node, error) {
	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("properties")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	n := &Node{
		ID:                    v.GetString(NodeIDKey),
		Environment:           v.GetString(NodeEnvironmentKey),
		Address:               v.GetString(HTTPAddressKey),
		DiscoveryURI:          v.GetString(DiscoveryURIKey),
		CatalogConfigDir:      v.GetString(CatalogConfigDirKey),
		DynamicCatalogPath:    v.GetString(DynamicCatalogPathKey),
		PushdownFilterEnabled: v.GetBool(PushdownFilterEnabledKey),
		NumIOThreads:          v.GetInt(NumIOThreadsKey),
		NumCPUThreads:         v.GetInt(NumCPUThreadsKey),
		AnnouncementInterval:  v.GetDuration(AnnouncementIntervalKey),
		ScanContinueOnError:   v.GetBool(ScanContinueOnErrorKey),
		TracingEnabled:        v.GetBool(TracingEnabledKey),
		LogLevel:              v.GetString(LogLevelKey),
		LogFormat:             v.GetString(LogFormatKey),
	}

	if n.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		n.ID = id.String()
	}

	return n, nil
}
