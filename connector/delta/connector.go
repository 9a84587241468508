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

package delta

import (
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-native-worker/config"
	"github.com/dolthub/go-native-worker/connector"
)

// Connector reads the Delta tables of one catalog.
type Connector struct {
	id       string
	pushdown *bool
}

var _ connector.Connector = (*Connector)(nil)

// ID implements the connector.Connector interface.
func (c *Connector) ID() string { return c.id }

// Close implements the connector.Connector interface.
func (c *Connector) Close() error { return nil }

// PushdownFilterEnabled returns the catalog pushdown setting, and whether
// the catalog sets it at all.
func (c *Connector) PushdownFilterEnabled() (bool, bool) {
	if c.pushdown == nil {
		return false, false
	}
	return *c.pushdown, true
}

// Factory creates Delta connectors.
type Factory struct{}

var _ connector.Factory = Factory{}

// NewFactory returns a Delta connector factory.
func NewFactory() Factory { return Factory{} }

// Name implements the connector.Factory interface.
func (Factory) Name() string { return ConnectorName }

// NewConnector implements the connector.Factory interface.
func (Factory) NewConnector(id string, props config.Properties, _, _ connector.Executor) (connector.Connector, error) {
	c := &Connector{id: id}

	if _, ok := props.Lookup(PushdownFilterEnabledProperty); ok {
		enabled, err := props.Bool(PushdownFilterEnabledProperty, false)
		if err != nil {
			return nil, err
		}
		c.pushdown = &enabled
	}

	logrus.WithFields(logrus.Fields{
		"catalog":   id,
		"connector": ConnectorName,
	}).Debug("created connector")

	return c, nil
}
