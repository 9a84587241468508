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
	"github.com/prometheus/client_golang/prometheus"
)

// Registration outcomes.
const (
	OutcomeSuccess              = "success"
	OutcomeInvalidInput         = "invalid_input"
	OutcomeDuplicate            = "duplicate"
	OutcomeMissingConnectorType = "missing_connector_type"
	OutcomeUnsupportedConnector = "unsupported_connector"
	OutcomeConstructionFailed   = "construction_failed"
	OutcomeError                = "error"
)

// Metrics counts catalog registrations.
type Metrics struct {
	Registrations       *prometheus.CounterVec
	PersistenceFailures prometheus.Counter
}

// NewMetrics returns the catalog metrics, registered with reg when not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "native_worker",
			Subsystem: "catalog",
			Name:      "registrations_total",
			Help:      "Catalog registrations, by source and outcome.",
		}, []string{"source", "outcome"}),
		PersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "native_worker",
			Subsystem: "catalog",
			Name:      "persistence_failures_total",
			Help:      "Catalogs registered at runtime that could not be written to disk.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Registrations, m.PersistenceFailures} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case ErrInvalidInput.Is(err):
		return OutcomeInvalidInput
	case ErrDuplicateCatalog.Is(err):
		return OutcomeDuplicate
	case ErrMissingConnectorType.Is(err):
		return OutcomeMissingConnectorType
	case ErrUnsupportedConnector.Is(err):
		return OutcomeUnsupportedConnector
	case ErrConnectorConstructionFailed.Is(err):
		return OutcomeConstructionFailed
	default:
		return OutcomeError
	}
}
