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

// Package tracing sets up the Jaeger tracer of a worker.
package tracing

import (
	"fmt"
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"
	errors "gopkg.in/src-d/go-errors.v1"
)

// DefaultServiceName is the service name reported when JAEGER_SERVICE_NAME
// is not set.
const DefaultServiceName = "native-worker"

// ErrTracerInit is returned when the tracer cannot be created.
var ErrTracerInit = errors.NewKind("could not initialize jaeger tracer")

// Config of the tracer. Everything else is read from the JAEGER_*
// environment variables.
type Config struct {
	// ServiceName overrides the default service name. JAEGER_SERVICE_NAME
	// takes precedence over both.
	ServiceName string
	// Registerer receives the tracer metrics. They are discarded when nil.
	Registerer prometheus.Registerer
}

// New creates a tracer and installs it as the global tracer. The returned
// io.Closer flushes pending spans.
func New(c Config, opts ...jaegercfg.Option) (opentracing.Tracer, io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, nil, ErrTracerInit.Wrap(err)
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = c.ServiceName
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	var factory metrics.Factory = metrics.NullFactory
	if c.Registerer != nil {
		factory = jprom.New(jprom.WithRegisterer(c.Registerer))
	}

	options := append([]jaegercfg.Option{
		jaegercfg.Metrics(factory),
		jaegercfg.Logger(logger{logrus.WithField("component", "tracing")}),
	}, opts...)

	tracer, closer, err := cfg.NewTracer(options...)
	if err != nil {
		return nil, nil, ErrTracerInit.Wrap(err)
	}
	opentracing.SetGlobalTracer(tracer)

	return tracer, closer, nil
}

type logger struct {
	entry *logrus.Entry
}

func (l logger) Error(msg string) {
	l.entry.Error(msg)
}

func (l logger) Infof(msg string, args ...interface{}) {
	l.entry.Info(fmt.Sprintf(msg, args...))
}
