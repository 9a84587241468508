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

package tracing

import (
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

func TestNew(t *testing.T) {
	require := require.New(t)
	t.Setenv("JAEGER_SAMPLER_TYPE", "const")
	t.Setenv("JAEGER_SAMPLER_PARAM", "1")
	t.Setenv("JAEGER_TAGS", "node=worker-1")

	previous := opentracing.GlobalTracer()
	defer opentracing.SetGlobalTracer(previous)

	reporter := jaeger.NewInMemoryReporter()
	reg := prometheus.NewRegistry()
	tracer, closer, err := New(Config{Registerer: reg}, jaegercfg.Reporter(reporter))
	require.NoError(err)
	require.Equal(tracer, opentracing.GlobalTracer())

	span := tracer.StartSpan("catalog.register")
	span.Finish()
	require.Equal(1, reporter.SpansSubmitted())

	spans := reporter.GetSpans()
	require.Equal("catalog.register", spans[0].(*jaeger.Span).OperationName())
	require.Contains(tracer.(*jaeger.Tracer).Tags(), opentracing.Tag{Key: "node", Value: "worker-1"})

	families, err := reg.Gather()
	require.NoError(err)
	require.NotEmpty(families)

	require.NoError(closer.Close())
}

func TestNewServiceName(t *testing.T) {
	require := require.New(t)
	t.Setenv("JAEGER_SAMPLER_TYPE", "const")
	t.Setenv("JAEGER_SAMPLER_PARAM", "0")

	previous := opentracing.GlobalTracer()
	defer opentracing.SetGlobalTracer(previous)

	tracer, closer, err := New(Config{ServiceName: "lake-worker"}, jaegercfg.Reporter(jaeger.NewNullReporter()))
	require.NoError(err)
	defer closer.Close()

	require.IsType(&jaeger.Tracer{}, tracer)
}

func TestNewDisabled(t *testing.T) {
	require := require.New(t)
	t.Setenv("JAEGER_DISABLED", "true")

	previous := opentracing.GlobalTracer()
	defer opentracing.SetGlobalTracer(previous)

	tracer, _, err := New(Config{})
	require.NoError(err)
	require.IsType(&opentracing.NoopTracer{}, tracer)
}

func TestNewInvalidEnv(t *testing.T) {
	require := require.New(t)
	t.Setenv("JAEGER_SAMPLER_PARAM", "not a number")

	_, _, err := New(Config{})
	require.Error(err)
	require.True(ErrTracerInit.Is(err))
}
