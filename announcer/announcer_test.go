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

package announcer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type discovery struct {
	mu       sync.Mutex
	status   int
	wait     chan struct{}
	paths    []string
	received []announcement
}

func (d *discovery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var a announcement
	_ = json.Unmarshal(body, &a)

	d.mu.Lock()
	d.paths = append(d.paths, r.Method+" "+r.URL.Path)
	d.received = append(d.received, a)
	status := d.status
	wait := d.wait
	d.mu.Unlock()

	if wait != nil {
		<-wait
	}

	w.WriteHeader(status)
}

func (d *discovery) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.received)
}

func noRetries() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 0
	return c
}

func TestAnnounce(t *testing.T) {
	require := require.New(t)

	d := &discovery{status: http.StatusAccepted}
	srv := httptest.NewServer(d)
	defer srv.Close()

	reg := prometheus.NewRegistry()
	a, err := New(Options{
		DiscoveryURI: srv.URL + "/",
		NodeID:       "node-1",
		Environment:  "test",
		HTTPURI:      "http://worker:7777",
		Client:       noRetries(),
		Registerer:   reg,
	})
	require.NoError(err)

	a.UpdateConnectorIDs([]string{"tpch", "lake"})
	require.Equal([]string{"lake", "tpch"}, a.ConnectorIDs())
	require.NoError(a.Announce(context.Background()))

	require.Equal([]string{"PUT /v1/announcement/node-1"}, d.paths)
	got := d.received[0]
	require.Equal("test", got.Environment)
	require.Equal("/node-1", got.Location)
	require.Len(got.Services, 1)
	require.Equal("lake,tpch", got.Services[0].Properties["connectorIds"])
	require.Equal("http://worker:7777", got.Services[0].Properties["http"])
	require.Equal(1.0, testutil.ToFloat64(a.sent.WithLabelValues("success")))

	d.mu.Lock()
	d.status = http.StatusInternalServerError
	d.mu.Unlock()
	require.Error(a.Announce(context.Background()))
	require.Equal(1.0, testutil.ToFloat64(a.sent.WithLabelValues("failure")))

	_, err = New(Options{Registerer: reg})
	require.Error(err)
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	d := &discovery{status: http.StatusOK}
	srv := httptest.NewServer(d)
	defer srv.Close()

	a, err := New(Options{DiscoveryURI: srv.URL, NodeID: "n", Client: noRetries()})
	require.NoError(err)
	defer a.Stop()

	a.SendRequest()
	require.Eventually(func() bool { return d.count() == 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestSendRequestDoesNotWait(t *testing.T) {
	require := require.New(t)

	release := make(chan struct{})
	d := &discovery{status: http.StatusOK, wait: release}
	srv := httptest.NewServer(d)
	defer srv.Close()

	a, err := New(Options{DiscoveryURI: srv.URL, NodeID: "n", Client: noRetries()})
	require.NoError(err)
	defer a.Stop()

	a.SendRequest()
	require.Eventually(func() bool { return d.count() == 1 }, 5*time.Second, 10*time.Millisecond)

	start := time.Now()
	for i := 0; i < 5; i++ {
		a.SendRequest()
	}
	require.Less(time.Since(start), time.Second)

	close(release)
	require.Eventually(func() bool { return d.count() == 2 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.Equal(2, d.count())
}

func TestSendRequestAfterStop(t *testing.T) {
	require := require.New(t)

	d := &discovery{status: http.StatusOK}
	srv := httptest.NewServer(d)
	defer srv.Close()

	a, err := New(Options{DiscoveryURI: srv.URL, NodeID: "n", Client: noRetries()})
	require.NoError(err)

	a.Stop()
	a.SendRequest()
	a.SendRequest()
	time.Sleep(50 * time.Millisecond)
	require.Equal(0, d.count())
}

func TestPeriodicAnnouncements(t *testing.T) {
	require := require.New(t)

	d := &discovery{status: http.StatusOK}
	srv := httptest.NewServer(d)
	defer srv.Close()

	a, err := New(Options{
		DiscoveryURI: srv.URL,
		NodeID:       "n",
		Interval:     10 * time.Millisecond,
		Client:       noRetries(),
	})
	require.NoError(err)

	a.Start()
	require.Eventually(func() bool { return d.count() >= 2 }, 5*time.Second, 5*time.Millisecond)
	a.Stop()

	n := d.count()
	time.Sleep(50 * time.Millisecond)
	require.Equal(n, d.count())
	a.Stop()
}

func TestRecorder(t *testing.T) {
	require := require.New(t)

	var r Recorder
	var a Announcer = &r
	a.UpdateConnectorIDs([]string{"a"})
	a.SendRequest()
	a.SendRequest()

	require.Equal([]string{"a"}, r.ConnectorIDs())
	require.Equal(2, r.Requests())

	Noop{}.UpdateConnectorIDs(nil)
	Noop{}.SendRequest()
}
