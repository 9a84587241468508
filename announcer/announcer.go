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

// Package announcer tells the coordinator's discovery service which
// catalogs a worker serves.
package announcer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Announcer publishes the connector ids of a worker.
type Announcer interface {
	// UpdateConnectorIDs replaces the announced connector ids.
	UpdateConnectorIDs(ids []string)
	// SendRequest schedules an announcement and returns immediately.
	SendRequest()
}

// Noop is an Announcer that announces nothing.
type Noop struct{}

func (Noop) UpdateConnectorIDs([]string) {}
func (Noop) SendRequest()                {}

// Options configures an HTTP announcer.
type Options struct {
	// DiscoveryURI is the base URI of the discovery service.
	DiscoveryURI string
	NodeID       string
	Environment  string
	// HTTPURI is the URI the worker serves on.
	HTTPURI string
	// Interval is the period of unforced announcements. Zero disables
	// them.
	Interval time.Duration
	// Client overrides the HTTP client.
	Client *retryablehttp.Client
	// Registerer registers the announcement metrics when not nil.
	Registerer prometheus.Registerer
}

// HTTPAnnouncer announces the worker with HTTP PUT requests to the
// discovery service, retrying failed requests.
type HTTPAnnouncer struct {
	opts   Options
	client *retryablehttp.Client
	log    *logrus.Entry
	sent   *prometheus.CounterVec

	mu           sync.Mutex
	connectorIDs []string

	// forced holds at most one pending forced announcement; requests made
	// while one is pending are coalesced into it.
	forced    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

var _ Announcer = (*HTTPAnnouncer)(nil)

// New returns an HTTP announcer.
func New(opts Options) (*HTTPAnnouncer, error) {
	client := opts.Client
	if client == nil {
		client = retryablehttp.NewClient()
		client.RetryMax = 3
		client.RetryWaitMax = 5 * time.Second
	}

	log := logrus.WithFields(logrus.Fields{
		"component": "announcer",
		"node":      opts.NodeID,
	})
	client.Logger = leveledLogger{log}

	a := &HTTPAnnouncer{
		opts:   opts,
		client: client,
		log:    log,
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "native_worker",
			Name:      "announcements_total",
			Help:      "Announcements sent to the discovery service, by result.",
		}, []string{"result"}),
		forced: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	if opts.Registerer != nil {
		if err := opts.Registerer.Register(a.sent); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// UpdateConnectorIDs implements the Announcer interface.
func (a *HTTPAnnouncer) UpdateConnectorIDs(ids []string) {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	a.mu.Lock()
	a.connectorIDs = sorted
	a.mu.Unlock()
}

// ConnectorIDs returns the announced connector ids.
func (a *HTTPAnnouncer) ConnectorIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]string, len(a.connectorIDs))
	copy(ids, a.connectorIDs)
	return ids
}

// SendRequest implements the Announcer interface. The announcement is sent
// by the announcer goroutine, which is started if needed.
func (a *HTTPAnnouncer) SendRequest() {
	a.run()
	select {
	case a.forced <- struct{}{}:
	default:
	}
}

// Announce sends one announcement and waits for it.
func (a *HTTPAnnouncer) Announce(ctx context.Context) error {
	err := a.announce(ctx)
	if err != nil {
		a.sent.WithLabelValues("failure").Inc()
		a.log.WithError(err).Warn("announcement failed")
		return err
	}
	a.sent.WithLabelValues("success").Inc()
	return nil
}

type service struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

type announcement struct {
	Environment string    `json:"environment"`
	Location    string    `json:"location"`
	Pool        string    `json:"pool"`
	Services    []service `json:"services"`
}

func (a *HTTPAnnouncer) body() ([]byte, error) {
	return json.Marshal(announcement{
		Environment: a.opts.Environment,
		Location:    "/" + a.opts.NodeID,
		Pool:        "general",
		Services: []service{{
			ID:   a.opts.NodeID,
			Type: "presto",
			Properties: map[string]string{
				"coordinator":  "false",
				"connectorIds": strings.Join(a.ConnectorIDs(), ","),
				"http":         a.opts.HTTPURI,
			},
		}},
	})
}

func (a *HTTPAnnouncer) announce(ctx context.Context) error {
	body, err := a.body()
	if err != nil {
		return err
	}

	url := strings.TrimSuffix(a.opts.DiscoveryURI, "/") + "/v1/announcement/" + a.opts.NodeID
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("discovery service returned %s", resp.Status)
	}
	return nil
}

// Start starts the announcer goroutine, which sends forced announcements
// and, when an interval is configured, announces the worker every interval
// until Stop is called.
func (a *HTTPAnnouncer) Start() {
	a.run()
}

func (a *HTTPAnnouncer) run() {
	a.startOnce.Do(func() {
		go a.loop()
	})
}

func (a *HTTPAnnouncer) loop() {
	defer close(a.done)

	var tick <-chan time.Time
	if a.opts.Interval > 0 {
		ticker := time.NewTicker(a.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-a.stop:
			return
		case <-a.forced:
			_ = a.Announce(a.ctx)
		case <-tick:
			_ = a.Announce(a.ctx)
		}
	}
}

// Stop cancels the announcement in flight, if any, and stops the
// announcer goroutine. Announcements requested afterwards are dropped.
func (a *HTTPAnnouncer) Stop() {
	a.stopOnce.Do(func() {
		a.cancel()
		close(a.stop)
		a.run()
		<-a.done
	})
}

type leveledLogger struct {
	entry *logrus.Entry
}

func (l leveledLogger) fields(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.fields(kv).Error(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.fields(kv).Info(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.fields(kv).Debug(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.fields(kv).Warn(msg) }
