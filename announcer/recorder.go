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

import "sync"

// Recorder is an Announcer remembering what it was asked to announce.
type Recorder struct {
	mu           sync.Mutex
	connectorIDs []string
	requests     int
}

var _ Announcer = (*Recorder)(nil)

// UpdateConnectorIDs implements the Announcer interface.
func (r *Recorder) UpdateConnectorIDs(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectorIDs = append([]string(nil), ids...)
}

// SendRequest implements the Announcer interface.
func (r *Recorder) SendRequest() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
}

// ConnectorIDs returns the last connector ids received.
func (r *Recorder) ConnectorIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.connectorIDs...)
}

// Requests returns the number of announcements requested.
func (r *Recorder) Requests() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests
}
