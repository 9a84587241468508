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

package connector

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// Executor runs tasks on a bounded number of goroutines.
type Executor interface {
	// Submit schedules the task, blocking while every goroutine is busy.
	Submit(task func())
}

// PoolExecutor is an Executor backed by a goroutine pool.
type PoolExecutor struct {
	name string
	size int

	mu     sync.RWMutex
	pool   *pool.Pool
	closed bool
}

var _ Executor = (*PoolExecutor)(nil)

// NewExecutor returns an executor running at most size tasks at a time.
func NewExecutor(name string, size int) *PoolExecutor {
	if size < 1 {
		size = 1
	}
	return &PoolExecutor{
		name: name,
		size: size,
		pool: pool.New().WithMaxGoroutines(size),
	}
}

// Name returns the executor name.
func (e *PoolExecutor) Name() string { return e.name }

// Size returns the maximum number of tasks running at a time.
func (e *PoolExecutor) Size() int { return e.size }

// Submit implements the Executor interface. Tasks submitted after Shutdown
// are dropped.
func (e *PoolExecutor) Submit(task func()) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		logrus.WithField("executor", e.name).Warn("dropping task submitted to a stopped executor")
		return
	}

	e.pool.Go(task)
}

// Shutdown stops accepting tasks and waits for the running ones.
func (e *PoolExecutor) Shutdown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	e.pool.Wait()
}
