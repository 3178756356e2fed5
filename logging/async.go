/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package logging

import (
	"io"
	"sync"
	"sync/atomic"
)

// AsyncWriter hands writes to a background goroutine so that a slow or
// stuck output never blocks the caller. When the queue is full the write is
// dropped and counted.
type AsyncWriter struct {
	out     io.Writer
	queue   chan []byte
	done    chan struct{}
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

// NewAsyncWriter starts draining into out. size is the queue capacity.
func NewAsyncWriter(out io.Writer, size int) *AsyncWriter {
	if size <= 0 {
		size = 1
	}
	a := &AsyncWriter{
		out:   out,
		queue: make(chan []byte, size),
		done:  make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *AsyncWriter) drain() {
	defer close(a.done)
	for p := range a.queue {
		// Output errors have nowhere to go.
		_, _ = a.out.Write(p)
	}
}

// Write queues a copy of p. It always reports success.
func (a *AsyncWriter) Write(p []byte) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.dropped.Add(1)
		return len(p), nil
	}
	select {
	case a.queue <- append([]byte(nil), p...):
	default:
		a.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped returns how many writes were discarded.
func (a *AsyncWriter) Dropped() uint64 {
	return a.dropped.Load()
}

// Close stops accepting writes and waits for queued ones to reach the output.
func (a *AsyncWriter) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()
	<-a.done
	return nil
}
