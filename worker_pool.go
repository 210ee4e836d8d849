// Copyright 2025 Agentic World, LLC (Sherin Thomas)
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

package pagesnake

import (
	"context"
	"sync"
)

// workerPool runs batch jobs on a fixed number of goroutines
type workerPool struct {
	jobs chan func()
	wg   sync.WaitGroup
	ctx  context.Context
}

// newWorkerPool starts workers goroutines reading from a queue of queueSize
func newWorkerPool(ctx context.Context, workers, queueSize int) *workerPool {
	if workers < 1 {
		workers = 1
	}
	wp := &workerPool{
		jobs: make(chan func(), queueSize),
		ctx:  ctx,
	}
	for i := 0; i < workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *workerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			job()
		case <-wp.ctx.Done():
			return
		}
	}
}

// submit blocks while the queue is full. It fails once ctx is cancelled.
func (wp *workerPool) submit(job func()) error {
	select {
	case wp.jobs <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// close stops accepting jobs and waits for the running ones
func (wp *workerPool) close() {
	close(wp.jobs)
	wp.wg.Wait()
}
