// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sourcier

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/elcoosp/sourcier/source"
	"github.com/elcoosp/sourcier/span"
)

// Batch finalizes many registries, one per compilation unit, sharing one
// [source.Stats] across all of them.
//
// A zero Batch is ready to use.
type Batch[Id span.ID] struct {
	// The maximum parallelism to use when finalizing. If unspecified or set
	// to a non-positive value, then min(runtime.NumCPU(),
	// runtime.GOMAXPROCS(-1)) will be used.
	MaxParallelism int

	// Stats installed into every unit before it finalizes. If nil, a fresh
	// Stats is created for the batch, so later units still size themselves
	// off earlier ones.
	Stats *source.Stats
}

// Run finalizes every unit, at most MaxParallelism at a time.
//
// Every unit is attempted even when one fails; the first failure in unit
// order is returned, wrapped with the unit's index. Canceling ctx abandons
// units that have not yet started, and those fail with the context's error.
func (b *Batch[Id]) Run(ctx context.Context, units ...*source.Map[Id]) error {
	if len(units) == 0 {
		return nil
	}

	par := b.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}

	stats := b.Stats
	if stats == nil {
		stats = new(source.Stats)
	}

	sem := semaphore.NewWeighted(int64(par))
	errs := make([]error, len(units))

	var wg sync.WaitGroup
	for i, unit := range units {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				errs[i] = fmt.Errorf("unit %d: %w", i, err)
				return
			}
			defer sem.Release(1)

			unit.Stats = stats
			if err := unit.Finalize(); err != nil {
				errs[i] = fmt.Errorf("unit %d: %w", i, err)
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
