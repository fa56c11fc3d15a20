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

package source

import (
	"sync"
)

// Stats carries sizing feedback between registries: each [Map.Finalize]
// records what it saw, and later Maps consult it to size their pending list
// and consolidated buffer instead of guessing.
//
// A zero Stats is ready to use, and one instance may be shared by any number
// of Maps on any number of goroutines. The guarantee is mutual exclusion
// only: concurrent finalizes land in unspecified order, and the hints are
// advisory. Nothing is ever incorrect because a stale value was read, only
// differently sized.
type Stats struct {
	mu sync.Mutex

	files       int
	bytes       int64
	maxFileSize int
	finalized   int
}

// Files returns the file count recorded by the most recent finalize.
func (s *Stats) Files() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files
}

// Bytes returns the total content size recorded by the most recent finalize.
func (s *Stats) Bytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytes
}

// MaxFileSize returns the largest single file recorded by the most recent
// finalize.
func (s *Stats) MaxFileSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxFileSize
}

// Finalized returns how many finalizes have recorded into this Stats.
func (s *Stats) Finalized() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// record stores the shape of a finalized registry. The totals are
// last-writer-wins; only the finalize counter accumulates.
func (s *Stats) record(files int, bytes int64, maxFileSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = files
	s.bytes = bytes
	s.maxFileSize = maxFileSize
	s.finalized++
}

// hints returns capacity guidance learned from past finalizes: an expected
// file count padded by twenty percent, and the average file size. ok is
// false until some finalize has recorded at least one file.
func (s *Stats) hints() (expectedFiles, averageSize int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == 0 {
		return 0, 0, false
	}
	return s.files * 120 / 100, int(s.bytes / int64(s.files)), true
}
