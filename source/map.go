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
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/elcoosp/sourcier/internal/ext/bitsx"
	"github.com/elcoosp/sourcier/internal/ext/cmpx"
	"github.com/elcoosp/sourcier/internal/ext/slicesx"
	"github.com/elcoosp/sourcier/internal/ext/unicodex"
	"github.com/elcoosp/sourcier/internal/ext/unsafex"
	"github.com/elcoosp/sourcier/internal/interval"
	"github.com/elcoosp/sourcier/span"
)

// ErrTooManyFiles is returned by [Map.Finalize] when more distinct paths
// were added than the registry's ID policy can address.
var ErrTooManyFiles = errors.New("source: file registry is full")

// Capacity fallbacks for when neither the Map's hint fields nor its [Stats]
// have anything to say.
const (
	defaultExpectedFiles = 100
	defaultAverageSize   = 2048
)

// Map is a file registry: it assigns every added file a dense ID starting
// at 1, fit for embedding in a [span.Absolute] instantiated with the same
// Id type, and consolidates all contents into a single buffer that lookups
// return windows of.
//
// A zero Map is ready to use. Files are queued with [Map.Add] and become
// visible to every lookup only after [Map.Finalize]; IDs are a function of
// the sorted path set, so two registries fed the same files in any order
// agree on every ID.
//
// A Map is not safe for concurrent use. To share state across goroutines,
// give each goroutine its own Map and point them at one [Stats].
type Map[Id span.ID] struct {
	// Capacity hints for the pending list and the consolidated buffer.
	// Zero means learn from Stats, or fall back to modest defaults.
	ExpectedFiles   int
	AverageFileSize int

	// SkipLineIndex skips building per-file line tables during Finalize.
	// [Map.Lines], [Map.View] and [Map.Location] then miss for every file.
	SkipLineIndex bool

	// Stats, if non-nil, is consulted for sizing and updated by every
	// Finalize.
	Stats *Stats

	pending []pendingFile

	buf      []byte
	entries  []entry // entries[id-1] describes the file with that ID.
	byPath   map[string]Id
	byOffset interval.Map[uint32, Id]
	lines    []LineIndex // Parallel to entries; nil if skipped.
}

type pendingFile struct {
	path    string
	content []byte
}

type entry struct {
	path           string
	offset, length uint32
}

// Add queues a file for registration. The content is not copied until
// [Map.Finalize], so the caller must not modify it before then.
//
// Adding the same path twice is allowed; Finalize keeps one of the copies.
// Once the pending list exceeds the Id policy's capacity, further adds are
// silently dropped: one entry beyond capacity is retained, so that the
// overflow is still observed and reported by Finalize.
func (m *Map[Id]) Add(path string, content []byte) {
	if m.pending == nil {
		expected, _ := m.hints()
		m.pending = make([]pendingFile, 0, expected)
	}
	if len(m.pending) > span.MaxFiles[Id]() {
		return
	}
	m.pending = append(m.pending, pendingFile{path: path, content: content})
}

// Finalize registers everything queued so far: files are sorted by path,
// deduplicated, checked against the Id policy's capacity, and copied into
// the consolidated buffer; then every lookup works. Until the first call,
// and after a failed call, the registry is empty.
//
// Finalizing again after more adds rebuilds the registry from the full
// queue. IDs are reassigned from scratch, so IDs and windows from before
// are stale.
func (m *Map[Id]) Finalize() error {
	// Ties on path are broken by content length, and then by insertion
	// order; the first entry of each run survives. This keeps IDs and
	// surviving contents deterministic regardless of add order.
	files := slices.Clone(m.pending)
	slices.SortStableFunc(files, cmpx.Join(
		cmpx.Key(func(f pendingFile) string { return f.path }),
		cmpx.Key(func(f pendingFile) int { return len(f.content) }),
	))
	files = slicesx.DedupKey(files,
		func(f pendingFile) string { return f.path },
		func(run []pendingFile) pendingFile { return run[0] },
	)

	if limit := span.MaxFiles[Id](); len(files) > limit {
		// A failed call leaves the registry empty, not stale.
		m.buf = nil
		m.entries = nil
		m.byPath = nil
		m.byOffset = interval.Map[uint32, Id]{}
		m.lines = nil
		return fmt.Errorf("%w: %d distinct paths, ID policy addresses %d",
			ErrTooManyFiles, len(files), limit)
	}

	expected, averageSize := m.hints()
	m.buf = make([]byte, 0, bitsx.MakePowerOfTwo(uint(expected*averageSize)))
	m.entries = make([]entry, 0, len(files))
	m.byPath = make(map[string]Id, len(files))
	m.byOffset = interval.Map[uint32, Id]{}

	var maxFileSize int
	for i, f := range files {
		id := Id(i + 1)
		offset := uint32(len(m.buf))
		length := uint32(len(f.content))

		m.buf = append(m.buf, f.content...)
		m.entries = append(m.entries, entry{path: f.path, offset: offset, length: length})
		m.byPath[f.path] = id
		if length > 0 {
			// Intervals here are closed, so an empty file owns no offsets
			// and is skipped.
			m.byOffset.Insert(offset, offset+length-1, id)
		}
		maxFileSize = max(maxFileSize, len(f.content))
	}

	m.lines = nil
	if !m.SkipLineIndex {
		m.lines = make([]LineIndex, len(m.entries))
		for i, e := range m.entries {
			m.lines[i] = IndexLines(m.buf[e.offset : e.offset+e.length])
		}
	}

	if m.Stats != nil {
		m.Stats.record(len(m.entries), int64(len(m.buf)), maxFileSize)
	}
	return nil
}

// hints resolves the capacity guidance to use, in order of preference: the
// Map's own fields, the shared Stats, package defaults.
func (m *Map[Id]) hints() (expectedFiles, averageSize int) {
	expectedFiles, averageSize = m.ExpectedFiles, m.AverageFileSize
	if expectedFiles > 0 && averageSize > 0 {
		return expectedFiles, averageSize
	}

	files, avg, ok := 0, 0, false
	if m.Stats != nil {
		files, avg, ok = m.Stats.hints()
	}
	if !ok {
		files, avg = defaultExpectedFiles, defaultAverageSize
	}

	if expectedFiles <= 0 {
		expectedFiles = files
	}
	if averageSize <= 0 {
		averageSize = avg
	}
	return expectedFiles, averageSize
}

// Len returns the number of registered files.
func (m *Map[Id]) Len() int {
	return len(m.entries)
}

// IsEmpty reports whether the registry has no files.
func (m *Map[Id]) IsEmpty() bool {
	return len(m.entries) == 0
}

// ID returns the ID assigned to path.
func (m *Map[Id]) ID(path string) (Id, bool) {
	id, ok := m.byPath[path]
	return id, ok
}

// Path returns the path of the file with the given ID.
func (m *Map[Id]) Path(id Id) (string, bool) {
	e, ok := slicesx.Get(m.entries, int(id)-1)
	return e.path, ok
}

// Content returns the contents of the file with the given ID.
//
// The returned slice is a window of the shared buffer and must not be
// modified.
func (m *Map[Id]) Content(id Id) ([]byte, bool) {
	e, ok := slicesx.Get(m.entries, int(id)-1)
	if !ok {
		return nil, false
	}
	return m.buf[e.offset : e.offset+e.length : e.offset+e.length], true
}

// Text is like [Map.Content], but returns the window as a string without
// copying. The buffer is never written after Finalize (a re-finalize builds
// a fresh one), which is what makes the alias sound.
func (m *Map[Id]) Text(id Id) (string, bool) {
	b, ok := m.Content(id)
	if !ok {
		return "", false
	}
	return unsafex.StringAlias(b), true
}

// Lines returns the line index of the file with the given ID.
//
// Misses for every file if the index was skipped during Finalize.
func (m *Map[Id]) Lines(id Id) (LineIndex, bool) {
	return slicesx.Get(m.lines, int(id)-1)
}

// Buffer returns the consolidated contents of every registered file, in ID
// order. The caller must not modify it.
func (m *Map[Id]) Buffer() []byte {
	return m.buf
}

// Window returns the range of [Map.Buffer] holding the given file's
// contents, with end exclusive.
func (m *Map[Id]) Window(id Id) (start, end int, ok bool) {
	e, ok := slicesx.Get(m.entries, int(id)-1)
	if !ok {
		return 0, 0, false
	}
	return int(e.offset), int(e.offset + e.length), true
}

// FileAt returns the file whose window contains the given buffer offset.
//
// Empty files own no bytes of the buffer and are never returned.
func (m *Map[Id]) FileAt(offset int) (Id, bool) {
	if offset < 0 || offset >= len(m.buf) {
		return 0, false
	}
	got := m.byOffset.Get(uint32(offset))
	if got.Value == nil {
		return 0, false
	}
	return *got.Value, true
}

// Glob returns the IDs of every file whose path matches pattern, in ID
// order. Patterns use doublestar syntax, where ** crosses separators.
func (m *Map[Id]) Glob(pattern string) ([]Id, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
	}

	var ids []Id
	for i, e := range m.entries {
		if ok, _ := doublestar.Match(pattern, e.path); ok {
			ids = append(ids, Id(i+1))
		}
	}
	return ids, nil
}

// All returns an iterator over the registry's (ID, path) pairs, in ID
// order, which is sorted path order.
func (m *Map[Id]) All() iter.Seq2[Id, string] {
	return func(yield func(Id, string) bool) {
		for i, e := range m.entries {
			if !yield(Id(i+1), e.path) {
				return
			}
		}
	}
}

// View resolves pos against the file with the given ID, returning the bytes
// the position covers, end column inclusive.
//
// The file is chosen by id alone: any file ID embedded in pos is ignored,
// so relative positions, and absolute positions minted by a different
// registry, all resolve the same way. Returns false for the zero position,
// for ranges that do not land inside the file, and when the line index was
// skipped.
func (m *Map[Id]) View(id Id, pos span.Position) ([]byte, bool) {
	content, ok := m.Content(id)
	if !ok {
		return nil, false
	}
	lines, ok := m.Lines(id)
	if !ok {
		return nil, false
	}

	startLine, endLine := int(pos.StartLine()), int(pos.EndLine())
	if startLine == 0 || endLine == 0 || startLine > endLine {
		return nil, false
	}

	lineStart, _, ok := lines.Range(startLine)
	if !ok {
		return nil, false
	}
	// A zero start column clamps to the start of the line.
	startByte := lineStart + max(int(pos.StartColumn())-1, 0)

	lineStart, _, ok = lines.Range(endLine)
	if !ok {
		return nil, false
	}
	endByte := lineStart + int(pos.EndColumn())

	if startByte >= len(content) || endByte > len(content) || startByte > endByte {
		return nil, false
	}
	return content[startByte:endByte], true
}

// Location converts a position's 1-indexed line and byte column within the
// given file into a display [Location].
//
// The column a [span.Position] carries counts bytes from the start of the
// line; the returned Location's Column counts terminal cells, which is what
// a human reading the file in an editor sees. Misses when line or col do
// not land inside the file.
func (m *Map[Id]) Location(id Id, line, col int) (Location, bool) {
	content, ok := m.Content(id)
	if !ok {
		return Location{}, false
	}
	lines, ok := m.Lines(id)
	if !ok {
		return Location{}, false
	}

	start, end, ok := lines.Range(line)
	if !ok || col < 1 || start+col-1 > end {
		return Location{}, false
	}

	offset := start + col - 1
	w := new(unicodex.Width)
	return Location{
		Offset: offset,
		Line:   line,
		Column: w.Measure(unsafex.StringAlias(content[start:offset])) + 1,
	}, true
}
