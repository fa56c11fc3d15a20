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
	"bytes"
	"slices"
)

// LineIndex records where every line of a file begins, permitting O(1)
// line-to-range and O(log n) offset-to-line lookups.
//
// Lines are 1-indexed throughout. Offsets are stored as uint32, which bounds
// indexed files at 4 GiB; the consolidated buffer a [Map] windows its files
// out of has the same bound.
type LineIndex struct {
	// Byte offsets of the first byte of each line. offsets[0] is always 0:
	// even an empty file has one line.
	//
	// Alternatively, this slice can be interpreted as the index after each
	// \n in the content.
	offsets []uint32

	// Length of the indexed content.
	size uint32
}

// IndexLines builds the line index for content in a single pass.
func IndexLines(content []byte) LineIndex {
	offsets := []uint32{0}
	var pos int
	for {
		// We add 1 because we want to work with the index immediately
		// *after* the newline byte.
		newline := bytes.IndexByte(content[pos:], '\n') + 1
		if newline == 0 {
			break
		}
		pos += newline
		offsets = append(offsets, uint32(pos))
	}

	return LineIndex{offsets: offsets, size: uint32(len(content))}
}

// Count returns the number of lines. Every file has at least one, and a
// trailing newline opens a final empty line.
func (ix LineIndex) Count() int {
	return len(ix.offsets)
}

// Range returns the byte range of the 1-indexed line, if it exists.
//
// end excludes the line's terminating newline; for the final line it is the
// length of the content.
func (ix LineIndex) Range(line int) (start, end int, ok bool) {
	if line < 1 || line > len(ix.offsets) {
		return 0, 0, false
	}
	start = int(ix.offsets[line-1])
	if line == len(ix.offsets) {
		return start, int(ix.size), true
	}
	return start, int(ix.offsets[line]) - 1, true
}

// LineAt returns the 1-indexed line containing the given byte offset.
//
// Offsets are clamped: negative offsets land on line 1, and offsets at or
// past the end of the content land on the final line. The result is never 0.
func (ix LineIndex) LineAt(offset int) int {
	if offset > int(ix.size) {
		offset = int(ix.size)
	}
	if offset <= 0 {
		return 1
	}

	// Find the greatest line whose start is at or before offset.
	line, exact := slices.BinarySearch(ix.offsets, uint32(offset))
	if !exact {
		line--
	}
	return line + 1
}
