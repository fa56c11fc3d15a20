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

package span_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcoosp/sourcier/span"
)

var (
	_ span.Position = span.Absolute[uint8](0)
	_ span.Position = span.Absolute[uint16](0)
	_ span.Position = span.Relative(0)
)

func TestLayout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, span.Bits[uint8]())
	assert.Equal(t, 16, span.Bits[uint16]())
	assert.Equal(t, 255, span.MaxFiles[uint8]())
	assert.Equal(t, 65535, span.MaxFiles[uint16]())
}

func TestAbsolute8(t *testing.T) {
	t.Parallel()

	p := span.NewAbsolute[uint8](3, 10, 5, 12, 20)
	assert.Equal(t, uint64(0x03000A05000C1400), p.Raw())

	assert.Equal(t, uint8(3), p.File())
	assert.Equal(t, uint16(10), p.StartLine())
	assert.Equal(t, uint8(5), p.StartColumn())
	assert.Equal(t, uint16(12), p.EndLine())
	assert.Equal(t, uint8(20), p.EndColumn())
	assert.Equal(t, "3@10:5-12:20", p.String())

	file, ok := p.SourceFile()
	assert.True(t, ok)
	assert.Equal(t, uint32(3), file)

	// Saturate every field; only the unused low byte stays clear.
	max := span.NewAbsolute[uint8](255, 65535, 255, 65535, 255)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFF00), max.Raw())
}

func TestAbsolute16(t *testing.T) {
	t.Parallel()

	p := span.NewAbsolute[uint16](300, 10, 5, 12, 20)
	assert.Equal(t, uint64(0x012C000A05000C14), p.Raw())

	assert.Equal(t, uint16(300), p.File())
	assert.Equal(t, uint16(10), p.StartLine())
	assert.Equal(t, uint8(5), p.StartColumn())
	assert.Equal(t, uint16(12), p.EndLine())
	assert.Equal(t, uint8(20), p.EndColumn())

	max := span.NewAbsolute[uint16](65535, 65535, 255, 65535, 255)
	assert.Equal(t, ^uint64(0), max.Raw())
}

func TestRelative(t *testing.T) {
	t.Parallel()

	p := span.NewRelative(1, 1, 3, 5)
	assert.Equal(t, uint64(0x0000000101000305), p.Raw())

	assert.Equal(t, uint16(1), p.StartLine())
	assert.Equal(t, uint8(1), p.StartColumn())
	assert.Equal(t, uint16(3), p.EndLine())
	assert.Equal(t, uint8(5), p.EndColumn())
	assert.Equal(t, "1:1-3:5", p.String())

	_, ok := p.SourceFile()
	assert.False(t, ok)

	// The file ID bits of the widest absolute layout stay clear.
	max := span.NewRelative(65535, 255, 65535, 255)
	assert.Equal(t, uint64(0x0000FFFFFFFFFFFF), max.Raw())
	assert.Zero(t, max.Raw()>>48)
}

func TestFromRaw(t *testing.T) {
	t.Parallel()

	p := span.NewAbsolute[uint8](7, 100, 2, 101, 9)
	got, err := span.FromRaw[uint8](p.Raw())
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// The low byte is not a field under the eight-bit policy.
	_, err = span.FromRaw[uint8](p.Raw() | 0x01)
	assert.ErrorIs(t, err, span.ErrInvalidEncoding)

	// Under the sixteen-bit policy every bit is a field.
	_, err = span.FromRaw[uint16](^uint64(0))
	assert.NoError(t, err)

	r := span.NewRelative(4, 4, 4, 8)
	gotRel, err := span.RelativeFromRaw(r.Raw())
	require.NoError(t, err)
	assert.Equal(t, r, gotRel)

	_, err = span.RelativeFromRaw(r.Raw() | 1<<48)
	assert.ErrorIs(t, err, span.ErrInvalidEncoding)
}

func TestAnchor(t *testing.T) {
	t.Parallel()

	r := span.NewRelative(10, 5, 12, 20)

	a8 := span.Anchor[uint8](3, r)
	assert.Equal(t, span.NewAbsolute[uint8](3, 10, 5, 12, 20), a8)
	assert.Equal(t, r, a8.Unanchored())

	a16 := span.Anchor[uint16](300, r)
	assert.Equal(t, span.NewAbsolute[uint16](300, 10, 5, 12, 20), a16)
	assert.Equal(t, r, a16.Unanchored())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	r := span.NewRelative(10, 5, 12, 20)
	a8 := span.NewAbsolute[uint8](3, 10, 5, 12, 20)
	a16 := span.NewAbsolute[uint16](44, 10, 5, 12, 20)

	// Same range, three codecs, three file identities.
	assert.True(t, span.Equal(a8, r))
	assert.True(t, span.Equal(a8, a16))
	assert.True(t, span.Equal(r, a16))

	assert.False(t, span.Equal(r, span.NewRelative(10, 5, 12, 21)))
	assert.False(t, span.Equal(a8, span.NewAbsolute[uint8](3, 11, 5, 12, 20)))
}
