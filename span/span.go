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

package span

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding is returned by [FromRaw] and [RelativeFromRaw] when a
// word has bits set outside the fields of the target layout.
var ErrInvalidEncoding = errors.New("span: invalid position encoding")

// Position is the read side shared by [Absolute] and [Relative].
//
// Lines and columns are 1-indexed; a zero field means "not set".
type Position interface {
	// SourceFile returns the file ID carried by this position, widened to
	// uint32, and whether the position carries one at all. Relative
	// positions never do.
	SourceFile() (uint32, bool)

	StartLine() uint16
	StartColumn() uint8
	EndLine() uint16
	EndColumn() uint8
}

// Equal reports whether two positions cover the same line/column range,
// regardless of representation. File identity is deliberately ignored, so a
// range can be compared across codecs, or across registries that assigned
// different IDs to the same file.
func Equal(a, b Position) bool {
	return a.StartLine() == b.StartLine() &&
		a.StartColumn() == b.StartColumn() &&
		a.EndLine() == b.EndLine() &&
		a.EndColumn() == b.EndColumn()
}

// Absolute is a source position that knows which file it belongs to.
//
// The file ID lives in the topmost bits of the word; the Id type selects how
// many. Values with the same Id policy compare with ==.
type Absolute[Id ID] uint64

// NewAbsolute packs a file ID and a line/column range into an absolute
// position.
//
// The parameter types are the validation: a line cannot exceed sixteen bits
// nor a column eight, and the file ID is exactly the policy's width, so no
// field can bleed into its neighbors.
func NewAbsolute[Id ID](file Id, startLine uint16, startCol uint8, endLine uint16, endCol uint8) Absolute[Id] {
	return Absolute[Id](
		uint64(file)<<fileShift[Id]() |
			uint64(startLine)<<startLineShift[Id]() |
			uint64(startCol)<<startColShift[Id]() |
			uint64(endLine)<<endLineShift[Id]() |
			uint64(endCol)<<endColShift[Id]())
}

// Anchor gives a relative position a file, re-packing its range under the
// Id policy.
func Anchor[Id ID](file Id, r Relative) Absolute[Id] {
	return NewAbsolute(file, r.StartLine(), r.StartColumn(), r.EndLine(), r.EndColumn())
}

// FromRaw reinterprets a word as an absolute position under the Id policy.
//
// Words produced by [NewAbsolute] always decode. A word with bits set below
// the end-column field returns [ErrInvalidEncoding]; under the sixteen-bit
// policy every bit of the word is a field, so decoding cannot fail.
func FromRaw[Id ID](raw uint64) (Absolute[Id], error) {
	if junk := raw &^ (^uint64(0) << endColShift[Id]()); junk != 0 {
		return 0, fmt.Errorf("%w: %#x has bits below the end-column field", ErrInvalidEncoding, raw)
	}
	return Absolute[Id](raw), nil
}

// File returns the ID of the file this position is anchored to.
//
// A zero ID means the position was never anchored to a real file.
func (p Absolute[Id]) File() Id {
	return Id(uint64(p) >> fileShift[Id]())
}

// SourceFile implements [Position].
func (p Absolute[Id]) SourceFile() (uint32, bool) {
	return uint32(p.File()), true
}

// StartLine returns the 1-indexed line the range begins on.
func (p Absolute[Id]) StartLine() uint16 {
	return uint16((uint64(p) >> startLineShift[Id]()) & lineMask)
}

// StartColumn returns the 1-indexed column the range begins on.
func (p Absolute[Id]) StartColumn() uint8 {
	return uint8((uint64(p) >> startColShift[Id]()) & colMask)
}

// EndLine returns the 1-indexed line the range ends on, inclusive.
func (p Absolute[Id]) EndLine() uint16 {
	return uint16((uint64(p) >> endLineShift[Id]()) & lineMask)
}

// EndColumn returns the 1-indexed column the range ends on, inclusive.
func (p Absolute[Id]) EndColumn() uint8 {
	return uint8((uint64(p) >> endColShift[Id]()) & colMask)
}

// Raw returns the packed word.
func (p Absolute[Id]) Raw() uint64 {
	return uint64(p)
}

// Unanchored strips the file ID, re-packing the range as a [Relative].
func (p Absolute[Id]) Unanchored() Relative {
	return NewRelative(p.StartLine(), p.StartColumn(), p.EndLine(), p.EndColumn())
}

// String implements [fmt.Stringer].
func (p Absolute[Id]) String() string {
	return fmt.Sprintf("%d@%d:%d-%d:%d",
		p.File(), p.StartLine(), p.StartColumn(), p.EndLine(), p.EndColumn())
}

// Relative is a source position with no file identity, for contexts where
// the file is implied. It always uses the same layout, regardless of which
// [ID] policy the surrounding code uses: the sixteen topmost bits are
// always clear. Values compare with ==.
type Relative uint64

// NewRelative packs a line/column range into a relative position.
func NewRelative(startLine uint16, startCol uint8, endLine uint16, endCol uint8) Relative {
	return Relative(
		uint64(startLine)<<relStartLineShift |
			uint64(startCol)<<relStartColShift |
			uint64(endLine)<<relEndLineShift |
			uint64(endCol)<<relEndColShift)
}

// RelativeFromRaw reinterprets a word as a relative position.
//
// Words produced by [NewRelative] always decode; a word with any of the
// sixteen topmost bits set returns [ErrInvalidEncoding].
func RelativeFromRaw(raw uint64) (Relative, error) {
	if junk := raw &^ relUsedBits; junk != 0 {
		return 0, fmt.Errorf("%w: %#x has bits above the start-line field", ErrInvalidEncoding, raw)
	}
	return Relative(raw), nil
}

// SourceFile implements [Position]. Relative positions never carry a file.
func (p Relative) SourceFile() (uint32, bool) {
	return 0, false
}

// StartLine returns the 1-indexed line the range begins on.
func (p Relative) StartLine() uint16 {
	return uint16((uint64(p) >> relStartLineShift) & lineMask)
}

// StartColumn returns the 1-indexed column the range begins on.
func (p Relative) StartColumn() uint8 {
	return uint8((uint64(p) >> relStartColShift) & colMask)
}

// EndLine returns the 1-indexed line the range ends on, inclusive.
func (p Relative) EndLine() uint16 {
	return uint16((uint64(p) >> relEndLineShift) & lineMask)
}

// EndColumn returns the 1-indexed column the range ends on, inclusive.
func (p Relative) EndColumn() uint8 {
	return uint8((uint64(p) >> relEndColShift) & colMask)
}

// Raw returns the packed word.
func (p Relative) Raw() uint64 {
	return uint64(p)
}

// String implements [fmt.Stringer].
func (p Relative) String() string {
	return fmt.Sprintf("%d:%d-%d:%d",
		p.StartLine(), p.StartColumn(), p.EndLine(), p.EndColumn())
}
