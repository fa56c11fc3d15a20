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
	"github.com/elcoosp/sourcier/internal/ext/unsafex"
)

// ID is the set of types usable as a file ID inside an [Absolute] position.
//
// The width of the chosen type decides the whole layout of the packed word:
// a wider ID addresses more files and leaves the same sixteen bits per line
// and eight bits per column, shifted down to make room. The zero ID is
// reserved to mean "no file", so a policy with an n-bit ID addresses 2^n - 1
// files.
type ID interface {
	~uint8 | ~uint16
}

// Bits returns the number of bits a file ID occupies within a packed word
// under the Id policy.
func Bits[Id ID]() int {
	return unsafex.LayoutOf[Id]().Size * 8
}

// MaxFiles returns the number of distinct files addressable under the Id
// policy. The zero ID is reserved, so this is one less than a power of two.
func MaxFiles[Id ID]() int {
	return 1<<Bits[Id]() - 1
}

// Field masks. Lines get sixteen bits, columns eight, under every policy.
const (
	lineMask = 0xFFFF
	colMask  = 0xFF
)

// Field shifts for [Relative], which always uses the widest layout: the
// sixteen bits an absolute position would spend on its file ID are simply
// left clear.
const (
	relStartLineShift = 32
	relStartColShift  = 24
	relEndLineShift   = 8
	relEndColShift    = 0

	// Everything below bit 48 is meaningful in a relative word.
	relUsedBits = 1<<48 - 1
)

// The shifts below are resolved per instantiation; every call site
// constant-folds, so field access compiles down to a shift and a mask.

func fileShift[Id ID]() int {
	return 64 - Bits[Id]()
}

func startLineShift[Id ID]() int {
	return fileShift[Id]() - 16
}

func startColShift[Id ID]() int {
	return fileShift[Id]() - 24
}

func endLineShift[Id ID]() int {
	return fileShift[Id]() - 40
}

func endColShift[Id ID]() int {
	return fileShift[Id]() - 48
}
