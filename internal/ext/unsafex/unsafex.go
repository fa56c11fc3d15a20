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

// package unsafex contains extensions to Go's package unsafe.
//
// Importing this package should be treated as equivalent to importing unsafe.
package unsafex

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Int is any primitive integer type, usable as an offset or index.
type Int = constraints.Integer

// Layout is the layout of a type.
//
// This is a more convenient abstraction than manipulating the size and
// alignment separately.
type Layout struct {
	Size, Align int
}

// LayoutOf returns the layout of some type.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{
		Size:  int(unsafe.Sizeof(v)),
		Align: int(unsafe.Alignof(v)),
	}
}

// Add is like [unsafe.Add], but it operates on a typed pointer and scales the
// offset by that type's size, similar to pointer arithmetic in Rust or C.
//
// This function has the same safety caveats as [unsafe.Add].
//
//go:nosplit
func Add[T any, I Int](p *T, idx I) *T {
	raw := unsafe.Pointer(p)
	raw = unsafe.Add(raw, int(idx)*LayoutOf[T]().Size)
	return (*T)(raw)
}

// SliceData is like [unsafe.SliceData], but it also accepts named slice
// types without an explicit conversion at the call site.
func SliceData[S ~[]E, E any](data S) *E {
	return unsafe.SliceData([]E(data))
}

// StringAlias returns a string that aliases a slice. This is useful for
// situations where we have a slice that will never be written to and we want
// to interpret it as a string without a copy.
//
// data must not be written to: for the lifetime of the returned string (that
// is, until its final use in the program upon which a finalizer set on it
// could run), it must be treated as if goroutines are concurrently reading
// from it: data must not be mutated in any way.
//
//go:nosplit
func StringAlias[S ~[]E, E any](data S) string {
	return unsafe.String(
		(*byte)(unsafe.Pointer(SliceData(data))),
		len(data)*LayoutOf[E]().Size,
	)
}
