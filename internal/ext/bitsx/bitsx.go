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

// Package bitsx contains extensions to Go's package math/bits.
package bitsx

import (
	"math"
	"math/bits"
)

// IsPowerOfTwo returns whether n is a power of 2. Zero is not one.
func IsPowerOfTwo(n uint) bool {
	return bits.OnesCount(n) == 1
}

// NextPowerOfTwo returns the smallest power of 2 greater than n, or zero
// on overflow.
func NextPowerOfTwo(n uint) uint {
	// For n == 0, LeadingZeros returns the full word size; Go does not mask
	// shift amounts, so the shift produces 0 and the result is 1. When the
	// top bit of n is set the addition wraps to 0.
	return uint(math.MaxUint)>>uint(bits.LeadingZeros(n)) + 1
}

// MakePowerOfTwo rounds n up to a power of 2, returning n unchanged if it
// already is one.
func MakePowerOfTwo(n uint) uint {
	if IsPowerOfTwo(n) {
		return n
	}
	return NextPowerOfTwo(n)
}
