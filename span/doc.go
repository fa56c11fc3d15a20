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

// Package span packs the line/column range of a piece of source code, and
// optionally the identity of the file it came from, into a single 64-bit
// word.
//
// [Absolute] carries a file ID in its topmost bits; how many bits is chosen
// at compile time by instantiating it with one of the [ID] types. [Relative]
// carries no file ID and always uses the same layout, so it can be stored in
// contexts where the file is implied. Both cost one machine word, compare
// with ==, and never allocate.
//
// Line numbers occupy sixteen bits and columns eight; positions are
// 1-indexed, so a zero field doubles as a "not present" sentinel.
package span
