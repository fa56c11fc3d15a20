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

// Package sourcier provides compact source positions for compilers, linters
// and other tools that hold millions of them at once.
//
// The machinery lives in two sub-packages. Package span packs a line/column
// range, and optionally a file identity, into a single 64-bit word; the
// width of the file ID is a compile-time choice made by instantiating the
// types with uint8 or uint16. Package source registers files, assigns the
// dense IDs those words embed, and resolves a packed position back into the
// bytes it covers.
//
// This package adds [Batch], which finalizes one registry per compilation
// unit with bounded parallelism, threading one [source.Stats] through all
// of them so that every unit after the first gets informed capacity hints.
package sourcier
