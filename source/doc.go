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

// Package source registers the files of a compilation and resolves packed
// positions back into their text.
//
// [Map] is the registry: files go in as (path, contents) pairs, and after
// [Map.Finalize] each file has a small dense ID fit for embedding in a
// [span.Absolute], its contents live in one consolidated buffer, and a
// [LineIndex] maps line numbers to byte ranges. [Map.View] turns a position
// back into the bytes it covers. [Stats] carries sizing feedback between
// registries, so that long-running tools stop guessing at capacities.
package source
