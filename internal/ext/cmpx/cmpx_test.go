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

package cmpx_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elcoosp/sourcier/internal/ext/cmpx"
)

func TestJoin(t *testing.T) {
	t.Parallel()

	type pair struct {
		name string
		n    int
	}

	byName := cmpx.Key(func(p pair) string { return p.name })
	byN := cmpx.Key(func(p pair) int { return p.n })

	got := []pair{
		{"b", 2}, {"a", 2}, {"b", 1}, {"a", 1},
	}
	slices.SortFunc(got, cmpx.Join(byName, byN))

	assert.Equal(t, []pair{
		{"a", 1}, {"a", 2}, {"b", 1}, {"b", 2},
	}, got)
}

func TestReverse(t *testing.T) {
	t.Parallel()

	byLen := cmpx.Key(func(s string) int { return len(s) })

	got := []string{"ccc", "a", "bb"}
	slices.SortFunc(got, cmpx.Reverse(byLen))

	assert.Equal(t, []string{"ccc", "bb", "a"}, got)
}
