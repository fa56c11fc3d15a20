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

package unicodex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elcoosp/sourcier/internal/ext/unicodex"
)

func TestMeasure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "ascii", text: "abc", want: 3},
		{name: "tab at start", text: "\tx", want: 5},
		{name: "tab mid-stop", text: "abc\tx", want: 5},
		{name: "tab at stop", text: "abcd\tx", want: 9},
		{name: "wide runes", text: "日本", want: 4},
		{name: "combining", text: "é", want: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			w := new(unicodex.Width)
			assert.Equal(t, test.want, w.Measure(test.text))
			assert.Equal(t, test.want, w.Column)
		})
	}
}

func TestMeasureResumes(t *testing.T) {
	t.Parallel()

	// Tab expansion depends on the column the text starts at.
	w := &unicodex.Width{Column: 2}
	assert.Equal(t, 4, w.Measure("\t"))

	w = &unicodex.Width{Tabstop: 8}
	w.Measure("ab")
	assert.Equal(t, 8, w.Measure("\t"))
}
