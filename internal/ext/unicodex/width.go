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

// package unicodex contains extensions to Go's package unicode.
package unicodex

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TabstopWidth is the size we render all tabstops as.
const TabstopWidth int = 4

// Width is used for calculating the approximate width of a string in terminal
// columns.
type Width struct {
	// The column at which the text is being rendered. This is necessary for
	// tabstop calculations.
	Column int

	// The width of a tabstop in columns. If set to zero, a default value will
	// be selected.
	Tabstop int
}

// Measure advances w.Column as though text had been rendered at the current
// column, and returns the updated column.
//
// We can't just use [uniseg.StringWidth] for the whole string, because that
// doesn't respect tabstops correctly.
func (w *Width) Measure(text string) int {
	tabstop := w.Tabstop
	if tabstop <= 0 {
		tabstop = TabstopWidth
	}

	for {
		tab := strings.IndexByte(text, '\t')
		if tab < 0 {
			w.Column += uniseg.StringWidth(text)
			return w.Column
		}

		w.Column += uniseg.StringWidth(text[:tab])
		w.Column += tabstop - (w.Column % tabstop)
		text = text[tab+1:]
	}
}
