// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package block

// Layout is a column layout: a non-decreasing sequence of word
// offsets of length numFields+1. Offsets[i+1]-Offsets[i] is the word
// width of column i (1 for int/double/raw ordinal fields, 2 for a
// variable-length byte-array descriptor).
type Layout struct {
	Offsets []uint32
}

// canonical all-one-word layouts for up to 9 fields, matching
// spec.md's OFFSETS[n]/SIZES[n] tables. Shared read-only: never
// mutate a Layout returned from Uniform.
var uniformOffsets [10][]uint32

func init() {
	for n := 0; n <= 9; n++ {
		off := make([]uint32, n+1)
		for i := range off {
			off[i] = uint32(i)
		}
		uniformOffsets[n] = off
	}
}

// Uniform returns the all-one-word-wide layout for numFields columns,
// using the canonical precomputed table for numFields <= 9.
func Uniform(numFields int) Layout {
	if numFields >= 0 && numFields <= 9 {
		return Layout{Offsets: uniformOffsets[numFields]}
	}
	off := make([]uint32, numFields+1)
	for i := range off {
		off[i] = uint32(i)
	}
	return Layout{Offsets: off}
}

// FromSizes builds a Layout from explicit per-column word widths.
func FromSizes(sizes []uint32) Layout {
	off := make([]uint32, len(sizes)+1)
	for i, s := range sizes {
		off[i+1] = off[i] + s
	}
	return Layout{Offsets: off}
}

// NumFields returns the number of columns described by the layout.
func (l Layout) NumFields() int { return len(l.Offsets) - 1 }

// Width returns the word width of column i.
func (l Layout) Width(i int) uint32 { return l.Offsets[i+1] - l.Offsets[i] }

// NumWords returns the total word width of one row under this layout.
func (l Layout) NumWords() uint32 { return l.Offsets[len(l.Offsets)-1] }

// Sizes returns the per-column word widths, recomputed from Offsets.
func (l Layout) Sizes() []uint32 {
	out := make([]uint32, l.NumFields())
	for i := range out {
		out[i] = l.Width(i)
	}
	return out
}
