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

package ops

import "github.com/chidata/lqf/block"

// TableAgg is the dense-indexed aggregation of spec.md §4.6: used when
// the grouping key is already known to live in a small, known domain
// [0, k) (a dictionary ordinal, a date bucket), it skips hashing
// entirely in favor of a flat array of k group slots. Unused slots
// (groups with no rows) are dropped from the output, not dumped as
// zeroed groups.
type TableAgg struct {
	indexer     func(block.DataRow) uint32
	groups      []*aggGroup
	newReducers func() []Reducer
	keyWriter   func(target block.DataRow, idx uint32)
	keyWidth    int
	predicate   func(block.DataRow) bool
}

type aggGroup struct{ reducers []Reducer }

// NewTableAgg builds a TableAgg over k possible group indices. indexer
// maps a row to its slot in [0, k); keyWriter, if non-nil, writes the
// group's key column(s) into the output row given the slot index
// (e.g. translating a dictionary ordinal back to its string via a side
// table); keyWidth is how many output columns keyWriter occupies, so
// reducer Dumps start right after it.
func NewTableAgg(indexer func(block.DataRow) uint32, k int, newReducers func() []Reducer, keyWriter func(target block.DataRow, idx uint32), keyWidth int, post func(block.DataRow) bool) *TableAgg {
	return &TableAgg{
		indexer:     indexer,
		groups:      make([]*aggGroup, k),
		newReducers: newReducers,
		keyWriter:   keyWriter,
		keyWidth:    keyWidth,
		predicate:   post,
	}
}

// Add folds row into its slot's group, creating the group (and its
// Reducers) on first touch.
func (a *TableAgg) Add(row block.DataRow) {
	idx := a.indexer(row)
	g := a.groups[idx]
	if g == nil {
		g = &aggGroup{reducers: a.newReducers()}
		for _, r := range g.reducers {
			r.Init()
		}
		a.groups[idx] = g
	}
	for _, r := range g.reducers {
		r.Reduce(row)
	}
}

// Finalize dumps every touched slot into one output RowBlock, dropping
// untouched slots and any row the post-aggregation predicate rejects.
func (a *TableAgg) Finalize(outLayout block.Layout) *block.RowBlock {
	out := block.NewRowBlock(outLayout, 0)
	for idx, g := range a.groups {
		if g == nil {
			continue
		}
		i := out.Reserve(1)
		target := out.RowAt(i)
		if a.keyWriter != nil {
			a.keyWriter(target, uint32(idx))
		}
		offset := a.keyWidth
		for _, r := range g.reducers {
			r.Dump(target, offset)
			offset += r.Width()
		}
		if a.predicate != nil && !a.predicate(target) {
			out.Truncate(i)
		}
	}
	return out
}
