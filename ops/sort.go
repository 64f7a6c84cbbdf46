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

import (
	"golang.org/x/exp/slices"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/heap"
	"github.com/chidata/lqf/rowcopy"
)

// Less is a strict weak ordering over two rows: true iff a sorts
// strictly before b. Both SmallSort and TopN take one of these rather
// than per-column Ordering metadata, so a caller can embed whatever
// tie-breaking it needs directly in the comparator.
type Less func(a, b block.DataRow) bool

// SmallSort collects every row across every input block (by snapshot)
// into one vector, sorts it with a user comparator, and emits the
// result as one dense RowBlock, per spec.md §4.7. It is unbounded: the
// whole input lives in memory at once, which is why it is named for
// inputs small enough that this is acceptable (TopN is the bounded
// alternative).
type SmallSort struct {
	less Less
	snap *rowcopy.Snapshoter
	rows []*block.MemDataRow
}

// NewSmallSort builds a SmallSort. kinds describes every column's
// field kind, for snapshotting.
func NewSmallSort(less Less, kinds []rowcopy.FieldKind) *SmallSort {
	return &SmallSort{less: less, snap: rowcopy.NewSnapshoter(kinds)}
}

// Add snapshots row and appends it to the pending vector.
func (s *SmallSort) Add(row block.DataRow) {
	s.rows = append(s.rows, s.snap.Snapshot(row))
}

// Finalize sorts every collected row and emits it as one RowBlock.
func (s *SmallSort) Finalize() *block.RowBlock {
	slices.SortFunc(s.rows, func(a, b *block.MemDataRow) bool {
		return s.less(a, b)
	})
	return rowsToBlock(s.snap.Layout(), s.rows)
}

// TopN maintains a bounded heap of at most k rows, per spec.md §4.7:
// for every input row, if fewer than k rows are held or the row beats
// the current worst kept row, it is inserted (evicting the worst row
// once the heap is full). Finalize drains the heap in sorted (best
// first) order.
//
// Grounded on sorting/ktop.go's Ktop: an indirection array of indices
// into a fixed row vector, heap-ordered by a "worse first" comparator
// so the root is always the row that would be evicted next, drained at
// the end by repeated pop into a reverse-filled result slice.
type TopN struct {
	k        int
	less     Less
	snap     *rowcopy.Snapshoter
	rows     []*block.MemDataRow
	indirect []int
}

// NewTopN builds a TopN bounded to k rows.
func NewTopN(k int, less Less, kinds []rowcopy.FieldKind) *TopN {
	return &TopN{k: k, less: less, snap: rowcopy.NewSnapshoter(kinds)}
}

// worseFirst orders heap indices so the current worst kept row (the
// one a better row should evict) sits at the root: root holds the
// index i for which less(rows[j], rows[i]) holds for every other kept
// j, i.e. the row that sorts last among those currently kept.
func (t *TopN) worseFirst(i, j int) bool {
	return t.less(t.rows[j], t.rows[i])
}

// Add offers row to the bounded heap.
func (t *TopN) Add(row block.DataRow) {
	if t.k <= 0 {
		return
	}
	if len(t.rows) < t.k {
		t.rows = append(t.rows, nil)
		idx := len(t.rows) - 1
		t.rows[idx] = t.snap.Snapshot(row)
		heap.PushSlice(&t.indirect, idx, t.worseFirst)
		return
	}
	root := t.indirect[0]
	if t.less(row, t.rows[root]) {
		t.rows[root] = t.snap.Snapshot(row)
		heap.FixSlice(t.indirect, 0, t.worseFirst)
	}
}

// Finalize drains the heap into best-first order and emits it as one
// RowBlock.
func (t *TopN) Finalize() *block.RowBlock {
	ordered := make([]*block.MemDataRow, len(t.indirect))
	idx := t.indirect
	i := len(idx) - 1
	for len(idx) > 0 {
		root := heap.PopSlice(&idx, t.worseFirst)
		ordered[i] = t.rows[root]
		i--
	}
	return rowsToBlock(t.snap.Layout(), ordered)
}

func rowsToBlock(layout block.Layout, rows []*block.MemDataRow) *block.RowBlock {
	out := block.NewRowBlock(layout, uint32(len(rows)))
	identity := make([]rowcopy.Entry, layout.NumFields())
	for i := range identity {
		kind := rowcopy.Regular
		if layout.Width(i) == 2 {
			kind = rowcopy.String
		}
		identity[i] = rowcopy.Entry{Kind: kind, FromCol: i, ToCol: i}
	}
	copyRow := rowcopy.Compile(layout, layout, rowcopy.RAW, rowcopy.RAW, identity, nil)
	for _, row := range rows {
		i := out.Reserve(1)
		copyRow(out.RowAt(i), row)
	}
	return out
}
