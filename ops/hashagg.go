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
	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/rowcopy"
)

type hashAggGroup struct {
	key      *block.MemDataRow
	reducers []Reducer
}

// HashAgg is the grouped hash aggregation of spec.md §4.6: one group
// per distinct hash value, keyed by a snapshot of the row's group-key
// columns, each holding its own set of Reducers. A zero-length
// keyKinds turns HashAgg into an ungrouped aggregation over the whole
// input (see NewSimpleAgg).
type HashAgg struct {
	hash        func(block.DataRow) uint64
	keySnap     *rowcopy.Snapshoter
	keyCopy     rowcopy.Func
	keyWidth    int
	newReducers func() []Reducer
	predicate   func(block.DataRow) bool
	groups      map[uint64]*hashAggGroup
}

// NewHashAgg builds a HashAgg. hash extracts the group key (typically
// ops.IntKey/RawOrdinalKey/CompositeKey over the group-by columns);
// keyKinds describes those same columns' field kinds, for snapshotting
// and for copying the key into the output row; newReducers constructs
// a fresh Reducer set for each newly seen group; post, if non-nil,
// filters the finalized output rows (a HAVING clause).
func NewHashAgg(hash func(block.DataRow) uint64, keyKinds []rowcopy.FieldKind, outLayout block.Layout, newReducers func() []Reducer, post func(block.DataRow) bool) *HashAgg {
	keySnap := rowcopy.NewSnapshoter(keyKinds)
	schedule := make([]rowcopy.Entry, len(keyKinds))
	for i, k := range keyKinds {
		schedule[i] = rowcopy.Entry{Kind: k, FromCol: i, ToCol: i}
	}
	return &HashAgg{
		hash:        hash,
		keySnap:     keySnap,
		keyCopy:     rowcopy.Compile(keySnap.Layout(), outLayout, rowcopy.RAW, rowcopy.RAW, schedule, nil),
		keyWidth:    len(keyKinds),
		newReducers: newReducers,
		predicate:   post,
		groups:      make(map[uint64]*hashAggGroup),
	}
}

// NewSimpleAgg builds an ungrouped HashAgg: every row folds into the
// single implicit group, per spec.md §4.6's SimpleAgg variant.
func NewSimpleAgg(outLayout block.Layout, newReducers func() []Reducer, post func(block.DataRow) bool) *HashAgg {
	return NewHashAgg(func(block.DataRow) uint64 { return 0 }, nil, outLayout, newReducers, post)
}

// Add folds row into its group, creating the group (and its Reducers)
// on first sight of its key.
func (a *HashAgg) Add(row block.DataRow) {
	h := a.hash(row)
	g, ok := a.groups[h]
	if !ok {
		g = &hashAggGroup{key: a.keySnap.Snapshot(row), reducers: a.newReducers()}
		for _, r := range g.reducers {
			r.Init()
		}
		a.groups[h] = g
	}
	for _, r := range g.reducers {
		r.Reduce(row)
	}
}

// Finalize dumps every group (key columns followed by each reducer's
// Dump, back to back) into one output RowBlock, dropping any row the
// post-aggregation predicate rejects.
func (a *HashAgg) Finalize(outLayout block.Layout) *block.RowBlock {
	out := block.NewRowBlock(outLayout, uint32(len(a.groups)))
	for _, g := range a.groups {
		i := out.Reserve(1)
		target := out.RowAt(i)
		a.keyCopy(target, g.key)
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
