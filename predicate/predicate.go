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

// Package predicate implements the predicate-scan and ColFilter layer
// of spec.md §4.3: per-column tests that turn one block into a bitmap
// of surviving rows, composed by ColFilter into a single masked block.
package predicate

import (
	"github.com/chidata/lqf/bitmap"
	"github.com/chidata/lqf/block"
)

// Predicate is one column's test. Eval scans column Column() of b and
// returns a bitmap, sized to b.Limit(), of rows that satisfy it.
//
// Predicates are evaluated against freshly scanned, unmasked blocks
// (RowBlock, ColumnBlock, EncodedColumnBlock, ColumnarFileBlock): the
// scan loop ColFilter drives runs once per block as it comes off a
// table, before any filter has narrowed it, so Limit() == Size() and
// a field's absolute row index is the index produced while walking
// the column start to end.
type Predicate interface {
	Column() int
	Eval(b block.Block) (*bitmap.Bitmap, error)
}

// Simple is the decoded-value predicate of spec.md §4.3: given a
// DataField, it returns whether the row survives. It is the fallback
// path for any column, and the only path for one that is not
// dictionary-encoded.
type Simple struct {
	col  int
	test func(block.DataField) bool
}

// NewSimple builds a Simple predicate testing column col with test.
func NewSimple(col int, test func(block.DataField) bool) *Simple {
	return &Simple{col: col, test: test}
}

func (p *Simple) Column() int { return p.col }

func (p *Simple) Eval(b block.Block) (*bitmap.Bitmap, error) {
	return scanDecoded(b, p.col, p.test), nil
}

// scanDecoded runs test over every row's decoded value in column col,
// walking absolute row indices [0, b.Limit()).
func scanDecoded(b block.Block, col int, test func(block.DataField) bool) *bitmap.Bitmap {
	bm := bitmap.New(b.Limit())
	it := b.Col(col)
	for i := uint64(0); i < b.Limit(); i++ {
		if test(it.At(i)) {
			bm.Set(i)
		}
	}
	return bm
}

// ColFilter composes per-column predicates (spec.md §4.3). Apply runs
// every predicate against a block, ANDs the resulting bitmaps in
// schedule order, and returns block.Mask(combined). Evaluation
// short-circuits once the cumulative bitmap is empty: later predicates
// in the schedule are skipped, since no row can survive an AND with an
// all-clear bitmap. Predicate order itself is never reordered.
type ColFilter struct {
	predicates []Predicate
}

// NewColFilter builds a ColFilter running predicates in the given
// order.
func NewColFilter(predicates ...Predicate) *ColFilter {
	return &ColFilter{predicates: predicates}
}

// Apply evaluates every predicate against b and returns the masked
// result.
func (f *ColFilter) Apply(b block.Block) (block.Block, error) {
	var combined *bitmap.Bitmap
	for _, p := range f.predicates {
		bm, err := p.Eval(b)
		if err != nil {
			return nil, err
		}
		if combined == nil {
			combined = bm
		} else {
			combined = combined.And(bm)
		}
		if combined.Cardinality() == 0 {
			break
		}
	}
	if combined == nil {
		combined = bitmap.Full(b.Limit())
	}
	return b.Mask(combined), nil
}
