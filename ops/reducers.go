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

// Reducer is one column of a hash aggregation's group state, per
// spec.md §4.6: Init resets the accumulator for a fresh group, Reduce
// folds one row into it, and Dump writes the final value(s) into
// target starting at offset. Width reports how many output columns
// Dump occupies, so HashAgg/TableAgg can lay out several reducers
// back-to-back in one output row.
type Reducer interface {
	Init()
	Reduce(row block.DataRow)
	Width() int
	Dump(target block.DataRow, offset int)
}

// IntSum accumulates the integer sum of one column.
type IntSum struct {
	col int
	sum int64
}

func NewIntSum(col int) *IntSum { return &IntSum{col: col} }

func (r *IntSum) Init()                       { r.sum = 0 }
func (r *IntSum) Reduce(row block.DataRow)    { r.sum += row.Field(r.col).AsInt() }
func (r *IntSum) Width() int                  { return 1 }
func (r *IntSum) Dump(target block.DataRow, offset int) { target.Field(offset).SetInt(r.sum) }

// DoubleSum accumulates the floating-point sum of one column.
type DoubleSum struct {
	col int
	sum float64
}

func NewDoubleSum(col int) *DoubleSum { return &DoubleSum{col: col} }

func (r *DoubleSum) Init()                    { r.sum = 0 }
func (r *DoubleSum) Reduce(row block.DataRow) { r.sum += row.Field(r.col).AsDouble() }
func (r *DoubleSum) Width() int               { return 1 }
func (r *DoubleSum) Dump(target block.DataRow, offset int) {
	target.Field(offset).SetDouble(r.sum)
}

// IntAvg accumulates the average of an integer column, dumped as a
// double (an empty group averages to 0).
type IntAvg struct {
	col int
	sum int64
	n   int64
}

func NewIntAvg(col int) *IntAvg { return &IntAvg{col: col} }

func (r *IntAvg) Init()                    { r.sum, r.n = 0, 0 }
func (r *IntAvg) Reduce(row block.DataRow) { r.sum += row.Field(r.col).AsInt(); r.n++ }
func (r *IntAvg) Width() int               { return 1 }
func (r *IntAvg) Dump(target block.DataRow, offset int) {
	var v float64
	if r.n > 0 {
		v = float64(r.sum) / float64(r.n)
	}
	target.Field(offset).SetDouble(v)
}

// DoubleAvg accumulates the average of a double column.
type DoubleAvg struct {
	col int
	sum float64
	n   int64
}

func NewDoubleAvg(col int) *DoubleAvg { return &DoubleAvg{col: col} }

func (r *DoubleAvg) Init()                    { r.sum, r.n = 0, 0 }
func (r *DoubleAvg) Reduce(row block.DataRow) { r.sum += row.Field(r.col).AsDouble(); r.n++ }
func (r *DoubleAvg) Width() int               { return 1 }
func (r *DoubleAvg) Dump(target block.DataRow, offset int) {
	var v float64
	if r.n > 0 {
		v = r.sum / float64(r.n)
	}
	target.Field(offset).SetDouble(v)
}

// Count counts the rows folded into a group, ignoring their contents.
type Count struct{ n int64 }

func NewCount() *Count { return &Count{} }

func (r *Count) Init()                                  { r.n = 0 }
func (r *Count) Reduce(block.DataRow)                   { r.n++ }
func (r *Count) Width() int                             { return 1 }
func (r *Count) Dump(target block.DataRow, offset int) { target.Field(offset).SetInt(r.n) }

// DoubleRecordingMax tracks the maximum value of a double column and,
// alongside it, a snapshot of whichever row achieved that maximum --
// spec.md §4.6's example of a reducer that carries more state than a
// single running scalar.
type DoubleRecordingMax struct {
	col         int
	recordKinds []rowcopy.FieldKind
	snap        *rowcopy.Snapshoter
	best        float64
	haveBest    bool
	bestRow     *block.MemDataRow
}

// NewDoubleRecordingMax tracks the max of col, recording the row's
// first len(recordKinds) columns (column i under recordKinds[i])
// whenever a new maximum is found.
func NewDoubleRecordingMax(col int, recordKinds []rowcopy.FieldKind) *DoubleRecordingMax {
	return &DoubleRecordingMax{col: col, recordKinds: recordKinds, snap: rowcopy.NewSnapshoter(recordKinds)}
}

func (r *DoubleRecordingMax) Init() {
	r.best, r.haveBest, r.bestRow = 0, false, nil
}

func (r *DoubleRecordingMax) Reduce(row block.DataRow) {
	v := row.Field(r.col).AsDouble()
	if !r.haveBest || v > r.best {
		r.best = v
		r.haveBest = true
		r.bestRow = r.snap.Snapshot(row)
	}
}

// Width is 1 (the max value) plus one column per recorded field.
func (r *DoubleRecordingMax) Width() int { return 1 + len(r.recordKinds) }

func (r *DoubleRecordingMax) Dump(target block.DataRow, offset int) {
	target.Field(offset).SetDouble(r.best)
	if r.bestRow == nil {
		return
	}
	for i, k := range r.recordKinds {
		src := r.bestRow.Field(i)
		dst := target.Field(offset + 1 + i)
		if k == rowcopy.String {
			dst.SetBytes(src.AsBytes())
		} else {
			dst.Assign(src)
		}
	}
}
