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

// Package rowcopy implements the row-copy compiler of spec.md §4.4:
// given a schedule of (field kind, source column, target column)
// triples, it compiles a single closure that copies one row into
// another, optimizing contiguous runs between two dense row-major rows
// into one bulk word copy.
package rowcopy

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/chidata/lqf/block"
)

// FieldKind selects how one scheduled field is copied.
type FieldKind int

const (
	// Regular copies one word (an int or double bit pattern) as-is.
	Regular FieldKind = iota
	// String deep-copies a two-word byte-array descriptor: the bytes
	// are re-appended into the target row's own BytePool, since the
	// source and target pools are always independent.
	String
	// Raw copies the undecoded dictionary ordinal from the source
	// row's Raw accessor into the target's raw-ordinal field.
	Raw
)

// StorageKind classifies the row-major shape a schedule's endpoint is
// known to have, per spec.md §4.4: RAW (dense row-major, e.g.
// RowBlock/MemDataRow), EXTERNAL (file-backed, ColumnarFileBlock),
// OTHER (vertical, ColumnBlock). Only a RAW-to-RAW copy is eligible
// for the contiguous-run bulk-copy optimization.
type StorageKind int

const (
	RAW StorageKind = iota
	EXTERNAL
	OTHER
)

// Entry is one scheduled field copy.
type Entry struct {
	Kind           FieldKind
	FromCol, ToCol int
}

// PostProcessor runs after every scheduled field has been copied, for
// copies that need to derive a target field from more than a single
// source field (e.g. a computed key column).
type PostProcessor func(target, source block.DataRow)

// Func is a compiled row copy: copies every scheduled field (and runs
// every post-processor) from source into target.
type Func func(target, source block.DataRow)

// wordsRow is implemented by dense row-major DataRows (MemDataRow,
// the block package's internal RowBlock row type) that expose their
// backing word slice directly, which is what makes the bulk-copy
// optimization possible.
type wordsRow interface {
	Words() []uint64
}

type step struct {
	bulk           bool
	fromOff, toOff uint32
	n              uint32 // bulk: word count. non-bulk: unused
	kind           FieldKind
	fromCol, toCol int
}

// Compile builds a Func from fromLayout/toLayout (needed only to
// locate word offsets for the bulk-copy optimization; pass the zero
// Layout when either storage kind is not RAW) and schedule. When both
// fromKind and toKind are RAW, Compile sorts a copy of schedule by
// FromCol and folds maximal runs of non-String entries whose FromCol
// and ToCol both advance by exactly one into a single bulk word-range
// copy step; every other entry (and any schedule under a non-RAW/RAW
// pairing) becomes an individual per-field step.
func Compile(fromLayout, toLayout block.Layout, fromKind, toKind StorageKind, schedule []Entry, post []PostProcessor) Func {
	steps := compileSteps(fromLayout, toLayout, fromKind, toKind, schedule)
	return func(target, source block.DataRow) {
		runSteps(steps, target, source)
		for _, p := range post {
			p(target, source)
		}
	}
}

func compileSteps(fromLayout, toLayout block.Layout, fromKind, toKind StorageKind, schedule []Entry) []step {
	if fromKind != RAW || toKind != RAW {
		return perFieldSteps(schedule)
	}

	sorted := append([]Entry(nil), schedule...)
	slices.SortStableFunc(sorted, func(a, b Entry) bool { return a.FromCol < b.FromCol })

	var out []step
	i := 0
	for i < len(sorted) {
		if sorted[i].Kind == String || fromLayout.Width(sorted[i].FromCol) != 1 {
			out = append(out, fieldStep(sorted[i]))
			i++
			continue
		}
		j := i + 1
		for j < len(sorted) &&
			sorted[j].Kind != String &&
			fromLayout.Width(sorted[j].FromCol) == 1 &&
			sorted[j].FromCol == sorted[j-1].FromCol+1 &&
			sorted[j].ToCol == sorted[j-1].ToCol+1 {
			j++
		}
		runLen := j - i
		out = append(out, step{
			bulk:    true,
			fromOff: fromLayout.Offsets[sorted[i].FromCol],
			toOff:   toLayout.Offsets[sorted[i].ToCol],
			n:       uint32(runLen),
		})
		i = j
	}
	return out
}

func perFieldSteps(schedule []Entry) []step {
	out := make([]step, len(schedule))
	for i, e := range schedule {
		out[i] = fieldStep(e)
	}
	return out
}

func fieldStep(e Entry) step {
	return step{kind: e.Kind, fromCol: e.FromCol, toCol: e.ToCol}
}

func runSteps(steps []step, target, source block.DataRow) {
	for _, s := range steps {
		if s.bulk {
			runBulkStep(s, target, source)
			continue
		}
		runFieldStep(s, target, source)
	}
}

func runBulkStep(s step, target, source block.DataRow) {
	src, ok := source.(wordsRow)
	if !ok {
		panic(fmt.Errorf("rowcopy: bulk step requires a dense row-major source, got %T", source))
	}
	dst, ok := target.(wordsRow)
	if !ok {
		panic(fmt.Errorf("rowcopy: bulk step requires a dense row-major target, got %T", target))
	}
	copy(dst.Words()[s.toOff:s.toOff+s.n], src.Words()[s.fromOff:s.fromOff+s.n])
}

func runFieldStep(s step, target, source block.DataRow) {
	switch s.kind {
	case Regular:
		target.Field(s.toCol).Assign(source.Field(s.fromCol))
	case String:
		target.Field(s.toCol).SetBytes(source.Field(s.fromCol).AsBytes())
	case Raw:
		f, ok := source.Raw(s.fromCol)
		if !ok {
			panic(fmt.Errorf("rowcopy: Raw field kind requires a dictionary-backed source column %d", s.fromCol))
		}
		target.Field(s.toCol).SetRawOrdinal(f.AsRawOrdinal())
	default:
		panic(fmt.Errorf("rowcopy: unknown field kind %d", s.kind))
	}
}
