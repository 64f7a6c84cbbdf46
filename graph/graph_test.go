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

package graph

import (
	"fmt"
	"testing"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/ops"
	"github.com/chidata/lqf/predicate"
	"github.com/chidata/lqf/rowcopy"
	"github.com/chidata/lqf/table"
)

func intRow(b *block.RowBlock, i uint32, vals ...int64) {
	row := b.RowAt(i)
	for c, v := range vals {
		row.Field(c).SetInt(v)
	}
}

func buildMemTable(rows [][]int64) *table.MemTable {
	width := len(rows[0])
	sizes := make([]uint32, width)
	for i := range sizes {
		sizes[i] = 1
	}
	mt := table.NewMemTable(sizes, false)
	rb := mt.Allocate(uint32(len(rows))).(*block.RowBlock)
	for i, r := range rows {
		intRow(rb, uint32(i), r...)
	}
	return mt
}

func TestTableNodeAndFilterNode(t *testing.T) {
	src := buildMemTable([][]int64{{1}, {2}, {3}, {4}})

	g := NewGraph()
	srcH := g.Add(NewTableNode(src))
	filter := predicate.NewColFilter(predicate.NewSimple(0, func(f block.DataField) bool {
		return f.AsInt()%2 == 0
	}))
	filterH := g.Add(NewFilterNode(filter), srcH)

	out, err := g.Execute(filterH)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	var got []int64
	it := out.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		rows := b.Rows()
		for {
			row, ok := rows.Next()
			if !ok {
				break
			}
			got = append(got, row.Field(0).AsInt())
		}
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("got %v, want [2 4]", got)
	}
}

func TestHashJoinNodeEndToEnd(t *testing.T) {
	left := buildMemTable([][]int64{{1, 100}, {2, 200}, {3, 300}})
	right := buildMemTable([][]int64{{1, 10}, {2, 20}})

	leftLayout := block.Uniform(2)
	rightLayout := block.Uniform(2)
	outLayout := block.Uniform(2)
	builder := ops.NewRowBuilder(
		leftLayout, rightLayout, outLayout,
		rowcopy.RAW, rowcopy.RAW,
		[]rowcopy.Entry{{Kind: rowcopy.Regular, FromCol: 1, ToCol: 0}},
		[]rowcopy.Entry{{Kind: rowcopy.Regular, FromCol: 1, ToCol: 1}},
		false, 0,
	)
	join := ops.NewHashJoin(ops.IntKey(0), []rowcopy.FieldKind{rowcopy.Regular, rowcopy.Regular}, builder, false)

	g := NewGraph()
	leftH := g.Add(NewTableNode(left))
	rightH := g.Add(NewTableNode(right))
	joinH := g.Add(NewHashJoinNode(join, ops.IntKey(0), []uint32{1, 1}), leftH, rightH)

	out, err := g.Execute(joinH)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	count := 0
	it := out.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		count += int(b.Size())
	}
	if count != 2 {
		t.Fatalf("joined row count = %d, want 2", count)
	}
}

func firstRow(tb table.Table) (block.DataRow, bool) {
	it := tb.Blocks()
	b, ok := it.Next()
	if !ok {
		return nil, false
	}
	return b.Rows().At(0), true
}

// TestNestedNodeGatesOnGlobalTotal mirrors spec.md §4.9's two-stage
// aggregation: the inner node computes one global sum over the whole
// source, and the outer node -- built only once that total is known --
// keeps only the groups whose sum exceeds half the global total.
func TestNestedNodeGatesOnGlobalTotal(t *testing.T) {
	src := buildMemTable([][]int64{{1, 10}, {1, 20}, {2, 5}, {2, 100}})
	// global total = 135; half = 67.5 -> group 1 (sum 30) rejected,
	// group 2 (sum 105) kept.

	g := NewGraph()
	srcH := g.Add(NewTableNode(src))

	globalAgg := ops.NewSimpleAgg(block.Uniform(1), func() []ops.Reducer {
		return []ops.Reducer{ops.NewIntSum(1)}
	}, nil)
	innerNode := NewHashAggNode(globalAgg, []uint32{1})

	nested := NewNestedNode(innerNode, 1, func(innerOut table.Table, outerInputs []table.Table) (Node, error) {
		totalRow, ok := firstRow(innerOut)
		if !ok {
			return nil, fmt.Errorf("global aggregate produced no row")
		}
		global := totalRow.Field(0).AsInt()
		perGroup := ops.NewHashAgg(ops.IntKey(0), []rowcopy.FieldKind{rowcopy.Regular}, block.Uniform(2), func() []ops.Reducer {
			return []ops.Reducer{ops.NewIntSum(1)}
		}, func(row block.DataRow) bool {
			return row.Field(1).AsInt()*2 > global
		})
		return NewHashAggNode(perGroup, []uint32{1, 1}), nil
	})
	nestedH := g.Add(nested, srcH, srcH)

	out, err := g.Execute(nestedH)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := map[int64]int64{}
	it := out.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		rows := b.Rows()
		for {
			row, ok := rows.Next()
			if !ok {
				break
			}
			got[row.Field(0).AsInt()] = row.Field(1).AsInt()
		}
	}
	if _, present := got[1]; present {
		t.Fatalf("group 1 (sum 30) should have been rejected by the post-aggregation predicate")
	}
	if got[2] != 105 {
		t.Fatalf("group 2 sum = %d, want 105", got[2])
	}
}
