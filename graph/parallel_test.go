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
	"testing"

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/exec"
	"github.com/chidata/lqf/predicate"
)

func TestParallelFilterNodePreservesBlockOrder(t *testing.T) {
	mt := buildMemTable([][]int64{{10}})
	// Three separate blocks, appended in order, each carrying one row;
	// order must survive PCollect's indexed slots even though the
	// transform tasks run on a shared worker pool.
	for _, v := range [][]int64{{20}, {30}} {
		rb := block.NewRowBlock(block.Uniform(1), 1)
		rb.Reserve(1)
		intRow(rb, 0, v...)
		mt.Append(rb)
	}

	ex := exec.NewExecutor(4)
	defer ex.Shutdown()

	filter := predicate.NewColFilter(predicate.NewSimple(0, func(f block.DataField) bool { return true }))
	node := NewParallelFilterNode(filter, ex)

	g := NewGraph()
	srcH := g.Add(NewTableNode(mt))
	filterH := g.Add(node, srcH)

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
		row := b.Rows().At(0)
		got = append(got, row.Field(0).AsInt())
	}
	want := []int64{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
