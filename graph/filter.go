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

	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/exec"
	"github.com/chidata/lqf/predicate"
	"github.com/chidata/lqf/stream"
	"github.com/chidata/lqf/table"
)

// FilterNode adapts a predicate.ColFilter into a one-input, one-output
// graph node: every input block runs through filter.Apply, in order,
// single-threaded.
type FilterNode struct {
	filter *predicate.ColFilter
}

// NewFilterNode wraps filter as a graph node.
func NewFilterNode(filter *predicate.ColFilter) *FilterNode {
	return &FilterNode{filter: filter}
}

func (n *FilterNode) Arity() int { return 1 }

func (n *FilterNode) Execute(inputs []table.Table) (table.Table, error) {
	in := inputs[0]
	out := table.NewMemTable(in.ColSize(), false)
	it := in.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		masked, err := n.filter.Apply(b)
		if err != nil {
			return nil, fmt.Errorf("graph: FilterNode: %w", err)
		}
		out.Append(masked)
	}
	return out, nil
}

// ParallelFilterNode is FilterNode's concurrent counterpart, per
// spec.md §5 ("stream .parallel() causes per-block map/filter closures
// to be submitted as tasks"): it drives the input's blocks through a
// stream.Stream, fans filter.Apply out across ex via stream.Parallel/
// PMap, and relies on stream.PCollect's indexed result slots to
// restore input block order before appending to the output table —
// Printer and any other downstream consumer only ever sees
// deterministic order, never the order tasks happen to finish in.
type ParallelFilterNode struct {
	filter *predicate.ColFilter
	ex     *exec.Executor
}

// NewParallelFilterNode wraps filter as a graph node whose per-block
// Apply calls run on ex.
func NewParallelFilterNode(filter *predicate.ColFilter, ex *exec.Executor) *ParallelFilterNode {
	return &ParallelFilterNode{filter: filter, ex: ex}
}

func (n *ParallelFilterNode) Arity() int { return 1 }

type filterResult struct {
	block block.Block
	err   error
}

func (n *ParallelFilterNode) Execute(inputs []table.Table) (table.Table, error) {
	in := inputs[0]
	it := in.Blocks()
	src := stream.FromFunc(func() (block.Block, bool) { return it.Next() })
	par := stream.Parallel[block.Block](src, n.ex)
	mapped := stream.PMap(par, func(b block.Block) filterResult {
		masked, err := n.filter.Apply(b)
		return filterResult{block: masked, err: err}
	})
	results, err := stream.PCollect(mapped)
	if err != nil {
		return nil, fmt.Errorf("graph: ParallelFilterNode: %w", err)
	}
	out := table.NewMemTable(in.ColSize(), false)
	for _, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("graph: ParallelFilterNode: %w", r.err)
		}
		out.Append(r.block)
	}
	return out, nil
}
