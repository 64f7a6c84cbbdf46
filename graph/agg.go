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
	"github.com/chidata/lqf/block"
	"github.com/chidata/lqf/ops"
	"github.com/chidata/lqf/table"
)

// HashAggNode adapts ops.HashAgg (and, via NewSimpleAgg, the ungrouped
// SimpleAgg variant) into a one-input node, per spec.md §4.6. Add runs
// over every row of every input block before Finalize is called once:
// per spec.md §5, aggregation reducers are not thread-safe, so this
// node is always single-threaded regardless of how many blocks the
// input table hands back.
type HashAggNode struct {
	agg      *ops.HashAgg
	outSizes []uint32
}

// NewHashAggNode wraps agg as a graph node.
func NewHashAggNode(agg *ops.HashAgg, outSizes []uint32) *HashAggNode {
	return &HashAggNode{agg: agg, outSizes: outSizes}
}

func (n *HashAggNode) Arity() int { return 1 }

func (n *HashAggNode) Execute(inputs []table.Table) (table.Table, error) {
	in := inputs[0]
	it := in.Blocks()
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
			n.agg.Add(row)
		}
	}
	outLayout := block.FromSizes(n.outSizes)
	result := n.agg.Finalize(outLayout)
	out := table.NewMemTable(n.outSizes, false)
	out.Append(result)
	return out, nil
}

// TableAggNode adapts ops.TableAgg, the dense-slot variant of §4.6
// used when the group key is already a small bounded integer (e.g. a
// dictionary ordinal) so groups can be indexed directly instead of
// hashed.
type TableAggNode struct {
	agg      *ops.TableAgg
	outSizes []uint32
}

// NewTableAggNode wraps agg as a graph node.
func NewTableAggNode(agg *ops.TableAgg, outSizes []uint32) *TableAggNode {
	return &TableAggNode{agg: agg, outSizes: outSizes}
}

func (n *TableAggNode) Arity() int { return 1 }

func (n *TableAggNode) Execute(inputs []table.Table) (table.Table, error) {
	in := inputs[0]
	it := in.Blocks()
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
			n.agg.Add(row)
		}
	}
	outLayout := block.FromSizes(n.outSizes)
	result := n.agg.Finalize(outLayout)
	out := table.NewMemTable(n.outSizes, false)
	out.Append(result)
	return out, nil
}
