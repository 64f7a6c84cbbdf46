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
	"github.com/chidata/lqf/ops"
	"github.com/chidata/lqf/table"
)

// SmallSortNode adapts ops.SmallSort: every row of every input block is
// collected, then sorted and emitted as one block, per spec.md §4.7.
type SmallSortNode struct {
	sort *ops.SmallSort
}

// NewSmallSortNode wraps sort as a graph node.
func NewSmallSortNode(sort *ops.SmallSort) *SmallSortNode { return &SmallSortNode{sort: sort} }

func (n *SmallSortNode) Arity() int { return 1 }

func (n *SmallSortNode) Execute(inputs []table.Table) (table.Table, error) {
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
			n.sort.Add(row)
		}
	}
	result := n.sort.Finalize()
	out := table.NewMemTable(colSizeOf(result), false)
	out.Append(result)
	return out, nil
}

// TopNNode adapts ops.TopN: every row of every input block is offered
// to a bounded heap of at most k rows, then drained in best-first
// order, per spec.md §4.7.
type TopNNode struct {
	topn *ops.TopN
}

// NewTopNNode wraps topn as a graph node.
func NewTopNNode(topn *ops.TopN) *TopNNode { return &TopNNode{topn: topn} }

func (n *TopNNode) Arity() int { return 1 }

func (n *TopNNode) Execute(inputs []table.Table) (table.Table, error) {
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
			n.topn.Add(row)
		}
	}
	result := n.topn.Finalize()
	out := table.NewMemTable(colSizeOf(result), false)
	out.Append(result)
	return out, nil
}
