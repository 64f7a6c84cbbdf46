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
	"github.com/chidata/lqf/ops"
	"github.com/chidata/lqf/table"
)

// HashJoinNode adapts ops.HashJoin into a two-input node: input 0 is
// the probe (left) side, input 1 is the build (right) side, matching
// spec.md §4.5.1's build-then-probe ordering.
type HashJoinNode struct {
	join     *ops.HashJoin
	leftKey  ops.KeyFunc
	outSizes []uint32
}

// NewHashJoinNode wraps join as a graph node. leftKey extracts the
// probe key from a left row; outSizes is the output RowBlock's layout.
func NewHashJoinNode(join *ops.HashJoin, leftKey ops.KeyFunc, outSizes []uint32) *HashJoinNode {
	return &HashJoinNode{join: join, leftKey: leftKey, outSizes: outSizes}
}

func (n *HashJoinNode) Arity() int { return 2 }

func (n *HashJoinNode) Execute(inputs []table.Table) (table.Table, error) {
	left, right := inputs[0], inputs[1]
	n.join.Build(right)
	outLayout := block.FromSizes(n.outSizes)
	out := table.NewMemTable(n.outSizes, false)
	it := left.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		out.Append(n.join.Probe(n.leftKey, b, outLayout))
	}
	return out, nil
}

// HashColumnJoinNode adapts ops.HashColumnJoin: input 0 is the probe
// (left, vertical) side, input 1 is the build (right) side, per
// spec.md §4.5.2.
type HashColumnJoinNode struct {
	join     *ops.HashColumnJoin
	leftKey  ops.KeyFunc
	outSizes []uint32
}

// NewHashColumnJoinNode wraps join as a graph node.
func NewHashColumnJoinNode(join *ops.HashColumnJoin, leftKey ops.KeyFunc, outSizes []uint32) *HashColumnJoinNode {
	return &HashColumnJoinNode{join: join, leftKey: leftKey, outSizes: outSizes}
}

func (n *HashColumnJoinNode) Arity() int { return 2 }

func (n *HashColumnJoinNode) Execute(inputs []table.Table) (table.Table, error) {
	left, right := inputs[0], inputs[1]
	n.join.Build(right)
	out := table.NewMemTable(n.outSizes, true)
	it := left.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		cb, ok := b.(*block.ColumnBlock)
		if !ok {
			return nil, fmt.Errorf("graph: HashColumnJoinNode: left block is %T, want *block.ColumnBlock", b)
		}
		probed, err := n.join.Probe(n.leftKey, cb)
		if err != nil {
			return nil, fmt.Errorf("graph: HashColumnJoinNode: %w", err)
		}
		out.Append(probed)
	}
	return out, nil
}

// HashFilterJoinNode adapts ops.HashFilterJoin: input 0 is the probe
// (left) side, input 1 is the build (right) side, per spec.md §4.5.3.
// The output table shares the left table's column layout: a semi join
// never changes columns, only which rows survive.
type HashFilterJoinNode struct {
	join *ops.HashFilterJoin
	key  ops.KeyFunc
}

// NewHashFilterJoinNode wraps join as a graph node.
func NewHashFilterJoinNode(join *ops.HashFilterJoin, leftKey ops.KeyFunc) *HashFilterJoinNode {
	return &HashFilterJoinNode{join: join, key: leftKey}
}

func (n *HashFilterJoinNode) Arity() int { return 2 }

func (n *HashFilterJoinNode) Execute(inputs []table.Table) (table.Table, error) {
	left, right := inputs[0], inputs[1]
	n.join.Build(right)
	out := table.NewMemTable(left.ColSize(), false)
	it := left.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		out.Append(n.join.Probe(n.key, b))
	}
	return out, nil
}

// HashExistJoinNode adapts ops.HashExistJoin: input 0 is the build
// (left) side, input 1 is the probe (right) side — the reversed build/
// probe roles of spec.md §4.5.4 relative to the other three joins.
type HashExistJoinNode struct {
	join     *ops.HashExistJoin
	leftKey  ops.KeyFunc
	rightKey ops.KeyFunc
	outSizes []uint32
}

// NewHashExistJoinNode wraps join as a graph node.
func NewHashExistJoinNode(join *ops.HashExistJoin, leftKey, rightKey ops.KeyFunc, outSizes []uint32) *HashExistJoinNode {
	return &HashExistJoinNode{join: join, leftKey: leftKey, rightKey: rightKey, outSizes: outSizes}
}

func (n *HashExistJoinNode) Arity() int { return 2 }

func (n *HashExistJoinNode) Execute(inputs []table.Table) (table.Table, error) {
	left, right := inputs[0], inputs[1]
	n.join.Build(left, n.leftKey)
	outLayout := block.FromSizes(n.outSizes)
	out := table.NewMemTable(n.outSizes, false)
	it := right.Blocks()
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		out.Append(n.join.Probe(n.rightKey, b, outLayout))
	}
	return out, nil
}
