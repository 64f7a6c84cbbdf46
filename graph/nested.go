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

	"github.com/chidata/lqf/table"
)

// NestedNode lets an outer node consume its inner node's output before
// running, per spec.md §4.9: "NestedNode lets an outer node consume
// its inner operator's output (used for two-stage aggregation where a
// global total gates a per-group filter)". Concretely: inner runs
// first (typically a SimpleAgg computing a single global total over
// the same rows outer will later group), and Build receives that
// single-block result to close over before constructing the node that
// actually produces NestedNode's output.
//
// NestedNode's own arity is inner.Arity() plus however many additional
// inputs Build's constructed node needs; Execute splits the incoming
// inputs accordingly, always feeding inner's share first.
type NestedNode struct {
	inner      Node
	outerArity int
	build      func(innerOut table.Table, outerInputs []table.Table) (Node, error)
}

// NewNestedNode builds a NestedNode. outerArity is the arity of the
// Node that build constructs (not counting inner's own inputs).
func NewNestedNode(inner Node, outerArity int, build func(innerOut table.Table, outerInputs []table.Table) (Node, error)) *NestedNode {
	return &NestedNode{inner: inner, outerArity: outerArity, build: build}
}

func (n *NestedNode) Arity() int { return n.inner.Arity() + n.outerArity }

func (n *NestedNode) Execute(inputs []table.Table) (table.Table, error) {
	innerArity := n.inner.Arity()
	if len(inputs) != innerArity+n.outerArity {
		return nil, fmt.Errorf("graph: NestedNode: expected %d inputs, got %d", innerArity+n.outerArity, len(inputs))
	}
	innerOut, err := n.inner.Execute(inputs[:innerArity])
	if err != nil {
		return nil, fmt.Errorf("graph: NestedNode: inner: %w", err)
	}
	outer, err := n.build(innerOut, inputs[innerArity:])
	if err != nil {
		return nil, fmt.Errorf("graph: NestedNode: build: %w", err)
	}
	if outer.Arity() != n.outerArity {
		return nil, fmt.Errorf("graph: NestedNode: built node expects %d inputs, declared %d", outer.Arity(), n.outerArity)
	}
	return outer.Execute(inputs[innerArity:])
}
