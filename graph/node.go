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

import "github.com/chidata/lqf/table"

// Node is one vertex of a Graph: a physical operator (or a bare table)
// that consumes a fixed number of upstream tables and produces one
// table. Execute is called once per Graph.Execute with exactly Arity()
// inputs, already resolved from the node's declared predecessors.
type Node interface {
	// Arity returns the number of input tables Execute expects.
	Arity() int

	// Execute runs the node against inputs and returns its output
	// table. Output tables are always table.Table references over
	// already-materialized blocks (typically a *table.MemTable), per
	// spec.md §6's in-memory handoff contract.
	Execute(inputs []table.Table) (table.Table, error)
}

// TableNode adapts a pre-existing table.Table (e.g. a
// table.ColumnarFileTable scan) into a zero-arity graph source.
type TableNode struct {
	t table.Table
}

// NewTableNode wraps t as a source node.
func NewTableNode(t table.Table) *TableNode { return &TableNode{t: t} }

func (n *TableNode) Arity() int { return 0 }

func (n *TableNode) Execute(inputs []table.Table) (table.Table, error) {
	return n.t, nil
}
