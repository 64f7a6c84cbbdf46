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

package printer

import (
	"fmt"

	"github.com/chidata/lqf/table"
)

// Node adapts a Printer into a one-input graph.Node: Execute prints
// every row of its input, then passes the same table straight through
// unchanged, so a Printer can still sit mid-graph as a tap without
// having to be literally the last node added.
type Node struct {
	p *Printer
}

// NewNode wraps p as a graph node.
func NewNode(p *Printer) *Node { return &Node{p: p} }

func (n *Node) Arity() int { return 1 }

func (n *Node) Execute(inputs []table.Table) (table.Table, error) {
	in := inputs[0]
	if err := n.p.Print(in); err != nil {
		return nil, fmt.Errorf("printer: Node: %w", err)
	}
	return in, nil
}
