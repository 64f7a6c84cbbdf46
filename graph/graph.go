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

	"github.com/google/uuid"

	"github.com/chidata/lqf/engine"
	"github.com/chidata/lqf/table"
)

// Handle names one node added to a Graph. It is only valid against the
// Graph that returned it.
type Handle int

type vertex struct {
	id     uuid.UUID
	node   Node
	inputs []Handle
}

// Graph is a DAG of Nodes, per spec.md §4.9. Add appends a node and its
// input edges; Execute performs a topological traversal (by recursive,
// memoized descent from a chosen root, since every edge already points
// from a later handle to an earlier one) and returns the root's output
// table.
//
// Each added node is tagged with a uuid.UUID purely for diagnostics:
// Errorf messages name a node by its handle and uuid so a long pipeline
// can be traced back to the Add call that introduced it. Block ids
// remain the monotonic counter in the block package; this uuid never
// labels a block.
type Graph struct {
	vertices []vertex
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph { return &Graph{} }

// Add appends node to the graph with the given input handles and
// returns a handle naming it. inputs must already be valid handles
// into g (i.e. returned by an earlier Add on the same Graph), and there
// must be exactly node.Arity() of them.
func (g *Graph) Add(node Node, inputs ...Handle) Handle {
	if len(inputs) != node.Arity() {
		engine.Raisef(engine.SchemaMismatch, "graph: Add: node expects %d inputs, got %d", node.Arity(), len(inputs))
	}
	for _, h := range inputs {
		if int(h) < 0 || int(h) >= len(g.vertices) {
			engine.Raisef(engine.SchemaMismatch, "graph: Add: input handle %d does not name an earlier node", h)
		}
	}
	id := uuid.New()
	g.vertices = append(g.vertices, vertex{id: id, node: node, inputs: append([]Handle(nil), inputs...)})
	h := Handle(len(g.vertices) - 1)
	engine.Logf("graph: added node %d (%s), arity %d", h, id, node.Arity())
	return h
}

// Execute runs root and every node it transitively depends on, each
// node exactly once, and returns root's output table. Nodes are run in
// dependency order: since a node's inputs can only reference handles
// added before it, top-down recursion over Handle already visits
// dependencies first.
func (g *Graph) Execute(root Handle) (table.Table, error) {
	memo := make(map[Handle]table.Table, len(g.vertices))
	return g.execute(root, memo)
}

func (g *Graph) execute(h Handle, memo map[Handle]table.Table) (table.Table, error) {
	if out, ok := memo[h]; ok {
		return out, nil
	}
	if int(h) < 0 || int(h) >= len(g.vertices) {
		return nil, fmt.Errorf("graph: Execute: handle %d out of range", h)
	}
	v := g.vertices[h]
	inputs := make([]table.Table, len(v.inputs))
	for i, in := range v.inputs {
		out, err := g.execute(in, memo)
		if err != nil {
			return nil, err
		}
		inputs[i] = out
	}
	engine.Logf("graph: executing node %d (%s)", h, v.id)
	out, err := v.node.Execute(inputs)
	if err != nil {
		return nil, fmt.Errorf("graph: node %d (%s): %w", h, v.id, err)
	}
	memo[h] = out
	return out, nil
}
