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

// Package graph implements the execution graph of spec.md §4.9: a DAG
// of Nodes, each with a declared arity, wired together by Graph.Add and
// run by Graph.Execute's topological traversal. Node adapters in this
// package wrap the ops package's physical operators so a query can be
// assembled declaratively instead of calling operators by hand.
package graph
