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

// Package ops implements the stream operator family of spec.md §§4.3-4.8:
// the predicate/ColFilter scan, the four hash-join shapes, hash
// aggregation (grouped, ungrouped, and dense-indexed), sort/top-N, and
// the two materialization operators. Every operator here consumes and
// produces the block package's Block/Table types; none of them know
// about the execution graph that wires them together (see package
// graph).
package ops
