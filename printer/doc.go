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

// Package printer implements the terminal sink of spec.md §6: a node
// that formats selected output columns (INT, DOUBLE, BYTES, DICT(i))
// and writes them to an io.Writer, one row per line. Printer.Print
// returns no rows; the graph Node wrapper returns its input table
// unchanged, so it can be the last node of a graph.Graph or a tap in
// the middle of one.
package printer
