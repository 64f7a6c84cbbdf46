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

package engine

// Errorf is a global diagnostic hook that an embedding process may set
// during init() to capture additional diagnostic information from the
// engine (graph construction, node execution). Unset by default.
var Errorf func(f string, args ...any)

// errorf calls Errorf if set, and is a no-op otherwise; internal
// packages call this rather than touching Errorf directly so the nil
// check lives in one place.
func errorf(f string, args ...any) {
	if Errorf != nil {
		Errorf(f, args...)
	}
}

// Logf is the exported form of errorf for other packages in this
// module (graph, printer) that want to report through the same hook
// without duplicating the nil check.
func Logf(f string, args ...any) { errorf(f, args...) }
