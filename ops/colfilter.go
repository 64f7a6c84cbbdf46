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

package ops

import "github.com/chidata/lqf/predicate"

// Predicate and ColFilter are the scan-side operators of spec.md §4.3;
// they live in package predicate because the raw dictionary-ordinal
// fast path they share needs direct access to block.RawAccessor and
// dictionary.Dictionary, both of which ops has no other reason to
// import. Re-exported here so every stream operator in a graph can be
// reached through one package.
type Predicate = predicate.Predicate
type ColFilter = predicate.ColFilter

var (
	NewSimple        = predicate.NewSimple
	NewRawEquality   = predicate.NewRawEquality[int64]
	NewRawRange      = predicate.NewRawRange[int64]
	NewStringEquality = predicate.NewRawEquality[string]
	NewStringRange   = predicate.NewRawRange[string]
	NewColFilter     = predicate.NewColFilter
)
