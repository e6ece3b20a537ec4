/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

package header

// rpmlibPseudoDependency names one of the synthetic rpmlib(Feature)
// requires entries that tell legacy rpm binaries which header/payload
// conventions they need to understand to install the package at all.
type rpmlibPseudoDependency struct {
	Name    string
	Version string
}

// alwaysNeededFeatures is unconditionally required: any header we emit
// uses versioned dependencies and compressed filenames plus an lzma
// payload.
var alwaysNeededFeatures = []rpmlibPseudoDependency{
	{"VersionedDependencies", "3.0.3-1"},
	{"CompressedFileNames", "3.0.4-1"},
	{"PayloadIsLzma", "4.4.6-1"},
}

var payloadFilesHavePrefixFeature = rpmlibPseudoDependency{"PayloadFilesHavePrefix", "4.0-1"}

var fileDigestsFeature = rpmlibPseudoDependency{"FileDigests", "4.6.0-1"}

var fileCapsFeature = rpmlibPseudoDependency{"FileCaps", "4.6.1-1"}

// appendRpmlibRequires appends one "rpmlib(Name) >= Version" entry per
// needed feature to the header's RequireName/RequireFlags/RequireVersion
// triple.
func (e *emitter) appendRpmlibRequires(features []rpmlibPseudoDependency) {
	for _, f := range features {
		e.requireNames = append(e.requireNames, "rpmlib("+f.Name+")")
		e.requireFlags = append(e.requireFlags, int32(senseEqual|senseGreater|senseRpmlib))
		e.requireVersions = append(e.requireVersions, f.Version)
	}
}
