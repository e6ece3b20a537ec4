/*******************************************************************************
*
* Copyright 2015 Stefan Majewsky <majewsky@gmx.net>
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

package manifest

import (
	"github.com/holocm/rpmfiles/header"
	"github.com/holocm/rpmfiles/record"
)

// Package is the per-package work unit that driver.Driver assembles: the
// raw %files manifest lines (inline text plus whatever external manifest
// files contributed, already flattened into one ordered slice), the build
// root they're resolved against, and the results of running the pipeline
// (the merged record.Store and the populated header.Header).
type Package struct {
	// Name identifies the package for diagnostics (the %files section's
	// subpackage name, or "" for the main package).
	Name string

	// BuildRoot is the filesystem root that manifest tokens are resolved
	// against.
	BuildRoot string

	// Lines is every manifest line for this package, in file order,
	// with %include'd external manifest files already expanded in place.
	Lines []string

	// IsSource marks this as the source package's own header (see the
	// source package for how its file list is assembled; a Package with
	// IsSource still carries Lines for any source-package-only directives
	// its manifest supports, e.g. a source %defattr).
	IsSource bool

	// IsNoarch is the declared architecture-independence of this package,
	// consulted by the noarch/arch-colored-binaries consistency check.
	IsNoarch bool

	// Store holds the resolved, sorted, and merged file records once the
	// pipeline has run.
	Store *record.Store

	// Header holds the emitted header tag columns once the pipeline has
	// run.
	Header *header.Header
}
