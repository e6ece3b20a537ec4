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

// Package record holds the collected, sorted, and merged file list that
// feeds header emission: the Go analog of rpm's FileListRec array.
package record

import (
	"os"
	"time"

	"github.com/holocm/rpmfiles/attr"
)

// File is one entry discovered by the tree walker: the on-disk stat
// snapshot plus the resolved attribute bundle that governed it.
type File struct {
	DiskPath    string // absolute path including build root
	ArchivePath string // path as it will appear inside the package: "/"-rooted, or a bare basename for source packages

	Mode    os.FileMode
	Dev     uint64 // device this file resides on
	RDev    uint64 // device this file represents, for device nodes
	Ino     uint64
	Nlink   uint32
	Size    int64
	Mtime   time.Time

	Owner string
	Group string

	Flags  attr.Flags
	Verify attr.VerifyMask
	Specd  attr.SpecdFields
	Langs  []string
	Caps   string

	LinkTo string // symlink target, empty otherwise
	Digest string // hex digest, regular files only

	IsSymlink bool
}

// IsRegular reports whether the record describes a plain regular file
// (not a directory, device node, or symlink).
func (f *File) IsRegular() bool {
	return f.Mode&os.ModeType == 0
}

// IsDevice reports whether the record describes a %dev(...)-synthesized
// block or character device node.
func (f *File) IsDevice() bool {
	return f.Mode&(os.ModeDevice|os.ModeCharDevice) != 0
}

// HardlinkKey identifies the hardlink set a regular file with nlink>1
// belongs to. Only meaningful when IsRegular() && Nlink>1.
type HardlinkKey struct {
	Dev uint64
	Ino uint64
}

func (f *File) hardlinkKey() HardlinkKey {
	return HardlinkKey{Dev: f.Dev, Ino: f.Ino}
}
