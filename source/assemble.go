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

// Package source assembles the source-package file list: the spec file
// plus every %sources/%patches entry and every subpackage's %icon, flat
// (basenames only, no directory structure), optionally with a source
// %defattr override. The Go analog of processSourceFiles.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/holocm/rpmfiles/attr"
	"github.com/holocm/rpmfiles/record"
	"github.com/holocm/rpmfiles/walk"
)

// Input describes the material that goes into a source package's file list.
type Input struct {
	// SpecFile is the path to the spec file itself; it is the first entry
	// read and always carries the SpecFile flag. The resulting list is
	// sorted by basename, so the spec file is not necessarily first in it.
	SpecFile string

	// Sources lists every %sources/%patches entry's resolved disk path.
	// An entry prefixed with "!" is still stat'd and included, but
	// carries the Ghost flag (it is not shipped in the binary source
	// tarball, only recorded in the header).
	Sources []string

	// Icons lists every package's %icon entries, resolved the same way
	// as Sources.
	Icons []string

	// DefAttr is an optional "%defattr"-style argument string (e.g.
	// "-,root,root,-") overriding owner/group/mode for every entry.
	DefAttr string
}

// Assemble builds a sorted, merged record.Store for the source package
// described by in.
func Assemble(in Input) (*record.Store, error) {
	var def attr.Set
	if strings.TrimSpace(in.DefAttr) != "" {
		line := fmt.Sprintf("%%defattr(%s)", in.DefAttr)
		if _, err := attr.ParseDefAttr(line, &def); err != nil {
			return nil, fmt.Errorf("bad source %%defattr: %s", err)
		}
	}

	w := walk.NewWalker("")
	store := &record.Store{}

	entries := make([]string, 0, 1+len(in.Sources)+len(in.Icons))
	entries = append(entries, in.SpecFile)
	entries = append(entries, in.Sources...)
	entries = append(entries, in.Icons...)

	for i, raw := range entries {
		diskPath := strings.TrimSpace(raw)
		if diskPath == "" {
			continue
		}

		var flags attr.Flags
		if i == 0 {
			flags |= attr.SpecFile
		}
		if strings.HasPrefix(diskPath, "!") {
			flags |= attr.Ghost
			diskPath = diskPath[1:]
		}

		rec, err := buildSourceRecord(w, diskPath, flags, def)
		if err != nil {
			return nil, err
		}
		store.Add(rec)
	}

	store.Sort()
	store.CheckHardLinks()
	store.MergeDuplicates(nil)
	return store, nil
}

// buildSourceRecord stats diskPath (following symlinks, as the original
// does with stat() rather than lstat()) and applies def's mode/owner/group
// override, if any.
func buildSourceRecord(w *walk.Walker, diskPath string, flags attr.Flags, def attr.Set) (record.File, error) {
	info, err := os.Stat(diskPath)
	if err != nil {
		return record.File{}, fmt.Errorf("bad source file: %s: %s", diskPath, err)
	}

	mode := info.Mode()
	if def.FileMode != nil {
		mode = (mode &^ os.ModePerm) | os.FileMode(*def.FileMode)
	}

	uid, gid := uint32(os.Getuid()), uint32(os.Getgid())
	if sys, ok := info.Sys().(*syscall.Stat_t); ok {
		uid, gid = sys.Uid, sys.Gid
	}

	owner := def.Owner
	if owner == "" {
		owner = w.LookupUserName(uid)
	}
	group := def.Group
	if group == "" {
		group = w.LookupGroupName(gid)
	}

	return record.File{
		DiskPath:    diskPath,
		ArchivePath: filepath.Base(diskPath),
		Mode:        mode,
		Size:        info.Size(),
		Mtime:       info.ModTime(),
		Owner:       owner,
		Group:       group,
		Flags:       flags,
		Verify:      attr.VerifyAll,
	}, nil
}
