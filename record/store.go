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

package record

import (
	"fmt"
	"sort"

	"github.com/holocm/rpmfiles/attr"
)

// Store is the growable collection of Files assembled for one package. The
// backing slice already amortizes growth the way Go's append does; we don't
// hand-roll the original's 128-entry realloc granularity, just rely on the
// runtime's doubling strategy.
type Store struct {
	Files []File

	// HaveHardlinks is set by CheckHardLinks when at least one hardlink
	// set was found, signalling that the payload needs the "partial
	// hardlink sets possible" feature requirement.
	HaveHardlinks bool
}

// Add appends f to the store.
func (s *Store) Add(f File) {
	s.Files = append(s.Files, f)
}

// Sort stably orders the store's files by archive path using byte order.
func (s *Store) Sort() {
	sort.SliceStable(s.Files, func(i, j int) bool {
		return s.Files[i].ArchivePath < s.Files[j].ArchivePath
	})
}

// CheckHardLinks scans the (already sorted or unsorted, order doesn't
// matter here) store for regular files with nlink>1 that share a (dev,ino)
// pair, and sets HaveHardlinks if any are found.
func (s *Store) CheckHardLinks() {
	seen := make(map[HardlinkKey]int)
	for i := range s.Files {
		f := &s.Files[i]
		if !f.IsRegular() || f.Nlink <= 1 {
			continue
		}
		key := f.hardlinkKey()
		seen[key]++
		if seen[key] > 1 {
			s.HaveHardlinks = true
		}
	}
}

// SeenHardLink returns the index of the earliest record in s.Files[:i]
// sharing i's hardlink set, or -1 if i starts a new set (or isn't part of
// one at all). Used so totalFileSize only counts a hardlinked file once.
func (s *Store) SeenHardLink(i int) int {
	f := &s.Files[i]
	if !f.IsRegular() || f.Nlink <= 1 {
		return -1
	}
	key := f.hardlinkKey()
	for j := 0; j < i; j++ {
		g := &s.Files[j]
		if g.IsRegular() && g.Nlink > 1 && g.hardlinkKey() == key {
			return j
		}
	}
	return -1
}

// MergeDuplicates walks the sorted store collapsing consecutive records
// sharing the same archive path into one, per the duplicate merge policy:
// flags are unioned, a warning is reported unless one side is %exclude, and
// each mergeable field picks whichever side has the more explicit specd
// level (ties keep the later record). It must run after Sort and before
// header emission.
func (s *Store) MergeDuplicates(warn func(string)) {
	if len(s.Files) == 0 {
		return
	}
	merged := s.Files[:1]
	for _, next := range s.Files[1:] {
		last := &merged[len(merged)-1]
		if last.ArchivePath != next.ArchivePath {
			merged = append(merged, next)
			continue
		}
		if warn != nil && !last.Flags.Has(attr.Exclude) && !next.Flags.Has(attr.Exclude) {
			warn(fmt.Sprintf("file %q listed more than once", next.ArchivePath))
		}
		mergeInto(last, next)
	}
	s.Files = merged
}

// mergeInto folds next into last, next being the later (higher-index)
// record of a duplicate archive-path run.
func mergeInto(last *File, next File) {
	last.Flags |= next.Flags

	if atLeastAsExplicit(next.Specd.FileMode, last.Specd.FileMode) {
		last.Mode = next.Mode
		last.Specd.FileMode = next.Specd.FileMode
	}
	if atLeastAsExplicit(next.Specd.Owner, last.Specd.Owner) {
		last.Owner = next.Owner
		last.Specd.Owner = next.Specd.Owner
	}
	if atLeastAsExplicit(next.Specd.Group, last.Specd.Group) {
		last.Group = next.Group
		last.Specd.Group = next.Specd.Group
	}
	if atLeastAsExplicit(next.Specd.Verify, last.Specd.Verify) {
		last.Verify = next.Verify
		last.Specd.Verify = next.Specd.Verify
	}

	// everything else not governed by a specd bit: keep the later record,
	// matching "ties keep the later record's value".
	last.DiskPath = next.DiskPath
	last.Dev = next.Dev
	last.RDev = next.RDev
	last.Ino = next.Ino
	last.Nlink = next.Nlink
	last.Size = next.Size
	last.Mtime = next.Mtime
	last.Langs = next.Langs
	last.Caps = next.Caps
	last.LinkTo = next.LinkTo
	last.Digest = next.Digest
	last.IsSymlink = next.IsSymlink
}

// atLeastAsExplicit reports whether next's specd level is at least as
// explicit as last's under the ordering (Unset < FromDefault < FromCurrent).
// A tie resolves in next's favor, matching "ties keep the later record".
func atLeastAsExplicit(next, last attr.Specd) bool {
	return next >= last
}
