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

// Package attr holds the attribute bundle that a %files manifest line (or
// its section defaults) carries, and the directive parsers that populate it.
package attr

// Flags is a bitset over the attributes a manifest line can carry. The
// low 16 bits are exported into the package header FILEFLAGS tag; the
// remaining bits are parse-time-only state that must never reach a header.
type Flags uint32

const (
	Config Flags = 1 << iota
	MissingOK
	NoReplace
	Doc
	Readme
	License
	Pubkey
	Ghost
	Dir
	Docdir
	Exclude
	SpecialDoc
	SpecFile
)

// ExportMask isolates the bits of Flags that may be written into a header's
// FILEFLAGS tag. Dir, Docdir, Exclude and SpecialDoc are parse-time-only and
// must be stripped before emission.
const ExportMask Flags = Config | MissingOK | NoReplace | Doc | Readme | License | Pubkey | Ghost | SpecFile

// internalMask is the complement of ExportMask among the bits we define.
const internalMask Flags = Dir | Docdir | Exclude | SpecialDoc

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// VerifyMask is a bitset over the file-verification checks %verify can
// select or deselect.
type VerifyMask uint32

const (
	VerifyDigest VerifyMask = 1 << iota
	VerifySize
	VerifyLinkto
	VerifyUser
	VerifyGroup
	VerifyMtime
	VerifyMode
	VerifyRdev
	VerifyCaps
)

// VerifyAll is the mask set when no %verify directive narrows it.
const VerifyAll = VerifyDigest | VerifySize | VerifyLinkto | VerifyUser |
	VerifyGroup | VerifyMtime | VerifyMode | VerifyRdev | VerifyCaps

// Specd records, per overridable field, whether it came from this line's
// current attributes, from the section defaults, or was never set at all.
// Ordering matters: it is used as a merge priority (larger wins).
type Specd int

const (
	Unset Specd = iota
	FromDefault
	FromCurrent
)

// DevSpec is the synthesized device-node description from %dev(type major minor).
type DevSpec struct {
	Type  byte // 'b' or 'c'
	Major int
	Minor int
}

// SpecdFields tracks, per mergeable field, which precedence level last set it.
type SpecdFields struct {
	FileMode Specd
	DirMode  Specd
	Owner    Specd
	Group    Specd
	Verify   Specd
}

// Set is the attribute bundle attached to a manifest line (as "current"
// attributes) or carried as section defaults.
type Set struct {
	FileMode      *uint32 // optional octal mode, <= 07777
	DirMode       *uint32 // optional octal mode, defaults-only
	Owner         string
	Group         string
	Verify        VerifyMask
	VerifyExplicit bool
	Caps          string
	Dev           *DevSpec
	Langs         []string // sorted, unique
	Flags         Flags
	Specd         SpecdFields
}

// Clone returns a value copy of s, safe to mutate independently. Slices and
// pointers are duplicated so that later mutation of the original (e.g. a new
// %lang on a later line) cannot retroactively affect an already-resolved set.
func (s Set) Clone() Set {
	clone := s
	if s.FileMode != nil {
		m := *s.FileMode
		clone.FileMode = &m
	}
	if s.DirMode != nil {
		m := *s.DirMode
		clone.DirMode = &m
	}
	if s.Dev != nil {
		d := *s.Dev
		clone.Dev = &d
	}
	if s.Langs != nil {
		clone.Langs = append([]string(nil), s.Langs...)
	}
	return clone
}
