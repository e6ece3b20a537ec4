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

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/holocm/rpmfiles/attr"
	"github.com/holocm/rpmfiles/record"
)

// Options configures one run of Emit.
type Options struct {
	// IsSource marks a source-package header; "./" path prefixing and the
	// PayloadFilesHavePrefix feature are skipped for source packages.
	IsSource bool

	// NoPayloadPrefix disables the "./" cpio path prefix (and the
	// corresponding rpmlib feature requirement) even for a binary
	// package, mirroring the %_noPayloadPrefix macro.
	NoPayloadPrefix bool

	// NoDirTokens disables filelist compression (DIRNAMES/BASENAMES/
	// DIRINDEXES), keeping the legacy flat OLDFILENAMES array instead.
	NoDirTokens bool

	DigestAlgorithm DigestAlgorithm

	// LargeFiles switches FILESIZES/SIZE to their 64-bit counterparts.
	LargeFiles bool

	SourceRPM string

	// DocDirs lists archive-path prefixes (no trailing slash) whose
	// contents are implicitly flagged %doc even without an explicit
	// directive, e.g. "/usr/share/doc".
	DocDirs []string
}

// emitter accumulates the per-file header columns and aggregate tags while
// walking a sorted, already-merged record.Store.
type emitter struct {
	opts Options

	archivePaths []string
	userNames    []string
	groupNames   []string
	fileSizes32  []int32
	fileSizes64  []int64
	mtimes       []int32
	modes        []int16
	rdevs        []int16
	inodes       []int32
	devices      []int32
	langs        []string
	caps         []string
	digests      []string
	linktos      []string
	verifyFlags  []int32
	flags        []int32

	requireNames    []string
	requireFlags    []int32
	requireVersions []string

	haveCaps      bool
	totalFileSize int64
	warnings      []string

	// emittedCount is the running count of non-excluded files written so
	// far; FILEINODES numbers files by this position, not by their index
	// in store.Files (which still includes excluded records).
	emittedCount int32
}

// Emit walks store's sorted, merged files and populates hdr with every
// per-file column plus the aggregate tags (SIZE/LONGSIZE, FILEDIGESTALGO,
// SOURCERPM, and rpmlib pseudo-dependencies). store must already have been
// sorted and had MergeDuplicates applied. Returns the warnings collected
// along the way (e.g. a missing digest for a %ghost file); a digest failure
// on any other regular file is fatal and returned as an error instead.
func Emit(hdr *Header, store *record.Store, opts Options) ([]string, error) {
	e := &emitter{opts: opts}

	for i := range store.Files {
		f := &store.Files[i]
		if f.Flags.Has(attr.Exclude) {
			continue
		}
		if f.Caps != "" {
			e.haveCaps = true
		}
	}

	for i := range store.Files {
		f := &store.Files[i]
		if f.Flags.Has(attr.Exclude) {
			continue
		}
		if err := e.emitFile(store, i, f); err != nil {
			return e.warnings, err
		}
	}

	hdr.AddStringArrayValue(tagFileUserName, e.userNames)
	hdr.AddStringArrayValue(tagFileGroupName, e.groupNames)

	if opts.LargeFiles {
		hdr.AddInt64Value(tagLongFileSizes, e.fileSizes64)
	} else {
		hdr.AddInt32Value(tagFileSizes, e.fileSizes32)
	}

	hdr.AddInt32Value(tagFileMtimes, e.mtimes)
	hdr.AddInt16Value(tagFileModes, e.modes)
	hdr.AddInt16Value(tagFileRdevs, e.rdevs)
	hdr.AddInt32Value(tagFileInodes, e.inodes)
	hdr.AddInt32Value(tagFileDevices, e.devices)
	hdr.AddStringArrayValue(tagFileLangs, e.langs)
	if e.haveCaps {
		hdr.AddStringArrayValue(tagFileCaps, e.caps)
	}
	hdr.AddStringArrayValue(tagFileDigests, e.digests)
	hdr.AddStringArrayValue(tagFileLinktos, e.linktos)
	hdr.AddInt32Value(tagFileVerifyFlags, e.verifyFlags)
	hdr.AddInt32Value(tagFileFlags, e.flags)

	if e.opts.LargeFiles || e.totalFileSize >= (1<<32) {
		hdr.AddInt64Value(tagLongSize, []int64{e.totalFileSize})
	} else {
		hdr.AddInt32Value(tagSize, []int32{int32(e.totalFileSize)})
	}

	algoTag := opts.DigestAlgorithm.rpmDigestAlgoTag()
	if algoTag != MD5.rpmDigestAlgoTag() {
		hdr.AddInt32Value(tagFileDigestAlgo, []int32{algoTag})
		e.appendRpmlibRequires([]rpmlibPseudoDependency{fileDigestsFeature})
	}
	if e.haveCaps {
		e.appendRpmlibRequires([]rpmlibPseudoDependency{fileCapsFeature})
	}

	addDotSlash := !opts.IsSource && !opts.NoPayloadPrefix
	e.appendRpmlibRequires(alwaysNeededFeatures)
	if addDotSlash {
		e.appendRpmlibRequires([]rpmlibPseudoDependency{payloadFilesHavePrefixFeature})
	}

	if opts.SourceRPM != "" {
		hdr.AddStringValue(tagSourceRPM, opts.SourceRPM, false)
	}

	hdr.AddStringArrayValue(tagRequireName, e.requireNames)
	hdr.AddInt32Value(tagRequireFlags, e.requireFlags)
	hdr.AddStringArrayValue(tagRequireVersion, e.requireVersions)

	if !opts.NoDirTokens {
		compressFileList(hdr, e.archivePaths)
	} else {
		hdr.AddStringArrayValue(tagOldFileNames, e.archivePaths)
	}

	return e.warnings, nil
}

func (e *emitter) emitFile(store *record.Store, index int, f *record.File) error {
	archivePath := f.ArchivePath
	if !e.opts.IsSource && !e.opts.NoPayloadPrefix {
		archivePath = "./" + strings.TrimPrefix(archivePath, "/")
	}
	e.archivePaths = append(e.archivePaths, archivePath)

	e.userNames = append(e.userNames, f.Owner)
	e.groupNames = append(e.groupNames, f.Group)

	if e.opts.LargeFiles {
		e.fileSizes64 = append(e.fileSizes64, f.Size)
	} else {
		e.fileSizes32 = append(e.fileSizes32, int32(f.Size))
	}

	if f.IsRegular() {
		if f.Nlink <= 1 || store.SeenHardLink(index) < 0 {
			e.totalFileSize += f.Size
		}
	}

	e.mtimes = append(e.mtimes, int32(f.Mtime.Unix()))
	e.modes = append(e.modes, int16(uint16(f.Mode.Perm())|modeTypeBits(f.Mode)))
	e.rdevs = append(e.rdevs, int16(f.RDev))

	e.emittedCount++
	e.inodes = append(e.inodes, e.emittedCount)
	if f.Dev != 0 {
		e.devices = append(e.devices, 1)
	} else {
		e.devices = append(e.devices, 0)
	}

	e.langs = append(e.langs, strings.Join(f.Langs, "|"))

	if e.haveCaps {
		e.caps = append(e.caps, f.Caps)
	}

	digest := ""
	if f.IsRegular() {
		d, err := digestFile(f.DiskPath, e.opts.DigestAlgorithm)
		switch {
		case err == nil:
			digest = d
		case f.Flags.Has(attr.Ghost):
			e.warnings = append(e.warnings, fmt.Sprintf("no digest for ghost file %s: %s", f.ArchivePath, err))
		default:
			return err
		}
	}
	e.digests = append(e.digests, digest)

	linkto := ""
	if f.IsSymlink {
		linkto = f.LinkTo
	}
	e.linktos = append(e.linktos, linkto)

	verify := f.Verify
	if f.Flags.Has(attr.Ghost) {
		verify &^= attr.VerifyDigest | attr.VerifySize | attr.VerifyLinkto | attr.VerifyMtime
	}
	e.verifyFlags = append(e.verifyFlags, int32(verify))

	flags := f.Flags
	if !e.opts.IsSource && isDocDir(f.ArchivePath, e.opts.DocDirs) {
		flags |= attr.Doc
	}
	if f.Mode.IsDir() {
		flags &^= attr.Config | attr.Doc
	}
	flags &= attr.ExportMask
	e.flags = append(e.flags, int32(flagsToHeaderBits(flags)))

	return nil
}

// modeTypeBits extracts the S_IFMT-equivalent bits that rpm's FILEMODES
// column needs, translating Go's os.FileMode bit layout to the POSIX one.
func modeTypeBits(m os.FileMode) uint16 {
	switch {
	case m.IsDir():
		return 0040000
	case m&os.ModeSymlink != 0:
		return 0120000
	case m&os.ModeCharDevice != 0:
		return 0020000
	case m&os.ModeDevice != 0:
		return 0060000
	default:
		return 0100000
	}
}

// flagsToHeaderBits maps our attr.Flags bitset onto rpm's historical
// FILEFLAGS bit numbering.
func flagsToHeaderBits(f attr.Flags) int32 {
	var out int32
	if f.Has(attr.Config) {
		out |= fileConfig
	}
	if f.Has(attr.Doc) {
		out |= fileDoc
	}
	if f.Has(attr.MissingOK) {
		out |= fileMissingOK
	}
	if f.Has(attr.NoReplace) {
		out |= fileNoReplace
	}
	if f.Has(attr.Ghost) {
		out |= fileGhost
	}
	if f.Has(attr.License) {
		out |= fileLicense
	}
	if f.Has(attr.Readme) {
		out |= fileReadme
	}
	if f.Has(attr.Pubkey) {
		out |= filePubkey
	}
	if f.Has(attr.SpecFile) {
		out |= fileSpecFile
	}
	return out
}

// isDocDir reports whether archivePath falls under one of the configured
// documentation directories.
func isDocDir(archivePath string, docDirs []string) bool {
	for _, dir := range docDirs {
		if strings.HasPrefix(archivePath, dir+"/") {
			return true
		}
	}
	return false
}

// compressFileList splits archivePaths into DIRNAMES/BASENAMES/DIRINDEXES,
// the representation rpm actually stores on disk, deduplicating directory
// names via findOrAppend.
func compressFileList(hdr *Header, archivePaths []string) {
	var dirNames []string
	dirIndexes := make([]int32, len(archivePaths))
	baseNames := make([]string, len(archivePaths))

	for i, p := range archivePaths {
		dir, base := splitArchivePath(p)
		idx := findOrAppend(&dirNames, dir)
		dirIndexes[i] = int32(idx)
		baseNames[i] = base
	}

	hdr.AddStringArrayValue(tagDirNames, dirNames)
	hdr.AddStringArrayValue(tagBasenames, baseNames)
	hdr.AddInt32Value(tagDirIndexes, dirIndexes)
}

// splitArchivePath splits p (which may carry a "./" prefix) into a
// directory component retaining its trailing slash, and a base name,
// matching rpm's BASENAMES/DIRNAMES convention.
func splitArchivePath(p string) (dir, base string) {
	trimmed := strings.TrimPrefix(p, "./")
	dir, base = path.Split(trimmed)
	if strings.HasPrefix(p, "./") {
		dir = "./" + strings.TrimPrefix(dir, "/")
	}
	return dir, base
}

// findOrAppend returns the index of value within *list, appending it if
// it's not already present.
func findOrAppend(list *[]string, value string) int {
	for i, v := range *list {
		if v == value {
			return i
		}
	}
	*list = append(*list, value)
	return len(*list) - 1
}
