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

// Package walk expands manifest file-name tokens into disk paths (globbing,
// directory recursion) and turns each kept path into a record.File, carrying
// stat data and resolving the effective owner/group names.
package walk

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/holocm/rpmfiles/attr"
	"github.com/holocm/rpmfiles/record"
)

// CpioFilesizeMax is the 32-bit archive size limit; files at or above it
// flip on large-file header emission (64-bit size tags).
const CpioFilesizeMax = 1 << 32

// Walker expands manifest tokens against a build root directory.
type Walker struct {
	BuildRoot string

	// LargeFiles is set once any kept regular file's size reaches
	// CpioFilesizeMax.
	LargeFiles bool

	uidNames map[uint32]string
	gidNames map[uint32]string
}

// NewWalker returns a Walker rooted at buildRoot.
func NewWalker(buildRoot string) *Walker {
	return &Walker{
		BuildRoot: buildRoot,
		uidNames:  make(map[uint32]string),
		gidNames:  make(map[uint32]string),
	}
}

// Expand resolves one manifest file-name token (absolute, build-root
// relative) against attrs, appending every kept record.File to out. warn is
// called for non-fatal diagnostics (e.g. glob-not-found under %exclude).
func (w *Walker) Expand(token string, attrs attr.Set, out *[]record.File, warn func(string)) error {
	trailingSlash := strings.HasSuffix(token, "/")
	isExplicitDir := attrs.Flags.Has(attr.Dir)

	if !strings.HasPrefix(token, "/") {
		return fmt.Errorf("file name needs leading \"/\": %s", token)
	}

	diskPath := filepath.Join(w.BuildRoot, filepath.Clean(token))
	if trailingSlash || isExplicitDir {
		diskPath += "/"
	}

	if hasGlobMeta(token) {
		if attrs.Dev != nil {
			return fmt.Errorf("%%dev glob not permitted: %s", diskPath)
		}
		matches, err := filepath.Glob(strings.TrimSuffix(diskPath, "/"))
		if err != nil {
			return fmt.Errorf("bad glob pattern %s: %s", diskPath, err)
		}
		if len(matches) == 0 {
			msg := fmt.Sprintf("file not found by glob: %s", diskPath)
			if attrs.Flags.Has(attr.Exclude) {
				if warn != nil {
					warn(msg)
				}
				return nil
			}
			return fmt.Errorf("%s", msg)
		}
		for _, m := range matches {
			if err := w.addPath(m, attrs, isExplicitDir, out, warn); err != nil {
				return err
			}
		}
		return nil
	}

	return w.addPath(diskPath, attrs, isExplicitDir, out, warn)
}

// addPath adds one disk path to out, synthesizing a stat when the entry is
// %ghost or %dev, recursing into real directories that weren't declared
// %dir, and resolving owner/group names.
func (w *Walker) addPath(diskPath string, attrs attr.Set, isExplicitDir bool, out *[]record.File, warn func(string)) error {
	diskPath = strings.TrimSuffix(diskPath, "/")
	if diskPath == "" {
		diskPath = "/"
	}

	var (
		info os.FileInfo
		err  error
	)
	switch {
	case attrs.Dev != nil:
		info = syntheticDevInfo(diskPath, attrs)
	default:
		info, err = os.Lstat(diskPath)
		if err != nil {
			if attrs.Flags.Has(attr.Ghost) {
				if attrs.FileMode == nil {
					return fmt.Errorf("explicit file attributes required in spec for: %s", diskPath)
				}
				info = syntheticGhostInfo(diskPath, attrs)
			} else {
				msg := fmt.Sprintf("file not found: %s", diskPath)
				if attrs.Flags.Has(attr.Exclude) {
					if warn != nil {
						warn(msg)
					}
					return nil
				}
				return fmt.Errorf("%s", msg)
			}
		}
	}

	if !isExplicitDir && attrs.Dev == nil && info.IsDir() {
		return w.recurseDir(diskPath, attrs, out, warn)
	}

	rec, err := w.buildRecord(diskPath, info, attrs)
	if err != nil {
		return err
	}
	*out = append(*out, rec)
	return nil
}

// recurseDir walks a real directory tree preorder, adding regular files,
// symlinks, and directories (skipping "." and ".."); stat failures or
// unreadable directories are fatal, matching the original fts-based walk.
func (w *Walker) recurseDir(dir string, attrs attr.Set, out *[]record.File, warn func(string)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("unreadable directory: %s: %s", dir, err)
	}

	rec, err := w.buildRecord(dir, direntInfo(dir), attrs)
	if err != nil {
		return err
	}
	*out = append(*out, rec)

	for _, e := range entries {
		if e.Name() == "." || e.Name() == ".." {
			continue
		}
		childPath := filepath.Join(dir, e.Name())
		info, err := os.Lstat(childPath)
		if err != nil {
			return fmt.Errorf("stat failed: %s: %s", childPath, err)
		}
		if info.IsDir() {
			if err := w.recurseDir(childPath, attrs, out, warn); err != nil {
				return err
			}
			continue
		}
		childRec, err := w.buildRecord(childPath, info, attrs)
		if err != nil {
			return err
		}
		*out = append(*out, childRec)
	}
	return nil
}

func direntInfo(path string) os.FileInfo {
	info, err := os.Lstat(path)
	if err != nil {
		return nil
	}
	return info
}

// buildRecord turns a disk path plus stat info into a record.File, applying
// %attr precedence, ghost verify-flag scrubbing, symlink target resolution
// and escape checking, and large-file detection.
func (w *Walker) buildRecord(diskPath string, info os.FileInfo, attrs attr.Set) (record.File, error) {
	if info == nil {
		return record.File{}, fmt.Errorf("could not stat: %s", diskPath)
	}

	archivePath := strings.TrimPrefix(diskPath, w.BuildRoot)
	if archivePath == "" {
		archivePath = "/"
	}
	if !strings.HasPrefix(archivePath, "/") {
		archivePath = "/" + archivePath
	}

	mode := info.Mode()
	var dev, rdev, ino uint64
	var nlink uint32
	uid, gid := uint32(os.Getuid()), uint32(os.Getgid())
	if sys, ok := info.Sys().(*syscall.Stat_t); ok {
		dev = uint64(sys.Dev)
		rdev = uint64(sys.Rdev)
		ino = uint64(sys.Ino)
		nlink = uint32(sys.Nlink)
		uid = sys.Uid
		gid = sys.Gid
	}
	if attrs.Dev != nil {
		rdev = uint64((attrs.Dev.Major&0xff)<<8 | (attrs.Dev.Minor & 0xff))
		dev = rdev
		nlink = 1
	}

	fileMode := mode
	if attrs.FileMode != nil {
		fileMode = (mode &^ os.ModePerm) | os.FileMode(*attrs.FileMode)
	} else if mode.IsDir() && attrs.DirMode != nil {
		fileMode = (mode &^ os.ModePerm) | os.FileMode(*attrs.DirMode)
	}

	owner := attrs.Owner
	if owner == "" {
		owner = w.lookupUserName(uid)
	}
	group := attrs.Group
	if group == "" {
		group = w.lookupGroupName(gid)
	}

	verify := attrs.Verify
	if !attrs.VerifyExplicit {
		verify = attr.VerifyAll
	}

	rec := record.File{
		DiskPath:    diskPath,
		ArchivePath: archivePath,
		Mode:        fileMode,
		Dev:         dev,
		RDev:        rdev,
		Ino:         ino,
		Nlink:       nlink,
		Size:        info.Size(),
		Mtime:       info.ModTime(),
		Owner:       owner,
		Group:       group,
		Flags:       attrs.Flags,
		Verify:      verify,
		Specd:       attrs.Specd,
		Langs:       attrs.Langs,
		Caps:        attrs.Caps,
	}

	if attrs.Flags.Has(attr.Ghost) {
		rec.Verify = 0
	}

	if mode&os.ModeSymlink != 0 {
		rec.IsSymlink = true
		target, err := os.Readlink(diskPath)
		if err != nil {
			return record.File{}, fmt.Errorf("readlink failed: %s: %s", diskPath, err)
		}
		if w.BuildRoot != "" && w.BuildRoot != "/" && strings.HasPrefix(target, w.BuildRoot) {
			return record.File{}, fmt.Errorf("symlink %s escapes build root: %s", diskPath, target)
		}
		rec.LinkTo = target
	}

	if rec.IsRegular() && !rec.Flags.Has(attr.Exclude) {
		if rec.Size >= CpioFilesizeMax {
			w.LargeFiles = true
		}
	}

	return rec, nil
}

func syntheticGhostInfo(diskPath string, attrs attr.Set) os.FileInfo {
	return syntheticFileInfo{
		name:    filepath.Base(diskPath),
		mode:    os.FileMode(*attrs.FileMode),
		modTime: time.Now(),
	}
}

func syntheticDevInfo(diskPath string, attrs attr.Set) os.FileInfo {
	mode := os.FileMode(0)
	if attrs.FileMode != nil {
		mode = os.FileMode(*attrs.FileMode)
	}
	if attrs.Dev.Type == 'b' {
		mode |= os.ModeDevice
	} else {
		mode |= os.ModeDevice | os.ModeCharDevice
	}
	return syntheticFileInfo{
		name:    filepath.Base(diskPath),
		mode:    mode,
		modTime: time.Now(),
	}
}

// syntheticFileInfo implements os.FileInfo for %ghost/%dev entries that
// have no corresponding disk file to stat.
type syntheticFileInfo struct {
	name    string
	mode    os.FileMode
	modTime time.Time
}

func (s syntheticFileInfo) Name() string       { return s.name }
func (s syntheticFileInfo) Size() int64        { return 0 }
func (s syntheticFileInfo) Mode() os.FileMode  { return s.mode }
func (s syntheticFileInfo) ModTime() time.Time { return s.modTime }
func (s syntheticFileInfo) IsDir() bool        { return s.mode.IsDir() }
func (s syntheticFileInfo) Sys() interface{}   { return nil }

func (w *Walker) lookupUserName(uid uint32) string {
	return w.LookupUserName(uid)
}

func (w *Walker) lookupGroupName(gid uint32) string {
	return w.LookupGroupName(gid)
}

// LookupUserName resolves uid to a login name via os/user, caching results
// per Walker. Falls back to the decimal uid when the lookup fails.
func (w *Walker) LookupUserName(uid uint32) string {
	if name, ok := w.uidNames[uid]; ok {
		return name
	}
	name := strconv.Itoa(int(uid))
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}
	w.uidNames[uid] = name
	return name
}

// LookupGroupName resolves gid to a group name via os/user, caching results
// per Walker. Falls back to the decimal gid when the lookup fails.
func (w *Walker) LookupGroupName(gid uint32) string {
	if name, ok := w.gidNames[gid]; ok {
		return name
	}
	name := strconv.Itoa(int(gid))
	if g, err := user.LookupGroupId(name); err == nil {
		name = g.Name
	}
	w.gidNames[gid] = name
	return name
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
