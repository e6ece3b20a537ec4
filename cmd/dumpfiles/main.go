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

// Command dumpfiles is a debug/inspection tool: it assembles a manifest the
// same way rpmfiles does, then round-trips the result through a CPIO
// archive (write, then read back) and prints what came out, so the
// operator can see exactly what the payload writer downstream of this
// library would receive. With --ar, it instead unwraps an ar container
// (e.g. a .deb's outer archive) and lists its members, the same trick
// dump-package used for inspecting Debian packages.
package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/blakesmith/ar"
	cpio "github.com/surma/gocpio"

	"github.com/holocm/rpmfiles/attr"
	"github.com/holocm/rpmfiles/driver"
	"github.com/holocm/rpmfiles/manifest"
	"github.com/holocm/rpmfiles/record"
)

func main() {
	var (
		buildRoot    string
		manifestPath string
		arPath       string
	)
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch arg {
		case "--build-root":
			i++
			buildRoot = os.Args[i]
		case "--manifest":
			i++
			manifestPath = os.Args[i]
		case "--ar":
			i++
			arPath = os.Args[i]
		default:
			fmt.Fprintf(os.Stderr, "unrecognized argument: %s\n", arg)
			os.Exit(1)
		}
	}

	if arPath != "" {
		if err := dumpAr(arPath); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	if buildRoot == "" || manifestPath == "" {
		fmt.Fprintln(os.Stderr, "usage: dumpfiles --build-root DIR --manifest FILE")
		fmt.Fprintln(os.Stderr, "   or: dumpfiles --ar FILE")
		os.Exit(1)
	}

	if err := dumpManifest(buildRoot, manifestPath); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func dumpManifest(buildRoot, manifestPath string) error {
	raw, err := ioutil.ReadFile(manifestPath)
	if err != nil {
		return err
	}

	var lines []string
	for _, line := range bytes.Split(raw, []byte{'\n'}) {
		lines = append(lines, string(line))
	}

	pkg := &manifest.Package{BuildRoot: buildRoot, Lines: lines}
	d := driver.NewDriver(driver.Config{})
	ec := d.AssemblePackage(pkg)
	for _, diag := range ec.Diagnostics {
		fmt.Fprintln(os.Stderr, diag.Error())
	}
	if ec.HasErrors() {
		return fmt.Errorf("assembly failed, see diagnostics above")
	}

	payload, err := writeCpio(pkg.Store)
	if err != nil {
		return fmt.Errorf("cpio round-trip failed: %s", err)
	}

	return readCpio(payload)
}

// writeCpio materializes store's files as a CPIO stream, the same archive
// format rpm's own payload writer would produce downstream.
func writeCpio(store *record.Store) ([]byte, error) {
	var buf bytes.Buffer
	w := cpio.NewWriter(&buf)

	for _, f := range store.Files {
		if f.Flags.Has(attr.Exclude) {
			continue
		}
		var content []byte
		if f.IsRegular() {
			data, err := ioutil.ReadFile(f.DiskPath)
			if err != nil {
				if !f.Flags.Has(attr.Ghost) {
					return nil, err
				}
			} else {
				content = data
			}
		}
		if f.IsSymlink {
			content = []byte(f.LinkTo)
		}

		hdr := &cpio.Header{
			Name: f.ArchivePath,
			Mode: int64(f.Mode.Perm()) | cpioTypeBits(f),
			Uid:  0,
			Gid:  0,
			Size: int64(len(content)),
		}
		if err := w.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if len(content) > 0 {
			if _, err := w.Write(content); err != nil {
				return nil, err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cpioTypeBits maps a record.File's kind onto the S_IFMT bits cpio headers
// carry in their Mode field.
func cpioTypeBits(f record.File) int64 {
	switch {
	case f.Mode.IsDir():
		return 0040000
	case f.IsSymlink:
		return 0120000
	default:
		return 0100000
	}
}

func readCpio(payload []byte) error {
	r := cpio.NewReader(bytes.NewReader(payload))
	for {
		hdr, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if hdr.IsTrailer() {
			return nil
		}
		fmt.Printf(">> %s (mode: %o, size: %d)\n", hdr.Name, hdr.Mode, hdr.Size)
	}
}

func dumpAr(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	r := ar.NewReader(bytes.NewReader(data))
	idx := -1
	for {
		idx++
		hdr, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf(">> [%d] %s (mode: %o, owner: %d, group: %d, size: %d)\n",
			idx, hdr.Name, hdr.Mode, hdr.Uid, hdr.Gid, hdr.Size)
	}
}
