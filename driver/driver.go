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

package driver

import (
	"os"

	"github.com/holocm/rpmfiles/header"
	"github.com/holocm/rpmfiles/manifest"
	"github.com/holocm/rpmfiles/record"
	"github.com/holocm/rpmfiles/source"
	"github.com/holocm/rpmfiles/unpackaged"
	"github.com/holocm/rpmfiles/walk"
)

// Config carries every knob the driver consults while running the
// pipeline across a build's packages. Filled in by the caller (cmd/rpmfiles
// copies these fields from the pkgconfig.Config that pkgconfig.Load
// returns); the driver doesn't know about TOML.
type Config struct {
	BinaryDigest    header.DigestAlgorithm
	SourceDigest    header.DigestAlgorithm
	DocDirs         []string
	NoPayloadPrefix bool
	NoDirTokens     bool

	// SourceRPMName is the recommended file name of the assembled source
	// package, propagated into every binary package's SOURCERPM tag, per
	// processBinaryFiles.
	SourceRPMName string

	CheckScript                            string
	UnpackagedFilesTerminateBuild          bool
	BinariesInNoarchPackagesTerminateBuild bool
}

// Driver iterates a build's packages, invokes the manifest -> walk ->
// record -> header pipeline on each, and runs the cross-package checks
// that only make sense once every package has been assembled.
type Driver struct {
	Config Config
}

// NewDriver returns a Driver configured by cfg.
func NewDriver(cfg Config) *Driver {
	return &Driver{Config: cfg}
}

// AssemblePackage resolves pkg's manifest lines against pkg.BuildRoot,
// walks every resulting token, sorts and merges the records, and emits
// pkg.Header. Diagnostics are returned via an ErrorCollector; pkg.Store and
// pkg.Header are only populated when no Error-severity diagnostic occurred.
func (d *Driver) AssemblePackage(pkg *manifest.Package) *ErrorCollector {
	ec := NewErrorCollector(pkg.Name)

	resolver := manifest.NewResolver()
	w := walk.NewWalker(pkg.BuildRoot)
	store := &record.Store{}

	for _, raw := range pkg.Lines {
		line, ok, err := resolver.ProcessLine(raw)
		if err != nil {
			ec.Add(Error, err)
			continue
		}
		if !ok {
			continue
		}
		for _, tok := range line.Tokens {
			err := w.Expand(tok, line.Attrs, &store.Files, func(msg string) {
				ec.Addf(Warning, "%s", msg)
			})
			if err != nil {
				ec.Add(Error, err)
			}
		}
	}

	store.Sort()
	store.CheckHardLinks()
	store.MergeDuplicates(func(msg string) { ec.Addf(Warning, "%s", msg) })

	if ec.HasErrors() {
		return ec
	}

	hdr := &header.Header{}
	opts := header.Options{
		IsSource:        pkg.IsSource,
		NoPayloadPrefix: d.Config.NoPayloadPrefix,
		NoDirTokens:     d.Config.NoDirTokens,
		DigestAlgorithm: d.Config.BinaryDigest,
		LargeFiles:      w.LargeFiles,
		SourceRPM:       d.Config.SourceRPMName,
		DocDirs:         d.Config.DocDirs,
	}
	warnings, err := header.Emit(hdr, store, opts)
	for _, msg := range warnings {
		ec.Addf(Warning, "%s", msg)
	}
	if err != nil {
		ec.Add(Error, err)
		return ec
	}

	pkg.Store = store
	pkg.Header = hdr
	return ec
}

// AssembleSource builds the source package's file list and header from in,
// storing the result on pkg (which should have pkg.IsSource set).
func (d *Driver) AssembleSource(pkg *manifest.Package, in source.Input) *ErrorCollector {
	ec := NewErrorCollector(pkg.Name)

	store, err := source.Assemble(in)
	if err != nil {
		ec.Add(Error, err)
		return ec
	}

	hdr := &header.Header{}
	opts := header.Options{
		IsSource:        true,
		DigestAlgorithm: d.Config.SourceDigest,
		DocDirs:         d.Config.DocDirs,
	}
	warnings, err := header.Emit(hdr, store, opts)
	for _, msg := range warnings {
		ec.Addf(Warning, "%s", msg)
	}
	if err != nil {
		ec.Add(Error, err)
		return ec
	}

	pkg.Store = store
	pkg.Header = hdr
	return ec
}

// CheckUnpackaged runs the configured external checker script across the
// union of every already-assembled package's claimed disk paths, per
// checkFiles/processBinaryFiles's tail.
func (d *Driver) CheckUnpackaged(buildRoot string, packages []*manifest.Package) *ErrorCollector {
	ec := NewErrorCollector("")
	if d.Config.CheckScript == "" {
		return ec
	}

	var claimed []string
	for _, pkg := range packages {
		if pkg.Store == nil {
			continue
		}
		for _, f := range pkg.Store.Files {
			claimed = append(claimed, f.DiskPath)
		}
	}

	result, err := unpackaged.Check(unpackaged.Options{
		Script:         d.Config.CheckScript,
		BuildRoot:      buildRoot,
		PackagedFiles:  claimed,
		TerminateBuild: d.Config.UnpackagedFilesTerminateBuild,
	})
	if err != nil {
		ec.Add(Error, err)
		return ec
	}
	if result.Output == "" {
		return ec
	}
	sev := Warning
	if result.Fatal {
		sev = Error
	}
	ec.Addf(sev, "unpackaged files found:\n%s", result.Output)
	return ec
}

// CheckArchColor runs the noarch/arch-colored-binaries consistency check
// across packages, per processBinaryFiles's tail: a package declared
// noarch that contains an ELF binary is a configurable-severity
// diagnostic.
func (d *Driver) CheckArchColor(packages []*manifest.Package) *ErrorCollector {
	ec := NewErrorCollector("")
	for _, pkg := range packages {
		if pkg.IsSource || !pkg.IsNoarch || pkg.Store == nil {
			continue
		}
		for _, f := range pkg.Store.Files {
			if !f.IsRegular() {
				continue
			}
			isELF, err := isELFBinary(f.DiskPath)
			if err != nil || !isELF {
				continue
			}
			sev := Warning
			if d.Config.BinariesInNoarchPackagesTerminateBuild {
				sev = Error
			}
			ec.Addf(sev, "arch-dependent binary %s in noarch package", f.ArchivePath)
		}
	}
	return ec
}

// isELFBinary reports whether path's first four bytes are the ELF magic
// number, the signal files.c's header-color logic keys off of.
func isELFBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var magic [4]byte
	n, err := f.Read(magic[:])
	if err != nil && n == 0 {
		return false, nil
	}
	return n == 4 && magic == [4]byte{0x7f, 'E', 'L', 'F'}, nil
}
