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

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"

	"github.com/holocm/rpmfiles/driver"
	"github.com/holocm/rpmfiles/manifest"
	"github.com/holocm/rpmfiles/pkgconfig"
	"github.com/holocm/rpmfiles/source"
)

func main() {
	var (
		buildRoot    = pflag.String("build-root", "", "filesystem root that manifest entries resolve against")
		configPath   = pflag.String("config", "", "TOML configuration file (digest algorithms, doc dirs, terminate-build toggles)")
		manifestPath = pflag.String("manifest", "", "%files manifest file (read from stdin if omitted)")
		sourceSpec   = pflag.String("source", "", "spec file to assemble a source package header for")
		checkScript  = pflag.String("check-unpackaged", "", "external checker command; overrides the config file's payload.checkScript")
	)
	pflag.Parse()

	if *buildRoot == "" {
		showError(fmt.Errorf("missing required --build-root"))
		os.Exit(1)
	}

	cfg := pkgconfig.Config{}
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			showError(err)
			os.Exit(1)
		}
		cfg, err = pkgconfig.Load(f)
		f.Close()
		if err != nil {
			showError(err)
			os.Exit(1)
		}
	}
	if *checkScript != "" {
		cfg.CheckScript = *checkScript
	}

	dcfg := driver.Config{
		BinaryDigest:                           cfg.BinaryDigest,
		SourceDigest:                           cfg.SourceDigest,
		DocDirs:                                cfg.DocDirs,
		NoPayloadPrefix:                        cfg.NoPayloadPrefix,
		NoDirTokens:                            cfg.NoDirTokens,
		CheckScript:                            cfg.CheckScript,
		UnpackagedFilesTerminateBuild:          cfg.UnpackagedFilesTerminateBuild,
		BinariesInNoarchPackagesTerminateBuild: cfg.BinariesInNoarchPackagesTerminateBuild,
	}
	d := driver.NewDriver(dcfg)
	logger := driver.NewLogger(os.Stderr)

	lines, err := readLines(*manifestPath)
	if err != nil {
		showError(err)
		os.Exit(1)
	}

	pkg := &manifest.Package{
		Name:      filepath.Base(*buildRoot),
		BuildRoot: *buildRoot,
		Lines:     lines,
	}

	var packages []*manifest.Package
	failed := false

	ec := d.AssemblePackage(pkg)
	logger.LogAll(ec.Diagnostics)
	if ec.HasErrors() {
		failed = true
	} else {
		packages = append(packages, pkg)
	}

	if *sourceSpec != "" {
		srcPkg := &manifest.Package{Name: pkg.Name + " (source)", IsSource: true}
		srcEc := d.AssembleSource(srcPkg, source.Input{
			SpecFile: *sourceSpec,
			DefAttr:  cfg.SourceDefAttr,
		})
		logger.LogAll(srcEc.Diagnostics)
		if srcEc.HasErrors() {
			failed = true
		} else {
			packages = append(packages, srcPkg)
		}
	}

	if cfg.CheckScript != "" {
		checkEc := d.CheckUnpackaged(*buildRoot, packages)
		logger.LogAll(checkEc.Diagnostics)
		if checkEc.HasErrors() {
			failed = true
		}
	}

	colorEc := d.CheckArchColor(packages)
	logger.LogAll(colorEc.Diagnostics)
	if colorEc.HasErrors() {
		failed = true
	}

	if failed {
		os.Exit(1)
	}
}

// readLines reads manifest lines from path, or from stdin when path is
// empty, one directive per line.
func readLines(path string) ([]string, error) {
	var f *os.File
	if path == "" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func showError(err error) {
	fmt.Fprintf(os.Stderr, "\x1b[31m\x1b[1m!!\x1b[0m %s\n", err.Error())
}
