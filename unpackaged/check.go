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

// Package unpackaged runs the external "check unpackaged files" script
// (the build-root scan left out of the manifest) and classifies its
// findings, the Go analog of checkFiles/processBinaryFiles's tail.
package unpackaged

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Options configures one Check run.
type Options struct {
	// Script is the checker command to run, e.g. the expansion of
	// %{?__check_files}. An empty Script means the check is skipped.
	Script string

	// BuildRoot is used as the script's working directory; it is not
	// passed as an argument (the arguments come from Script alone).
	BuildRoot string

	// PackagedFiles lists every disk path already claimed by some
	// package's manifest; fed to the script on stdin, one per line, the
	// Go analog of the check_fileList StringBuf.
	PackagedFiles []string

	// TerminateBuild decides whether a nonempty result is a hard failure
	// (the "_unpackaged_files_terminate_build" macro) or merely a warning.
	TerminateBuild bool
}

// Result reports what the checker script found.
type Result struct {
	// Skipped is true when Options.Script was empty; no script ran.
	Skipped bool

	// Output is the checker's stdout, trimmed of a single trailing
	// newline. Empty means no unpackaged files were found.
	Output string

	// Fatal is true when Output is nonempty and TerminateBuild was set.
	Fatal bool
}

// Check runs the configured checker script, if any, and classifies its
// output. A nonzero exit status or a script that cannot be started is
// always a fatal error, independent of TerminateBuild.
func Check(opts Options) (Result, error) {
	if strings.TrimSpace(opts.Script) == "" {
		return Result{Skipped: true}, nil
	}

	fields, err := splitCommand(opts.Script)
	if err != nil {
		return Result{}, fmt.Errorf("bad check-unpackaged command: %s", err)
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Dir = opts.BuildRoot
	cmd.Stdin = strings.NewReader(strings.Join(opts.PackagedFiles, "\n") + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Result{}, fmt.Errorf("check-unpackaged script failed: %s: %s", err, stderr.String())
	}

	output := strings.TrimSuffix(stdout.String(), "\n")
	result := Result{Output: output}
	if output != "" {
		result.Fatal = opts.TerminateBuild
	}
	return result, nil
}

// splitCommand splits a checker command string into its executable and
// arguments using shell-like whitespace rules (no quoting support; the
// configured script is a single trusted command, not arbitrary shell).
func splitCommand(s string) ([]string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return fields, nil
}
