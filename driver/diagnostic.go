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

// Package driver ties the attr/manifest/walk/record/header/source/unpackaged
// packages together into one per-package pipeline, collecting diagnostics
// and running the cross-package consistency checks that only make sense
// once every package in a build has been assembled.
package driver

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic for the Logger and for the caller
// deciding whether a build as a whole failed.
type Severity int

const (
	Notice Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "notice"
	}
}

// Diagnostic is one collected message, carrying enough context to trace it
// back to the package that produced it.
type Diagnostic struct {
	Severity Severity
	Package  string
	Message  string
}

func (d Diagnostic) Error() string {
	if d.Package == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Package, d.Message)
}

// ErrorCollector is a wrapper around []Diagnostic that simplifies code where
// multiple diagnostics can happen and need to be aggregated for collective
// display. Adapted from the plain []error version: every diagnostic here
// carries a severity, since a failed line shouldn't stop the rest of a
// package's manifest from being checked.
type ErrorCollector struct {
	Diagnostics []Diagnostic
	pkg         string
}

// NewErrorCollector returns a collector that stamps every diagnostic it
// receives with pkg (the package name being processed, may be empty).
func NewErrorCollector(pkg string) *ErrorCollector {
	return &ErrorCollector{pkg: pkg}
}

// Add adds err to this collector at the given severity. If err is nil,
// nothing happens, so you can safely write
//
//	ec.Add(driver.Error, OperationThatMightFail())
//
// instead of
//
//	if err := OperationThatMightFail(); err != nil {
//	    ec.Add(driver.Error, err)
//	}
func (c *ErrorCollector) Add(sev Severity, err error) {
	if err != nil {
		c.Diagnostics = append(c.Diagnostics, Diagnostic{Severity: sev, Package: c.pkg, Message: err.Error()})
	}
}

// Addf adds a diagnostic to this collector by passing the arguments into
// fmt.Sprintf. If only one argument is given, it is used as the message
// verbatim.
func (c *ErrorCollector) Addf(sev Severity, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Severity: sev, Package: c.pkg, Message: msg})
}

// HasErrors reports whether any collected diagnostic is at Error severity.
func (c *ErrorCollector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Err collapses every Error-severity diagnostic into one combined error, or
// nil if there are none.
func (c *ErrorCollector) Err() error {
	var msgs []string
	for _, d := range c.Diagnostics {
		if d.Severity == Error {
			msgs = append(msgs, d.Error())
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}
