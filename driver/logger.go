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
	"fmt"
	"io"
)

// Logger renders Diagnostics to an output stream, colorized the way the
// teacher's showError colorizes build errors.
type Logger struct {
	Out io.Writer
}

// NewLogger returns a Logger writing to out.
func NewLogger(out io.Writer) *Logger {
	return &Logger{Out: out}
}

// Log renders one diagnostic.
func (l *Logger) Log(d Diagnostic) {
	switch d.Severity {
	case Error:
		fmt.Fprintf(l.Out, "\x1b[31m\x1b[1m!!\x1b[0m %s\n", d.Error())
	case Warning:
		fmt.Fprintf(l.Out, "\x1b[33m\x1b[1m!!\x1b[0m %s\n", d.Error())
	default:
		fmt.Fprintf(l.Out, ">> %s\n", d.Error())
	}
}

// LogAll renders every diagnostic in ds, in order.
func (l *Logger) LogAll(ds []Diagnostic) {
	for _, d := range ds {
		l.Log(d)
	}
}
