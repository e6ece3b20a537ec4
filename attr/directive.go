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

package attr

import (
	"fmt"
	"strings"
)

// directiveMatch describes one occurrence of a directive keyword found in a
// manifest line, together with the byte range it (and its argument list, if
// any) occupies. Unlike the original C parser, which erases the matched span
// in place so later scans see blanks, every parser here works from the same
// immutable line and returns a residue string explicitly; nothing aliases a
// shared buffer.
type directiveMatch struct {
	Args    string // text between the parentheses, or "" if none
	HasArgs bool
	residue string
}

// findDirective locates the first occurrence of keyword (e.g. "%attr") in
// line, optionally followed by a parenthesized argument list. If the
// directive isn't present at all, found is false. If it's present but the
// parenthesized argument list is malformed, err is non-nil.
func findDirective(line, keyword string) (m directiveMatch, found bool, err error) {
	idx := strings.Index(line, keyword)
	if idx < 0 {
		return directiveMatch{}, false, nil
	}

	rest := line[idx+len(keyword):]
	trimmed := strings.TrimLeft(rest, " \t")
	consumedSpaces := len(rest) - len(trimmed)

	if !strings.HasPrefix(trimmed, "(") {
		// bare directive, no argument list
		residue := line[:idx] + strings.Repeat(" ", len(keyword)) + rest
		return directiveMatch{HasArgs: false, residue: residue}, true, nil
	}

	closeIdx := strings.IndexByte(trimmed, ')')
	if closeIdx < 0 {
		return directiveMatch{}, true, fmt.Errorf("missing ')' in %s(%s", keyword, trimmed[1:])
	}

	args := trimmed[1:closeIdx]
	blankLen := len(keyword) + consumedSpaces + closeIdx + 1
	residue := line[:idx] + strings.Repeat(" ", blankLen) + trimmed[closeIdx+1:]
	return directiveMatch{Args: args, HasArgs: true, residue: residue}, true, nil
}

// fields splits a parenthesized argument list on whitespace and commas, the
// way the original splits %attr/%verify/%config/%dev argument lists.
func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}
