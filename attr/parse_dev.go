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
	"strconv"
)

const devKeyword = "%dev"
const devRange = 256

// ParseDev consumes a %dev(type major minor) directive from line, applying
// it to cur. type must be "b" or "c"; major and minor must each fall in
// [0,256).
func ParseDev(line string, cur *Set) (residue string, err error) {
	m, found, err := findDirective(line, devKeyword)
	if !found {
		return line, nil
	}
	if err != nil {
		return line, fmt.Errorf("%s: %s", devKeyword, err)
	}
	if !m.HasArgs {
		return line, fmt.Errorf("missing '(' in %s", devKeyword)
	}

	toks := fields(m.Args)
	if len(toks) != 3 {
		return line, fmt.Errorf("%s(%s): expected type, major, minor", devKeyword, m.Args)
	}

	typ := toks[0]
	if typ != "b" && typ != "c" {
		return line, fmt.Errorf("%s: device type must be 'b' or 'c', got %q", devKeyword, typ)
	}

	major, err := parseDevNum(toks[1])
	if err != nil {
		return line, fmt.Errorf("%s: bad major number: %s", devKeyword, err)
	}
	minor, err := parseDevNum(toks[2])
	if err != nil {
		return line, fmt.Errorf("%s: bad minor number: %s", devKeyword, err)
	}

	cur.Dev = &DevSpec{Type: typ[0], Major: major, Minor: minor}

	return m.residue, nil
}

func parseDevNum(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= devRange {
		return 0, fmt.Errorf("%d out of range [0,%d)", v, devRange)
	}
	return v, nil
}
