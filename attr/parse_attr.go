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
	"strings"
)

const maxMode = 07777

// ParseAttr consumes a %attr(mode, user, group) directive from line, if
// present, and applies it to cur. Returns the residual line with the
// directive erased.
func ParseAttr(line string, cur *Set) (residue string, err error) {
	return parseAttrLike(line, "%attr", cur, false)
}

// ParseDefAttr consumes a %defattr(mode, user, group, dirmode) directive
// from line, if present, and applies it to def.
func ParseDefAttr(line string, def *Set) (residue string, err error) {
	return parseAttrLike(line, "%defattr", def, true)
}

func parseAttrLike(line, keyword string, target *Set, isDefault bool) (string, error) {
	m, found, err := findDirective(line, keyword)
	if !found {
		return line, nil
	}
	if err != nil {
		return line, fmt.Errorf("%s: %s", keyword, err)
	}
	if !m.HasArgs {
		return line, fmt.Errorf("missing '(' in %s", keyword)
	}
	if isDefault {
		if trailing := strings.TrimSpace(afterDirective(line, keyword)); trailing != "" {
			return line, fmt.Errorf("non-white space follows %s(): %s", keyword, trailing)
		}
	}

	parts := strings.Split(m.Args, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	// pad with empty fields so indices below never go out of range
	for len(parts) < 4 {
		parts = append(parts, "")
	}

	fmodeStr, userStr, groupStr, dmodeStr := parts[0], parts[1], parts[2], parts[3]
	if !isDefault && len(strings.Split(m.Args, ",")) > 3 {
		return line, fmt.Errorf("bad syntax: %s(%s)", keyword, m.Args)
	}
	if fmodeStr == "" || userStr == "" || groupStr == "" {
		return line, fmt.Errorf("bad syntax: %s(%s)", keyword, m.Args)
	}

	if !isAttrDefault(fmodeStr) {
		mode, err := parseOctalMode(fmodeStr)
		if err != nil {
			return line, fmt.Errorf("bad mode spec: %s(%s): %s", keyword, m.Args, err)
		}
		target.FileMode = &mode
	}
	if isDefault {
		if !isAttrDefault(dmodeStr) && dmodeStr != "" {
			mode, err := parseOctalMode(dmodeStr)
			if err != nil {
				return line, fmt.Errorf("bad dirmode spec: %s(%s): %s", keyword, m.Args, err)
			}
			target.DirMode = &mode
		}
	}
	if !isAttrDefault(userStr) {
		target.Owner = userStr
	}
	if !isAttrDefault(groupStr) {
		target.Group = groupStr
	}

	target.Specd.Owner = specdLevel(isDefault)
	target.Specd.Group = specdLevel(isDefault)
	target.Specd.FileMode = specdLevel(isDefault)
	if isDefault {
		target.Specd.DirMode = FromDefault
	}

	return m.residue, nil
}

func specdLevel(isDefault bool) Specd {
	if isDefault {
		return FromDefault
	}
	return FromCurrent
}

func isAttrDefault(s string) bool {
	return s == "" || s == "-"
}

func parseOctalMode(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if v&^uint64(maxMode) != 0 {
		return 0, fmt.Errorf("mode %s out of range", s)
	}
	return uint32(v), nil
}

// afterDirective returns whatever follows the closing ')' of the named
// directive's argument list, used only to detect trailing garbage after
// %defattr(...).
func afterDirective(line, keyword string) string {
	m, found, err := findDirective(line, keyword)
	if !found || err != nil || !m.HasArgs {
		return ""
	}
	idx := strings.Index(line, keyword)
	rest := line[idx+len(keyword):]
	trimmed := strings.TrimLeft(rest, " \t")
	closeIdx := strings.IndexByte(trimmed, ')')
	if closeIdx < 0 {
		return ""
	}
	return trimmed[closeIdx+1:]
}
