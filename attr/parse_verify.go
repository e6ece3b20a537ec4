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

import "fmt"

var verifyAttrs = map[string]VerifyMask{
	"md5":        VerifyDigest,
	"filedigest": VerifyDigest,
	"size":       VerifySize,
	"link":       VerifyLinkto,
	"user":       VerifyUser,
	"group":      VerifyGroup,
	"mtime":      VerifyMtime,
	"mode":       VerifyMode,
	"rdev":       VerifyRdev,
	"caps":       VerifyCaps,
}

// ParseVerify consumes a %verify(attrs...) directive, applying it to cur.
func ParseVerify(line string, cur *Set) (residue string, err error) {
	return parseVerifyLike(line, "%verify", cur, false)
}

// ParseDefVerify consumes a %defverify(attrs...) directive, applying it to def.
func ParseDefVerify(line string, def *Set) (residue string, err error) {
	return parseVerifyLike(line, "%defverify", def, true)
}

func parseVerifyLike(line, keyword string, target *Set, isDefault bool) (string, error) {
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

	toks := fields(m.Args)
	if len(toks) == 0 {
		return line, fmt.Errorf("%s(): no attrs given", keyword)
	}

	negate := false
	mask := VerifyMask(0)
	for i, tok := range toks {
		if tok == "not" {
			if i != 0 {
				return line, fmt.Errorf("%s: 'not' must be the first token", keyword)
			}
			negate = true
			continue
		}
		bit, ok := verifyAttrs[tok]
		if !ok {
			return line, fmt.Errorf("%s: unknown verify attribute %q", keyword, tok)
		}
		mask |= bit
	}

	if negate {
		target.Verify = VerifyAll &^ mask
	} else {
		target.Verify = mask
	}
	target.VerifyExplicit = true
	target.Specd.Verify = specdLevel(isDefault)

	return m.residue, nil
}
