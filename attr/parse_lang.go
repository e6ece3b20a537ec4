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
	"sort"
)

const langKeyword = "%lang"

// ParseLang consumes a %lang(locale[,locale...]) directive from line and
// merges its locales into cur.Langs. %lang may appear more than once on a
// single line; all tokens seen across every occurrence are collected, then
// sorted and deduplicated once the whole line has been scanned (see
// ResolveLangs). This differs from the original parser, which rewrote the
// locale list in place on every occurrence; here we only accumulate.
func ParseLang(line string, cur *Set) (residue string, err error) {
	m, found, err := findDirective(line, langKeyword)
	if !found {
		return line, nil
	}
	if err != nil {
		return line, fmt.Errorf("%s: %s", langKeyword, err)
	}
	if !m.HasArgs {
		return line, fmt.Errorf("missing '(' in %s", langKeyword)
	}

	for _, tok := range fields(m.Args) {
		if len(tok) == 0 || len(tok) > 31 {
			return line, fmt.Errorf("%s: locale %q has invalid length", langKeyword, tok)
		}
		if tok == "C" || len(tok) == 1 {
			if tok != "C" {
				return line, fmt.Errorf("%s: single-character locale must be \"C\"", langKeyword)
			}
		}
		cur.Langs = append(cur.Langs, tok)
	}

	return m.residue, nil
}

// ResolveLangs sorts and deduplicates the locale list accumulated on a Set
// by repeated ParseLang calls, once the full line has been scanned.
func ResolveLangs(s *Set) {
	if len(s.Langs) == 0 {
		return
	}
	sort.Strings(s.Langs)
	out := s.Langs[:1]
	for _, l := range s.Langs[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	s.Langs = out
}
