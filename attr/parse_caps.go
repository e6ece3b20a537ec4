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
	"strings"
)

const capsKeyword = "%caps"

// ParseCaps consumes a %caps(text) directive, canonicalizing the
// capability-clause text the way cap_from_text/cap_to_text round-trip it in
// the original: clauses are "name[,name...]=perms", perms drawn from "eip"
// in any combination, clauses are sorted by name for a stable textual form.
func ParseCaps(line string, cur *Set) (residue string, err error) {
	m, found, err := findDirective(line, capsKeyword)
	if !found {
		return line, nil
	}
	if err != nil {
		return line, fmt.Errorf("%s: %s", capsKeyword, err)
	}
	if !m.HasArgs {
		return line, fmt.Errorf("missing '(' in %s", capsKeyword)
	}

	canon, err := canonicalizeCaps(m.Args)
	if err != nil {
		return line, fmt.Errorf("%s: %s", capsKeyword, err)
	}
	cur.Caps = canon

	return m.residue, nil
}

func canonicalizeCaps(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "=" {
		return "", nil
	}

	clauses := strings.Split(text, " ")
	type clause struct {
		names []string
		perms string
	}
	var parsed []clause
	for _, c := range clauses {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		eq := strings.IndexByte(c, '=')
		if eq < 0 {
			return "", fmt.Errorf("bad capability clause %q", c)
		}
		names := strings.Split(c[:eq], ",")
		perms := c[eq+1:]
		for _, p := range perms {
			if p != 'e' && p != 'i' && p != 'p' {
				return "", fmt.Errorf("bad capability permission %q in %q", string(p), c)
			}
		}
		parsed = append(parsed, clause{names: names, perms: sortPerms(perms)})
	}
	if len(parsed) == 0 {
		return "", nil
	}

	sort.Slice(parsed, func(i, j int) bool {
		return strings.Join(parsed[i].names, ",") < strings.Join(parsed[j].names, ",")
	})

	var b strings.Builder
	for i, c := range parsed {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.Join(c.names, ","))
		b.WriteByte('=')
		b.WriteString(c.perms)
	}
	return b.String(), nil
}

func sortPerms(perms string) string {
	rank := map[byte]int{'e': 0, 'i': 1, 'p': 2}
	bs := []byte(perms)
	sort.Slice(bs, func(i, j int) bool { return rank[bs[i]] < rank[bs[j]] })
	return string(bs)
}
