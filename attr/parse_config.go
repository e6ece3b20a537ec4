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

const configKeyword = "%config"

// ParseConfig consumes a %config or %config(missingok|noreplace) directive
// from line and applies it to cur.
func ParseConfig(line string, cur *Set) (residue string, err error) {
	m, found, err := findDirective(line, configKeyword)
	if !found {
		return line, nil
	}
	if err != nil {
		return line, fmt.Errorf("%s: %s", configKeyword, err)
	}

	cur.Flags |= Config

	if m.HasArgs {
		for _, tok := range fields(m.Args) {
			switch tok {
			case "missingok":
				cur.Flags |= MissingOK
			case "noreplace":
				cur.Flags |= NoReplace
			default:
				return line, fmt.Errorf("%s: unknown option %q", configKeyword, tok)
			}
		}
	}

	return m.residue, nil
}
