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

package manifest

import (
	"fmt"
	"strings"

	"github.com/holocm/rpmfiles/attr"
)

// Resolver carries the running section defaults (set by standalone
// %defattr/%defverify lines) and resolves each subsequent manifest line
// against them. A Resolver must not be shared between packages: defaults
// reset at the start of each package's %files section.
type Resolver struct {
	defaults attr.Set
}

// NewResolver returns a Resolver with empty (unset) defaults.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ProcessLine resolves one manifest line. If the line is a standalone
// %defattr/%defverify directive (no file-name tokens remain after parsing),
// the Resolver's running defaults are updated and ok is false: there is no
// file entry to walk. Otherwise the line is classified against a private
// copy of the current defaults, per §4.3: the returned Line's AttrSet is a
// value, safe from later mutation of the Resolver's defaults.
func (r *Resolver) ProcessLine(raw string) (line Line, ok bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Line{}, false, nil
	}

	if isDefaultsOnlyLine(trimmed) {
		if _, err := attr.ParseDefAttr(trimmed, &r.defaults); err != nil {
			return Line{}, false, fmt.Errorf("defaults line %q: %s", raw, err)
		}
		if _, err := attr.ParseDefVerify(trimmed, &r.defaults); err != nil {
			return Line{}, false, fmt.Errorf("defaults line %q: %s", raw, err)
		}
		return Line{}, false, nil
	}

	classified, err := ClassifyLine(raw, r.defaults)
	if err != nil {
		return Line{}, false, err
	}
	return classified, true, nil
}

// isDefaultsOnlyLine reports whether trimmed consists solely of
// %defattr(...) and/or %defverify(...) directives with no file-name tokens
// left over once they're stripped.
func isDefaultsOnlyLine(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "%defattr") && !strings.HasPrefix(trimmed, "%defverify") {
		return false
	}
	residue := trimmed
	for _, keyword := range []string{"%defattr", "%defverify"} {
		for strings.Contains(residue, keyword) {
			idx := strings.Index(residue, keyword)
			rest := residue[idx+len(keyword):]
			afterSpace := strings.TrimLeft(rest, " \t")
			if !strings.HasPrefix(afterSpace, "(") {
				return false
			}
			closeIdx := strings.IndexByte(afterSpace, ')')
			if closeIdx < 0 {
				return false
			}
			residue = residue[:idx] + afterSpace[closeIdx+1:]
		}
	}
	return strings.TrimSpace(residue) == ""
}
