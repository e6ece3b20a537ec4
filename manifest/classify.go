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

// Package manifest turns raw %files manifest lines into AttrSets plus a list
// of file-name tokens, merging per-line attributes against section defaults.
package manifest

import (
	"fmt"
	"strings"

	"github.com/holocm/rpmfiles/attr"
)

// virtualAttrs maps a bare (no-argument) simple keyword to the flag bit(s)
// and extra behavior it sets. allowRelative marks the two keywords that
// permit a non-absolute path to follow them.
var virtualAttrs = map[string]struct {
	flag          attr.Flags
	allowRelative bool
}{
	"%dir":     {flag: attr.Dir},
	"%doc":     {flag: attr.Doc, allowRelative: true},
	"%ghost":   {flag: attr.Ghost},
	"%exclude": {flag: attr.Exclude},
	"%readme":  {flag: attr.Readme},
	"%license": {flag: attr.License},
	"%pubkey":  {flag: attr.Pubkey, allowRelative: true},
	"%docdir":  {flag: attr.Docdir},
}

// Line is one classified %files manifest line: its resolved attribute set
// and the file-name token(s) remaining after every directive has been
// stripped.
type Line struct {
	Attrs       attr.Set
	Tokens      []string
	AllowRelative bool
}

// ClassifyLine parses every directive out of raw, applying %attr/%verify/
// %config/%lang/%caps/%dev to a fresh "current" set seeded from def, and the
// simple virtual attributes directly as flag bits. What remains is
// whitespace/quote tokenized into file-name tokens.
func ClassifyLine(raw string, def attr.Set) (Line, error) {
	cur := def.Clone()
	// the "specd" bits from the defaults set never carry the FromCurrent
	// level; a line with no explicit directive of its own stays at
	// whatever level the default had.
	line := raw
	allowRelative := false

	parsers := []func(string, *attr.Set) (string, error){
		attr.ParseAttr,
		attr.ParseVerify,
		attr.ParseConfig,
		attr.ParseLang,
		attr.ParseCaps,
		attr.ParseDev,
	}
	changed := true
	for changed {
		changed = false
		for _, p := range parsers {
			before := line
			after, err := p(line, &cur)
			if err != nil {
				return Line{}, err
			}
			if after != before {
				line = after
				changed = true
			}
		}
	}
	attr.ResolveLangs(&cur)

	for keyword, spec := range virtualAttrs {
		if idx := indexWord(line, keyword); idx >= 0 {
			cur.Flags |= spec.flag
			if spec.allowRelative {
				allowRelative = true
			}
			line = line[:idx] + strings.Repeat(" ", len(keyword)) + line[idx+len(keyword):]
		}
	}

	toks, err := tokenize(line)
	if err != nil {
		return Line{}, fmt.Errorf("bad file list line %q: %s", raw, err)
	}

	for _, tok := range toks {
		if strings.HasPrefix(tok, "/") {
			continue
		}
		if !allowRelative {
			return Line{}, fmt.Errorf("file name %q must be absolute unless %%pubkey or %%doc is set", tok)
		}
		if cur.Flags.Has(attr.Doc) {
			cur.Flags |= attr.SpecialDoc
		}
	}

	return Line{Attrs: cur, Tokens: toks, AllowRelative: allowRelative}, nil
}

// indexWord finds keyword in s as a whole "word" (bounded by whitespace or
// string edges), so "%doc" inside a longer token isn't mistaken for the
// directive.
func indexWord(s, keyword string) int {
	idx := 0
	for {
		rel := strings.Index(s[idx:], keyword)
		if rel < 0 {
			return -1
		}
		pos := idx + rel
		before := byte(' ')
		if pos > 0 {
			before = s[pos-1]
		}
		after := byte(' ')
		if pos+len(keyword) < len(s) {
			after = s[pos+len(keyword)]
		}
		if isBoundary(before) && isBoundary(after) {
			return pos
		}
		idx = pos + len(keyword)
		if idx >= len(s) {
			return -1
		}
	}
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// tokenize splits the directive-stripped residue of a manifest line into
// file-name tokens, honoring double-quoted spans the way the original
// strtokWithQuotes does.
func tokenize(s string) ([]string, error) {
	var toks []string
	var b strings.Builder
	inQuote := false
	flush := func() {
		if b.Len() > 0 {
			toks = append(toks, b.String())
			b.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case (c == ' ' || c == '\t') && !inQuote:
			flush()
		default:
			b.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	flush()
	return toks, nil
}
