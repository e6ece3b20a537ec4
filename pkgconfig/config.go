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

// Package pkgconfig decodes the TOML configuration document carrying every
// knob the assembler consults outside of the manifest itself: digest
// algorithms, the doc-directory list, the terminate-build toggles, and the
// legacy filelist-compression switch.
package pkgconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/holocm/rpmfiles/header"
)

// document only needs a nice exported name for the TOML parser to produce
// more meaningful error messages on malformed input data.
type document struct {
	Digest    digestSection
	Doc       docSection
	Payload   payloadSection
	Terminate terminateSection
	Source    sourceSection
}

type digestSection struct {
	Binary string
	Source string
}

type docSection struct {
	Dirs     string // colon-separated, see Config.DocDirs
	Template string
}

type payloadSection struct {
	NoPrefix    bool
	NoDirTokens bool
	CheckScript string
}

type terminateSection struct {
	MissingDocFiles          bool
	UnpackagedFiles          bool
	BinariesInNoarchPackages bool
}

type sourceSection struct {
	DefAttr string
}

// Config is the validated, ready-to-use form of document.
type Config struct {
	BinaryDigest header.DigestAlgorithm
	SourceDigest header.DigestAlgorithm

	DocDirs            []string
	SpecialDocTemplate string

	NoPayloadPrefix bool
	NoDirTokens     bool
	CheckScript     string

	SourceDefAttr string

	MissingDocFilesTerminateBuild         bool
	UnpackagedFilesTerminateBuild         bool
	BinariesInNoarchPackagesTerminateBuild bool
}

// Load decodes a TOML configuration document from r into a validated Config.
// Every field has a working zero value, so an empty document is valid and
// yields the assembler's defaults (MD5 digests, "./" prefixing on,
// filelist compression on, every terminate-build toggle off).
func Load(r io.Reader) (Config, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return Config{}, fmt.Errorf("bad configuration: %s", err)
	}

	cfg := Config{
		SpecialDocTemplate:                     doc.Doc.Template,
		NoPayloadPrefix:                        doc.Payload.NoPrefix,
		NoDirTokens:                            doc.Payload.NoDirTokens,
		CheckScript:                            doc.Payload.CheckScript,
		SourceDefAttr:                          doc.Source.DefAttr,
		MissingDocFilesTerminateBuild:          doc.Terminate.MissingDocFiles,
		UnpackagedFilesTerminateBuild:          doc.Terminate.UnpackagedFiles,
		BinariesInNoarchPackagesTerminateBuild: doc.Terminate.BinariesInNoarchPackages,
	}

	var ok bool
	cfg.BinaryDigest, ok = header.ParseDigestAlgorithm(doc.Digest.Binary)
	if !ok {
		return Config{}, fmt.Errorf("unknown digest.binary algorithm: %q", doc.Digest.Binary)
	}
	cfg.SourceDigest, ok = header.ParseDigestAlgorithm(doc.Digest.Source)
	if !ok {
		return Config{}, fmt.Errorf("unknown digest.source algorithm: %q", doc.Digest.Source)
	}

	if strings.TrimSpace(doc.Doc.Dirs) != "" {
		for _, dir := range strings.Split(doc.Doc.Dirs, ":") {
			dir = strings.TrimSpace(dir)
			if dir == "" {
				continue
			}
			cfg.DocDirs = append(cfg.DocDirs, strings.TrimSuffix(dir, "/"))
		}
	}

	return cfg, nil
}
