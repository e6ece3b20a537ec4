/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
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

package header

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// DigestAlgorithm selects which digest is written to FILEDIGESTS. Only MD5
// and SHA256 are known; an unknown configuration name does not fall back to
// MD5 with a warning: pkgconfig.Load rejects it with an error.
type DigestAlgorithm int

const (
	MD5 DigestAlgorithm = iota
	SHA256
)

// rpmDigestAlgoTag is the numeric PGPHASHALGO value rpm itself assigns; only
// written to FILEDIGESTALGO when it differs from the default (MD5).
func (a DigestAlgorithm) rpmDigestAlgoTag() int32 {
	switch a {
	case SHA256:
		return 8
	default:
		return 1
	}
}

// digestFile computes the hex digest of a regular file's contents using
// algo. Non-regular files never call this; callers write an empty string
// for them instead.
func digestFile(path string, algo DigestAlgorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch algo {
	case SHA256:
		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return "", err
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	default:
		h := md5.New()
		if _, err := io.Copy(h, f); err != nil {
			return "", err
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	}
}

// ParseDigestAlgorithm maps a configuration string to a DigestAlgorithm
// ("" means MD5). For anything unrecognized it returns MD5 with ok=false;
// pkgconfig.Load turns that into a configuration error.
func ParseDigestAlgorithm(name string) (algo DigestAlgorithm, ok bool) {
	switch name {
	case "", "md5":
		return MD5, true
	case "sha256":
		return SHA256, true
	default:
		return MD5, false
	}
}
