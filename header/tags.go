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

// Package header assembles the package-header tag columns describing a
// sorted, merged file list: the binary index/data container (adapted from
// the teacher's rpm header writer) plus the emission logic that walks a
// record.Store and appends one value per column per kept file.
package header

// List of known values for rpmHeaderIndexRecord.Type. [LSB,25.2.2.2.1]
const (
	rpmNullType        = 0
	rpmCharType        = 1
	rpmInt8Type        = 2
	rpmInt16Type       = 3
	rpmInt32Type       = 4
	rpmInt64Type       = 5
	rpmStringType      = 6
	rpmBinType         = 7
	rpmStringArrayType = 8
	rpmI18NStringType  = 9
)

// List of known values for rpmHeaderIndexRecord.Tag. [LSB, 25.2.2.2.2 ff.]
const (
	tagHeaderSignatures = 62
	tagHeaderImmutable  = 63
	tagHeaderI18NTable  = 100

	tagName        = 1000
	tagVersion     = 1001
	tagRelease     = 1002
	tagSummary     = 1004
	tagDescription = 1005

	tagSize         = 1009
	tagDistribution = 1010
	tagVendor       = 1011
	tagLicense      = 1014
	tagPackager     = 1015
	tagGroup        = 1016
	tagURL          = 1020
	tagOs           = 1021
	tagArch         = 1022

	tagOldFileNames = 1027
	tagFileSizes    = 1028
	tagFileModes    = 1030
	tagFileRdevs    = 1033
	tagFileMtimes   = 1034
	tagFileDigests  = 1035
	tagFileLinktos  = 1036
	tagFileFlags    = 1037

	tagSourceRPM = 1044

	tagFileUserName  = 1039
	tagFileGroupName = 1040

	tagProvideName    = 1047
	tagRequireFlags   = 1048
	tagRequireName    = 1049
	tagRequireVersion = 1050

	tagArchiveSize = 1046

	tagFileVerifyFlags = 1045

	tagFileDevices = 1095
	tagFileInodes  = 1096
	tagFileLangs   = 1097

	tagDirIndexes = 1116
	tagBasenames  = 1117
	tagDirNames   = 1118

	tagFileDigestAlgo = 5011
	tagFileCaps       = 5010

	tagLongFileSizes = 5008
	tagLongSize      = 5009
)

// Values for tagFileFlags, see [LSB,25.2.4.3.1].
const (
	fileConfig    = 1 << 0
	fileDoc       = 1 << 1
	fileDoNotUse  = 1 << 2
	fileMissingOK = 1 << 3
	fileNoReplace = 1 << 4
	fileSpecFile  = 1 << 5
	fileGhost     = 1 << 6
	fileLicense   = 1 << 7
	fileReadme    = 1 << 8
	fileExclude   = 1 << 9
	filePubkey    = 1 << 11
)

// Values for tagFileVerifyFlags, see [LSB,25.2.4.3.2].
const (
	verifyFileDigest = 1 << iota
	verifyFileSize
	verifyLinkto
	verifyUser
	verifyGroup
	verifyMtime
	verifyMode
	verifyRdev
	verifyCaps
)

// Values for tagRequireFlags et al. See [LSB,25.2.4.4.2].
const (
	senseAny     = 0
	senseLess    = 0x02
	senseGreater = 0x04
	senseEqual   = 0x08
	senseRpmlib  = 0x1000000
)
