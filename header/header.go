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
	"bytes"
	"encoding/binary"
)

// Header represents an RPM header structure (as used in the signature
// section and header section), as defined in [LSB, 25.2.2].
type Header struct {
	Records      []*indexRecord
	Data         []byte
	hasI18NTable bool
}

// indexRecord represents an index record in a header structure, i.e. a
// single key-value entry. The actual value is stored in the associated
// Header.Data field. Defined in [LSB, 25.2.2.2].
type indexRecord struct {
	Tag    uint32
	Type   uint32
	Offset uint32
	Count  uint32
}

// binary representation of the header record. [LSB,25.2.2.1]
type headerRecord struct {
	Magic            [4]byte
	Reserved         [4]byte
	IndexRecordCount uint32
	DataSize         uint32
}

// ToBinary serializes the header, wrapping it in an immutable region tagged
// with regionTag.
func (hdr *Header) ToBinary(regionTag uint32) []byte {
	var buf bytes.Buffer

	actualDataSize := uint32(len(hdr.Data))
	actualRecordCount := uint32(len(hdr.Records))
	binary.Write(&buf, binary.BigEndian, &headerRecord{
		Magic:            [4]byte{0x8E, 0xAD, 0xE8, 0x01},
		Reserved:         [4]byte{0x00, 0x00, 0x00, 0x00},
		IndexRecordCount: actualRecordCount + 1, // +1 for the region tag
		DataSize:         actualDataSize + 16,   // +16 for the region tag
	})

	binary.Write(&buf, binary.BigEndian, &indexRecord{
		Tag:    regionTag,
		Type:   rpmBinType,
		Offset: actualDataSize,
		Count:  16,
	})

	for _, ir := range hdr.Records {
		binary.Write(&buf, binary.BigEndian, ir)
	}

	buf.Write(hdr.Data)

	binary.Write(&buf, binary.BigEndian, &indexRecord{
		Tag:    regionTag,
		Type:   rpmBinType,
		Offset: uint32(-(int32(actualRecordCount) + 1) * 16),
		Count:  16,
	})

	return buf.Bytes()
}

// AddBinaryValue adds a value of type rpmBinType to this header.
func (hdr *Header) AddBinaryValue(tag uint32, data []byte) {
	hdr.Records = append(hdr.Records, &indexRecord{
		Tag:    tag,
		Type:   rpmBinType,
		Offset: uint32(len(hdr.Data)),
		Count:  uint32(len(data)),
	})
	hdr.Data = append(hdr.Data, data...)
}

// AddInt16Value adds a value of type rpmInt16Type to this header.
func (hdr *Header) AddInt16Value(tag uint32, data []int16) {
	if len(data) == 0 {
		return
	}

	if len(hdr.Data)%2 != 0 {
		hdr.Data = append(hdr.Data, 0x00)
	}

	hdr.Records = append(hdr.Records, &indexRecord{
		Tag:    tag,
		Type:   rpmInt16Type,
		Offset: uint32(len(hdr.Data)),
		Count:  uint32(len(data)),
	})
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, data)
	hdr.Data = append(hdr.Data, buf.Bytes()...)
}

// AddInt32Value adds a value of type rpmInt32Type to this header.
func (hdr *Header) AddInt32Value(tag uint32, data []int32) {
	if len(data) == 0 {
		return
	}

	for len(hdr.Data)%4 != 0 {
		hdr.Data = append(hdr.Data, 0x00)
	}

	hdr.Records = append(hdr.Records, &indexRecord{
		Tag:    tag,
		Type:   rpmInt32Type,
		Offset: uint32(len(hdr.Data)),
		Count:  uint32(len(data)),
	})
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, data)
	hdr.Data = append(hdr.Data, buf.Bytes()...)
}

// AddInt64Value adds a value of type rpmInt64Type to this header, used for
// LONGFILESIZES/LONGSIZE once a package has a large-file member.
func (hdr *Header) AddInt64Value(tag uint32, data []int64) {
	if len(data) == 0 {
		return
	}

	for len(hdr.Data)%8 != 0 {
		hdr.Data = append(hdr.Data, 0x00)
	}

	hdr.Records = append(hdr.Records, &indexRecord{
		Tag:    tag,
		Type:   rpmInt64Type,
		Offset: uint32(len(hdr.Data)),
		Count:  uint32(len(data)),
	})
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, data)
	hdr.Data = append(hdr.Data, buf.Bytes()...)
}

// AddStringValue adds a value of type rpmStringType or rpmI18NStringType to
// this header.
func (hdr *Header) AddStringValue(tag uint32, data string, i18n bool) {
	var recordType uint32 = rpmStringType
	if i18n {
		recordType = rpmI18NStringType
		if !hdr.hasI18NTable {
			hdr.AddStringArrayValue(tagHeaderI18NTable, []string{"C"})
			hdr.hasI18NTable = true
		}
	}

	hdr.Records = append(hdr.Records, &indexRecord{
		Tag:    tag,
		Type:   recordType,
		Offset: uint32(len(hdr.Data)),
		Count:  1,
	})
	hdr.Data = append(append(hdr.Data, []byte(data)...), 0x00)
}

// AddStringArrayValue adds a value of type rpmStringArrayType to this
// header. Tags with zero entries are skipped entirely, matching rpm's
// dataLength() failing on zero-length reads.
func (hdr *Header) AddStringArrayValue(tag uint32, data []string) {
	if len(data) == 0 {
		return
	}

	hdr.Records = append(hdr.Records, &indexRecord{
		Tag:    tag,
		Type:   rpmStringArrayType,
		Offset: uint32(len(hdr.Data)),
		Count:  uint32(len(data)),
	})
	for _, str := range data {
		hdr.Data = append(append(hdr.Data, []byte(str)...), 0x00)
	}
}
