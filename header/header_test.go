package header

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestAddStringArrayValueSkipsEmpty(t *testing.T) {
	hdr := &Header{}
	hdr.AddStringArrayValue(tagFileLangs, nil)
	if len(hdr.Records) != 0 {
		t.Fatalf("expected no record for an empty array, got %d", len(hdr.Records))
	}
}

func TestAddInt32ValueAlignsData(t *testing.T) {
	hdr := &Header{}
	hdr.AddStringValue(tagName, "hello", false)
	if len(hdr.Data)%4 == 0 {
		t.Fatalf("test setup expected misaligned data before Int32 add, got len %d", len(hdr.Data))
	}
	hdr.AddInt32Value(tagSize, []int32{42})
	last := hdr.Records[len(hdr.Records)-1]
	if last.Offset%4 != 0 {
		t.Errorf("expected int32 offset aligned to 4 bytes, got %d", last.Offset)
	}
}

func TestAddInt64ValueAlignsData(t *testing.T) {
	hdr := &Header{}
	hdr.AddInt16Value(tagFileModes, []int16{0644})
	hdr.AddInt64Value(tagLongSize, []int64{1 << 40})
	last := hdr.Records[len(hdr.Records)-1]
	if last.Offset%8 != 0 {
		t.Errorf("expected int64 offset aligned to 8 bytes, got %d", last.Offset)
	}
	if last.Type != rpmInt64Type {
		t.Errorf("expected rpmInt64Type, got %d", last.Type)
	}
}

func TestToBinaryIncludesRegionTag(t *testing.T) {
	hdr := &Header{}
	hdr.AddStringValue(tagName, "pkg", false)
	raw := hdr.ToBinary(tagHeaderImmutable)

	var rec headerRecord
	if err := binary.Read(bytes.NewReader(raw[:16]), binary.BigEndian, &rec); err != nil {
		t.Fatalf("decode header record: %v", err)
	}
	if rec.Magic != ([4]byte{0x8E, 0xAD, 0xE8, 0x01}) {
		t.Errorf("unexpected magic: %v", rec.Magic)
	}
	if rec.IndexRecordCount != uint32(len(hdr.Records))+1 {
		t.Errorf("expected %d index records, got %d", len(hdr.Records)+1, rec.IndexRecordCount)
	}
}
