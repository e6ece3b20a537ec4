package attr

import "testing"

func TestParseDevBlock(t *testing.T) {
	s := &Set{}
	_, err := ParseDev("%dev(b 8 0) /dev/sda", s)
	if err != nil {
		t.Fatalf("ParseDev failed: %v", err)
	}
	if s.Dev == nil || s.Dev.Type != 'b' || s.Dev.Major != 8 || s.Dev.Minor != 0 {
		t.Errorf("unexpected dev spec: %+v", s.Dev)
	}
}

func TestParseDevBadType(t *testing.T) {
	s := &Set{}
	if _, err := ParseDev("%dev(x 8 0)", s); err == nil {
		t.Error("expected error for bad device type")
	}
}

func TestParseDevOutOfRange(t *testing.T) {
	s := &Set{}
	if _, err := ParseDev("%dev(c 256 0)", s); err == nil {
		t.Error("expected error for major out of [0,256) range")
	}
}

func TestParseDevWrongArgCount(t *testing.T) {
	s := &Set{}
	if _, err := ParseDev("%dev(c 1)", s); err == nil {
		t.Error("expected error for missing minor number")
	}
}
