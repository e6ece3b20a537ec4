package attr

import "testing"

func TestParseAttrBasic(t *testing.T) {
	s := &Set{}
	residue, err := ParseAttr("%attr(0644, root, wheel) /etc/foo", s)
	if err != nil {
		t.Fatalf("ParseAttr failed: %v", err)
	}
	if s.FileMode == nil || *s.FileMode != 0644 {
		t.Errorf("expected mode 0644, got %v", s.FileMode)
	}
	if s.Owner != "root" || s.Group != "wheel" {
		t.Errorf("expected root/wheel, got %s/%s", s.Owner, s.Group)
	}
	if s.Specd.FileMode != FromCurrent || s.Specd.Owner != FromCurrent {
		t.Errorf("expected FromCurrent specd, got %v/%v", s.Specd.FileMode, s.Specd.Owner)
	}
	if residue == "%attr(0644, root, wheel) /etc/foo" {
		t.Errorf("expected directive to be erased from residue")
	}
}

func TestParseAttrDash(t *testing.T) {
	s := &Set{}
	_, err := ParseAttr("%attr(-, root, -) /etc/foo", s)
	if err != nil {
		t.Fatalf("ParseAttr failed: %v", err)
	}
	if s.FileMode != nil {
		t.Errorf("expected unset mode, got %v", s.FileMode)
	}
	if s.Owner != "root" {
		t.Errorf("expected owner root, got %s", s.Owner)
	}
	if s.Group != "" {
		t.Errorf("expected unset group, got %s", s.Group)
	}
}

func TestParseAttrBadMode(t *testing.T) {
	s := &Set{}
	if _, err := ParseAttr("%attr(9999, root, root) /x", s); err == nil {
		t.Error("expected error for out-of-range mode")
	}
}

func TestParseDefAttr(t *testing.T) {
	s := &Set{}
	_, err := ParseDefAttr("%defattr(0644, root, root, 0755)", s)
	if err != nil {
		t.Fatalf("ParseDefAttr failed: %v", err)
	}
	if s.DirMode == nil || *s.DirMode != 0755 {
		t.Errorf("expected dirmode 0755, got %v", s.DirMode)
	}
	if s.Specd.DirMode != FromDefault {
		t.Errorf("expected DirMode specd FromDefault, got %v", s.Specd.DirMode)
	}
}

func TestParseDefAttrTrailingGarbage(t *testing.T) {
	s := &Set{}
	if _, err := ParseDefAttr("%defattr(0644, root, root, 0755) extra", s); err == nil {
		t.Errorf("expected error for trailing text after %%defattr()")
	}
}

func TestParseAttrMissing(t *testing.T) {
	s := &Set{}
	line := "/etc/foo"
	residue, err := ParseAttr(line, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if residue != line {
		t.Errorf("expected unchanged line, got %q", residue)
	}
}
