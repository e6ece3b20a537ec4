package attr

import (
	"reflect"
	"testing"
)

func TestParseLangAccumulatesAndResolves(t *testing.T) {
	s := &Set{}
	if _, err := ParseLang("%lang(de,fr) /usr/share/foo/de.mo", s); err != nil {
		t.Fatalf("ParseLang failed: %v", err)
	}
	if _, err := ParseLang("%lang(fr,C) /usr/share/foo/de.mo", s); err != nil {
		t.Fatalf("ParseLang failed: %v", err)
	}
	ResolveLangs(s)
	want := []string{"C", "de", "fr"}
	if !reflect.DeepEqual(s.Langs, want) {
		t.Errorf("expected %v, got %v", want, s.Langs)
	}
}

func TestParseLangSingleCharMustBeC(t *testing.T) {
	s := &Set{}
	if _, err := ParseLang("%lang(x)", s); err == nil {
		t.Error("expected error for single-char locale other than C")
	}
}

func TestParseLangTooLong(t *testing.T) {
	s := &Set{}
	long := ""
	for i := 0; i < 40; i++ {
		long += "a"
	}
	if _, err := ParseLang("%lang("+long+")", s); err == nil {
		t.Error("expected error for overlong locale")
	}
}
