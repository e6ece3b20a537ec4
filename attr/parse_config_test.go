package attr

import "testing"

func TestParseConfigBare(t *testing.T) {
	s := &Set{}
	_, err := ParseConfig("%config /etc/foo.conf", s)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if !s.Flags.Has(Config) {
		t.Error("expected Config flag set")
	}
	if s.Flags.Has(MissingOK) || s.Flags.Has(NoReplace) {
		t.Errorf("expected no options set for bare %%config")
	}
}

func TestParseConfigOptions(t *testing.T) {
	s := &Set{}
	_, err := ParseConfig("%config(missingok,noreplace) /etc/foo.conf", s)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if !s.Flags.Has(Config | MissingOK | NoReplace) {
		t.Errorf("expected all three flags, got %b", s.Flags)
	}
}

func TestParseConfigBadOption(t *testing.T) {
	s := &Set{}
	if _, err := ParseConfig("%config(bogus)", s); err == nil {
		t.Errorf("expected error for unknown %%config option")
	}
}
