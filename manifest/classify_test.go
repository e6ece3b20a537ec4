package manifest

import (
	"testing"

	"github.com/holocm/rpmfiles/attr"
)

func TestClassifyLineSimpleFile(t *testing.T) {
	l, err := ClassifyLine("%attr(0644, root, root) /etc/foo.conf", attr.Set{})
	if err != nil {
		t.Fatalf("ClassifyLine failed: %v", err)
	}
	if len(l.Tokens) != 1 || l.Tokens[0] != "/etc/foo.conf" {
		t.Errorf("expected single token /etc/foo.conf, got %v", l.Tokens)
	}
	if l.Attrs.Owner != "root" {
		t.Errorf("expected owner root, got %s", l.Attrs.Owner)
	}
}

func TestClassifyLineVirtualAttrs(t *testing.T) {
	l, err := ClassifyLine("%dir /var/lib/foo", attr.Set{})
	if err != nil {
		t.Fatalf("ClassifyLine failed: %v", err)
	}
	if !l.Attrs.Flags.Has(attr.Dir) {
		t.Error("expected Dir flag set")
	}
	if len(l.Tokens) != 1 || l.Tokens[0] != "/var/lib/foo" {
		t.Errorf("unexpected tokens %v", l.Tokens)
	}
}

func TestClassifyLineQuotedToken(t *testing.T) {
	l, err := ClassifyLine(`"/etc/my file.conf"`, attr.Set{})
	if err != nil {
		t.Fatalf("ClassifyLine failed: %v", err)
	}
	if len(l.Tokens) != 1 || l.Tokens[0] != "/etc/my file.conf" {
		t.Errorf("expected one token preserving embedded space, got %v", l.Tokens)
	}
}

func TestClassifyLineRelativeRequiresDocOrPubkey(t *testing.T) {
	if _, err := ClassifyLine("relative/path", attr.Set{}); err == nil {
		t.Errorf("expected error for relative path without %%doc or %%pubkey")
	}
}

func TestClassifyLineRelativeDocAllowed(t *testing.T) {
	l, err := ClassifyLine("%doc README.md", attr.Set{})
	if err != nil {
		t.Fatalf("ClassifyLine failed: %v", err)
	}
	if !l.Attrs.Flags.Has(attr.SpecialDoc) {
		t.Errorf("expected SpecialDoc flag set for relative %%doc token")
	}
}

func TestClassifyLineInheritsDefaults(t *testing.T) {
	def := attr.Set{}
	if _, err := attr.ParseDefAttr("%defattr(0644, root, root, 0755)", &def); err != nil {
		t.Fatalf("ParseDefAttr failed: %v", err)
	}
	l, err := ClassifyLine("/etc/foo", def)
	if err != nil {
		t.Fatalf("ClassifyLine failed: %v", err)
	}
	if l.Attrs.FileMode == nil || *l.Attrs.FileMode != 0644 {
		t.Errorf("expected inherited mode 0644, got %v", l.Attrs.FileMode)
	}
	if l.Attrs.Specd.FileMode != attr.FromDefault {
		t.Errorf("expected FromDefault specd, got %v", l.Attrs.Specd.FileMode)
	}
}

func TestClassifyLineCurrentOverridesDefault(t *testing.T) {
	def := attr.Set{}
	if _, err := attr.ParseDefAttr("%defattr(0644, root, root, 0755)", &def); err != nil {
		t.Fatalf("ParseDefAttr failed: %v", err)
	}
	l, err := ClassifyLine("%attr(0600, -, -) /etc/secret", def)
	if err != nil {
		t.Fatalf("ClassifyLine failed: %v", err)
	}
	if l.Attrs.FileMode == nil || *l.Attrs.FileMode != 0600 {
		t.Errorf("expected overridden mode 0600, got %v", l.Attrs.FileMode)
	}
	if l.Attrs.Specd.FileMode != attr.FromCurrent {
		t.Errorf("expected FromCurrent specd, got %v", l.Attrs.Specd.FileMode)
	}
	if l.Attrs.Owner != "root" {
		t.Errorf("expected inherited owner root, got %s", l.Attrs.Owner)
	}
}
