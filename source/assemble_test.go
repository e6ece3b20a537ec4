package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holocm/rpmfiles/attr"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestAssembleFlagsSpecFile(t *testing.T) {
	dir := t.TempDir()
	spec := writeTemp(t, dir, "pkg.spec", "Name: pkg\n")
	src := writeTemp(t, dir, "pkg-1.0.tar.gz", "fake tarball")

	store, err := Assemble(Input{SpecFile: spec, Sources: []string{src}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(store.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(store.Files))
	}

	var sawSpecFile bool
	for _, f := range store.Files {
		if f.Flags.Has(attr.SpecFile) {
			sawSpecFile = true
			if f.ArchivePath != "pkg.spec" {
				t.Errorf("expected spec file archive path pkg.spec, got %s", f.ArchivePath)
			}
		}
	}
	if !sawSpecFile {
		t.Errorf("expected an entry flagged SpecFile")
	}
}

func TestAssembleGhostSourceStillStatsRealFile(t *testing.T) {
	dir := t.TempDir()
	spec := writeTemp(t, dir, "pkg.spec", "Name: pkg\n")
	noSource := writeTemp(t, dir, "extra-patch.diff", "diff content")

	store, err := Assemble(Input{
		SpecFile: spec,
		Sources:  []string{"!" + noSource},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var found bool
	for _, f := range store.Files {
		if f.ArchivePath == "extra-patch.diff" {
			found = true
			if !f.Flags.Has(attr.Ghost) {
				t.Errorf("expected ! prefixed source to carry the Ghost flag")
			}
			if f.Size == 0 {
				t.Errorf("expected ghost-flagged source to still carry real stat data (non-zero size)")
			}
		}
	}
	if !found {
		t.Fatalf("expected the no-source entry to still appear in the file list")
	}
}

func TestAssembleAppliesDefAttrOverride(t *testing.T) {
	dir := t.TempDir()
	spec := writeTemp(t, dir, "pkg.spec", "Name: pkg\n")

	store, err := Assemble(Input{
		SpecFile: spec,
		DefAttr:  "0644,builder,builder,-",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(store.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(store.Files))
	}
	f := store.Files[0]
	if f.Owner != "builder" || f.Group != "builder" {
		t.Errorf("expected owner/group override to apply, got %s/%s", f.Owner, f.Group)
	}
	if f.Mode.Perm() != 0644 {
		t.Errorf("expected mode override to apply, got %o", f.Mode.Perm())
	}
}

func TestAssembleMissingSourceFails(t *testing.T) {
	dir := t.TempDir()
	spec := writeTemp(t, dir, "pkg.spec", "Name: pkg\n")

	_, err := Assemble(Input{
		SpecFile: spec,
		Sources:  []string{filepath.Join(dir, "does-not-exist.tar.gz")},
	})
	if err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
}
