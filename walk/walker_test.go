package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holocm/rpmfiles/attr"
	"github.com/holocm/rpmfiles/record"
)

func TestExpandSimpleFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "etc"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "etc", "foo.conf"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWalker(root)
	var out []record.File
	if err := w.Expand("/etc/foo.conf", attr.Set{}, &out, nil); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].ArchivePath != "/etc/foo.conf" {
		t.Errorf("expected archive path /etc/foo.conf, got %s", out[0].ArchivePath)
	}
}

func TestExpandRecursesDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "usr", "share", "doc"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "usr", "share", "doc", "readme.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWalker(root)
	var out []record.File
	if err := w.Expand("/usr/share", attr.Set{}, &out, nil); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records (dir, doc dir, file), got %d: %v", len(out), out)
	}
}

func TestExpandGhostWithoutMode(t *testing.T) {
	root := t.TempDir()
	w := NewWalker(root)
	var out []record.File
	attrs := attr.Set{Flags: attr.Ghost}
	if err := w.Expand("/var/run/foo.pid", attrs, &out, nil); err == nil {
		t.Errorf("expected error for %%ghost without explicit mode")
	}
}

func TestExpandGhostWithMode(t *testing.T) {
	root := t.TempDir()
	w := NewWalker(root)
	var out []record.File
	mode := uint32(0644)
	attrs := attr.Set{Flags: attr.Ghost, FileMode: &mode}
	if err := w.Expand("/var/run/foo.pid", attrs, &out, nil); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 synthesized record, got %d", len(out))
	}
	if out[0].Verify != 0 {
		t.Errorf("expected verify flags scrubbed for ghost entry, got %v", out[0].Verify)
	}
}

func TestExpandDevSynthesizesNode(t *testing.T) {
	root := t.TempDir()
	w := NewWalker(root)
	var out []record.File
	attrs := attr.Set{Dev: &attr.DevSpec{Type: 'b', Major: 8, Minor: 0}}
	if err := w.Expand("/dev/sda", attrs, &out, nil); err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Mode&os.ModeDevice == 0 {
		t.Error("expected synthesized device mode bit")
	}
	wantRDev := uint64(8<<8 | 0)
	if out[0].RDev != wantRDev {
		t.Errorf("expected RDev %d, got %d", wantRDev, out[0].RDev)
	}
	if out[0].Dev != wantRDev {
		t.Errorf("expected Dev %d, got %d", wantRDev, out[0].Dev)
	}
	if out[0].Nlink != 1 {
		t.Errorf("expected Nlink 1, got %d", out[0].Nlink)
	}
}

func TestExpandMissingFileFails(t *testing.T) {
	root := t.TempDir()
	w := NewWalker(root)
	var out []record.File
	if err := w.Expand("/nope", attr.Set{}, &out, nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandMissingFileExcludeWarnsOnly(t *testing.T) {
	root := t.TempDir()
	w := NewWalker(root)
	var out []record.File
	var warned string
	attrs := attr.Set{Flags: attr.Exclude}
	if err := w.Expand("/nope", attrs, &out, func(msg string) { warned = msg }); err != nil {
		t.Fatalf("expected no error for excluded missing file, got %v", err)
	}
	if warned == "" {
		t.Error("expected a warning to be issued")
	}
}

func TestExpandGlobNoMatchFails(t *testing.T) {
	root := t.TempDir()
	w := NewWalker(root)
	var out []record.File
	if err := w.Expand("/etc/*.conf", attr.Set{}, &out, nil); err == nil {
		t.Error("expected error when glob matches nothing")
	}
}

func TestExpandRequiresLeadingSlash(t *testing.T) {
	root := t.TempDir()
	w := NewWalker(root)
	var out []record.File
	if err := w.Expand("relative/path", attr.Set{}, &out, nil); err == nil {
		t.Error("expected error for non-absolute token")
	}
}
