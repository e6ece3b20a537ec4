package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holocm/rpmfiles/header"
	"github.com/holocm/rpmfiles/manifest"
	"github.com/holocm/rpmfiles/source"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestAssemblePackageHappyPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "usr/bin/hello"), "binary", 0755)

	pkg := &manifest.Package{
		Name:      "hello",
		BuildRoot: root,
		Lines:     []string{"%defattr(0755,root,root,0755)", "/usr/bin/hello"},
	}

	d := NewDriver(Config{BinaryDigest: header.MD5})
	ec := d.AssemblePackage(pkg)
	if ec.HasErrors() {
		t.Fatalf("unexpected errors: %v", ec.Diagnostics)
	}
	if pkg.Store == nil || len(pkg.Store.Files) != 1 {
		t.Fatalf("expected 1 resolved file, got %v", pkg.Store)
	}
	if pkg.Header == nil {
		t.Fatalf("expected a populated header")
	}
}

func TestAssemblePackageMissingFileIsError(t *testing.T) {
	root := t.TempDir()
	pkg := &manifest.Package{
		Name:      "hello",
		BuildRoot: root,
		Lines:     []string{"/usr/bin/does-not-exist"},
	}

	d := NewDriver(Config{})
	ec := d.AssemblePackage(pkg)
	if !ec.HasErrors() {
		t.Fatalf("expected an error for a missing manifest entry")
	}
	if pkg.Store != nil || pkg.Header != nil {
		t.Errorf("expected no Store/Header to be populated on failure")
	}
}

func TestAssemblePackageDuplicateIsWarningNotError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "etc/x"), "content", 0644)

	pkg := &manifest.Package{
		Name:      "hello",
		BuildRoot: root,
		Lines:     []string{"/etc/x", "/etc/x"},
	}

	d := NewDriver(Config{})
	ec := d.AssemblePackage(pkg)
	if ec.HasErrors() {
		t.Fatalf("expected duplicates to be a warning, got errors: %v", ec.Diagnostics)
	}
	var sawWarning bool
	for _, diag := range ec.Diagnostics {
		if diag.Severity == Warning {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Errorf("expected a warning diagnostic for the duplicate entry")
	}
	if len(pkg.Store.Files) != 1 {
		t.Errorf("expected duplicates merged into 1 file, got %d", len(pkg.Store.Files))
	}
}

func TestAssembleSourcePopulatesHeader(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "pkg.spec")
	writeFile(t, spec, "Name: pkg\n", 0644)

	pkg := &manifest.Package{Name: "pkg (source)", IsSource: true}
	d := NewDriver(Config{SourceDigest: header.MD5})
	ec := d.AssembleSource(pkg, source.Input{SpecFile: spec})
	if ec.HasErrors() {
		t.Fatalf("unexpected errors: %v", ec.Diagnostics)
	}
	if pkg.Header == nil {
		t.Fatalf("expected a populated source header")
	}
}

func TestCheckUnpackagedSkippedWithoutScript(t *testing.T) {
	d := NewDriver(Config{})
	ec := d.CheckUnpackaged("/tmp", nil)
	if ec.HasErrors() || len(ec.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics when no checker script is configured")
	}
}

func TestCheckUnpackagedHonorsTerminateBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "usr/bin/hello"), "binary", 0755)

	pkg := &manifest.Package{Name: "hello", BuildRoot: root, Lines: []string{"/usr/bin/hello"}}
	d := NewDriver(Config{
		CheckScript:                    "/bin/echo /usr/share/stray",
		UnpackagedFilesTerminateBuild: true,
	})
	d.AssemblePackage(pkg)

	ec := d.CheckUnpackaged(root, []*manifest.Package{pkg})
	if !ec.HasErrors() {
		t.Fatalf("expected an error when TerminateBuild is set and the checker reports output")
	}
}

func TestCheckArchColorFlagsELFInNoarchPackage(t *testing.T) {
	root := t.TempDir()
	elfPath := filepath.Join(root, "usr/bin/native")
	writeFile(t, elfPath, "\x7fELF\x02\x01\x01\x00rest-of-file", 0755)

	pkg := &manifest.Package{
		Name:      "hello",
		BuildRoot: root,
		Lines:     []string{"/usr/bin/native"},
		IsNoarch:  true,
	}
	d := NewDriver(Config{BinariesInNoarchPackagesTerminateBuild: true})
	if ec := d.AssemblePackage(pkg); ec.HasErrors() {
		t.Fatalf("unexpected assembly errors: %v", ec.Diagnostics)
	}

	ec := d.CheckArchColor([]*manifest.Package{pkg})
	if !ec.HasErrors() {
		t.Fatalf("expected an error for an ELF binary in a noarch package")
	}
}

func TestCheckArchColorIgnoresNonELF(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "usr/share/doc/readme"), "just text", 0644)

	pkg := &manifest.Package{
		Name:      "hello",
		BuildRoot: root,
		Lines:     []string{"/usr/share/doc/readme"},
		IsNoarch:  true,
	}
	d := NewDriver(Config{BinariesInNoarchPackagesTerminateBuild: true})
	if ec := d.AssemblePackage(pkg); ec.HasErrors() {
		t.Fatalf("unexpected assembly errors: %v", ec.Diagnostics)
	}

	ec := d.CheckArchColor([]*manifest.Package{pkg})
	if ec.HasErrors() {
		t.Errorf("expected no diagnostics for a non-ELF file, got %v", ec.Diagnostics)
	}
}
