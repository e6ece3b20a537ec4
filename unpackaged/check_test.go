package unpackaged

import "testing"

func TestCheckSkippedWithoutScript(t *testing.T) {
	result, err := Check(Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Skipped {
		t.Errorf("expected Skipped=true when no script is configured")
	}
}

func TestCheckCleanBuildRootIsNotFatal(t *testing.T) {
	result, err := Check(Options{
		Script:         "/bin/true",
		PackagedFiles:  []string{"/usr/bin/hello"},
		TerminateBuild: true,
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Output != "" {
		t.Errorf("expected empty output from /bin/true, got %q", result.Output)
	}
	if result.Fatal {
		t.Errorf("expected Fatal=false when the script reports nothing")
	}
}

func TestCheckNonemptyOutputHonorsTerminateBuild(t *testing.T) {
	result, err := Check(Options{
		Script:         "/bin/echo /usr/share/stray-file",
		PackagedFiles:  []string{"/usr/bin/hello"},
		TerminateBuild: true,
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Output != "/usr/share/stray-file" {
		t.Errorf("expected echoed output, got %q", result.Output)
	}
	if !result.Fatal {
		t.Errorf("expected Fatal=true when TerminateBuild is set and output is nonempty")
	}
}

func TestCheckNonemptyOutputWithoutTerminateIsWarningOnly(t *testing.T) {
	result, err := Check(Options{
		Script:         "/bin/echo /usr/share/stray-file",
		PackagedFiles:  []string{"/usr/bin/hello"},
		TerminateBuild: false,
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Fatal {
		t.Errorf("expected Fatal=false when TerminateBuild is not set")
	}
	if result.Output == "" {
		t.Errorf("expected nonempty output to be reported even as a warning")
	}
}

func TestCheckScriptFailureIsError(t *testing.T) {
	_, err := Check(Options{Script: "/bin/false"})
	if err == nil {
		t.Fatalf("expected an error when the checker script exits nonzero")
	}
}
