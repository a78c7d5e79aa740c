package execute

import (
	"context"
	"testing"
)

func TestRunSuccess(t *testing.T) {
	cmd := NewCmd("echo", []string{"echo", "-n", "hello"}, t.TempDir())
	res, err := Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode())
	}
	if string(res.Stdout()) != "hello" {
		t.Errorf("Stdout = %q, want %q", res.Stdout(), "hello")
	}
}

func TestRunNonZeroExit(t *testing.T) {
	cmd := NewCmd("false", []string{"sh", "-c", "exit 7"}, t.TempDir())
	res, err := Run(context.Background(), cmd)
	var exitErr *ExitError
	if err == nil {
		t.Fatalf("Run: expected an *ExitError")
	}
	if ee, ok := err.(*ExitError); ok {
		exitErr = ee
	} else {
		t.Fatalf("Run err = %v (%T), want *ExitError", err, err)
	}
	if exitErr.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", exitErr.ExitCode)
	}
	if res.ExitCode() != 7 {
		t.Errorf("Result.ExitCode() = %d, want 7", res.ExitCode())
	}
}

func TestRunNoArgs(t *testing.T) {
	cmd := &Cmd{ID: "empty"}
	if _, err := Run(context.Background(), cmd); err == nil {
		t.Errorf("Run with no args should fail")
	}
}
