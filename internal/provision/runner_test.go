package provision

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
)

// TestHelperProcess is not a real test. ExecRunner tests run the test binary
// itself as the child process.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GENTYPINGS_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, "helper stdout")
	fmt.Fprint(os.Stderr, "helper stderr")
	code, _ := strconv.Atoi(os.Getenv("GENTYPINGS_HELPER_EXIT"))
	os.Exit(code)
}

func helperCommand(exit int) Command {
	return Command{
		Name: os.Args[0],
		Args: []string{"-test.run=TestHelperProcess"},
		Env: map[string]string{
			"GENTYPINGS_HELPER_PROCESS": "1",
			"GENTYPINGS_HELPER_EXIT":    strconv.Itoa(exit),
		},
	}
}

func TestExecRunnerPassesOutputThrough(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}

	outcome, err := r.Run(context.Background(), helperCommand(0))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", outcome.ExitCode)
	}
	if stdout.String() != "helper stdout" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if stderr.String() != "helper stderr" {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	r := &ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	outcome, err := r.Run(context.Background(), helperCommand(7))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", outcome.ExitCode)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Run(context.Background(), Command{Name: "gentypings-definitely-not-installed"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "git", Args: []string{"submodule", "add", "https://github.com/atom/atom", "source"}}
	if got := c.String(); got != "git submodule add https://github.com/atom/atom source" {
		t.Errorf("String() = %q", got)
	}
}
