package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/typings-labs/gentypings/internal/collector"
	"github.com/typings-labs/gentypings/internal/license"
	"github.com/typings-labs/gentypings/internal/prompt"
	"github.com/typings-labs/gentypings/internal/provision"
	"github.com/typings-labs/gentypings/internal/scaffold"
	"github.com/typings-labs/gentypings/internal/session"
)

type fakeRunner struct {
	ran   []string
	codes map[string]int
}

func (f *fakeRunner) Run(_ context.Context, cmd provision.Command) (provision.Outcome, error) {
	line := cmd.String()
	f.ran = append(f.ran, line)
	return provision.Outcome{ExitCode: f.codes[line]}, nil
}

// reactInput answers every prompt for the facebook/react walkthrough.
var reactInput = strings.Join([]string{
	"facebook/react",
	"y",
	"",
	"n",
	"octocat",
	"",
	"",
}, "\n") + "\n"

func newTestPipeline(input string, runner provision.Runner, out *bytes.Buffer) *Pipeline {
	c := collector.New(prompt.NewLinePrompter(strings.NewReader(input), out), nil, nil)
	c.PickExample = func(examples []string) string { return examples[0] }

	m := scaffold.New(nil)
	m.Now = func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) }

	p := &Pipeline{Collector: c, Materializer: m, Out: out}
	if runner != nil {
		p.Provisioner = provision.New(runner, out, nil)
	}
	return p
}

func TestRunReact(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "typed-react")
	runner := &fakeRunner{}
	var out bytes.Buffer

	summary, err := newTestPipeline(reactInput, runner, &out).Run(context.Background(), outDir)
	if err != nil {
		t.Fatalf("Run() error: %v\noutput:\n%s", err, out.String())
	}

	want := session.Config{
		SourceRepoRef:         "facebook/react",
		SourcePackageURL:      "https://github.com/facebook/react",
		SourcePackageName:     "react",
		PrettyPackageName:     "React",
		IsPublishedOnRegistry: true,
		RegistryName:          "react",
		Username:              "octocat",
		LicenseID:             license.MIT,
		LicenseAuthorName:     "octocat",
	}
	if diff := cmp.Diff(want, summary.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	wantRan := []string{
		"npm install",
		"npm install -D --save-exact react",
		"typings install",
		"npm run build",
		"git init",
		"git submodule add https://github.com/facebook/react source",
	}
	if diff := cmp.Diff(wantRan, runner.ran); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	stub := readGenerated(t, outDir, "test/test.ts")
	assertContains(t, stub, "import react = require('react');")

	lic := readGenerated(t, outDir, "LICENSE")
	assertContains(t, lic, "2026 octocat")

	output := out.String()
	assertContains(t, output, "Welcome to the sensational")
	assertContains(t, output, "I am done! Now it is your turn!")
	assertContains(t, output, "npm run watch")
	assertContains(t, output, "tsd install <source>")
}

func TestRunSkipsProvisioningWithoutProvisioner(t *testing.T) {
	outDir := t.TempDir()
	var out bytes.Buffer

	summary, err := newTestPipeline(reactInput, nil, &out).Run(context.Background(), outDir)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.Report != nil {
		t.Errorf("Report = %+v, want nil", summary.Report)
	}
	if _, err := os.Stat(filepath.Join(outDir, "package.json")); err != nil {
		t.Errorf("package.json not written: %v", err)
	}
}

func TestRunAbortsBeforeProvisioningWhenFilesFail(t *testing.T) {
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	runner := &fakeRunner{}
	var out bytes.Buffer

	_, err := newTestPipeline(reactInput, runner, &out).Run(context.Background(), outDir)
	if err == nil {
		t.Fatal("expected error for non-empty output directory")
	}
	if len(runner.ran) != 0 {
		t.Errorf("commands ran after materializer failure: %v", runner.ran)
	}
	if strings.Contains(out.String(), "I am done!") {
		t.Error("closing hints printed after failure")
	}
}

func TestRunBestEffortReportsFailures(t *testing.T) {
	runner := &fakeRunner{codes: map[string]int{"typings install": 1}}
	var out bytes.Buffer

	summary, err := newTestPipeline(reactInput, runner, &out).Run(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(runner.ran) != 6 {
		t.Errorf("ran %d commands, want all 6", len(runner.ran))
	}
	if n := len(summary.Report.Failures()); n != 1 {
		t.Errorf("failures = %d, want 1", n)
	}
	assertContains(t, out.String(), "typings install: exit code 1")
}

func TestRunFailFastStops(t *testing.T) {
	runner := &fakeRunner{codes: map[string]int{"npm install": 2}}
	var out bytes.Buffer

	p := newTestPipeline(reactInput, runner, &out)
	p.Provisioner.Policy = provision.FailFast

	if _, err := p.Run(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error under fail-fast")
	}
	if diff := cmp.Diff([]string{"npm install"}, runner.ran); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAbortedInput(t *testing.T) {
	runner := &fakeRunner{}
	var out bytes.Buffer

	_, err := newTestPipeline("facebook/react\n", runner, &out).Run(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected error when input ends early")
	}
	if len(runner.ran) != 0 {
		t.Errorf("commands ran after aborted input: %v", runner.ran)
	}
}

// ─── Test Helpers ───────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q", substr)
	}
}
