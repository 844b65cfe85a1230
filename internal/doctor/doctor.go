// Package doctor checks that the tools the generator shells out to are
// installed.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// MinNodeVersion is the oldest Node.js the generated build scripts run on.
const MinNodeVersion = "4.0.0"

// RequiredTools are invoked while provisioning a new repository.
var RequiredTools = []string{"node", "npm", "typings", "git"}

// Status of a single check.
type Status string

const (
	StatusOK   Status = " OK "
	StatusMiss Status = "MISS"
	StatusWarn Status = "WARN"
)

// Finding is the result of one check.
type Finding struct {
	Tool   string
	Status Status
	Detail string
}

// Doctor runs the checks. The function fields exist so tests can fake the
// system.
type Doctor struct {
	LookPath func(file string) (string, error)
	// Version returns the raw "--version" output of a binary.
	Version func(ctx context.Context, bin string) (string, error)
}

// New returns a Doctor that inspects the real PATH.
func New() *Doctor {
	return &Doctor{
		LookPath: exec.LookPath,
		Version: func(ctx context.Context, bin string) (string, error) {
			out, err := exec.CommandContext(ctx, bin, "--version").Output()
			return string(out), err
		},
	}
}

// Check inspects every required tool and the Node.js version.
func (d *Doctor) Check(ctx context.Context) []Finding {
	var findings []Finding

	for _, tool := range RequiredTools {
		path, err := d.LookPath(tool)
		if err != nil {
			findings = append(findings, Finding{Tool: tool, Status: StatusMiss, Detail: tool + " not found"})
			continue
		}
		findings = append(findings, Finding{Tool: tool, Status: StatusOK, Detail: fmt.Sprintf("%s found at %s", tool, path)})

		if tool == "node" {
			findings = append(findings, d.checkNodeVersion(ctx, path))
		}
	}
	return findings
}

func (d *Doctor) checkNodeVersion(ctx context.Context, bin string) Finding {
	raw, err := d.Version(ctx, bin)
	if err != nil {
		return Finding{Tool: "node", Status: StatusWarn, Detail: fmt.Sprintf("could not read node version: %v", err)}
	}
	version := strings.TrimSpace(raw)

	ok, err := AtLeast(version, MinNodeVersion)
	switch {
	case err != nil:
		return Finding{Tool: "node", Status: StatusWarn, Detail: fmt.Sprintf("unrecognized node version %q", version)}
	case !ok:
		return Finding{Tool: "node", Status: StatusWarn, Detail: fmt.Sprintf("node %s is older than %s", version, MinNodeVersion)}
	}
	return Finding{Tool: "node", Status: StatusOK, Detail: fmt.Sprintf("node %s >= %s", version, MinNodeVersion)}
}

// Print writes findings in "[STAT] detail" form and returns the number of
// problems.
func Print(w io.Writer, findings []Finding) int {
	problems := 0
	fmt.Fprintln(w, "Tool check:")
	for _, f := range findings {
		fmt.Fprintf(w, "  [%s] %s\n", f.Status, f.Detail)
		if f.Status != StatusOK {
			problems++
		}
	}
	return problems
}
