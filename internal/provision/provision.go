package provision

import (
	"context"
	"fmt"
	"io"

	"github.com/typings-labs/gentypings/internal/session"
	"github.com/typings-labs/gentypings/internal/ui"
	"go.uber.org/zap"
)

// Policy decides what happens after a step fails.
type Policy int

const (
	// BestEffort records every exit code and always runs the next step.
	BestEffort Policy = iota
	// FailFast stops at the first step that fails to run or exits non-zero.
	FailFast
)

func (p Policy) String() string {
	if p == FailFast {
		return "fail-fast"
	}
	return "best-effort"
}

// SubmoduleDir is where the source repository is checked out.
const SubmoduleDir = "source"

// Step is a labelled command.
type Step struct {
	Label   string // progress text, e.g. "Running" or "Installing"
	Subject string // highlighted part of the progress text
	Command Command
}

// StepResult records how a step went.
type StepResult struct {
	Command  Command
	ExitCode int
	Err      error
}

// Failed reports whether the step could not run or exited non-zero.
func (r StepResult) Failed() bool { return r.Err != nil || r.ExitCode != 0 }

// Report lists the steps that ran, in order.
type Report struct {
	Steps []StepResult
}

// Failures returns the failed steps.
func (r *Report) Failures() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Failed() {
			out = append(out, s)
		}
	}
	return out
}

// Plan returns the commands to run in dir, in order. The source package is
// only installed from the registry when it is published there.
func Plan(cfg session.Config, dir string) []Step {
	cmd := func(name string, args ...string) Command {
		return Command{Name: name, Args: args, Dir: dir}
	}

	// A mistyped or private repository makes git ask for credentials on the
	// terminal, which would block the run; fail the step instead.
	submodule := cmd("git", "submodule", "add", cfg.SourcePackageURL, SubmoduleDir)
	submodule.Env = map[string]string{"GIT_TERMINAL_PROMPT": "0"}

	steps := []Step{
		{Label: "Running", Subject: "npm install", Command: cmd("npm", "install")},
	}
	if cfg.IsPublishedOnRegistry && cfg.RegistryName != "" {
		steps = append(steps, Step{
			Label:   "Installing",
			Subject: cfg.RegistryName,
			Command: cmd("npm", "install", "-D", "--save-exact", cfg.RegistryName),
		})
	}
	steps = append(steps,
		Step{Label: "Running", Subject: "typings install", Command: cmd("typings", "install")},
		Step{Label: "Running", Subject: "npm run build", Command: cmd("npm", "run", "build")},
		Step{Label: "Initializing", Subject: "git repository", Command: cmd("git", "init")},
		Step{Label: "Downloading", Subject: cfg.SourceRepoRef, Command: submodule},
	)
	return steps
}

// Provisioner runs the plan for a session.
type Provisioner struct {
	Runner Runner
	Policy Policy
	Logger *zap.Logger
	// Out receives one progress line per step.
	Out io.Writer
}

// New returns a best-effort Provisioner using runner.
func New(runner Runner, out io.Writer, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{Runner: runner, Out: out, Logger: logger}
}

// Provision runs every step of the plan in order, each blocking until its
// process exits. Under BestEffort the returned error is only set when ctx is
// canceled; failures are left in the report.
func (p *Provisioner) Provision(ctx context.Context, cfg session.Config, dir string) (*Report, error) {
	report := &Report{}

	for _, step := range Plan(cfg, dir) {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if p.Out != nil {
			fmt.Fprintf(p.Out, "%s %s...\n", step.Label, ui.Green(step.Subject))
		}
		p.Logger.Debug("running command", zap.Stringer("command", step.Command), zap.String("dir", dir))

		outcome, err := p.Runner.Run(ctx, step.Command)
		res := StepResult{Command: step.Command, ExitCode: outcome.ExitCode, Err: err}
		report.Steps = append(report.Steps, res)

		if !res.Failed() {
			continue
		}

		p.Logger.Warn("command failed",
			zap.Stringer("command", step.Command),
			zap.Int("exit_code", res.ExitCode),
			zap.Error(err),
			zap.Stringer("policy", p.Policy))

		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		if p.Policy == FailFast {
			if err != nil {
				return report, fmt.Errorf("%s: %w", step.Command, err)
			}
			return report, fmt.Errorf("%s: exited with code %d", step.Command, res.ExitCode)
		}
	}
	return report, nil
}
