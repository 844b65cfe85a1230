// Package pipeline runs the generator end to end: collect answers, write the
// repository files, then run the install and git commands.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/typings-labs/gentypings/internal/collector"
	"github.com/typings-labs/gentypings/internal/provision"
	"github.com/typings-labs/gentypings/internal/scaffold"
	"github.com/typings-labs/gentypings/internal/session"
	"github.com/typings-labs/gentypings/internal/ui"
	"go.uber.org/zap"
)

// Pipeline holds the three phases. A nil Provisioner skips provisioning.
type Pipeline struct {
	Collector    *collector.Collector
	Materializer *scaffold.Materializer
	Provisioner  *provision.Provisioner
	Out          io.Writer
	Logger       *zap.Logger

	// Interrupt lists the signals that cancel provisioning instead of killing
	// the process. Outside provisioning the default handling applies, so
	// Ctrl-C at a prompt still exits immediately.
	Interrupt []os.Signal
}

// Summary is what a run produced.
type Summary struct {
	Config session.Config
	Files  *scaffold.Result
	Report *provision.Report // nil when provisioning was skipped
}

// Run executes the phases once, in order. A materializer failure stops the run
// before any command is executed; command failures follow the provisioner's
// policy.
func (p *Pipeline) Run(ctx context.Context, outputDir string) (*Summary, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p.greet()

	cfg, err := p.Collector.Collect()
	if err != nil {
		return nil, fmt.Errorf("collecting answers: %w", err)
	}
	logger.Debug("session collected",
		zap.String("source", cfg.SourceRepoRef),
		zap.Bool("published", cfg.IsPublishedOnRegistry),
		zap.Bool("ambient", cfg.IsAmbientDeclaration),
		zap.String("license", string(cfg.LicenseID)))

	summary := &Summary{Config: cfg}

	files, err := p.Materializer.Materialize(cfg, outputDir)
	summary.Files = files
	if files != nil {
		p.printFiles(files)
	}
	if err != nil {
		return summary, fmt.Errorf("writing files: %w", err)
	}

	if p.Provisioner != nil {
		pctx, stop := p.provisionContext(ctx)
		report, err := p.Provisioner.Provision(pctx, cfg, outputDir)
		stop()
		summary.Report = report
		if report != nil {
			p.printFailures(report)
		}
		if err != nil {
			return summary, fmt.Errorf("provisioning: %w", err)
		}
	}

	p.printHints()
	return summary, nil
}

// provisionContext cancels on the Interrupt signals until stop is called.
func (p *Pipeline) provisionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if len(p.Interrupt) == 0 {
		return ctx, func() {}
	}
	return signal.NotifyContext(ctx, p.Interrupt...)
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

func (p *Pipeline) greet() {
	fmt.Fprintln(p.out(), ui.Banner(fmt.Sprintf("Welcome to the sensational %s generator!", ui.Red("typings"))))
	fmt.Fprintln(p.out())
}

func (p *Pipeline) printFiles(res *scaffold.Result) {
	w := p.out()
	fmt.Fprintf(w, "\nCreated repository at %s/\n", res.OutputDir)
	for _, f := range res.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
	if len(res.Failures) > 0 {
		fmt.Fprintln(w, "\nFailed:")
		for _, f := range res.Failures {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	fmt.Fprintln(w)
}

func (p *Pipeline) printFailures(report *provision.Report) {
	failures := report.Failures()
	if len(failures) == 0 {
		return
	}
	w := p.out()
	fmt.Fprintln(w, "\nSome commands did not succeed:")
	for _, f := range failures {
		if f.Err != nil {
			fmt.Fprintf(w, "  - %s: %v\n", f.Command, f.Err)
			continue
		}
		fmt.Fprintf(w, "  - %s: exit code %d\n", f.Command, f.ExitCode)
	}
}

func (p *Pipeline) printHints() {
	w := p.out()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "I am done! Now it is your turn!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "If there are DefinitelyTyped support for the source,")
	fmt.Fprintf(w, " you can run %s to download the file\n", ui.Green("tsd install <source>"))
	fmt.Fprintln(w, " so you can easily access those code.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run %s to update the definition automatically, or\n", ui.Green("npm run watch"))
	fmt.Fprintf(w, "Run %s to update the definition manually, and\n", ui.Green("npm run build"))
	fmt.Fprintf(w, "Run %s to test your definition!\n", ui.Green("npm test"))
}
