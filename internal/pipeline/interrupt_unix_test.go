//go:build unix

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/typings-labs/gentypings/internal/provision"
)

// interruptingRunner sends SIGINT to the test process during its first command
// and waits for the context to notice.
type interruptingRunner struct {
	ran []string
}

func (r *interruptingRunner) Run(ctx context.Context, cmd provision.Command) (provision.Outcome, error) {
	r.ran = append(r.ran, cmd.String())
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
		return provision.Outcome{ExitCode: -1}, err
	}
	select {
	case <-ctx.Done():
		return provision.Outcome{ExitCode: -1}, ctx.Err()
	case <-time.After(10 * time.Second):
		return provision.Outcome{ExitCode: -1}, errors.New("interrupt did not cancel the command")
	}
}

func TestInterruptCancelsProvisioning(t *testing.T) {
	runner := &interruptingRunner{}
	var out bytes.Buffer

	p := newTestPipeline(reactInput, nil, &out)
	p.Provisioner = provision.New(runner, &out, nil)
	p.Interrupt = []os.Signal{os.Interrupt}

	_, err := p.Run(context.Background(), t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if diff := cmp.Diff([]string{"npm install"}, runner.ran); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}
