package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
)

// Runner executes the target command once the gate has passed.
type Runner interface {
	// Run starts argv, waits for it and returns its exit status. A non-nil
	// error means the command could not be started.
	Run(ctx context.Context, argv []string) (int, error)
}

// ExecRunner runs the command as a child process with the gate's standard
// streams and environment, forwarding termination signals to it.
type ExecRunner struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Env     []string    // nil inherits the current environment
	Forward []os.Signal // nil forwards the platform default set, empty forwards none
}

// NewExecRunner returns a runner wired to the current process's streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run implements Runner. Cancelling ctx sends the child a termination signal.
func (r *ExecRunner) Run(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 || argv[0] == "" {
		return ExitNotFound, &HandoffError{Code: ExitNotFound, Err: ErrNoCommand}
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		code := ExitCannotExecute
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			code = ExitNotFound
			err = fmt.Errorf("%w: %v", ErrCommandNotFound, err)
		}
		return code, &HandoffError{Command: argv[0], Code: code, Err: err}
	}

	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	cmd.Args[0] = argv[0]
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = r.Env
	cmd.Cancel = func() error {
		return cmd.Process.Signal(terminateSignal)
	}

	signals := r.Forward
	if signals == nil {
		signals = forwardedSignals
	}
	sigCh := make(chan os.Signal, 1)
	if len(signals) > 0 {
		signal.Notify(sigCh, signals...)
		defer signal.Stop(sigCh)
	}

	if err := cmd.Start(); err != nil {
		return ExitCannotExecute, &HandoffError{Command: argv[0], Code: ExitCannotExecute, Err: err}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case sig := <-sigCh:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err = cmd.Wait()
	if cmd.ProcessState == nil {
		return 1, fmt.Errorf("waiting for %q: %w", argv[0], err)
	}
	return exitStatus(cmd.ProcessState), nil
}
