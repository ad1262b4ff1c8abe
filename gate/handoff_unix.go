//go:build unix

package gate

import (
	"os"
	"syscall"
)

var terminateSignal os.Signal = syscall.SIGTERM

var forwardedSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGHUP,
	syscall.SIGQUIT,
}

// exitStatus maps a finished process to a shell-style exit code:
// death by signal N is reported as 128+N.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
