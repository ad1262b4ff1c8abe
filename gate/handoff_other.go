//go:build !unix

package gate

import "os"

var terminateSignal os.Signal = os.Kill

var forwardedSignals = []os.Signal{os.Interrupt}

func exitStatus(state *os.ProcessState) int {
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	return 1
}
