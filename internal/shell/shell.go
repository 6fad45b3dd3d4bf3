// Package shell spawns a single command string through the host shell
// and surfaces its exit code, synchronously. It is the only component
// that touches os/exec: everything upstream just hands it a string.
package shell

import (
	"os"
	"os/exec"
	"runtime"
)

// Run spawns command through the platform shell ("/bin/sh -c" on Unix,
// "cmd /c" on Windows), waits for it, and returns its exit code. A
// negative code means the process could not be spawned at all (the
// caller should report the error alongside it).
func Run(command string) (exitCode int, err error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", command)
	} else {
		cmd = exec.Command("/bin/sh", "-c", command)
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr == nil {
		return 0, nil
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, runErr
}
