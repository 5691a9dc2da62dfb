package bootstrap

import (
	"fmt"
	"os/exec"

	"golang.org/x/sys/unix"
)

// execFunc is swapped out in tests.
var execFunc = unix.Exec

// Exec replaces the current process image with the given command, so the
// application inherits the process id and signal handling directly instead of
// running under a lingering wrapper. argv[0] is resolved through PATH.
func Exec(argv, environ []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command to execute")
	}

	argv0, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("resolve command %q: %w", argv[0], err)
	}

	return execFunc(argv0, argv, environ)
}
