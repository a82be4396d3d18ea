package zfsengine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEngineOperationFailed = errors.New("engine operation failed")
)

// a zfs invocation that did not exit cleanly. matches ErrEngineOperationFailed with errors.Is()
type CommandError struct {
	Args     []string // full argv, binary included
	ExitCode int      // -1 if the process did not get to exit (not found, killed etc.)
	Output   []string // last lines of combined stdout+stderr
	Err      error
}

func (c *CommandError) Error() string {
	return fmt.Sprintf(
		"%s failed: %s, exit code: %d, output: %s",
		strings.Join(c.Args, " "),
		c.Err.Error(),
		c.ExitCode,
		strings.Join(c.Output, "\n"))
}

func (c *CommandError) Is(target error) bool {
	return target == ErrEngineOperationFailed
}

func (c *CommandError) Unwrap() error {
	return c.Err
}
