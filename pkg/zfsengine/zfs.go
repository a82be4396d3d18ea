package zfsengine

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/function61/gokit/logex"
)

// drives the engine by running the zfs CLI. a nil logger is fine.
func Zfs(binary string, logger *log.Logger) Engine {
	if binary == "" {
		binary = DefaultBinary
	}

	if logger == nil {
		logger = logex.Discard
	}

	return &zfsEngine{binary, logex.Levels(logger)}
}

type zfsEngine struct {
	binary string
	log    *logex.Leveled
}

func (z *zfsEngine) Create(dataset string) error {
	return z.run(createArgs(dataset))
}

func (z *zfsEngine) Snapshot(dataset string, tag string) error {
	return z.run(snapshotArgs(dataset, tag))
}

func (z *zfsEngine) Clone(snapshot string, newDataset string) error {
	return z.run(cloneArgs(snapshot, newDataset))
}

func (z *zfsEngine) ListChildren(mountRoot string) ([]string, error) {
	return ListMountRoot(mountRoot)
}

func (z *zfsEngine) run(args []string) error {
	argv := append([]string{z.binary}, args...)

	z.log.Debug.Printf("running %s", strings.Join(argv, " "))

	tail := newOutputTail(outputTailLines)

	output := newLineSplitter(func(line string) {
		z.log.Debug.Printf("%s: %s", args[0], line)
		tail.Write(line)
	})

	//nolint:gosec // arguments are dataset names, not shell
	cmd := exec.Command(z.binary, args...)
	cmd.Stdout = output
	cmd.Stderr = output

	err := cmd.Run()
	output.Flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		return &CommandError{
			Args:     argv,
			ExitCode: exitCode,
			Output:   tail.Lines(),
			Err:      err,
		}
	}

	return nil
}

// every mounted dataset of a pool shows up as a directory directly under the pool's
// mount root, so listing datasets is just listing that directory. names are returned
// in the order the filesystem gives them (unsorted).
func ListMountRoot(mountRoot string) ([]string, error) {
	dir, err := os.Open(mountRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: listing mount root: %w", ErrEngineOperationFailed, err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: listing mount root: %w", ErrEngineOperationFailed, err)
	}

	return names, nil
}
