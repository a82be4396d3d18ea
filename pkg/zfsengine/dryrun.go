package zfsengine

import (
	"fmt"
	"io"
	"strings"
)

// DryRun writes the zfs commands to out instead of running them, so the caller's logic
// stays the same whether it really touches the pool or not. listing is read-only, so
// it is delegated to listing.
func DryRun(out io.Writer, listing Engine) Engine {
	return &dryRunEngine{out, listing}
}

type dryRunEngine struct {
	out     io.Writer
	listing Engine
}

func (d *dryRunEngine) Create(dataset string) error {
	return d.print(createArgs(dataset))
}

func (d *dryRunEngine) Snapshot(dataset string, tag string) error {
	return d.print(snapshotArgs(dataset, tag))
}

func (d *dryRunEngine) Clone(snapshot string, newDataset string) error {
	return d.print(cloneArgs(snapshot, newDataset))
}

func (d *dryRunEngine) ListChildren(mountRoot string) ([]string, error) {
	return d.listing.ListChildren(mountRoot)
}

func (d *dryRunEngine) print(args []string) error {
	_, err := fmt.Fprintf(d.out, "%s %s\n", DefaultBinary, strings.Join(args, " "))
	return err
}
