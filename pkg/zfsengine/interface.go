// Synchronous facade over the ZFS primitives the volume manager needs
package zfsengine

import (
	"github.com/function61/flocker/pkg/branchid"
)

const (
	DefaultBinary = "zfs"
)

// all operations block until the engine finishes. there is no locking: the engine owns
// the consistency of its namespace.
type Engine interface {
	// creates an empty writable dataset. the engine mounts it under the pool's mount
	// root as a directory named by the dataset's pool-relative suffix.
	Create(dataset string) error
	// creates read-only "<dataset>@<tag>"
	Snapshot(dataset string, tag string) error
	// creates a writable copy-on-write dataset from a snapshot
	Clone(snapshot string, newDataset string) error
	// immediate entries of the pool's mount root, in directory listing order
	ListChildren(mountRoot string) ([]string, error)
}

// argv (minus the binary) for each mutating primitive. shared by the real driver and dry-run
func createArgs(dataset string) []string {
	return []string{"create", dataset}
}

func snapshotArgs(dataset string, tag string) []string {
	return []string{"snapshot", branchid.SnapshotName(dataset, tag)}
}

func cloneArgs(snapshot string, newDataset string) []string {
	return []string{"clone", snapshot, newDataset}
}
