// Volumes & branches on top of ZFS datasets
package volumemanager

import (
	"fmt"
	"strings"

	"github.com/function61/flocker/pkg/branchid"
	"github.com/function61/flocker/pkg/zfsengine"
	"github.com/samber/lo"
)

// not safe for concurrent use against the same pool
type Manager struct {
	root   PoolRoot
	engine zfsengine.Engine
}

func New(root PoolRoot, engine zfsengine.Engine) *Manager {
	return &Manager{
		root:   root,
		engine: engine,
	}
}

// the pool name is re-used as name for this instance
func (m *Manager) LocalOwner() string {
	return m.root.Name
}

func (m *Manager) Root() PoolRoot {
	return m.root
}

// creates the volume's trunk branch. an already-existing volume is for the engine to reject.
func (m *Manager) CreateVolume(volumeName string) error {
	trunk, err := branchid.New(m.LocalOwner(), volumeName, branchid.Trunk)
	if err != nil {
		return err
	}

	return m.engine.Create(m.datasetName(trunk))
}

// display-formatted (see branchid.FormatForDisplay()) branches of all volumes
func (m *Manager) ListVolumes() ([]string, error) {
	branches, err := m.Branches()
	if err != nil {
		return nil, err
	}

	return lo.Map(branches, func(branch branchid.ID, _ int) string {
		return branchid.FormatForDisplay(branch, m.LocalOwner())
	}), nil
}

// branches of a single volume, display-formatted
func (m *Manager) ListBranches(volume branchid.VolumeRef) ([]string, error) {
	branches, err := m.Branches()
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(branches, func(branch branchid.ID, _ int) (string, bool) {
		return branchid.FormatForDisplay(branch, m.LocalOwner()), volume.Contains(branch)
	}), nil
}

// all managed branches visible under the mount root, in listing order
func (m *Manager) Branches() ([]branchid.ID, error) {
	children, err := m.engine.ListChildren(m.root.MountRoot)
	if err != nil {
		return nil, err
	}

	branches := []branchid.ID{}

	for _, child := range children {
		if !strings.Contains(child, branchid.FlatSeparator) {
			// some junk, not something we're managing
			continue
		}

		branch, err := branchid.DecodeSuffix(child)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.root.MountRoot, err)
		}

		branches = append(branches, branch)
	}

	return branches, nil
}

// snapshots fromBranch and clones the snapshot as newBranch. if cloning fails the
// snapshot is left behind for an operator to remove.
func (m *Manager) BranchOffBranch(newBranch branchid.ID, fromBranch branchid.ID) error {
	if newBranch.Volume != fromBranch.Volume {
		return fmt.Errorf("%w: %s from %s", branchid.ErrCrossVolumeBranch, newBranch, fromBranch)
	}

	fromDataset := m.datasetName(fromBranch)
	snapshotTag := newBranch.Branch

	if err := m.engine.Snapshot(fromDataset, snapshotTag); err != nil {
		return err
	}

	return m.engine.Clone(branchid.SnapshotName(fromDataset, snapshotTag), m.datasetName(newBranch))
}

// "volume/branch" refers to our own volumes
func (m *Manager) ParseReference(ref string) (branchid.ID, error) {
	return branchid.ParseReference(ref, m.LocalOwner())
}

func (m *Manager) ParseVolumeReference(ref string) (branchid.VolumeRef, error) {
	return branchid.ParseVolumeReference(ref, m.LocalOwner())
}

func (m *Manager) datasetName(branch branchid.ID) string {
	return branchid.EncodeFlatName(branch, m.root.Name)
}
