package volumemanager

import (
	"github.com/function61/flocker/pkg/branchid"
)

// the local identity: pool name (also used as the local owner name) and where the
// pool's datasets are mounted
type PoolRoot struct {
	Name      string
	MountRoot string
}

// pool is assumed to be mounted at /<pool>
func NewPoolRoot(pool string) (PoolRoot, error) {
	if err := branchid.ValidateToken("pool", pool); err != nil {
		return PoolRoot{}, err
	}

	return PoolRoot{
		Name:      pool,
		MountRoot: "/" + pool,
	}, nil
}

// for pools not mounted at the default location
func (p PoolRoot) WithMountRoot(mountRoot string) PoolRoot {
	p.MountRoot = mountRoot
	return p
}
