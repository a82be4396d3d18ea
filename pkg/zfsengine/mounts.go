package zfsengine

import (
	"github.com/prometheus/procfs"
)

// resolves where the pool's root dataset is actually mounted according to the
// kernel's mount table
func MountPointForPool(pool string) (string, bool, error) {
	procSelf, err := procfs.Self()
	if err != nil {
		return "", false, err
	}

	mounts, err := procSelf.MountStats()
	if err != nil {
		return "", false, err
	}

	mountPoint, found := mountPointForDevice(pool, mounts)
	return mountPoint, found, nil
}

// ZFS reports the dataset name as the mount's device
func mountPointForDevice(device string, mounts []*procfs.Mount) (string, bool) {
	for _, mount := range mounts {
		if mount.Type == "zfs" && mount.Device == device {
			return mount.Mount, true
		}
	}

	return "", false
}
