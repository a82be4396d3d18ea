package branchid

import (
	"fmt"
	"strings"
)

// a volume without a branch, "volume" or "owner/volume"
type VolumeRef struct {
	Owner  string
	Volume string
}

func ParseVolumeReference(ref string, defaultOwner string) (VolumeRef, error) {
	parts := strings.Split(ref, HierarchySeparator)

	var owner, volume string
	switch len(parts) {
	case 1:
		owner, volume = defaultOwner, parts[0]
	case 2:
		owner, volume = parts[0], parts[1]
	default:
		return VolumeRef{}, fmt.Errorf("%w: '%s'; expected volume or owner/volume", ErrInvalidReference, ref)
	}

	if err := ValidateToken("owner", owner); err != nil {
		return VolumeRef{}, err
	}
	if err := ValidateToken("volume", volume); err != nil {
		return VolumeRef{}, err
	}

	return VolumeRef{Owner: owner, Volume: volume}, nil
}

func (v VolumeRef) Contains(id ID) bool {
	return id.Owner == v.Owner && id.Volume == v.Volume
}
