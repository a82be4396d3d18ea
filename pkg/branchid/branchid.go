// Globally addressable branch identifiers and their mapping to flat ZFS dataset names
package branchid

import (
	"fmt"
	"strings"
)

const (
	FlatSeparator      = "." // joins owner, volume & branch inside a dataset name
	HierarchySeparator = "/" // pool/dataset and owner/volume/branch references
	SnapshotSeparator  = "@"

	Trunk = "trunk" // initial branch every volume is born with
)

// identifies a single branch. comparable with == and usable as map key.
// construct with New() so the tokens are known to be valid.
type ID struct {
	Owner  string
	Volume string
	Branch string
}

func New(owner string, volume string, branch string) (ID, error) {
	for _, field := range []struct {
		name  string
		token string
	}{
		{"owner", owner},
		{"volume", volume},
		{"branch", branch},
	} {
		if err := ValidateToken(field.name, field.token); err != nil {
			return ID{}, err
		}
	}

	return ID{Owner: owner, Volume: volume, Branch: branch}, nil
}

// tokens are byte-exact, so no trimming or case folding happens here
func ValidateToken(field string, token string) error {
	switch {
	case token == "":
		return fmt.Errorf("%w: %s is empty", ErrInvalidToken, field)
	case strings.Contains(token, FlatSeparator):
		return fmt.Errorf("%w: %s '%s' contains '%s'", ErrInvalidToken, field, token, FlatSeparator)
	case strings.Contains(token, HierarchySeparator):
		return fmt.Errorf("%w: %s '%s' contains '%s'", ErrInvalidToken, field, token, HierarchySeparator)
	default:
		return nil
	}
}

// name of the directory the dataset is mounted as, under the pool's mount root
func (id ID) DatasetSuffix() string {
	return strings.Join([]string{id.Owner, id.Volume, id.Branch}, FlatSeparator)
}

// long form reference "owner/volume/branch"
func (id ID) String() string {
	return strings.Join([]string{id.Owner, id.Volume, id.Branch}, HierarchySeparator)
}

// returns "<pool>/<owner>.<volume>.<branch>". does not validate: IDs from New() and
// pool names from volumemanager.NewPoolRoot() already are.
func EncodeFlatName(id ID, poolName string) string {
	return poolName + HierarchySeparator + id.DatasetSuffix()
}

// inverse of EncodeFlatName()
func DecodeFlatName(flatName string) (ID, error) {
	parts := strings.Split(flatName, HierarchySeparator)
	if len(parts) != 2 || parts[0] == "" {
		return ID{}, fmt.Errorf("%w: dataset name '%s' is not <pool>/<owner>.<volume>.<branch>", ErrMalformedIdentifier, flatName)
	}

	return DecodeSuffix(parts[1])
}

// decodes the pool-relative part of a dataset name (which also is how the dataset
// shows up in the pool's mount root)
func DecodeSuffix(suffix string) (ID, error) {
	if strings.Contains(suffix, HierarchySeparator) {
		return ID{}, fmt.Errorf("%w: '%s' contains a sub-path", ErrMalformedIdentifier, suffix)
	}

	tokens := strings.Split(suffix, FlatSeparator)
	if len(tokens) != 3 {
		return ID{}, fmt.Errorf("%w: '%s' has %d token(s); expected 3", ErrMalformedIdentifier, suffix, len(tokens))
	}

	for _, token := range tokens {
		if token == "" {
			return ID{}, fmt.Errorf("%w: '%s' has an empty token", ErrMalformedIdentifier, suffix)
		}
	}

	return ID{Owner: tokens[0], Volume: tokens[1], Branch: tokens[2]}, nil
}

// accepts "volume/branch" (owner defaults to defaultOwner) or "owner/volume/branch"
func ParseReference(ref string, defaultOwner string) (ID, error) {
	parts := strings.Split(ref, HierarchySeparator)

	switch len(parts) {
	case 2:
		return New(defaultOwner, parts[0], parts[1])
	case 3:
		return New(parts[0], parts[1], parts[2])
	default:
		return ID{}, fmt.Errorf("%w: '%s'; expected volume/branch or owner/volume/branch", ErrInvalidReference, ref)
	}
}

// short form "volume/branch" for our own branches, long form for everybody else's.
// inverse of ParseReference().
func FormatForDisplay(id ID, localOwner string) string {
	if id.Owner == localOwner {
		return id.Volume + HierarchySeparator + id.Branch
	}

	return id.String()
}

func SnapshotName(dataset string, tag string) string {
	return dataset + SnapshotSeparator + tag
}
