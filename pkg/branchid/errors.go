package branchid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// a reference string is malformed input as well, so this one also matches ErrMalformedIdentifier
	ErrInvalidReference  = fmt.Errorf("invalid reference: %w", ErrMalformedIdentifier)
	ErrCrossVolumeBranch = errors.New("can't create branches across volumes")
)
