package chain

import "errors"

var (
	ErrGenesisMismatch  = errors.New("stored chain does not start at the network genesis")
	ErrBrokenLinkage    = errors.New("header does not extend the previous header")
	ErrTimeTooOld       = errors.New("header time is not after the median time past")
	ErrTimeTooNew       = errors.New("header time is too far in the future")
	ErrUnrequestedBlock = errors.New("block was not requested from this peer")
	ErrOutOfOrderBlock  = errors.New("block arrived out of request order")
	ErrDuplicateBlock   = errors.New("block height is already applied")
	ErrUnknownBlock     = errors.New("block is not in the header chain")
	ErrNilPeer          = errors.New("peer state is required")
)
