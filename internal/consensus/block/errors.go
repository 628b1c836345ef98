package block

import "errors"

var (
	ErrNotNextBlock              = errors.New("block does not extend the current tip")
	ErrBadBits                   = errors.New("block target differs from the expected target")
	ErrNoTransactions            = errors.New("block has no transactions")
	ErrFirstTxNotCoinbase        = errors.New("first transaction is not a coinbase")
	ErrMultipleCoinbases         = errors.New("block has more than one coinbase")
	ErrBlockWeight               = errors.New("block weight exceeds the limit")
	ErrTooManySigOps             = errors.New("block sigop cost exceeds the limit")
	ErrBadMerkleRoot             = errors.New("merkle root does not match the transactions")
	ErrMutatedMerkle             = errors.New("merkle tree contains duplicated transactions")
	ErrUnexpectedWitness         = errors.New("block carries witness data without a commitment")
	ErrBadWitnessNonce           = errors.New("coinbase witness nonce is malformed")
	ErrWitnessCommitmentMismatch = errors.New("witness commitment does not match the witness merkle root")
	ErrCommit                    = errors.New("commit verified block to the utxo set")
)
