package block

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

var witnessCommitmentHeader = []byte{0x6a, 0x24, 0xaa, 0x21, 0xa9, 0xed}

const witnessCommitmentSize = 38

// MerkleRoot folds hashes pairwise with double SHA-256, duplicating the last hash of odd
// levels. The second result reports a level holding two identical adjacent hashes, which
// lets a different transaction list produce the same root.
func MerkleRoot(hashes []chainhash.Hash) (chainhash.Hash, bool) {
	if len(hashes) == 0 {
		return chainhash.Hash{}, false
	}

	level := make([]chainhash.Hash, len(hashes))
	copy(level, hashes)
	mutated := false
	var buf [2 * chainhash.HashSize]byte
	for len(level) > 1 {
		for i := 0; i+1 < len(level); i += 2 {
			if level[i] == level[i+1] {
				mutated = true
			}
		}
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := level[:0]
		for i := 0; i < len(level); i += 2 {
			copy(buf[:chainhash.HashSize], level[i][:])
			copy(buf[chainhash.HashSize:], level[i+1][:])
			next = append(next, chainhash.DoubleHashH(buf[:]))
		}
		level = next
	}
	return level[0], mutated
}

// TxMerkleRoot returns the merkle root over transaction ids.
func TxMerkleRoot(txs []*wire.MsgTx) (chainhash.Hash, bool) {
	hashes := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		hashes[i] = tx.TxHash()
	}
	return MerkleRoot(hashes)
}

// WitnessMerkleRoot returns the merkle root over witness transaction ids, with the
// coinbase contributing the zero hash.
func WitnessMerkleRoot(txs []*wire.MsgTx) chainhash.Hash {
	hashes := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		if i == 0 {
			continue
		}
		hashes[i] = tx.WitnessHash()
	}
	root, _ := MerkleRoot(hashes)
	return root
}

// witnessCommitmentIndex returns the last coinbase output carrying a witness commitment,
// or -1.
func witnessCommitmentIndex(coinbase *wire.MsgTx) int {
	idx := -1
	for i, out := range coinbase.TxOut {
		if len(out.PkScript) >= witnessCommitmentSize && bytes.HasPrefix(out.PkScript, witnessCommitmentHeader) {
			idx = i
		}
	}
	return idx
}

// WitnessCommitmentScript builds the coinbase output script committing to txs with nonce.
func WitnessCommitmentScript(txs []*wire.MsgTx, nonce []byte) []byte {
	root := WitnessMerkleRoot(txs)
	commitment := chainhash.DoubleHashB(append(root[:], nonce...))
	return append(append([]byte{}, witnessCommitmentHeader...), commitment...)
}
