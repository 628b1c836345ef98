// Package block validates headers and full blocks on top of the transaction verifier.
package block

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/pow"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/script"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/transaction"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-consensus/pkg/workerpool"
	"go.uber.org/zap"
)

// Config wires a Verifier to its collaborators.
type Config struct {
	Params    *params.Params
	UTXOs     UTXOSet
	Mempool   transaction.Mempool
	Signature script.SignatureVerifier
	Policy    transaction.Policy
	// Workers above one checks the non-coinbase transactions of a block concurrently.
	Workers int

	Metrics            Metrics
	TransactionMetrics transaction.Metrics
}

// ChainContext is what the caller knows about the chain the block extends.
type ChainContext struct {
	TipHeight uint32
	TipHash   chainhash.Hash
	// Height is the height the block claims; it must be TipHeight+1.
	Height       uint32
	ExpectedBits uint32
	// MedianTimePast of the previous eleven blocks, the lock-time cutoff once CSV is active.
	MedianTimePast time.Time
}

// Result summarizes an applied block.
type Result struct {
	Hash      chainhash.Hash
	Height    uint32
	TxCount   int
	Fee       uint64
	SigOpCost int64
	Weight    int64
}

// Verifier validates blocks that extend the tip by exactly one.
type Verifier struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Verifier{cfg: cfg, logger: logger.Named("block")}
}

// VerifyHeader checks that the header commits to the expected target and that its hash
// meets it.
func (v *Verifier) VerifyHeader(header *wire.BlockHeader, expectedBits uint32) error {
	if header.Bits != expectedBits {
		return fmt.Errorf("bits %08x, expected %08x: %w", header.Bits, expectedBits, ErrBadBits)
	}
	hash := header.BlockHash()
	return pow.CheckProofOfWork(&hash, header.Bits, v.cfg.Params.PowLimit)
}

// Verify validates block as the successor of the tip described by chain and, on success,
// commits its spends and outputs to the UTXO set. Nothing is committed on failure.
func (v *Verifier) Verify(ctx context.Context, block *wire.MsgBlock, chain ChainContext) (res Result, err error) {
	started := time.Now()
	res.Hash = block.BlockHash()
	res.Height = chain.Height
	res.TxCount = len(block.Transactions)
	defer func() {
		if v.cfg.Metrics != nil {
			v.cfg.Metrics.ObserveBlock(err, res.TxCount, started)
		}
		if err != nil {
			v.logger.Warn("block rejected",
				zap.Stringer("hash", res.Hash),
				zap.Uint32("height", res.Height),
				zap.Error(err),
			)
		}
	}()

	if chain.Height != chain.TipHeight+1 || block.Header.PrevBlock != chain.TipHash {
		return res, fmt.Errorf("height %d on tip %d %s: %w", chain.Height, chain.TipHeight, chain.TipHash, ErrNotNextBlock)
	}
	if err := v.VerifyHeader(&block.Header, chain.ExpectedBits); err != nil {
		return res, err
	}
	txs := block.Transactions
	if len(txs) == 0 {
		return res, ErrNoTransactions
	}
	if !transaction.IsCoinbase(txs[0]) {
		return res, ErrFirstTxNotCoinbase
	}
	for i, tx := range txs[1:] {
		if transaction.IsCoinbase(tx) {
			return res, fmt.Errorf("transaction %d: %w", i+1, ErrMultipleCoinbases)
		}
	}
	res.Weight = Weight(block)
	if res.Weight > params.MaxBlockWeight {
		return res, fmt.Errorf("weight %d: %w", res.Weight, ErrBlockWeight)
	}

	flags := v.cfg.Params.Flags(chain.Height)
	cutoff := block.Header.Timestamp.Unix()
	if flags.CSV {
		cutoff = chain.MedianTimePast.Unix()
	}

	staged := newOverlay(v.cfg.UTXOs, txs, chain.Height)
	txv := transaction.New(transaction.Config{
		Params:    v.cfg.Params,
		UTXOs:     staged.at(len(txs)),
		Mempool:   v.cfg.Mempool,
		Signature: v.cfg.Signature,
		Metrics:   v.cfg.TransactionMetrics,
		Policy:    v.cfg.Policy,
		SpendKind: model.BlockSpend,
	}, v.logger)
	txv.Reset(chain.Height, cutoff)

	if err := txv.VerifyCoinbasePrimary(txs[0]); err != nil {
		return res, fmt.Errorf("coinbase: %w", err)
	}
	if err := v.checkSigOps(txv); err != nil {
		return res, err
	}
	if err := v.verifyTransactions(ctx, txv, staged, txs); err != nil {
		return res, err
	}
	if err := txv.VerifyCoinbaseOutput(txs[0]); err != nil {
		return res, fmt.Errorf("coinbase: %w", err)
	}
	if err := checkWitnessCommitment(txs, flags.SegWit); err != nil {
		return res, err
	}

	root, mutated := TxMerkleRoot(txs)
	if mutated {
		return res, ErrMutatedMerkle
	}
	if root != block.Header.MerkleRoot {
		return res, fmt.Errorf("computed %s, header %s: %w", root, block.Header.MerkleRoot, ErrBadMerkleRoot)
	}

	if err := staged.commit(ctx, txs); err != nil {
		return res, err
	}
	res.Fee = txv.TotalFee()
	res.SigOpCost = txv.TotalSigOpCost()
	return res, nil
}

func (v *Verifier) checkSigOps(txv *transaction.Verifier) error {
	if cost := txv.TotalSigOpCost(); cost > v.cfg.Params.MaxSigOpCount() {
		return fmt.Errorf("cost %d: %w", cost, ErrTooManySigOps)
	}
	return nil
}

// verifyTransactions checks every non-coinbase transaction in block order. With more than
// one worker the script checks run concurrently and the results are merged in order.
func (v *Verifier) verifyTransactions(ctx context.Context, txv *transaction.Verifier, staged *overlay, txs []*wire.MsgTx) error {
	if v.cfg.Workers <= 1 || len(txs) <= 2 {
		for i := 1; i < len(txs); i++ {
			res, err := txv.Check(ctx, staged.at(i), txs[i])
			if err != nil {
				return fmt.Errorf("transaction %d %s: %w", i, res.TxHash, err)
			}
			if err := v.accumulate(txv, res); err != nil {
				return err
			}
		}
		return nil
	}

	results := make([]transaction.Result, len(txs))
	positions := make([]int, 0, len(txs)-1)
	for i := 1; i < len(txs); i++ {
		positions = append(positions, i)
	}
	err := workerpool.Process(ctx, v.cfg.Workers, positions, func(ctx context.Context, i int) error {
		res, err := txv.Check(ctx, staged.at(i), txs[i])
		if err != nil {
			return fmt.Errorf("transaction %d %s: %w", i, res.TxHash, err)
		}
		results[i] = res
		return nil
	}, nil)
	if err != nil {
		return err
	}
	for _, res := range results[1:] {
		if err := v.accumulate(txv, res); err != nil {
			return err
		}
	}
	return nil
}

func (v *Verifier) accumulate(txv *transaction.Verifier, res transaction.Result) error {
	if err := txv.Accumulate(res); err != nil {
		return fmt.Errorf("transaction %s: %w", res.TxHash, err)
	}
	return v.checkSigOps(txv)
}

// checkWitnessCommitment enforces that witness data is only present when the coinbase
// commits to it, and that the commitment matches.
func checkWitnessCommitment(txs []*wire.MsgTx, segwit bool) error {
	coinbase := txs[0]
	idx := -1
	if segwit {
		idx = witnessCommitmentIndex(coinbase)
	}
	if idx < 0 {
		for i, tx := range txs {
			if tx.HasWitness() {
				return fmt.Errorf("transaction %d: %w", i, ErrUnexpectedWitness)
			}
		}
		return nil
	}

	witness := coinbase.TxIn[0].Witness
	if len(witness) != 1 || len(witness[0]) != chainhash.HashSize {
		return ErrBadWitnessNonce
	}
	want := coinbase.TxOut[idx].PkScript[len(witnessCommitmentHeader):witnessCommitmentSize]
	got := WitnessCommitmentScript(txs, witness[0])[len(witnessCommitmentHeader):]
	if !bytes.Equal(got, want) {
		return ErrWitnessCommitmentMismatch
	}
	return nil
}

// Weight is the block weight: stripped size times three plus the full size.
func Weight(block *wire.MsgBlock) int64 {
	stripped := int64(block.SerializeSizeStripped())
	total := int64(block.SerializeSize())
	return stripped*(params.WitnessScaleFactor-1) + total
}
