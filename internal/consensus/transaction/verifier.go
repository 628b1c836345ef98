// Package transaction authorizes transactions against the outputs they spend and keeps
// the running sigop and fee totals of the block being verified.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/script"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/sigverify"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-consensus/pkg/safe"
	"go.uber.org/zap"
)

// Policy holds rules stricter than consensus that a node may choose to enforce.
type Policy struct {
	ForceLowS            bool
	StrictNumberEncoding bool
}

// Config wires a Verifier to its collaborators.
type Config struct {
	Params    *params.Params
	UTXOs     UTXOView
	Mempool   Mempool
	Signature script.SignatureVerifier
	Metrics   Metrics
	Policy    Policy
	// SpendKind selects which spent flag verification reads and sets.
	SpendKind model.SpendKind
}

// Result is what verifying one transaction contributes to the block totals.
type Result struct {
	TxHash     chainhash.Hash
	Fee        uint64
	SigOpCost  int64
	HasWitness bool
	Spent      []wire.OutPoint
	Cached     bool
}

// Verifier checks transactions at one height. The totals accumulate across calls until
// the next Reset, so one Verifier serves one block at a time.
type Verifier struct {
	cfg    Config
	logger *zap.Logger

	height         uint32
	lockTimeCutoff int64
	flags          params.Flags

	totalSigOpCost int64
	totalFee       uint64
	anySegWit      bool
}

// New returns a verifier positioned at height zero. A nil Signature falls back to an
// uncached secp256k1 verifier.
func New(cfg Config, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Signature == nil {
		cfg.Signature = sigverify.New()
	}
	v := &Verifier{cfg: cfg, logger: logger.Named("transaction")}
	v.Reset(0, 0)
	return v
}

// Reset positions the verifier at height with the given lock-time cutoff and clears the
// accumulated totals.
func (v *Verifier) Reset(height uint32, lockTimeCutoff int64) {
	v.height = height
	v.lockTimeCutoff = lockTimeCutoff
	v.flags = v.cfg.Params.Flags(height)
	v.totalSigOpCost = 0
	v.totalFee = 0
	v.anySegWit = false
}

func (v *Verifier) BlockHeight() uint32 { return v.height }

// TotalSigOpCost is the weighted sigop count accumulated since the last Reset.
func (v *Verifier) TotalSigOpCost() int64 { return v.totalSigOpCost }

// TotalFee is the fee sum accumulated since the last Reset.
func (v *Verifier) TotalFee() uint64 { return v.totalFee }

// AnySegWit reports whether any accumulated transaction carried witness data.
func (v *Verifier) AnySegWit() bool { return v.anySegWit }

// ScriptFlags translates the active soft forks and the policy into interpreter flags.
func (v *Verifier) ScriptFlags() script.VerifyFlags {
	return ScriptFlags(v.flags, v.cfg.Policy)
}

// ScriptFlags translates activation flags and policy into interpreter flags.
func ScriptFlags(f params.Flags, policy Policy) script.VerifyFlags {
	flags := script.VerifyNone
	if f.P2SH {
		flags |= script.VerifyP2SH
	}
	if f.StrictDER {
		flags |= script.VerifyStrictDER
	}
	if f.CLTV {
		flags |= script.VerifyCheckLockTime
	}
	if f.CSV {
		flags |= script.VerifyCheckSequence
	}
	if f.NullDummy {
		flags |= script.VerifyNullDummy
	}
	if f.SegWit {
		flags |= script.VerifyWitness
	}
	if policy.ForceLowS {
		flags |= script.VerifyLowS
	}
	if policy.StrictNumberEncoding {
		flags |= script.VerifyMinimalData
	}
	return flags
}

// VerifyCoinbasePrimary checks the coinbase shape and the BIP34 height commitment and adds
// the coinbase sigops to the running total.
func (v *Verifier) VerifyCoinbasePrimary(tx *wire.MsgTx) error {
	if len(tx.TxIn) != 1 {
		return fmt.Errorf("%d inputs: %w", len(tx.TxIn), ErrCoinbaseInputCount)
	}
	if !IsCoinbase(tx) {
		return ErrNotCoinbase
	}
	if err := CheckSanity(tx); err != nil {
		return err
	}
	if !IsFinal(tx, v.height, v.lockTimeCutoff) {
		return ErrNonFinal
	}
	if v.flags.BIP34 {
		if err := checkCoinbaseHeight(tx, v.height); err != nil {
			return err
		}
	}

	v.totalSigOpCost += legacySigOpCost(tx)
	if tx.HasWitness() {
		v.anySegWit = true
	}
	return nil
}

// VerifyCoinbaseOutput checks that the coinbase claims no more than the block reward plus
// the fees accumulated so far. It must run after every other transaction of the block.
func (v *Verifier) VerifyCoinbaseOutput(tx *wire.MsgTx) error {
	allowed, err := safe.AddUint64(v.cfg.Params.BlockReward(v.height), v.totalFee)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFeeOverflow, err)
	}
	var paid uint64
	for _, out := range tx.TxOut {
		paid, err = safe.AddUint64(paid, uint64(out.Value))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputTotal, err)
		}
	}
	if paid > allowed {
		return fmt.Errorf("pays %d, allowed %d: %w", paid, allowed, ErrCoinbaseOverpay)
	}
	return nil
}

// Verify authorizes a non-coinbase transaction against the configured view and adds its
// sigops and fee to the running totals.
func (v *Verifier) Verify(ctx context.Context, tx *wire.MsgTx) error {
	res, err := v.Check(ctx, v.cfg.UTXOs, tx)
	if err != nil {
		return err
	}
	return v.Accumulate(res)
}

// Accumulate adds a result produced by Check to the running totals.
func (v *Verifier) Accumulate(res Result) error {
	fee, err := safe.AddUint64(v.totalFee, res.Fee)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFeeOverflow, err)
	}
	v.totalFee = fee
	v.totalSigOpCost += res.SigOpCost
	if res.HasWitness {
		v.anySegWit = true
	}
	return nil
}

// Check authorizes every input of tx against view and marks the spent outputs, without
// touching the running totals. Transactions the mempool already validated skip script
// execution but not input resolution. Check only reads the verifier configuration, so independent transactions
// can be checked concurrently.
func (v *Verifier) Check(ctx context.Context, view UTXOView, tx *wire.MsgTx) (res Result, err error) {
	started := time.Now()
	res.TxHash = tx.TxHash()
	res.HasWitness = tx.HasWitness()
	defer func() {
		v.observeTransaction(res.Cached, err, started)
	}()

	if v.cfg.Mempool != nil {
		if entry, ok := v.cfg.Mempool.Lookup(res.TxHash); ok {
			// The entry vouches for the scripts only. The inputs must still be unspent in
			// view, which the mempool may lag behind.
			if !IsFinal(tx, v.height, v.lockTimeCutoff) {
				return res, ErrNonFinal
			}
			for idx, in := range tx.TxIn {
				if _, err := v.resolve(ctx, view, in.PreviousOutPoint); err != nil {
					return res, fmt.Errorf("input %d: %w", idx, err)
				}
			}
			res.Fee = entry.Fee
			res.SigOpCost = entry.SigOpCost
			res.Cached = true
			res.Spent, err = v.markSpent(ctx, view, tx)
			return res, err
		}
	}

	if err := CheckSanity(tx); err != nil {
		return res, err
	}
	if IsCoinbase(tx) {
		return res, ErrUnexpectedCoinbase
	}
	if !IsFinal(tx, v.height, v.lockTimeCutoff) {
		return res, ErrNonFinal
	}

	flags := v.ScriptFlags()
	sigHashes := script.NewSigHashCache(tx)
	res.SigOpCost = legacySigOpCost(tx)

	var totalIn uint64
	for idx, in := range tx.TxIn {
		prevOut, err := v.resolve(ctx, view, in.PreviousOutPoint)
		if err != nil {
			return res, fmt.Errorf("input %d: %w", idx, err)
		}
		if totalIn, err = safe.AddUint64(totalIn, prevOut.Amount); err != nil || totalIn > params.MaxSatoshi {
			return res, fmt.Errorf("input %d total %d: %w", idx, totalIn, ErrInputValue)
		}

		s := spend{
			tx:        tx,
			idx:       idx,
			prevOut:   &prevOut,
			flags:     flags,
			verifier:  v.cfg.Signature,
			sigHashes: sigHashes,
		}
		inputStarted := time.Now()
		cost, err := s.authorize()
		v.observeInput(prevOut.PkScript, flags, err, inputStarted)
		if err != nil {
			v.logger.Debug("input rejected",
				zap.Stringer("tx", res.TxHash),
				zap.Int("input", idx),
				zap.Error(err),
			)
			return res, fmt.Errorf("input %d: %w", idx, err)
		}
		res.SigOpCost += cost
	}

	var totalOut uint64
	for _, out := range tx.TxOut {
		totalOut += uint64(out.Value)
	}
	fee, err := safe.SubUint64(totalIn, totalOut)
	if err != nil {
		return res, fmt.Errorf("inputs %d outputs %d: %w", totalIn, totalOut, ErrSpendTooMuch)
	}
	res.Fee = fee

	res.Spent, err = v.markSpent(ctx, view, tx)
	return res, err
}

func (v *Verifier) resolve(ctx context.Context, view UTXOView, outpoint wire.OutPoint) (model.UTXO, error) {
	prevOut, found, err := view.Find(ctx, outpoint)
	if err != nil {
		return model.UTXO{}, fmt.Errorf("find %s: %w", outpoint, err)
	}
	if !found {
		return model.UTXO{}, fmt.Errorf("%s: %w", outpoint, ErrMissingInput)
	}
	if prevOut.SpentBy(v.cfg.SpendKind) {
		return model.UTXO{}, fmt.Errorf("%s: %w", outpoint, ErrSpentInput)
	}
	if prevOut.Coinbase && int64(v.height)-int64(prevOut.Height) < params.CoinbaseMaturity {
		return model.UTXO{}, fmt.Errorf("%s created at %d: %w", outpoint, prevOut.Height, ErrImmatureCoinbase)
	}
	return prevOut, nil
}

// markSpent flags every input as spent. Outputs already flagged are rolled back so a
// failed transaction leaves the view as it found it.
func (v *Verifier) markSpent(ctx context.Context, view UTXOView, tx *wire.MsgTx) ([]wire.OutPoint, error) {
	spent := make([]wire.OutPoint, 0, len(tx.TxIn))
	for _, in := range tx.TxIn {
		if err := view.MarkSpent(ctx, in.PreviousOutPoint, v.cfg.SpendKind); err != nil {
			for _, op := range spent {
				if undoErr := view.Undo(ctx, op, v.cfg.SpendKind); undoErr != nil {
					v.logger.Error("undo spent flag failed", zap.Stringer("outpoint", op), zap.Error(undoErr))
				}
			}
			return nil, fmt.Errorf("mark %s spent: %w", in.PreviousOutPoint, err)
		}
		spent = append(spent, in.PreviousOutPoint)
	}
	return spent, nil
}

// legacySigOpCost counts the raw sigops of every signature script and locking script of
// tx, scaled to weight units.
func legacySigOpCost(tx *wire.MsgTx) int64 {
	n := 0
	for _, in := range tx.TxIn {
		n += script.CountSigOps(in.SignatureScript)
	}
	for _, out := range tx.TxOut {
		n += script.CountSigOps(out.PkScript)
	}
	return int64(n) * params.WitnessScaleFactor
}

func (v *Verifier) observeInput(pkScript []byte, flags script.VerifyFlags, err error, started time.Time) {
	if v.cfg.Metrics == nil {
		return
	}
	v.cfg.Metrics.ObserveInput(script.ClassifySpecialType(pkScript, flags).String(), err, started)
}

func (v *Verifier) observeTransaction(cached bool, err error, started time.Time) {
	if v.cfg.Metrics == nil {
		return
	}
	v.cfg.Metrics.ObserveTransaction(cached, err, started)
}
