package transaction

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/script"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

// spend is the authorization of one input against the output it consumes.
type spend struct {
	tx        *wire.MsgTx
	idx       int
	prevOut   *model.UTXO
	flags     script.VerifyFlags
	verifier  script.SignatureVerifier
	sigHashes *script.SigHashCache
}

func (s *spend) in() *wire.TxIn { return s.tx.TxIn[s.idx] }

func (s *spend) context(mode script.Mode) *script.VerifyContext {
	return &script.VerifyContext{
		Tx:         s.tx,
		InputIndex: s.idx,
		Amount:     int64(s.prevOut.Amount),
		Flags:      s.flags,
		Mode:       mode,
		Verifier:   s.verifier,
		SigHashes:  s.sigHashes,
	}
}

// authorize selects the spending path from the special type of the consumed output and
// runs it. It returns the weighted sigop cost the path adds beyond the legacy count.
func (s *spend) authorize() (int64, error) {
	pkScript := s.prevOut.PkScript
	in := s.in()

	switch script.ClassifySpecialType(pkScript, s.flags) {
	case script.P2SH:
		return s.payToScriptHash()
	case script.P2WPKH, script.P2WSH:
		if len(in.SignatureScript) != 0 {
			return 0, ErrWitnessMalleated
		}
		_, program, _ := script.WitnessProgram(pkScript)
		return s.witnessProgram(program)
	case script.FutureWitness:
		if len(in.SignatureScript) != 0 {
			return 0, ErrWitnessMalleated
		}
		return 0, nil
	default:
		if err := s.bare(); err != nil {
			return 0, err
		}
		return 0, s.requireNoWitness()
	}
}

// bare runs the unlocking and locking scripts on one shared stack.
func (s *spend) bare() error {
	stack := script.NewExecutionStack()
	vctx := s.context(script.Legacy)
	if _, err := script.Run(s.in().SignatureScript, stack, vctx); err != nil {
		return fmt.Errorf("signature script: %w", err)
	}
	ok, err := script.Run(s.prevOut.PkScript, stack, vctx)
	if err != nil {
		return fmt.Errorf("locking script: %w", err)
	}
	if !ok {
		return ErrScriptFailed
	}
	return nil
}

// payToScriptHash checks the redeem script hash through the locking script, then either
// runs the redeem script on what the signature script left below it or follows the
// witness program it wraps.
func (s *spend) payToScriptHash() (int64, error) {
	scriptSig := s.in().SignatureScript
	if !script.IsPushOnly(scriptSig) {
		return 0, ErrSigPushOnly
	}

	stack := script.NewExecutionStack()
	vctx := s.context(script.Legacy)
	if _, err := script.Run(scriptSig, stack, vctx); err != nil {
		return 0, fmt.Errorf("signature script: %w", err)
	}
	unlocked := stack.Items()
	ok, err := script.Run(s.prevOut.PkScript, stack, vctx)
	if err != nil {
		return 0, fmt.Errorf("locking script: %w", err)
	}
	if !ok {
		return 0, ErrScriptFailed
	}
	if len(unlocked) == 0 {
		return 0, ErrScriptFailed
	}

	redeem := unlocked[len(unlocked)-1]
	cost := int64(script.CountSigOpsAccurate(redeem)) * params.WitnessScaleFactor

	redeemFlags := s.flags &^ script.VerifyP2SH
	switch script.ClassifySpecialType(redeem, redeemFlags) {
	case script.P2WPKH, script.P2WSH:
		if !bytes.Equal(scriptSig, script.PushData(redeem)) {
			return 0, ErrWitnessMalleatedP2SH
		}
		_, program, _ := script.WitnessProgram(redeem)
		witnessCost, err := s.witnessProgram(program)
		return cost + witnessCost, err
	case script.FutureWitness:
		if !bytes.Equal(scriptSig, script.PushData(redeem)) {
			return 0, ErrWitnessMalleatedP2SH
		}
		return cost, nil
	}

	redeemStack := script.NewExecutionStack()
	for _, item := range unlocked[:len(unlocked)-1] {
		redeemStack.Push(item)
	}
	ok, err = script.Run(redeem, redeemStack, vctx)
	if err != nil {
		return 0, fmt.Errorf("redeem script: %w", err)
	}
	if !ok {
		return 0, ErrScriptFailed
	}
	return cost, s.requireNoWitness()
}

// witnessProgram verifies a version 0 program against the input witness.
func (s *spend) witnessProgram(program []byte) (int64, error) {
	witness := s.in().Witness
	vctx := s.context(script.WitnessV0)

	var (
		pkScript []byte
		items    [][]byte
		cost     int64
	)
	switch len(program) {
	case 20:
		if len(witness) != 2 {
			return 0, fmt.Errorf("%d items for a key hash program: %w", len(witness), ErrWitnessProgramMismatch)
		}
		pkScript = script.P2PKHScript(program)
		items = witness
		cost = 1
	case 32:
		if len(witness) == 0 {
			return 0, ErrWitnessProgramEmpty
		}
		pkScript = witness[len(witness)-1]
		hash := chainhash.HashB(pkScript)
		if !bytes.Equal(hash, program) {
			return 0, ErrWitnessProgramMismatch
		}
		items = witness[:len(witness)-1]
		cost = int64(script.CountSigOpsAccurate(pkScript))
	default:
		return 0, fmt.Errorf("%d bytes: %w", len(program), ErrWitnessProgramLength)
	}

	stack, err := script.NewWitnessStack(items)
	if err != nil {
		return 0, err
	}
	ok, err := script.Run(pkScript, stack, vctx)
	if err != nil {
		return 0, fmt.Errorf("witness script: %w", err)
	}
	if !ok {
		return 0, ErrScriptFailed
	}
	if stack.Len() != 1 {
		return 0, script.ErrCleanStack
	}
	return cost, nil
}

func (s *spend) requireNoWitness() error {
	if s.flags.Has(script.VerifyWitness) && len(s.in().Witness) != 0 {
		return ErrWitnessUnexpected
	}
	return nil
}
