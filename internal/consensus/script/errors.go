package script

import "errors"

// Decode errors.
var (
	ErrEndOfStream             = errors.New("script: push data runs past the end of the script")
	ErrScriptOverflow          = errors.New("script: script exceeds the maximum size")
	ErrOpCountOverflow         = errors.New("script: too many non-push operations")
	ErrInvalidOp               = errors.New("script: invalid opcode")
	ErrDisabledOp              = errors.New("script: disabled opcode")
	ErrMissingOpEndIf          = errors.New("script: conditional without matching OP_ENDIF")
	ErrUnbalancedConditional   = errors.New("script: OP_ELSE or OP_ENDIF without OP_IF")
	ErrOpCheckMultiSigTaproot  = errors.New("script: OP_CHECKMULTISIG is not allowed in tapscript")
	ErrOpCheckSigAddPreTaproot = errors.New("script: OP_CHECKSIGADD is only allowed in tapscript")
	ErrPushSize                = errors.New("script: push exceeds the maximum element size")
	ErrWitnessCountOverflow    = errors.New("script: witness has too many items")
)

// Execution errors.
var (
	ErrUndefinedOp          = errors.New("script: undefined opcode executed")
	ErrEarlyReturn          = errors.New("script: OP_RETURN executed")
	ErrVerify               = errors.New("script: verify operation failed")
	ErrEqualVerify          = errors.New("script: OP_EQUALVERIFY failed")
	ErrNumEqualVerify       = errors.New("script: OP_NUMEQUALVERIFY failed")
	ErrCheckSigVerify       = errors.New("script: OP_CHECKSIGVERIFY failed")
	ErrCheckMultiSigVerify  = errors.New("script: OP_CHECKMULTISIGVERIFY failed")
	ErrInvalidStackOp       = errors.New("script: not enough items on the stack")
	ErrInvalidAltStackOp    = errors.New("script: not enough items on the alternate stack")
	ErrStackOverflow        = errors.New("script: stack size limit exceeded")
	ErrNumberTooBig         = errors.New("script: numeric operand too long")
	ErrMinimalData          = errors.New("script: non-minimal data encoding")
	ErrPubKeyCount          = errors.New("script: invalid public key count")
	ErrSigCount             = errors.New("script: invalid signature count")
	ErrSigNullDummy         = errors.New("script: OP_CHECKMULTISIG dummy argument is not empty")
	ErrSigDER               = errors.New("script: signature is not strictly DER encoded")
	ErrSigHighS             = errors.New("script: signature S value is not low")
	ErrNegativeLockTime     = errors.New("script: negative lock time")
	ErrUnsatisfiedLockTime  = errors.New("script: lock time requirement not satisfied")
	ErrNoTransaction        = errors.New("script: signature check without a transaction")
	ErrNoSignatureVerifier  = errors.New("script: signature check without a signature verifier")
	ErrUnsupportedTapscript = errors.New("script: tapscript signature operations are not supported")
	ErrEvalFalse            = errors.New("script: evaluated to false")
	ErrCleanStack           = errors.New("script: stack is not clean after execution")
)
