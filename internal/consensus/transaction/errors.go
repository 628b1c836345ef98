package transaction

import "errors"

// Structural errors found without looking at any previous output.
var (
	ErrNoInputs             = errors.New("transaction has no inputs")
	ErrNoOutputs            = errors.New("transaction has no outputs")
	ErrOversize             = errors.New("transaction exceeds the maximum size")
	ErrOutputValue          = errors.New("transaction output value out of range")
	ErrOutputTotal          = errors.New("transaction output total out of range")
	ErrDuplicateInput       = errors.New("transaction spends the same output twice")
	ErrNullPrevOut          = errors.New("transaction input references the null outpoint")
	ErrCoinbaseScriptLength = errors.New("coinbase script length out of range")
	ErrUnexpectedCoinbase   = errors.New("coinbase transaction outside the first block position")
	ErrNotCoinbase          = errors.New("transaction is not a coinbase")
	ErrCoinbaseInputCount   = errors.New("coinbase must have exactly one input")
	ErrBadCoinbaseHeight    = errors.New("coinbase does not start with the block height")
	ErrNonFinal             = errors.New("transaction is not final")
)

// Errors found while resolving and authorizing inputs.
var (
	ErrMissingInput           = errors.New("transaction input references an unknown output")
	ErrInputValue             = errors.New("transaction input total out of range")
	ErrSpentInput             = errors.New("transaction input is already spent")
	ErrImmatureCoinbase       = errors.New("transaction spends an immature coinbase output")
	ErrSpendTooMuch           = errors.New("transaction is spending more than it can")
	ErrScriptFailed           = errors.New("script evaluated to false")
	ErrSigPushOnly            = errors.New("pay-to-script-hash signature script is not push only")
	ErrWitnessMalleated       = errors.New("native witness spend has a non-empty signature script")
	ErrWitnessMalleatedP2SH   = errors.New("nested witness spend signature script is not a single push")
	ErrWitnessUnexpected      = errors.New("witness data on a non-witness spend")
	ErrWitnessProgramEmpty    = errors.New("witness program spend without witness")
	ErrWitnessProgramMismatch = errors.New("witness does not match the witness program")
	ErrWitnessProgramLength   = errors.New("witness program has an invalid length")
	ErrFeeOverflow            = errors.New("accumulated fees overflow")
	ErrCoinbaseOverpay        = errors.New("coinbase pays more than the block reward and fees")
)
