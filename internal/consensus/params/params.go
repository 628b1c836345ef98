// Package params describes the height-gated consensus rules of a network.
package params

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	// MaxSigOpCost is the block-wide ceiling on weighted signature operations.
	MaxSigOpCost = 80_000
	// MaxBlockWeight is the block-wide weight ceiling.
	MaxBlockWeight = 4_000_000
	// WitnessScaleFactor converts base bytes and legacy sigops into weight units.
	WitnessScaleFactor = 4
	// MaxSatoshi is the total money supply expressed in satoshi.
	MaxSatoshi = btcutil.MaxSatoshi
	// CoinbaseMaturity is the number of confirmations a coinbase output needs before it can be spent.
	CoinbaseMaturity = 100
	// RetargetInterval is the number of blocks between difficulty adjustments.
	RetargetInterval = 2016
	// HalvingInterval is the number of blocks between subsidy halvings.
	HalvingInterval = 210_000
	// BaseReward is the subsidy of the first halving epoch.
	BaseReward uint64 = 50 * btcutil.SatoshiPerBitcoin

	noException int64 = -1
)

// Network identifies one of the supported chains.
type Network int

const (
	MainNet Network = iota
	TestNet
	RegTest
)

func (n Network) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	case RegTest:
		return "regtest"
	default:
		return fmt.Sprintf("network(%d)", int(n))
	}
}

// ParseNetwork maps a network name to a Network.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "main":
		return MainNet, nil
	case "testnet", "testnet3", "test":
		return TestNet, nil
	case "regtest", "regression":
		return RegTest, nil
	default:
		return 0, fmt.Errorf("unsupported network %q", name)
	}
}

// Params is the static rule table of a network. Every height-dependent answer is computed
// from the height passed by the caller.
type Params struct {
	Network Network

	BIP16ExceptionHeight int64
	BIP34Height          uint32
	BIP65Height          uint32
	BIP66Height          uint32
	CSVHeight            uint32
	SegWitHeight         uint32

	PowLimit             *big.Int
	PowLimitBits         uint32
	TargetTimespan       time.Duration
	TargetSpacing        time.Duration
	ReduceMinDifficulty  bool
	MinDiffReductionTime time.Duration
	NoRetargeting        bool

	GenesisBlock *wire.MsgBlock
	GenesisHash  chainhash.Hash
}

// Flags is the set of soft-fork rules active at one height.
type Flags struct {
	P2SH      bool
	BIP34     bool
	CLTV      bool
	StrictDER bool
	CSV       bool
	NullDummy bool
	SegWit    bool
}

// ForNetwork returns the rule table for the network.
func ForNetwork(network Network) (*Params, error) {
	switch network {
	case MainNet:
		return fromChain(network, &chaincfg.MainNetParams, activation{
			bip16Exception: 170_060,
			bip34:          227_931,
			bip65:          388_381,
			bip66:          363_725,
			csv:            419_328,
			segwit:         481_824,
		}), nil
	case TestNet:
		return fromChain(network, &chaincfg.TestNet3Params, activation{
			bip16Exception: 514,
			bip34:          21_111,
			bip65:          581_885,
			bip66:          330_776,
			csv:            770_112,
			segwit:         834_624,
		}), nil
	case RegTest:
		p := fromChain(network, &chaincfg.RegressionNetParams, activation{
			bip16Exception: noException,
			bip34:          500,
			bip65:          1_351,
			bip66:          1_251,
			csv:            432,
			segwit:         0,
		})
		p.NoRetargeting = true
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported network %s", network)
	}
}

// MustForNetwork is ForNetwork for statically known networks.
func MustForNetwork(network Network) *Params {
	p, err := ForNetwork(network)
	if err != nil {
		panic(err)
	}
	return p
}

type activation struct {
	bip16Exception int64
	bip34          uint32
	bip65          uint32
	bip66          uint32
	csv            uint32
	segwit         uint32
}

func fromChain(network Network, chain *chaincfg.Params, a activation) *Params {
	return &Params{
		Network:              network,
		BIP16ExceptionHeight: a.bip16Exception,
		BIP34Height:          a.bip34,
		BIP65Height:          a.bip65,
		BIP66Height:          a.bip66,
		CSVHeight:            a.csv,
		SegWitHeight:         a.segwit,
		PowLimit:             new(big.Int).Set(chain.PowLimit),
		PowLimitBits:         chain.PowLimitBits,
		TargetTimespan:       chain.TargetTimespan,
		TargetSpacing:        chain.TargetTimePerBlock,
		ReduceMinDifficulty:  chain.ReduceMinDifficulty,
		MinDiffReductionTime: chain.MinDiffReductionTime,
		GenesisBlock:         chain.GenesisBlock,
		GenesisHash:          *chain.GenesisHash,
	}
}

// IsBip16Enabled reports whether pay-to-script-hash is enforced. Exactly one historical
// block per public network violates the rule and is exempt.
func (p *Params) IsBip16Enabled(height uint32) bool {
	return int64(height) != p.BIP16ExceptionHeight
}

func (p *Params) IsBip34Enabled(height uint32) bool { return height >= p.BIP34Height }

func (p *Params) IsBip65Enabled(height uint32) bool { return height >= p.BIP65Height }

func (p *Params) IsBip66Enabled(height uint32) bool { return height >= p.BIP66Height }

func (p *Params) IsCSVEnabled(height uint32) bool { return height >= p.CSVHeight }

func (p *Params) IsSegWitEnabled(height uint32) bool { return height >= p.SegWitHeight }

// Flags evaluates every activation rule at height.
func (p *Params) Flags(height uint32) Flags {
	segwit := p.IsSegWitEnabled(height)
	return Flags{
		P2SH:      p.IsBip16Enabled(height),
		BIP34:     p.IsBip34Enabled(height),
		CLTV:      p.IsBip65Enabled(height),
		StrictDER: p.IsBip66Enabled(height),
		CSV:       p.IsCSVEnabled(height),
		NullDummy: segwit,
		SegWit:    segwit,
	}
}

// BlockReward returns the subsidy in satoshi for a block at height.
func (p *Params) BlockReward(height uint32) uint64 {
	return BlockReward(height)
}

// BlockReward halves BaseReward every HalvingInterval blocks and reaches zero once the
// shift covers the full integer width.
func BlockReward(height uint32) uint64 {
	halvings := height / HalvingInterval
	if halvings >= 64 {
		return 0
	}
	return BaseReward >> halvings
}

// MaxSigOpCount is the sigop cost ceiling of a block.
func (p *Params) MaxSigOpCount() int64 {
	return MaxSigOpCost
}

// RetargetTimespan is the expected duration of a retarget interval, in seconds.
func (p *Params) RetargetTimespan() int64 {
	return int64(p.TargetTimespan / time.Second)
}
