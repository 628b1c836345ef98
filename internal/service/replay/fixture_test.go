package replay

import (
	"context"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/block"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/params"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/pow"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/script"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/store/memory"
	utxomemory "github.com/goodnatureofminers/blockinsight7000-consensus/internal/utxo/memory"
	"github.com/lightningnetwork/lnd/clock"
)

const blockSpacing = 10 * time.Minute

var regtest = params.MustForNetwork(params.RegTest)

// nodeSource serves a fixed best chain the way a node would over RPC.
type nodeSource struct {
	blocks  []*wire.MsgBlock // blocks[i] is at height i+1
	mempool []*wire.MsgTx
}

func (n *nodeSource) TipHeight(context.Context) (uint32, error) {
	return uint32(len(n.blocks)), nil
}

func (n *nodeSource) Headers(_ context.Context, from uint32, limit int) ([]wire.BlockHeader, error) {
	var out []wire.BlockHeader
	for h := from; h <= uint32(len(n.blocks)) && len(out) < limit; h++ {
		out = append(out, n.blocks[h-1].Header)
	}
	return out, nil
}

func (n *nodeSource) Blocks(_ context.Context, hashes []chainhash.Hash) ([]*wire.MsgBlock, error) {
	out := make([]*wire.MsgBlock, 0, len(hashes))
	for _, hash := range hashes {
		for _, blk := range n.blocks {
			if blk.BlockHash() == hash {
				out = append(out, blk)
			}
		}
	}
	return out, nil
}

func (n *nodeSource) MempoolTransactions(_ context.Context, known func(chainhash.Hash) bool, _ int) ([]*wire.MsgTx, error) {
	var out []*wire.MsgTx
	for _, tx := range n.mempool {
		if !known(tx.TxHash()) {
			out = append(out, tx)
		}
	}
	return out, nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveStage(string, error, int, time.Time) {}
func (nopMetrics) SetNodeHeight(uint32) {}

type chainFixture struct {
	chain  *chain.Chain
	blocks *memory.BlockStore
	utxos  *utxomemory.View
	clock  *clock.TestClock
}

// newChain builds a regtest chain on in-memory stores with the clock at now.
func newChain(t *testing.T, now time.Time) *chainFixture {
	t.Helper()

	f := &chainFixture{
		blocks: memory.NewBlockStore(),
		utxos:  utxomemory.New(),
		clock:  clock.NewTestClock(now),
	}
	c, err := chain.New(context.Background(), chain.Config{
		Params:   regtest,
		Headers:  memory.NewHeaderStore(),
		Blocks:   f.blocks,
		Verifier: block.New(block.Config{Params: regtest, UTXOs: f.utxos}, nil),
		Clock:    f.clock,
	}, nil)
	if err != nil {
		t.Fatalf("chain.New() error = %v", err)
	}
	f.chain = c
	return f
}

// mineChain builds n coinbase-only blocks on the regtest genesis.
func mineChain(t *testing.T, n int) []*wire.MsgBlock {
	t.Helper()

	out := make([]*wire.MsgBlock, 0, n)
	prev := regtest.GenesisBlock.Header
	for i := 0; i < n; i++ {
		height := uint32(i + 1)
		coinbase := wire.NewMsgTx(1)
		sigScript := append(script.PushNumber(int64(height)), script.OP_0, script.OP_0)
		coinbase.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: wire.MaxPrevOutIndex}, sigScript, nil))
		coinbase.AddTxOut(wire.NewTxOut(int64(regtest.BlockReward(height)), []byte{script.OP_TRUE}))

		prevHash := prev.BlockHash()
		root, _ := block.TxMerkleRoot([]*wire.MsgTx{coinbase})
		header := wire.NewBlockHeader(1, &prevHash, &root, regtest.PowLimitBits, 0)
		header.Timestamp = prev.Timestamp.Add(blockSpacing)
		mine(t, header)

		blk := wire.NewMsgBlock(header)
		_ = blk.AddTransaction(coinbase)
		out = append(out, blk)
		prev = blk.Header
	}
	return out
}

func mine(t *testing.T, header *wire.BlockHeader) {
	t.Helper()

	target := pow.CompactToBig(header.Bits)
	for nonce := uint32(0); nonce < 1_000; nonce++ {
		header.Nonce = nonce
		hash := header.BlockHash()
		if pow.HashToBig(&hash).Cmp(target) <= 0 {
			return
		}
	}
	t.Fatal("no suitable nonce found")
}

// tipTime is an hour past the last block, which keeps the chain recent.
func tipTime(blocks []*wire.MsgBlock) time.Time {
	return blocks[len(blocks)-1].Header.Timestamp.Add(time.Hour)
}

func noSleep(context.Context, time.Duration, <-chan struct{}) error { return nil }
