// Package memory keeps headers and blocks in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

// HeaderStore is an append-only header list.
type HeaderStore struct {
	mu      sync.RWMutex
	headers []wire.BlockHeader
}

func NewHeaderStore() *HeaderStore {
	return &HeaderStore{}
}

// ReadHeaders returns every stored header in height order.
func (s *HeaderStore) ReadHeaders(_ context.Context) ([]wire.BlockHeader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]wire.BlockHeader, len(s.headers))
	copy(out, s.headers)
	return out, nil
}

// AppendHeaders stores headers after the current last one.
func (s *HeaderStore) AppendHeaders(_ context.Context, headers ...wire.BlockHeader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.headers = append(s.headers, headers...)
	return nil
}

// BlockStore keeps applied blocks and their summaries by hash.
type BlockStore struct {
	mu     sync.RWMutex
	infos  map[chainhash.Hash]model.BlockInfo
	blocks map[chainhash.Hash]*wire.MsgBlock
}

func NewBlockStore() *BlockStore {
	return &BlockStore{
		infos:  make(map[chainhash.Hash]model.BlockInfo),
		blocks: make(map[chainhash.Hash]*wire.MsgBlock),
	}
}

func (s *BlockStore) ReadBlockInfo(_ context.Context, hash chainhash.Hash) (model.BlockInfo, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.infos[hash]
	return info, ok, nil
}

// ReadBlock returns the stored block with hash.
func (s *BlockStore) ReadBlock(_ context.Context, hash chainhash.Hash) (*wire.MsgBlock, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	block, ok := s.blocks[hash]
	return block, ok, nil
}

func (s *BlockStore) WriteBlock(_ context.Context, block *wire.MsgBlock, info model.BlockInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.infos[info.Hash] = info
	if block != nil {
		s.blocks[info.Hash] = block
	}
	return nil
}
