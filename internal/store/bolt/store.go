// Package bolt persists headers and applied blocks in a bbolt file.
package bolt

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
	bbolt "go.etcd.io/bbolt"
)

var (
	bucketHeaders = []byte("headers_by_height")
	bucketInfos   = []byte("block_info_by_hash")
	bucketBlocks  = []byte("blocks_by_hash")
)

// Store keeps the header chain keyed by height and applied blocks keyed by hash.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("bolt path is required")
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketHeaders, bucketInfos, bucketBlocks} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ReadHeaders returns every stored header in height order.
func (s *Store) ReadHeaders(ctx context.Context) ([]wire.BlockHeader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var headers []wire.BlockHeader
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketHeaders).ForEach(func(k, v []byte) error {
			height := binary.BigEndian.Uint32(k)
			if int(height) != len(headers) {
				return fmt.Errorf("header gap at height %d", len(headers))
			}
			var h wire.BlockHeader
			if err := h.Deserialize(bytes.NewReader(v)); err != nil {
				return fmt.Errorf("decode header %d: %w", height, err)
			}
			headers = append(headers, h)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return headers, nil
}

// AppendHeaders stores headers after the current last one in a single transaction.
func (s *Store) AppendHeaders(ctx context.Context, headers ...wire.BlockHeader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(headers) == 0 {
		return nil
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketHeaders)
		next := uint32(0)
		if k, _ := b.Cursor().Last(); k != nil {
			next = binary.BigEndian.Uint32(k) + 1
		}

		for i := range headers {
			var buf bytes.Buffer
			buf.Grow(wire.MaxBlockHeaderPayload)
			if err := headers[i].Serialize(&buf); err != nil {
				return fmt.Errorf("encode header: %w", err)
			}
			if err := b.Put(heightKey(next), buf.Bytes()); err != nil {
				return fmt.Errorf("put header %d: %w", next, err)
			}
			next++
		}
		return nil
	})
}

func (s *Store) ReadBlockInfo(ctx context.Context, hash chainhash.Hash) (model.BlockInfo, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.BlockInfo{}, false, err
	}

	var (
		info  model.BlockInfo
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketInfos).Get(hash[:])
		if v == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(v, &info); err != nil {
			return fmt.Errorf("decode block info %s: %w", hash, err)
		}
		return nil
	})
	if err != nil {
		return model.BlockInfo{}, false, err
	}
	return info, found, nil
}

// ReadBlock returns the stored block with hash.
func (s *Store) ReadBlock(ctx context.Context, hash chainhash.Hash) (*wire.MsgBlock, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var blk *wire.MsgBlock
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketBlocks).Get(hash[:])
		if v == nil {
			return nil
		}
		blk = new(wire.MsgBlock)
		if err := blk.Deserialize(bytes.NewReader(v)); err != nil {
			return fmt.Errorf("decode block %s: %w", hash, err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return blk, blk != nil, nil
}

// WriteBlock stores the block summary and, when blk is not nil, the raw block.
func (s *Store) WriteBlock(ctx context.Context, blk *wire.MsgBlock, info model.BlockInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encodedInfo, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode block info: %w", err)
	}
	var raw bytes.Buffer
	if blk != nil {
		raw.Grow(blk.SerializeSize())
		if err := blk.Serialize(&raw); err != nil {
			return fmt.Errorf("encode block: %w", err)
		}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketInfos).Put(info.Hash[:], encodedInfo); err != nil {
			return fmt.Errorf("put block info: %w", err)
		}
		if blk == nil {
			return nil
		}
		if err := tx.Bucket(bucketBlocks).Put(info.Hash[:], raw.Bytes()); err != nil {
			return fmt.Errorf("put block: %w", err)
		}
		return nil
	})
}

func heightKey(height uint32) []byte {
	var k [4]byte
	binary.BigEndian.PutUint32(k[:], height)
	return k[:]
}
