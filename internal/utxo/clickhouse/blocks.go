package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

const insertBlocksQuery = `
INSERT INTO consensus_blocks (
	network,
	height,
	hash,
	prev_hash,
	timestamp,
	bits,
	tx_count,
	fee,
	sigop_cost,
	weight,
	status,
	reason,
	verified_at
) VALUES`

// InsertBlocks records verification outcomes.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.BlockInfo) (err error) {
	start := time.Now()
	defer func() {
		r.observe("insert_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, b := range blocks {
		if err = batch.Append(
			string(r.network),
			b.Height,
			b.Hash.String(),
			b.PrevHash.String(),
			b.Timestamp,
			b.Bits,
			b.TxCount,
			b.Fee,
			b.SigOpCost,
			b.Weight,
			string(b.Status),
			b.Reason,
			b.VerifiedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

// MaxVerifiedHeight returns the highest height recorded as verified.
func (r *Repository) MaxVerifiedHeight(ctx context.Context) (height uint32, found bool, err error) {
	start := time.Now()
	defer func() {
		r.observe("max_verified_height", err, start)
	}()

	const query = `
SELECT max(height), count()
FROM consensus_blocks
WHERE network = ? AND status = ?`

	rows, err := r.conn.Query(ctx, query, string(r.network), string(model.BlockVerified))
	if err != nil {
		return 0, false, fmt.Errorf("query max verified height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, false, fmt.Errorf("max verified height not found")
	}
	var count uint64
	if err = rows.Scan(&height, &count); err != nil {
		return 0, false, fmt.Errorf("scan max verified height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max verified height: %w", err)
	}
	return height, count > 0, nil
}
