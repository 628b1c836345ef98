package clickhouse

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

var (
	ErrNotFound     = errors.New("utxo not found")
	ErrAlreadySpent = errors.New("utxo already spent")
	ErrNotSpent     = errors.New("utxo is not spent")
)

const findUTXOQuery = `
SELECT
	amount,
	pk_script,
	height,
	coinbase,
	block_spent,
	mempool_spent
FROM consensus_utxos FINAL
WHERE network = ? AND txid = CAST(? AS FixedString(64)) AND output_index = ?
LIMIT 1`

const insertUTXOsQuery = `
INSERT INTO consensus_utxos (
	network,
	txid,
	output_index,
	amount,
	pk_script,
	height,
	coinbase,
	block_spent,
	mempool_spent,
	version
) VALUES`

// Find returns the latest version of the output at outpoint.
func (r *Repository) Find(ctx context.Context, outpoint wire.OutPoint) (utxo model.UTXO, found bool, err error) {
	start := time.Now()
	defer func() {
		r.observe("find_utxo", err, start)
	}()

	return r.find(ctx, outpoint)
}

func (r *Repository) find(ctx context.Context, outpoint wire.OutPoint) (utxo model.UTXO, found bool, err error) {
	rows, err := r.conn.Query(ctx, findUTXOQuery, string(r.network), outpoint.Hash.String(), outpoint.Index)
	if err != nil {
		return model.UTXO{}, false, fmt.Errorf("query utxo: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.UTXO{}, false, fmt.Errorf("iterate utxo: %w", err)
		}
		return model.UTXO{}, false, nil
	}

	var pkScriptHex string
	utxo.OutPoint = outpoint
	if err = rows.Scan(
		&utxo.Amount,
		&pkScriptHex,
		&utxo.Height,
		&utxo.Coinbase,
		&utxo.BlockSpent,
		&utxo.MempoolSpent,
	); err != nil {
		return model.UTXO{}, false, fmt.Errorf("scan utxo: %w", err)
	}
	if utxo.PkScript, err = hex.DecodeString(pkScriptHex); err != nil {
		return model.UTXO{}, false, fmt.Errorf("decode pk script of %s: %w", outpoint, err)
	}
	return utxo, true, nil
}

// Add inserts new outputs or replaces existing ones.
func (r *Repository) Add(ctx context.Context, utxos ...model.UTXO) (err error) {
	start := time.Now()
	defer func() {
		r.observe("add_utxos", err, start)
	}()

	if len(utxos) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(ctx, utxos)
}

// MarkSpent sets the flag of kind. Setting a flag that is already set fails.
func (r *Repository) MarkSpent(ctx context.Context, outpoint wire.OutPoint, kind model.SpendKind) (err error) {
	start := time.Now()
	defer func() {
		r.observe("mark_spent", err, start)
	}()

	return r.setFlag(ctx, outpoint, kind, true)
}

// Undo clears the flag of kind. Clearing a flag that is not set fails.
func (r *Repository) Undo(ctx context.Context, outpoint wire.OutPoint, kind model.SpendKind) (err error) {
	start := time.Now()
	defer func() {
		r.observe("undo_spent", err, start)
	}()

	return r.setFlag(ctx, outpoint, kind, false)
}

func (r *Repository) setFlag(ctx context.Context, outpoint wire.OutPoint, kind model.SpendKind, spent bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	utxo, found, err := r.find(ctx, outpoint)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: %w", outpoint, ErrNotFound)
	}

	current := utxo.BlockSpent
	if kind == model.MempoolSpend {
		current = utxo.MempoolSpent
	}
	switch {
	case spent && utxo.SpentBy(kind):
		return fmt.Errorf("%s %s: %w", outpoint, kind, ErrAlreadySpent)
	case !spent && !current:
		return fmt.Errorf("%s %s: %w", outpoint, kind, ErrNotSpent)
	}

	utxo.SetSpent(kind, spent)
	return r.insertLocked(ctx, []model.UTXO{utxo})
}

func (r *Repository) insertLocked(ctx context.Context, utxos []model.UTXO) error {
	batch, err := r.conn.PrepareBatch(ctx, insertUTXOsQuery)
	if err != nil {
		return fmt.Errorf("prepare utxos batch: %w", err)
	}

	version := r.nextVersionLocked()
	for _, u := range utxos {
		if err := batch.Append(
			string(r.network),
			u.OutPoint.Hash.String(),
			u.OutPoint.Index,
			u.Amount,
			hex.EncodeToString(u.PkScript),
			u.Height,
			u.Coinbase,
			u.BlockSpent,
			u.MempoolSpent,
			version,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append utxo: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("insert utxos: %w", err)
	}
	return nil
}
