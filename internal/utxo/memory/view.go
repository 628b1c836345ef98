// Package memory keeps a UTXO set in process memory.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

var (
	ErrNotFound     = errors.New("utxo not found")
	ErrAlreadySpent = errors.New("utxo already spent")
	ErrNotSpent     = errors.New("utxo is not spent")
)

// View is a concurrency-safe UTXO set.
type View struct {
	mu    sync.RWMutex
	utxos map[wire.OutPoint]*model.UTXO
}

func New() *View {
	return &View{utxos: make(map[wire.OutPoint]*model.UTXO)}
}

// Add inserts or replaces outputs.
func (v *View) Add(_ context.Context, utxos ...model.UTXO) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range utxos {
		u := utxos[i]
		v.utxos[u.OutPoint] = &u
	}
	return nil
}

func (v *View) Find(_ context.Context, outpoint wire.OutPoint) (model.UTXO, bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	u, ok := v.utxos[outpoint]
	if !ok {
		return model.UTXO{}, false, nil
	}
	return *u, true, nil
}

// MarkSpent sets the flag of kind. Setting a flag that is already set fails, so two
// concurrent spends of one output cannot both succeed.
func (v *View) MarkSpent(_ context.Context, outpoint wire.OutPoint, kind model.SpendKind) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	u, ok := v.utxos[outpoint]
	if !ok {
		return fmt.Errorf("%s: %w", outpoint, ErrNotFound)
	}
	if u.SpentBy(kind) {
		return fmt.Errorf("%s %s: %w", outpoint, kind, ErrAlreadySpent)
	}
	u.SetSpent(kind, true)
	return nil
}

func (v *View) Undo(_ context.Context, outpoint wire.OutPoint, kind model.SpendKind) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	u, ok := v.utxos[outpoint]
	if !ok {
		return fmt.Errorf("%s: %w", outpoint, ErrNotFound)
	}
	spent := u.BlockSpent
	if kind == model.MempoolSpend {
		spent = u.MempoolSpent
	}
	if !spent {
		return fmt.Errorf("%s %s: %w", outpoint, kind, ErrNotSpent)
	}
	u.SetSpent(kind, false)
	return nil
}

// Prune drops outputs spent by a confirmed block and returns how many were removed.
func (v *View) Prune() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	n := 0
	for op, u := range v.utxos {
		if u.BlockSpent {
			delete(v.utxos, op)
			n++
		}
	}
	return n
}

// Len returns the number of tracked outputs, spent or not.
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.utxos)
}
