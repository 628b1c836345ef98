package block

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/consensus/transaction"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

var (
	errOverlaySpent    = fmt.Errorf("spent earlier in this block: %w", transaction.ErrSpentInput)
	errOverlayNotSpent = errors.New("output not spent in this block")
)

type createdOutput struct {
	utxo     model.UTXO
	position int
}

// overlay stages the effect of one block on the UTXO set. Outputs created by the block
// are visible to later transactions only, and spends of existing outputs reach the base
// set on commit.
type overlay struct {
	base UTXOSet

	mu         sync.Mutex
	created    map[wire.OutPoint]*createdOutput
	spent      map[wire.OutPoint]struct{}
	spentOrder []wire.OutPoint
}

func newOverlay(base UTXOSet, txs []*wire.MsgTx, height uint32) *overlay {
	o := &overlay{
		base:    base,
		created: make(map[wire.OutPoint]*createdOutput),
		spent:   make(map[wire.OutPoint]struct{}),
	}
	for position, tx := range txs {
		for _, u := range model.OutputsOf(tx, height, position == 0) {
			o.created[u.OutPoint] = &createdOutput{utxo: u, position: position}
		}
	}
	return o
}

// at returns the view of the transaction at position.
func (o *overlay) at(position int) transaction.UTXOView {
	return &positionedView{overlay: o, position: position}
}

type positionedView struct {
	*overlay
	position int
}

func (v *positionedView) Find(ctx context.Context, outpoint wire.OutPoint) (model.UTXO, bool, error) {
	v.mu.Lock()
	if c, ok := v.created[outpoint]; ok {
		u, visible := c.utxo, c.position < v.position
		v.mu.Unlock()
		return u, visible, nil
	}
	_, spent := v.spent[outpoint]
	v.mu.Unlock()

	u, ok, err := v.base.Find(ctx, outpoint)
	if err != nil || !ok {
		return u, ok, err
	}
	if spent {
		u.BlockSpent = true
	}
	return u, true, nil
}

func (v *positionedView) MarkSpent(_ context.Context, outpoint wire.OutPoint, _ model.SpendKind) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if c, ok := v.created[outpoint]; ok {
		if c.utxo.BlockSpent {
			return fmt.Errorf("%s: %w", outpoint, errOverlaySpent)
		}
		c.utxo.BlockSpent = true
		return nil
	}
	if _, ok := v.spent[outpoint]; ok {
		return fmt.Errorf("%s: %w", outpoint, errOverlaySpent)
	}
	v.spent[outpoint] = struct{}{}
	v.spentOrder = append(v.spentOrder, outpoint)
	return nil
}

func (v *positionedView) Undo(_ context.Context, outpoint wire.OutPoint, _ model.SpendKind) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if c, ok := v.created[outpoint]; ok {
		if !c.utxo.BlockSpent {
			return fmt.Errorf("%s: %w", outpoint, errOverlayNotSpent)
		}
		c.utxo.BlockSpent = false
		return nil
	}
	if _, ok := v.spent[outpoint]; !ok {
		return fmt.Errorf("%s: %w", outpoint, errOverlayNotSpent)
	}
	delete(v.spent, outpoint)
	return nil
}

// commit flags the spent base outputs and adds the block outputs left unspent. A failure
// rolls back the flags already written.
func (o *overlay) commit(ctx context.Context, txs []*wire.MsgTx) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	marked := make([]wire.OutPoint, 0, len(o.spent))
	rollback := func() {
		for _, op := range marked {
			_ = o.base.Undo(ctx, op, model.BlockSpend)
		}
	}
	for _, op := range o.spentOrder {
		if _, ok := o.spent[op]; !ok {
			continue
		}
		if err := o.base.MarkSpent(ctx, op, model.BlockSpend); err != nil {
			rollback()
			return fmt.Errorf("%w: mark %s: %v", ErrCommit, op, err)
		}
		marked = append(marked, op)
	}

	var unspent []model.UTXO
	for _, tx := range txs {
		hash := tx.TxHash()
		for i := range tx.TxOut {
			c := o.created[wire.OutPoint{Hash: hash, Index: uint32(i)}]
			if c != nil && !c.utxo.BlockSpent {
				unspent = append(unspent, c.utxo)
			}
		}
	}
	if err := o.base.Add(ctx, unspent...); err != nil {
		rollback()
		return fmt.Errorf("%w: add outputs: %v", ErrCommit, err)
	}
	return nil
}
