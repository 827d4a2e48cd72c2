package accounts

import (
	"context"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
	"github.com/neoyoli49-wq/mybudgetny/internal/log"
)

// AddTransaction records an income or expense for the logged-in account,
// dated now with a fresh unique ID, and returns the stored entry.
func (m *Manager) AddTransaction(ctx context.Context, amount core.Money, typ core.TransactionType, category string) (core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Current()
	if acc == nil {
		return core.Transaction{}, ErrSessionExpired
	}

	tx := core.NewTransaction(amount, typ, category)
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	acc.Transactions = append(acc.Transactions, tx)
	m.persist(ctx, log.OpAddTx)

	m.logger.InfoContext(ctx, "Transaction recorded",
		log.FieldEmail, acc.Email,
		log.FieldTxID, tx.ID,
		log.FieldTxType, string(tx.Type),
		log.FieldCategory, tx.Category,
		log.FieldCents, tx.Amount.Cents)
	return tx, nil
}

// DeleteTransaction removes the entry with the given id from the logged-in
// account's list.
func (m *Manager) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Current()
	if acc == nil {
		return ErrSessionExpired
	}

	for i, tx := range acc.Transactions {
		if tx.ID == id {
			acc.Transactions = append(acc.Transactions[:i], acc.Transactions[i+1:]...)
			m.persist(ctx, log.OpDeleteTx)
			m.logger.InfoContext(ctx, "Transaction deleted",
				log.FieldEmail, acc.Email, log.FieldTxID, id)
			return nil
		}
	}
	return ErrNotFound
}

// Transactions returns a copy of the logged-in account's transaction list in
// entry order.
func (m *Manager) Transactions() ([]core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Current()
	if acc == nil {
		return nil, ErrSessionExpired
	}

	out := make([]core.Transaction, len(acc.Transactions))
	copy(out, acc.Transactions)
	return out, nil
}
