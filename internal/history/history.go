package history

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal"
)

// History is the ledger of recorded transactions keyed by reference.
type History struct {
	items map[string]Transaction
	order []string
}

// NewHistory creates an empty transaction ledger
func NewHistory() *History {
	return &History{
		items: make(map[string]Transaction),
	}
}

// Len returns the number of recorded transactions
func (h *History) Len() int {
	return len(h.items)
}

// Has reports whether reference is already recorded
func (h *History) Has(reference string) bool {
	_, ok := h.items[reference]
	return ok
}

// Add records a new transaction, failing when its reference is already taken
func (h *History) Add(t Transaction) (Transaction, error) {
	if h.Has(t.Reference) {
		return Transaction{}, internal.NewConflictError(
			fmt.Sprintf("Failed to add transaction. Transaction with reference %q already exists", t.Reference),
			internal.ErrCodeTransactionExists)
	}

	h.items[t.Reference] = t
	h.order = append(h.order, t.Reference)
	return t, nil
}

// Update replaces the stored transaction as long as none of its statement
// fields change.
func (h *History) Update(t Transaction) (Transaction, error) {
	current, ok := h.items[t.Reference]
	if !ok {
		return Transaction{}, transactionNotFound("update", t.Reference)
	}

	if fields := t.ChangedImmutableFields(current); len(fields) > 0 {
		return Transaction{}, internal.NewRejectedError(
			fmt.Sprintf("Failed to update transaction. The following immutable fields were going to be changed: %s", strings.Join(fields, " ")),
			internal.ErrCodeTransactionUpdateRejected).WithDetails(fields)
	}

	h.items[t.Reference] = t
	return t, nil
}

// Delete removes the transaction with reference and returns it
func (h *History) Delete(reference string) (Transaction, error) {
	t, ok := h.items[reference]
	if !ok {
		return Transaction{}, transactionNotFound("delete", reference)
	}

	delete(h.items, reference)
	for i, ref := range h.order {
		if ref == reference {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return t, nil
}

// Get retrieves a transaction by reference
func (h *History) Get(reference string) (Transaction, error) {
	t, ok := h.items[reference]
	if !ok {
		return Transaction{}, transactionNotFound("get", reference)
	}
	return t, nil
}

// GetUnreviewed returns the transactions that have no category yet
func (h *History) GetUnreviewed() []Transaction {
	return h.filter(func(t Transaction) bool { return !t.Reviewed() })
}

// GetByCategory matches the budget item name a transaction was assigned to.
func (h *History) GetByCategory(name string) []Transaction {
	return h.filter(func(t Transaction) bool { return t.Category == name })
}

// GetByMonth matches the Month field, which may differ from the month of Day.
func (h *History) GetByMonth(month int) []Transaction {
	return h.filter(func(t Transaction) bool { return t.Month == month })
}

// List returns every transaction in insertion order
func (h *History) List() []Transaction {
	return h.filter(func(Transaction) bool { return true })
}

func (h *History) filter(keep func(Transaction) bool) []Transaction {
	transactions := make([]Transaction, 0)
	for _, ref := range h.order {
		if t := h.items[ref]; keep(t) {
			transactions = append(transactions, t)
		}
	}
	return transactions
}

func transactionNotFound(operation, reference string) *internal.AppError {
	return internal.NewNotFoundError(
		fmt.Sprintf("Failed to %s transaction. Transaction with reference %q does not exist", operation, reference),
		internal.ErrCodeTransactionNotFound)
}
