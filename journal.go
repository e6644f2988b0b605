package taxlot

import (
	"errors"
	"sort"
)

// Journal is the ordered stream of upstream transactions feeding tax
// periods. It is an input container only: processing a journal never
// modifies it.
type Journal struct {
	transactions []Transaction
}

// NewJournal returns an empty journal.
func NewJournal() *Journal { return &Journal{} }

// Append adds transactions to the journal.
func (j *Journal) Append(txs ...Transaction) {
	j.transactions = append(j.transactions, txs...)
}

// Len returns the number of transactions in the journal.
func (j *Journal) Len() int { return len(j.transactions) }

// Transactions returns a copy of the journal's transactions in stable date
// order.
func (j *Journal) Transactions() []Transaction {
	j.stableSort()
	list := make([]Transaction, len(j.transactions))
	copy(list, j.transactions)
	return list
}

// stableSort orders transactions by date; same-day transactions keep their
// relative order.
func (j *Journal) stableSort() {
	sort.SliceStable(j.transactions, func(i, k int) bool {
		return j.transactions[i].On.Before(j.transactions[k].On)
	})
}

// Fmt validates every transaction, applies the available quick fixes, and
// returns a canonical copy of the journal sorted by date. Transactions that
// fail validation are kept out of the result and reported joined.
func (j *Journal) Fmt() (*Journal, error) {
	out := NewJournal()
	var errs []error
	for _, tx := range j.transactions {
		ntx, err := tx.Validate()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.Append(ntx)
	}
	out.stableSort()
	return out, errors.Join(errs...)
}
