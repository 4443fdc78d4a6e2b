package inventory

import (
	"sort"
	"sync"
)

// Ledger is the append-only store of adjustments. There is no way to update
// or remove a record once appended.
type Ledger struct {
	mu        sync.RWMutex
	entries   []Adjustment
	byProduct map[string][]int
}

func NewLedger() *Ledger {
	return &Ledger{
		byProduct: make(map[string][]int),
	}
}

func (l *Ledger) Append(a Adjustment) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, a)
	l.byProduct[a.ProductID] = append(l.byProduct[a.ProductID], len(l.entries)-1)
}

// HistoryFor returns a product's adjustments, most recent first. Records with
// the same AdjustedAt keep their insertion order.
func (l *Ledger) HistoryFor(productID string) []Adjustment {
	l.mu.RLock()
	positions := l.byProduct[productID]
	history := make([]Adjustment, len(positions))
	for i, pos := range positions {
		history[i] = l.entries[pos]
	}
	l.mu.RUnlock()

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].AdjustedAt.After(history[j].AdjustedAt)
	})
	return history
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
