package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerHistoryFor_MostRecentFirst(t *testing.T) {
	l := NewLedger()
	t1 := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)

	l.Append(Adjustment{ID: "a2", ProductID: "p1", AdjustedAt: t2})
	l.Append(Adjustment{ID: "a1", ProductID: "p1", AdjustedAt: t1})
	l.Append(Adjustment{ID: "other", ProductID: "p2", AdjustedAt: t3})
	l.Append(Adjustment{ID: "a3", ProductID: "p1", AdjustedAt: t3})

	history := l.HistoryFor("p1")

	require.Len(t, history, 3)
	assert.Equal(t, "a3", history[0].ID)
	assert.Equal(t, "a2", history[1].ID)
	assert.Equal(t, "a1", history[2].ID)
	assert.Equal(t, 4, l.Len())
}

func TestLedgerHistoryFor_TiesKeepInsertionOrder(t *testing.T) {
	l := NewLedger()
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	l.Append(Adjustment{ID: "first", ProductID: "p1", AdjustedAt: at})
	l.Append(Adjustment{ID: "second", ProductID: "p1", AdjustedAt: at})
	l.Append(Adjustment{ID: "third", ProductID: "p1", AdjustedAt: at})

	history := l.HistoryFor("p1")

	require.Len(t, history, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{history[0].ID, history[1].ID, history[2].ID})
}

func TestLedgerHistoryFor_Empty(t *testing.T) {
	l := NewLedger()

	history := l.HistoryFor("nothing")
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestLedgerHistoryFor_ReturnsCopies(t *testing.T) {
	l := NewLedger()
	l.Append(Adjustment{ID: "a1", ProductID: "p1", NewStock: 4})

	history := l.HistoryFor("p1")
	history[0].NewStock = 99

	assert.Equal(t, 4, l.HistoryFor("p1")[0].NewStock)
}
