package inventory

import (
	"context"
	"errors"
	"time"
)

type EventType string

const (
	EventStockAdjusted EventType = "stock_adjusted"
	EventLowStock      EventType = "low_stock"
	EventOutOfStock    EventType = "out_of_stock"
)

// StockEvent is emitted after an adjustment has been committed.
type StockEvent struct {
	Type           EventType  `json:"event_type"`
	ProductID      string     `json:"product_id"`
	ProductSKU     string     `json:"product_sku"`
	PreviousStock  int        `json:"previous_stock"`
	NewStock       int        `json:"new_stock"`
	PreviousStatus Status     `json:"previous_status"`
	Status         Status     `json:"status"`
	Adjustment     Adjustment `json:"adjustment"`
	Timestamp      time.Time  `json:"timestamp"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event StockEvent) error
}

// MultiPublisher fans an event out to every publisher and joins their errors.
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, event StockEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// eventsFor lists the events describing a committed change. Threshold events
// fire only when the status moves into low or out of stock.
func eventsFor(before, after Product, adj Adjustment) []StockEvent {
	base := StockEvent{
		ProductID:      after.ID,
		ProductSKU:     after.SKU,
		PreviousStock:  before.CurrentStock,
		NewStock:       after.CurrentStock,
		PreviousStatus: before.Status,
		Status:         after.Status,
		Adjustment:     adj,
		Timestamp:      adj.AdjustedAt,
	}

	adjusted := base
	adjusted.Type = EventStockAdjusted
	events := []StockEvent{adjusted}

	if before.Status == after.Status {
		return events
	}
	switch after.Status {
	case StatusLowStock:
		alert := base
		alert.Type = EventLowStock
		events = append(events, alert)
	case StatusOutOfStock:
		alert := base
		alert.Type = EventOutOfStock
		events = append(events, alert)
	}
	return events
}
