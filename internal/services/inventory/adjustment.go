package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "warehouse-system/inventory"

// keyedMutex hands out one mutex per key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// AdjustmentService applies stock changes and records them in the ledger.
type AdjustmentService struct {
	catalog   *Catalog
	ledger    *Ledger
	locks     keyedMutex
	publisher EventPublisher
	logger    *zap.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

type Option func(*AdjustmentService)

func WithPublisher(p EventPublisher) Option {
	return func(s *AdjustmentService) { s.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *AdjustmentService) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *AdjustmentService) { s.now = now }
}

func NewAdjustmentService(catalog *Catalog, ledger *Ledger, opts ...Option) *AdjustmentService {
	s := &AdjustmentService{
		catalog: catalog,
		ledger:  ledger,
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AdjustStock sets a product's stock to in.NewStock and appends the audit
// record. Adjustments of the same product are serialized, and their events are
// published in ledger order. An empty actor is recorded as UnknownActor.
func (s *AdjustmentService) AdjustStock(ctx context.Context, in StockAdjustmentInput, actor string) (Adjustment, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.adjust_stock",
		trace.WithAttributes(
			attribute.String("product.id", in.ProductID),
			attribute.Int("stock.new", in.NewStock),
			attribute.String("adjustment.type", string(in.AdjustmentType)),
			attribute.String("adjustment.reason", string(in.Reason)),
		),
	)
	defer span.End()

	if in.NewStock < 0 {
		span.SetStatus(codes.Error, ErrNegativeStock.Error())
		return Adjustment{}, fmt.Errorf("adjust product %s to %d: %w", in.ProductID, in.NewStock, ErrNegativeStock)
	}
	if actor == "" {
		actor = UnknownActor
	}

	// Products are never removed, so only known ids get a lock entry.
	if _, err := s.catalog.FindByID(in.ProductID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Adjustment{}, err
	}

	unlock := s.locks.lock(in.ProductID)
	defer unlock()

	adj, before, after, err := s.apply(in, actor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Adjustment{}, err
	}

	span.SetAttributes(
		attribute.String("adjustment.id", adj.ID),
		attribute.Int("stock.previous", adj.PreviousStock),
	)
	s.logger.Info("stock adjusted",
		zap.String("adjustment_id", adj.ID),
		zap.String("product_id", adj.ProductID),
		zap.String("sku", adj.ProductSKU),
		zap.Int("previous_stock", adj.PreviousStock),
		zap.Int("new_stock", adj.NewStock),
		zap.String("type", string(adj.AdjustmentType)),
		zap.String("reason", string(adj.Reason)),
		zap.String("adjusted_by", adj.AdjustedBy),
	)

	s.publish(ctx, eventsFor(before, after, adj))

	return adj, nil
}

// apply must be called with the product's lock held.
func (s *AdjustmentService) apply(in StockAdjustmentInput, actor string) (Adjustment, Product, Product, error) {
	before, err := s.catalog.FindByID(in.ProductID)
	if err != nil {
		return Adjustment{}, Product{}, Product{}, err
	}

	adj := Adjustment{
		ID:             uuid.NewString(),
		ProductID:      before.ID,
		ProductSKU:     before.SKU,
		ProductName:    before.Name,
		PreviousStock:  before.CurrentStock,
		NewStock:       in.NewStock,
		AdjustmentType: in.AdjustmentType,
		Reason:         in.Reason,
		Notes:          in.Notes,
		AdjustedBy:     actor,
		AdjustedAt:     s.now(),
	}

	after, err := s.catalog.ApplyStockChange(in.ProductID, in.NewStock, adj.AdjustedAt)
	if err != nil {
		return Adjustment{}, Product{}, Product{}, err
	}
	s.ledger.Append(adj)

	return adj, before, after, nil
}

func (s *AdjustmentService) publish(ctx context.Context, events []StockEvent) {
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish stock event",
				zap.String("event", string(event.Type)),
				zap.String("product_id", event.ProductID),
				zap.Error(err),
			)
		}
	}
}
