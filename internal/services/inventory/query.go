package inventory

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// QueryService is the read side over the catalog and the ledger. Nothing is
// cached; every call reads live state.
type QueryService struct {
	catalog *Catalog
	ledger  *Ledger
	tracer  trace.Tracer
}

func NewQueryService(catalog *Catalog, ledger *Ledger) *QueryService {
	return &QueryService{
		catalog: catalog,
		ledger:  ledger,
		tracer:  otel.Tracer(tracerName),
	}
}

func (q *QueryService) Search(ctx context.Context, filter SearchFilter) []Product {
	_, span := q.tracer.Start(ctx, "inventory.search")
	defer span.End()

	results := q.catalog.Search(filter)
	span.SetAttributes(attribute.Int("result.count", len(results)))
	return results
}

func (q *QueryService) GetByID(ctx context.Context, id string) (Product, error) {
	_, span := q.tracer.Start(ctx, "inventory.get_by_id", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	return q.catalog.FindByID(id)
}

func (q *QueryService) GetBySKU(ctx context.Context, sku string) (Product, error) {
	_, span := q.tracer.Start(ctx, "inventory.get_by_sku", trace.WithAttributes(attribute.String("product.sku", sku)))
	defer span.End()

	return q.catalog.FindBySKU(sku)
}

// History returns the adjustments of a product, most recent first. An id
// unknown to both the catalog and the ledger is ErrNotFound.
func (q *QueryService) History(ctx context.Context, productID string) ([]Adjustment, error) {
	_, span := q.tracer.Start(ctx, "inventory.history", trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	history := q.ledger.HistoryFor(productID)
	if len(history) > 0 {
		return history, nil
	}
	if _, err := q.catalog.FindByID(productID); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return history, nil
}
