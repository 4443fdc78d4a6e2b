package clients

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"warehouse-system/internal/services/inventory"
	"warehouse-system/internal/services/inventory/handler"
)

// InventoryClient calls the inventory gRPC service.
type InventoryClient struct {
	conn  *grpc.ClientConn
	token string
}

// NewInventoryClient connects to target without TLS. token is sent as a
// bearer credential on every call.
func NewInventoryClient(target, token string, opts ...grpc.DialOption) (*InventoryClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("inventory service connection failed: %w", err)
	}
	return &InventoryClient{conn: conn, token: token}, nil
}

func (c *InventoryClient) Close() error {
	return c.conn.Close()
}

func (c *InventoryClient) IsHealthy(ctx context.Context) bool {
	resp, err := grpc_health_v1.NewHealthClient(c.conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: handler.ServiceName})
	return err == nil && resp.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING
}

func (c *InventoryClient) invoke(ctx context.Context, method string, req interface{}, out interface{}) error {
	in, err := handler.ToStruct(req)
	if err != nil {
		return err
	}
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, resp); err != nil {
		return err
	}
	return handler.FromStruct(resp, out)
}

type SearchRequest struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty"`
	MinStock *int   `json:"minStock,omitempty"`
	MaxStock *int   `json:"maxStock,omitempty"`
}

func (c *InventoryClient) SearchProducts(ctx context.Context, req SearchRequest) ([]inventory.Product, error) {
	var out struct {
		Products []inventory.Product `json:"products"`
	}
	if err := c.invoke(ctx, handler.MethodSearchProducts, req, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *InventoryClient) GetProduct(ctx context.Context, id string) (inventory.Product, error) {
	var out struct {
		Product inventory.Product `json:"product"`
	}
	err := c.invoke(ctx, handler.MethodGetProduct, map[string]string{"id": id}, &out)
	return out.Product, err
}

func (c *InventoryClient) GetProductBySKU(ctx context.Context, sku string) (inventory.Product, error) {
	var out struct {
		Product inventory.Product `json:"product"`
	}
	err := c.invoke(ctx, handler.MethodGetProductBySku, map[string]string{"sku": sku}, &out)
	return out.Product, err
}

type AdjustStockRequest struct {
	ProductID      string                   `json:"productId"`
	NewStock       int                      `json:"newStock"`
	AdjustmentType inventory.AdjustmentType `json:"adjustmentType"`
	Reason         inventory.Reason         `json:"reason"`
	Notes          string                   `json:"notes,omitempty"`
}

func (c *InventoryClient) AdjustStock(ctx context.Context, req AdjustStockRequest) (inventory.Adjustment, error) {
	var out struct {
		Adjustment inventory.Adjustment `json:"adjustment"`
	}
	err := c.invoke(ctx, handler.MethodAdjustStock, req, &out)
	return out.Adjustment, err
}

func (c *InventoryClient) ListAdjustments(ctx context.Context, productID string) ([]inventory.Adjustment, error) {
	var out struct {
		Adjustments []inventory.Adjustment `json:"adjustments"`
	}
	if err := c.invoke(ctx, handler.MethodListAdjustments, map[string]string{"productId": productID}, &out); err != nil {
		return nil, err
	}
	return out.Adjustments, nil
}
