package handler

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"warehouse-system/internal/services/inventory"
	"warehouse-system/internal/services/user"
)

const ServiceName = "warehouse.inventory.v1.InventoryService"

const (
	MethodSearchProducts  = "/" + ServiceName + "/SearchProducts"
	MethodGetProduct      = "/" + ServiceName + "/GetProduct"
	MethodGetProductBySku = "/" + ServiceName + "/GetProductBySku"
	MethodAdjustStock     = "/" + ServiceName + "/AdjustStock"
	MethodListAdjustments = "/" + ServiceName + "/ListAdjustments"
)

// InventoryServer is the gRPC surface of the inventory service. Requests and
// responses are Struct messages carrying the REST field names.
type InventoryServer interface {
	SearchProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProductBySku(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AdjustStock(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAdjustments(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler(fullMethod string, call func(InventoryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InventoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(InventoryServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchProducts", Handler: unaryHandler(MethodSearchProducts, InventoryServer.SearchProducts)},
		{MethodName: "GetProduct", Handler: unaryHandler(MethodGetProduct, InventoryServer.GetProduct)},
		{MethodName: "GetProductBySku", Handler: unaryHandler(MethodGetProductBySku, InventoryServer.GetProductBySku)},
		{MethodName: "AdjustStock", Handler: unaryHandler(MethodAdjustStock, InventoryServer.AdjustStock)},
		{MethodName: "ListAdjustments", Handler: unaryHandler(MethodListAdjustments, InventoryServer.ListAdjustments)},
	},
	Streams: []grpc.StreamDesc{},
}

type InventoryHandler struct {
	queries     *inventory.QueryService
	adjustments *inventory.AdjustmentService
	logger      *zap.Logger
}

func NewInventoryHandler(queries *inventory.QueryService, adjustments *inventory.AdjustmentService, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{
		queries:     queries,
		adjustments: adjustments,
		logger:      logger,
	}
}

func (h *InventoryHandler) SearchProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	filter := inventory.SearchFilter{
		Text:     stringField(req, "query"),
		Category: inventory.Category(stringField(req, "category")),
		Status:   inventory.Status(stringField(req, "status")),
	}
	if n, ok, err := intField(req, "minStock"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if ok {
		filter.MinStock = &n
	}
	if n, ok, err := intField(req, "maxStock"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if ok {
		filter.MaxStock = &n
	}

	products := h.queries.Search(ctx, filter)
	return h.respond(map[string]interface{}{"products": products})
}

func (h *InventoryHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "id")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	product, err := h.queries.GetByID(ctx, id)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.respond(map[string]interface{}{"product": product})
}

func (h *InventoryHandler) GetProductBySku(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sku := stringField(req, "sku")
	if sku == "" {
		return nil, status.Error(codes.InvalidArgument, "sku required")
	}
	product, err := h.queries.GetBySKU(ctx, sku)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.respond(map[string]interface{}{"product": product})
}

func (h *InventoryHandler) AdjustStock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in := inventory.StockAdjustmentInput{
		ProductID:      stringField(req, "productId"),
		AdjustmentType: inventory.AdjustmentType(stringField(req, "adjustmentType")),
		Reason:         inventory.Reason(stringField(req, "reason")),
		Notes:          stringField(req, "notes"),
	}
	if in.ProductID == "" {
		return nil, status.Error(codes.InvalidArgument, "productId required")
	}
	newStock, ok, err := intField(req, "newStock")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "newStock required")
	}
	in.NewStock = newStock
	if !in.AdjustmentType.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown adjustmentType %q", in.AdjustmentType)
	}
	if !in.Reason.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown reason %q", in.Reason)
	}

	adj, err := h.adjustments.AdjustStock(ctx, in, user.ActorFromContext(ctx))
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.respond(map[string]interface{}{"adjustment": adj})
}

func (h *InventoryHandler) ListAdjustments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, "productId")
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "productId required")
	}
	history, err := h.queries.History(ctx, id)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return h.respond(map[string]interface{}{"adjustments": history})
}

func (h *InventoryHandler) respond(body map[string]interface{}) (*structpb.Struct, error) {
	s, err := ToStruct(body)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return s, nil
}

func (h *InventoryHandler) toStatus(err error) error {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, inventory.ErrNegativeStock):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		h.logger.Error("inventory call failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
