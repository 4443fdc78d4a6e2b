package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warehouse-system/internal/services/inventory"
	"warehouse-system/internal/services/user"
)

type InventoryHTTPHandler struct {
	queries     *inventory.QueryService
	adjustments *inventory.AdjustmentService
	logger      *zap.Logger
}

func NewInventoryHTTPHandler(queries *inventory.QueryService, adjustments *inventory.AdjustmentService, logger *zap.Logger) *InventoryHTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHTTPHandler{
		queries:     queries,
		adjustments: adjustments,
		logger:      logger,
	}
}

type ListProductsQuery struct {
	Query    string `form:"query"`
	Category string `form:"category"`
	Status   string `form:"status"`
	MinStock *int   `form:"minStock"`
	MaxStock *int   `form:"maxStock"`
}

type AdjustStockRequest struct {
	NewStock       *int                     `json:"newStock" binding:"required,min=0"`
	AdjustmentType inventory.AdjustmentType `json:"adjustmentType" binding:"required,oneof=increase decrease correction transfer_in transfer_out"`
	Reason         inventory.Reason         `json:"reason" binding:"required,oneof=received_shipment sold damaged lost returned inventory_count transfer other"`
	Notes          string                   `json:"notes" binding:"max=1000"`
}

// Register mounts the product routes on rg.
func (h *InventoryHTTPHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListProducts)
	rg.GET("/sku/:sku", h.GetProductBySKU)
	rg.GET("/:id", h.GetProduct)
	rg.PATCH("/:id/stock", h.AdjustStock)
	rg.GET("/:id/adjustments", h.ListAdjustments)
}

func (h *InventoryHTTPHandler) ListProducts(c *gin.Context) {
	var q ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, http.StatusBadRequest, "Bad Request", "Invalid query: "+err.Error())
		return
	}

	products := h.queries.Search(c.Request.Context(), inventory.SearchFilter{
		Text:     q.Query,
		Category: inventory.Category(q.Category),
		Status:   inventory.Status(q.Status),
		MinStock: q.MinStock,
		MaxStock: q.MaxStock,
	})
	success(c, products)
}

func (h *InventoryHTTPHandler) GetProduct(c *gin.Context) {
	product, err := h.queries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.error(c, err)
		return
	}
	success(c, product)
}

func (h *InventoryHTTPHandler) GetProductBySKU(c *gin.Context) {
	product, err := h.queries.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.error(c, err)
		return
	}
	success(c, product)
}

func (h *InventoryHTTPHandler) AdjustStock(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Bad Request", "Invalid request body: "+err.Error())
		return
	}

	adj, err := h.adjustments.AdjustStock(c.Request.Context(), inventory.StockAdjustmentInput{
		ProductID:      c.Param("id"),
		NewStock:       *req.NewStock,
		AdjustmentType: req.AdjustmentType,
		Reason:         req.Reason,
		Notes:          req.Notes,
	}, user.ActorFromContext(c.Request.Context()))
	if err != nil {
		h.error(c, err)
		return
	}
	success(c, adj)
}

func (h *InventoryHTTPHandler) ListAdjustments(c *gin.Context) {
	history, err := h.queries.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.error(c, err)
		return
	}
	success(c, history)
}

func (h *InventoryHTTPHandler) error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		fail(c, http.StatusNotFound, "Product not found", "")
	case errors.Is(err, inventory.ErrNegativeStock):
		fail(c, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		h.logger.Error("inventory request failed", zap.String("path", c.FullPath()), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
