package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/resto-ops/internal/api/handler/v1/request"
	"github.com/vietanh2810/resto-ops/internal/api/handler/v1/response"
	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/service"
)

type InventoryService interface {
	AdjustStock(ctx context.Context, productID uint, delta float64, reason, note string) (domain.Product, error)
	GetProductLog(ctx context.Context, productID uint) ([]domain.InventoryLogEntry, error)
	GetLog(ctx context.Context) ([]domain.InventoryLogEntry, error)
}

type InventoryHandler struct {
	svc InventoryService
}

func NewInventoryHandler(svc InventoryService) *InventoryHandler {
	return &InventoryHandler{
		svc: svc,
	}
}

// HandleAdjustStock godoc
// @Summary      Adjust stock
// @Description  Applies a manual stock correction (delivery, loss, recount) and logs it
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        input  body      request.AdjustStockRequest  true  "Adjustment details"
// @Success      200    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /inventory/adjustments [post]
func (h *InventoryHandler) HandleAdjustStock(ctx *gin.Context) {
	var input request.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := h.svc.AdjustStock(ctx.Request.Context(), input.ProductID, input.Delta, input.Reason, input.Note)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", input.ProductID))
			return
		}

		err = fmt.Errorf("HandleAdjustStock -> h.svc.AdjustStock -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleGetLog godoc
// @Summary      List inventory log
// @Description  Lists the append-only stock movement log
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   domain.InventoryLogEntry
// @Failure      500  {object}  response.Err
// @Router       /inventory/log [get]
func (h *InventoryHandler) HandleGetLog(ctx *gin.Context) {
	log, err := h.svc.GetLog(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetLog -> h.svc.GetLog -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, log)
}

// HandleGetProductLog godoc
// @Summary      List a product's inventory log
// @Description  Lists stock movements for one product
// @Tags         inventory
// @Produce      json
// @Param        productID  path      int  true  "Product ID"
// @Success      200        {array}   domain.InventoryLogEntry
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productID}/log [get]
func (h *InventoryHandler) HandleGetProductLog(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "productID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	log, err := h.svc.GetProductLog(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetProductLog -> h.svc.GetProductLog -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, log)
}
