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

type OrderService interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, id uint) (domain.Order, error)
	GetOrders(ctx context.Context) ([]domain.Order, error)
	GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status domain.OrderStatus) (domain.Order, error)
}

// StockService is the slice of the stock ledger the order endpoints need:
// every order-item mutation moves product quantities with it.
type StockService interface {
	AddOrderItem(ctx context.Context, orderID, productID uint, quantity float64, price *float64, note string) (domain.OrderItem, error)
	UpdateOrderItem(ctx context.Context, itemID uint, changes domain.OrderItemChanges) (domain.OrderItem, error)
	RemoveOrderItem(ctx context.Context, itemID uint) error
	RemoveOrder(ctx context.Context, orderID uint) error
}

type OrderHandler struct {
	svc   OrderService
	stock StockService
}

func NewOrderHandler(svc OrderService, stock StockService) *OrderHandler {
	return &OrderHandler{
		svc:   svc,
		stock: stock,
	}
}

// HandleCreateOrder godoc
// @Summary      Create an order
// @Description  Opens an empty order for a table
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateOrderRequest  true  "Order details"
// @Success      201    {object}  domain.Order
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /orders [post]
func (h *OrderHandler) HandleCreateOrder(ctx *gin.Context) {
	var input request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.CreateOrder(ctx.Request.Context(), domain.Order{
		TableNumber: input.TableNumber,
		Note:        input.Note,
	})
	if err != nil {
		err = fmt.Errorf("HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleGetOrders godoc
// @Summary      List orders
// @Description  Lists orders, optionally filtered by status
// @Tags         orders
// @Produce      json
// @Param        status  query     string  false  "Status filter"
// @Success      200     {array}   domain.Order
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /orders [get]
func (h *OrderHandler) HandleGetOrders(ctx *gin.Context) {
	if status := ctx.Query("status"); status != "" {
		orders, err := h.svc.GetOrdersByStatus(ctx.Request.Context(), domain.OrderStatus(status))
		if err != nil {
			err = fmt.Errorf("HandleGetOrders -> h.svc.GetOrdersByStatus -> %w", err)
			renderServiceErr(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, orders)
		return
	}

	orders, err := h.svc.GetOrders(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetOrders -> h.svc.GetOrders -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// HandleGetOrder godoc
// @Summary      Get an order
// @Description  Retrieves an order with its items and resolved products
// @Tags         orders
// @Produce      json
// @Param        orderID  path      int  true  "Order ID"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetOrder -> h.svc.GetOrder -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleUpdateOrderStatus godoc
// @Summary      Update order status
// @Description  Moves an order through its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderID  path      int                               true  "Order ID"
// @Param        input    body      request.UpdateOrderStatusRequest  true  "New status"
// @Success      200      {object}  domain.Order
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID}/status [patch]
func (h *OrderHandler) HandleUpdateOrderStatus(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.UpdateOrderStatus(ctx.Request.Context(), id, domain.OrderStatus(input.Status))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))
			return
		}

		err = fmt.Errorf("HandleUpdateOrderStatus -> h.svc.UpdateOrderStatus -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleDeleteOrder godoc
// @Summary      Delete an order
// @Description  Removes an order and its items, restocking every consumed product
// @Tags         orders
// @Produce      json
// @Param        orderID  path  int  true  "Order ID"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID} [delete]
func (h *OrderHandler) HandleDeleteOrder(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.stock.RemoveOrder(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", id))
			return
		}

		err = fmt.Errorf("HandleDeleteOrder -> h.stock.RemoveOrder -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddOrderItem godoc
// @Summary      Add an order item
// @Description  Appends a line to an order and decrements the product's stock
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderID  path      int                          true  "Order ID"
// @Param        input    body      request.AddOrderItemRequest  true  "Item details"
// @Success      201      {object}  domain.OrderItem
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID}/items [post]
func (h *OrderHandler) HandleAddOrderItem(ctx *gin.Context) {
	orderID, respErr := parseUintParam(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.AddOrderItemRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.stock.AddOrderItem(ctx.Request.Context(), orderID, input.ProductID, input.Quantity, input.Price, input.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", orderID))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", input.ProductID))
		default:
			err = fmt.Errorf("HandleAddOrderItem -> h.stock.AddOrderItem -> %w", err)
			renderServiceErr(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleUpdateOrderItem godoc
// @Summary      Update an order item
// @Description  Changes quantity, price or note of a line; stock follows the quantity delta
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderID  path      int                             true  "Order ID"
// @Param        itemID   path      int                             true  "Item ID"
// @Param        input    body      request.UpdateOrderItemRequest  true  "Changed fields"
// @Success      200      {object}  domain.OrderItem
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID}/items/{itemID} [patch]
func (h *OrderHandler) HandleUpdateOrderItem(ctx *gin.Context) {
	itemID, respErr := parseUintParam(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateOrderItemRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.stock.UpdateOrderItem(ctx.Request.Context(), itemID, domain.OrderItemChanges{
		Quantity: input.Quantity,
		Price:    input.Price,
		Note:     input.Note,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrderItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order item", "ID", itemID))
			return
		}

		err = fmt.Errorf("HandleUpdateOrderItem -> h.stock.UpdateOrderItem -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleRemoveOrderItem godoc
// @Summary      Remove an order item
// @Description  Deletes a line and restocks the consumed quantity
// @Tags         orders
// @Produce      json
// @Param        orderID  path  int  true  "Order ID"
// @Param        itemID   path  int  true  "Item ID"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID}/items/{itemID} [delete]
func (h *OrderHandler) HandleRemoveOrderItem(ctx *gin.Context) {
	itemID, respErr := parseUintParam(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.stock.RemoveOrderItem(ctx.Request.Context(), itemID); err != nil {
		if errors.Is(err, service.ErrOrderItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order item", "ID", itemID))
			return
		}

		err = fmt.Errorf("HandleRemoveOrderItem -> h.stock.RemoveOrderItem -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
