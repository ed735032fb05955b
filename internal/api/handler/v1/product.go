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

type CatalogService interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id uint) (domain.Product, error)
	GetProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeactivateProduct(ctx context.Context, id uint) (domain.Product, error)
}

type ProductHandler struct {
	svc CatalogService
}

func NewProductHandler(svc CatalogService) *ProductHandler {
	return &ProductHandler{
		svc: svc,
	}
}

// HandleCreateProduct godoc
// @Summary      Create a product
// @Description  Adds a product to the catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateProductRequest  true  "Product details"
// @Success      201    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products [post]
func (h *ProductHandler) HandleCreateProduct(ctx *gin.Context) {
	var input request.CreateProductRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := h.svc.CreateProduct(ctx.Request.Context(), domain.Product{
		Name:          input.Name,
		Category:      input.Category,
		Unit:          input.Unit,
		Quantity:      input.Quantity,
		MinStock:      input.MinStock,
		PurchasePrice: input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		IsActive:      true,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("HandleCreateProduct -> h.svc.CreateProduct -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// HandleGetProducts godoc
// @Summary      List products
// @Description  Lists catalog products, optionally filtered by category or restricted to active ones
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        active    query     bool    false  "Only active products"
// @Success      200       {array}   domain.Product
// @Failure      500       {object}  response.Err
// @Router       /products [get]
func (h *ProductHandler) HandleGetProducts(ctx *gin.Context) {
	if category := ctx.Query("category"); category != "" {
		products, err := h.svc.GetProductsByCategory(ctx.Request.Context(), category)
		if err != nil {
			err = fmt.Errorf("HandleGetProducts -> h.svc.GetProductsByCategory -> %w", err)
			renderServiceErr(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, products)
		return
	}

	activeOnly := ctx.Query("active") == "true"

	products, err := h.svc.GetProducts(ctx.Request.Context(), activeOnly)
	if err != nil {
		err = fmt.Errorf("HandleGetProducts -> h.svc.GetProducts -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleGetProduct godoc
// @Summary      Get a product
// @Description  Retrieves a product by ID
// @Tags         products
// @Produce      json
// @Param        productID  path      int  true  "Product ID"
// @Success      200        {object}  domain.Product
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productID} [get]
func (h *ProductHandler) HandleGetProduct(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "productID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	product, err := h.svc.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetProduct -> h.svc.GetProduct -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleUpdateProduct godoc
// @Summary      Update a product
// @Description  Updates catalog fields of a product. Stock quantity is not writable here.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productID  path      int                           true  "Product ID"
// @Param        input      body      request.UpdateProductRequest  true  "Product details"
// @Success      200        {object}  domain.Product
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productID} [put]
func (h *ProductHandler) HandleUpdateProduct(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "productID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := h.svc.UpdateProduct(ctx.Request.Context(), domain.Product{
		ID:            id,
		Name:          input.Name,
		Category:      input.Category,
		Unit:          input.Unit,
		MinStock:      input.MinStock,
		PurchasePrice: input.PurchasePrice,
		SellingPrice:  input.SellingPrice,
		IsActive:      input.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
			return
		}

		err = fmt.Errorf("HandleUpdateProduct -> h.svc.UpdateProduct -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleDeactivateProduct godoc
// @Summary      Deactivate a product
// @Description  Soft-deletes a product so past order lines keep their reference
// @Tags         products
// @Produce      json
// @Param        productID  path      int  true  "Product ID"
// @Success      200        {object}  domain.Product
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /products/{productID} [delete]
func (h *ProductHandler) HandleDeactivateProduct(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "productID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	product, err := h.svc.DeactivateProduct(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", id))
			return
		}

		err = fmt.Errorf("HandleDeactivateProduct -> h.svc.DeactivateProduct -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}
