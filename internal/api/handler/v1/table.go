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

type TableService interface {
	CreateTable(ctx context.Context, table domain.Table) (domain.Table, error)
	GetTable(ctx context.Context, id uint) (domain.Table, error)
	GetTables(ctx context.Context) ([]domain.Table, error)
	SetTableStatus(ctx context.Context, id uint, status domain.TableStatus) (domain.Table, error)
}

type TableHandler struct {
	svc TableService
}

func NewTableHandler(svc TableService) *TableHandler {
	return &TableHandler{
		svc: svc,
	}
}

// HandleCreateTable godoc
// @Summary      Create a table
// @Description  Adds a table to the floor layout
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateTableRequest  true  "Table details"
// @Success      201    {object}  domain.Table
// @Failure      400    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tables [post]
func (h *TableHandler) HandleCreateTable(ctx *gin.Context) {
	var input request.CreateTableRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	table, err := h.svc.CreateTable(ctx.Request.Context(), domain.Table{
		Number:   input.Number,
		Capacity: input.Capacity,
		Shape:    input.Shape,
		PosX:     input.PosX,
		PosY:     input.PosY,
	})
	if err != nil {
		if errors.Is(err, service.ErrTableNumberExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("HandleCreateTable -> h.svc.CreateTable -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, table)
}

// HandleGetTables godoc
// @Summary      List tables
// @Description  Lists the floor layout with live statuses
// @Tags         tables
// @Produce      json
// @Success      200  {array}   domain.Table
// @Failure      500  {object}  response.Err
// @Router       /tables [get]
func (h *TableHandler) HandleGetTables(ctx *gin.Context) {
	tables, err := h.svc.GetTables(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetTables -> h.svc.GetTables -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tables)
}

// HandleGetTable godoc
// @Summary      Get a table
// @Description  Retrieves a table by ID
// @Tags         tables
// @Produce      json
// @Param        tableID  path      int  true  "Table ID"
// @Success      200      {object}  domain.Table
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID} [get]
func (h *TableHandler) HandleGetTable(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	table, err := h.svc.GetTable(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTableNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("table", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetTable -> h.svc.GetTable -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, table)
}

// HandleSetTableStatus godoc
// @Summary      Set table status
// @Description  Sets a table's status directly: seating walk-ins, clearing, maintenance
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        tableID  path      int                               true  "Table ID"
// @Param        input    body      request.UpdateTableStatusRequest  true  "New status"
// @Success      200      {object}  domain.Table
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID}/status [patch]
func (h *TableHandler) HandleSetTableStatus(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateTableStatusRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	table, err := h.svc.SetTableStatus(ctx.Request.Context(), id, domain.TableStatus(input.Status))
	if err != nil {
		if errors.Is(err, service.ErrTableNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("table", "ID", id))
			return
		}

		err = fmt.Errorf("HandleSetTableStatus -> h.svc.SetTableStatus -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, table)
}
