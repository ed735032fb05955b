package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/resto-ops/internal/api/handler/v1/request"
	"github.com/vietanh2810/resto-ops/internal/api/handler/v1/response"
	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/service"
)

type ReservationService interface {
	GetReservation(ctx context.Context, id uint) (domain.Reservation, error)
	GetReservations(ctx context.Context) ([]domain.Reservation, error)
	GetReservationsByDate(ctx context.Context, date string) ([]domain.Reservation, error)
	CheckAvailability(ctx context.Context, tableID uint, date, hhmm string, excludeReservationID uint) (bool, error)
	FindAvailableTables(ctx context.Context, date, hhmm string, covers int) ([]domain.Table, error)
	CreateReservation(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, updated domain.Reservation) (domain.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus) (domain.Reservation, error)
}

type ReservationHandler struct {
	svc ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{
		svc: svc,
	}
}

// HandleCreateReservation godoc
// @Summary      Create a reservation
// @Description  Books a table for a service window, rejecting overlaps
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateReservationRequest  true  "Reservation details"
// @Success      201    {object}  domain.Reservation
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /reservations [post]
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	var input request.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservation, err := h.svc.CreateReservation(ctx.Request.Context(), domain.Reservation{
		Date:    input.Date,
		Time:    input.Time,
		Name:    input.Name,
		Covers:  input.Covers,
		TableID: input.TableID,
		Status:  domain.ReservationStatus(input.Status),
		Note:    input.Note,
	})
	if err != nil {
		if errors.Is(err, service.ErrTableNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("table", "ID", input.TableID))
			return
		}

		err = fmt.Errorf("HandleCreateReservation -> h.svc.CreateReservation -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, reservation)
}

// HandleGetReservations godoc
// @Summary      List reservations
// @Description  Lists reservations, optionally restricted to one service day
// @Tags         reservations
// @Produce      json
// @Param        date  query     string  false  "Service day (YYYY-MM-DD)"
// @Success      200   {array}   domain.Reservation
// @Failure      500   {object}  response.Err
// @Router       /reservations [get]
func (h *ReservationHandler) HandleGetReservations(ctx *gin.Context) {
	if date := ctx.Query("date"); date != "" {
		reservations, err := h.svc.GetReservationsByDate(ctx.Request.Context(), date)
		if err != nil {
			err = fmt.Errorf("HandleGetReservations -> h.svc.GetReservationsByDate -> %w", err)
			renderServiceErr(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, reservations)
		return
	}

	reservations, err := h.svc.GetReservations(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetReservations -> h.svc.GetReservations -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reservations)
}

// HandleGetReservation godoc
// @Summary      Get a reservation
// @Description  Retrieves a reservation by ID
// @Tags         reservations
// @Produce      json
// @Param        reservationID  path      int  true  "Reservation ID"
// @Success      200            {object}  domain.Reservation
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /reservations/{reservationID} [get]
func (h *ReservationHandler) HandleGetReservation(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "reservationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reservation, err := h.svc.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reservation", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetReservation -> h.svc.GetReservation -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleUpdateReservation godoc
// @Summary      Update a reservation
// @Description  Rebooks a reservation; moving table or slot re-checks availability
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                               true  "Reservation ID"
// @Param        input          body      request.UpdateReservationRequest  true  "Reservation details"
// @Success      200            {object}  domain.Reservation
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /reservations/{reservationID} [put]
func (h *ReservationHandler) HandleUpdateReservation(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "reservationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateReservationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservation, err := h.svc.UpdateReservation(ctx.Request.Context(), domain.Reservation{
		ID:      id,
		Date:    input.Date,
		Time:    input.Time,
		Name:    input.Name,
		Covers:  input.Covers,
		TableID: input.TableID,
		Status:  domain.ReservationStatus(input.Status),
		Note:    input.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("reservation", "ID", id))
		case errors.Is(err, service.ErrTableNotFound):
			response.RenderErr(ctx, response.ErrNotFound("table", "ID", input.TableID))
		default:
			err = fmt.Errorf("HandleUpdateReservation -> h.svc.UpdateReservation -> %w", err)
			renderServiceErr(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleUpdateReservationStatus godoc
// @Summary      Update reservation status
// @Description  Moves a reservation through its lifecycle, driving table status with it
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        reservationID  path      int                                     true  "Reservation ID"
// @Param        input          body      request.UpdateReservationStatusRequest  true  "New status"
// @Success      200            {object}  domain.Reservation
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /reservations/{reservationID}/status [patch]
func (h *ReservationHandler) HandleUpdateReservationStatus(ctx *gin.Context) {
	id, respErr := parseUintParam(ctx, "reservationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateReservationStatusRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservation, err := h.svc.UpdateStatus(ctx.Request.Context(), id, domain.ReservationStatus(input.Status))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reservation", "ID", id))
			return
		}

		err = fmt.Errorf("HandleUpdateReservationStatus -> h.svc.UpdateStatus -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleCheckAvailability godoc
// @Summary      Check table availability
// @Description  Reports whether a table is free for the service window starting at the given slot
// @Tags         reservations
// @Produce      json
// @Param        table_id  query     int     true   "Table ID"
// @Param        date      query     string  true   "Service day (YYYY-MM-DD)"
// @Param        time      query     string  true   "Start time (HH:MM)"
// @Param        exclude   query     int     false  "Reservation ID to ignore"
// @Success      200       {object}  response.Availability
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /reservations/availability [get]
func (h *ReservationHandler) HandleCheckAvailability(ctx *gin.Context) {
	tableID, err := strconv.ParseUint(ctx.Query("table_id"), 10, 64)
	if err != nil || tableID == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid table_id (%v)", ctx.Query("table_id"))))
		return
	}

	var excludeID uint64
	if raw := ctx.Query("exclude"); raw != "" {
		excludeID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid exclude (%v)", raw)))
			return
		}
	}

	available, err := h.svc.CheckAvailability(ctx.Request.Context(), uint(tableID), ctx.Query("date"), ctx.Query("time"), uint(excludeID))
	if err != nil {
		if errors.Is(err, service.ErrTableNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("table", "ID", tableID))
			return
		}

		err = fmt.Errorf("HandleCheckAvailability -> h.svc.CheckAvailability -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response.Availability{Available: available})
}

// HandleFindAvailableTables godoc
// @Summary      Find available tables
// @Description  Lists free tables with enough seats for a slot, smallest fitting first
// @Tags         reservations
// @Produce      json
// @Param        date    query     string  true  "Service day (YYYY-MM-DD)"
// @Param        time    query     string  true  "Start time (HH:MM)"
// @Param        covers  query     int     true  "Party size"
// @Success      200     {array}   domain.Table
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /reservations/available-tables [get]
func (h *ReservationHandler) HandleFindAvailableTables(ctx *gin.Context) {
	covers, err := strconv.Atoi(ctx.Query("covers"))
	if err != nil || covers <= 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid covers (%v)", ctx.Query("covers"))))
		return
	}

	tables, err := h.svc.FindAvailableTables(ctx.Request.Context(), ctx.Query("date"), ctx.Query("time"), covers)
	if err != nil {
		err = fmt.Errorf("HandleFindAvailableTables -> h.svc.FindAvailableTables -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tables)
}
