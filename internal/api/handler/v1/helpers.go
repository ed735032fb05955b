package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/resto-ops/internal/api/handler/v1/response"
	"github.com/vietanh2810/resto-ops/internal/domain"
)

func parseUintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v (%v)", name, raw))
	}

	return uint(id), nil
}

// renderServiceErr maps typed domain errors to HTTP responses. Anything
// unrecognized is a 500 with the details kept server-side.
func renderServiceErr(ctx *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		stockErr      *domain.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequest(validationErr))
	case errors.As(err, &conflictErr):
		response.RenderErr(ctx, response.ErrConflict(conflictErr))
	case errors.As(err, &stockErr):
		response.RenderErr(ctx, response.ErrUnprocessable(stockErr))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
