package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/resto-ops/internal/api/handler/v1/request"
	"github.com/vietanh2810/resto-ops/internal/api/handler/v1/response"
	"github.com/vietanh2810/resto-ops/internal/domain"
)

type SettingService interface {
	GetSettings(ctx context.Context) ([]domain.Setting, error)
	GetSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error)
	PutSetting(ctx context.Context, setting domain.Setting) (domain.Setting, error)
}

type SettingHandler struct {
	svc SettingService
}

func NewSettingHandler(svc SettingService) *SettingHandler {
	return &SettingHandler{
		svc: svc,
	}
}

// HandleGetSettings godoc
// @Summary      List settings
// @Description  Lists settings, optionally filtered by category
// @Tags         settings
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {array}   domain.Setting
// @Failure      500       {object}  response.Err
// @Router       /settings [get]
func (h *SettingHandler) HandleGetSettings(ctx *gin.Context) {
	if category := ctx.Query("category"); category != "" {
		settings, err := h.svc.GetSettingsByCategory(ctx.Request.Context(), category)
		if err != nil {
			err = fmt.Errorf("HandleGetSettings -> h.svc.GetSettingsByCategory -> %w", err)
			renderServiceErr(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, settings)
		return
	}

	settings, err := h.svc.GetSettings(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetSettings -> h.svc.GetSettings -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, settings)
}

// HandlePutSetting godoc
// @Summary      Put a setting
// @Description  Creates or overwrites a setting identified by category and name
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        input  body      request.PutSettingRequest  true  "Setting"
// @Success      200    {object}  domain.Setting
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /settings [put]
func (h *SettingHandler) HandlePutSetting(ctx *gin.Context) {
	var input request.PutSettingRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	setting, err := h.svc.PutSetting(ctx.Request.Context(), domain.Setting{
		Category: input.Category,
		Name:     input.Name,
		Value:    input.Value,
	})
	if err != nil {
		err = fmt.Errorf("HandlePutSetting -> h.svc.PutSetting -> %w", err)
		renderServiceErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, setting)
}
