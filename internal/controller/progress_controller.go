package controller

import (
	"net/http"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/Frisk239/minpaixinyu/internal/service"
	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	progress service.ProgressService
}

func NewProgressController(progress service.ProgressService) *ProgressController {
	return &ProgressController{progress: progress}
}

// MarkExplored godoc
// @Summary Mark a city as explored
// @Description Idempotent. Accepts JSON or form-encoded city_name; repeat marks keep a single record and still succeed.
// @Tags Progress
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param city body dto.MarkExploredRequest true "City name"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/mark-explored [post]
func (c *ProgressController) MarkExplored(ctx *gin.Context) {
	// ShouldBind selects JSON or form binding from the Content-Type; the
	// city pages post both shapes.
	var req dto.MarkExploredRequest
	if err := ctx.ShouldBind(&req); err != nil || req.CityName == "" {
		respondError(ctx, apperr.ErrEmptyField)
		return
	}

	userID, _ := currentUserID(ctx)
	if err := c.progress.MarkExplored(userID, req.CityName); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CheckExplored godoc
// @Summary Check whether a city is explored
// @Description Returns explored=false (not an error) when the caller has no session.
// @Tags Progress
// @Produce json
// @Param city_name query string true "City name"
// @Success 200 {object} dto.ExploredResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/check-explored [get]
func (c *ProgressController) CheckExplored(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, dto.ExploredResponse{Explored: false})
		return
	}

	cityName := ctx.Query("city_name")
	if cityName == "" {
		respondError(ctx, apperr.ErrEmptyField)
		return
	}

	explored, err := c.progress.IsExplored(userID, cityName)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ExploredResponse{Explored: explored})
}

// GetExplorations godoc
// @Summary List explored cities
// @Description Returns bare city names; empty list when the caller has no session.
// @Tags Progress
// @Produce json
// @Success 200 {object} dto.ExplorationsResponse
// @Router /api/get-explorations [get]
func (c *ProgressController) GetExplorations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, dto.ExplorationsResponse{Explorations: []string{}})
		return
	}

	explorations, err := c.progress.ListExplored(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ExplorationsResponse{Explorations: explorations})
}

// GetStatistics godoc
// @Summary Quiz and exploration statistics for the current user
// @Tags Progress
// @Produce json
// @Success 200 {object} dto.StatisticsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/statistics [get]
func (c *ProgressController) GetStatistics(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)
	stats, err := c.progress.Statistics(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
