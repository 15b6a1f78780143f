package controllers

import (
	"github.com/gin-gonic/gin"

	"reout/internal/models/response_models"
	"reout/internal/services"
	"reout/pkg/utils"
)

type PlannerController struct {
	sessionService services.SessionServiceInterface
	cityService    services.CityServiceInterface
}

func NewPlannerController(sessionService services.SessionServiceInterface, cityService services.CityServiceInterface) *PlannerController {
	return &PlannerController{
		sessionService: sessionService,
		cityService:    cityService,
	}
}

// ListModels godoc
// @Summary List provider models
// @Description Model ids are fetched once per process and cached
// @Tags Planner
// @Produce json
// @Success 200 {object} response_models.ModelsResponse
// @Failure 502 {object} utils.APIResponse
// @Router /models [get]
func (p *PlannerController) ListModels(c *gin.Context) {
	models, err := p.sessionService.ListModels(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ModelsResponse{
		Provider: p.sessionService.ProviderName(),
		Default:  p.sessionService.DefaultModel(),
		Models:   models,
	}, "")
}

// SuggestCities godoc
// @Summary Suggest cities
// @Tags Planner
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {array} string
// @Router /cities [get]
func (p *PlannerController) SuggestCities(c *gin.Context) {
	utils.RespondSuccess(c, p.cityService.SuggestCities(c.Query("q")), "")
}
