package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reout/internal/models/db_models"
	"reout/internal/models/response_models"
	"reout/internal/services"
	"reout/pkg/utils"
)

type FeedbackController struct {
	feedbackService services.FeedbackServiceInterface
}

func NewFeedbackController(feedbackService services.FeedbackServiceInterface) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// ListFeedback godoc
// @Summary List feedback
// @Description Get a paginated list of ledger rows, newest first
// @Tags Feedback
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.FeedbackRowResponse
// @Router /feedback/list [get]
func (f *FeedbackController) ListFeedback(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return
	}

	rows, err := f.feedbackService.GetFeedback(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := make([]response_models.FeedbackRowResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, response_models.FeedbackRowResponse{
			Handle:      r.Handle,
			SubmittedAt: db_models.FormatLedgerTime(r.SubmittedAt),
			City:        r.City,
			Rating:      r.Rating,
			Comment:     r.Comment,
		})
	}

	utils.RespondSuccess(c, result, "Feedback fetched successfully")
}
