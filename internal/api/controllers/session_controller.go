package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reout/internal/models/request_models"
	"reout/internal/models/response_models"
	sm "reout/internal/models/session_models"
	"reout/internal/services"
	"reout/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
}

func NewSessionController(sessionService services.SessionServiceInterface) *SessionController {
	return &SessionController{sessionService: sessionService}
}

func toSessionResponse(s *sm.PlanningSession) response_models.SessionResponse {
	participants := s.Participants
	if participants == nil {
		participants = []sm.PreferenceRecord{}
	}
	return response_models.SessionResponse{
		ID:           s.ID,
		State:        s.State(),
		City:         s.City,
		Participants: participants,
		Summary:      services.GroupSummary(participants),
		LastPlan:     s.LastPlan,
		LastModel:    s.LastModel,
		LastError:    s.LastError,
		Rated:        s.FeedbackRowHandle != nil,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// CreateSession godoc
// @Summary Start a planning session
// @Tags Sessions
// @Produce json
// @Success 201 {object} response_models.SessionResponse
// @Router /sessions [post]
func (s *SessionController) CreateSession(c *gin.Context) {
	session, err := s.sessionService.CreateSession(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccessWithCode(c, http.StatusCreated, toSessionResponse(session), "Session created")
}

// GetSession godoc
// @Summary Get session state
// @Description Returns city, participants, the latest plan and the latest error
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.SessionResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id} [get]
func (s *SessionController) GetSession(c *gin.Context) {
	session, err := s.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toSessionResponse(session), "")
}

// EndSession godoc
// @Summary End a planning session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Router /sessions/{id} [delete]
func (s *SessionController) EndSession(c *gin.Context) {
	if err := s.sessionService.EndSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session ended")
}

// SetCity godoc
// @Summary Set the destination city
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SetCityRequest true "City"
// @Success 200 {object} response_models.SessionResponse
// @Router /sessions/{id}/city [put]
func (s *SessionController) SetCity(c *gin.Context) {
	var req request_models.SetCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := s.sessionService.SetCity(c.Request.Context(), c.Param("id"), req.City)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toSessionResponse(session), "City updated")
}

// AddParticipant godoc
// @Summary Add a participant
// @Description Appends one participant's preferences; tokens must come from the fixed vocabularies
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.AddParticipantRequest true "Preferences"
// @Success 200 {object} response_models.SessionResponse
// @Failure 400 {object} utils.APIResponse
// @Router /sessions/{id}/participants [post]
func (s *SessionController) AddParticipant(c *gin.Context) {
	var req request_models.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := s.sessionService.AddParticipant(c.Request.Context(), c.Param("id"), req.ToRecord())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toSessionResponse(session), "Participant added")
}

// ClearParticipants godoc
// @Summary Remove every participant
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.SessionResponse
// @Router /sessions/{id}/participants [delete]
func (s *SessionController) ClearParticipants(c *gin.Context) {
	session, err := s.sessionService.ClearParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toSessionResponse(session), "Participants cleared")
}

// Generate godoc
// @Summary Generate an outing plan
// @Description Compiles the group's preferences and asks the configured provider for a plan
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.GenerateRequest false "Model override"
// @Success 200 {object} response_models.SessionResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /sessions/{id}/generate [post]
func (s *SessionController) Generate(c *gin.Context) {
	var req request_models.GenerateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	session, err := s.sessionService.Generate(c.Request.Context(), c.Param("id"), req.Model)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toSessionResponse(session), "Plan generated")
}

// SubmitRating godoc
// @Summary Rate the current plan
// @Description The first rating creates the session's feedback row, later ratings update it
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.RatingRequest true "Rating 1-5"
// @Success 200 {object} response_models.SessionResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /sessions/{id}/rating [post]
func (s *SessionController) SubmitRating(c *gin.Context) {
	var req request_models.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := s.sessionService.SubmitRating(c.Request.Context(), c.Param("id"), req.Rating)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toSessionResponse(session), "Thanks for the rating")
}

// SubmitComment godoc
// @Summary Comment on the current plan
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.CommentRequest true "Comment"
// @Success 200 {object} response_models.SessionResponse
// @Failure 409 {object} utils.APIResponse
// @Router /sessions/{id}/comment [post]
func (s *SessionController) SubmitComment(c *gin.Context) {
	var req request_models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := s.sessionService.SubmitComment(c.Request.Context(), c.Param("id"), req.Comment)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, toSessionResponse(session), "Comment saved")
}
