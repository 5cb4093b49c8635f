package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/apperr"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type RespondentHandler struct {
	respondentService services.RespondentService
}

func NewRespondentHandler(respondentService services.RespondentService) *RespondentHandler {
	return &RespondentHandler{respondentService: respondentService}
}

func (h *RespondentHandler) Create(c *gin.Context) {
	var input services.CreateRespondentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := h.respondentService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RespondentHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid respondent id"})
		return
	}
	respondent, err := h.respondentService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Respondent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, respondent)
}

func (h *RespondentHandler) ListCompetencies(c *gin.Context) {
	jobType := c.Query("job_type")
	careerStage := c.Query("career_stage")
	out, err := h.respondentService.ListCompetencies(c.Request.Context(), jobType, careerStage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RespondentHandler) ListScenarios(c *gin.Context) {
	jobType := c.Query("job_type")
	careerStage := c.Query("career_stage")
	out, err := h.respondentService.ListScenarios(c.Request.Context(), jobType, careerStage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
