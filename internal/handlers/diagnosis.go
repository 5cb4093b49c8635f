package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/services"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type DiagnosisHandler struct {
	diagnosisService services.DiagnosisService
}

func NewDiagnosisHandler(diagnosisService services.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnosisService: diagnosisService}
}

type saveDiagnosisRequest struct {
	RespondentID int                    `json:"respondent_id"`
	Results      []types.DiagnosisInput `json:"results"`
}

func (h *DiagnosisHandler) Save(c *gin.Context) {
	var req saveDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.RespondentID == 0 || len(req.Results) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "respondent_id and results are required"})
		return
	}
	if _, err := h.diagnosisService.Save(c.Request.Context(), req.RespondentID, req.Results); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Diagnosis saved successfully"})
}

func (h *DiagnosisHandler) Get(c *gin.Context) {
	respondentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid respondent id"})
		return
	}
	out, err := h.diagnosisService.Get(c.Request.Context(), respondentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type updateDiagnosisRequest struct {
	Rankings []types.RankingUpdate `json:"rankings"`
}

func (h *DiagnosisHandler) Update(c *gin.Context) {
	respondentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid respondent id"})
		return
	}
	var req updateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Rankings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rankings are required"})
		return
	}
	if err := h.diagnosisService.UpdateRankings(c.Request.Context(), respondentID, req.Rankings); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rankings updated successfully"})
}
