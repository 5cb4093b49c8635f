package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/services"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type RoadmapHandler struct {
	roadmapService services.RoadmapService
}

func NewRoadmapHandler(roadmapService services.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService}
}

func (h *RoadmapHandler) Courses(c *gin.Context) {
	respondentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid respondent id"})
		return
	}
	out, err := h.roadmapService.Courses(c.Request.Context(), respondentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RoadmapHandler) Generate(c *gin.Context) {
	respondentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid respondent id"})
		return
	}
	if err := h.roadmapService.Generate(c.Request.Context(), respondentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Roadmap generated successfully"})
}

func (h *RoadmapHandler) Get(c *gin.Context) {
	respondentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid respondent id"})
		return
	}
	out, err := h.roadmapService.Get(c.Request.Context(), respondentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type updateRoadmapRequest struct {
	Items []types.RoadmapReorder `json:"items"`
}

func (h *RoadmapHandler) Update(c *gin.Context) {
	respondentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid respondent id"})
		return
	}
	var req updateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}
	if err := h.roadmapService.Update(c.Request.Context(), respondentID, req.Items); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Roadmap updated successfully"})
}
