package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/apperr"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type stubRoadmapService struct {
	generated map[int]bool
}

func (s *stubRoadmapService) Courses(context.Context, int) ([]types.CompetencyCourses, error) {
	return []types.CompetencyCourses{}, nil
}

func (s *stubRoadmapService) Generate(_ context.Context, respondentID int) error {
	if !s.generated[respondentID] {
		return fmt.Errorf("%w: no ranked diagnosis results", apperr.ErrNotFound)
	}
	return nil
}

func (s *stubRoadmapService) Get(context.Context, int) (map[string][]types.RoadmapEntry, error) {
	return map[string][]types.RoadmapEntry{
		types.PhaseOne: {}, types.PhaseTwo: {}, types.PhaseThree: {},
	}, nil
}

func (s *stubRoadmapService) Update(context.Context, int, []types.RoadmapReorder) error {
	return nil
}

func newRoadmapRouter(svc *stubRoadmapService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRoadmapHandler(svc)
	router := gin.New()
	router.POST("/api/roadmap/:id/generate", h.Generate)
	router.PUT("/api/roadmap/:id", h.Update)
	return router
}

func TestGenerateRoadmapEndpoint(t *testing.T) {
	router := newRoadmapRouter(&stubRoadmapService{generated: map[int]bool{7: true}})

	req := httptest.NewRequest(http.MethodPost, "/api/roadmap/7/generate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	// Missing diagnosis maps to 404, not 500.
	req = httptest.NewRequest(http.MethodPost, "/api/roadmap/8/generate", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
}

func TestUpdateRoadmapEndpointValidation(t *testing.T) {
	router := newRoadmapRouter(&stubRoadmapService{})

	req := httptest.NewRequest(http.MethodPut, "/api/roadmap/7", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}
