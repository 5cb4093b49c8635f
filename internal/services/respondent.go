package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/skillbridge-backend/internal/apperr"
	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type CreateRespondentInput struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	JobType      string `json:"job_type"`
	CareerStage  string `json:"career_stage"`
}

type RespondentService interface {
	Create(ctx context.Context, input CreateRespondentInput) (*types.Respondent, error)
	Get(ctx context.Context, id int) (*types.Respondent, error)
	ListCompetencies(ctx context.Context, jobType, careerStage string) ([]types.CompetencyView, error)
	ListScenarios(ctx context.Context, jobType, careerStage string) ([]types.ScenarioView, error)
}

type respondentService struct {
	log            *logger.Logger
	respondentRepo repos.RespondentRepo
	referenceRepo  repos.ReferenceRepo
}

func NewRespondentService(log *logger.Logger, respondentRepo repos.RespondentRepo, referenceRepo repos.ReferenceRepo) RespondentService {
	return &respondentService{
		log:            log.With("service", "RespondentService"),
		respondentRepo: respondentRepo,
		referenceRepo:  referenceRepo,
	}
}

func (s *respondentService) Create(ctx context.Context, input CreateRespondentInput) (*types.Respondent, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.JobType = strings.TrimSpace(input.JobType)
	input.CareerStage = strings.TrimSpace(input.CareerStage)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidArgument)
	}
	if input.JobType == "" {
		return nil, fmt.Errorf("%w: job_type is required", apperr.ErrInvalidArgument)
	}
	if input.CareerStage == "" {
		return nil, fmt.Errorf("%w: career_stage is required", apperr.ErrInvalidArgument)
	}
	created, err := s.respondentRepo.Insert(ctx, input.Name, input.Organization, input.JobType, input.CareerStage)
	if err != nil {
		return nil, fmt.Errorf("create respondent: %w", err)
	}
	s.log.Info("Created respondent", "respondent_id", created.ID)
	return created, nil
}

func (s *respondentService) Get(ctx context.Context, id int) (*types.Respondent, error) {
	return s.respondentRepo.GetByID(ctx, id)
}

// visibleGroups returns groups applying to the caller, keyed by id.
func (s *respondentService) visibleGroups(ctx context.Context, jobType, careerStage string) (map[int]types.CompetencyGroup, error) {
	groups, err := s.referenceRepo.Groups(ctx)
	if err != nil {
		return nil, err
	}
	visible := make(map[int]types.CompetencyGroup)
	for _, g := range groups {
		if repos.GroupVisible(g, jobType, careerStage) {
			visible[g.ID] = g
		}
	}
	return visible, nil
}

func (s *respondentService) ListCompetencies(ctx context.Context, jobType, careerStage string) ([]types.CompetencyView, error) {
	if jobType == "" || careerStage == "" {
		return nil, fmt.Errorf("%w: job_type and career_stage are required", apperr.ErrInvalidArgument)
	}
	visible, err := s.visibleGroups(ctx, jobType, careerStage)
	if err != nil {
		return nil, err
	}
	competencies, err := s.referenceRepo.Competencies(ctx)
	if err != nil {
		return nil, err
	}

	out := []types.CompetencyView{}
	for _, c := range competencies {
		g, ok := visible[c.GroupID]
		if !ok {
			continue
		}
		out = append(out, types.CompetencyView{
			ID:          c.ID,
			GroupID:     c.GroupID,
			Name:        c.Name,
			Description: c.Description,
			GroupName:   g.Name,
			SubCategory: g.SubCategory,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *respondentService) ListScenarios(ctx context.Context, jobType, careerStage string) ([]types.ScenarioView, error) {
	if jobType == "" || careerStage == "" {
		return nil, fmt.Errorf("%w: job_type and career_stage are required", apperr.ErrInvalidArgument)
	}
	visible, err := s.visibleGroups(ctx, jobType, careerStage)
	if err != nil {
		return nil, err
	}
	scenarios, err := s.referenceRepo.Scenarios(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.referenceRepo.ScenarioCompetencies(ctx)
	if err != nil {
		return nil, err
	}
	competencies, err := s.referenceRepo.Competencies(ctx)
	if err != nil {
		return nil, err
	}

	competencyByID := make(map[int]types.Competency, len(competencies))
	for _, c := range competencies {
		competencyByID[c.ID] = c
	}
	linkedByScenario := make(map[int][]types.Competency)
	for _, link := range links {
		if c, ok := competencyByID[link.CompetencyID]; ok {
			linkedByScenario[link.ScenarioID] = append(linkedByScenario[link.ScenarioID], c)
		}
	}

	out := []types.ScenarioView{}
	for _, sc := range scenarios {
		g, ok := visible[sc.GroupID]
		if !ok {
			continue
		}
		linked := linkedByScenario[sc.ID]
		if linked == nil {
			linked = []types.Competency{}
		}
		out = append(out, types.ScenarioView{
			ID:           sc.ID,
			GroupID:      sc.GroupID,
			Situation:    sc.Situation,
			GroupName:    g.Name,
			SubCategory:  g.SubCategory,
			Competencies: linked,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
