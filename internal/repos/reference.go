package repos

import (
	"context"
	"fmt"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// Reference table names.
const (
	TableCompetencyGroups     = "competency_groups"
	TableCompetencies         = "competencies"
	TableScenarios            = "scenarios"
	TableScenarioCompetencies = "scenario_competencies"
	TableCourses              = "courses"
)

// Group names carrying a sub-category visibility rule.
const (
	GroupLeadership    = "Leadership"
	GroupJobCompetency = "Job Competency"
)

// GroupVisible reports whether a group's rows apply to a caller. A group
// with no sub-category applies to everyone; "Leadership" groups are scoped
// by career stage and "Job Competency" groups by job type.
func GroupVisible(g types.CompetencyGroup, jobType, careerStage string) bool {
	if g.SubCategory == nil || *g.SubCategory == "" {
		return true
	}
	switch g.Name {
	case GroupLeadership:
		return *g.SubCategory == careerStage
	case GroupJobCompetency:
		return *g.SubCategory == jobType
	default:
		return false
	}
}

// ReferenceRepo reads the slow-changing lookup tables through the reference
// cache class.
type ReferenceRepo interface {
	Groups(ctx context.Context) ([]types.CompetencyGroup, error)
	Competencies(ctx context.Context) ([]types.Competency, error)
	Scenarios(ctx context.Context) ([]types.Scenario, error)
	ScenarioCompetencies(ctx context.Context) ([]types.ScenarioCompetency, error)
	Courses(ctx context.Context) ([]types.Course, error)
}

type referenceRepo struct {
	store *sheetstore.Store
	log   *logger.Logger
}

func NewReferenceRepo(store *sheetstore.Store, log *logger.Logger) ReferenceRepo {
	return &referenceRepo{store: store, log: log.With("repo", "ReferenceRepo")}
}

func (r *referenceRepo) records(ctx context.Context, table string) ([]sheetstore.Record, error) {
	return r.store.Records(ctx, table, sheetstore.ClassReference)
}

func (r *referenceRepo) Groups(ctx context.Context) ([]types.CompetencyGroup, error) {
	records, err := r.records(ctx, TableCompetencyGroups)
	if err != nil {
		return nil, err
	}
	var out []types.CompetencyGroup
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		id, err := rec.Int("id")
		if err != nil {
			return nil, fmt.Errorf("competency group: %w", err)
		}
		g := types.CompetencyGroup{ID: id, Name: rec.Str("name")}
		if sub := rec.Str("sub_category"); sub != "" {
			g.SubCategory = &sub
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *referenceRepo) Competencies(ctx context.Context) ([]types.Competency, error) {
	records, err := r.records(ctx, TableCompetencies)
	if err != nil {
		return nil, err
	}
	var out []types.Competency
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		id, err := rec.Int("id")
		if err != nil {
			return nil, fmt.Errorf("competency: %w", err)
		}
		groupID, err := rec.Int("group_id")
		if err != nil {
			return nil, fmt.Errorf("competency %d: %w", id, err)
		}
		out = append(out, types.Competency{
			ID:          id,
			GroupID:     groupID,
			Name:        rec.Str("name"),
			Description: rec.Str("description"),
		})
	}
	return out, nil
}

func (r *referenceRepo) Scenarios(ctx context.Context) ([]types.Scenario, error) {
	records, err := r.records(ctx, TableScenarios)
	if err != nil {
		return nil, err
	}
	var out []types.Scenario
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		id, err := rec.Int("id")
		if err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
		groupID, err := rec.Int("group_id")
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", id, err)
		}
		out = append(out, types.Scenario{
			ID:        id,
			GroupID:   groupID,
			Situation: rec.Str("situation"),
		})
	}
	return out, nil
}

func (r *referenceRepo) ScenarioCompetencies(ctx context.Context) ([]types.ScenarioCompetency, error) {
	records, err := r.records(ctx, TableScenarioCompetencies)
	if err != nil {
		return nil, err
	}
	var out []types.ScenarioCompetency
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		id, err := rec.Int("id")
		if err != nil {
			return nil, fmt.Errorf("scenario competency link: %w", err)
		}
		scenarioID, err := rec.Int("scenario_id")
		if err != nil {
			return nil, fmt.Errorf("scenario competency link %d: %w", id, err)
		}
		competencyID, err := rec.Int("competency_id")
		if err != nil {
			return nil, fmt.Errorf("scenario competency link %d: %w", id, err)
		}
		out = append(out, types.ScenarioCompetency{ID: id, ScenarioID: scenarioID, CompetencyID: competencyID})
	}
	return out, nil
}

func (r *referenceRepo) Courses(ctx context.Context) ([]types.Course, error) {
	records, err := r.records(ctx, TableCourses)
	if err != nil {
		return nil, err
	}
	var out []types.Course
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		id, err := rec.Int("id")
		if err != nil {
			return nil, fmt.Errorf("course: %w", err)
		}
		competencyID, err := rec.Int("competency_id")
		if err != nil {
			return nil, fmt.Errorf("course %d: %w", id, err)
		}
		out = append(out, types.Course{
			ID:            id,
			CompetencyID:  competencyID,
			Name:          rec.Str("name"),
			Description:   rec.Str("description"),
			DurationHours: rec.IntOr("duration_hours", 0),
			Semester:      rec.Str("semester"),
		})
	}
	return out, nil
}
