package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/yungbote/skillbridge-backend/internal/apperr"
	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type DiagnosisService interface {
	// Save replaces the respondent's diagnosis rows with a fresh submission
	// and recomputes priority ranks. Returns competency id -> rank.
	Save(ctx context.Context, respondentID int, results []types.DiagnosisInput) (map[int]int, error)
	ComputePriorities(ctx context.Context, respondentID int) (map[int]int, error)
	Get(ctx context.Context, respondentID int) ([]types.DiagnosisSummary, error)
	UpdateRankings(ctx context.Context, respondentID int, rankings []types.RankingUpdate) error
}

type diagnosisService struct {
	log           *logger.Logger
	diagnosisRepo repos.DiagnosisRepo
	referenceRepo repos.ReferenceRepo
}

func NewDiagnosisService(log *logger.Logger, diagnosisRepo repos.DiagnosisRepo, referenceRepo repos.ReferenceRepo) DiagnosisService {
	return &diagnosisService{
		log:           log.With("service", "DiagnosisService"),
		diagnosisRepo: diagnosisRepo,
		referenceRepo: referenceRepo,
	}
}

func (s *diagnosisService) Save(ctx context.Context, respondentID int, results []types.DiagnosisInput) (map[int]int, error) {
	if respondentID <= 0 {
		return nil, fmt.Errorf("%w: respondent_id is required", apperr.ErrInvalidArgument)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: results are required", apperr.ErrInvalidArgument)
	}
	if err := s.diagnosisRepo.DeleteByRespondent(ctx, respondentID); err != nil {
		return nil, fmt.Errorf("delete previous diagnosis: %w", err)
	}
	if err := s.diagnosisRepo.InsertResults(ctx, respondentID, results); err != nil {
		return nil, fmt.Errorf("insert diagnosis results: %w", err)
	}
	rankMap, err := s.ComputePriorities(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	s.log.Info("Saved diagnosis", "respondent_id", respondentID, "rows", len(results), "competencies", len(rankMap))
	return rankMap, nil
}

// ComputePriorities scores each competency as selection count times mean
// likert score and assigns dense ranks 1..K, highest score first. Equal
// scores break toward the lower competency id so reruns on unchanged data
// rank identically. Ranks are written through to every active row.
func (s *diagnosisService) ComputePriorities(ctx context.Context, respondentID int) (map[int]int, error) {
	rows, err := s.diagnosisRepo.ListActive(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	rankMap := rankByScore(rows)
	if len(rankMap) == 0 {
		return rankMap, nil
	}
	if err := s.diagnosisRepo.UpdatePriorityRanks(ctx, respondentID, rankMap); err != nil {
		return nil, fmt.Errorf("persist priority ranks: %w", err)
	}
	return rankMap, nil
}

type competencyScore struct {
	competencyID int
	score        float64
}

func rankByScore(rows []types.DiagnosisResult) map[int]int {
	scores := make(map[int][]int)
	for _, row := range rows {
		scores[row.CompetencyID] = append(scores[row.CompetencyID], row.LikertScore)
	}

	scored := make([]competencyScore, 0, len(scores))
	for competencyID, likerts := range scores {
		sum := 0
		for _, v := range likerts {
			sum += v
		}
		count := len(likerts)
		avg := float64(sum) / float64(count)
		scored = append(scored, competencyScore{
			competencyID: competencyID,
			score:        float64(count) * avg,
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].competencyID < scored[j].competencyID
	})

	rankMap := make(map[int]int, len(scored))
	for i, cs := range scored {
		rankMap[cs.competencyID] = i + 1
	}
	return rankMap
}

// Get re-derives count, average and score from the raw rows on every read;
// only the rank comes from storage, as the minimum across a competency's
// rows to tolerate partially stale writes.
func (s *diagnosisService) Get(ctx context.Context, respondentID int) ([]types.DiagnosisSummary, error) {
	rows, err := s.diagnosisRepo.ListActive(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []types.DiagnosisSummary{}, nil
	}

	competencies, err := s.referenceRepo.Competencies(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.referenceRepo.Groups(ctx)
	if err != nil {
		return nil, err
	}
	groupByID := make(map[int]types.CompetencyGroup, len(groups))
	for _, g := range groups {
		groupByID[g.ID] = g
	}
	competencyByID := make(map[int]types.Competency, len(competencies))
	for _, c := range competencies {
		competencyByID[c.ID] = c
	}

	grouped := make(map[int][]types.DiagnosisResult)
	for _, row := range rows {
		grouped[row.CompetencyID] = append(grouped[row.CompetencyID], row)
	}

	out := make([]types.DiagnosisSummary, 0, len(grouped))
	for competencyID, groupRows := range grouped {
		count := len(groupRows)
		sum := 0
		var minRank *int
		for _, row := range groupRows {
			sum += row.LikertScore
			if row.PriorityRank != nil && (minRank == nil || *row.PriorityRank < *minRank) {
				rank := *row.PriorityRank
				minRank = &rank
			}
		}
		avg := float64(sum) / float64(count)

		summary := types.DiagnosisSummary{
			CompetencyID:   competencyID,
			SelectionCount: count,
			AvgLikert:      avg,
			Score:          float64(count) * avg,
			PriorityRank:   minRank,
			IsActive:       true,
		}
		if c, ok := competencyByID[competencyID]; ok {
			summary.CompetencyName = c.Name
			summary.CompetencyDescription = c.Description
			if g, ok := groupByID[c.GroupID]; ok {
				summary.GroupName = g.Name
			}
		}
		out = append(out, summary)
	}

	// Ranked first in ascending rank order, unranked last.
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].PriorityRank, out[j].PriorityRank
		switch {
		case ri == nil && rj == nil:
			return out[i].CompetencyID < out[j].CompetencyID
		case ri == nil:
			return false
		case rj == nil:
			return true
		case *ri != *rj:
			return *ri < *rj
		default:
			return out[i].CompetencyID < out[j].CompetencyID
		}
	})
	return out, nil
}

func (s *diagnosisService) UpdateRankings(ctx context.Context, respondentID int, rankings []types.RankingUpdate) error {
	if len(rankings) == 0 {
		return fmt.Errorf("%w: rankings are required", apperr.ErrInvalidArgument)
	}
	return s.diagnosisRepo.UpdateRankings(ctx, respondentID, rankings)
}
