package repos

import (
	"context"
	"fmt"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

const TableDiagnosisResults = "diagnosis_results"

type DiagnosisRepo interface {
	ListActive(ctx context.Context, respondentID int) ([]types.DiagnosisResult, error)
	InsertResults(ctx context.Context, respondentID int, results []types.DiagnosisInput) error
	DeleteByRespondent(ctx context.Context, respondentID int) error
	UpdatePriorityRanks(ctx context.Context, respondentID int, rankMap map[int]int) error
	UpdateRankings(ctx context.Context, respondentID int, rankings []types.RankingUpdate) error
}

type diagnosisRepo struct {
	store *sheetstore.Store
	log   *logger.Logger
}

func NewDiagnosisRepo(store *sheetstore.Store, log *logger.Logger) DiagnosisRepo {
	return &diagnosisRepo{store: store, log: log.With("repo", "DiagnosisRepo")}
}

func (r *diagnosisRepo) ListActive(ctx context.Context, respondentID int) ([]types.DiagnosisResult, error) {
	records, err := r.store.Records(ctx, TableDiagnosisResults, sheetstore.ClassDynamic)
	if err != nil {
		return nil, err
	}
	var out []types.DiagnosisResult
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		if rec.IntOr("respondent_id", -1) != respondentID {
			continue
		}
		if !rec.Flag("is_active") {
			continue
		}
		row, err := decodeDiagnosis(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func decodeDiagnosis(rec sheetstore.Record) (types.DiagnosisResult, error) {
	var row types.DiagnosisResult
	var err error
	if row.ID, err = rec.Int("id"); err != nil {
		return row, fmt.Errorf("diagnosis row: %w", err)
	}
	if row.RespondentID, err = rec.Int("respondent_id"); err != nil {
		return row, fmt.Errorf("diagnosis row %d: %w", row.ID, err)
	}
	if row.CompetencyID, err = rec.Int("competency_id"); err != nil {
		return row, fmt.Errorf("diagnosis row %d: %w", row.ID, err)
	}
	if row.ScenarioID, err = rec.Int("scenario_id"); err != nil {
		return row, fmt.Errorf("diagnosis row %d: %w", row.ID, err)
	}
	if row.LikertScore, err = rec.Int("likert_score"); err != nil {
		return row, fmt.Errorf("diagnosis row %d: %w", row.ID, err)
	}
	if row.PriorityRank, err = rec.NullableInt("priority_rank"); err != nil {
		return row, fmt.Errorf("diagnosis row %d: %w", row.ID, err)
	}
	row.IsActive = rec.Flag("is_active")
	return row, nil
}

func (r *diagnosisRepo) InsertResults(ctx context.Context, respondentID int, results []types.DiagnosisInput) error {
	if len(results) == 0 {
		return nil
	}
	nextID, err := r.store.NextID(ctx, TableDiagnosisResults)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(results))
	for _, res := range results {
		rows = append(rows, []interface{}{
			nextID, respondentID, res.CompetencyID, res.ScenarioID, res.LikertScore, "", 1,
		})
		nextID++
	}
	return r.store.AppendRows(ctx, TableDiagnosisResults, rows)
}

func (r *diagnosisRepo) DeleteByRespondent(ctx context.Context, respondentID int) error {
	return r.store.DeleteRowsByRespondent(ctx, TableDiagnosisResults, respondentID)
}

// UpdatePriorityRanks writes ranks onto every active row of the ranked
// competencies in one batched update.
func (r *diagnosisRepo) UpdatePriorityRanks(ctx context.Context, respondentID int, rankMap map[int]int) error {
	return r.store.UpdateMatchingCells(ctx, TableDiagnosisResults, func(row sheetstore.Record) (map[string]interface{}, bool) {
		if row.IntOr("respondent_id", -1) != respondentID {
			return nil, false
		}
		if !row.Flag("is_active") {
			return nil, false
		}
		rank, ok := rankMap[row.IntOr("competency_id", -1)]
		if !ok {
			return nil, false
		}
		return map[string]interface{}{"priority_rank": rank}, true
	})
}

func (r *diagnosisRepo) UpdateRankings(ctx context.Context, respondentID int, rankings []types.RankingUpdate) error {
	byCompetency := make(map[int]types.RankingUpdate, len(rankings))
	for _, upd := range rankings {
		byCompetency[upd.CompetencyID] = upd
	}
	return r.store.UpdateMatchingCells(ctx, TableDiagnosisResults, func(row sheetstore.Record) (map[string]interface{}, bool) {
		if row.IntOr("respondent_id", -1) != respondentID {
			return nil, false
		}
		upd, ok := byCompetency[row.IntOr("competency_id", -1)]
		if !ok {
			return nil, false
		}
		active := 1
		if upd.IsActive != nil && !*upd.IsActive {
			active = 0
		}
		return map[string]interface{}{
			"priority_rank": upd.PriorityRank,
			"is_active":     active,
		}, true
	})
}
