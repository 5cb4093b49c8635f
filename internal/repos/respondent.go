package repos

import (
	"context"
	"time"

	"github.com/yungbote/skillbridge-backend/internal/apperr"
	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

const TableRespondents = "respondents"

const createdAtLayout = "2006-01-02 15:04:05"

type RespondentRepo interface {
	Insert(ctx context.Context, name, organization, jobType, careerStage string) (*types.Respondent, error)
	GetByID(ctx context.Context, id int) (*types.Respondent, error)
}

type respondentRepo struct {
	store *sheetstore.Store
	log   *logger.Logger
}

func NewRespondentRepo(store *sheetstore.Store, log *logger.Logger) RespondentRepo {
	return &respondentRepo{store: store, log: log.With("repo", "RespondentRepo")}
}

func (r *respondentRepo) Insert(ctx context.Context, name, organization, jobType, careerStage string) (*types.Respondent, error) {
	id, err := r.store.NextID(ctx, TableRespondents)
	if err != nil {
		return nil, err
	}
	createdAt := time.Now().UTC().Format(createdAtLayout)
	row := []interface{}{id, name, organization, jobType, careerStage, createdAt}
	if err := r.store.AppendRows(ctx, TableRespondents, [][]interface{}{row}); err != nil {
		return nil, err
	}
	return &types.Respondent{
		ID:           id,
		Name:         name,
		Organization: organization,
		JobType:      jobType,
		CareerStage:  careerStage,
		CreatedAt:    createdAt,
	}, nil
}

func (r *respondentRepo) GetByID(ctx context.Context, id int) (*types.Respondent, error) {
	records, err := r.store.Records(ctx, TableRespondents, sheetstore.ClassDynamic)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		recID, err := rec.Int("id")
		if err != nil {
			return nil, err
		}
		if recID != id {
			continue
		}
		return &types.Respondent{
			ID:           recID,
			Name:         rec.Str("name"),
			Organization: rec.Str("organization"),
			JobType:      rec.Str("job_type"),
			CareerStage:  rec.Str("career_stage"),
			CreatedAt:    rec.Str("created_at"),
		}, nil
	}
	return nil, apperr.ErrNotFound
}
