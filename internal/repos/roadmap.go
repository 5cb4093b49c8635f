package repos

import (
	"context"
	"fmt"
	"sort"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

const TableRoadmapItems = "roadmap_items"

type RoadmapRepo interface {
	List(ctx context.Context, respondentID int) ([]types.RoadmapItem, error)
	Insert(ctx context.Context, items []types.RoadmapItem) error
	DeleteByRespondent(ctx context.Context, respondentID int) error
	Reorder(ctx context.Context, respondentID int, items []types.RoadmapReorder) error
}

type roadmapRepo struct {
	store *sheetstore.Store
	log   *logger.Logger
}

func NewRoadmapRepo(store *sheetstore.Store, log *logger.Logger) RoadmapRepo {
	return &roadmapRepo{store: store, log: log.With("repo", "RoadmapRepo")}
}

func (r *roadmapRepo) List(ctx context.Context, respondentID int) ([]types.RoadmapItem, error) {
	records, err := r.store.Records(ctx, TableRoadmapItems, sheetstore.ClassDynamic)
	if err != nil {
		return nil, err
	}
	var out []types.RoadmapItem
	for _, rec := range records {
		if rec.Str("id") == "" {
			continue
		}
		if rec.IntOr("respondent_id", -1) != respondentID {
			continue
		}
		item, err := decodeRoadmapItem(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Phase != out[j].Phase {
			return out[i].Phase < out[j].Phase
		}
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out, nil
}

func decodeRoadmapItem(rec sheetstore.Record) (types.RoadmapItem, error) {
	var item types.RoadmapItem
	var err error
	if item.ID, err = rec.Int("id"); err != nil {
		return item, fmt.Errorf("roadmap row: %w", err)
	}
	if item.RespondentID, err = rec.Int("respondent_id"); err != nil {
		return item, fmt.Errorf("roadmap row %d: %w", item.ID, err)
	}
	if item.CourseID, err = rec.Int("course_id"); err != nil {
		return item, fmt.Errorf("roadmap row %d: %w", item.ID, err)
	}
	if item.CompetencyID, err = rec.Int("competency_id"); err != nil {
		return item, fmt.Errorf("roadmap row %d: %w", item.ID, err)
	}
	if item.OrderIndex, err = rec.Int("order_index"); err != nil {
		return item, fmt.Errorf("roadmap row %d: %w", item.ID, err)
	}
	item.Phase = rec.Str("phase")
	return item, nil
}

// Insert assigns ids from the table's next-id watermark and bulk-appends.
func (r *roadmapRepo) Insert(ctx context.Context, items []types.RoadmapItem) error {
	if len(items) == 0 {
		return nil
	}
	nextID, err := r.store.NextID(ctx, TableRoadmapItems)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{
			nextID, item.RespondentID, item.CourseID, item.CompetencyID, item.OrderIndex, item.Phase,
		})
		nextID++
	}
	return r.store.AppendRows(ctx, TableRoadmapItems, rows)
}

func (r *roadmapRepo) DeleteByRespondent(ctx context.Context, respondentID int) error {
	return r.store.DeleteRowsByRespondent(ctx, TableRoadmapItems, respondentID)
}

// Reorder rewrites order_index and phase on exactly the targeted item ids;
// every other row and column is untouched.
func (r *roadmapRepo) Reorder(ctx context.Context, respondentID int, items []types.RoadmapReorder) error {
	byID := make(map[int]types.RoadmapReorder, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return r.store.UpdateMatchingCells(ctx, TableRoadmapItems, func(row sheetstore.Record) (map[string]interface{}, bool) {
		if row.IntOr("respondent_id", -1) != respondentID {
			return nil, false
		}
		item, ok := byID[row.IntOr("id", -1)]
		if !ok {
			return nil, false
		}
		return map[string]interface{}{
			"order_index": item.OrderIndex,
			"phase":       item.Phase,
		}, true
	})
}
