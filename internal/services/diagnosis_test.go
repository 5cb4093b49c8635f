package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillbridge-backend/internal/apperr"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

func result(competencyID, likert int) types.DiagnosisResult {
	return types.DiagnosisResult{CompetencyID: competencyID, LikertScore: likert, IsActive: true}
}

func TestRankByScore(t *testing.T) {
	cases := []struct {
		name string
		rows []types.DiagnosisResult
		want map[int]int
	}{
		{
			name: "no_rows",
			rows: nil,
			want: map[int]int{},
		},
		{
			name: "count_times_mean",
			// A: 2 selections, mean 4.5, score 9. B: 1 selection, score 3.
			rows: []types.DiagnosisResult{result(1, 5), result(1, 4), result(2, 3)},
			want: map[int]int{1: 1, 2: 2},
		},
		{
			name: "count_outweighs_single_high_score",
			// 3x3=9 beats 1x5=5.
			rows: []types.DiagnosisResult{result(1, 5), result(2, 3), result(2, 3), result(2, 3)},
			want: map[int]int{2: 1, 1: 2},
		},
		{
			name: "tie_breaks_toward_lower_competency_id",
			rows: []types.DiagnosisResult{result(9, 4), result(3, 4), result(5, 4)},
			want: map[int]int{3: 1, 5: 2, 9: 3},
		},
		{
			name: "ranks_are_dense",
			rows: []types.DiagnosisResult{
				result(1, 2), result(2, 5), result(3, 3), result(4, 4),
			},
			want: map[int]int{2: 1, 4: 2, 3: 3, 1: 4},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rankByScore(tc.rows))
		})
	}
}

func TestSaveComputesAndPersistsRanks(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	rankMap, err := env.diagnosis.Save(ctx, 7, []types.DiagnosisInput{
		{CompetencyID: 101, ScenarioID: 201, LikertScore: 5},
		{CompetencyID: 101, ScenarioID: 201, LikertScore: 4},
		{CompetencyID: 102, ScenarioID: 201, LikertScore: 3},
	})
	require.NoError(t, err)
	require.Equal(t, map[int]int{101: 1, 102: 2}, rankMap)

	// Ranks are written onto every stored row, not just computed.
	rows := env.respondentRows("diagnosis_results", "7")
	require.Len(t, rows, 3)
	for _, row := range rows {
		switch row[2] {
		case "101":
			require.Equal(t, "1", row[5])
		case "102":
			require.Equal(t, "2", row[5])
		default:
			t.Fatalf("unexpected competency in row %v", row)
		}
		require.Equal(t, "1", row[6], "new rows must be active")
	}
}

func TestSaveReplacesPreviousSubmission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.diagnosis.Save(ctx, 7, []types.DiagnosisInput{
		{CompetencyID: 101, ScenarioID: 201, LikertScore: 5},
		{CompetencyID: 102, ScenarioID: 201, LikertScore: 4},
	})
	require.NoError(t, err)
	_, err = env.diagnosis.Save(ctx, 8, []types.DiagnosisInput{
		{CompetencyID: 103, ScenarioID: 202, LikertScore: 2},
	})
	require.NoError(t, err)

	// Resubmission replaces respondent 7's rows and leaves respondent 8 alone.
	rankMap, err := env.diagnosis.Save(ctx, 7, []types.DiagnosisInput{
		{CompetencyID: 103, ScenarioID: 202, LikertScore: 3},
	})
	require.NoError(t, err)
	require.Equal(t, map[int]int{103: 1}, rankMap)

	require.Len(t, env.respondentRows("diagnosis_results", "7"), 1)
	require.Len(t, env.respondentRows("diagnosis_results", "8"), 1)

	summaries, err := env.diagnosis.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 103, summaries[0].CompetencyID)
}

func TestSaveValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.diagnosis.Save(ctx, 0, []types.DiagnosisInput{{CompetencyID: 101, ScenarioID: 201, LikertScore: 3}})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = env.diagnosis.Save(ctx, 7, nil)
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestComputePrioritiesIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.diagnosis.Save(ctx, 7, []types.DiagnosisInput{
		{CompetencyID: 101, ScenarioID: 201, LikertScore: 4},
		{CompetencyID: 102, ScenarioID: 201, LikertScore: 4},
		{CompetencyID: 103, ScenarioID: 202, LikertScore: 5},
	})
	require.NoError(t, err)

	first, err := env.diagnosis.ComputePriorities(ctx, 7)
	require.NoError(t, err)
	second, err := env.diagnosis.ComputePriorities(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, first, second, "recomputing on unchanged data must not reshuffle ranks")
}

func TestGetAggregatesAndOrders(t *testing.T) {
	env := newTestEnv()
	// Raw rows: 101 ranked 2, 102 unranked, 103 ranked 1 across two rows.
	env.api.Seed("diagnosis_results", [][]string{
		{"id", "respondent_id", "competency_id", "scenario_id", "likert_score", "priority_rank", "is_active"},
		{"1", "7", "101", "201", "4", "2", "1"},
		{"2", "7", "102", "201", "3", "", "1"},
		{"3", "7", "103", "202", "5", "1", "1"},
		{"4", "7", "103", "202", "4", "1", "1"},
		{"5", "7", "104", "201", "5", "", "0"},
		{"6", "8", "101", "201", "1", "1", "1"},
	})

	summaries, err := env.diagnosis.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, summaries, 3, "inactive rows and other respondents are excluded")

	// Ranked ascending first, unranked last.
	require.Equal(t, 103, summaries[0].CompetencyID)
	require.Equal(t, 101, summaries[1].CompetencyID)
	require.Equal(t, 102, summaries[2].CompetencyID)
	require.Nil(t, summaries[2].PriorityRank)

	top := summaries[0]
	require.Equal(t, 2, top.SelectionCount)
	require.Equal(t, 4.5, top.AvgLikert)
	require.Equal(t, 9.0, top.Score)
	require.Equal(t, "Coaching", top.CompetencyName)
	require.Equal(t, "Leadership", top.GroupName)
}

func TestGetEmptyRespondent(t *testing.T) {
	env := newTestEnv()
	summaries, err := env.diagnosis.Get(context.Background(), 99)
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestUpdateRankings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.diagnosis.Save(ctx, 7, []types.DiagnosisInput{
		{CompetencyID: 101, ScenarioID: 201, LikertScore: 5},
		{CompetencyID: 102, ScenarioID: 201, LikertScore: 4},
	})
	require.NoError(t, err)

	inactive := false
	err = env.diagnosis.UpdateRankings(ctx, 7, []types.RankingUpdate{
		{CompetencyID: 102, PriorityRank: 1, IsActive: &inactive},
	})
	require.NoError(t, err)

	rows := env.respondentRows("diagnosis_results", "7")
	for _, row := range rows {
		switch row[2] {
		case "101":
			require.Equal(t, "1", row[5], "untargeted competency keeps its rank")
			require.Equal(t, "1", row[6])
		case "102":
			require.Equal(t, "1", row[5])
			require.Equal(t, "0", row[6], "is_active false deactivates the row")
		}
	}

	// Deactivated competencies drop out of the read view.
	summaries, err := env.diagnosis.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 101, summaries[0].CompetencyID)
}

func TestUpdateRankingsValidation(t *testing.T) {
	env := newTestEnv()
	err := env.diagnosis.UpdateRankings(context.Background(), 7, nil)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("err=%v, want ErrInvalidArgument", err)
	}
}
