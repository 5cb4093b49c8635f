package repos

import (
	"testing"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

func strPtr(s string) *string { return &s }

func TestGroupVisible(t *testing.T) {
	cases := []struct {
		name        string
		group       types.CompetencyGroup
		jobType     string
		careerStage string
		want        bool
	}{
		{
			name:        "no_sub_category_visible_to_everyone",
			group:       types.CompetencyGroup{Name: "Core Skills"},
			jobType:     "engineer",
			careerStage: "early",
			want:        true,
		},
		{
			name:        "empty_sub_category_visible_to_everyone",
			group:       types.CompetencyGroup{Name: GroupLeadership, SubCategory: strPtr("")},
			jobType:     "engineer",
			careerStage: "early",
			want:        true,
		},
		{
			name:        "leadership_matches_career_stage",
			group:       types.CompetencyGroup{Name: GroupLeadership, SubCategory: strPtr("mid")},
			jobType:     "engineer",
			careerStage: "mid",
			want:        true,
		},
		{
			name:        "leadership_rejects_other_career_stage",
			group:       types.CompetencyGroup{Name: GroupLeadership, SubCategory: strPtr("mid")},
			jobType:     "engineer",
			careerStage: "senior",
			want:        false,
		},
		{
			name:        "leadership_ignores_job_type",
			group:       types.CompetencyGroup{Name: GroupLeadership, SubCategory: strPtr("engineer")},
			jobType:     "engineer",
			careerStage: "mid",
			want:        false,
		},
		{
			name:        "job_competency_matches_job_type",
			group:       types.CompetencyGroup{Name: GroupJobCompetency, SubCategory: strPtr("engineer")},
			jobType:     "engineer",
			careerStage: "early",
			want:        true,
		},
		{
			name:        "job_competency_rejects_other_job_type",
			group:       types.CompetencyGroup{Name: GroupJobCompetency, SubCategory: strPtr("engineer")},
			jobType:     "manager",
			careerStage: "early",
			want:        false,
		},
		{
			name:        "unknown_group_with_sub_category_hidden",
			group:       types.CompetencyGroup{Name: "Special", SubCategory: strPtr("engineer")},
			jobType:     "engineer",
			careerStage: "early",
			want:        false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GroupVisible(tc.group, tc.jobType, tc.careerStage); got != tc.want {
				t.Errorf("GroupVisible(%+v, %q, %q)=%v, want %v", tc.group, tc.jobType, tc.careerStage, got, tc.want)
			}
		})
	}
}
