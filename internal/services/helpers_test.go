package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore/sheetstest"
)

func nopLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// testEnv wires the full service stack over an in-memory sheet API with a
// small fixed reference dataset:
//
//	group 1 "Core Skills"    (no sub-category, visible to everyone)
//	group 2 "Leadership"     (sub-category "mid", scoped by career stage)
//	group 3 "Job Competency" (sub-category "engineer", scoped by job type)
type testEnv struct {
	api        *sheetstest.InMemoryAPI
	store      *sheetstore.Store
	respondent RespondentService
	diagnosis  DiagnosisService
	roadmap    RoadmapService
}

func newTestEnv() *testEnv {
	api := sheetstest.New()
	api.Seed("respondents", [][]string{
		{"id", "name", "organization", "job_type", "career_stage", "created_at"},
	})
	api.Seed("diagnosis_results", [][]string{
		{"id", "respondent_id", "competency_id", "scenario_id", "likert_score", "priority_rank", "is_active"},
	})
	api.Seed("roadmap_items", [][]string{
		{"id", "respondent_id", "course_id", "competency_id", "order_index", "phase"},
	})
	api.Seed("competency_groups", [][]string{
		{"id", "name", "sub_category"},
		{"1", "Core Skills", ""},
		{"2", "Leadership", "mid"},
		{"3", "Job Competency", "engineer"},
	})
	api.Seed("competencies", [][]string{
		{"id", "group_id", "name", "description"},
		{"101", "1", "Communication", "Clear written and spoken messages"},
		{"102", "1", "Analysis", "Breaking problems down"},
		{"103", "2", "Coaching", "Growing team members"},
		{"104", "3", "Systems Design", "Designing reliable systems"},
	})
	api.Seed("scenarios", [][]string{
		{"id", "group_id", "situation"},
		{"201", "1", "A stakeholder misreads your status update"},
		{"202", "2", "A report is stuck on a task for a week"},
	})
	api.Seed("scenario_competencies", [][]string{
		{"id", "scenario_id", "competency_id"},
		{"1", "201", "101"},
		{"2", "201", "102"},
		{"3", "202", "103"},
	})
	api.Seed("courses", [][]string{
		{"id", "competency_id", "name", "description", "duration_hours", "semester"},
		{"301", "101", "Writing for Engineers", "", "8", "always"},
		{"302", "101", "Presentation Basics", "", "4", "first-half"},
		{"303", "101", "Difficult Conversations", "", "6", "second-half"},
		{"304", "102", "Root Cause Analysis", "", "10", "first-half"},
		{"305", "103", "Coaching Fundamentals", "", "12", ""},
		{"306", "104", "Distributed Systems", "", "20", "first-half"},
	})

	log := nopLogger()
	store := sheetstore.NewStore(api, log, sheetstore.Config{
		DynamicTTL:   time.Minute,
		ReferenceTTL: time.Minute,
	})
	respondentRepo := repos.NewRespondentRepo(store, log)
	diagnosisRepo := repos.NewDiagnosisRepo(store, log)
	roadmapRepo := repos.NewRoadmapRepo(store, log)
	referenceRepo := repos.NewReferenceRepo(store, log)

	return &testEnv{
		api:        api,
		store:      store,
		respondent: NewRespondentService(log, respondentRepo, referenceRepo),
		diagnosis:  NewDiagnosisService(log, diagnosisRepo, referenceRepo),
		roadmap:    NewRoadmapService(log, diagnosisRepo, roadmapRepo, referenceRepo),
	}
}

// respondentRows returns the data rows of a table belonging to one
// respondent, straight from the backing grid.
func (e *testEnv) respondentRows(table string, respondentID string) [][]string {
	var out [][]string
	for i, row := range e.api.Tables[table] {
		if i == 0 {
			continue
		}
		if len(row) > 1 && row[1] == respondentID {
			out = append(out, row)
		}
	}
	return out
}
