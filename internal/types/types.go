package types

// Phase bucket labels for roadmap items.
const (
	PhaseOne   = "Phase 1"
	PhaseTwo   = "Phase 2"
	PhaseThree = "Phase 3"
)

// Semester values carried on courses.
const (
	SemesterFirstHalf  = "first-half"
	SemesterSecondHalf = "second-half"
	SemesterAlways     = "always"
)

// SemesterOrder gives the in-competency sort priority of a course. Unknown
// semester values sort last.
func SemesterOrder(semester string) int {
	switch semester {
	case SemesterFirstHalf:
		return 1
	case SemesterSecondHalf:
		return 2
	case SemesterAlways:
		return 3
	default:
		return 99
	}
}

type Respondent struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	JobType      string `json:"job_type"`
	CareerStage  string `json:"career_stage"`
	CreatedAt    string `json:"created_at"`
}

type CompetencyGroup struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	SubCategory *string `json:"sub_category"`
}

type Competency struct {
	ID          int    `json:"id"`
	GroupID     int    `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Scenario struct {
	ID        int    `json:"id"`
	GroupID   int    `json:"group_id"`
	Situation string `json:"situation"`
}

type ScenarioCompetency struct {
	ID           int `json:"id"`
	ScenarioID   int `json:"scenario_id"`
	CompetencyID int `json:"competency_id"`
}

type Course struct {
	ID            int    `json:"id"`
	CompetencyID  int    `json:"competency_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DurationHours int    `json:"duration_hours"`
	Semester      string `json:"semester"`
}

type DiagnosisResult struct {
	ID           int    `json:"id"`
	RespondentID int    `json:"respondent_id"`
	CompetencyID int    `json:"competency_id"`
	ScenarioID   int    `json:"scenario_id"`
	LikertScore  int    `json:"likert_score"`
	PriorityRank *int   `json:"priority_rank"`
	IsActive     bool   `json:"is_active"`
}

// DiagnosisInput is one answer in a diagnosis submission.
type DiagnosisInput struct {
	CompetencyID int `json:"competency_id"`
	ScenarioID   int `json:"scenario_id"`
	LikertScore  int `json:"likert_score"`
}

// RankingUpdate adjusts the stored rank and active flag of one competency's
// diagnosis rows. IsActive defaults to active when omitted.
type RankingUpdate struct {
	CompetencyID int   `json:"competency_id"`
	PriorityRank int   `json:"priority_rank"`
	IsActive     *bool `json:"is_active"`
}

type RoadmapItem struct {
	ID           int    `json:"id"`
	RespondentID int    `json:"respondent_id"`
	CourseID     int    `json:"course_id"`
	CompetencyID int    `json:"competency_id"`
	OrderIndex   int    `json:"order_index"`
	Phase        string `json:"phase"`
}

// RoadmapReorder mutates exactly the order_index and phase of one item.
type RoadmapReorder struct {
	ID         int    `json:"id"`
	OrderIndex int    `json:"order_index"`
	Phase      string `json:"phase"`
}

// --- read-side views ---

type CompetencyView struct {
	ID          int     `json:"id"`
	GroupID     int     `json:"group_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	GroupName   string  `json:"group_name"`
	SubCategory *string `json:"sub_category"`
}

type ScenarioView struct {
	ID           int          `json:"id"`
	GroupID      int          `json:"group_id"`
	Situation    string       `json:"situation"`
	GroupName    string       `json:"group_name"`
	SubCategory  *string      `json:"sub_category"`
	Competencies []Competency `json:"competencies"`
}

// DiagnosisSummary is the aggregated per-competency diagnosis view. Count,
// average and score are re-derived from the raw rows on every read; only
// the rank is trusted from storage.
type DiagnosisSummary struct {
	CompetencyID          int     `json:"competency_id"`
	CompetencyName        string  `json:"competency_name"`
	CompetencyDescription string  `json:"competency_description"`
	GroupName             string  `json:"group_name"`
	SelectionCount        int     `json:"selection_count"`
	AvgLikert             float64 `json:"avg_likert"`
	Score                 float64 `json:"score"`
	PriorityRank          *int    `json:"priority_rank"`
	IsActive              bool    `json:"is_active"`
}

type CourseView struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DurationHours int    `json:"duration_hours"`
	Semester      string `json:"semester"`
}

type CompetencyCourses struct {
	CompetencyID   int          `json:"competency_id"`
	CompetencyName string       `json:"competency_name"`
	PriorityRank   *int         `json:"priority_rank"`
	Courses        []CourseView `json:"courses"`
}

type RoadmapEntry struct {
	ID                int    `json:"id"`
	OrderIndex        int    `json:"order_index"`
	Phase             string `json:"phase"`
	CompetencyID      int    `json:"competency_id"`
	CompetencyName    string `json:"competency_name"`
	CourseID          int    `json:"course_id"`
	CourseName        string `json:"course_name"`
	CourseDescription string `json:"course_description"`
	DurationHours     int    `json:"duration_hours"`
	Semester          string `json:"semester"`
}
