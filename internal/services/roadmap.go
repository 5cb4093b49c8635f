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

// unrankedSentinel sorts competencies without a rank after every ranked one
// in the course listing.
const unrankedSentinel = 999

type RoadmapService interface {
	Courses(ctx context.Context, respondentID int) ([]types.CompetencyCourses, error)
	Generate(ctx context.Context, respondentID int) error
	Get(ctx context.Context, respondentID int) (map[string][]types.RoadmapEntry, error)
	Update(ctx context.Context, respondentID int, items []types.RoadmapReorder) error
}

type roadmapService struct {
	log           *logger.Logger
	diagnosisRepo repos.DiagnosisRepo
	roadmapRepo   repos.RoadmapRepo
	referenceRepo repos.ReferenceRepo
}

func NewRoadmapService(log *logger.Logger, diagnosisRepo repos.DiagnosisRepo, roadmapRepo repos.RoadmapRepo, referenceRepo repos.ReferenceRepo) RoadmapService {
	return &roadmapService{
		log:           log.With("service", "RoadmapService"),
		diagnosisRepo: diagnosisRepo,
		roadmapRepo:   roadmapRepo,
		referenceRepo: referenceRepo,
	}
}

// minRankByCompetency takes the minimum stored rank per competency,
// defensive against duplicate or partially stale rank writes.
func minRankByCompetency(rows []types.DiagnosisResult) map[int]int {
	ranks := make(map[int]int)
	for _, row := range rows {
		if row.PriorityRank == nil {
			continue
		}
		if cur, ok := ranks[row.CompetencyID]; !ok || *row.PriorityRank < cur {
			ranks[row.CompetencyID] = *row.PriorityRank
		}
	}
	return ranks
}

// phaseCuts splits total ranked competencies into three sequential phases.
// Phase 1 always gets at least one competency; phase 2 starts strictly
// after phase 1 even when the thirds collapse for small totals.
func phaseCuts(total int) (phase1Cut, phase2Cut int) {
	phase1Cut = total / 3
	if phase1Cut < 1 {
		phase1Cut = 1
	}
	phase2Cut = 2 * total / 3
	if phase2Cut < phase1Cut+1 {
		phase2Cut = phase1Cut + 1
	}
	return phase1Cut, phase2Cut
}

func phaseForPosition(i, phase1Cut, phase2Cut int) string {
	switch {
	case i < phase1Cut:
		return types.PhaseOne
	case i < phase2Cut:
		return types.PhaseTwo
	default:
		return types.PhaseThree
	}
}

func sortCoursesBySemester(courses []types.Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		return types.SemesterOrder(courses[i].Semester) < types.SemesterOrder(courses[j].Semester)
	})
}

// Courses lists every course for the competencies the respondent was
// diagnosed on, grouped per competency, with the current rank attached.
// Competencies sort by rank ascending, unranked last.
func (s *roadmapService) Courses(ctx context.Context, respondentID int) ([]types.CompetencyCourses, error) {
	diagRows, err := s.diagnosisRepo.ListActive(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	if len(diagRows) == 0 {
		return []types.CompetencyCourses{}, nil
	}

	ranks := minRankByCompetency(diagRows)
	activeCompetencies := make(map[int]bool)
	for _, row := range diagRows {
		activeCompetencies[row.CompetencyID] = true
	}

	allCourses, err := s.referenceRepo.Courses(ctx)
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

	grouped := make(map[int]*types.CompetencyCourses)
	for _, course := range allCourses {
		if !activeCompetencies[course.CompetencyID] {
			continue
		}
		entry, ok := grouped[course.CompetencyID]
		if !ok {
			entry = &types.CompetencyCourses{
				CompetencyID:   course.CompetencyID,
				CompetencyName: competencyByID[course.CompetencyID].Name,
				Courses:        []types.CourseView{},
			}
			if rank, ok := ranks[course.CompetencyID]; ok {
				r := rank
				entry.PriorityRank = &r
			}
			grouped[course.CompetencyID] = entry
		}
		entry.Courses = append(entry.Courses, types.CourseView{
			ID:            course.ID,
			Name:          course.Name,
			Description:   course.Description,
			DurationHours: course.DurationHours,
			Semester:      course.Semester,
		})
	}

	out := make([]types.CompetencyCourses, 0, len(grouped))
	for _, entry := range grouped {
		sort.SliceStable(entry.Courses, func(i, j int) bool {
			return types.SemesterOrder(entry.Courses[i].Semester) < types.SemesterOrder(entry.Courses[j].Semester)
		})
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := unrankedSentinel, unrankedSentinel
		if out[i].PriorityRank != nil {
			ri = *out[i].PriorityRank
		}
		if out[j].PriorityRank != nil {
			rj = *out[j].PriorityRank
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].CompetencyID < out[j].CompetencyID
	})
	return out, nil
}

// Generate builds the phased course plan from ranked competencies and
// replaces any existing roadmap for the respondent. Courses inside a
// competency follow the semester priority; order_index increases strictly
// across the whole plan.
func (s *roadmapService) Generate(ctx context.Context, respondentID int) error {
	diagRows, err := s.diagnosisRepo.ListActive(ctx, respondentID)
	if err != nil {
		return err
	}
	ranks := minRankByCompetency(diagRows)
	if len(ranks) == 0 {
		return fmt.Errorf("%w: no ranked diagnosis results", apperr.ErrNotFound)
	}

	type rankedCompetency struct {
		competencyID int
		rank         int
	}
	sorted := make([]rankedCompetency, 0, len(ranks))
	for competencyID, rank := range ranks {
		sorted = append(sorted, rankedCompetency{competencyID: competencyID, rank: rank})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].rank != sorted[j].rank {
			return sorted[i].rank < sorted[j].rank
		}
		return sorted[i].competencyID < sorted[j].competencyID
	})

	allCourses, err := s.referenceRepo.Courses(ctx)
	if err != nil {
		return err
	}
	coursesByCompetency := make(map[int][]types.Course)
	for _, course := range allCourses {
		coursesByCompetency[course.CompetencyID] = append(coursesByCompetency[course.CompetencyID], course)
	}
	for competencyID := range coursesByCompetency {
		sortCoursesBySemester(coursesByCompetency[competencyID])
	}

	phase1Cut, phase2Cut := phaseCuts(len(sorted))

	// Replace semantics: a failure between delete and insert leaves an
	// empty roadmap. Accepted; the next generate rebuilds it.
	if err := s.roadmapRepo.DeleteByRespondent(ctx, respondentID); err != nil {
		return fmt.Errorf("delete previous roadmap: %w", err)
	}

	var items []types.RoadmapItem
	orderIndex := 0
	for i, rc := range sorted {
		phase := phaseForPosition(i, phase1Cut, phase2Cut)
		for _, course := range coursesByCompetency[rc.competencyID] {
			items = append(items, types.RoadmapItem{
				RespondentID: respondentID,
				CourseID:     course.ID,
				CompetencyID: rc.competencyID,
				OrderIndex:   orderIndex,
				Phase:        phase,
			})
			orderIndex++
		}
	}

	if err := s.roadmapRepo.Insert(ctx, items); err != nil {
		return fmt.Errorf("insert roadmap items: %w", err)
	}
	s.log.Info("Generated roadmap", "respondent_id", respondentID, "items", len(items), "competencies", len(sorted))
	return nil
}

// Get returns the roadmap grouped into the three fixed phase buckets, each
// ordered by ascending order_index. A respondent without a roadmap gets
// empty buckets, not an error.
func (s *roadmapService) Get(ctx context.Context, respondentID int) (map[string][]types.RoadmapEntry, error) {
	phases := map[string][]types.RoadmapEntry{
		types.PhaseOne:   {},
		types.PhaseTwo:   {},
		types.PhaseThree: {},
	}

	items, err := s.roadmapRepo.List(ctx, respondentID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return phases, nil
	}

	allCourses, err := s.referenceRepo.Courses(ctx)
	if err != nil {
		return nil, err
	}
	competencies, err := s.referenceRepo.Competencies(ctx)
	if err != nil {
		return nil, err
	}
	courseByID := make(map[int]types.Course, len(allCourses))
	for _, c := range allCourses {
		courseByID[c.ID] = c
	}
	competencyByID := make(map[int]types.Competency, len(competencies))
	for _, c := range competencies {
		competencyByID[c.ID] = c
	}

	for _, item := range items {
		course := courseByID[item.CourseID]
		entry := types.RoadmapEntry{
			ID:                item.ID,
			OrderIndex:        item.OrderIndex,
			Phase:             item.Phase,
			CompetencyID:      item.CompetencyID,
			CompetencyName:    competencyByID[item.CompetencyID].Name,
			CourseID:          item.CourseID,
			CourseName:        course.Name,
			CourseDescription: course.Description,
			DurationHours:     course.DurationHours,
			Semester:          course.Semester,
		}
		if _, ok := phases[item.Phase]; ok {
			phases[item.Phase] = append(phases[item.Phase], entry)
		}
	}
	for phase := range phases {
		bucket := phases[phase]
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].OrderIndex < bucket[j].OrderIndex
		})
		phases[phase] = bucket
	}
	return phases, nil
}

// Update applies order_index/phase changes to the targeted item ids only.
// Uniqueness of the resulting order is the caller's responsibility.
func (s *roadmapService) Update(ctx context.Context, respondentID int, items []types.RoadmapReorder) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items are required", apperr.ErrInvalidArgument)
	}
	return s.roadmapRepo.Reorder(ctx, respondentID, items)
}
