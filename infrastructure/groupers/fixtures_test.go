package groupers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-cohort/infrastructure/criteria"
	"github.com/ahrav/go-cohort/internal/domain"
)

// mustStudent builds a student or fails the test.
func mustStudent(t *testing.T, id string, answers map[string]domain.Answer) *domain.Student {
	t.Helper()
	s, err := domain.NewStudent(id, "Student "+id, answers)
	require.NoError(t, err)
	return s
}

// mustRoster builds a roster or fails the test.
func mustRoster(t *testing.T, students ...*domain.Student) *domain.Roster {
	t.Helper()
	r, err := domain.NewRoster(students)
	require.NoError(t, err)
	return r
}

// yesNoSurvey binds a single yes/no question to the homogeneous
// criterion with weight 1.
func yesNoSurvey(t *testing.T) *domain.Survey {
	t.Helper()
	q, err := domain.NewYesNoQuestion("morning", "Do you prefer morning meetings?")
	require.NoError(t, err)
	sv, err := domain.NewSurvey([]domain.CriterionBinding{
		{Question: q, Criterion: criteria.NewHomogeneousCriterion(), Weight: 1},
	})
	require.NoError(t, err)
	return sv
}

// yesNoRoster builds one student per preference, IDs in the order given.
func yesNoRoster(t *testing.T, prefs map[string]bool) *domain.Roster {
	t.Helper()
	students := make([]*domain.Student, 0, len(prefs))
	for id, pref := range prefs {
		students = append(students, mustStudent(t, id, map[string]domain.Answer{
			"morning": domain.BoolAnswer(pref),
		}))
	}
	return mustRoster(t, students...)
}

// collegeSurvey binds a single multiple-choice question to the
// lonely-member criterion, so a group scores 1 only when every member
// shares their college with at least one other member.
func collegeSurvey(t *testing.T) *domain.Survey {
	t.Helper()
	q, err := domain.NewMultipleChoiceQuestion("college", "Which college are you in?",
		[]string{"Innis", "Victoria"})
	require.NoError(t, err)
	sv, err := domain.NewSurvey([]domain.CriterionBinding{
		{Question: q, Criterion: criteria.NewLonelyMemberCriterion(), Weight: 1},
	})
	require.NoError(t, err)
	return sv
}

// collegeRoster builds one student per entry mapping ID to college.
func collegeRoster(t *testing.T, colleges map[string]string) *domain.Roster {
	t.Helper()
	students := make([]*domain.Student, 0, len(colleges))
	for id, college := range colleges {
		students = append(students, mustStudent(t, id, map[string]domain.Answer{
			"college": domain.OptionAnswer(college),
		}))
	}
	return mustRoster(t, students...)
}

// groupSizes returns the member count of each group in order.
func groupSizes(p *domain.Partition) []int {
	sizes := make([]int, 0, p.Len())
	for _, g := range p.Groups() {
		sizes = append(sizes, g.Len())
	}
	return sizes
}
