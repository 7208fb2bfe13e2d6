package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerConstructors(t *testing.T) {
	t.Run("payloads round-trip through Content", func(t *testing.T) {
		assert.Equal(t, "Innis", OptionAnswer("Innis").Content())
		assert.Equal(t, true, BoolAnswer(true).Content())
		assert.Equal(t, 4, IntAnswer(4).Content())
		assert.Equal(t, []string{"a", "b"}, ListAnswer("a", "b").Content())
		assert.Equal(t, "compilers", TextAnswer("compilers").Content())
	})

	t.Run("checkbox payload is copied on construction", func(t *testing.T) {
		selected := []string{"a", "b"}
		ans := ListAnswer(selected...)
		selected[0] = "mutated"
		assert.Equal(t, []string{"a", "b"}, ans.Content())
	})
}

func TestNewStudent(t *testing.T) {
	t.Run("rejects empty ID", func(t *testing.T) {
		_, err := NewStudent("", "Ada", nil)
		assert.Error(t, err)
	})

	t.Run("copies the answers map", func(t *testing.T) {
		answers := map[string]Answer{"q1": BoolAnswer(true)}
		s, err := NewStudent("s1", "Ada", answers)
		require.NoError(t, err)

		answers["q2"] = BoolAnswer(false)
		assert.True(t, s.HasAnswer("q1"))
		assert.False(t, s.HasAnswer("q2"))
	})

	t.Run("exposes recorded answers", func(t *testing.T) {
		s, err := NewStudent("s1", "Ada", map[string]Answer{"q1": IntAnswer(4)})
		require.NoError(t, err)
		assert.Equal(t, "s1", s.ID())
		assert.Equal(t, "Ada", s.Name())

		ans, ok := s.Answer("q1")
		require.True(t, ok)
		assert.Equal(t, 4, ans.Content())

		_, ok = s.Answer("absent")
		assert.False(t, ok)
	})
}

func TestRosterAllAnswered(t *testing.T) {
	q, err := NewYesNoQuestion("morning", "Morning person?")
	require.NoError(t, err)
	survey, err := NewSurvey([]CriterionBinding{
		{Question: q, Criterion: similarityCriterion{}, Weight: 1},
	})
	require.NoError(t, err)

	complete, err := NewStudent("s1", "Ada", map[string]Answer{"morning": BoolAnswer(true)})
	require.NoError(t, err)
	missing, err := NewStudent("s2", "Grace", nil)
	require.NoError(t, err)
	invalid, err := NewStudent("s3", "Edsger", map[string]Answer{"morning": IntAnswer(7)})
	require.NoError(t, err)

	tests := []struct {
		name     string
		students []*Student
		want     bool
	}{
		{"all answers present and valid", []*Student{complete}, true},
		{"missing answer", []*Student{complete, missing}, false},
		{"invalid answer", []*Student{complete, invalid}, false},
		{"empty roster", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster, err := NewRoster(tt.students)
			require.NoError(t, err)
			assert.Equal(t, tt.want, roster.AllAnswered(survey))
		})
	}
}
