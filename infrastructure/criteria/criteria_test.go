package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-cohort/internal/domain"
)

func numericQuestion(t *testing.T) domain.Question {
	t.Helper()
	q, err := domain.NewNumericQuestion("q1", "Hours per week?", 0, 10)
	require.NoError(t, err)
	return q
}

func choiceQuestion(t *testing.T) domain.Question {
	t.Helper()
	q, err := domain.NewMultipleChoiceQuestion("q1", "College?", []string{"Innis", "Trinity", "Victoria"})
	require.NoError(t, err)
	return q
}

func TestHomogeneousCriterion_Score(t *testing.T) {
	q := numericQuestion(t)
	c := NewHomogeneousCriterion()

	tests := []struct {
		name    string
		answers []domain.Answer
		want    float64
		wantErr error
	}{
		{
			name:    "no answers",
			wantErr: ErrNoAnswers,
		},
		{
			name:    "single answer is identical to itself",
			answers: []domain.Answer{domain.IntAnswer(4)},
			want:    1.0,
		},
		{
			name:    "identical pair",
			answers: []domain.Answer{domain.IntAnswer(4), domain.IntAnswer(4)},
			want:    1.0,
		},
		{
			name: "mean over every unordered pair",
			// Pairs (0,10)=0, (0,5)=0.5, (10,5)=0.5 over three pairs.
			answers: []domain.Answer{domain.IntAnswer(0), domain.IntAnswer(10), domain.IntAnswer(5)},
			want:    1.0 / 3.0,
		},
		{
			name:    "invalid answer",
			answers: []domain.Answer{domain.IntAnswer(4), domain.IntAnswer(42)},
			wantErr: domain.ErrInvalidAnswer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Score(q, tt.answers)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHeterogeneousCriterion_Score(t *testing.T) {
	q := numericQuestion(t)
	c := NewHeterogeneousCriterion()

	tests := []struct {
		name    string
		answers []domain.Answer
		want    float64
	}{
		{
			name:    "single answer is never different from itself",
			answers: []domain.Answer{domain.IntAnswer(4)},
			want:    0.0,
		},
		{
			name:    "identical pair",
			answers: []domain.Answer{domain.IntAnswer(4), domain.IntAnswer(4)},
			want:    0.0,
		},
		{
			name:    "opposite extremes",
			answers: []domain.Answer{domain.IntAnswer(0), domain.IntAnswer(10)},
			want:    1.0,
		},
		{
			name:    "complement of the homogeneous mean",
			answers: []domain.Answer{domain.IntAnswer(0), domain.IntAnswer(10), domain.IntAnswer(5)},
			want:    2.0 / 3.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Score(q, tt.answers)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLonelyMemberCriterion_Score(t *testing.T) {
	q := choiceQuestion(t)
	c := NewLonelyMemberCriterion()

	tests := []struct {
		name    string
		answers []domain.Answer
		want    float64
	}{
		{
			name:    "single answer is by definition unique",
			answers: []domain.Answer{domain.OptionAnswer("Innis")},
			want:    0.0,
		},
		{
			name: "everyone shares their answer",
			answers: []domain.Answer{
				domain.OptionAnswer("Innis"), domain.OptionAnswer("Innis"),
				domain.OptionAnswer("Trinity"), domain.OptionAnswer("Trinity"),
			},
			want: 1.0,
		},
		{
			name: "one member left alone",
			answers: []domain.Answer{
				domain.OptionAnswer("Innis"), domain.OptionAnswer("Innis"),
				domain.OptionAnswer("Victoria"),
			},
			want: 0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Score(q, tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLonelyMemberCriterion_CheckboxComparesAsSets(t *testing.T) {
	q, err := domain.NewCheckboxQuestion("q1", "Skills?", []string{"a", "b"})
	require.NoError(t, err)
	c := NewLonelyMemberCriterion()

	score, err := c.Score(q, []domain.Answer{
		domain.ListAnswer("a", "b"),
		domain.ListAnswer("b", "a"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score, "selection order must not make an answer unique")
}

func TestCriterionScopes(t *testing.T) {
	assert.Equal(t, domain.ScopePairwise, NewHomogeneousCriterion().Scope())
	assert.Equal(t, domain.ScopePairwise, NewHeterogeneousCriterion().Scope())
	assert.Equal(t, domain.ScopeGroup, NewLonelyMemberCriterion().Scope())
}

func TestFromKind(t *testing.T) {
	for _, kind := range []string{KindHomogeneous, KindHeterogeneous, KindLonelyMember} {
		c, err := FromKind(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, c.Kind())
	}

	_, err := FromKind("telepathic")
	assert.ErrorIs(t, err, ErrUnknownCriterion)
}
