package criteria

import (
	"github.com/ahrav/go-cohort/internal/domain"
)

var _ domain.Criterion = (*HeterogeneousCriterion)(nil)

// HeterogeneousCriterion scores a set of answers by how different they
// are: the complement of the homogeneous score. Use it for questions
// where a group benefits from diverse answers, such as complementary
// skills or preferred roles.
//
// A single answer scores 0.0, as an answer is never different from itself.
type HeterogeneousCriterion struct {
	similarity *HomogeneousCriterion
}

// NewHeterogeneousCriterion creates a criterion that rewards diversity.
func NewHeterogeneousCriterion() *HeterogeneousCriterion {
	return &HeterogeneousCriterion{similarity: NewHomogeneousCriterion()}
}

// Kind returns KindHeterogeneous.
func (c *HeterogeneousCriterion) Kind() string { return KindHeterogeneous }

// Scope returns domain.ScopePairwise.
func (c *HeterogeneousCriterion) Scope() domain.CriterionScope { return domain.ScopePairwise }

// Score returns one minus the mean pairwise similarity of the answers.
// Returns ErrNoAnswers for an empty slice and domain.ErrInvalidAnswer if
// any answer is invalid for q.
func (c *HeterogeneousCriterion) Score(q domain.Question, answers []domain.Answer) (float64, error) {
	score, err := c.similarity.Score(q, answers)
	if err != nil {
		return 0, err
	}
	return 1.0 - score, nil
}
