package criteria

import (
	"github.com/ahrav/go-cohort/internal/domain"
)

var _ domain.Criterion = (*HomogeneousCriterion)(nil)

// HomogeneousCriterion scores a set of answers by how similar they are.
// It is the default criterion for categorical-match and numeric-distance
// scoring: the question variant supplies the similarity measure, and
// this criterion averages it over every unordered pair of answers.
//
// A single answer scores 1.0, as an answer is always identical to itself.
type HomogeneousCriterion struct{}

// NewHomogeneousCriterion creates a criterion that rewards similarity.
func NewHomogeneousCriterion() *HomogeneousCriterion { return &HomogeneousCriterion{} }

// Kind returns KindHomogeneous.
func (c *HomogeneousCriterion) Kind() string { return KindHomogeneous }

// Scope returns domain.ScopePairwise; the weighted scorer evaluates this
// criterion once per unordered pair of group members.
func (c *HomogeneousCriterion) Scope() domain.CriterionScope { return domain.ScopePairwise }

// Score returns the mean pairwise similarity of the answers, in [0,1].
// Returns ErrNoAnswers for an empty slice and domain.ErrInvalidAnswer if
// any answer is invalid for q.
func (c *HomogeneousCriterion) Score(q domain.Question, answers []domain.Answer) (float64, error) {
	if err := validateAnswers(q, answers); err != nil {
		return 0, err
	}
	if len(answers) == 1 {
		return 1.0, nil
	}
	total := 0.0
	pairs := 0
	for i := 0; i < len(answers); i++ {
		for j := i + 1; j < len(answers); j++ {
			total += q.Similarity(answers[i], answers[j])
			pairs++
		}
	}
	return total / float64(pairs), nil
}
