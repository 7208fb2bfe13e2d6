package criteria

import (
	"github.com/ahrav/go-cohort/internal/domain"
)

var _ domain.Criterion = (*LonelyMemberCriterion)(nil)

// LonelyMemberCriterion scores a whole group at once: 1.0 when every
// member's answer content is shared by at least one other member, 0.0
// when anyone is alone with a unique answer.
//
// It expresses preference-satisfaction constraints such as never placing
// a student in a group where they are the only one from their college or
// the only one preferring a given meeting time.
//
// A single answer scores 0.0, since that member is by definition the
// only one with their answer.
type LonelyMemberCriterion struct{}

// NewLonelyMemberCriterion creates a criterion that penalizes unique answers.
func NewLonelyMemberCriterion() *LonelyMemberCriterion { return &LonelyMemberCriterion{} }

// Kind returns KindLonelyMember.
func (c *LonelyMemberCriterion) Kind() string { return KindLonelyMember }

// Scope returns domain.ScopeGroup; the weighted scorer evaluates this
// criterion once over all of a group's answers rather than per pair.
func (c *LonelyMemberCriterion) Scope() domain.CriterionScope { return domain.ScopeGroup }

// Score returns 1.0 iff no answer content is unique within the group.
// Checkbox selections compare as sets. Returns ErrNoAnswers for an empty
// slice and domain.ErrInvalidAnswer if any answer is invalid for q.
func (c *LonelyMemberCriterion) Score(q domain.Question, answers []domain.Answer) (float64, error) {
	if err := validateAnswers(q, answers); err != nil {
		return 0, err
	}
	if len(answers) == 1 {
		return 0.0, nil
	}
	counts := make(map[string]int, len(answers))
	for _, ans := range answers {
		counts[contentKey(ans)]++
	}
	for _, freq := range counts {
		if freq == 1 {
			return 0.0, nil
		}
	}
	return 1.0, nil
}
