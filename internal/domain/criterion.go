package domain

// CriterionScope tags how the weighted scorer applies a criterion to a
// group's answers.
type CriterionScope string

const (
	// ScopePairwise criteria are evaluated once per unordered pair of
	// distinct group members and summed across pairs.
	ScopePairwise CriterionScope = "pairwise"

	// ScopeGroup criteria are evaluated once over all of a group's
	// answers together.
	ScopeGroup CriterionScope = "group"
)

// Criterion is a single stateless scoring rule evaluated over students'
// answers to one question. Implementations provide different compatibility
// measures such as rewarding similar answers, rewarding diverse answers,
// or penalizing members left alone with a unique answer.
//
// All implementations must be side-effect free and safe for concurrent
// use; the weighted scorer may evaluate disjoint groups in parallel.
type Criterion interface {
	// Kind returns the identifier of this criterion variant, used when
	// binding survey questions to criteria in configuration.
	Kind() string

	// Scope returns how the weighted scorer applies this criterion:
	// once per unordered member pair, or once over the whole group.
	Scope() CriterionScope

	// Score returns a value in [0,1] indicating how well the given
	// answers to q satisfy this criterion; higher means more compatible.
	//
	// For ScopePairwise criteria the scorer passes exactly two answers.
	// For ScopeGroup criteria it passes every member's answer.
	//
	// Returns ErrInvalidAnswer if any answer is not valid for q, and an
	// error for an empty answer slice. A single valid answer is scored
	// by each implementation's own degenerate-case rule.
	Score(q Question, answers []Answer) (float64, error)
}
