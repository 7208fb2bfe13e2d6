package domain

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// CriterionBinding ties one survey question to the criterion that scores
// it and the weight of its contribution. Weights are relative importance
// multipliers; they do not need to sum to any particular amount.
type CriterionBinding struct {
	Question  Question
	Criterion Criterion
	Weight    float64
}

// Survey is the weighted criterion set of the engine: an ordered
// collection of questions, each bound to a criterion and a non-negative
// weight. It is the single scoring authority consumed by every grouping
// strategy.
//
// A survey is immutable after construction apart from SetWeight and
// SetCriterion, which are meant for setup before any grouper runs.
// Scoring itself is pure and safe to call concurrently on disjoint
// groups.
type Survey struct {
	bindings []CriterionBinding
	byID     map[string]int
}

// NewSurvey creates a survey from the given bindings.
//
// Returns ErrInvalidWeight if any weight is negative or no weight is
// positive, and an error for duplicate or missing question IDs.
func NewSurvey(bindings []CriterionBinding) (*Survey, error) {
	if len(bindings) == 0 {
		return nil, fmt.Errorf("%w: survey has no criteria", ErrInvalidWeight)
	}
	ordered := make([]CriterionBinding, len(bindings))
	copy(ordered, bindings)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Question.ID() < ordered[j].Question.ID()
	})

	byID := make(map[string]int, len(ordered))
	anyPositive := false
	for i, b := range ordered {
		if b.Question == nil || b.Criterion == nil {
			return nil, fmt.Errorf("survey binding %d: question and criterion are required", i)
		}
		if _, dup := byID[b.Question.ID()]; dup {
			return nil, fmt.Errorf("duplicate question id %s", b.Question.ID())
		}
		byID[b.Question.ID()] = i
		if b.Weight < 0 {
			return nil, fmt.Errorf("%w: question %s has negative weight %v",
				ErrInvalidWeight, b.Question.ID(), b.Weight)
		}
		if b.Weight > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return nil, fmt.Errorf("%w: all weights are zero", ErrInvalidWeight)
	}
	return &Survey{bindings: ordered, byID: byID}, nil
}

// Len returns the number of questions in the survey.
func (sv *Survey) Len() int { return len(sv.bindings) }

// Questions returns the survey's questions in ascending ID order.
func (sv *Survey) Questions() []Question {
	out := make([]Question, len(sv.bindings))
	for i, b := range sv.bindings {
		out[i] = b.Question
	}
	return out
}

// Bindings returns a copy of the survey's criterion bindings in
// ascending question ID order.
func (sv *Survey) Bindings() []CriterionBinding {
	out := make([]CriterionBinding, len(sv.bindings))
	copy(out, sv.bindings)
	return out
}

// SetWeight replaces the weight bound to the given question.
// Returns ErrUnknownQuestion if the ID is not part of the survey and
// ErrInvalidWeight for a negative weight.
func (sv *Survey) SetWeight(questionID string, weight float64) error {
	i, ok := sv.byID[questionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if weight < 0 {
		return fmt.Errorf("%w: question %s weight %v", ErrInvalidWeight, questionID, weight)
	}
	sv.bindings[i].Weight = weight
	return nil
}

// SetCriterion replaces the criterion bound to the given question.
// Returns ErrUnknownQuestion if the ID is not part of the survey.
func (sv *Survey) SetCriterion(questionID string, c Criterion) error {
	i, ok := sv.byID[questionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	sv.bindings[i].Criterion = c
	return nil
}

// CriterionScore returns the raw, unweighted score of the criterion
// bound to questionID for the pair of students a and b.
// Criterion scores are symmetric: swapping a and b never changes the
// result.
func (sv *Survey) CriterionScore(questionID string, a, b *Student) (float64, error) {
	i, ok := sv.byID[questionID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	binding := sv.bindings[i]
	answers, err := sv.collectAnswers(binding.Question, []*Student{a, b})
	if err != nil {
		return 0, err
	}
	return binding.Criterion.Score(binding.Question, answers)
}

// ScoreGroup returns the weighted compatibility score of a group.
//
// For every unordered pair of distinct members, each pairwise-scope
// criterion contributes its score multiplied by its normalized weight
// (weight over the sum of all weights); group-scope criteria contribute
// once per group. Contributions are summed across pairs, not averaged,
// so a larger internally consistent group accumulates more pairwise
// evidence and scores higher than a small one. That asymmetry is
// intentional and relied on by the greedy strategy's marginal gain.
//
// A group of one (or zero) members has no pairs and scores 0.
//
// Returns ErrInvalidWeight if the survey's weights sum to zero and
// ErrInvalidAnswer if any member's answer is missing or invalid.
func (sv *Survey) ScoreGroup(members []*Student) (float64, error) {
	totalWeight := 0.0
	for _, b := range sv.bindings {
		totalWeight += b.Weight
	}
	if totalWeight <= 0 {
		return 0, fmt.Errorf("%w: weights sum to %v", ErrInvalidWeight, totalWeight)
	}
	if len(members) <= 1 {
		return 0, nil
	}

	total := 0.0
	for _, binding := range sv.bindings {
		if binding.Weight == 0 {
			continue
		}
		answers, err := sv.collectAnswers(binding.Question, members)
		if err != nil {
			return 0, err
		}
		normalized := binding.Weight / totalWeight

		switch binding.Criterion.Scope() {
		case ScopeGroup:
			score, err := binding.Criterion.Score(binding.Question, answers)
			if err != nil {
				return 0, err
			}
			total += normalized * score
		default:
			for i := 0; i < len(answers); i++ {
				for j := i + 1; j < len(answers); j++ {
					score, err := binding.Criterion.Score(
						binding.Question, []Answer{answers[i], answers[j]})
					if err != nil {
						return 0, err
					}
					total += normalized * score
				}
			}
		}
	}
	return total, nil
}

// GroupScores returns each group's weighted score, in partition group
// order. Groups are disjoint and the scorer is pure, so the scores are
// computed concurrently; the context bounds the whole computation.
func (sv *Survey) GroupScores(ctx context.Context, p *Partition) ([]float64, error) {
	groups := p.Groups()
	scores := make([]float64, len(groups))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, grp := range groups {
		g.Go(func() error {
			score, err := sv.ScoreGroup(grp.Members())
			if err != nil {
				return fmt.Errorf("group %d: %w", i, err)
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// ScorePartition returns the total score of a partition: the sum of
// ScoreGroup over every group.
func (sv *Survey) ScorePartition(ctx context.Context, p *Partition) (float64, error) {
	scores, err := sv.GroupScores(ctx, p)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total, nil
}

// collectAnswers gathers every member's answer to q. Missing answers
// are an error; payload validity is the bound criterion's concern.
func (sv *Survey) collectAnswers(q Question, members []*Student) ([]Answer, error) {
	answers := make([]Answer, len(members))
	for i, s := range members {
		ans, ok := s.Answer(q.ID())
		if !ok {
			return nil, fmt.Errorf("%w: student %s has no answer for question %s",
				ErrInvalidAnswer, s.ID(), q.ID())
		}
		answers[i] = ans
	}
	return answers, nil
}
