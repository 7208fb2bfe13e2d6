package domain

import (
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// foldCaser is a package-level Unicode case folder for performance.
// This avoids creating a new caser for each option comparison.
var foldCaser = cases.Fold()

// QuestionKind tags the closed set of question variants.
// Criteria dispatch on the variant only through the Question interface;
// no runtime type inspection is required by callers.
type QuestionKind string

// Supported question variants.
const (
	// QuestionMultipleChoice accepts exactly one of a fixed option set.
	QuestionMultipleChoice QuestionKind = "multiple_choice"

	// QuestionYesNo accepts a boolean answer.
	QuestionYesNo QuestionKind = "yes_no"

	// QuestionNumeric accepts an integer inside an inclusive range.
	QuestionNumeric QuestionKind = "numeric"

	// QuestionCheckbox accepts a non-empty, duplicate-free subset of a
	// fixed option set.
	QuestionCheckbox QuestionKind = "checkbox"

	// QuestionFreeText accepts an arbitrary non-empty string.
	QuestionFreeText QuestionKind = "free_text"
)

// Question defines how a recorded answer is interpreted: which payloads
// are valid, and how similar two valid answers are.
//
// Similarity is normalized to [0,1] with 1.0 meaning identical answers.
// All implementations are immutable and safe for concurrent use.
type Question interface {
	// ID returns the unique identifier of this question.
	ID() string

	// Text returns the question prompt shown to students.
	Text() string

	// Kind returns the variant tag of this question.
	Kind() QuestionKind

	// ValidateAnswer reports whether an answer belongs to this
	// question's value domain.
	ValidateAnswer(a Answer) bool

	// Similarity returns a value in [0,1] indicating how similar two
	// answers are. Both answers must be valid for this question.
	Similarity(a, b Answer) float64
}

// MultipleChoiceQuestion is a question whose answer is exactly one of a
// fixed set of options. Similarity is binary: 1.0 when both students
// picked the same option (Unicode case-folded), 0.0 otherwise.
type MultipleChoiceQuestion struct {
	id      string
	text    string
	options map[string]struct{}
}

// NewMultipleChoiceQuestion creates a multiple-choice question.
// At least two distinct options are required.
func NewMultipleChoiceQuestion(id, text string, options []string) (*MultipleChoiceQuestion, error) {
	if id == "" || text == "" {
		return nil, fmt.Errorf("question id and text cannot be empty")
	}
	set := make(map[string]struct{}, len(options))
	for _, opt := range options {
		set[foldCaser.String(opt)] = struct{}{}
	}
	if len(set) < 2 {
		return nil, fmt.Errorf("question %s: need at least two distinct options", id)
	}
	return &MultipleChoiceQuestion{id: id, text: text, options: set}, nil
}

// ID returns the unique identifier of this question.
func (q *MultipleChoiceQuestion) ID() string { return q.id }

// Text returns the question prompt.
func (q *MultipleChoiceQuestion) Text() string { return q.text }

// Kind returns QuestionMultipleChoice.
func (q *MultipleChoiceQuestion) Kind() QuestionKind { return QuestionMultipleChoice }

// ValidateAnswer reports whether the answer is one of the options.
func (q *MultipleChoiceQuestion) ValidateAnswer(a Answer) bool {
	opt, ok := a.Content().(string)
	if !ok {
		return false
	}
	_, exists := q.options[foldCaser.String(opt)]
	return exists
}

// Similarity returns 1.0 iff both answers selected the same option.
func (q *MultipleChoiceQuestion) Similarity(a, b Answer) float64 {
	av, _ := a.Content().(string)
	bv, _ := b.Content().(string)
	if foldCaser.String(av) == foldCaser.String(bv) {
		return 1.0
	}
	return 0.0
}

// YesNoQuestion is a question answered with a boolean.
// Similarity is binary, like a two-option multiple choice.
type YesNoQuestion struct {
	id   string
	text string
}

// NewYesNoQuestion creates a yes/no question.
func NewYesNoQuestion(id, text string) (*YesNoQuestion, error) {
	if id == "" || text == "" {
		return nil, fmt.Errorf("question id and text cannot be empty")
	}
	return &YesNoQuestion{id: id, text: text}, nil
}

// ID returns the unique identifier of this question.
func (q *YesNoQuestion) ID() string { return q.id }

// Text returns the question prompt.
func (q *YesNoQuestion) Text() string { return q.text }

// Kind returns QuestionYesNo.
func (q *YesNoQuestion) Kind() QuestionKind { return QuestionYesNo }

// ValidateAnswer reports whether the answer payload is a boolean.
func (q *YesNoQuestion) ValidateAnswer(a Answer) bool {
	_, ok := a.Content().(bool)
	return ok
}

// Similarity returns 1.0 iff both answers agree.
func (q *YesNoQuestion) Similarity(a, b Answer) float64 {
	av, _ := a.Content().(bool)
	bv, _ := b.Content().(bool)
	if av == bv {
		return 1.0
	}
	return 0.0
}

// NumericQuestion is a question whose answer is an integer between a
// minimum and maximum value, inclusive. Similarity scales linearly with
// the distance between the two answers over the question's range:
// identical answers score 1.0, answers at opposite extremes score 0.0.
type NumericQuestion struct {
	id   string
	text string
	min  int
	max  int
}

// NewNumericQuestion creates a numeric question with the inclusive
// range [min, max]. Requires min < max.
func NewNumericQuestion(id, text string, min, max int) (*NumericQuestion, error) {
	if id == "" || text == "" {
		return nil, fmt.Errorf("question id and text cannot be empty")
	}
	if min >= max {
		return nil, fmt.Errorf("question %s: min %d must be below max %d", id, min, max)
	}
	return &NumericQuestion{id: id, text: text, min: min, max: max}, nil
}

// ID returns the unique identifier of this question.
func (q *NumericQuestion) ID() string { return q.id }

// Text returns the question prompt.
func (q *NumericQuestion) Text() string { return q.text }

// Kind returns QuestionNumeric.
func (q *NumericQuestion) Kind() QuestionKind { return QuestionNumeric }

// Min returns the smallest valid answer.
func (q *NumericQuestion) Min() int { return q.min }

// Max returns the largest valid answer.
func (q *NumericQuestion) Max() int { return q.max }

// ValidateAnswer reports whether the answer is an integer within range.
func (q *NumericQuestion) ValidateAnswer(a Answer) bool {
	v, ok := a.Content().(int)
	return ok && v >= q.min && v <= q.max
}

// Similarity returns 1 - |a-b| / (max-min).
func (q *NumericQuestion) Similarity(a, b Answer) float64 {
	av, _ := a.Content().(int)
	bv, _ := b.Content().(int)
	diff := av - bv
	if diff < 0 {
		diff = -diff
	}
	return 1.0 - float64(diff)/float64(q.max-q.min)
}

// CheckboxQuestion is a question whose answer is one or more of a fixed
// option set. Similarity is the Jaccard index of the two selections:
// |intersection| / |union|.
type CheckboxQuestion struct {
	id      string
	text    string
	options map[string]struct{}
}

// NewCheckboxQuestion creates a checkbox question.
func NewCheckboxQuestion(id, text string, options []string) (*CheckboxQuestion, error) {
	if id == "" || text == "" {
		return nil, fmt.Errorf("question id and text cannot be empty")
	}
	set := make(map[string]struct{}, len(options))
	for _, opt := range options {
		set[opt] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("question %s: need at least one option", id)
	}
	return &CheckboxQuestion{id: id, text: text, options: set}, nil
}

// ID returns the unique identifier of this question.
func (q *CheckboxQuestion) ID() string { return q.id }

// Text returns the question prompt.
func (q *CheckboxQuestion) Text() string { return q.text }

// Kind returns QuestionCheckbox.
func (q *CheckboxQuestion) Kind() QuestionKind { return QuestionCheckbox }

// ValidateAnswer reports whether the answer is a non-empty,
// duplicate-free selection of known options.
func (q *CheckboxQuestion) ValidateAnswer(a Answer) bool {
	selected, ok := a.Content().([]string)
	if !ok || len(selected) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(selected))
	for _, item := range selected {
		if _, dup := seen[item]; dup {
			return false
		}
		seen[item] = struct{}{}
		if _, known := q.options[item]; !known {
			return false
		}
	}
	return true
}

// Similarity returns the Jaccard index of the two selections.
func (q *CheckboxQuestion) Similarity(a, b Answer) float64 {
	av, _ := a.Content().([]string)
	bv, _ := b.Content().([]string)
	union := make(map[string]struct{}, len(av)+len(bv))
	inA := make(map[string]struct{}, len(av))
	for _, item := range av {
		union[item] = struct{}{}
		inA[item] = struct{}{}
	}
	shared := 0
	for _, item := range bv {
		if _, dup := union[item]; !dup {
			union[item] = struct{}{}
		}
		if _, ok := inA[item]; ok {
			shared++
		}
	}
	if len(union) == 0 {
		return 1.0
	}
	return float64(shared) / float64(len(union))
}

// FreeTextQuestion is a question answered with arbitrary text.
// Similarity is the normalized Levenshtein similarity of the two
// answers after Unicode case folding: 1 - distance / max(len).
type FreeTextQuestion struct {
	id   string
	text string
}

// NewFreeTextQuestion creates a free-text question.
func NewFreeTextQuestion(id, text string) (*FreeTextQuestion, error) {
	if id == "" || text == "" {
		return nil, fmt.Errorf("question id and text cannot be empty")
	}
	return &FreeTextQuestion{id: id, text: text}, nil
}

// ID returns the unique identifier of this question.
func (q *FreeTextQuestion) ID() string { return q.id }

// Text returns the question prompt.
func (q *FreeTextQuestion) Text() string { return q.text }

// Kind returns QuestionFreeText.
func (q *FreeTextQuestion) Kind() QuestionKind { return QuestionFreeText }

// ValidateAnswer reports whether the answer is a non-empty string.
func (q *FreeTextQuestion) ValidateAnswer(a Answer) bool {
	v, ok := a.Content().(string)
	return ok && v != ""
}

// Similarity returns 1 - levenshtein(a, b) / max(|a|, |b|), computed on
// case-folded rune sequences. Identical strings score 1.0.
func (q *FreeTextQuestion) Similarity(a, b Answer) float64 {
	av, _ := a.Content().(string)
	bv, _ := b.Content().(string)
	av = foldCaser.String(av)
	bv = foldCaser.String(bv)
	if av == bv {
		return 1.0
	}
	longest := utf8.RuneCountInString(av)
	if n := utf8.RuneCountInString(bv); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(av, bv)
	return 1.0 - float64(distance)/float64(longest)
}
