// Package criteria provides the criterion implementations that score
// groups of survey answers for the grouping engine.
// Every criterion implements the domain.Criterion interface and is
// stateless and safe for concurrent use.
package criteria

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ahrav/go-cohort/internal/domain"
)

// Criterion kind identifiers used in survey configuration files.
const (
	// KindHomogeneous rewards groups whose answers are similar.
	KindHomogeneous = "homogeneous"

	// KindHeterogeneous rewards groups whose answers are diverse.
	KindHeterogeneous = "heterogeneous"

	// KindLonelyMember rewards groups in which no member's answer is
	// unique within the group.
	KindLonelyMember = "lonely_member"
)

// Common errors returned by criterion implementations.
var (
	// ErrNoAnswers is returned when a criterion is scored with an empty
	// answer slice.
	ErrNoAnswers = errors.New("no answers provided for criterion")

	// ErrUnknownCriterion is returned when a configured criterion kind
	// is not recognized.
	ErrUnknownCriterion = errors.New("unknown criterion kind")
)

// FromKind returns a criterion instance for the given kind identifier.
// Used by the survey loader to bind configured criteria to questions.
func FromKind(kind string) (domain.Criterion, error) {
	switch kind {
	case KindHomogeneous:
		return NewHomogeneousCriterion(), nil
	case KindHeterogeneous:
		return NewHeterogeneousCriterion(), nil
	case KindLonelyMember:
		return NewLonelyMemberCriterion(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, kind)
	}
}

// validateAnswers checks that every answer is valid for q and that at
// least one answer was supplied.
func validateAnswers(q domain.Question, answers []domain.Answer) error {
	if len(answers) == 0 {
		return ErrNoAnswers
	}
	for _, ans := range answers {
		if !q.ValidateAnswer(ans) {
			return fmt.Errorf("%w: question %s", domain.ErrInvalidAnswer, q.ID())
		}
	}
	return nil
}

// contentKey returns a canonical string for an answer's payload so that
// answers can be compared for exact equality across the closed payload
// set. Checkbox selections compare as sets, not sequences.
func contentKey(a domain.Answer) string {
	switch v := a.Content().(type) {
	case string:
		return "s:" + v
	case bool:
		return "b:" + strconv.FormatBool(v)
	case int:
		return "i:" + strconv.Itoa(v)
	case []string:
		sorted := make([]string, len(v))
		copy(sorted, v)
		sort.Strings(sorted)
		return "l:" + strings.Join(sorted, "\x1f")
	default:
		return fmt.Sprintf("?:%v", v)
	}
}
