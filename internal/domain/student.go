// Package domain contains the core value types of the grouping engine:
// students and their survey responses, the question variants that
// interpret those responses, criteria that score them, and the group and
// partition structures produced by grouping strategies.
package domain

import (
	"fmt"
	"sort"
)

// Answer holds a single student's response to one survey question in a
// normalized form. The content is one of the closed set of payloads
// accepted by the question variants: string (option or free text), bool,
// int, or []string (checkbox selections).
//
// Answers are immutable value types; the checkbox payload is copied on
// construction so callers cannot mutate a stored answer.
type Answer struct {
	content any
}

// OptionAnswer returns an answer holding a single selected option.
func OptionAnswer(option string) Answer { return Answer{content: option} }

// BoolAnswer returns a yes/no answer.
func BoolAnswer(v bool) Answer { return Answer{content: v} }

// IntAnswer returns a numeric answer.
func IntAnswer(v int) Answer { return Answer{content: v} }

// ListAnswer returns a checkbox answer holding the selected options.
func ListAnswer(options ...string) Answer {
	selected := make([]string, len(options))
	copy(selected, options)
	return Answer{content: selected}
}

// TextAnswer returns a free-text answer.
func TextAnswer(text string) Answer { return Answer{content: text} }

// Content returns the normalized payload of this answer.
func (a Answer) Content() any { return a.content }

// IsValid reports whether this answer belongs to the value domain of q.
func (a Answer) IsValid(q Question) bool { return q.ValidateAnswer(a) }

// Student is a roster member with an identifier, a display name, and an
// immutable set of survey responses indexed by question ID.
// Students are read-only once constructed; groupers never mutate them.
type Student struct {
	id      string
	name    string
	answers map[string]Answer
}

// NewStudent creates a student with the given ID, display name, and
// recorded answers. The answers map is copied, so the caller retains
// ownership of its argument. The ID must be non-empty.
func NewStudent(id, name string, answers map[string]Answer) (*Student, error) {
	if id == "" {
		return nil, fmt.Errorf("student id cannot be empty")
	}
	recorded := make(map[string]Answer, len(answers))
	for qid, ans := range answers {
		recorded[qid] = ans
	}
	return &Student{id: id, name: name, answers: recorded}, nil
}

// ID returns the stable, unique identifier of this student.
func (s *Student) ID() string { return s.id }

// Name returns the display name of this student.
func (s *Student) Name() string { return s.name }

// HasAnswer reports whether this student recorded an answer for the
// question with the given ID.
func (s *Student) HasAnswer(questionID string) bool {
	_, ok := s.answers[questionID]
	return ok
}

// Answer returns this student's recorded answer for the given question ID.
// The second return value is false if no answer was recorded.
func (s *Student) Answer(questionID string) (Answer, bool) {
	ans, ok := s.answers[questionID]
	return ans, ok
}

// Roster is the full, read-only set of students eligible for grouping.
// Iteration over a roster is always in ascending ID order so that every
// grouping strategy sees a deterministic sequence.
type Roster struct {
	students []*Student
	byID     map[string]*Student
}

// NewRoster creates a roster from the given students.
// Returns ErrDuplicateStudent if two entries share an ID.
func NewRoster(students []*Student) (*Roster, error) {
	byID := make(map[string]*Student, len(students))
	ordered := make([]*Student, 0, len(students))
	for _, s := range students {
		if _, exists := byID[s.ID()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStudent, s.ID())
		}
		byID[s.ID()] = s
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID() < ordered[j].ID() })
	return &Roster{students: ordered, byID: byID}, nil
}

// Len returns the number of students on the roster.
func (r *Roster) Len() int { return len(r.students) }

// Students returns the roster members in ascending ID order.
// The returned slice is a copy; callers may reorder it freely.
func (r *Roster) Students() []*Student {
	out := make([]*Student, len(r.students))
	copy(out, r.students)
	return out
}

// Lookup returns the student with the given ID, or false if absent.
func (r *Roster) Lookup(id string) (*Student, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// AllAnswered reports whether every student on the roster has a valid
// answer for every question in the survey.
func (r *Roster) AllAnswered(survey *Survey) bool {
	for _, s := range r.students {
		for _, q := range survey.Questions() {
			ans, ok := s.Answer(q.ID())
			if !ok || !q.ValidateAnswer(ans) {
				return false
			}
		}
	}
	return true
}
