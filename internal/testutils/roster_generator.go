// Package testutils provides synthetic roster and survey generation for
// tests and benchmarks. Generation is fully seeded so fixtures are
// reproducible across runs.
package testutils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-cohort/infrastructure/criteria"
	"github.com/ahrav/go-cohort/internal/application"
	"github.com/ahrav/go-cohort/internal/domain"
)

// Answer vocabularies for the sample survey.
var (
	sampleColleges = []string{"Innis", "New College", "Trinity", "Victoria", "Woodsworth"}
	sampleSkills   = []string{"backend", "frontend", "writing", "statistics", "design"}
	sampleTopics   = []string{
		"search ranking", "recommendation systems", "data visualization",
		"distributed consensus", "stream processing",
	}
)

// SampleSurvey returns a fixed five-question survey exercising every
// question variant and criterion: college (lonely-member), preferred
// team size (numeric, homogeneous), skills (checkbox, heterogeneous),
// morning person (yes/no, homogeneous), and project interest
// (free text, homogeneous).
func SampleSurvey() (*domain.Survey, error) {
	college, err := domain.NewMultipleChoiceQuestion("college", "Which college are you in?", sampleColleges)
	if err != nil {
		return nil, err
	}
	teamSize, err := domain.NewNumericQuestion("team_size", "Preferred team size?", 2, 8)
	if err != nil {
		return nil, err
	}
	skills, err := domain.NewCheckboxQuestion("skills", "Which skills do you bring?", sampleSkills)
	if err != nil {
		return nil, err
	}
	morning, err := domain.NewYesNoQuestion("morning", "Are you a morning person?")
	if err != nil {
		return nil, err
	}
	interest, err := domain.NewFreeTextQuestion("interest", "What project topic interests you?")
	if err != nil {
		return nil, err
	}

	return domain.NewSurvey([]domain.CriterionBinding{
		{Question: college, Criterion: criteria.NewLonelyMemberCriterion(), Weight: 2},
		{Question: teamSize, Criterion: criteria.NewHomogeneousCriterion(), Weight: 1},
		{Question: skills, Criterion: criteria.NewHeterogeneousCriterion(), Weight: 1.5},
		{Question: morning, Criterion: criteria.NewHomogeneousCriterion(), Weight: 0.5},
		{Question: interest, Criterion: criteria.NewHomogeneousCriterion(), Weight: 1},
	})
}

// GenerateRoster returns a roster of size students with valid random
// answers to the sample survey, drawn from the given seed.
func GenerateRoster(size int, seed int64) (*domain.Roster, error) {
	rng := rand.New(rand.NewSource(seed))
	students := make([]*domain.Student, 0, size)
	for i := 0; i < size; i++ {
		answers := map[string]domain.Answer{
			"college":   domain.OptionAnswer(sampleColleges[rng.Intn(len(sampleColleges))]),
			"team_size": domain.IntAnswer(2 + rng.Intn(7)),
			"skills":    domain.ListAnswer(pickSubset(rng, sampleSkills)...),
			"morning":   domain.BoolAnswer(rng.Intn(2) == 0),
			"interest":  domain.TextAnswer(sampleTopics[rng.Intn(len(sampleTopics))]),
		}
		student, err := domain.NewStudent(
			fmt.Sprintf("s%04d", i), fmt.Sprintf("Student %d", i), answers)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return domain.NewRoster(students)
}

// pickSubset draws a non-empty, duplicate-free subset of options.
func pickSubset(rng *rand.Rand, options []string) []string {
	count := 1 + rng.Intn(len(options))
	indices := rng.Perm(len(options))[:count]
	picked := make([]string, count)
	for i, idx := range indices {
		picked[i] = options[idx]
	}
	return picked
}

// GenerateRosterFile returns the yaml-facing representation of a random
// roster answering the sample survey, for writing fixture files.
func GenerateRosterFile(size int, seed int64) application.RosterFile {
	rng := rand.New(rand.NewSource(seed))
	file := application.RosterFile{Students: make([]application.StudentConfig, 0, size)}
	for i := 0; i < size; i++ {
		skills := pickSubset(rng, sampleSkills)
		answers := map[string]any{
			"college":   sampleColleges[rng.Intn(len(sampleColleges))],
			"team_size": 2 + rng.Intn(7),
			"skills":    toAnySlice(skills),
			"morning":   rng.Intn(2) == 0,
			"interest":  sampleTopics[rng.Intn(len(sampleTopics))],
		}
		file.Students = append(file.Students, application.StudentConfig{
			ID:      fmt.Sprintf("s%04d", i),
			Name:    fmt.Sprintf("Student %d", i),
			Answers: answers,
		})
	}
	return file
}

// SampleSurveyFile returns the yaml-facing representation of the sample
// survey, for writing fixture files.
func SampleSurveyFile() application.SurveyFile {
	weight := func(w float64) *float64 { return &w }
	return application.SurveyFile{Questions: []application.QuestionConfig{
		{
			ID: "college", Text: "Which college are you in?",
			Type: "multiple_choice", Options: sampleColleges,
			Criterion: criteria.KindLonelyMember, Weight: weight(2),
		},
		{
			ID: "team_size", Text: "Preferred team size?",
			Type: "numeric", Min: 2, Max: 8,
		},
		{
			ID: "skills", Text: "Which skills do you bring?",
			Type: "checkbox", Options: sampleSkills,
			Criterion: criteria.KindHeterogeneous, Weight: weight(1.5),
		},
		{
			ID: "morning", Text: "Are you a morning person?",
			Type: "yes_no", Weight: weight(0.5),
		},
		{
			ID: "interest", Text: "What project topic interests you?",
			Type: "free_text",
		},
	}}
}

// SaveYAML writes v as yaml to path, creating parent directories.
func SaveYAML(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
