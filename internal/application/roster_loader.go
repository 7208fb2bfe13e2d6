package application

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-cohort/infrastructure/criteria"
	"github.com/ahrav/go-cohort/internal/domain"
)

// QuestionConfig is the yaml-facing description of one survey question
// together with its criterion binding and weight.
type QuestionConfig struct {
	// ID uniquely identifies the question within the survey.
	ID string `yaml:"id" validate:"required,min=1,max=100"`

	// Text is the question prompt shown to students.
	Text string `yaml:"text" validate:"required,min=1"`

	// Type selects the question variant.
	Type string `yaml:"type" validate:"required,oneof=multiple_choice yes_no numeric checkbox free_text"`

	// Options lists the valid choices for multiple_choice and checkbox
	// questions; ignored by the other variants.
	Options []string `yaml:"options,omitempty"`

	// Min and Max bound numeric questions (inclusive).
	Min int `yaml:"min,omitempty"`
	Max int `yaml:"max,omitempty"`

	// Criterion names the scoring rule bound to this question.
	// Defaults to homogeneous when omitted.
	Criterion string `yaml:"criterion,omitempty" validate:"omitempty,oneof=homogeneous heterogeneous lonely_member"`

	// Weight is the question's relative importance. Defaults to 1.
	Weight *float64 `yaml:"weight,omitempty"`
}

// SurveyFile is the root of a survey yaml document.
type SurveyFile struct {
	Questions []QuestionConfig `yaml:"questions" validate:"required,min=1,dive"`
}

// StudentConfig is the yaml-facing description of one roster entry.
// Answer payloads decode naturally from yaml scalars and sequences:
// strings, booleans, integers, and lists of strings.
type StudentConfig struct {
	ID      string         `yaml:"id" validate:"required,min=1"`
	Name    string         `yaml:"name"`
	Answers map[string]any `yaml:"answers"`
}

// RosterFile is the root of a roster yaml document.
type RosterFile struct {
	Students []StudentConfig `yaml:"students" validate:"required,min=1,dive"`
}

// ParseSurvey decodes, validates, and constructs a survey from yaml.
// Each question is bound to its configured criterion (homogeneous by
// default) and weight (1 by default).
func ParseSurvey(data []byte) (*domain.Survey, error) {
	var file SurveyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse survey: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("survey validation failed: %w", err)
	}

	bindings := make([]domain.CriterionBinding, 0, len(file.Questions))
	for _, qc := range file.Questions {
		question, err := buildQuestion(qc)
		if err != nil {
			return nil, err
		}

		kind := qc.Criterion
		if kind == "" {
			kind = criteria.KindHomogeneous
		}
		criterion, err := criteria.FromKind(kind)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", qc.ID, err)
		}

		weight := 1.0
		if qc.Weight != nil {
			weight = *qc.Weight
		}
		bindings = append(bindings, domain.CriterionBinding{
			Question:  question,
			Criterion: criterion,
			Weight:    weight,
		})
	}
	return domain.NewSurvey(bindings)
}

// LoadSurvey reads a survey from a yaml file.
func LoadSurvey(path string) (*domain.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read survey %s: %w", path, err)
	}
	return ParseSurvey(data)
}

// ParseRoster decodes, validates, and constructs a roster from yaml.
// Answers are checked against the survey: a ValidationError reporting
// every missing or invalid answer is returned rather than the first.
func ParseRoster(data []byte, survey *domain.Survey) (*domain.Roster, error) {
	var file RosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("roster validation failed: %w", err)
	}

	verr := domain.NewValidationError("roster")
	students := make([]*domain.Student, 0, len(file.Students))
	for _, sc := range file.Students {
		answers := make(map[string]domain.Answer, len(sc.Answers))
		for qid, raw := range sc.Answers {
			ans, err := decodeAnswer(raw)
			if err != nil {
				verr.AddError(fmt.Sprintf("student %s, question %s: %v", sc.ID, qid, err))
				continue
			}
			answers[qid] = ans
		}

		student, err := domain.NewStudent(sc.ID, sc.Name, answers)
		if err != nil {
			verr.AddError(err.Error())
			continue
		}
		for _, q := range survey.Questions() {
			ans, ok := student.Answer(q.ID())
			if !ok {
				verr.AddError(fmt.Sprintf("student %s: no answer for question %s", sc.ID, q.ID()))
				continue
			}
			if !q.ValidateAnswer(ans) {
				verr.AddError(fmt.Sprintf("student %s: invalid answer for question %s", sc.ID, q.ID()))
			}
		}
		students = append(students, student)
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return domain.NewRoster(students)
}

// LoadRoster reads a roster from a yaml file and validates it against
// the survey.
func LoadRoster(path string, survey *domain.Survey) (*domain.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return ParseRoster(data, survey)
}

// buildQuestion constructs the domain question for one config entry.
func buildQuestion(qc QuestionConfig) (domain.Question, error) {
	switch qc.Type {
	case "multiple_choice":
		return domain.NewMultipleChoiceQuestion(qc.ID, qc.Text, qc.Options)
	case "yes_no":
		return domain.NewYesNoQuestion(qc.ID, qc.Text)
	case "numeric":
		return domain.NewNumericQuestion(qc.ID, qc.Text, qc.Min, qc.Max)
	case "checkbox":
		return domain.NewCheckboxQuestion(qc.ID, qc.Text, qc.Options)
	case "free_text":
		return domain.NewFreeTextQuestion(qc.ID, qc.Text)
	default:
		return nil, fmt.Errorf("question %s: unknown type %q", qc.ID, qc.Type)
	}
}

// decodeAnswer maps a yaml payload onto the closed answer set.
func decodeAnswer(raw any) (domain.Answer, error) {
	switch v := raw.(type) {
	case string:
		return domain.OptionAnswer(v), nil
	case bool:
		return domain.BoolAnswer(v), nil
	case int:
		return domain.IntAnswer(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return domain.Answer{}, fmt.Errorf("checkbox entries must be strings, got %T", item)
			}
			items = append(items, s)
		}
		return domain.ListAnswer(items...), nil
	default:
		return domain.Answer{}, fmt.Errorf("unsupported answer payload %T", raw)
	}
}
