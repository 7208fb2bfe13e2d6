// Command generate_roster writes a synthetic roster and matching survey
// as yaml fixtures for trying out the engine.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ahrav/go-cohort/internal/testutils"
)

func main() {
	var (
		size       = flag.Int("size", 40, "Number of students to generate")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed for answer generation")
		rosterPath = flag.String("roster", "testdata/roster.yaml", "Roster output path")
		surveyPath = flag.String("survey", "testdata/survey.yaml", "Survey output path")
	)
	flag.Parse()

	roster := testutils.GenerateRosterFile(*size, *seed)
	if err := testutils.SaveYAML(roster, *rosterPath); err != nil {
		log.Fatalf("Failed to save roster: %v", err)
	}
	survey := testutils.SampleSurveyFile()
	if err := testutils.SaveYAML(survey, *surveyPath); err != nil {
		log.Fatalf("Failed to save survey: %v", err)
	}

	fmt.Printf("Generated fixtures:\n")
	fmt.Printf("- Roster: %s (%d students, seed %d)\n", *rosterPath, *size, *seed)
	fmt.Printf("- Survey: %s (%d questions)\n", *surveyPath, len(survey.Questions))
}
