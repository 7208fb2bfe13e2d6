// Command cohort runs a grouping strategy over a roster and prints the
// resulting partition with its scores.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ahrav/go-cohort/internal/application"
)

func main() {
	var (
		surveyPath = flag.String("survey", "survey.yaml", "Survey definition file")
		rosterPath = flag.String("roster", "roster.yaml", "Roster file")
		configPath = flag.String("config", "run.yaml", "Run configuration file")
		deadline   = flag.Duration("deadline", 0, "Optional wall-clock limit for the run (0 = none)")
	)
	flag.Parse()

	survey, err := application.LoadSurvey(*surveyPath)
	if err != nil {
		log.Fatalf("Failed to load survey: %v", err)
	}
	roster, err := application.LoadRoster(*rosterPath, survey)
	if err != nil {
		log.Fatalf("Failed to load roster: %v", err)
	}
	cfg, err := application.LoadRunConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load run config: %v", err)
	}

	engine, err := application.NewEngine(application.NewDefaultGrouperRegistry(), nil)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	ctx := context.Background()
	if *deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *deadline)
		defer cancel()
	}

	report, err := engine.Run(ctx, cfg, roster, survey)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Printf("Run %s (%s)\n", report.RunID, report.Strategy)
	fmt.Printf("- Roster: %d students, target group size %d\n", roster.Len(), cfg.TargetGroupSize)
	fmt.Printf("- Total score: %.4f in %v\n", report.Score, report.Duration.Round(time.Microsecond))
	for i, group := range report.Partition.Groups() {
		fmt.Printf("- Group %d (score %.4f): %s\n",
			i+1, report.GroupScores[i], strings.Join(group.MemberIDs(), ", "))
	}
}
