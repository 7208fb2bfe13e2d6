package groupers

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-cohort/internal/domain"
	"github.com/ahrav/go-cohort/internal/ports"
)

var _ ports.Grouper = (*AlphabeticalGrouper)(nil)

// AlphabeticalGrouper is the deterministic baseline strategy: students
// are sorted by ID and sliced into consecutive chunks of the target
// size, with the last chunk absorbing any remainder (and therefore
// possibly undersized). No scoring is consulted.
//
// It is a pure function of (roster, targetSize) and exists as a
// worst-case control to compare the score-driven strategies against.
type AlphabeticalGrouper struct {
	// name is the unique identifier for this strategy instance.
	name string
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// NewAlphabeticalGrouper creates the baseline strategy.
// Returns ErrEmptyGrouperName if name is empty.
func NewAlphabeticalGrouper(name string) (*AlphabeticalGrouper, error) {
	if name == "" {
		return nil, ErrEmptyGrouperName
	}
	return &AlphabeticalGrouper{
		name:   name,
		tracer: otel.Tracer("alphabetical-grouper"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (ag *AlphabeticalGrouper) Name() string { return ag.name }

// Validate reports whether the strategy is ready to run.
// The baseline carries no configuration, so this always succeeds.
func (ag *AlphabeticalGrouper) Validate() error { return nil }

// Group partitions the roster into consecutive ID-ordered chunks of
// targetSize. An empty roster yields an empty partition. The survey is
// ignored; it is accepted only for interface uniformity.
//
// Returns domain.ErrInsufficientRoster if targetSize is not positive.
func (ag *AlphabeticalGrouper) Group(
	ctx context.Context,
	roster *domain.Roster,
	_ *domain.Survey,
	targetSize int,
) (*domain.Partition, error) {
	_, span := ag.tracer.Start(ctx, "AlphabeticalGrouper.Group",
		trace.WithAttributes(
			attribute.String("grouper.strategy", "alphabetical"),
			attribute.String("grouper.id", ag.name),
			attribute.Int("roster.size", roster.Len()),
			attribute.Int("group.target_size", targetSize),
		),
	)
	defer span.End()

	if targetSize <= 0 {
		err := fmt.Errorf("%w: target size %d", domain.ErrInsufficientRoster, targetSize)
		span.RecordError(err)
		return nil, err
	}
	if roster.Len() == 0 {
		return domain.NewPartition(), nil
	}

	students := roster.Students()
	groups := make([]*domain.Group, 0, (len(students)+targetSize-1)/targetSize)
	for start := 0; start < len(students); start += targetSize {
		end := start + targetSize
		if end > len(students) {
			end = len(students)
		}
		groups = append(groups, domain.NewGroup(students[start:end]...))
	}

	partition := domain.NewPartition(groups...)
	if err := partition.Validate(roster); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("partition.groups", partition.Len()))
	return partition, nil
}
