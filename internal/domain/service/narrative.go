package service

import (
	"context"
	"fmt"

	"SectorPulse/internal/domain/models"
)

// Narrative produces a structured text analysis for a scored sector summary.
// A call either fails with a *ServiceError or succeeds with possibly-empty
// text; there is no partial structural failure.
type Narrative interface {
	Analyze(ctx context.Context, sector string, summary models.SectorSummary) (models.AnalysisResult, error)
}

// ServiceErrorKind classifies narrative service failures.
type ServiceErrorKind string

const (
	// ErrKindUnconfigured: no credential configured; precondition, not network.
	ErrKindUnconfigured ServiceErrorKind = "unconfigured"
	// ErrKindRemote: the provider answered with a non-success status.
	ErrKindRemote ServiceErrorKind = "remote_error"
	// ErrKindTransport: the request never produced a usable response.
	ErrKindTransport ServiceErrorKind = "transport"
)

// ServiceError is the typed failure returned by Narrative implementations.
type ServiceError struct {
	Kind   ServiceErrorKind
	Status int
	Body   string
	Err    error
}

func (e *ServiceError) Error() string {
	switch e.Kind {
	case ErrKindUnconfigured:
		return "narrative service: credential is not configured"
	case ErrKindRemote:
		return fmt.Sprintf("narrative service: status %d: %s", e.Status, e.Body)
	default:
		return fmt.Sprintf("narrative service: %v", e.Err)
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }
