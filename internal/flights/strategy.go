package flights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"skybook/internal/backend"
	"skybook/pkg/logger"
)

var ErrNoStrategy = errors.New("no listing strategy applies to this session")

// Strategy is one named way of reading the flight inventory
type Strategy struct {
	Name         string
	Path         string
	RequiresAuth bool
}

// DefaultStrategies is the order the search tries the listing endpoints in
var DefaultStrategies = []Strategy{
	{Name: "customer", Path: backend.PathFlightsCustomer},
	{Name: "public", Path: backend.PathFlightsPublic},
	{Name: "admin", Path: backend.PathFlightsAdmin, RequiresAuth: true},
}

// FallbackPolicy walks an ordered strategy list until one succeeds. Each
// strategy is tried once; nothing is retried.
type FallbackPolicy struct {
	Strategies []Strategy
	// FallThrough decides whether a failure moves on to the next strategy
	FallThrough func(err error, authenticated bool) bool
}

func NewFallbackPolicy(strategies []Strategy) *FallbackPolicy {
	return &FallbackPolicy{Strategies: strategies, FallThrough: DefaultFallThrough}
}

// DefaultFallThrough moves on when the endpoint is missing, broken or
// unreachable. Without a token a 401 or 403 only means the endpoint wants one,
// so the walk continues to the public listing. With a token those rejections
// would repeat on every endpoint and stop the walk, as do bad requests and
// caller cancellation.
func DefaultFallThrough(err error, authenticated bool) bool {
	switch backend.KindOf(err) {
	case backend.KindNotFound, backend.KindServer, backend.KindTimeout, backend.KindNoResponse:
		return true
	case backend.KindUnauthorized, backend.KindForbidden:
		return !authenticated
	default:
		return false
	}
}

// Eligible returns the strategies usable with or without a token
func (p *FallbackPolicy) Eligible(authenticated bool) []Strategy {
	out := make([]Strategy, 0, len(p.Strategies))
	for _, s := range p.Strategies {
		if s.RequiresAuth && !authenticated {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Run calls fetch for each eligible strategy in order and returns the first
// success together with the strategy that produced it.
func (p *FallbackPolicy) Run(ctx context.Context, authenticated bool, fetch func(context.Context, Strategy) ([]backend.Flight, error)) ([]backend.Flight, Strategy, error) {
	eligible := p.Eligible(authenticated)
	if len(eligible) == 0 {
		return nil, Strategy{}, ErrNoStrategy
	}

	var lastErr error
	for i, s := range eligible {
		flights, err := fetch(ctx, s)
		if err == nil {
			return flights, s, nil
		}
		lastErr = err

		if i == len(eligible)-1 || !p.FallThrough(err, authenticated) {
			break
		}
		logger.GetDefault().InfoContext(ctx, "Flight listing strategy failed, trying next",
			slog.String("strategy", s.Name),
			slog.String("next", eligible[i+1].Name),
			slog.String("error", err.Error()),
		)
	}
	return nil, Strategy{}, fmt.Errorf("list flights: %w", lastErr)
}
