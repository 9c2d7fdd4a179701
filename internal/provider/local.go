package provider

import (
	"context"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/ephemeris"
	"github.com/oshokin/almanac/internal/logger"
)

// Local computes events with the built-in almanac algorithm.
type Local struct{}

// NewLocal returns the built-in provider.
func NewLocal() *Local {
	return &Local{}
}

// Name implements Provider.
func (*Local) Name() string {
	return string(KindLocal)
}

// Event implements Provider.
func (*Local) Event(ctx context.Context, q solar.Query) (solar.Result, error) {
	result, err := ephemeris.Solve(q)
	if err != nil {
		return solar.Result{}, err
	}

	if q.Coordinate.HighLatitude() {
		logger.WarnKV(ctx, "Latitude beyond ±60°, almanac accuracy is reduced",
			"latitude", q.Coordinate.Latitude,
			"date", q.Date.String(),
		)
	}

	return result, nil
}
