package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/logger"
	"github.com/oshokin/almanac/internal/provider"
	repo "github.com/oshokin/almanac/internal/repository/snapshot"
	"github.com/oshokin/almanac/internal/table"
)

// site is the location the server keeps a precomputed table for.
type site struct {
	coordinate solar.GeoCoordinate
	zenith     solar.ZenithKind
	utcOffset  float64
	days       int
}

// service encapsulates the almanac business logic and snapshot orchestration.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// provider answers every query.
	provider provider.Provider
	// repo handles persistent storage of the precomputed table.
	repo repo.Repository
	// site describes the table refreshed on schedule.
	site site
	// now returns the current time, replaced in tests.
	now func() time.Time
	// snapshot is the latest precomputed table.
	snapshot *repo.Snapshot
	// mu protects concurrent access to the snapshot.
	mu sync.RWMutex
}

// newService creates a service backed by the provided repository and loads
// the previous snapshot if one exists.
func newService(ctx context.Context, p provider.Provider, repository repo.Repository, s site) (*service, error) {
	svc := &service{
		provider: p,
		repo:     repository,
		site:     s,
		now:      time.Now,
	}

	if repository == nil {
		return svc, nil
	}

	snapshot, err := repository.Load(ctx)
	switch {
	case err == nil:
		svc.snapshot = snapshot
	case errors.Is(err, repo.ErrNotFound):
		// Start without a snapshot.
	default:
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	return svc, nil
}

// ProviderName names the provider answering queries.
func (s *service) ProviderName() string {
	return s.provider.Name()
}

// ComputeEvent answers a single query. Rows of the current snapshot are
// served from memory when they match the query exactly.
func (s *service) ComputeEvent(ctx context.Context, q solar.Query) (solar.Result, error) {
	if row, ok := s.cached(q); ok {
		logger.DebugKV(ctx, "Event served from snapshot", "date", q.Date, "event", q.Event)

		if q.Event == solar.EventRise {
			return row.Rise, nil
		}

		return row.Set, nil
	}

	result, err := s.provider.Event(ctx, q)
	if err != nil {
		logger.ErrorKV(ctx, "Event computation failed", "query", q, "error", err)

		return solar.Result{}, err
	}

	logger.InfoKV(ctx, "Event computed", "date", q.Date, "event", q.Event, "clock", result.Clock, "degenerate", result.Degenerate)

	return result, nil
}

// ComputeDay answers both events of q.Date.
func (s *service) ComputeDay(ctx context.Context, q solar.Query) (table.Row, error) {
	if row, ok := s.cached(q); ok {
		logger.DebugKV(ctx, "Day served from snapshot", "date", q.Date)

		return row, nil
	}

	rise, set, err := provider.Day(ctx, s.provider, q.Date, q.Coordinate, q.Zenith, q.UTCOffset)
	if err != nil {
		logger.ErrorKV(ctx, "Day computation failed", "query", q, "error", err)

		return table.Row{}, err
	}

	logger.InfoKV(ctx, "Day computed", "date", q.Date, "rise", rise.Clock, "set", set.Clock)

	return table.Row{Date: q.Date, Rise: rise, Set: set}, nil
}

// refresh rebuilds the table for the configured site starting today and
// persists it.
func (s *service) refresh(ctx context.Context) error {
	now := s.now()
	from := solar.DateOf(now.In(time.FixedZone("", int(s.site.utcOffset*3600))))
	to := solar.DateOf(from.Time(time.UTC).AddDate(0, 0, s.site.days-1))

	built, err := table.Build(ctx, s.provider, table.Request{
		From:       from,
		To:         to,
		Coordinate: s.site.coordinate,
		Zenith:     s.site.zenith,
		UTCOffset:  s.site.utcOffset,
	})
	if err != nil {
		return fmt.Errorf("build table: %w", err)
	}

	snapshot := &repo.Snapshot{
		GeneratedAt: now,
		Table:       built,
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("persist snapshot: %w", err)
		}
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	logger.InfoKV(ctx, "Table refreshed", "from", from, "to", to, "provider", built.Provider)

	return nil
}

// cached looks q up in the current snapshot.
func (s *service) cached(q solar.Query) (table.Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil || s.snapshot.Table == nil {
		return table.Row{}, false
	}

	t := s.snapshot.Table
	if t.Provider != s.provider.Name() ||
		t.Coordinate != q.Coordinate ||
		t.Zenith != q.Zenith ||
		t.UTCOffset != q.UTCOffset {
		return table.Row{}, false
	}

	for _, row := range t.Rows {
		if row.Date == q.Date {
			return row, true
		}
	}

	return table.Row{}, false
}
