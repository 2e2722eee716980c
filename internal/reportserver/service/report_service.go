package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/domain/rate"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/engine/aggregate"
	"github.com/sarrafi-backoffice/internal/engine/ledger"
	"github.com/sarrafi-backoffice/internal/engine/networth"
	"github.com/sarrafi-backoffice/internal/engine/rates"
	"github.com/sarrafi-backoffice/internal/engine/report"
	"github.com/sarrafi-backoffice/internal/platform/cache"
)

// NetWorthReport is the full response for the consolidated report endpoint:
// the raw numbers, the printable table, and the rows the fold excluded.
type NetWorthReport struct {
	Report      *networth.Report `json:"report"`
	Table       *report.Table    `json:"table"`
	Anomalies   []ledger.Anomaly `json:"anomalies,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ReportCache abstracts the redis-backed report cache for testability
type ReportCache interface {
	GetNetWorthReport(ctx context.Context, dest interface{}) error
	SetNetWorthReport(ctx context.Context, report interface{}) error
	InvalidateNetWorthReport(ctx context.Context) error
}

// ReportServiceImpl implements the ReportService interface. A recompute walks
// the entire ledger, so cache misses are deduplicated: concurrent requests
// share a single in-flight recompute instead of each folding the log.
type ReportServiceImpl struct {
	logger       *slog.Logger
	accountRepo  account.Repository
	txRepo       transaction.Repository
	rateRepo     rate.Repository
	transferRepo commission.Repository
	reportCache  ReportCache
	pool         *ants.Pool

	mu       sync.Mutex
	inflight chan struct{}
	last     *NetWorthReport
	lastErr  error
}

// NewReportService creates a new report service backed by the given worker pool
func NewReportService(
	logger *slog.Logger,
	accountRepo account.Repository,
	txRepo transaction.Repository,
	rateRepo rate.Repository,
	transferRepo commission.Repository,
	reportCache ReportCache,
	pool *ants.Pool,
) ReportService {
	return &ReportServiceImpl{
		logger:       logger,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		rateRepo:     rateRepo,
		transferRepo: transferRepo,
		reportCache:  reportCache,
		pool:         pool,
	}
}

// GetNetWorth returns the cached report when one exists, otherwise schedules
// a recompute on the worker pool and waits for it.
func (s *ReportServiceImpl) GetNetWorth(ctx context.Context) (*NetWorthReport, error) {
	if s.reportCache != nil {
		var cached NetWorthReport
		err := s.reportCache.GetNetWorthReport(ctx, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// A broken cache must not break the report; fall through to a
			// fresh recompute.
			s.logger.Warn("Failed to read report cache", "error", err)
		}
	}
	return s.recompute(ctx)
}

// recompute schedules one shared recompute. Callers that arrive while a
// recompute is running wait for its result instead of starting another.
func (s *ReportServiceImpl) recompute(ctx context.Context) (*NetWorthReport, error) {
	s.mu.Lock()
	if s.inflight != nil {
		done := s.inflight
		s.mu.Unlock()
		select {
		case <-done:
			s.mu.Lock()
			res, err := s.last, s.lastErr
			s.mu.Unlock()
			return res, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	done := make(chan struct{})
	s.inflight = done
	s.mu.Unlock()

	task := func() {
		// Detached context: waiters may give up, the recompute still
		// finishes and lands in the cache.
		res, err := s.compute(context.Background())

		s.mu.Lock()
		s.last, s.lastErr = res, err
		s.inflight = nil
		s.mu.Unlock()
		close(done)
	}

	if err := s.pool.Submit(task); err != nil {
		s.mu.Lock()
		s.inflight = nil
		s.mu.Unlock()
		close(done)
		s.logger.Error("Failed to submit report recompute to worker pool", "error", err)
		return nil, err
	}

	select {
	case <-done:
		s.mu.Lock()
		res, err := s.last, s.lastErr
		s.mu.Unlock()
		return res, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// compute refetches everything and runs the engine end to end. Only a
// successful result replaces the cached report; errors leave the previous
// cache entry in place.
func (s *ReportServiceImpl) compute(ctx context.Context) (*NetWorthReport, error) {
	accounts, err := s.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.txRepo.ListByNamespace(ctx, shared.NamespaceMain)
	if err != nil {
		return nil, err
	}
	quotes, err := s.rateRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.transferRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	agg := aggregate.Aggregate(txs, accounts, shared.NamespaceMain)

	var holdings []networth.Holding
	for _, acc := range accounts {
		if _, _, owned := acc.OwnerKey(); owned {
			continue
		}
		if acc.Namespace != shared.NamespaceMain {
			continue
		}
		holdings = append(holdings, networth.Holding{
			Name:     acc.Name,
			Currency: acc.Currency,
			Balance:  agg.PerAccount[acc.ID],
			Status:   networth.HoldingStatus(acc.Status),
		})
	}

	entityBalances := make([]shared.BalanceMap, 0, len(agg.PerEntity))
	for _, balances := range agg.PerEntity {
		entityBalances = append(entityBalances, balances)
	}

	nw := networth.Analyze(networth.Inputs{
		Holdings:         holdings,
		EntityBalances:   entityBalances,
		PendingTransfers: pending,
		Rates:            rates.NewTable(quotes),
	})

	result := &NetWorthReport{
		Report:      nw,
		Table:       report.FormatNetWorth(nw),
		Anomalies:   agg.Anomalies,
		GeneratedAt: time.Now().UTC(),
	}

	if s.reportCache != nil {
		if err := s.reportCache.SetNetWorthReport(ctx, result); err != nil {
			s.logger.Warn("Failed to cache net worth report", "error", err)
		}
	}

	s.logger.Info("Net worth report recomputed",
		"net_worth", nw.NetWorth,
		"liquid_net_worth", nw.LiquidNetWorth,
		"missing_rates", len(nw.MissingRates),
		"anomalies", len(result.Anomalies),
	)

	return result, nil
}
