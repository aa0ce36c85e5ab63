// Package billing owns the bill settlement workflow: creating bills,
// splitting their items between members, summarizing balances, finalizing,
// and recording payments.
//
// All persistence goes through an injected storage.Store. Multi-step writes
// run inside Store.WithTx so a failure never leaves an item half re-split.
package billing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dinelink/dinelink/internal/calculator"
	"github.com/dinelink/dinelink/internal/clock"
	"github.com/dinelink/dinelink/internal/metrics"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
)

// Notifier delivers in-app notifications. Delivery is best effort: a
// failure is logged and never undoes the operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, userID string, kind models.NotificationType, title, body string, data map[string]any) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, models.NotificationType, string, string, map[string]any) error {
	return nil
}

// Config holds the settlement rules that vary by deployment.
type Config struct {
	ServiceChargeRate decimal.Decimal
	TaxRate           decimal.Decimal
	Currency          string

	// EnforcePortionSum rejects share sets whose portions do not add up to 1.
	EnforcePortionSum bool
}

// DefaultConfig is the Hong Kong setup: 10% service charge, no tax, HKD.
func DefaultConfig() Config {
	return Config{
		ServiceChargeRate: calculator.DefaultServiceChargeRate,
		TaxRate:           calculator.DefaultTaxRate,
		Currency:          models.DefaultCurrency,
		EnforcePortionSum: true,
	}
}

// Service implements the bill lifecycle, allocation and aggregation.
type Service struct {
	store    storage.Store
	notifier Notifier
	clock    clock.Clock
	metrics  *metrics.Metrics
	cfg      Config
}

// Option configures a Service.
type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// New creates a billing service on top of store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: nopNotifier{},
		clock:    clock.SystemClock{},
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.Currency == "" {
		s.cfg.Currency = models.DefaultCurrency
	}
	s.cfg.Currency = strings.ToUpper(s.cfg.Currency)
	return s
}

func (s *Service) now(ctx context.Context) int64 {
	return s.clock.Now(ctx).Unix()
}

// inTx runs fn in a transaction and classifies any unclassified error.
func (s *Service) inTx(ctx context.Context, op string, fn func(q storage.Queries) error) error {
	if err := s.store.WithTx(ctx, fn); err != nil {
		return storageError(op, err)
	}
	return nil
}

// notify sends a notification, logging rather than returning failures.
func (s *Service) notify(ctx context.Context, userID string, kind models.NotificationType, title, body string, data map[string]any) {
	if err := s.notifier.Notify(ctx, userID, kind, title, body, data); err != nil {
		slog.Warn("Notification failed", "user_id", userID, "type", kind, "error", err)
	}
}
