package console

import (
	"context"
	"fmt"

	"restaurant-admin/internal/common/httpx"
	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/config"
	"restaurant-admin/internal/connections/rabbitmq"
	"restaurant-admin/internal/events"
	"restaurant-admin/internal/metrics"
	"restaurant-admin/internal/microservices/console/handlers"
	"restaurant-admin/internal/microservices/console/service"
	"restaurant-admin/internal/record"
	"restaurant-admin/internal/repository"
)

// Run serves the console API until ctx is cancelled. Without a broker the
// console still runs; commits are then only logged and counted.
func Run(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	repo := repository.New()
	m := metrics.New()

	var (
		pub    events.Publisher
		health handlers.HealthChecker
	)
	if cfg.RabbitMQ.Enabled {
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("rabbitmq connect: %w", err)
		}
		defer rmq.Close()
		if err := rmq.DeclareEvents(cfg.RabbitMQ.Exchange, ""); err != nil {
			return err
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host, "exchange": cfg.RabbitMQ.Exchange})
		pub, health = rmq, rmq
	}

	observe(repo.Menu, m, pub, cfg.RabbitMQ.Exchange, lg)
	observe(repo.Orders, m, pub, cfg.RabbitMQ.Exchange, lg)
	observe(repo.Reservations, m, pub, cfg.RabbitMQ.Exchange, lg)
	observe(repo.Staff, m, pub, cfg.RabbitMQ.Exchange, lg)

	svc := service.New(repo, nil)
	srv := httpx.New(fmt.Sprintf(":%d", cfg.Server.Port), handlers.Router(handlers.New(svc, lg), m, health))
	srv.ReadTimeout = cfg.Server.ReadTimeout
	srv.WriteTimeout = cfg.Server.WriteTimeout
	srv.ShutdownTimeout = cfg.Server.ShutdownTimeout

	lg.Info("console_listening", map[string]any{"addr": srv.Addr})
	if err := srv.Run(ctx); err != nil {
		return err
	}
	lg.Info("graceful_shutdown", nil)
	return nil
}

// observe registers the log, metrics and (when pub is set) event observers
// on s and primes its record gauge.
func observe[T any](s *record.Screen[T], m *metrics.Metrics, pub events.Publisher, exchange string, lg *logger.Logger) {
	obs := []record.Observer[T]{
		events.LogObserver[T](lg),
		metrics.Observer[T](m, s.Len),
	}
	if pub != nil {
		obs = append(obs, events.Observer[T](pub, exchange, lg))
	}
	s.Observe(obs...)
	m.SetRecords(s.Name(), s.Len())
}
