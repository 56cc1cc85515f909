package notificator

import (
	"context"
	"fmt"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/config"
	"restaurant-admin/internal/connections/rabbitmq"
	"restaurant-admin/internal/microservices/notificator/service"
)

// Run subscribes to the change event exchange and logs what it receives.
func Run(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("rabbitmq connect: %w", err)
	}
	defer rmq.Close()

	if err := rmq.DeclareEvents(cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue); err != nil {
		return err
	}
	svc := service.NewNotificatorService(rmq, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Prefetch, lg)
	return svc.Notify(ctx)
}
