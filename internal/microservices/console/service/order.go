package service

import (
	"context"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/record"
)

type OrderService struct {
	*Screen[domain.Order]
}

func NewOrderService(s *record.Screen[domain.Order], now Clock) *OrderService {
	defaults := func() domain.Order {
		return domain.Order{
			TableNumber: 1,
			Items:       []domain.OrderItem{},
			Status:      domain.OrderPending,
			Timestamp:   now().Format(domain.TimestampLayout),
		}
	}
	return &OrderService{Screen: newScreen(s, defaults, validateOrder)}
}

// validateOrder recomputes the total from the items before checking. Edits
// keep the stored status; it only moves through ChangeStatus.
func validateOrder(d *record.Record[domain.Order], stored *domain.Order) error {
	if stored != nil {
		d.Payload.Status = stored.Status
	}
	d.Payload.Total = d.Payload.ComputeTotal()
	return d.Payload.Validate()
}

func (s *OrderService) ChangeStatus(ctx context.Context, id int, to domain.OrderStatus) (record.Record[domain.Order], error) {
	return changeStatus(ctx, s.Screen.Screen, id, to, func(o *domain.Order) *domain.OrderStatus { return &o.Status })
}
