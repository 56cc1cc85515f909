package service

import (
	"context"
	"strings"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/record"
)

type ReservationService struct {
	*Screen[domain.Reservation]
}

func NewReservationService(s *record.Screen[domain.Reservation]) *ReservationService {
	defaults := func() domain.Reservation {
		return domain.Reservation{PartySize: 2, TableNumber: 1, Status: domain.ReservationPending}
	}
	return &ReservationService{Screen: newScreen(s, defaults, validateReservation)}
}

// validateReservation keeps the stored status on edits; only the status
// buttons move a reservation through its lifecycle.
func validateReservation(d *record.Record[domain.Reservation], stored *domain.Reservation) error {
	if stored != nil {
		d.Payload.Status = stored.Status
	}
	d.Payload.CustomerName = strings.TrimSpace(d.Payload.CustomerName)
	d.Payload.SpecialRequests = strings.TrimSpace(d.Payload.SpecialRequests)
	return d.Payload.Validate()
}

func (s *ReservationService) ChangeStatus(ctx context.Context, id int, to domain.ReservationStatus) (record.Record[domain.Reservation], error) {
	return changeStatus(ctx, s.Screen.Screen, id, to, func(r *domain.Reservation) *domain.ReservationStatus { return &r.Status })
}
