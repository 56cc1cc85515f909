package service

import (
	"time"

	"restaurant-admin/internal/repository"
)

// Clock lets tests pin "now" for create defaults and the dashboard.
type Clock func() time.Time

type Service struct {
	Menu         *MenuService
	Orders       *OrderService
	Reservations *ReservationService
	Staff        *StaffService
	Dashboard    *DashboardService
}

func New(repo *repository.Repository, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		Menu:         NewMenuService(repo.Menu),
		Orders:       NewOrderService(repo.Orders, now),
		Reservations: NewReservationService(repo.Reservations),
		Staff:        NewStaffService(repo.Staff, now),
		Dashboard:    NewDashboardService(repo, now),
	}
}
