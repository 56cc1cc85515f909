package service

import (
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/repository"
)

type Summary struct {
	MenuItems         int           `json:"menu_items"`
	ActiveOrders      int           `json:"active_orders"`
	TodayReservations int           `json:"today_reservations"`
	StaffMembers      int           `json:"staff_members"`
	Featured          []domain.Dish `json:"featured_dishes"`
}

type DashboardService struct {
	repo *repository.Repository
	now  Clock
}

func NewDashboardService(repo *repository.Repository, now Clock) *DashboardService {
	return &DashboardService{repo: repo, now: now}
}

// Summary counts live records. Cancelled reservations are not counted
// towards today.
func (s *DashboardService) Summary() Summary {
	today := s.now().Format(domain.DateLayout)
	sum := Summary{
		MenuItems:    s.repo.Menu.Len(),
		StaffMembers: s.repo.Staff.Len(),
		Featured:     append([]domain.Dish{}, s.repo.Featured...),
	}
	for _, o := range s.repo.Orders.List() {
		if o.Payload.Status.Active() {
			sum.ActiveOrders++
		}
	}
	for _, r := range s.repo.Reservations.List() {
		if r.Payload.Date == today && r.Payload.Status != domain.ReservationCancelled {
			sum.TodayReservations++
		}
	}
	return sum
}
