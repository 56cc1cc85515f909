package handlers

import (
	"net/http"

	"restaurant-admin/internal/common/logger"
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/microservices/console/service"
)

type Handler struct {
	Menu         *ScreenHandler[domain.MenuItem]
	Orders       *ScreenHandler[domain.Order]
	Reservations *ScreenHandler[domain.Reservation]
	Staff        *ScreenHandler[domain.StaffMember]

	OrderStatus       http.HandlerFunc
	ReservationStatus http.HandlerFunc
	StaffStatus       http.HandlerFunc

	Image     *ImageHandler
	Dashboard *DashboardHandler

	lg *logger.Logger
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	h := &Handler{
		Menu:         NewScreenHandler[domain.MenuItem](s.Menu.Screen, nil, lg),
		Orders:       NewScreenHandler[domain.Order](s.Orders.Screen, orderExtras, lg),
		Reservations: NewScreenHandler[domain.Reservation](s.Reservations.Screen, reservationExtras, lg),
		Staff:        NewScreenHandler[domain.StaffMember](s.Staff.Screen, staffExtras, lg),
		Dashboard:    NewDashboardHandler(s.Dashboard),
		lg:           lg,
	}
	h.OrderStatus = StatusHandler[domain.Order, domain.OrderStatus](s.Orders, h.Orders, lg)
	h.ReservationStatus = StatusHandler[domain.Reservation, domain.ReservationStatus](s.Reservations, h.Reservations, lg)
	h.StaffStatus = StatusHandler[domain.StaffMember, domain.StaffStatus](s.Staff, h.Staff, lg)
	h.Image = NewImageHandler(s.Menu, h.Menu, lg)
	return h
}
