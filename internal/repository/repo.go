package repository

import (
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/record"
)

// Screen names, used as store keys, log fields and metric labels.
const (
	MenuScreen         = "menu"
	OrdersScreen       = "orders"
	ReservationsScreen = "reservations"
	StaffScreen        = "staff"
)

// Repository holds one in-memory screen per entity. Nothing outlives the
// process: every start reseeds from the fixtures.
type Repository struct {
	Menu         *record.Screen[domain.MenuItem]
	Orders       *record.Screen[domain.Order]
	Reservations *record.Screen[domain.Reservation]
	Staff        *record.Screen[domain.StaffMember]
	Featured     []domain.Dish
}

func New() *Repository {
	return &Repository{
		Menu:         record.NewScreen(MenuScreen, record.NewStore(MenuFixtures()...)),
		Orders:       record.NewScreen(OrdersScreen, record.NewStore(OrderFixtures()...)),
		Reservations: record.NewScreen(ReservationsScreen, record.NewStore(ReservationFixtures()...)),
		Staff:        record.NewScreen(StaffScreen, record.NewStore(StaffFixtures()...)),
		Featured:     FeaturedDishes(),
	}
}

// Empty returns screens with no records, for tests that seed their own data.
func Empty() *Repository {
	return &Repository{
		Menu:         record.NewScreen[domain.MenuItem](MenuScreen, nil),
		Orders:       record.NewScreen[domain.Order](OrdersScreen, nil),
		Reservations: record.NewScreen[domain.Reservation](ReservationsScreen, nil),
		Staff:        record.NewScreen[domain.StaffMember](StaffScreen, nil),
	}
}
