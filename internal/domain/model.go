package domain

import "math"

const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	TimestampLayout = "2006-01-02 15:04"
)

type MenuItem struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"` // URL or data: URL preview
}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (i OrderItem) Subtotal() float64 { return roundCents(float64(i.Quantity) * i.Price) }

type Order struct {
	TableNumber int         `json:"table_number"`
	Items       []OrderItem `json:"items"`
	Status      OrderStatus `json:"status"`
	Total       float64     `json:"total"`
	Timestamp   string      `json:"timestamp"` // YYYY-MM-DD HH:MM
}

func (o Order) Clone() Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}

// ComputeTotal sums the line subtotals.
func (o Order) ComputeTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += float64(it.Quantity) * it.Price
	}
	return roundCents(total)
}

type Reservation struct {
	CustomerName    string            `json:"customer_name"`
	Date            string            `json:"date"` // YYYY-MM-DD
	Time            string            `json:"time"` // HH:MM
	PartySize       int               `json:"party_size"`
	TableNumber     int               `json:"table_number"`
	Status          ReservationStatus `json:"status"`
	SpecialRequests string            `json:"special_requests"`
}

type StaffMember struct {
	Name     string      `json:"name"`
	Role     StaffRole   `json:"role"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Status   StaffStatus `json:"status"`
	JoinDate string      `json:"join_date"` // YYYY-MM-DD
}

// Dish is a featured dish shown on the dashboard gallery.
type Dish struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
