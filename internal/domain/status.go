package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrUnknownStatus     = errors.New("unknown status")
)

// Badge is the display variant and label for an enumerated value.
type Badge struct {
	Variant string `json:"variant"`
	Text    string `json:"text"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled}
}

func (s OrderStatus) Badge() Badge {
	switch s {
	case OrderPending:
		return Badge{"warning", "Pending"}
	case OrderPreparing:
		return Badge{"info", "Preparing"}
	case OrderReady:
		return Badge{"success", "Ready"}
	case OrderCompleted:
		return Badge{"secondary", "Completed"}
	case OrderCancelled:
		return Badge{"danger", "Cancelled"}
	}
	panic(fmt.Sprintf("order status %q has no badge", string(s)))
}

// Next lists the statuses an order may move to from s.
func (s OrderStatus) Next() []OrderStatus {
	switch s {
	case OrderPending:
		return []OrderStatus{OrderPreparing, OrderCancelled}
	case OrderPreparing:
		return []OrderStatus{OrderReady}
	case OrderReady:
		return []OrderStatus{OrderCompleted}
	default:
		return nil
	}
}

// Active orders are the ones the kitchen still has to deal with.
func (s OrderStatus) Active() bool {
	return s == OrderPending || s == OrderPreparing || s == OrderReady
}

func (s OrderStatus) Valid() bool { return contains(OrderStatuses(), s) }
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool { return contains(s.Next(), to) }

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationPending   ReservationStatus = "pending"
	ReservationCancelled ReservationStatus = "cancelled"
)

func ReservationStatuses() []ReservationStatus {
	return []ReservationStatus{ReservationConfirmed, ReservationPending, ReservationCancelled}
}

func (s ReservationStatus) Badge() Badge {
	switch s {
	case ReservationConfirmed:
		return Badge{"success", "Confirmed"}
	case ReservationPending:
		return Badge{"warning", "Pending"}
	case ReservationCancelled:
		return Badge{"danger", "Cancelled"}
	}
	panic(fmt.Sprintf("reservation status %q has no badge", string(s)))
}

func (s ReservationStatus) Next() []ReservationStatus {
	if s == ReservationPending {
		return []ReservationStatus{ReservationConfirmed, ReservationCancelled}
	}
	return nil
}

func (s ReservationStatus) Valid() bool { return contains(ReservationStatuses(), s) }
func (s ReservationStatus) CanTransitionTo(to ReservationStatus) bool {
	return contains(s.Next(), to)
}

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffOnLeave  StaffStatus = "on_leave"
	StaffInactive StaffStatus = "inactive"
)

func StaffStatuses() []StaffStatus {
	return []StaffStatus{StaffActive, StaffOnLeave, StaffInactive}
}

func (s StaffStatus) Badge() Badge {
	switch s {
	case StaffActive:
		return Badge{"success", "Active"}
	case StaffOnLeave:
		return Badge{"warning", "On Leave"}
	case StaffInactive:
		return Badge{"danger", "Inactive"}
	}
	panic(fmt.Sprintf("staff status %q has no badge", string(s)))
}

func (s StaffStatus) Next() []StaffStatus {
	switch s {
	case StaffActive:
		return []StaffStatus{StaffOnLeave, StaffInactive}
	case StaffOnLeave:
		return []StaffStatus{StaffActive, StaffInactive}
	case StaffInactive:
		return []StaffStatus{StaffActive}
	default:
		return nil
	}
}

func (s StaffStatus) Valid() bool { return contains(StaffStatuses(), s) }
func (s StaffStatus) CanTransitionTo(to StaffStatus) bool { return contains(s.Next(), to) }

type StaffRole string

const (
	RoleManager StaffRole = "manager"
	RoleWaiter  StaffRole = "waiter"
	RoleChef    StaffRole = "chef"
	RoleHost    StaffRole = "host"
)

func StaffRoles() []StaffRole {
	return []StaffRole{RoleManager, RoleWaiter, RoleChef, RoleHost}
}

func (r StaffRole) Badge() Badge {
	switch r {
	case RoleManager:
		return Badge{"primary", "Manager"}
	case RoleWaiter:
		return Badge{"info", "Waiter"}
	case RoleChef:
		return Badge{"warning", "Chef"}
	case RoleHost:
		return Badge{"secondary", "Host"}
	}
	panic(fmt.Sprintf("staff role %q has no badge", string(r)))
}

func (r StaffRole) Valid() bool { return contains(StaffRoles(), r) }

func contains[S comparable](set []S, v S) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
