package handlers

import (
	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/record"
)

// Drafts may hold any status a client typed in, so badges are only added
// for known values.

func orderExtras(r record.Record[domain.Order]) map[string]any {
	subtotals := make([]float64, len(r.Payload.Items))
	for i, it := range r.Payload.Items {
		subtotals[i] = it.Subtotal()
	}
	out := map[string]any{
		"actions":   nonNil(r.Payload.Status.Next()),
		"subtotals": subtotals,
	}
	if r.Payload.Status.Valid() {
		out["badge"] = r.Payload.Status.Badge()
	}
	return out
}

func reservationExtras(r record.Record[domain.Reservation]) map[string]any {
	out := map[string]any{"actions": nonNil(r.Payload.Status.Next())}
	if r.Payload.Status.Valid() {
		out["badge"] = r.Payload.Status.Badge()
	}
	return out
}

func staffExtras(r record.Record[domain.StaffMember]) map[string]any {
	out := map[string]any{"actions": nonNil(r.Payload.Status.Next())}
	if r.Payload.Status.Valid() {
		out["badge"] = r.Payload.Status.Badge()
	}
	if r.Payload.Role.Valid() {
		out["role_badge"] = r.Payload.Role.Badge()
	}
	return out
}

// nonNil keeps terminal states rendering as [] rather than null.
func nonNil[S any](s []S) []S {
	if s == nil {
		return []S{}
	}
	return s
}
