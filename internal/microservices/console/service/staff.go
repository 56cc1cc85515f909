package service

import (
	"context"
	"strings"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/record"
)

type StaffService struct {
	*Screen[domain.StaffMember]
}

func NewStaffService(s *record.Screen[domain.StaffMember], now Clock) *StaffService {
	defaults := func() domain.StaffMember {
		return domain.StaffMember{
			Role:     domain.RoleWaiter,
			Status:   domain.StaffActive,
			JoinDate: now().Format(domain.DateLayout),
		}
	}
	return &StaffService{Screen: newScreen(s, defaults, validateStaff)}
}

func validateStaff(d *record.Record[domain.StaffMember], _ *domain.StaffMember) error {
	m := &d.Payload
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	return m.Validate()
}

func (s *StaffService) ChangeStatus(ctx context.Context, id int, to domain.StaffStatus) (record.Record[domain.StaffMember], error) {
	return changeStatus(ctx, s.Screen.Screen, id, to, func(m *domain.StaffMember) *domain.StaffStatus { return &m.Status })
}
