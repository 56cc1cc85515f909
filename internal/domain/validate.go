package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that blocks a form submit.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type checker struct{ fields []FieldError }

func (c *checker) fail(field, format string, args ...any) {
	c.fields = append(c.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) required(field, v string) {
	if strings.TrimSpace(v) == "" {
		c.fail(field, "is required")
	}
}

func (c *checker) min(field string, v, least int) {
	if v < least {
		c.fail(field, "must be at least %d", least)
	}
}

func (c *checker) layout(field, v, layout string) {
	if strings.TrimSpace(v) == "" {
		c.fail(field, "is required")
		return
	}
	if _, err := time.Parse(layout, v); err != nil {
		c.fail(field, "must match %s", layout)
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

// Validate applies the menu form rules. The image is only required when the
// item is being created.
func (m MenuItem) Validate(creating bool) error {
	var c checker
	c.required("name", m.Name)
	c.required("category", m.Category)
	c.required("description", m.Description)
	if m.Price < 0 {
		c.fail("price", "must not be negative")
	}
	if creating {
		c.required("image", m.Image)
	}
	return c.err()
}

func (o Order) Validate() error {
	var c checker
	c.min("table_number", o.TableNumber, 1)
	if !o.Status.Valid() {
		c.fail("status", "unknown status %q", string(o.Status))
	}
	c.layout("timestamp", o.Timestamp, TimestampLayout)
	if len(o.Items) == 0 {
		c.fail("items", "at least one item is required")
	}
	for i, it := range o.Items {
		field := fmt.Sprintf("items[%d]", i)
		c.required(field+".name", it.Name)
		c.min(field+".quantity", it.Quantity, 1)
		if it.Price < 0 {
			c.fail(field+".price", "must not be negative")
		}
	}
	return c.err()
}

func (r Reservation) Validate() error {
	var c checker
	c.required("customer_name", r.CustomerName)
	c.layout("date", r.Date, DateLayout)
	c.layout("time", r.Time, TimeLayout)
	c.min("party_size", r.PartySize, 1)
	c.min("table_number", r.TableNumber, 1)
	if !r.Status.Valid() {
		c.fail("status", "unknown status %q", string(r.Status))
	}
	return c.err()
}

func (s StaffMember) Validate() error {
	var c checker
	c.required("name", s.Name)
	if !s.Role.Valid() {
		c.fail("role", "unknown role %q", string(s.Role))
	}
	if strings.TrimSpace(s.Email) == "" {
		c.fail("email", "is required")
	} else if _, err := mail.ParseAddress(s.Email); err != nil {
		c.fail("email", "is not a valid address")
	}
	c.required("phone", s.Phone)
	if !s.Status.Valid() {
		c.fail("status", "unknown status %q", string(s.Status))
	}
	c.layout("join_date", s.JoinDate, DateLayout)
	return c.err()
}
