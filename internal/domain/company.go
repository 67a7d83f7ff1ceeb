package domain

import "time"

type Company struct {
	ID        string
	Name      string
	Email     *string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record exposes the company as the key-value shape the validation schemas use.
func (c *Company) Record() map[string]any {
	return map[string]any{
		"nombre":    c.Name,
		"email":     StrOrEmpty(c.Email),
		"telefono":  StrOrEmpty(c.Phone),
		"direccion": StrOrEmpty(c.Address),
	}
}
