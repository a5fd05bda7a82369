package models

import "time"

// Terminal roles
const (
	RoleCashier = "cashier"
	RoleAdmin   = "admin"
)

// Terminal is a cashier device bound to one station
type Terminal struct {
	ID          string     `json:"id" db:"id"`
	Station     string     `json:"station" db:"station"`
	PinHash     string     `json:"-" db:"pin_hash"`
	Role        string     `json:"role" db:"role"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// Roles returns the roles granted to the terminal. Admin terminals can also sell.
func (t *Terminal) Roles() []string {
	if t.Role == RoleAdmin {
		return []string{RoleCashier, RoleAdmin}
	}
	return []string{RoleCashier}
}

// TerminalLoginRequest represents the terminal login request
type TerminalLoginRequest struct {
	TerminalID string `json:"terminal_id" binding:"required"`
	PIN        string `json:"pin" binding:"required,min=4,max=12"`
}

// TerminalLoginResponse represents the terminal login response
type TerminalLoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	TerminalID  string   `json:"terminal_id"`
	Station     string   `json:"station"`
	Roles       []string `json:"roles"`
}
