package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleKind is the type of item sold at a ticket office
type SaleKind string

const (
	SaleKindOneWayTicket SaleKind = "one_way_ticket"
	SaleKindPass         SaleKind = "pass"
	SaleKindPassRenewal  SaleKind = "pass_renewal"
)

// Sale is one row of the sales journal
type Sale struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Kind        SaleKind        `json:"kind" db:"kind"`
	Station     string          `json:"station" db:"station"`
	FromStation *string         `json:"from_station,omitempty" db:"from_station"`
	ToStation   *string         `json:"to_station,omitempty" db:"to_station"`
	Hops        *int            `json:"hops,omitempty" db:"hops"`
	PassSerial  *string         `json:"pass_serial,omitempty" db:"pass_serial"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	SaleDate    Date            `json:"sale_date" db:"sale_date"`
	TerminalID  *string         `json:"terminal_id,omitempty" db:"terminal_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// PassRecord is the stored state of a monthly pass
type PassRecord struct {
	Serial    string    `json:"serial" db:"serial"`
	ExpiresOn Date      `json:"expires_on" db:"expires_on"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
