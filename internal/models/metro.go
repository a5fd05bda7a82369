package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRef points at a station on another line
type TransferRef struct {
	Line    string `json:"line"`
	Station string `json:"station"`
}

// StationResponse describes a station and its neighbours
type StationResponse struct {
	Name                    string        `json:"name"`
	Line                    string        `json:"line"`
	LineName                string        `json:"line_name"`
	Position                int           `json:"position"`
	Previous                *string       `json:"previous,omitempty"`
	Next                    *string       `json:"next,omitempty"`
	TravelTimeToNextSeconds int64         `json:"travel_time_to_next_seconds"`
	Transfers               []TransferRef `json:"transfers"`
}

// LineResponse lists the stations of a line in order
type LineResponse struct {
	Color    string            `json:"color"`
	Name     string            `json:"name"`
	Stations []StationResponse `json:"stations"`
}

// DistanceResponse is the hop count between two stations
type DistanceResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Hops int    `json:"hops"`
}

// FareQuote is the price of a one-way ticket between two stations
type FareQuote struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Hops  int             `json:"hops"`
	Price decimal.Decimal `json:"price"`
}

// SellTicketRequest represents the request to sell a one-way ticket
type SellTicketRequest struct {
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
	SaleDate *Date  `json:"sale_date,omitempty"`
}

// SellPassRequest represents the request to sell or renew a monthly pass
type SellPassRequest struct {
	SaleDate *Date `json:"sale_date,omitempty"`
}

// SaleResponse is returned for every completed sale
type SaleResponse struct {
	SaleID    uuid.UUID       `json:"sale_id"`
	Kind      SaleKind        `json:"kind"`
	Station   string          `json:"station"`
	Price     decimal.Decimal `json:"price"`
	SaleDate  Date            `json:"sale_date"`
	Hops      *int            `json:"hops,omitempty"`
	Serial    *string         `json:"serial,omitempty"`
	ExpiresOn *Date           `json:"expires_on,omitempty"`
}

// PassValidityResponse reports whether a pass is valid on a date
type PassValidityResponse struct {
	Serial    string `json:"serial"`
	Valid     bool   `json:"valid"`
	ExpiresOn Date   `json:"expires_on"`
	CheckedOn Date   `json:"checked_on"`
}

// IncomeRow is the revenue of one day
type IncomeRow struct {
	Date   Date            `json:"date" db:"date"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
}

// IncomeReportResponse lists daily revenue ascending by date
type IncomeReportResponse struct {
	Station *string         `json:"station,omitempty"`
	Rows    []IncomeRow     `json:"rows"`
	Total   decimal.Decimal `json:"total"`
}
