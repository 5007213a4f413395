package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types mirroring the API's JSON bodies.

type Role struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Address struct {
	ID         uint   `json:"id"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postal_code"`
}

type User struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	FirstName string   `json:"first_name"`
	Email     string   `json:"email"`
	AddressID *uint    `json:"address_id,omitempty"`
	Address   *Address `json:"address,omitempty"`
	RoleID    uint     `json:"role_id"`
	Role      *Role    `json:"role,omitempty"`
}

type Component struct {
	ID    uint            `json:"id"`
	Type  string          `json:"type"`
	Brand string          `json:"brand"`
	Model string          `json:"model"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Score int             `json:"score"`
}

type Configuration struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	UserID       uint            `json:"user_id"`
	Components   []Component     `json:"components,omitempty"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	AverageScore int             `json:"average_score"`
}

type Order struct {
	ID              uint            `json:"id"`
	Reference       string          `json:"reference"`
	UserID          uint            `json:"user_id"`
	ConfigurationID uint            `json:"configuration_id"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

type CheckoutLine struct {
	ConfigurationID uint `json:"configuration_id"`
	Quantity        int  `json:"quantity"`
}

type LineResult struct {
	ConfigurationID uint   `json:"configuration_id"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	OrderID         uint   `json:"order_id,omitempty"`
}

type CheckoutResult struct {
	Orders []Order      `json:"orders,omitempty"`
	Lines  []LineResult `json:"lines"`
}

type ListMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}
