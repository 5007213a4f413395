package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Component types sold by the shop. A configuration is intended to hold at
// most one component per type.
const (
	TypeCPU         = "cpu"
	TypeMotherboard = "motherboard"
	TypeGPU         = "gpu"
	TypeMemory      = "memory"
	TypeStorage     = "storage"
	TypePSU         = "psu"
	TypeCase        = "case"
)

func ComponentTypes() []string {
	return []string{TypeCPU, TypeMotherboard, TypeGPU, TypeMemory, TypeStorage, TypePSU, TypeCase}
}

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Address struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Street     string `gorm:"not null"                 json:"street"`
	Number     string `gorm:"not null"                 json:"number"`
	PostalCode string `gorm:"not null"                 json:"postal_code"`
}

type User struct {
	ID                uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string   `gorm:"not null"                 json:"name"`
	FirstName         string   `gorm:"not null"                 json:"first_name"`
	Email             string   `gorm:"unique;not null"          json:"email"`
	PasswordHash      string   `gorm:"not null"                 json:"-"`
	MustResetPassword bool     `gorm:"default:false"            json:"-"`
	AddressID         *uint    `gorm:"index"                    json:"address_id,omitempty"`
	Address           *Address `json:"address,omitempty"`
	RoleID            uint     `gorm:"index;not null"           json:"role_id"`
	Role              *Role    `json:"role,omitempty"`
}

type Component struct {
	ID    uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Type  string          `gorm:"index;not null"           json:"type"`
	Brand string          `gorm:"not null"                 json:"brand"`
	Model string          `gorm:"not null"                 json:"model"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock int             `gorm:"not null;default:0"       json:"stock"`
	Score int             `gorm:"not null;default:0"       json:"score"`
}

type Configuration struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string      `gorm:"not null"                 json:"name"`
	UserID     uint        `gorm:"index;not null"           json:"user_id"`
	Components []Component `gorm:"many2many:configuration_components" json:"components,omitempty"`
}

const OrderStatusNew = "new"

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference       string          `gorm:"unique;not null"          json:"reference"`
	UserID          uint            `gorm:"index;not null"           json:"user_id"`
	ConfigurationID uint            `gorm:"not null"                 json:"configuration_id"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity        int             `gorm:"not null;check:quantity>0" json:"quantity"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	Status          string          `gorm:"not null"                 json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
