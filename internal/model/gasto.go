package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gasto is an expense record owned by one account.
type Gasto struct {
	ID           uint            `gorm:"primaryKey"`
	UsuarioID    uint            `gorm:"column:usuario_id;index;not null"`
	NombreGasto  string          `gorm:"column:nombre_gasto;not null"`
	Categoria    string          `gorm:"not null"`
	Fecha        time.Time       `gorm:"not null"`
	ImporteTotal decimal.Decimal `gorm:"column:importe_total;type:decimal(12,2);not null"`
	Descripcion  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Gasto) TableName() string { return "gastos" }
