package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingreso is an income record owned by one account.
type Ingreso struct {
	ID            uint            `gorm:"primaryKey"`
	UsuarioID     uint            `gorm:"column:usuario_id;index;not null"`
	NombreIngreso string          `gorm:"column:nombre_ingreso;not null"`
	Categoria     string          `gorm:"not null"`
	FechaIngreso  time.Time       `gorm:"column:fecha_ingreso;not null"`
	ImporteTotal  decimal.Decimal `gorm:"column:importe_total;type:decimal(12,2);not null"`
	Descripcion   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Ingreso) TableName() string { return "ingresos" }
