package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Factura is an issued invoice. ArchivoKey points at the attachment object in
// S3 (nil = no attachment).
// Estado: "pendiente" | "pagada" | "vencida"
type Factura struct {
	ID           uint            `gorm:"primaryKey"`
	UsuarioID    uint            `gorm:"column:usuario_id;index;not null"`
	ClienteID    *uint           `gorm:"column:cliente_id;index"`
	FechaEmision time.Time       `gorm:"column:fecha_emision;not null"`
	Importe      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null"`
	Numero       *string         `gorm:"type:varchar(50)"`
	Descripcion  *string
	ArchivoKey   *string `gorm:"column:archivo_key"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Factura) TableName() string { return "facturas" }
