package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearFacturaRequest struct {
	ClienteID    *uint           `json:"cliente_id"`
	FechaEmision time.Time       `json:"fecha_emision" validate:"required"`
	Importe      decimal.Decimal `json:"importe"       validate:"required"`
	Estado       string          `json:"estado"        validate:"required,oneof=pendiente pagada vencida"`
	Numero       *string         `json:"numero"        validate:"omitempty,max=50"`
	Descripcion  *string         `json:"descripcion"   validate:"omitempty,max=500"`
}

type ActualizarFacturaRequest struct {
	ClienteID    *uint           `json:"cliente_id"`
	FechaEmision time.Time       `json:"fecha_emision" validate:"required"`
	Importe      decimal.Decimal `json:"importe"       validate:"required"`
	Estado       string          `json:"estado"        validate:"required,oneof=pendiente pagada vencida"`
	Numero       *string         `json:"numero"        validate:"omitempty,max=50"`
	Descripcion  *string         `json:"descripcion"   validate:"omitempty,max=500"`
}

// ListFacturasQuery mirrors the query string of GET /api/facturas.
// Sort is whitelisted in the repository — it never reaches SQL verbatim.
type ListFacturasQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Sort   string `form:"sort"`   // fecha_emision | importe
	Order  string `form:"order"`  // asc | desc
	Search string `form:"search"` // matches numero / descripcion
}

type FacturaResponse struct {
	ID           uint            `json:"id"`
	ClienteID    *uint           `json:"cliente_id"`
	FechaEmision time.Time       `json:"fecha_emision"`
	Importe      decimal.Decimal `json:"importe"`
	Estado       string          `json:"estado"`
	Numero       *string         `json:"numero"`
	Descripcion  *string         `json:"descripcion"`
	TieneArchivo bool            `json:"tiene_archivo"`
}

type FacturasPageResponse struct {
	Facturas   []FacturaResponse `json:"facturas"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}

type ArchivoResponse struct {
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}
