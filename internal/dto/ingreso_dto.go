package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearIngresoRequest struct {
	NombreIngreso string          `json:"nombre_ingreso" validate:"required,min=1,max=150"`
	Categoria     string          `json:"categoria"      validate:"required,min=1,max=100"`
	FechaIngreso  *time.Time      `json:"fecha_ingreso"`
	ImporteTotal  decimal.Decimal `json:"importe_total"  validate:"required"`
	Descripcion   *string         `json:"descripcion"    validate:"omitempty,max=500"`
}

type ActualizarIngresoRequest struct {
	NombreIngreso string          `json:"nombre_ingreso" validate:"required,min=1,max=150"`
	Categoria     string          `json:"categoria"      validate:"required,min=1,max=100"`
	FechaIngreso  *time.Time      `json:"fecha_ingreso"`
	ImporteTotal  decimal.Decimal `json:"importe_total"  validate:"required"`
	Descripcion   *string         `json:"descripcion"    validate:"omitempty,max=500"`
}

type IngresoResponse struct {
	ID            uint            `json:"id"`
	NombreIngreso string          `json:"nombre_ingreso"`
	Categoria     string          `json:"categoria"`
	FechaIngreso  time.Time       `json:"fecha_ingreso"`
	ImporteTotal  decimal.Decimal `json:"importe_total"`
	Descripcion   *string         `json:"descripcion"`
}

type IngresosPageResponse struct {
	Ingresos   []IngresoResponse `json:"ingresos"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}
