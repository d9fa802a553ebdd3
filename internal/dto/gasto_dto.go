package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearGastoRequest struct {
	NombreGasto  string          `json:"nombre_gasto"  validate:"required,min=1,max=150"`
	Categoria    string          `json:"categoria"     validate:"required,min=1,max=100"`
	Fecha        *time.Time      `json:"fecha"`
	ImporteTotal decimal.Decimal `json:"importe_total" validate:"required"`
	Descripcion  *string         `json:"descripcion"   validate:"omitempty,max=500"`
}

type ActualizarGastoRequest struct {
	NombreGasto  string          `json:"nombre_gasto"  validate:"required,min=1,max=150"`
	Categoria    string          `json:"categoria"     validate:"required,min=1,max=100"`
	Fecha        *time.Time      `json:"fecha"`
	ImporteTotal decimal.Decimal `json:"importe_total" validate:"required"`
	Descripcion  *string         `json:"descripcion"   validate:"omitempty,max=500"`
}

type GastoResponse struct {
	ID           uint            `json:"id"`
	NombreGasto  string          `json:"nombre_gasto"`
	Categoria    string          `json:"categoria"`
	Fecha        time.Time       `json:"fecha"`
	ImporteTotal decimal.Decimal `json:"importe_total"`
	Descripcion  *string         `json:"descripcion"`
}

type GastosPageResponse struct {
	Gastos     []GastoResponse `json:"gastos"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
}
