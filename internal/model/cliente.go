package model

import "time"

// Cliente is a customer owned by one account.
type Cliente struct {
	ID              uint   `gorm:"primaryKey"`
	UsuarioID       uint   `gorm:"column:usuario_id;index;not null"`
	Nombre          string `gorm:"not null"`
	Email           *string
	Telefono        *string
	DireccionFiscal *string `gorm:"column:direccion_fiscal"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Cliente) TableName() string { return "clientes" }
