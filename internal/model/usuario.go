package model

import "time"

// Rol is the closed set of account roles. Authorization checks switch on this
// type instead of comparing free strings.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolAutonomo Rol = "autonomo"
)

// Usuario is the account row. The email is stored twice: Email holds the
// AES-256-CBC ciphertext (hex) and EmailHash the SHA-256 digest used for
// lookups. EmailHash carries the unique index — the ciphertext column is not
// comparable for uniqueness on its own.
type Usuario struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"not null"`
	Apellidos string
	Email     string `gorm:"not null"`
	EmailHash string `gorm:"column:email_hash;uniqueIndex;not null"`
	// Password holds the bcrypt hash; plaintext is never persisted.
	Password      string    `gorm:"not null"`
	Rol           Rol       `gorm:"type:varchar(20);not null;default:'autonomo'"`
	FechaRegistro time.Time `gorm:"column:fecha_registro;autoCreateTime"`

	// Verification state — login is rejected while Verificado is false.
	Verificado         bool       `gorm:"not null;default:false"`
	CodigoVerificacion *string    `gorm:"column:codigo_verificacion;type:varchar(6)"`
	CodigoExpiry       *time.Time `gorm:"column:verification_code_expiry"`

	// Reset state — single-use token plus the rate-limit timestamp.
	ResetToken       *string    `gorm:"column:reset_token;type:varchar(64)"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry"`
	UltimoReset      *time.Time `gorm:"column:ultimo_reset"`
}

func (Usuario) TableName() string { return "usuarios" }
