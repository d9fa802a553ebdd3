package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=1,max=100"`
	Apellidos string `json:"apellidos" validate:"max=150"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Rol       string `json:"rol"       validate:"omitempty,oneof=admin autonomo"`
}

type LoginRequest struct {
	Email    string `json:"email"         validate:"required,email"`
	Password string `json:"password"      validate:"required,min=6"`
	// CaptchaToken is the bot-check response token; verified before any
	// credential lookup.
	CaptchaToken string `json:"captchaToken" validate:"required"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Token       string `json:"token"       validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type UpdateInfoRequest struct {
	Nombre    string `json:"nombre"    validate:"required,min=1,max=100"`
	Apellidos string `json:"apellidos" validate:"required,max=150"`
	Email     string `json:"email"     validate:"required,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse always carries the email in plaintext — decryption happens
// at the service boundary, never in the client.
type UsuarioResponse struct {
	ID            uint   `json:"id"`
	Nombre        string `json:"nombre"`
	Apellidos     string `json:"apellidos"`
	Email         string `json:"email"`
	Rol           string `json:"rol"`
	FechaRegistro string `json:"fecha_registro,omitempty"`
}

type RegisterResponse struct {
	Message string          `json:"message"`
	User    UsuarioResponse `json:"user"`
}

type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	UsuarioID uint   `json:"usuario_id"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Rol       string `json:"rol"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
