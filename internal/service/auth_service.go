package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/config"
	"github.com/29jbarrera/FaktuFlow-back/internal/crypto"
	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	codeTTL  = time.Hour
	resetTTL = time.Hour
	// resetCooldown is the minimum gap between password-reset requests.
	resetCooldown = 7 * 24 * time.Hour
)

// Mailer is the notification gateway: sends are synchronous, a failed send
// fails the operation that needed it (the caller decides how to surface it).
type Mailer interface {
	SendVerificationEmail(to, code string) error
	SendResetPasswordEmail(to, link string) error
}

// BotChecker verifies a captcha response token. Called once per login,
// before any credential lookup.
type BotChecker interface {
	Verify(ctx context.Context, token string) error
}

// AuthService is the sole reader/writer of account state.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyCode(ctx context.Context, email, code string) (string, error)
	ResendCode(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, usuarioID uint, current, nueva string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, nueva string) error
	UpdateInfo(ctx context.Context, usuarioID uint, req dto.UpdateInfoRequest) (*dto.UsuarioResponse, error)
	DeleteAccount(ctx context.Context, usuarioID uint) error
	GetUsuario(ctx context.Context, usuarioID uint) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo    repository.UsuarioRepository
	cfg     *config.Config
	cipher  *crypto.Cipher
	mailer  Mailer
	captcha BotChecker
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config, cipher *crypto.Cipher, mailer Mailer, captcha BotChecker) AuthService {
	return &authService{repo: repo, cfg: cfg, cipher: cipher, mailer: mailer, captcha: captcha}
}

// Register creates an unverified account and dispatches the verification
// code. The email send is on the critical path: if it fails the row stays
// committed but the caller gets an error — the user recovers via resend-code.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	emailHash := crypto.Hash(req.Email)

	if _, err := s.repo.FindByEmailHash(ctx, emailHash); err == nil {
		return nil, ErrUsuarioYaRegistrado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	encEmail, err := s.cipher.Encrypt(req.Email)
	if err != nil {
		return nil, err
	}
	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	rol := model.RolAutonomo
	if req.Rol != "" {
		rol = model.Rol(req.Rol)
	}
	expiry := time.Now().Add(codeTTL)

	u := &model.Usuario{
		Nombre:             req.Nombre,
		Apellidos:          req.Apellidos,
		Email:              encEmail,
		EmailHash:          emailHash,
		Password:           passwordHash,
		Rol:                rol,
		Verificado:         false,
		CodigoVerificacion: &code,
		CodigoExpiry:       &expiry,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// The unique index on email_hash closes the check-then-insert race.
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, ErrUsuarioYaRegistrado
		}
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(req.Email, code); err != nil {
		log.Error().Err(err).Uint("usuario_id", u.ID).Msg("verification email failed after commit")
		return nil, ErrEnvioEmail
	}

	return s.toResponse(u, req.Email), nil
}

// Login verifies the bot-check token, then the credentials, and issues a
// session token. Unknown email and wrong password share one error.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.captcha.Verify(ctx, req.CaptchaToken); err != nil {
		return nil, ErrCaptcha
	}

	u, err := s.repo.FindByEmailHash(ctx, crypto.Hash(req.Email))
	if err != nil {
		return nil, ErrCredenciales
	}
	if !u.Verificado {
		return nil, ErrNoVerificado
	}
	if !crypto.CheckPassword(u.Password, req.Password) {
		return nil, ErrCredenciales
	}

	token, err := s.generateToken(u)
	if err != nil {
		return nil, err
	}

	email, err := s.cipher.Decrypt(u.Email)
	if err != nil {
		// The stored ciphertext should always decrypt; echo the submitted
		// address rather than failing a correct login.
		log.Warn().Uint("usuario_id", u.ID).Msg("stored email undecryptable")
		email = req.Email
	}

	return &dto.LoginResponse{
		Message:   "Inicio de sesión exitoso",
		Token:     token,
		UsuarioID: u.ID,
		Nombre:    u.Nombre,
		Apellidos: u.Apellidos,
		Email:     email,
		Rol:       string(u.Rol),
	}, nil
}

// VerifyCode marks the account verified. Idempotent: a second call after
// success reports "already verified" without touching the (cleared) code.
func (s *authService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	u, err := s.repo.FindByEmailHash(ctx, crypto.Hash(email))
	if err != nil {
		return "", ErrUsuarioNoEncontrado
	}
	if u.Verificado {
		return "La cuenta ya estaba verificada", nil
	}
	if u.CodigoVerificacion == nil || u.CodigoExpiry == nil {
		return "", ErrCodigoInvalido
	}
	// The expiry instant itself counts as expired.
	if !time.Now().Before(*u.CodigoExpiry) {
		return "", ErrCodigoExpirado
	}
	if strings.TrimSpace(code) != *u.CodigoVerificacion {
		return "", ErrCodigoInvalido
	}

	u.Verificado = true
	u.CodigoVerificacion = nil
	u.CodigoExpiry = nil
	if err := s.repo.Save(ctx, u); err != nil {
		return "", err
	}
	return "Cuenta verificada con éxito", nil
}

// ResendCode rotates the verification code. A new code is only issued once
// the previous one has expired — the expiry doubles as the resend throttle.
func (s *authService) ResendCode(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmailHash(ctx, crypto.Hash(email))
	if err != nil {
		return ErrUsuarioNoEncontrado
	}
	if u.Verificado {
		return ErrYaVerificado
	}
	if u.CodigoExpiry != nil && time.Now().Before(*u.CodigoExpiry) {
		return ErrCodigoVigente
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(codeTTL)
	u.CodigoVerificacion = &code
	u.CodigoExpiry = &expiry
	if err := s.repo.Save(ctx, u); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationEmail(email, code); err != nil {
		return ErrEnvioEmail
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, usuarioID uint, current, nueva string) error {
	u, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return ErrUsuarioNoEncontrado
	}
	if !crypto.CheckPassword(u.Password, current) {
		return ErrPasswordActual
	}
	if current == nueva {
		return ErrPasswordIgual
	}

	hash, err := crypto.HashPassword(nueva)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.repo.Save(ctx, u)
}

// ForgotPassword issues a single-use reset token, at most once per 7 days.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmailHash(ctx, crypto.Hash(email))
	if err != nil {
		return ErrUsuarioNoEncontrado
	}
	now := time.Now()
	if u.UltimoReset != nil && now.Sub(*u.UltimoReset) < resetCooldown {
		return ErrResetReciente
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	expiry := now.Add(resetTTL)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	u.UltimoReset = &now
	if err := s.repo.Save(ctx, u); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.cfg.FrontendURL, token, url.QueryEscape(email))
	if err := s.mailer.SendResetPasswordEmail(email, link); err != nil {
		return ErrEnvioEmailReset
	}
	return nil
}

// ResetPassword consumes the token: on success it is cleared and cannot be
// replayed. An unknown email answers the same as a bad token.
func (s *authService) ResetPassword(ctx context.Context, email, token, nueva string) error {
	u, err := s.repo.FindByEmailHash(ctx, crypto.Hash(email))
	if err != nil {
		return ErrTokenInvalido
	}
	if u.ResetToken == nil || *u.ResetToken != token {
		return ErrTokenInvalido
	}
	if u.ResetTokenExpiry == nil || !time.Now().Before(*u.ResetTokenExpiry) {
		return ErrTokenExpirado
	}

	hash, err := crypto.HashPassword(nueva)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return s.repo.Save(ctx, u)
}

// UpdateInfo replaces name, surname and email, re-deriving both stored email
// forms. The new email must not belong to a different account.
func (s *authService) UpdateInfo(ctx context.Context, usuarioID uint, req dto.UpdateInfoRequest) (*dto.UsuarioResponse, error) {
	newHash := crypto.Hash(req.Email)
	if existing, err := s.repo.FindByEmailHash(ctx, newHash); err == nil && existing.ID != usuarioID {
		return nil, ErrEmailEnUso
	}

	u, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}

	encEmail, err := s.cipher.Encrypt(req.Email)
	if err != nil {
		return nil, err
	}
	u.Nombre = req.Nombre
	u.Apellidos = req.Apellidos
	u.Email = encEmail
	u.EmailHash = newHash
	if err := s.repo.Save(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, ErrEmailEnUso
		}
		return nil, err
	}
	return s.toResponse(u, req.Email), nil
}

// DeleteAccount removes the account and everything it owns in one
// transaction, children before parent.
func (s *authService) DeleteAccount(ctx context.Context, usuarioID uint) error {
	if _, err := s.repo.FindByID(ctx, usuarioID); err != nil {
		return ErrUsuarioNoEncontrado
	}
	return s.repo.DeleteCascade(ctx, usuarioID)
}

func (s *authService) GetUsuario(ctx context.Context, usuarioID uint) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	email, err := s.cipher.Decrypt(u.Email)
	if err != nil {
		email = "[email ilegible]"
	}
	return s.toResponse(u, email), nil
}

func (s *authService) toResponse(u *model.Usuario, plainEmail string) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:            u.ID,
		Nombre:        u.Nombre,
		Apellidos:     u.Apellidos,
		Email:         plainEmail,
		Rol:           string(u.Rol),
		FechaRegistro: u.FechaRegistro.Format(time.RFC3339),
	}
}

func (s *authService) generateToken(u *model.Usuario) (string, error) {
	hours := s.cfg.JWTExpirationHours
	if hours <= 0 {
		hours = 12
	}
	claims := jwt.MapClaims{
		"id":        u.ID,
		"nombre":    u.Nombre,
		"apellidos": u.Apellidos,
		"rol":       string(u.Rol),
		"exp":       time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// generateVerificationCode draws a uniform 6-digit code from crypto/rand.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// generateResetToken returns 32 random bytes as 64 hex characters.
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
