package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/config"
	"github.com/29jbarrera/FaktuFlow-back/internal/crypto"
	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory repository stub ─────────────────────────────────────────────────

type stubUsuarioRepo struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]*model.Usuario
	deleted []uint
}

func newStubRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.EmailHash == u.EmailHash {
			return repository.ErrDuplicado
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.FechaRegistro = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByEmailHash(_ context.Context, emailHash string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.EmailHash == emailHash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) Save(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if existing.EmailHash == u.EmailHash && id != u.ID {
			return repository.ErrDuplicado
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) List(_ context.Context, limit, offset int) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Usuario
	for id := uint(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubUsuarioRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUsuarioRepo) DeleteCascade(_ context.Context, usuarioID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[usuarioID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, usuarioID)
	r.deleted = append(r.deleted, usuarioID)
	return nil
}

// ── Mailer / captcha stubs ────────────────────────────────────────────────────

type stubMailer struct {
	mu         sync.Mutex
	fail       bool
	codes      []string // verification codes sent
	resetLinks []string
}

func (m *stubMailer) SendVerificationEmail(_, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *stubMailer) SendResetPasswordEmail(_, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.resetLinks = append(m.resetLinks, link)
	return nil
}

func (m *stubMailer) lastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.codes) == 0 {
		return ""
	}
	return m.codes[len(m.codes)-1]
}

type stubCaptcha struct{ fail bool }

func (c *stubCaptcha) Verify(context.Context, string) error {
	if c.fail {
		return errors.New("captcha provider rejected token")
	}
	return nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

const testSecret = "test_jwt_secret_32_chars_minimum!"

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 12,
		FrontendURL:        "http://localhost:4200",
	}
}

func newTestCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	c, err := crypto.NewCipher(
		"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		"000102030405060708090a0b0c0d0e0f",
	)
	require.NoError(t, err)
	return c
}

type authFixture struct {
	repo    *stubUsuarioRepo
	mailer  *stubMailer
	captcha *stubCaptcha
	svc     AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		repo:    newStubRepo(),
		mailer:  &stubMailer{},
		captcha: &stubCaptcha{},
	}
	f.svc = NewAuthService(f.repo, newTestCfg(), newTestCipher(t), f.mailer, f.captcha)
	return f
}

func (f *authFixture) register(t *testing.T, email string) *dto.UsuarioResponse {
	t.Helper()
	user, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		Nombre:   "Ana",
		Email:    email,
		Password: "secreta123",
	})
	require.NoError(t, err)
	return user
}

func (f *authFixture) registerVerified(t *testing.T, email string) *dto.UsuarioResponse {
	t.Helper()
	user := f.register(t, email)
	_, err := f.svc.VerifyCode(context.Background(), email, f.mailer.lastCode())
	require.NoError(t, err)
	return user
}

// ── Register ──────────────────────────────────────────────────────────────────

func TestRegister_CreatesUnverifiedAccountAndSendsCode(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, "ana@faktuflow.es")
	assert.Equal(t, "Ana", user.Nombre)
	assert.Equal(t, "ana@faktuflow.es", user.Email)
	assert.Equal(t, "autonomo", user.Rol)

	stored := f.repo.users[user.ID]
	require.NotNil(t, stored)
	assert.False(t, stored.Verificado)
	require.NotNil(t, stored.CodigoVerificacion)
	assert.Len(t, *stored.CodigoVerificacion, 6)
	require.NotNil(t, stored.CodigoExpiry)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.CodigoExpiry, 5*time.Second)

	// Email stored encrypted, never in the clear
	assert.NotEqual(t, "ana@faktuflow.es", stored.Email)
	assert.Equal(t, crypto.Hash("ana@faktuflow.es"), stored.EmailHash)

	// Password stored as bcrypt
	assert.True(t, crypto.CheckPassword(stored.Password, "secreta123"))

	assert.Equal(t, *stored.CodigoVerificacion, f.mailer.lastCode())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@faktuflow.es")

	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		Nombre: "Otra", Email: "ana@faktuflow.es", Password: "secreta123",
	})
	assert.ErrorIs(t, err, ErrUsuarioYaRegistrado)
}

func TestRegister_EmailSendFailureKeepsRow(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.fail = true

	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		Nombre: "Ana", Email: "ana@faktuflow.es", Password: "secreta123",
	})
	assert.ErrorIs(t, err, ErrEnvioEmail)

	// The account is committed; the user recovers via resend-code.
	_, err = f.repo.FindByEmailHash(context.Background(), crypto.Hash("ana@faktuflow.es"))
	assert.NoError(t, err)
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLogin_CaptchaFailureBlocksBeforeLookup(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "ana@faktuflow.es")
	f.captcha.fail = true

	_, err := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@faktuflow.es", Password: "secreta123", CaptchaToken: "tok",
	})
	assert.ErrorIs(t, err, ErrCaptcha)
}

func TestLogin_UnknownEmailAndWrongPasswordShareError(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "ana@faktuflow.es")

	_, err := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@faktuflow.es", Password: "secreta123", CaptchaToken: "tok",
	})
	assert.ErrorIs(t, err, ErrCredenciales)

	_, err = f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@faktuflow.es", Password: "incorrecta", CaptchaToken: "tok",
	})
	assert.ErrorIs(t, err, ErrCredenciales)
}

func TestLogin_UnverifiedAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@faktuflow.es")

	_, err := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@faktuflow.es", Password: "secreta123", CaptchaToken: "tok",
	})
	assert.ErrorIs(t, err, ErrNoVerificado)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")

	resp, err := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@faktuflow.es", Password: "secreta123", CaptchaToken: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.UsuarioID)
	assert.Equal(t, "ana@faktuflow.es", resp.Email)
	assert.Equal(t, "autonomo", resp.Rol)

	// Token carries the identity claims and a ~12h expiry
	parsed, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(user.ID), claims["id"])
	assert.Equal(t, "Ana", claims["nombre"])
	assert.Equal(t, "autonomo", claims["rol"])
	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), exp, time.Minute)
}

// ── Verify / resend code ──────────────────────────────────────────────────────

func TestVerifyCode_Success(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ana@faktuflow.es")

	msg, err := f.svc.VerifyCode(context.Background(), "ana@faktuflow.es", f.mailer.lastCode())
	require.NoError(t, err)
	assert.Equal(t, "Cuenta verificada con éxito", msg)

	stored := f.repo.users[user.ID]
	assert.True(t, stored.Verificado)
	assert.Nil(t, stored.CodigoVerificacion)
	assert.Nil(t, stored.CodigoExpiry)
}

func TestVerifyCode_IdempotentWhenAlreadyVerified(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "ana@faktuflow.es")

	// The code is long gone; verifying again still succeeds
	msg, err := f.svc.VerifyCode(context.Background(), "ana@faktuflow.es", "000000")
	require.NoError(t, err)
	assert.Equal(t, "La cuenta ya estaba verificada", msg)
}

func TestVerifyCode_Mismatch(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@faktuflow.es")

	wrong := "000000"
	if f.mailer.lastCode() == wrong {
		wrong = "000001"
	}
	_, err := f.svc.VerifyCode(context.Background(), "ana@faktuflow.es", wrong)
	assert.ErrorIs(t, err, ErrCodigoInvalido)
}

func TestVerifyCode_ExpiryInstantCountsAsExpired(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ana@faktuflow.es")

	past := time.Now()
	stored := f.repo.users[user.ID]
	stored.CodigoExpiry = &past

	_, err := f.svc.VerifyCode(context.Background(), "ana@faktuflow.es", f.mailer.lastCode())
	assert.ErrorIs(t, err, ErrCodigoExpirado)
}

func TestVerifyCode_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.VerifyCode(context.Background(), "nadie@faktuflow.es", "123456")
	assert.ErrorIs(t, err, ErrUsuarioNoEncontrado)
}

func TestResendCode_RejectedWhileCodeStillValid(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@faktuflow.es")

	err := f.svc.ResendCode(context.Background(), "ana@faktuflow.es")
	assert.ErrorIs(t, err, ErrCodigoVigente)
}

func TestResendCode_RotatesAfterExpiry(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "ana@faktuflow.es")

	expired := time.Now().Add(-time.Minute)
	f.repo.users[user.ID].CodigoExpiry = &expired

	err := f.svc.ResendCode(context.Background(), "ana@faktuflow.es")
	require.NoError(t, err)

	stored := f.repo.users[user.ID]
	require.NotNil(t, stored.CodigoVerificacion)
	assert.Len(t, *stored.CodigoVerificacion, 6)
	assert.Equal(t, *stored.CodigoVerificacion, f.mailer.lastCode())
	assert.True(t, stored.CodigoExpiry.After(time.Now()))
}

func TestResendCode_AlreadyVerified(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "ana@faktuflow.es")

	err := f.svc.ResendCode(context.Background(), "ana@faktuflow.es")
	assert.ErrorIs(t, err, ErrYaVerificado)
}

// ── Change password ───────────────────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")
	ctx := context.Background()

	err := f.svc.ChangePassword(ctx, user.ID, "incorrecta", "nueva12345")
	assert.ErrorIs(t, err, ErrPasswordActual)

	err = f.svc.ChangePassword(ctx, user.ID, "secreta123", "secreta123")
	assert.ErrorIs(t, err, ErrPasswordIgual)

	err = f.svc.ChangePassword(ctx, 999, "secreta123", "nueva12345")
	assert.ErrorIs(t, err, ErrUsuarioNoEncontrado)

	err = f.svc.ChangePassword(ctx, user.ID, "secreta123", "nueva12345")
	require.NoError(t, err)
	assert.True(t, crypto.CheckPassword(f.repo.users[user.ID].Password, "nueva12345"))
}

// ── Forgot / reset password ───────────────────────────────────────────────────

func TestForgotPassword_IssuesTokenAndLink(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")

	err := f.svc.ForgotPassword(context.Background(), "ana@faktuflow.es")
	require.NoError(t, err)

	stored := f.repo.users[user.ID]
	require.NotNil(t, stored.ResetToken)
	assert.Len(t, *stored.ResetToken, 64) // 32 bytes hex
	require.NotNil(t, stored.ResetTokenExpiry)
	require.NotNil(t, stored.UltimoReset)

	require.Len(t, f.mailer.resetLinks, 1)
	link := f.mailer.resetLinks[0]
	assert.True(t, strings.HasPrefix(link, "http://localhost:4200/reset-password?token="))
	assert.Contains(t, link, *stored.ResetToken)
}

func TestForgotPassword_CooldownBoundary(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")
	ctx := context.Background()

	// Just inside the 7-day window → rejected
	recent := time.Now().Add(-7*24*time.Hour + time.Second)
	f.repo.users[user.ID].UltimoReset = &recent
	err := f.svc.ForgotPassword(ctx, "ana@faktuflow.es")
	assert.ErrorIs(t, err, ErrResetReciente)

	// Just outside → accepted
	old := time.Now().Add(-7*24*time.Hour - time.Second)
	f.repo.users[user.ID].UltimoReset = &old
	err = f.svc.ForgotPassword(ctx, "ana@faktuflow.es")
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")
	ctx := context.Background()

	require.NoError(t, f.svc.ForgotPassword(ctx, "ana@faktuflow.es"))
	token := *f.repo.users[user.ID].ResetToken

	err := f.svc.ResetPassword(ctx, "ana@faktuflow.es", "token-incorrecto", "nueva12345")
	assert.ErrorIs(t, err, ErrTokenInvalido)

	// Expired token
	past := time.Now().Add(-time.Minute)
	f.repo.users[user.ID].ResetTokenExpiry = &past
	err = f.svc.ResetPassword(ctx, "ana@faktuflow.es", token, "nueva12345")
	assert.ErrorIs(t, err, ErrTokenExpirado)

	// Restore expiry and consume the token
	future := time.Now().Add(time.Hour)
	f.repo.users[user.ID].ResetTokenExpiry = &future
	err = f.svc.ResetPassword(ctx, "ana@faktuflow.es", token, "nueva12345")
	require.NoError(t, err)

	stored := f.repo.users[user.ID]
	assert.True(t, crypto.CheckPassword(stored.Password, "nueva12345"))
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpiry)

	// Single use: replay fails
	err = f.svc.ResetPassword(ctx, "ana@faktuflow.es", token, "otra12345")
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

// ── Update info / delete ──────────────────────────────────────────────────────

func TestUpdateInfo_ReencryptsEmail(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")

	resp, err := f.svc.UpdateInfo(context.Background(), user.ID, dto.UpdateInfoRequest{
		Nombre: "Ana María", Apellidos: "García", Email: "nueva@faktuflow.es",
	})
	require.NoError(t, err)
	assert.Equal(t, "nueva@faktuflow.es", resp.Email)

	stored := f.repo.users[user.ID]
	assert.Equal(t, crypto.Hash("nueva@faktuflow.es"), stored.EmailHash)
	assert.NotEqual(t, "nueva@faktuflow.es", stored.Email)

	cipher := newTestCipher(t)
	dec, err := cipher.Decrypt(stored.Email)
	require.NoError(t, err)
	assert.Equal(t, "nueva@faktuflow.es", dec)
}

func TestUpdateInfo_EmailOwnedByOtherAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "ana@faktuflow.es")
	otro := f.registerVerified(t, "otro@faktuflow.es")

	_, err := f.svc.UpdateInfo(context.Background(), otro.ID, dto.UpdateInfoRequest{
		Nombre: "Otro", Apellidos: "Pérez", Email: "ana@faktuflow.es",
	})
	assert.ErrorIs(t, err, ErrEmailEnUso)
}

func TestUpdateInfo_KeepingOwnEmailIsAllowed(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")

	_, err := f.svc.UpdateInfo(context.Background(), user.ID, dto.UpdateInfoRequest{
		Nombre: "Ana", Apellidos: "García", Email: "ana@faktuflow.es",
	})
	assert.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")

	err := f.svc.DeleteAccount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{user.ID}, f.repo.deleted)

	err = f.svc.DeleteAccount(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUsuarioNoEncontrado)
}

func TestGetUsuario_DecryptsEmail(t *testing.T) {
	f := newAuthFixture(t)
	user := f.registerVerified(t, "ana@faktuflow.es")

	resp, err := f.svc.GetUsuario(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@faktuflow.es", resp.Email)

	_, err = f.svc.GetUsuario(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUsuarioNoEncontrado)
}
