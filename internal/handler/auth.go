package handler

import (
	"errors"
	"net/http"

	"github.com/29jbarrera/FaktuFlow-back/internal/apierror"
	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/middleware"
	"github.com/29jbarrera/FaktuFlow-back/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea una cuenta sin verificar y envía el código de verificación por correo.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RegisterRequest true "Datos de registro"
// @Success      201  {object} dto.RegisterResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsuarioYaRegistrado):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrEnvioEmail):
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Usuario registrado correctamente. Revisa tu correo para verificar tu cuenta.",
		User:    *user,
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Verifica el captcha y las credenciales, y devuelve un JWT de sesión.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales + token de captcha"
// @Success      200  {object} dto.LoginResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptcha),
			errors.Is(err, service.ErrCredenciales),
			errors.Is(err, service.ErrNoVerificado):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyCode godoc
// @Summary      Verificar cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.VerifyCodeRequest true "Email y código de 6 dígitos"
// @Success      200  {object} dto.MessageResponse
// @Failure      400  {object} apierror.APIError
// @Router       /api/auth/verify-code [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	msg, err := h.svc.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsuarioNoEncontrado),
			errors.Is(err, service.ErrCodigoInvalido),
			errors.Is(err, service.ErrCodigoExpirado):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.ResendCodeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResendCode(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUsuarioNoEncontrado),
			errors.Is(err, service.ErrYaVerificado),
			errors.Is(err, service.ErrCodigoVigente):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrEnvioEmail):
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Se ha enviado un nuevo código de verificación."})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	err := h.svc.ChangePassword(c.Request.Context(), claims.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrPasswordActual):
			c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		case errors.Is(err, service.ErrPasswordIgual):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Contraseña actualizada correctamente."})
}

// ForgotPassword godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Envía un enlace de restablecimiento por correo; máximo una solicitud cada 7 días.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.ForgotPasswordRequest true "Email de la cuenta"
// @Success      200  {object} dto.MessageResponse
// @Failure      429  {object} apierror.APIError
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrResetReciente):
			c.JSON(http.StatusTooManyRequests, apierror.New(err.Error()))
		case errors.Is(err, service.ErrEnvioEmailReset):
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Se ha enviado un correo para restablecer tu contraseña."})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenInvalido), errors.Is(err, service.ErrTokenExpirado):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Contraseña restablecida correctamente."})
}

func (h *AuthHandler) UpdateInfo(c *gin.Context) {
	var req dto.UpdateInfoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	user, err := h.svc.UpdateInfo(c.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailEnUso):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Datos actualizados correctamente.",
		"user":    user,
	})
}

// DeleteUser removes the authenticated account and everything it owns.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.DeleteAccount(c.Request.Context(), claims.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Cuenta eliminada correctamente."})
}
