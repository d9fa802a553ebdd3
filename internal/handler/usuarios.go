package handler

import (
	"errors"
	"net/http"

	"github.com/29jbarrera/FaktuFlow-back/internal/apierror"
	"github.com/29jbarrera/FaktuFlow-back/internal/middleware"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/service"

	"github.com/gin-gonic/gin"
)

type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

// ObtenerPorID returns one account. Admins can read any account; everyone
// else only their own.
func (h *UsuariosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if claims.Rol != string(model.RolAdmin) && claims.UserID != id {
		c.JSON(http.StatusForbidden, apierror.New("No tienes permiso para ver este usuario"))
		return
	}

	user, err := h.svc.GetUsuario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}
