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

type IngresosHandler struct{ svc service.IngresoService }

func NewIngresosHandler(svc service.IngresoService) *IngresosHandler {
	return &IngresosHandler{svc: svc}
}

func (h *IngresosHandler) Crear(c *gin.Context) {
	var req dto.CrearIngresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Crear(c.Request.Context(), claims.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngresosHandler) Listar(c *gin.Context) {
	page, limit := pageParams(c)
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Listar(c.Request.Context(), claims.UserID, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngresosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarIngresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Actualizar(c.Request.Context(), id, claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrIngresoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngresosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Eliminar(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrIngresoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Ingreso eliminado correctamente."})
}
