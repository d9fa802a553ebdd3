package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/29jbarrera/FaktuFlow-back/internal/apierror"
	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/middleware"
	"github.com/29jbarrera/FaktuFlow-back/internal/service"

	"github.com/gin-gonic/gin"
)

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

func (h *FacturasHandler) Crear(c *gin.Context) {
	var req dto.CrearFacturaRequest
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

// Listar godoc
// @Summary      Listar facturas
// @Description  Listado paginado del propietario, con orden (fecha_emision|importe) y búsqueda por número o descripción.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        page    query int    false "Página (desde 1)"
// @Param        limit   query int    false "Tamaño de página"
// @Param        sort    query string false "fecha_emision | importe"
// @Param        order   query string false "asc | desc"
// @Param        search  query string false "Texto en número o descripción"
// @Success      200  {object} dto.FacturasPageResponse
// @Router       /api/facturas [get]
func (h *FacturasHandler) Listar(c *gin.Context) {
	var q dto.ListFacturasQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros de consulta inválidos"))
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Listar(c.Request.Context(), claims.UserID, q)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Obtener(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrFacturaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Actualizar(c.Request.Context(), id, claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrFacturaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FacturasHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Eliminar(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrFacturaNoEncontrada) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Factura eliminada correctamente."})
}

// SubirArchivo receives a multipart "archivo" field and stores it as the
// invoice attachment, replacing any previous one.
func (h *FacturasHandler) SubirArchivo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el campo 'archivo' en el formulario"))
		return
	}
	if fileHeader.Size > service.MaxArchivoBytes {
		c.JSON(http.StatusBadRequest, apierror.New(service.ErrArchivoTamano.Error()))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.Error(err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, service.MaxArchivoBytes+1))
	if err != nil {
		c.Error(err)
		return
	}

	claims := middleware.GetClaims(c)
	err = h.svc.SubirArchivo(c.Request.Context(), id, claims.UserID, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFacturaNoEncontrada):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrArchivoTipo), errors.Is(err, service.ErrArchivoTamano):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.ArchivoResponse{Message: "Archivo adjuntado correctamente."})
}

// DescargarArchivo returns a short-lived presigned URL for the attachment.
func (h *FacturasHandler) DescargarArchivo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	url, err := h.svc.URLArchivo(c.Request.Context(), id, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFacturaNoEncontrada):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrSinArchivo):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.ArchivoResponse{Message: "URL de descarga generada.", URL: url})
}
