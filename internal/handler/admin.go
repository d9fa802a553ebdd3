package handler

import (
	"net/http"

	"github.com/29jbarrera/FaktuFlow-back/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{ svc service.AdminService }

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Stats godoc
// @Summary      Estadísticas globales
// @Description  Totales de usuarios, facturas, gastos y clientes. Cacheado 60 segundos.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DashboardStats
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.svc.DashboardStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) Usuarios(c *gin.Context) {
	page, limit := pageParams(c)
	resp, err := h.svc.UsuariosConStats(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
