package service

import (
	"context"
	"math"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"
)

type IngresoService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearIngresoRequest) (*dto.IngresoResponse, error)
	Listar(ctx context.Context, usuarioID uint, page, limit int) (*dto.IngresosPageResponse, error)
	Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarIngresoRequest) (*dto.IngresoResponse, error)
	Eliminar(ctx context.Context, id, usuarioID uint) error
}

type ingresoService struct {
	repo repository.IngresoRepository
}

func NewIngresoService(repo repository.IngresoRepository) IngresoService {
	return &ingresoService{repo: repo}
}

func (s *ingresoService) Crear(ctx context.Context, usuarioID uint, req dto.CrearIngresoRequest) (*dto.IngresoResponse, error) {
	fecha := time.Now()
	if req.FechaIngreso != nil {
		fecha = *req.FechaIngreso
	}
	i := &model.Ingreso{
		UsuarioID:     usuarioID,
		NombreIngreso: req.NombreIngreso,
		Categoria:     req.Categoria,
		FechaIngreso:  fecha,
		ImporteTotal:  req.ImporteTotal,
		Descripcion:   req.Descripcion,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return toIngresoResponse(i), nil
}

func (s *ingresoService) Listar(ctx context.Context, usuarioID uint, page, limit int) (*dto.IngresosPageResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ingresos, total, err := s.repo.ListByUsuario(ctx, usuarioID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.IngresosPageResponse{
		Ingresos:   make([]dto.IngresoResponse, len(ingresos)),
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	for i := range ingresos {
		resp.Ingresos[i] = *toIngresoResponse(&ingresos[i])
	}
	return resp, nil
}

func (s *ingresoService) Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarIngresoRequest) (*dto.IngresoResponse, error) {
	i, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return nil, ErrIngresoNoEncontrado
	}
	i.NombreIngreso = req.NombreIngreso
	i.Categoria = req.Categoria
	if req.FechaIngreso != nil {
		i.FechaIngreso = *req.FechaIngreso
	}
	i.ImporteTotal = req.ImporteTotal
	i.Descripcion = req.Descripcion
	if err := s.repo.Save(ctx, i); err != nil {
		return nil, err
	}
	return toIngresoResponse(i), nil
}

func (s *ingresoService) Eliminar(ctx context.Context, id, usuarioID uint) error {
	if _, err := s.repo.FindByID(ctx, id, usuarioID); err != nil {
		return ErrIngresoNoEncontrado
	}
	return s.repo.Delete(ctx, id, usuarioID)
}

func toIngresoResponse(i *model.Ingreso) *dto.IngresoResponse {
	return &dto.IngresoResponse{
		ID:            i.ID,
		NombreIngreso: i.NombreIngreso,
		Categoria:     i.Categoria,
		FechaIngreso:  i.FechaIngreso,
		ImporteTotal:  i.ImporteTotal,
		Descripcion:   i.Descripcion,
	}
}
