package service

import (
	"context"
	"math"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"
)

type GastoService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Listar(ctx context.Context, usuarioID uint, page, limit int) (*dto.GastosPageResponse, error)
	Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error)
	Eliminar(ctx context.Context, id, usuarioID uint) error
}

type gastoService struct {
	repo repository.GastoRepository
}

func NewGastoService(repo repository.GastoRepository) GastoService {
	return &gastoService{repo: repo}
}

func (s *gastoService) Crear(ctx context.Context, usuarioID uint, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	fecha := time.Now()
	if req.Fecha != nil {
		fecha = *req.Fecha
	}
	g := &model.Gasto{
		UsuarioID:    usuarioID,
		NombreGasto:  req.NombreGasto,
		Categoria:    req.Categoria,
		Fecha:        fecha,
		ImporteTotal: req.ImporteTotal,
		Descripcion:  req.Descripcion,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return toGastoResponse(g), nil
}

func (s *gastoService) Listar(ctx context.Context, usuarioID uint, page, limit int) (*dto.GastosPageResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	gastos, total, err := s.repo.ListByUsuario(ctx, usuarioID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.GastosPageResponse{
		Gastos:     make([]dto.GastoResponse, len(gastos)),
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	for i := range gastos {
		resp.Gastos[i] = *toGastoResponse(&gastos[i])
	}
	return resp, nil
}

func (s *gastoService) Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarGastoRequest) (*dto.GastoResponse, error) {
	g, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return nil, ErrGastoNoEncontrado
	}
	g.NombreGasto = req.NombreGasto
	g.Categoria = req.Categoria
	if req.Fecha != nil {
		g.Fecha = *req.Fecha
	}
	g.ImporteTotal = req.ImporteTotal
	g.Descripcion = req.Descripcion
	if err := s.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	return toGastoResponse(g), nil
}

func (s *gastoService) Eliminar(ctx context.Context, id, usuarioID uint) error {
	if _, err := s.repo.FindByID(ctx, id, usuarioID); err != nil {
		return ErrGastoNoEncontrado
	}
	return s.repo.Delete(ctx, id, usuarioID)
}

func toGastoResponse(g *model.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:           g.ID,
		NombreGasto:  g.NombreGasto,
		Categoria:    g.Categoria,
		Fecha:        g.Fecha,
		ImporteTotal: g.ImporteTotal,
		Descripcion:  g.Descripcion,
	}
}
