package service

import (
	"context"

	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"
)

type ClienteService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, usuarioID uint) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id, usuarioID uint) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, usuarioID uint, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if req.Email != nil && *req.Email != "" {
		enUso, err := s.repo.EmailEnUso(ctx, usuarioID, *req.Email)
		if err != nil {
			return nil, err
		}
		if enUso {
			return nil, ErrEmailEnUso
		}
	}

	c := &model.Cliente{
		UsuarioID:       usuarioID,
		Nombre:          req.Nombre,
		Email:           req.Email,
		Telefono:        req.Telefono,
		DireccionFiscal: req.DireccionFiscal,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, usuarioID uint) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = *toClienteResponse(&clientes[i])
	}
	return resp, nil
}

// Actualizar applies only the fields present in the request body.
func (s *clienteService) Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.DireccionFiscal != nil {
		c.DireccionFiscal = req.DireccionFiscal
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id, usuarioID uint) error {
	if _, err := s.repo.FindByID(ctx, id, usuarioID); err != nil {
		return ErrClienteNoEncontrado
	}
	return s.repo.Delete(ctx, id, usuarioID)
}

func toClienteResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID,
		Nombre:          c.Nombre,
		Email:           c.Email,
		Telefono:        c.Telefono,
		DireccionFiscal: c.DireccionFiscal,
	}
}
