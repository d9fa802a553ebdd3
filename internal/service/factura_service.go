package service

import (
	"context"
	"math"
	"path/filepath"
	"strings"

	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/infra"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"

	"github.com/rs/zerolog/log"
)

// MaxArchivoBytes caps attachment uploads at 10 MB.
const MaxArchivoBytes = 10 << 20

// contentTypes maps the allowed attachment extensions to the Content-Type
// stored alongside the object.
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type FacturaService interface {
	Crear(ctx context.Context, usuarioID uint, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error)
	Obtener(ctx context.Context, id, usuarioID uint) (*dto.FacturaResponse, error)
	Listar(ctx context.Context, usuarioID uint, q dto.ListFacturasQuery) (*dto.FacturasPageResponse, error)
	Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error)
	Eliminar(ctx context.Context, id, usuarioID uint) error
	SubirArchivo(ctx context.Context, id, usuarioID uint, filename string, data []byte) error
	URLArchivo(ctx context.Context, id, usuarioID uint) (string, error)
}

type facturaService struct {
	repo  repository.FacturaRepository
	store *infra.ArchivoStore
}

func NewFacturaService(repo repository.FacturaRepository, store *infra.ArchivoStore) FacturaService {
	return &facturaService{repo: repo, store: store}
}

func (s *facturaService) Crear(ctx context.Context, usuarioID uint, req dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	f := &model.Factura{
		UsuarioID:    usuarioID,
		ClienteID:    req.ClienteID,
		FechaEmision: req.FechaEmision,
		Importe:      req.Importe,
		Estado:       req.Estado,
		Numero:       req.Numero,
		Descripcion:  req.Descripcion,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFacturaResponse(f), nil
}

// Obtener scopes the lookup to the owner — someone else's factura behaves
// exactly like a missing one.
func (s *facturaService) Obtener(ctx context.Context, id, usuarioID uint) (*dto.FacturaResponse, error) {
	f, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return nil, ErrFacturaNoEncontrada
	}
	return toFacturaResponse(f), nil
}

func (s *facturaService) Listar(ctx context.Context, usuarioID uint, q dto.ListFacturasQuery) (*dto.FacturasPageResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	facturas, total, err := s.repo.ListByUsuario(ctx, usuarioID, repository.FacturaFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Sort:   q.Sort,
		Order:  q.Order,
		Search: q.Search,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.FacturasPageResponse{
		Facturas:   make([]dto.FacturaResponse, len(facturas)),
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	for i := range facturas {
		resp.Facturas[i] = *toFacturaResponse(&facturas[i])
	}
	return resp, nil
}

func (s *facturaService) Actualizar(ctx context.Context, id, usuarioID uint, req dto.ActualizarFacturaRequest) (*dto.FacturaResponse, error) {
	f, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return nil, ErrFacturaNoEncontrada
	}
	f.ClienteID = req.ClienteID
	f.FechaEmision = req.FechaEmision
	f.Importe = req.Importe
	f.Estado = req.Estado
	f.Numero = req.Numero
	f.Descripcion = req.Descripcion
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return toFacturaResponse(f), nil
}

func (s *facturaService) Eliminar(ctx context.Context, id, usuarioID uint) error {
	f, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return ErrFacturaNoEncontrada
	}
	if err := s.repo.Delete(ctx, id, usuarioID); err != nil {
		return err
	}
	// Best effort: the row is the source of truth, an orphan object in the
	// bucket is harmless.
	if f.ArchivoKey != nil && s.store != nil {
		if err := s.store.Delete(ctx, *f.ArchivoKey); err != nil {
			log.Warn().Err(err).Str("key", *f.ArchivoKey).Msg("no se pudo borrar el adjunto")
		}
	}
	return nil
}

// SubirArchivo validates and stores an attachment, replacing any previous one.
func (s *facturaService) SubirArchivo(ctx context.Context, id, usuarioID uint, filename string, data []byte) error {
	f, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return ErrFacturaNoEncontrada
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		return ErrArchivoTipo
	}
	if len(data) > MaxArchivoBytes {
		return ErrArchivoTamano
	}

	key := s.store.NewKey(usuarioID, ext)
	if err := s.store.Upload(ctx, key, contentType, data); err != nil {
		return err
	}

	previo := f.ArchivoKey
	f.ArchivoKey = &key
	if err := s.repo.Save(ctx, f); err != nil {
		return err
	}
	if previo != nil {
		if err := s.store.Delete(ctx, *previo); err != nil {
			log.Warn().Err(err).Str("key", *previo).Msg("no se pudo borrar el adjunto anterior")
		}
	}
	return nil
}

func (s *facturaService) URLArchivo(ctx context.Context, id, usuarioID uint) (string, error) {
	f, err := s.repo.FindByID(ctx, id, usuarioID)
	if err != nil {
		return "", ErrFacturaNoEncontrada
	}
	if f.ArchivoKey == nil {
		return "", ErrSinArchivo
	}
	return s.store.PresignGet(ctx, *f.ArchivoKey)
}

func toFacturaResponse(f *model.Factura) *dto.FacturaResponse {
	return &dto.FacturaResponse{
		ID:           f.ID,
		ClienteID:    f.ClienteID,
		FechaEmision: f.FechaEmision,
		Importe:      f.Importe,
		Estado:       f.Estado,
		Numero:       f.Numero,
		Descripcion:  f.Descripcion,
		TieneArchivo: f.ArchivoKey != nil,
	}
}
