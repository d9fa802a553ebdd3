package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memFacturaRepo is a full in-memory FacturaRepository (the count-only stubs
// in admin_service_test.go are not enough here).
type memFacturaRepo struct {
	mu       sync.Mutex
	nextID   uint
	facturas map[uint]*model.Factura
}

func newMemFacturaRepo() *memFacturaRepo {
	return &memFacturaRepo{facturas: make(map[uint]*model.Factura)}
}

func (r *memFacturaRepo) Create(_ context.Context, f *model.Factura) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	f.ID = r.nextID
	cp := *f
	r.facturas[f.ID] = &cp
	return nil
}

func (r *memFacturaRepo) ListByUsuario(_ context.Context, usuarioID uint, filter repository.FacturaFilter) ([]model.Factura, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Factura
	for id := uint(1); id <= r.nextID; id++ {
		if f, ok := r.facturas[id]; ok && f.UsuarioID == usuarioID {
			all = append(all, *f)
		}
	}
	total := int64(len(all))
	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (r *memFacturaRepo) FindByID(_ context.Context, id, usuarioID uint) (*model.Factura, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.facturas[id]
	if !ok || f.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memFacturaRepo) Save(_ context.Context, f *model.Factura) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.facturas[f.ID] = &cp
	return nil
}

func (r *memFacturaRepo) Delete(_ context.Context, id, usuarioID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.facturas, id)
	return nil
}

func (r *memFacturaRepo) CountByUsuario(_ context.Context, usuarioID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, f := range r.facturas {
		if f.UsuarioID == usuarioID {
			n++
		}
	}
	return n, nil
}

func (r *memFacturaRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.facturas)), nil
}

func seedFacturas(t *testing.T, svc FacturaService, usuarioID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Crear(context.Background(), usuarioID, dto.CrearFacturaRequest{
			FechaEmision: time.Now(),
			Importe:      decimal.NewFromInt(int64(100 + i)),
			Estado:       "pendiente",
		})
		require.NoError(t, err)
	}
}

func TestFacturaListar_Pagination(t *testing.T) {
	repo := newMemFacturaRepo()
	svc := NewFacturaService(repo, nil)
	seedFacturas(t, svc, 1, 25)
	seedFacturas(t, svc, 2, 3) // another owner, must not leak

	page, err := svc.Listar(context.Background(), 1, dto.ListFacturasQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Facturas, 5)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	// Out-of-range page returns an empty slice, not an error
	page, err = svc.Listar(context.Background(), 1, dto.ListFacturasQuery{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Facturas)

	// Nonsense paging falls back to defaults
	page, err = svc.Listar(context.Background(), 1, dto.ListFacturasQuery{Page: -2, Limit: 5000})
	require.NoError(t, err)
	assert.Len(t, page.Facturas, 10)
}

func TestFacturaObtener_OwnershipScoped(t *testing.T) {
	repo := newMemFacturaRepo()
	svc := NewFacturaService(repo, nil)
	seedFacturas(t, svc, 1, 1)
	ctx := context.Background()

	_, err := svc.Obtener(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrFacturaNoEncontrada)

	_, err = svc.Obtener(ctx, 99, 1)
	assert.ErrorIs(t, err, ErrFacturaNoEncontrada)

	resp, err := svc.Obtener(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "pendiente", resp.Estado)
	assert.False(t, resp.TieneArchivo)
}

func TestFacturaActualizar_OwnershipScoped(t *testing.T) {
	repo := newMemFacturaRepo()
	svc := NewFacturaService(repo, nil)
	seedFacturas(t, svc, 1, 1)

	_, err := svc.Actualizar(context.Background(), 1, 2, dto.ActualizarFacturaRequest{
		FechaEmision: time.Now(),
		Importe:      decimal.NewFromInt(50),
		Estado:       "pagada",
	})
	assert.ErrorIs(t, err, ErrFacturaNoEncontrada)

	resp, err := svc.Actualizar(context.Background(), 1, 1, dto.ActualizarFacturaRequest{
		FechaEmision: time.Now(),
		Importe:      decimal.NewFromInt(50),
		Estado:       "pagada",
	})
	require.NoError(t, err)
	assert.Equal(t, "pagada", resp.Estado)
}

func TestSubirArchivo_RejectsBadUploads(t *testing.T) {
	repo := newMemFacturaRepo()
	svc := NewFacturaService(repo, nil)
	seedFacturas(t, svc, 1, 1)
	ctx := context.Background()

	err := svc.SubirArchivo(ctx, 99, 1, "factura.pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrFacturaNoEncontrada)

	err = svc.SubirArchivo(ctx, 1, 1, "factura.exe", []byte("x"))
	assert.ErrorIs(t, err, ErrArchivoTipo)

	err = svc.SubirArchivo(ctx, 1, 1, "sin-extension", []byte("x"))
	assert.ErrorIs(t, err, ErrArchivoTipo)

	big := make([]byte, MaxArchivoBytes+1)
	err = svc.SubirArchivo(ctx, 1, 1, "factura.pdf", big)
	assert.ErrorIs(t, err, ErrArchivoTamano)
}

func TestURLArchivo_SinAdjunto(t *testing.T) {
	repo := newMemFacturaRepo()
	svc := NewFacturaService(repo, nil)
	seedFacturas(t, svc, 1, 1)

	_, err := svc.URLArchivo(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSinArchivo)
}
