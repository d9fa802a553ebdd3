package service

import (
	"context"
	"testing"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/model"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Count-only stubs for the financial repositories ───────────────────────────

type stubFacturaRepo struct {
	repository.FacturaRepository
	total   int64
	porUser map[uint]int64
}

func (r *stubFacturaRepo) Count(context.Context) (int64, error) { return r.total, nil }
func (r *stubFacturaRepo) CountByUsuario(_ context.Context, id uint) (int64, error) {
	return r.porUser[id], nil
}

type stubGastoRepo struct {
	repository.GastoRepository
	total   int64
	porUser map[uint]int64
}

func (r *stubGastoRepo) Count(context.Context) (int64, error) { return r.total, nil }
func (r *stubGastoRepo) CountByUsuario(_ context.Context, id uint) (int64, error) {
	return r.porUser[id], nil
}

type stubIngresoRepo struct {
	repository.IngresoRepository
	porUser map[uint]int64
}

func (r *stubIngresoRepo) CountByUsuario(_ context.Context, id uint) (int64, error) {
	return r.porUser[id], nil
}

type stubClienteRepo struct {
	repository.ClienteRepository
	total   int64
	porUser map[uint]int64
}

func (r *stubClienteRepo) Count(context.Context) (int64, error) { return r.total, nil }
func (r *stubClienteRepo) CountByUsuario(_ context.Context, id uint) (int64, error) {
	return r.porUser[id], nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, email string) *model.Usuario {
	t.Helper()
	cipher := newTestCipher(t)
	enc, err := cipher.Encrypt(email)
	require.NoError(t, err)
	u := &model.Usuario{
		Nombre: "Test", Apellidos: "User",
		Email: enc, EmailHash: email + "-hash",
		Rol: model.RolAutonomo, Verificado: true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func newAdminFixture(t *testing.T) (AdminService, *stubUsuarioRepo, *stubFacturaRepo, *miniredis.Miniredis) {
	t.Helper()
	usuarios := newStubRepo()
	facturas := &stubFacturaRepo{total: 7, porUser: map[uint]int64{}}
	gastos := &stubGastoRepo{total: 3, porUser: map[uint]int64{}}
	ingresos := &stubIngresoRepo{porUser: map[uint]int64{}}
	clientes := &stubClienteRepo{total: 5, porUser: map[uint]int64{}}
	rdb, mr := newTestRedis(t)

	svc := NewAdminService(usuarios, facturas, gastos, ingresos, clientes, newTestCipher(t), rdb)
	return svc, usuarios, facturas, mr
}

// ── Dashboard stats ───────────────────────────────────────────────────────────

func TestDashboardStats_CountsAndCaches(t *testing.T) {
	svc, usuarios, facturas, mr := newAdminFixture(t)
	seedUsuario(t, usuarios, "ana@faktuflow.es")
	ctx := context.Background()

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsuarios)
	assert.Equal(t, int64(7), stats.TotalFacturas)
	assert.Equal(t, int64(3), stats.TotalGastos)
	assert.Equal(t, int64(5), stats.TotalClientes)

	// Second read hits the cache: changing the backing counts has no effect
	facturas.total = 99
	stats, err = svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalFacturas)

	// After the TTL the counts are re-read
	mr.FastForward(61 * time.Second)
	stats, err = svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(99), stats.TotalFacturas)
}

func TestDashboardStats_SurvivesRedisOutage(t *testing.T) {
	svc, usuarios, _, mr := newAdminFixture(t)
	seedUsuario(t, usuarios, "ana@faktuflow.es")
	mr.Close()

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsuarios)
}

// ── User listing ──────────────────────────────────────────────────────────────

func TestUsuariosConStats_DecryptsEmails(t *testing.T) {
	svc, usuarios, facturas, _ := newAdminFixture(t)
	u := seedUsuario(t, usuarios, "ana@faktuflow.es")
	facturas.porUser[u.ID] = 4

	page, err := svc.UsuariosConStats(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "ana@faktuflow.es", page.Users[0].Email)
	assert.Equal(t, int64(4), page.Users[0].TotalFacturas)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestUsuariosConStats_MarksUndecryptableEmail(t *testing.T) {
	svc, usuarios, _, _ := newAdminFixture(t)
	u := seedUsuario(t, usuarios, "ana@faktuflow.es")
	usuarios.users[u.ID].Email = "basura-no-descifrable"

	page, err := svc.UsuariosConStats(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "[email ilegible]", page.Users[0].Email)
}

func TestUsuariosConStats_Pagination(t *testing.T) {
	svc, usuarios, _, _ := newAdminFixture(t)
	for _, email := range []string{"a@x.es", "b@x.es", "c@x.es"} {
		seedUsuario(t, usuarios, email)
	}

	page, err := svc.UsuariosConStats(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Users, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
