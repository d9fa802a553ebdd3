package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/crypto"
	"github.com/29jbarrera/FaktuFlow-back/internal/dto"
	"github.com/29jbarrera/FaktuFlow-back/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	statsCacheKey = "admin:dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

type AdminService interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	UsuariosConStats(ctx context.Context, page, limit int) (*dto.UsuariosConStatsPage, error)
}

type adminService struct {
	usuarios repository.UsuarioRepository
	facturas repository.FacturaRepository
	gastos   repository.GastoRepository
	ingresos repository.IngresoRepository
	clientes repository.ClienteRepository
	cipher   *crypto.Cipher
	rdb      *redis.Client
}

func NewAdminService(
	usuarios repository.UsuarioRepository,
	facturas repository.FacturaRepository,
	gastos repository.GastoRepository,
	ingresos repository.IngresoRepository,
	clientes repository.ClienteRepository,
	cipher *crypto.Cipher,
	rdb *redis.Client,
) AdminService {
	return &adminService{
		usuarios: usuarios,
		facturas: facturas,
		gastos:   gastos,
		ingresos: ingresos,
		clientes: clientes,
		cipher:   cipher,
		rdb:      rdb,
	}
}

// DashboardStats returns global row counts, cached in redis for 60 seconds.
// A broken cache degrades to counting; it never takes the endpoint down.
func (s *adminService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats dto.DashboardStats
			if jsonErr := json.Unmarshal([]byte(cached), &stats); jsonErr == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Msg("redis no disponible para la caché de estadísticas")
		}
	}

	stats := &dto.DashboardStats{}
	var err error
	if stats.TotalUsuarios, err = s.usuarios.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalFacturas, err = s.facturas.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalGastos, err = s.gastos.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalClientes, err = s.clientes.Count(ctx); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear las estadísticas")
			}
		}
	}
	return stats, nil
}

// UsuariosConStats lists accounts with their record counts. A row whose email
// cannot be decrypted (key rotation, corrupted data) is still listed, with a
// marker instead of the address.
func (s *adminService) UsuariosConStats(ctx context.Context, page, limit int) (*dto.UsuariosConStatsPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	total, err := s.usuarios.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.usuarios.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.UsuariosConStatsPage{
		Users:      make([]dto.UsuarioConStats, 0, len(users)),
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	for i := range users {
		u := &users[i]

		email, err := s.cipher.Decrypt(u.Email)
		if err != nil {
			log.Warn().Uint("usuario_id", u.ID).Msg("email ilegible en listado de administración")
			email = "[email ilegible]"
		}

		row := dto.UsuarioConStats{
			ID:        u.ID,
			Nombre:    u.Nombre,
			Apellidos: u.Apellidos,
			Email:     email,
			Rol:       string(u.Rol),
		}
		if row.TotalFacturas, err = s.facturas.CountByUsuario(ctx, u.ID); err != nil {
			return nil, err
		}
		if row.TotalGastos, err = s.gastos.CountByUsuario(ctx, u.ID); err != nil {
			return nil, err
		}
		if row.TotalIngresos, err = s.ingresos.CountByUsuario(ctx, u.ID); err != nil {
			return nil, err
		}
		if row.TotalClientes, err = s.clientes.CountByUsuario(ctx, u.ID); err != nil {
			return nil, err
		}
		resp.Users = append(resp.Users, row)
	}
	return resp, nil
}
