package repository

import (
	"context"

	"github.com/29jbarrera/FaktuFlow-back/internal/model"

	"gorm.io/gorm"
)

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	ListByUsuario(ctx context.Context, usuarioID uint, limit, offset int) ([]model.Gasto, int64, error)
	FindByID(ctx context.Context, id, usuarioID uint) (*model.Gasto, error)
	Save(ctx context.Context, g *model.Gasto) error
	Delete(ctx context.Context, id, usuarioID uint) error
	CountByUsuario(ctx context.Context, usuarioID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) ListByUsuario(ctx context.Context, usuarioID uint, limit, offset int) ([]model.Gasto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Gasto{}).Where("usuario_id = ?", usuarioID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var gastos []model.Gasto
	err := q.Order("fecha DESC").Limit(limit).Offset(offset).Find(&gastos).Error
	return gastos, total, err
}

func (r *gastoRepo) FindByID(ctx context.Context, id, usuarioID uint) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gastoRepo) Save(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gastoRepo) Delete(ctx context.Context, id, usuarioID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Delete(&model.Gasto{}).Error
}

func (r *gastoRepo) CountByUsuario(ctx context.Context, usuarioID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Where("usuario_id = ?", usuarioID).Count(&n).Error
	return n, err
}

func (r *gastoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Gasto{}).Count(&n).Error
	return n, err
}
