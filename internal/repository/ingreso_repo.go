package repository

import (
	"context"

	"github.com/29jbarrera/FaktuFlow-back/internal/model"

	"gorm.io/gorm"
)

type IngresoRepository interface {
	Create(ctx context.Context, i *model.Ingreso) error
	ListByUsuario(ctx context.Context, usuarioID uint, limit, offset int) ([]model.Ingreso, int64, error)
	FindByID(ctx context.Context, id, usuarioID uint) (*model.Ingreso, error)
	Save(ctx context.Context, i *model.Ingreso) error
	Delete(ctx context.Context, id, usuarioID uint) error
	CountByUsuario(ctx context.Context, usuarioID uint) (int64, error)
}

type ingresoRepo struct{ db *gorm.DB }

func NewIngresoRepository(db *gorm.DB) IngresoRepository { return &ingresoRepo{db: db} }

func (r *ingresoRepo) Create(ctx context.Context, i *model.Ingreso) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingresoRepo) ListByUsuario(ctx context.Context, usuarioID uint, limit, offset int) ([]model.Ingreso, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Ingreso{}).Where("usuario_id = ?", usuarioID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ingresos []model.Ingreso
	err := q.Order("fecha_ingreso DESC").Limit(limit).Offset(offset).Find(&ingresos).Error
	return ingresos, total, err
}

func (r *ingresoRepo) FindByID(ctx context.Context, id, usuarioID uint) (*model.Ingreso, error) {
	var i model.Ingreso
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingresoRepo) Save(ctx context.Context, i *model.Ingreso) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingresoRepo) Delete(ctx context.Context, id, usuarioID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Delete(&model.Ingreso{}).Error
}

func (r *ingresoRepo) CountByUsuario(ctx context.Context, usuarioID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ingreso{}).
		Where("usuario_id = ?", usuarioID).Count(&n).Error
	return n, err
}
