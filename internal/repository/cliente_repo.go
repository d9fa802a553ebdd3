package repository

import (
	"context"

	"github.com/29jbarrera/FaktuFlow-back/internal/model"

	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	ListByUsuario(ctx context.Context, usuarioID uint) ([]model.Cliente, error)
	// FindByID scopes the lookup to the owner — a cliente of another account
	// behaves exactly like a missing one.
	FindByID(ctx context.Context, id, usuarioID uint) (*model.Cliente, error)
	EmailEnUso(ctx context.Context, usuarioID uint, email string) (bool, error)
	Save(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, id, usuarioID uint) error
	CountByUsuario(ctx context.Context, usuarioID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) ListByUsuario(ctx context.Context, usuarioID uint) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("nombre ASC").
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) FindByID(ctx context.Context, id, usuarioID uint) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) EmailEnUso(ctx context.Context, usuarioID uint, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("usuario_id = ? AND email = ?", usuarioID, email).
		Count(&n).Error
	return n > 0, err
}

func (r *clienteRepo) Save(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id, usuarioID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Delete(&model.Cliente{}).Error
}

func (r *clienteRepo) CountByUsuario(ctx context.Context, usuarioID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).
		Where("usuario_id = ?", usuarioID).Count(&n).Error
	return n, err
}

func (r *clienteRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Count(&n).Error
	return n, err
}
