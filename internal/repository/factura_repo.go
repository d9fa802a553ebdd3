package repository

import (
	"context"

	"github.com/29jbarrera/FaktuFlow-back/internal/model"

	"gorm.io/gorm"
)

// FacturaFilter narrows and orders the invoice listing. Sort columns are
// whitelisted here; anything else falls back to fecha_emision.
type FacturaFilter struct {
	Limit  int
	Offset int
	Sort   string // "fecha_emision" | "importe"
	Order  string // "asc" | "desc"
	Search string // substring match on numero / descripcion
}

type FacturaRepository interface {
	Create(ctx context.Context, f *model.Factura) error
	ListByUsuario(ctx context.Context, usuarioID uint, filter FacturaFilter) ([]model.Factura, int64, error)
	FindByID(ctx context.Context, id, usuarioID uint) (*model.Factura, error)
	Save(ctx context.Context, f *model.Factura) error
	Delete(ctx context.Context, id, usuarioID uint) error
	CountByUsuario(ctx context.Context, usuarioID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) Create(ctx context.Context, f *model.Factura) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *facturaRepo) ListByUsuario(ctx context.Context, usuarioID uint, filter FacturaFilter) ([]model.Factura, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Factura{}).Where("usuario_id = ?", usuarioID)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("numero ILIKE ? OR descripcion ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := "fecha_emision"
	if filter.Sort == "importe" {
		sort = "importe"
	}
	order := "DESC"
	if filter.Order == "asc" {
		order = "ASC"
	}

	var facturas []model.Factura
	err := q.Order(sort + " " + order).
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) FindByID(ctx context.Context, id, usuarioID uint) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *facturaRepo) Save(ctx context.Context, f *model.Factura) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *facturaRepo) Delete(ctx context.Context, id, usuarioID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Delete(&model.Factura{}).Error
}

func (r *facturaRepo) CountByUsuario(ctx context.Context, usuarioID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Factura{}).
		Where("usuario_id = ?", usuarioID).Count(&n).Error
	return n, err
}

func (r *facturaRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Factura{}).Count(&n).Error
	return n, err
}
