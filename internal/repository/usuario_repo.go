package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/29jbarrera/FaktuFlow-back/internal/model"

	"gorm.io/gorm"
)

// ErrDuplicado surfaces a unique-constraint violation on email_hash. The
// application pre-checks duplicates, but the index is the real backstop for
// concurrent registrations with the same email.
var ErrDuplicado = errors.New("repository: email_hash duplicado")

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmailHash(ctx context.Context, emailHash string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	// Save persists the full row, including pointer fields set to nil
	// (clearing verification codes and reset tokens).
	Save(ctx context.Context, u *model.Usuario) error
	List(ctx context.Context, limit, offset int) ([]model.Usuario, error)
	Count(ctx context.Context) (int64, error)
	// DeleteCascade removes the account and every financial record it owns,
	// children before parent, inside one transaction.
	DeleteCascade(ctx context.Context, usuarioID uint) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicado
	}
	return err
}

func (r *usuarioRepo) FindByEmailHash(ctx context.Context, emailHash string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("email_hash = ?", emailHash).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Save(ctx context.Context, u *model.Usuario) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicado
	}
	return err
}

func (r *usuarioRepo) List(ctx context.Context, limit, offset int) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).
		Order("nombre ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Count(&n).Error
	return n, err
}

func (r *usuarioRepo) DeleteCascade(ctx context.Context, usuarioID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Factura{}, &model.Gasto{}, &model.Ingreso{}, &model.Cliente{},
		} {
			if err := tx.Where("usuario_id = ?", usuarioID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Usuario{}, usuarioID).Error
	})
}

// isUniqueViolation matches both GORM's translated error and the raw
// PostgreSQL SQLSTATE 23505 message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
