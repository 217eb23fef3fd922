// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// FindLines loads all lines of a cart, dropping rows with a non-positive
// quantity so a corrupt write can never rehydrate an invalid cart.
func (repo *cartRepository) FindLines(ctx context.Context, cartID string) ([]entity.CartLine, error) {
	var rows []*model.CartLineModel

	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cart lines")
	}

	lines := make([]entity.CartLine, 0, len(rows))
	for _, row := range rows {
		if row.Quantity <= 0 {
			continue
		}
		lines = append(lines, toCartLineDomain(row))
	}

	return lines, nil
}

// ReplaceLines atomically swaps the cart's full line set. Lines with a
// non-positive quantity are filtered before the write. Callers that need
// read-modify-write atomicity run this through the transaction manager.
func (repo *cartRepository) ReplaceLines(ctx context.Context, cartID string, lines []entity.CartLine) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("cart_id = ?", cartID).Delete(&model.CartLineModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart lines")
	}

	rows := make([]*model.CartLineModel, 0, len(lines))
	for i := range lines {
		if lines[i].Quantity <= 0 {
			continue
		}
		rows = append(rows, fromCartLineDomain(cartID, &lines[i]))
	}

	if len(rows) == 0 {
		return nil
	}

	if err := db.Create(&rows).Error; err != nil {
		return errors.Wrap(err, "failed to write cart lines")
	}

	return nil
}

func toCartLineDomain(row *model.CartLineModel) entity.CartLine {
	return entity.CartLine{
		ProductID:       row.ProductID,
		VariantSelector: row.VariantSelector,
		Quantity:        row.Quantity,
		UpdatedAt:       row.UpdatedAt,
	}
}

func fromCartLineDomain(cartID string, line *entity.CartLine) *model.CartLineModel {
	return &model.CartLineModel{
		CartID:          cartID,
		ProductID:       line.ProductID,
		VariantSelector: line.VariantSelector,
		Quantity:        line.Quantity,
	}
}
