package repository

import (
	"context"

	"flower-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *model.Receipt) error
	List(ctx context.Context, limit int) ([]*model.Receipt, error)
}

type receiptRepoImpl struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepoImpl{
		db: db,
	}
}

func (r *receiptRepoImpl) Create(ctx context.Context, receipt *model.Receipt) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(receipt).Error
}

// List returns the newest receipts first.
func (r *receiptRepoImpl) List(ctx context.Context, limit int) ([]*model.Receipt, error) {
	var receipts []*model.Receipt
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}

	return receipts, nil
}
