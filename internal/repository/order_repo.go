package repository

import (
	"context"

	"ledgerfix/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// FindByIDs batch-loads orders projected to the rate-bearing fields,
	// keyed by id. Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Order, error) {
	result := make(map[uuid.UUID]model.Order, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var orders []model.Order
	err := GetDB(ctx, r.db).
		Select("id", "tenant_id", "total_amount", "total_amount_ves", "payment_records").
		Where("id IN ?", ids).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		result[o.ID] = o
	}
	return result, nil
}
