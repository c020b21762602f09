package repository

import (
	"context"
	"errors"

	"ledgerfix/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChartOfAccountRepository interface {
	// ListByTenant returns the tenant's accounts projected to id/code/name,
	// ordered by code.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.ChartOfAccount, error)
	// Seed creates the default chart for a tenant, skipping codes that
	// already exist. The whole seed runs in one transaction.
	Seed(ctx context.Context, tenantID uuid.UUID) error
}

type chartOfAccountRepository struct {
	db        *gorm.DB
	txManager TransactionManager
}

func NewChartOfAccountRepository(db *gorm.DB, txManager TransactionManager) ChartOfAccountRepository {
	return &chartOfAccountRepository{db: db, txManager: txManager}
}

func (r *chartOfAccountRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.ChartOfAccount, error) {
	var accounts []model.ChartOfAccount
	err := GetDB(ctx, r.db).
		Select("id", "tenant_id", "code", "name").
		Where("tenant_id = ?", tenantID).
		Order("code asc").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *chartOfAccountRepository) Seed(ctx context.Context, tenantID uuid.UUID) error {
	return r.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, account := range model.DefaultChartOfAccounts(tenantID) {
			var existing model.ChartOfAccount
			err := GetDB(txCtx, r.db).
				Where("tenant_id = ? AND code = ?", tenantID, account.Code).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := GetDB(txCtx, r.db).Create(&account).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
