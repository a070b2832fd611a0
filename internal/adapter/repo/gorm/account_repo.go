package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"agentgate/internal/adapter/repo/gorm/model"
	"agentgate/internal/app/ports"
	"agentgate/internal/domain/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepo {
	return AccountRepo{db: db}
}

// GetOrCreate inserts the account with the signup bonus; a unique
// violation means a concurrent request won the insert, in which case the
// existing row is returned. The bonus is granted at most once.
func (r AccountRepo) GetOrCreate(ctx context.Context, externalID, displayName string, signupBonus int64) (billing.Account, error) {
	now := time.Now().UTC()
	row := model.Account{
		ExternalID:  externalID,
		DisplayName: displayName,
		Balance:     signupBonus,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if !isUniqueViolation(err) {
			return billing.Account{}, err
		}
		return r.GetByExternalID(ctx, externalID)
	}
	return toAccount(row), nil
}

func (r AccountRepo) GetByExternalID(ctx context.Context, externalID string) (billing.Account, error) {
	var row model.Account
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.Account{}, ports.ErrNotFound
		}
		return billing.Account{}, err
	}
	return toAccount(row), nil
}

// DebitIfSufficient is a single conditional UPDATE guarded by the
// current balance. RowsAffected == 0 distinguishes a failed guard from
// success; two concurrent debits can never overdraw. RETURNING yields
// the balance produced by this exact statement, not whatever later
// concurrent mutations left behind.
func (r AccountRepo) DebitIfSufficient(ctx context.Context, externalID string, amount int64) (int64, error) {
	var row model.Account
	res := r.db.WithContext(ctx).Model(&row).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "balance"}}}).
		Where("external_id = ? AND balance >= ?", externalID, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		account, err := r.GetByExternalID(ctx, externalID)
		if err != nil {
			return 0, err
		}
		return 0, &billing.InsufficientFundsError{Required: amount, Balance: account.Balance}
	}
	return row.Balance, nil
}

func (r AccountRepo) Credit(ctx context.Context, externalID string, amount int64) (int64, error) {
	var row model.Account
	res := r.db.WithContext(ctx).Model(&row).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "balance"}}}).
		Where("external_id = ?", externalID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ports.ErrNotFound
	}
	return row.Balance, nil
}

func toAccount(row model.Account) billing.Account {
	return billing.Account{
		ExternalID:  row.ExternalID,
		DisplayName: row.DisplayName,
		Balance:     row.Balance,
		CreatedAt:   row.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
