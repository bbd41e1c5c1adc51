package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий активностей.
// Ядро читает активности как есть: CRUD живёт во внешней админке.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория активностей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var activityColumns = []string{
	"id",
	"tenant_id",
	"name",
	"price_tl",
	"price_usd",
	"discount_price_tl",
	"extras",
	"requires_deposit",
	"full_payment_required",
	"deposit_type",
	"deposit_percent",
	"deposit_amount_tl",
	"availability_closed",
	"is_active",
	"created_at",
	"updated_at",
}

// GetByID получает активность тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, activityID int64) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(activityColumns...).
		From("activities").
		Where(squirrel.Eq{"id": activityID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan activity: %v", ErrScanRow, err)
	}

	return activity, nil
}

func scanActivity(row *sql.Row) (*domain.Activity, error) {
	var activity domain.Activity
	var extrasRaw []byte
	var depositType sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&activity.ID,
		&activity.TenantID,
		&activity.Name,
		&activity.PriceTl,
		&activity.PriceUsd,
		&activity.DiscountPriceTl,
		&extrasRaw,
		&activity.RequiresDeposit,
		&activity.FullPaymentRequired,
		&depositType,
		&activity.DepositPercent,
		&activity.DepositAmountTl,
		&activity.AvailabilityClosed,
		&activity.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if depositType.Valid {
		activity.DepositType = domain.DepositType(depositType.String)
	}
	if len(extrasRaw) > 0 {
		if err := json.Unmarshal(extrasRaw, &activity.Extras); err != nil {
			return nil, fmt.Errorf("unmarshal extras: %v", err)
		}
	}

	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	return &activity, nil
}
