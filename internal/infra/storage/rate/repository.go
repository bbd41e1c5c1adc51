package rate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий контрактных тарифов агентств
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var rateColumns = []string{
	"id",
	"tenant_id",
	"agency_id",
	"activity_id",
	"payout_per_guest_tl",
	"valid_from",
	"valid_to",
	"is_active",
	"created_at",
	"updated_at",
}

// Create создает новый тариф
func (r *Repository) Create(ctx context.Context, rate *domain.AgencyActivityRate) (*domain.AgencyActivityRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("agency_activity_rates").
		Columns("tenant_id", "agency_id", "activity_id", "payout_per_guest_tl", "valid_from", "valid_to", "is_active").
		Values(rate.TenantID, rate.AgencyID, rate.ActivityID, rate.PayoutPerGuestTl, rate.ValidFrom, rate.ValidTo, rate.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rate.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rate.CreatedAt = createdAt.Time
	rate.UpdatedAt = updatedAt.Time

	return rate, nil
}

// ListActiveByAgency получает все активные тарифы агентства.
// Фильтрация по дате и приоритетам - забота резолвера, не SQL:
// набор тарифов одного агентства мал, а правила выбора детерминированы
// и покрыты юнит-тестами.
func (r *Repository) ListActiveByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.AgencyActivityRate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(rateColumns...).
		From("agency_activity_rates").
		Where(squirrel.Eq{"tenant_id": tenantID, "agency_id": agencyID, "is_active": true}).
		OrderBy("valid_from DESC, id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAgency - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAgency - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rates := make([]*domain.AgencyActivityRate, 0)
	for rows.Next() {
		var rate domain.AgencyActivityRate
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rate.ID,
			&rate.TenantID,
			&rate.AgencyID,
			&rate.ActivityID,
			&rate.PayoutPerGuestTl,
			&rate.ValidFrom,
			&rate.ValidTo,
			&rate.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByAgency - scan rate: %v", ErrScanRow, err)
		}

		rate.CreatedAt = createdAt.Time
		rate.UpdatedAt = updatedAt.Time

		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByAgency - rows error: %v", ErrScanRow, err)
	}

	return rates, nil
}

// Update применяет явную команду обновления тарифа.
// Меняются ровно перечисленные в команде поля - частичных
// map-подобных патчей здесь нет намеренно.
func (r *Repository) Update(ctx context.Context, tenantID, rateID int64, cmd domain.UpdateRateCommand) error {
	if cmd.IsEmpty() {
		return ErrEmptyUpdate
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("agency_activity_rates").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rateID, "tenant_id": tenantID})

	if cmd.PayoutPerGuestTl != nil {
		updateBuilder = updateBuilder.Set("payout_per_guest_tl", *cmd.PayoutPerGuestTl)
	}
	if cmd.ClearValidTo {
		updateBuilder = updateBuilder.Set("valid_to", nil)
	} else if cmd.ValidTo != nil {
		updateBuilder = updateBuilder.Set("valid_to", *cmd.ValidTo)
	}
	if cmd.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *cmd.IsActive)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRateNotFound
	}

	return nil
}

// Deactivate выключает тариф (мягкое удаление)
func (r *Repository) Deactivate(ctx context.Context, tenantID, rateID int64) error {
	isActive := false
	return r.Update(ctx, tenantID, rateID, domain.UpdateRateCommand{IsActive: &isActive})
}
