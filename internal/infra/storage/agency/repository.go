package agency

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий агентств (read-only для ядра:
// CRUD агентств живёт во внешней админке)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория агентств
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var agencyColumns = []string{
	"id",
	"tenant_id",
	"name",
	"default_payout_per_guest_tl",
	"is_active",
	"created_at",
	"updated_at",
}

// GetByID получает агентство тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, agencyID int64) (*domain.Agency, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(agencyColumns...).
		From("agencies").
		Where(squirrel.Eq{"id": agencyID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var agency domain.Agency
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&agency.ID,
		&agency.TenantID,
		&agency.Name,
		&agency.DefaultPayoutPerGuestTl,
		&agency.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAgencyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan agency: %v", ErrScanRow, err)
	}

	agency.CreatedAt = createdAt.Time
	agency.UpdatedAt = updatedAt.Time

	return &agency, nil
}

// ListForTenant получает все активные агентства тенанта
func (r *Repository) ListForTenant(ctx context.Context, tenantID int64) ([]*domain.Agency, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(agencyColumns...).
		From("agencies").
		Where(squirrel.Eq{"tenant_id": tenantID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	agencies := make([]*domain.Agency, 0)
	for rows.Next() {
		var agency domain.Agency
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&agency.ID,
			&agency.TenantID,
			&agency.Name,
			&agency.DefaultPayoutPerGuestTl,
			&agency.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForTenant - scan agency: %v", ErrScanRow, err)
		}

		agency.CreatedAt = createdAt.Time
		agency.UpdatedAt = updatedAt.Time

		agencies = append(agencies, &agency)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForTenant - rows error: %v", ErrScanRow, err)
	}

	return agencies, nil
}
