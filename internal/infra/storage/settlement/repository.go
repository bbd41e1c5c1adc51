package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий взаиморасчётов с агентствами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория взаиморасчётов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var settlementColumns = []string{
	"id",
	"tenant_id",
	"agency_id",
	"payout_tl",
	"paid_amount_tl",
	"remaining_tl",
	"status",
	"created_at",
	"updated_at",
}

// Create создает взаиморасчёт вместе со строками-начислениями.
// Вызывается внутри транзакции вместе с пометкой броней:
// свод без своих строк не коммитится.
func (r *Repository) Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settlements").
		Columns("tenant_id", "agency_id", "payout_tl", "paid_amount_tl", "remaining_tl", "status").
		Values(s.TenantID, s.AgencyID, s.PayoutTl, s.PaidAmountTl, s.RemainingTl, s.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	if len(s.Entries) > 0 {
		insertBuilder := psqlbuilder.Insert("settlement_entries").
			Columns("settlement_id", "reservation_id", "guest_count", "payout_per_guest_tl", "amount_tl")
		for i := range s.Entries {
			s.Entries[i].SettlementID = s.ID
			insertBuilder = insertBuilder.Values(
				s.ID,
				s.Entries[i].ReservationID,
				s.Entries[i].GuestCount,
				s.Entries[i].PayoutPerGuestTl,
				s.Entries[i].AmountTl,
			)
		}

		query, args, err := insertBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build entries insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - execute entries insert: %v", ErrExecQuery, err)
		}
	}

	return s, nil
}

// GetByID получает взаиморасчёт тенанта со строками и платежами
func (r *Repository) GetByID(ctx context.Context, tenantID, settlementID int64) (*domain.Settlement, error) {
	s, err := r.get(ctx, tenantID, settlementID, false)
	if err != nil {
		return nil, err
	}

	if err := r.loadDetails(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// GetByIDForUpdate получает взаиморасчёт с блокировкой строки.
// FOR UPDATE имеет смысл только внутри транзакции.
func (r *Repository) GetByIDForUpdate(ctx context.Context, tenantID, settlementID int64) (*domain.Settlement, error) {
	return r.get(ctx, tenantID, settlementID, dbmetrics.IsInTransaction(ctx))
}

// AddPayment добавляет платеж к взаиморасчёту
func (r *Repository) AddPayment(ctx context.Context, p *domain.SettlementPayment) (*domain.SettlementPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settlement_payments").
		Columns("settlement_id", "amount_tl", "method", "notes", "paid_at").
		Values(p.SettlementID, p.AmountTl, p.Method, p.Notes, p.PaidAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddPayment - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: AddPayment - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time

	return p, nil
}

// UpdateTotals фиксирует новые суммы и статус взаиморасчёта
func (r *Repository) UpdateTotals(ctx context.Context, tenantID, settlementID int64, paidAmountTl, remainingTl int64, status domain.SettlementStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("settlements").
		Set("paid_amount_tl", paidAmountTl).
		Set("remaining_tl", remainingTl).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": settlementID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateTotals - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSettlementNotFound
	}

	return nil
}

// ListByAgency получает взаиморасчёты тенанта по конкретному агентству
func (r *Repository) ListByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.Settlement, error) {
	return r.list(ctx, squirrel.Eq{"tenant_id": tenantID, "agency_id": agencyID})
}

// ListForTenant получает все взаиморасчёты тенанта
func (r *Repository) ListForTenant(ctx context.Context, tenantID int64) ([]*domain.Settlement, error) {
	return r.list(ctx, squirrel.Eq{"tenant_id": tenantID})
}

func (r *Repository) get(ctx context.Context, tenantID, settlementID int64, forUpdate bool) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(settlementColumns...).
		From("settlements").
		Where(squirrel.Eq{"id": settlementID, "tenant_id": tenantID})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settlement
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.TenantID,
		&s.AgencyID,
		&s.PayoutTl,
		&s.PaidAmountTl,
		&s.RemainingTl,
		&s.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettlementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get - scan settlement: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq) ([]*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settlementColumns...).
		From("settlements").
		Where(where).
		OrderBy("created_at DESC, id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	settlements := make([]*domain.Settlement, 0)
	for rows.Next() {
		var s domain.Settlement
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.TenantID,
			&s.AgencyID,
			&s.PayoutTl,
			&s.PaidAmountTl,
			&s.RemainingTl,
			&s.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan settlement: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		settlements = append(settlements, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return settlements, nil
}

func (r *Repository) loadDetails(ctx context.Context, s *domain.Settlement) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	entriesQuery, entriesArgs, err := psqlbuilder.Select("id", "settlement_id", "reservation_id", "guest_count", "payout_per_guest_tl", "amount_tl").
		From("settlement_entries").
		Where(squirrel.Eq{"settlement_id": s.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadDetails - build entries query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, entriesQuery, entriesArgs...)
	if err != nil {
		return fmt.Errorf("%w: loadDetails - execute entries query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.SettlementEntry, 0)
	for rows.Next() {
		var e domain.SettlementEntry
		if err := rows.Scan(&e.ID, &e.SettlementID, &e.ReservationID, &e.GuestCount, &e.PayoutPerGuestTl, &e.AmountTl); err != nil {
			return fmt.Errorf("%w: loadDetails - scan entry: %v", ErrScanRow, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadDetails - entries rows error: %v", ErrScanRow, err)
	}
	s.Entries = entries

	paymentsQuery, paymentsArgs, err := psqlbuilder.Select("id", "settlement_id", "amount_tl", "method", "notes", "paid_at", "created_at").
		From("settlement_payments").
		Where(squirrel.Eq{"settlement_id": s.ID}).
		OrderBy("paid_at ASC, id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadDetails - build payments query: %v", ErrBuildQuery, err)
	}

	paymentRows, err := executor.QueryContext(ctx, paymentsQuery, paymentsArgs...)
	if err != nil {
		return fmt.Errorf("%w: loadDetails - execute payments query: %v", ErrExecQuery, err)
	}
	defer paymentRows.Close()

	payments := make([]domain.SettlementPayment, 0)
	for paymentRows.Next() {
		var p domain.SettlementPayment
		var createdAt sql.NullTime
		if err := paymentRows.Scan(&p.ID, &p.SettlementID, &p.AmountTl, &p.Method, &p.Notes, &p.PaidAt, &createdAt); err != nil {
			return fmt.Errorf("%w: loadDetails - scan payment: %v", ErrScanRow, err)
		}
		p.CreatedAt = createdAt.Time
		payments = append(payments, p)
	}
	if err := paymentRows.Err(); err != nil {
		return fmt.Errorf("%w: loadDetails - payments rows error: %v", ErrScanRow, err)
	}
	s.Payments = payments

	return nil
}
