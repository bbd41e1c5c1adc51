package dispatch

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий отгрузок гостей агентствам и выплат агентствам
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отгрузок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// DispatchSum агрегат отгрузок по агентству в разрезе валюты
type DispatchSum struct {
	AgencyID      int64
	AgencyName    string
	Currency      domain.Currency
	GuestCount    int
	TotalPayoutTl int64
	DispatchCount int
}

// PayoutSum агрегат выплат по агентству
type PayoutSum struct {
	AgencyID      int64
	TotalAmountTl int64
	PayoutCount   int
}

// CreateDispatch создает отгрузку вместе со строками-подначислениями.
// Вызывается внутри транзакции: отгрузка без своих строк не коммитится.
func (r *Repository) CreateDispatch(ctx context.Context, d *domain.SupplierDispatch) (*domain.SupplierDispatch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("supplier_dispatches").
		Columns("tenant_id", "agency_id", "dispatch_date", "guest_count", "currency", "total_payout_tl", "notes").
		Values(d.TenantID, d.AgencyID, d.Date, d.GuestCount, d.Currency, d.TotalPayoutTl, d.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDispatch - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDispatch - execute insert: %v", ErrExecQuery, err)
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	if len(d.Items) > 0 {
		insertBuilder := psqlbuilder.Insert("supplier_dispatch_items").
			Columns("dispatch_id", "description", "guest_count", "amount_tl")
		for i := range d.Items {
			d.Items[i].DispatchID = d.ID
			insertBuilder = insertBuilder.Values(d.ID, d.Items[i].Description, d.Items[i].GuestCount, d.Items[i].AmountTl)
		}

		query, args, err := insertBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: CreateDispatch - build items insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: CreateDispatch - execute items insert: %v", ErrExecQuery, err)
		}
	}

	return d, nil
}

// GetDispatch получает отгрузку со строками по ID
func (r *Repository) GetDispatch(ctx context.Context, tenantID, dispatchID int64) (*domain.SupplierDispatch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "tenant_id", "agency_id", "dispatch_date", "guest_count",
		"currency", "total_payout_tl", "notes", "created_at", "updated_at",
	).
		From("supplier_dispatches").
		Where(squirrel.Eq{"id": dispatchID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDispatch - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.SupplierDispatch
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.ID,
		&d.TenantID,
		&d.AgencyID,
		&d.Date,
		&d.GuestCount,
		&d.Currency,
		&d.TotalPayoutTl,
		&d.Notes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrDispatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDispatch - scan dispatch: %v", ErrScanRow, err)
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	items, err := r.listItems(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items

	return &d, nil
}

// DeleteDispatch удаляет отгрузку каскадно: сначала строки,
// затем саму отгрузку (ссылочная целостность). Вызывается в транзакции.
func (r *Repository) DeleteDispatch(ctx context.Context, tenantID, dispatchID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	itemsQuery, itemsArgs, err := psqlbuilder.Delete("supplier_dispatch_items").
		Where(squirrel.Eq{"dispatch_id": dispatchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDispatch - build items delete: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
		return fmt.Errorf("%w: DeleteDispatch - execute items delete: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Delete("supplier_dispatches").
		Where(squirrel.Eq{"id": dispatchID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDispatch - build delete: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDispatch - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDispatch - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDispatchNotFound
	}

	return nil
}

// CreatePayout создает выплату агентству за период
func (r *Repository) CreatePayout(ctx context.Context, p *domain.AgencyPayout) (*domain.AgencyPayout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("agency_payouts").
		Columns("tenant_id", "agency_id", "period_start", "period_end", "total_amount_tl", "notes").
		Values(p.TenantID, p.AgencyID, p.PeriodStart, p.PeriodEnd, p.TotalAmountTl, p.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePayout - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePayout - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time

	return p, nil
}

// SumDispatchesByAgency агрегирует отгрузки тенанта по агентству и валюте.
// agencyID nil = все агентства тенанта.
func (r *Repository) SumDispatchesByAgency(ctx context.Context, tenantID int64, agencyID *int64, rng domain.DateRange) ([]DispatchSum, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"d.agency_id",
		"a.name",
		"d.currency",
		"COALESCE(SUM(d.guest_count), 0)",
		"COALESCE(SUM(d.total_payout_tl), 0)",
		"COUNT(*)",
	).
		From("supplier_dispatches d").
		Join("agencies a ON a.id = d.agency_id").
		Where(squirrel.Eq{"d.tenant_id": tenantID}).
		GroupBy("d.agency_id", "a.name", "d.currency").
		OrderBy("a.name ASC, d.agency_id ASC")

	if agencyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.agency_id": *agencyID})
	}
	if rng.Start != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"d.dispatch_date": *rng.Start})
	}
	if rng.End != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"d.dispatch_date": *rng.End})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SumDispatchesByAgency - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SumDispatchesByAgency - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sums := make([]DispatchSum, 0)
	for rows.Next() {
		var s DispatchSum
		if err := rows.Scan(&s.AgencyID, &s.AgencyName, &s.Currency, &s.GuestCount, &s.TotalPayoutTl, &s.DispatchCount); err != nil {
			return nil, fmt.Errorf("%w: SumDispatchesByAgency - scan row: %v", ErrScanRow, err)
		}
		sums = append(sums, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SumDispatchesByAgency - rows error: %v", ErrScanRow, err)
	}

	return sums, nil
}

// SumPayoutsByAgency агрегирует выплаты тенанта по агентству.
// Период выплаты попадает в диапазон при пересечении с ним.
func (r *Repository) SumPayoutsByAgency(ctx context.Context, tenantID int64, agencyID *int64, rng domain.DateRange) ([]PayoutSum, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"agency_id",
		"COALESCE(SUM(total_amount_tl), 0)",
		"COUNT(*)",
	).
		From("agency_payouts").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		GroupBy("agency_id").
		OrderBy("agency_id ASC")

	if agencyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"agency_id": *agencyID})
	}
	if rng.Start != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"period_end": *rng.Start})
	}
	if rng.End != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"period_start": *rng.End})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SumPayoutsByAgency - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SumPayoutsByAgency - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sums := make([]PayoutSum, 0)
	for rows.Next() {
		var s PayoutSum
		if err := rows.Scan(&s.AgencyID, &s.TotalAmountTl, &s.PayoutCount); err != nil {
			return nil, fmt.Errorf("%w: SumPayoutsByAgency - scan row: %v", ErrScanRow, err)
		}
		sums = append(sums, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SumPayoutsByAgency - rows error: %v", ErrScanRow, err)
	}

	return sums, nil
}

func (r *Repository) listItems(ctx context.Context, dispatchID int64) ([]domain.SupplierDispatchItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dispatch_id", "description", "guest_count", "amount_tl").
		From("supplier_dispatch_items").
		Where(squirrel.Eq{"dispatch_id": dispatchID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.SupplierDispatchItem, 0)
	for rows.Next() {
		var item domain.SupplierDispatchItem
		if err := rows.Scan(&item.ID, &item.DispatchID, &item.Description, &item.GuestCount, &item.AmountTl); err != nil {
			return nil, fmt.Errorf("%w: listItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
