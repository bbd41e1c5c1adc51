package reservation

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

// Repository репозиторий бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"tenant_id",
	"activity_id",
	"agency_id",
	"settlement_id",
	"reservation_date",
	"start_time",
	"guest_count",
	"activity_name",
	"price_tl",
	"price_usd",
	"extras_total_tl",
	"deposit_required_tl",
	"remaining_payment_tl",
	"status",
	"payment_status",
	"source",
	"hotel_name",
	"has_transfer",
	"notes",
	"participants",
	"extras",
	"tracking_token",
	"token_expires_at",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование.
// Вызывается внутри транзакции бронирования вместе с TryReserve слота:
// откат транзакции при нехватке мест не оставляет брони-сироты.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	participantsRaw, err := json.Marshal(res.Participants)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal participants: %v", ErrBuildQuery, err)
	}
	extrasRaw, err := json.Marshal(res.Extras)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal extras: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"tenant_id",
			"activity_id",
			"agency_id",
			"reservation_date",
			"start_time",
			"guest_count",
			"activity_name",
			"price_tl",
			"price_usd",
			"extras_total_tl",
			"deposit_required_tl",
			"remaining_payment_tl",
			"status",
			"payment_status",
			"source",
			"hotel_name",
			"has_transfer",
			"notes",
			"participants",
			"extras",
			"tracking_token",
			"token_expires_at",
		).
		Values(
			res.TenantID,
			res.ActivityID,
			res.AgencyID,
			res.Date,
			res.StartTime,
			res.GuestCount,
			res.ActivityName,
			res.PriceTl,
			res.PriceUsd,
			res.ExtrasTotalTl,
			res.DepositRequiredTl,
			res.RemainingPaymentTl,
			res.Status,
			res.PaymentStatus,
			res.Source,
			res.HotelName,
			res.HasTransfer,
			res.Notes,
			participantsRaw,
			extrasRaw,
			res.TrackingToken,
			res.TokenExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}
	return reservations[0], nil
}

// GetByTrackingToken получает бронирование по публичному токену отслеживания
func (r *Repository) GetByTrackingToken(ctx context.Context, token string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"tracking_token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrackingToken - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrackingToken - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}
	return reservations[0], nil
}

// ListForTenant получает бронирования тенанта с фильтрацией.
// TenantID в фильтре обязателен - неограниченной выборки у этого
// метода нет намеренно.
func (r *Repository) ListForTenant(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.AgencyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"agency_id": *filter.AgencyID})
	}
	if filter.ActivityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"activity_id": *filter.ActivityID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveReservationStatuses))
		for i, s := range domain.InactiveReservationStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListUnsettledByAgency получает активные брони агентства, ещё не
// включённые ни в один взаиморасчёт (settlement_id IS NULL).
// Внутри транзакции строки блокируются FOR UPDATE, чтобы два
// конкурентных свода не забрали одни и те же брони.
func (r *Repository) ListUnsettledByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactiveStatusStrings := make([]string, len(domain.InactiveReservationStatuses))
	for i, s := range domain.InactiveReservationStatuses {
		inactiveStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"tenant_id": tenantID, "agency_id": agencyID}).
		Where(squirrel.Eq{"settlement_id": nil}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings}).
		OrderBy("reservation_date ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnsettledByAgency - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnsettledByAgency - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// MarkSettled проставляет settlement_id броням, включённым во взаиморасчёт.
// Guard settlement_id IS NULL в WHERE делает операцию идемпотентной:
// если число обновлённых строк меньше ожидаемого, значит часть броней
// уже забрана другим взаиморасчётом - вся операция откатывается.
func (r *Repository) MarkSettled(ctx context.Context, ids []int64, settlementID int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("settlement_id", settlementID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"settlement_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkSettled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSettled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkSettled - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected != int64(len(ids)) {
		return ErrAlreadySettled
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, tenantID, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.ReservationStatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdatePaymentStatus обновляет статус оплаты бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, tenantID, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var participantsRaw, extrasRaw []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.TenantID,
			&res.ActivityID,
			&res.AgencyID,
			&res.SettlementID,
			&res.Date,
			&res.StartTime,
			&res.GuestCount,
			&res.ActivityName,
			&res.PriceTl,
			&res.PriceUsd,
			&res.ExtrasTotalTl,
			&res.DepositRequiredTl,
			&res.RemainingPaymentTl,
			&res.Status,
			&res.PaymentStatus,
			&res.Source,
			&res.HotelName,
			&res.HasTransfer,
			&res.Notes,
			&participantsRaw,
			&extrasRaw,
			&res.TrackingToken,
			&res.TokenExpiresAt,
			&res.CancellationReason,
			&res.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		if len(participantsRaw) > 0 {
			if err := json.Unmarshal(participantsRaw, &res.Participants); err != nil {
				return nil, fmt.Errorf("%w: scanReservations - unmarshal participants: %v", ErrScanRow, err)
			}
		}
		if len(extrasRaw) > 0 {
			if err := json.Unmarshal(extrasRaw, &res.Extras); err != nil {
				return nil, fmt.Errorf("%w: scanReservations - unmarshal extras: %v", ErrScanRow, err)
			}
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
