package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/dbmetrics"
	"github.com/gezilink/GL-BookingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL "unique_violation"
const pqUniqueViolation = "23505"

// Repository репозиторий слотов вместимости.
// Счётчик booked_slots мутируется ТОЛЬКО условными атомарными UPDATE
// (TryReserve/Release) - никакого read-check-write на стороне Go.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var slotColumns = []string{
	"id",
	"tenant_id",
	"activity_id",
	"slot_date",
	"start_time",
	"total_slots",
	"booked_slots",
	"created_at",
	"updated_at",
}

// Create создает слот вместимости (предзасев админкой)
func (r *Repository) Create(ctx context.Context, slot *domain.CapacitySlot) (*domain.CapacitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("capacity_slots").
		Columns("tenant_id", "activity_id", "slot_date", "start_time", "total_slots", "booked_slots").
		Values(slot.TenantID, slot.ActivityID, slot.Date, slot.StartTime, slot.TotalSlots, slot.BookedSlots).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// Get получает слот по ключу (тенант, активность, дата, время)
func (r *Repository) Get(ctx context.Context, key domain.CapacitySlotKey) (*domain.CapacitySlot, error) {
	return r.get(ctx, key, false)
}

// GetForUpdate получает слот с блокировкой FOR UPDATE.
// Используется только внутри транзакции.
func (r *Repository) GetForUpdate(ctx context.Context, key domain.CapacitySlotKey) (*domain.CapacitySlot, error) {
	return r.get(ctx, key, true)
}

func (r *Repository) get(ctx context.Context, key domain.CapacitySlotKey, forUpdate bool) (*domain.CapacitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("capacity_slots").
		Where(squirrel.Eq{
			"tenant_id":   key.TenantID,
			"activity_id": key.ActivityID,
			"slot_date":   key.Date,
			"start_time":  key.StartTime,
		})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.CapacitySlot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.TenantID,
		&slot.ActivityID,
		&slot.Date,
		&slot.StartTime,
		&slot.TotalSlots,
		&slot.BookedSlots,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// ListByActivityDate получает все слоты активности на дату,
// отсортированные по времени начала
func (r *Repository) ListByActivityDate(ctx context.Context, tenantID, activityID int64, date time.Time) ([]*domain.CapacitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("capacity_slots").
		Where(squirrel.Eq{
			"tenant_id":   tenantID,
			"activity_id": activityID,
			"slot_date":   date,
		}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByActivityDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByActivityDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.CapacitySlot, 0)
	for rows.Next() {
		var slot domain.CapacitySlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.TenantID,
			&slot.ActivityID,
			&slot.Date,
			&slot.StartTime,
			&slot.TotalSlots,
			&slot.BookedSlots,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByActivityDate - scan slot: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByActivityDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// TryReserve атомарно занимает quantity мест в слоте.
//
// Единственный запрос вида
//
//	UPDATE capacity_slots
//	SET booked_slots = booked_slots + $q
//	WHERE <ключ> AND booked_slots + $q <= total_slots
//	RETURNING ...
//
// закрывает гонку двух конкурентных бронирований: проверка и запись -
// одна строка плана, обе брони не могут пройти одновременно.
// Ноль обновлённых строк = мест не хватило (ErrInsufficientCapacity),
// при условии что слот существует (иначе ErrSlotNotFound).
func (r *Repository) TryReserve(ctx context.Context, key domain.CapacitySlotKey, quantity int) (*domain.CapacitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_slots").
		Set("booked_slots", squirrel.Expr("booked_slots + ?", quantity)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"tenant_id":   key.TenantID,
			"activity_id": key.ActivityID,
			"slot_date":   key.Date,
			"start_time":  key.StartTime,
		}).
		Where(squirrel.Expr("booked_slots + ? <= total_slots", quantity)).
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TryReserve - build update query: %v", ErrBuildQuery, err)
	}

	var slot domain.CapacitySlot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.TenantID,
		&slot.ActivityID,
		&slot.Date,
		&slot.StartTime,
		&slot.TotalSlots,
		&slot.BookedSlots,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		// Либо слота нет, либо мест не хватило - различаем
		if _, getErr := r.get(ctx, key, false); getErr == ErrSlotNotFound {
			return nil, ErrSlotNotFound
		}
		return nil, ErrInsufficientCapacity
	}
	if err != nil {
		return nil, fmt.Errorf("%w: TryReserve - execute update: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// Release освобождает quantity мест (политика release_capacity_on_cancel).
// Счётчик не опускается ниже нуля.
func (r *Repository) Release(ctx context.Context, key domain.CapacitySlotKey, quantity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("capacity_slots").
		Set("booked_slots", squirrel.Expr("GREATEST(booked_slots - ?, 0)", quantity)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"tenant_id":   key.TenantID,
			"activity_id": key.ActivityID,
			"slot_date":   key.Date,
			"start_time":  key.StartTime,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

