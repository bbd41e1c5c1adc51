package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/types"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func testSlotKey() domain.CapacitySlotKey {
	return domain.CapacitySlotKey{
		TenantID:   1,
		ActivityID: 42,
		Date:       time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

func slotRows(totalSlots, bookedSlots int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tenant_id", "activity_id", "slot_date", "start_time",
		"total_slots", "booked_slots", "created_at", "updated_at",
	}).AddRow(
		int64(7), int64(1), int64(42),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), "10:00",
		totalSlots, bookedSlots, time.Now(), time.Now(),
	)
}

func TestRepository_TryReserve_Success(t *testing.T) {
	// Arrange: условный UPDATE затронул строку и вернул обновлённый слот
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`UPDATE capacity_slots SET booked_slots = booked_slots \+ \$1.*booked_slots \+ \$6 <= total_slots.*RETURNING`).
		WillReturnRows(slotRows(10, 8))

	// Act
	slot, err := repo.TryReserve(context.Background(), testSlotKey(), 2)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, slot)
	assert.Equal(t, 10, slot.TotalSlots)
	assert.Equal(t, 8, slot.BookedSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TryReserve_InsufficientCapacity(t *testing.T) {
	// Ноль затронутых строк при существующем слоте означает нехватку мест
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`UPDATE capacity_slots`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM capacity_slots`).
		WillReturnRows(slotRows(5, 4))

	slot, err := repo.TryReserve(context.Background(), testSlotKey(), 2)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientCapacity))
	assert.Nil(t, slot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TryReserve_SlotNotFound(t *testing.T) {
	// Ноль затронутых строк при отсутствующем слоте означает отсутствие
	// ограничения вместимости, репозиторий различает эти случаи перечтением
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`UPDATE capacity_slots`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM capacity_slots`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	slot, err := repo.TryReserve(context.Background(), testSlotKey(), 2)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotNotFound))
	assert.Nil(t, slot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_Success(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM capacity_slots`).
		WillReturnRows(slotRows(10, 3))

	slot, err := repo.Get(context.Background(), testSlotKey())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), slot.ID)
	assert.Equal(t, 7, slot.Available())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM capacity_slots`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	slot, err := repo.Get(context.Background(), testSlotKey())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotNotFound))
	assert.Nil(t, slot)
}

func TestRepository_Release_Success(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE capacity_slots SET booked_slots = GREATEST\(booked_slots - \$1, 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Release(context.Background(), testSlotKey(), 2)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Release_SlotNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE capacity_slots`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Release(context.Background(), testSlotKey(), 2)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotNotFound))
}

func TestRepository_Create_DuplicateSlot(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`INSERT INTO capacity_slots`).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pqUniqueViolation)})

	slot := &domain.CapacitySlot{
		TenantID:   1,
		ActivityID: 42,
		Date:       time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
		TotalSlots: 10,
	}
	created, err := repo.Create(context.Background(), slot)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSlot))
	assert.Nil(t, created)
}
