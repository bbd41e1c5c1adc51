package partner

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func transactionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "sender_tenant_id", "receiver_tenant_id", "customer_name",
		"activity_name", "transaction_date", "guest_count", "amount_tl",
		"notes", "deletion_status", "deletion_requested_by_tenant_id",
		"created_at", "updated_at",
	}).AddRow(
		int64(10), int64(1), int64(2), "Иван Петров",
		"Рафтинг", time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), 4, int64(120000),
		nil, string(domain.DeletionStatusNone), nil,
		time.Now(), time.Now(),
	)
}

func TestRepository_ListForTenant_ExcludesApprovedDeleted(t *testing.T) {
	// Arrange: подтверждённо удалённые транзакции отсекаются прямо в WHERE
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM partner_transactions WHERE \(sender_tenant_id = \$1 AND deletion_status <> \$2\) ORDER BY transaction_date DESC, id DESC`).
		WithArgs(int64(1), string(domain.DeletionStatusApproved)).
		WillReturnRows(transactionRows())

	// Act
	transactions, err := repo.ListForTenant(context.Background(), 1, domain.PartnerRoleSender)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, transactions, 1)
	assert.Equal(t, int64(10), transactions[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListForTenant_AllRolesKeepsArchiveFilter(t *testing.T) {
	// Роль "all" объединяет обе стороны, но архивный фильтр сохраняется
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`WHERE \(\(sender_tenant_id = \$1 OR receiver_tenant_id = \$2\) AND deletion_status <> \$3\)`).
		WithArgs(int64(1), int64(1), string(domain.DeletionStatusApproved)).
		WillReturnRows(transactionRows())

	transactions, err := repo.ListForTenant(context.Background(), 1, domain.PartnerRoleAll)

	assert.NoError(t, err)
	assert.Len(t, transactions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
